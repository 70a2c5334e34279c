package types

import "strings"

// GameMarker is a tri-state legality marker from the species reference data.
type GameMarker string

const (
	MarkerLegal       GameMarker = "legal"
	MarkerNotLegal    GameMarker = "not_legal"
	MarkerUnspecified GameMarker = ""
)

var legalMarkers = map[string]bool{
	"○": true, "〇": true, "◯": true, "●": true, "可": true,
	"yes": true, "y": true, "true": true, "1": true, "legal": true,
}

var notLegalMarkers = map[string]bool{
	"×": true, "✕": true, "x": true, "不可": true,
	"no": true, "n": true, "false": true, "0": true, "not_legal": true,
}

// ParseGameMarker maps a reference-data cell to a marker. Anything that is
// neither a legal nor a not-legal symbol is unspecified.
func ParseGameMarker(cell string) GameMarker {
	s := strings.ToLower(strings.TrimSpace(cell))
	switch {
	case legalMarkers[s]:
		return MarkerLegal
	case notLegalMarkers[s]:
		return MarkerNotLegal
	default:
		return MarkerUnspecified
	}
}

// GameAnimal is one row of the species reference table. The table is
// replaced wholesale on every refresh.
type GameAnimal struct {
	ID                int64      `json:"id"`
	Category          string     `json:"category"`
	IsGameAnimal      GameMarker `json:"is_game_animal"`
	SpeciesName       string     `json:"species_name"`
	MethodGun         GameMarker `json:"method_gun"`
	MethodTrap        GameMarker `json:"method_trap"`
	MethodNet         GameMarker `json:"method_net"`
	GenderRestriction string     `json:"gender_restriction"`
	CountLimit        string     `json:"count_limit"`
	ProhibitedArea    string     `json:"prohibited_area"`
	Habitat           string     `json:"habitat"`
	Notes             string     `json:"notes"`
	Ecology           string     `json:"ecology"`
	Damage            string     `json:"damage"`
	Image1            string     `json:"image_1"`
	Image2            string     `json:"image_2"`
}

// MethodMarker returns the legality marker for a hunting method:
// "gun", "trap" or "net". Unknown methods are unspecified.
func (g *GameAnimal) MethodMarker(method string) GameMarker {
	switch method {
	case "gun":
		return g.MethodGun
	case "trap":
		return g.MethodTrap
	case "net":
		return g.MethodNet
	default:
		return MarkerUnspecified
	}
}
