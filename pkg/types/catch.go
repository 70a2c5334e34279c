package types

// Gender of a caught animal.
type Gender string

const (
	GenderUnknown Gender = "unknown"
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
)

// Age class of a caught animal.
type Age string

const (
	AgeUnknown  Age = "unknown"
	AgeAdult    Age = "adult"
	AgeSubadult Age = "subadult"
	AgeJuvenile Age = "juvenile"
)

var validGenders = map[Gender]bool{GenderUnknown: true, GenderMale: true, GenderFemale: true}

var validAges = map[Age]bool{AgeUnknown: true, AgeAdult: true, AgeSubadult: true, AgeJuvenile: true}

// Valid reports whether g is a recognized gender.
func (g Gender) Valid() bool { return validGenders[g] }

// Valid reports whether a is a recognized age class.
func (a Age) Valid() bool { return validAges[a] }

// CatchMethod classifies a catch by what produced it.
type CatchMethod string

const (
	MethodTrap   CatchMethod = "trap"
	MethodGun    CatchMethod = "gun"
	MethodDirect CatchMethod = "direct"
)

// CatchRecord is one captured-animal event, optionally linked to the trap or
// gun log that produced it. A record with neither link is a direct record.
type CatchRecord struct {
	ID          int64   `json:"id"`
	TrapID      *int64  `json:"trap_id"`
	GunLogID    *int64  `json:"gun_log_id"`
	CatchDate   Date    `json:"catch_date"`
	SpeciesName string  `json:"species_name"`
	Gender      Gender  `json:"gender"`
	Age         Age     `json:"age"`
	Latitude    *string `json:"latitude"`
	Longitude   *string `json:"longitude"`
	Memo        string  `json:"memo"`
	Image       []byte  `json:"image,omitempty"`
}

// NewTrapCatch returns a catch record linked to a trap.
func NewTrapCatch(trapID int64, on Date, species string) *CatchRecord {
	return &CatchRecord{TrapID: &trapID, CatchDate: on, SpeciesName: species, Gender: GenderUnknown, Age: AgeUnknown}
}

// NewGunCatch returns a catch record linked to a gun log.
func NewGunCatch(gunLogID int64, on Date, species string) *CatchRecord {
	return &CatchRecord{GunLogID: &gunLogID, CatchDate: on, SpeciesName: species, Gender: GenderUnknown, Age: AgeUnknown}
}

// NewDirectCatch returns a catch record with no trap or gun log.
func NewDirectCatch(on Date, species string) *CatchRecord {
	return &CatchRecord{CatchDate: on, SpeciesName: species, Gender: GenderUnknown, Age: AgeUnknown}
}

// Method reports whether the record came from a trap, a gun log or neither.
func (c *CatchRecord) Method() CatchMethod {
	switch {
	case c.TrapID != nil:
		return MethodTrap
	case c.GunLogID != nil:
		return MethodGun
	default:
		return MethodDirect
	}
}

// Validate checks enumerations, the catch date and the single-link rule.
// Empty gender and age are normalized to unknown.
func (c *CatchRecord) Validate() error {
	if c.TrapID != nil && c.GunLogID != nil {
		return ErrAmbiguousCatchLink
	}
	if !c.CatchDate.Valid() {
		return ErrInvalidDate
	}
	if c.Gender == "" {
		c.Gender = GenderUnknown
	}
	if c.Age == "" {
		c.Age = AgeUnknown
	}
	if !c.Gender.Valid() {
		return ErrInvalidGender
	}
	if !c.Age.Valid() {
		return ErrInvalidAge
	}
	return nil
}
