package refdata

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// Column positions in the species CSV.
const (
	colCategory = iota
	colGame
	colName
	colMethodGun
	colMethodTrap
	colMethodNet
	colGenderRestriction
	colCountLimit
	colProhibitedArea
	colHabitat
	colNotes
	colEcology
	colDamage
	colImage1
	colImage2
	columnCount
)

// minColumns is the fewest cells a row needs to be kept.
const minColumns = 3

// headerMarkers identify a header row by its first cell.
var headerMarkers = []string{"分類", "category"}

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Parse turns the species CSV into rows. Line endings are normalized first;
// quoted cells may hold commas, newlines and doubled quotes. A leading
// header row, rows with fewer than three cells and malformed rows are
// dropped one at a time. Missing trailing cells read as empty. When no row
// survives, a malformed input reports ErrParseFailed and anything else
// ErrNoValidRows.
func Parse(data []byte) ([]*types.GameAnimal, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	var (
		rows     []*types.GameAnimal
		firstBad error
	)
	first := true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			if firstBad == nil {
				firstBad = perr
			}
			first = false
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrParseFailed, err)
		}
		if first {
			first = false
			if isHeader(rec) {
				continue
			}
		}
		if len(rec) < minColumns {
			continue
		}
		rows = append(rows, mapRecord(rec))
	}
	if len(rows) == 0 {
		if firstBad != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrParseFailed, firstBad)
		}
		return nil, types.ErrNoValidRows
	}
	return rows, nil
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	cell := strings.ToLower(rec[0])
	for _, m := range headerMarkers {
		if strings.Contains(cell, m) {
			return true
		}
	}
	return false
}

func mapRecord(rec []string) *types.GameAnimal {
	cell := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	return &types.GameAnimal{
		Category:          cell(colCategory),
		IsGameAnimal:      types.ParseGameMarker(cell(colGame)),
		SpeciesName:       cell(colName),
		MethodGun:         types.ParseGameMarker(cell(colMethodGun)),
		MethodTrap:        types.ParseGameMarker(cell(colMethodTrap)),
		MethodNet:         types.ParseGameMarker(cell(colMethodNet)),
		GenderRestriction: cell(colGenderRestriction),
		CountLimit:        cell(colCountLimit),
		ProhibitedArea:    cell(colProhibitedArea),
		Habitat:           cell(colHabitat),
		Notes:             cell(colNotes),
		Ecology:           cell(colEcology),
		Damage:            cell(colDamage),
		Image1:            cell(colImage1),
		Image2:            cell(colImage2),
	}
}
