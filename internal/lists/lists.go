// Package lists assembles the record-book list views from the store using
// the query pipeline: traps, catches, gun logs, species and guns.
package lists

import (
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/huntbook/internal/query"
	"github.com/mesh-intelligence/huntbook/internal/sqlite"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// Deleted stands in for a parent row that no longer exists.
const Deleted = "(deleted)"

// Options are the filter values and sort choice of one list view. Filter
// keys are view-specific; empty and "all" values switch a filter off.
type Options struct {
	Filters map[string]string `json:"filters,omitempty"`
	Sort    query.SortSpec    `json:"sort"`
}

// Lister builds list views over a store.
type Lister struct {
	store *sqlite.Store
}

// New returns a Lister reading from s.
func New(s *sqlite.Store) *Lister {
	return &Lister{store: s}
}

// checkFilters rejects filter keys the view does not know.
func checkFilters(view string, filters map[string]string, known ...string) error {
	for key := range filters {
		ok := false
		for _, k := range known {
			if k == key {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("%w: %s view has no %q filter", types.ErrInvalidFilter, view, key)
		}
	}
	return nil
}

// oneOf validates an enumerated filter value.
func oneOf(key, value string, allowed ...string) error {
	if value == "" || value == query.All {
		return nil
	}
	for _, a := range allowed {
		if a == value {
			return nil
		}
	}
	return fmt.Errorf("%w: %s=%q", types.ErrInvalidFilter, key, value)
}

// parseID parses an id filter. Empty and "all" return 0.
func parseID(key, value string) (int64, error) {
	if value == "" || value == query.All {
		return 0, nil
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", types.ErrInvalidFilter, key, value)
	}
	return id, nil
}
