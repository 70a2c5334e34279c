// Package query runs the list-view pipeline: a base scan, AND-composed
// filters and one allow-listed sort key.
package query

import (
	"context"
	"fmt"
	"slices"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// State is the display state of a list.
type State int

const (
	// Loading is the zero state, before the first result arrives.
	Loading State = iota
	// Ready means at least one row matched.
	Ready
	// NoMatches means the pipeline ran and nothing matched.
	NoMatches
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case NoMatches:
		return "no_matches"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is the outcome of one pipeline run.
type Result[T any] struct {
	State State
	Rows  []*T
}

// Scan loads the candidate rows.
type Scan[T any] func(ctx context.Context) ([]*T, error)

// SortSpec selects a sort key and direction.
type SortSpec struct {
	Key  string
	Desc bool
}

// Pipeline holds the sort keys a view accepts.
type Pipeline[T any] struct {
	Sorts map[string]Comparator[T]
}

// Keys returns the accepted sort keys in lexical order.
func (p *Pipeline[T]) Keys() []string {
	keys := make([]string, 0, len(p.Sorts))
	for k := range p.Sorts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Run scans, keeps the rows every filter accepts and sorts them. Nil
// filters are skipped. An empty sort key keeps the scan order. Descending
// order is the reverse of the stable ascending order, so rows with equal
// keys also come out reversed.
func (p *Pipeline[T]) Run(ctx context.Context, scan Scan[T], filters []Predicate[T], sort SortSpec) (Result[T], error) {
	var cmp Comparator[T]
	if sort.Key != "" {
		var ok bool
		if cmp, ok = p.Sorts[sort.Key]; !ok {
			return Result[T]{}, fmt.Errorf("%w: %q", types.ErrInvalidSortKey, sort.Key)
		}
	}

	rows, err := scan(ctx)
	if err != nil {
		return Result[T]{}, err
	}

	rows = Filter(rows, filters...)
	if cmp != nil {
		slices.SortStableFunc(rows, cmp)
		if sort.Desc {
			slices.Reverse(rows)
		}
	}

	if len(rows) == 0 {
		return Result[T]{State: NoMatches}, nil
	}
	return Result[T]{State: Ready, Rows: rows}, nil
}

// Filter returns the rows every non-nil predicate accepts, in input order.
func Filter[T any](rows []*T, filters ...Predicate[T]) []*T {
	out := make([]*T, 0, len(rows))
	for _, r := range rows {
		if And(filters...)(r) {
			out = append(out, r)
		}
	}
	return out
}
