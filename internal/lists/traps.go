package lists

import (
	"context"

	"github.com/mesh-intelligence/huntbook/internal/query"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// Trap view filter keys and status values.
const (
	FilterStatus = "status"
	FilterType   = "type"

	StatusOpen   = "open"
	StatusClosed = "closed"
)

// TrapRow is a trap with the number of catches recorded against it.
type TrapRow struct {
	*types.Trap
	CatchCount int `json:"catch_count"`
}

// TrapPipeline holds the trap view sort keys.
var TrapPipeline = &query.Pipeline[TrapRow]{Sorts: map[string]query.Comparator[TrapRow]{
	"trap_number": query.Natural(func(r *TrapRow) string { return r.TrapNumber }),
	"setup_date":  query.Ordered(func(r *TrapRow) types.Date { return r.SetupDate }),
	"close_date":  query.NullsFirst(func(r *TrapRow) *types.Date { return r.CloseDate }),
	"type":        query.Ordered(func(r *TrapRow) string { return r.Type }),
}}

// DefaultTrapSort is the sort used when none is chosen: closed traps by
// close date, newest first; otherwise by trap number.
func DefaultTrapSort(status string) query.SortSpec {
	if status == StatusClosed {
		return query.SortSpec{Key: "close_date", Desc: true}
	}
	return query.SortSpec{Key: "trap_number"}
}

// Traps lists traps. The status filter defaults to open.
func (l *Lister) Traps(ctx context.Context, opts Options) (query.Result[TrapRow], error) {
	if err := checkFilters("trap", opts.Filters, FilterStatus, FilterType); err != nil {
		return query.Result[TrapRow]{}, err
	}
	status := opts.Filters[FilterStatus]
	if status == "" {
		status = StatusOpen
	}
	if err := oneOf(FilterStatus, status, StatusOpen, StatusClosed); err != nil {
		return query.Result[TrapRow]{}, err
	}
	sort := opts.Sort
	if sort.Key == "" {
		sort = DefaultTrapSort(status)
	}

	scan := func(ctx context.Context) ([]*TrapRow, error) {
		var traps []*types.Trap
		var err error
		switch status {
		case StatusOpen:
			traps, err = l.store.Traps.AllByIndex(ctx, "is_open", true)
		case StatusClosed:
			traps, err = l.store.Traps.AllByIndex(ctx, "is_open", false)
		default:
			traps, err = l.store.Traps.All(ctx)
		}
		if err != nil {
			return nil, err
		}
		counts, err := l.store.CatchCountsByTrap(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]*TrapRow, len(traps))
		for i, t := range traps {
			rows[i] = &TrapRow{Trap: t, CatchCount: counts[t.ID]}
		}
		return rows, nil
	}

	filters := []query.Predicate[TrapRow]{
		query.Optional(opts.Filters[FilterType], func(v string) query.Predicate[TrapRow] {
			return query.Equals(func(r *TrapRow) string { return r.Type }, v)
		}),
	}
	return TrapPipeline.Run(ctx, scan, filters, sort)
}
