package lists

import (
	"context"

	"github.com/mesh-intelligence/huntbook/internal/query"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// Catch view filter keys.
const (
	FilterMethod   = "method"
	FilterTrapID   = "trap_id"
	FilterGunLogID = "gun_log_id"
	FilterSpecies  = "species"
	FilterGender   = "gender"
	FilterAge      = "age"
)

// CatchRow is a catch with a label naming where it came from.
type CatchRow struct {
	*types.CatchRecord
	Source string `json:"source"`
}

// CatchPipeline holds the catch view sort keys.
var CatchPipeline = &query.Pipeline[CatchRow]{Sorts: map[string]query.Comparator[CatchRow]{
	"catch_date":   query.Ordered(func(r *CatchRow) types.Date { return r.CatchDate }),
	"species_name": query.Ordered(func(r *CatchRow) string { return r.SpeciesName }),
	"gender":       query.Ordered(func(r *CatchRow) types.Gender { return r.Gender }),
	"age":          query.Ordered(func(r *CatchRow) types.Age { return r.Age }),
}}

// DefaultCatchSort lists the newest catches first.
var DefaultCatchSort = query.SortSpec{Key: "catch_date", Desc: true}

// Catches lists catch records.
func (l *Lister) Catches(ctx context.Context, opts Options) (query.Result[CatchRow], error) {
	f := opts.Filters
	err := checkFilters("catch", f, FilterMethod, FilterTrapID, FilterGunLogID, FilterSpecies, FilterGender, FilterAge)
	if err != nil {
		return query.Result[CatchRow]{}, err
	}
	if err := oneOf(FilterMethod, f[FilterMethod],
		string(types.MethodTrap), string(types.MethodGun), string(types.MethodDirect)); err != nil {
		return query.Result[CatchRow]{}, err
	}
	if err := oneOf(FilterGender, f[FilterGender],
		string(types.GenderUnknown), string(types.GenderMale), string(types.GenderFemale)); err != nil {
		return query.Result[CatchRow]{}, err
	}
	if err := oneOf(FilterAge, f[FilterAge],
		string(types.AgeUnknown), string(types.AgeAdult), string(types.AgeSubadult), string(types.AgeJuvenile)); err != nil {
		return query.Result[CatchRow]{}, err
	}
	trapID, err := parseID(FilterTrapID, f[FilterTrapID])
	if err != nil {
		return query.Result[CatchRow]{}, err
	}
	gunLogID, err := parseID(FilterGunLogID, f[FilterGunLogID])
	if err != nil {
		return query.Result[CatchRow]{}, err
	}
	sort := opts.Sort
	if sort.Key == "" {
		sort = DefaultCatchSort
	}

	scan := func(ctx context.Context) ([]*CatchRow, error) {
		var catches []*types.CatchRecord
		var err error
		switch {
		case trapID != 0:
			catches, err = l.store.Catches.AllByIndex(ctx, "trap_id", trapID)
		case gunLogID != 0:
			catches, err = l.store.Catches.AllByIndex(ctx, "gun_log_id", gunLogID)
		default:
			catches, err = l.store.Catches.All(ctx)
		}
		if err != nil {
			return nil, err
		}
		labels, err := l.sourceLabels(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]*CatchRow, len(catches))
		for i, c := range catches {
			rows[i] = &CatchRow{CatchRecord: c, Source: labels.label(c)}
		}
		return rows, nil
	}

	filters := []query.Predicate[CatchRow]{
		query.Optional(f[FilterMethod], func(v string) query.Predicate[CatchRow] {
			return query.Equals(func(r *CatchRow) types.CatchMethod { return r.Method() }, types.CatchMethod(v))
		}),
		query.Optional(f[FilterGender], func(v string) query.Predicate[CatchRow] {
			return query.Equals(func(r *CatchRow) types.Gender { return r.Gender }, types.Gender(v))
		}),
		query.Optional(f[FilterAge], func(v string) query.Predicate[CatchRow] {
			return query.Equals(func(r *CatchRow) types.Age { return r.Age }, types.Age(v))
		}),
		query.ContainsFold(func(r *CatchRow) string { return r.SpeciesName }, f[FilterSpecies]),
	}
	if trapID != 0 && gunLogID != 0 {
		filters = append(filters, query.PtrEquals(func(r *CatchRow) *int64 { return r.GunLogID }, gunLogID))
	}
	return CatchPipeline.Run(ctx, scan, filters, sort)
}

// sources resolves catch parents to display labels.
type sources struct {
	traps   map[int64]string
	gunLogs map[int64]int64
	guns    map[int64]string
}

func (l *Lister) sourceLabels(ctx context.Context) (*sources, error) {
	s := &sources{traps: map[int64]string{}, gunLogs: map[int64]int64{}, guns: map[int64]string{}}
	traps, err := l.store.Traps.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range traps {
		s.traps[t.ID] = t.TrapNumber
	}
	logs, err := l.store.GunLogs.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range logs {
		s.gunLogs[g.ID] = g.GunID
	}
	guns, err := l.store.Guns.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range guns {
		s.guns[g.ID] = g.Name
	}
	return s, nil
}

// label names the trap number, the gun used or "direct".
func (s *sources) label(c *types.CatchRecord) string {
	switch c.Method() {
	case types.MethodTrap:
		if n, ok := s.traps[*c.TrapID]; ok {
			return "trap " + n
		}
		return "trap " + Deleted
	case types.MethodGun:
		gunID, ok := s.gunLogs[*c.GunLogID]
		if !ok {
			return "gun " + Deleted
		}
		if name, ok := s.guns[gunID]; ok {
			return "gun " + name
		}
		return "gun " + Deleted
	default:
		return string(types.MethodDirect)
	}
}
