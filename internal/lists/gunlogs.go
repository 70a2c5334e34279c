package lists

import (
	"context"
	"strings"

	"github.com/mesh-intelligence/huntbook/internal/query"
	"github.com/mesh-intelligence/huntbook/internal/sqlite"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// Gun log view filter keys.
const (
	FilterGunID   = "gun_id"
	FilterPurpose = "purpose"
)

// GunLogRow is a gun log with its gun's name and its catch count.
type GunLogRow struct {
	*types.GunLog
	GunName    string `json:"gun_name"`
	CatchCount int    `json:"catch_count"`
}

// GunLogPipeline holds the gun log view sort keys.
var GunLogPipeline = &query.Pipeline[GunLogRow]{Sorts: map[string]query.Comparator[GunLogRow]{
	"use_date":   query.Ordered(func(r *GunLogRow) types.Date { return r.UseDate }),
	"ammo_count": query.Ordered(func(r *GunLogRow) int { return r.AmmoCount }),
	"purpose":    query.Ordered(func(r *GunLogRow) types.Purpose { return r.Purpose }),
	"gun_name":   query.Ordered(func(r *GunLogRow) string { return strings.ToLower(r.GunName) }),
}}

// DefaultGunLogSort lists the most recent use first.
var DefaultGunLogSort = query.SortSpec{Key: "use_date", Desc: true}

// GunLogs lists gun usage logs.
func (l *Lister) GunLogs(ctx context.Context, opts Options) (query.Result[GunLogRow], error) {
	f := opts.Filters
	if err := checkFilters("gun log", f, FilterGunID, FilterPurpose); err != nil {
		return query.Result[GunLogRow]{}, err
	}
	gunID, err := parseID(FilterGunID, f[FilterGunID])
	if err != nil {
		return query.Result[GunLogRow]{}, err
	}
	if err := oneOf(FilterPurpose, f[FilterPurpose], string(types.PurposeHunting),
		string(types.PurposeExtermination), string(types.PurposePractice), string(types.PurposeOther)); err != nil {
		return query.Result[GunLogRow]{}, err
	}
	sort := opts.Sort
	if sort.Key == "" {
		sort = DefaultGunLogSort
	}

	scan := func(ctx context.Context) ([]*GunLogRow, error) {
		var logs []*types.GunLog
		var err error
		if gunID != 0 {
			logs, err = l.store.GunLogs.AllByIndex(ctx, "gun_id", gunID)
		} else {
			logs, err = l.store.GunLogs.All(ctx)
		}
		if err != nil {
			return nil, err
		}
		names, err := gunNames(ctx, l.store)
		if err != nil {
			return nil, err
		}
		counts, err := l.store.CatchCountsByGunLog(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]*GunLogRow, len(logs))
		for i, g := range logs {
			name, ok := names[g.GunID]
			if !ok {
				name = Deleted
			}
			rows[i] = &GunLogRow{GunLog: g, GunName: name, CatchCount: counts[g.ID]}
		}
		return rows, nil
	}

	filters := []query.Predicate[GunLogRow]{
		query.Optional(f[FilterPurpose], func(v string) query.Predicate[GunLogRow] {
			return query.Equals(func(r *GunLogRow) types.Purpose { return r.Purpose }, types.Purpose(v))
		}),
	}
	return GunLogPipeline.Run(ctx, scan, filters, sort)
}

func gunNames(ctx context.Context, s *sqlite.Store) (map[int64]string, error) {
	guns, err := s.Guns.All(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(guns))
	for _, g := range guns {
		names[g.ID] = g.Name
	}
	return names, nil
}

// GunRow is a gun with its ammunition balance.
type GunRow struct {
	*types.Gun
	Ammo types.AmmoSummary `json:"ammo"`
}

// Guns lists every gun by name with purchased, used and remaining rounds.
func (l *Lister) Guns(ctx context.Context) ([]*GunRow, error) {
	guns, err := l.store.Guns.AllOrderedBy(ctx, "name")
	if err != nil {
		return nil, err
	}
	sums, err := l.store.AmmoSummaries(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]*GunRow, len(guns))
	for i, g := range guns {
		sum, ok := sums[g.ID]
		if !ok {
			sum = types.AmmoSummary{GunID: g.ID}
		}
		rows[i] = &GunRow{Gun: g, Ammo: sum}
	}
	return rows, nil
}
