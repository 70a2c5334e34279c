package lists

import (
	"context"

	"github.com/mesh-intelligence/huntbook/internal/query"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// Species view filter keys.
const (
	FilterCategory = "category"
	FilterGame     = "game"
	FilterName     = "name"
)

// Game status filter values.
const (
	GameLegal       = "legal"
	GameNotLegal    = "not_legal"
	GameUnspecified = "unspecified"
)

// SpeciesPipeline holds the species view sort keys.
var SpeciesPipeline = &query.Pipeline[types.GameAnimal]{Sorts: map[string]query.Comparator[types.GameAnimal]{
	"species_name": query.Natural(func(r *types.GameAnimal) string { return r.SpeciesName }),
	"category":     query.Natural(func(r *types.GameAnimal) string { return r.Category }),
}}

// DefaultSpeciesSort lists species by name.
var DefaultSpeciesSort = query.SortSpec{Key: "species_name"}

// Species lists the species reference table. The method filter takes gun,
// trap or net and keeps species marked legal for that method.
func (l *Lister) Species(ctx context.Context, opts Options) (query.Result[types.GameAnimal], error) {
	f := opts.Filters
	if err := checkFilters("species", f, FilterCategory, FilterGame, FilterMethod, FilterName); err != nil {
		return query.Result[types.GameAnimal]{}, err
	}
	if err := oneOf(FilterGame, f[FilterGame], GameLegal, GameNotLegal, GameUnspecified); err != nil {
		return query.Result[types.GameAnimal]{}, err
	}
	if err := oneOf(FilterMethod, f[FilterMethod], "gun", "trap", "net"); err != nil {
		return query.Result[types.GameAnimal]{}, err
	}
	sort := opts.Sort
	if sort.Key == "" {
		sort = DefaultSpeciesSort
	}

	scan := func(ctx context.Context) ([]*types.GameAnimal, error) {
		if c := f[FilterCategory]; c != "" && c != query.All {
			return l.store.Species.AllByIndex(ctx, "category", c)
		}
		return l.store.Species.All(ctx)
	}

	filters := []query.Predicate[types.GameAnimal]{
		query.Optional(f[FilterGame], func(v string) query.Predicate[types.GameAnimal] {
			want := types.GameMarker(v)
			if v == GameUnspecified {
				want = types.MarkerUnspecified
			}
			return query.Equals(func(r *types.GameAnimal) types.GameMarker { return r.IsGameAnimal }, want)
		}),
		query.Optional(f[FilterMethod], func(v string) query.Predicate[types.GameAnimal] {
			return func(r *types.GameAnimal) bool { return r.MethodMarker(v) == types.MarkerLegal }
		}),
		query.ContainsFold(func(r *types.GameAnimal) string { return r.SpeciesName }, f[FilterName]),
	}
	return SpeciesPipeline.Run(ctx, scan, filters, sort)
}
