package lists

import (
	"context"
	"fmt"
	"testing"

	"github.com/mesh-intelligence/huntbook/internal/query"
	"github.com/mesh-intelligence/huntbook/internal/sqlite"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// benchStore returns a store seeded with n traps, two catches each, with a
// third of the traps closed.
func benchStore(b *testing.B, n int) *sqlite.Store {
	b.Helper()
	ctx := context.Background()
	backend := sqlite.NewBackend()
	if err := backend.Attach(ctx, types.Config{DataDir: b.TempDir()}); err != nil {
		b.Fatalf("attach: %v", err)
	}
	b.Cleanup(func() { backend.Detach() })
	s, err := backend.Store()
	if err != nil {
		b.Fatalf("store: %v", err)
	}

	traps := make([]*types.Trap, n)
	for i := range traps {
		traps[i] = types.NewTrap(fmt.Sprintf("T%d", i), "Box trap", "2026-04-01")
		if i%3 == 0 {
			traps[i].Close("2026-04-20")
		}
	}
	if err := s.Traps.BulkAdd(ctx, traps); err != nil {
		b.Fatalf("seed traps: %v", err)
	}
	catches := make([]*types.CatchRecord, 0, 2*n)
	for _, t := range traps {
		catches = append(catches,
			types.NewTrapCatch(t.ID, "2026-04-10", "Raccoon"),
			types.NewTrapCatch(t.ID, "2026-04-11", "Wild boar"))
	}
	if err := s.Catches.BulkAdd(ctx, catches); err != nil {
		b.Fatalf("seed catches: %v", err)
	}
	return s
}

func BenchmarkTraps_OpenView(b *testing.B) {
	for _, n := range []int{100, 1000} {
		b.Run(fmt.Sprintf("traps=%d", n), func(b *testing.B) {
			l := New(benchStore(b, n))
			ctx := context.Background()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := l.Traps(ctx, Options{}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCatches_FilteredDescending(b *testing.B) {
	l := New(benchStore(b, 1000))
	ctx := context.Background()
	opts := Options{
		Filters: map[string]string{FilterMethod: "trap", FilterSpecies: "boar"},
		Sort:    query.SortSpec{Key: "catch_date", Desc: true},
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := l.Catches(ctx, opts); err != nil {
			b.Fatal(err)
		}
	}
}
