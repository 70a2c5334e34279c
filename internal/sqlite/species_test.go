package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

func speciesRows(names ...string) []*types.GameAnimal {
	out := make([]*types.GameAnimal, len(names))
	for i, n := range names {
		out[i] = &types.GameAnimal{Category: "mammal", IsGameAnimal: types.MarkerLegal, SpeciesName: n}
	}
	return out
}

func TestReplaceSpecies(t *testing.T) {
	b, _ := setupBackend(t)
	ctx := context.Background()

	n, err := b.ReplaceSpecies(ctx, speciesRows("Boar", "Deer"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = b.ReplaceSpecies(ctx, speciesRows("Hare"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	s, err := b.Store()
	require.NoError(t, err)
	rows, err := s.Species.All(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Hare", rows[0].SpeciesName)
	assert.Equal(t, types.MarkerLegal, rows[0].IsGameAnimal)
}

func TestReplaceSpecies_EmptyKeepsTable(t *testing.T) {
	b, _ := setupBackend(t)
	ctx := context.Background()

	_, err := b.ReplaceSpecies(ctx, speciesRows("Boar", "Deer"))
	require.NoError(t, err)

	_, err = b.ReplaceSpecies(ctx, nil)
	assert.ErrorIs(t, err, types.ErrNoValidRows)

	n, err := b.CountSpecies(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestReplaceSpecies_FailureKeepsOldRows(t *testing.T) {
	b, _ := setupBackend(t)
	ctx := context.Background()

	_, err := b.ReplaceSpecies(ctx, speciesRows("Boar", "Deer"))
	require.NoError(t, err)

	_, err = b.db.Exec(`CREATE TRIGGER fail_wolf BEFORE INSERT ON game_animals
		WHEN NEW.species_name = 'Wolf' BEGIN SELECT RAISE(ABORT, 'injected failure'); END;`)
	require.NoError(t, err)

	_, err = b.ReplaceSpecies(ctx, speciesRows("Hare", "Fox", "Wolf"))
	assert.ErrorIs(t, err, types.ErrTransactionFailed)

	s, err := b.Store()
	require.NoError(t, err)
	rows, err := s.Species.All(ctx)
	require.NoError(t, err)
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.SpeciesName
	}
	assert.Equal(t, []string{"Boar", "Deer"}, names)
}
