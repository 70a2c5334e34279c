package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func TestTable_TrapCRUD(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	trap := types.NewTrap("A1", "Box trap", "2024-04-01")
	trap.Latitude = ptr("35.6812")
	trap.Longitude = ptr("139.7671")
	trap.Memo = "north ridge"
	trap.Image = []byte{0xff, 0xd8, 0x01}

	id, err := s.Traps.Add(ctx, trap)
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, id, trap.ID)

	got, err := s.Traps.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, trap, got)

	require.NoError(t, s.Traps.Update(ctx, id, map[string]any{"memo": "moved", "latitude": nil}))
	got, err = s.Traps.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "moved", got.Memo)
	assert.Nil(t, got.Latitude)
	assert.Equal(t, "139.7671", *got.Longitude)

	require.NoError(t, s.Traps.Delete(ctx, id))
	_, err = s.Traps.Get(ctx, id)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, s.Traps.Delete(ctx, id), types.ErrNotFound)
}

func TestTable_GetInvalidID(t *testing.T) {
	_, s := setupBackend(t)
	_, err := s.Guns.Get(context.Background(), 0)
	assert.ErrorIs(t, err, types.ErrInvalidID)
}

func TestTable_UpdateErrors(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	id, err := s.Guns.Add(ctx, &types.Gun{Name: "Rifle"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		id     int64
		fields map[string]any
		want   error
	}{
		{"unknown field", id, map[string]any{"colour": "red"}, types.ErrInvalidField},
		{"id is not updatable", id, map[string]any{"id": 5}, types.ErrInvalidField},
		{"missing row", id + 100, map[string]any{"caliber": "12"}, types.ErrNotFound},
		{"missing row without fields", id + 100, nil, types.ErrNotFound},
		{"zero id", 0, map[string]any{"caliber": "12"}, types.ErrInvalidID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, s.Guns.Update(ctx, tt.id, tt.fields), tt.want)
		})
	}
}

func TestTable_UniqueViolation(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	_, err := s.Guns.Add(ctx, &types.Gun{Name: "Rifle"})
	require.NoError(t, err)
	_, err = s.Guns.Add(ctx, &types.Gun{Name: "Rifle"})
	assert.ErrorIs(t, err, types.ErrConstraintViolation)

	n, err := s.Guns.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTable_CompoundUniqueChecklistItem(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	a, err := s.ChecklistSets.Add(ctx, &types.ChecklistSet{Name: "Day trip"})
	require.NoError(t, err)
	b, err := s.ChecklistSets.Add(ctx, &types.ChecklistSet{Name: "Overnight"})
	require.NoError(t, err)

	_, err = s.ChecklistItems.Add(ctx, &types.ChecklistItem{ListID: a, Name: "Knife"})
	require.NoError(t, err)
	_, err = s.ChecklistItems.Add(ctx, &types.ChecklistItem{ListID: b, Name: "Knife"})
	require.NoError(t, err, "same name in another set is allowed")
	_, err = s.ChecklistItems.Add(ctx, &types.ChecklistItem{ListID: a, Name: "Knife"})
	assert.ErrorIs(t, err, types.ErrConstraintViolation)
}

func TestTable_TrapStateCheckConstraint(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	id, err := s.Traps.Add(ctx, types.NewTrap("A1", "", "2024-04-01"))
	require.NoError(t, err)

	err = s.Traps.Update(ctx, id, map[string]any{"is_open": false})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	bad := types.NewTrap("A2", "", "2024-04-01")
	bad.IsOpen = false
	_, err = s.Traps.Add(ctx, bad)
	assert.ErrorIs(t, err, types.ErrInvalidData)
	assert.ErrorIs(t, err, types.ErrInvalidTrapState)
}

func TestTable_BulkAddAllOrNothing(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	_, err := s.Guns.Add(ctx, &types.Gun{Name: "Shotgun"})
	require.NoError(t, err)

	err = s.Guns.BulkAdd(ctx, []*types.Gun{{Name: "Rifle"}, {Name: "Air rifle"}, {Name: "Shotgun"}})
	assert.ErrorIs(t, err, types.ErrConstraintViolation)

	guns, err := s.Guns.All(ctx)
	require.NoError(t, err)
	require.Len(t, guns, 1)
	assert.Equal(t, "Shotgun", guns[0].Name)

	require.NoError(t, s.Guns.BulkAdd(ctx, []*types.Gun{{Name: "Rifle"}, {Name: "Air rifle"}}))
	n, err := s.Guns.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestTable_BulkAddInsideTransaction(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	err := s.Tx(ctx, func(tx *Store) error {
		if err := tx.Guns.BulkAdd(ctx, []*types.Gun{{Name: "Rifle"}}); err != nil {
			return err
		}
		return tx.Guns.BulkAdd(ctx, []*types.Gun{{Name: "Rifle"}})
	})
	assert.ErrorIs(t, err, types.ErrConstraintViolation)

	n, err := s.Guns.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "the caller's transaction rolled back both calls")
}

func TestTable_PutUpsertKeepsID(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	id, err := s.Guns.Put(ctx, &types.Gun{ID: 42, Name: "Rifle"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = s.Guns.Put(ctx, &types.Gun{ID: 42, Name: "Rifle", Caliber: ".308"})
	require.NoError(t, err)

	got, err := s.Guns.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, ".308", got.Caliber)

	n, err := s.Guns.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTable_AllByIndex(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	open := types.NewTrap("A1", "Box trap", "2024-04-01")
	closed := types.NewTrap("A2", "Box trap", "2024-04-01")
	closed.Close("2024-04-05")
	other := types.NewTrap("A3", "Foot snare", "2024-04-02")
	require.NoError(t, s.Traps.BulkAdd(ctx, []*types.Trap{open, closed, other}))

	rows, err := s.Traps.AllByIndex(ctx, "is_open", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A3"}, trapNumbers(rows))

	rows, err = s.Traps.AllByIndex(ctx, "type", "Box trap")
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2"}, trapNumbers(rows))

	_, err = s.Traps.AllByIndex(ctx, "memo", "")
	assert.ErrorIs(t, err, types.ErrInvalidField)
}

func TestTable_AllByIndexNull(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	_, err := s.Catches.Add(ctx, types.NewDirectCatch("2024-05-01", "Deer"))
	require.NoError(t, err)
	_, err = s.Catches.Add(ctx, types.NewTrapCatch(7, "2024-05-02", "Boar"))
	require.NoError(t, err)

	rows, err := s.Catches.AllByIndex(ctx, "trap_id", nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Deer", rows[0].SpeciesName)
}

func TestTable_AllOrderedByBreaksTiesByID(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	require.NoError(t, s.Traps.BulkAdd(ctx, []*types.Trap{
		types.NewTrap("B", "", "2024-04-03"),
		types.NewTrap("A", "", "2024-04-01"),
		types.NewTrap("C", "", "2024-04-03"),
	}))

	rows, err := s.Traps.AllOrderedBy(ctx, "setup_date")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, trapNumbers(rows))

	_, err = s.Traps.AllOrderedBy(ctx, "nope")
	assert.ErrorIs(t, err, types.ErrInvalidField)
}

func TestTable_AddRejectsInvalidRows(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	_, err := s.GunLogs.Add(ctx, &types.GunLog{UseDate: "2024-01-01", GunID: 1, Purpose: "sport"})
	assert.ErrorIs(t, err, types.ErrInvalidData)
	assert.ErrorIs(t, err, types.ErrInvalidPurpose)

	_, err = s.ProfileImages.Add(ctx, &types.ProfileImage{Type: "selfie"})
	assert.ErrorIs(t, err, types.ErrInvalidImageType)

	_, err = s.Traps.Add(ctx, nil)
	assert.ErrorIs(t, err, types.ErrInvalidData)
}

func trapNumbers(rows []*types.Trap) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.TrapNumber
	}
	return out
}
