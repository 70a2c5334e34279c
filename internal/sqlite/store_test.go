package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

func TestStore_CloseAndReopenTrap(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	id, err := s.Traps.Add(ctx, types.NewTrap("A1", "Box trap", "2024-04-01"))
	require.NoError(t, err)

	require.NoError(t, s.CloseTrap(ctx, id, "2024-04-10"))
	trap, err := s.Traps.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, trap.IsOpen)
	require.NotNil(t, trap.CloseDate)
	assert.Equal(t, types.Date("2024-04-10"), *trap.CloseDate)
	assert.NoError(t, trap.Validate())

	require.NoError(t, s.ReopenTrap(ctx, id))
	trap, err = s.Traps.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, trap.IsOpen)
	assert.Nil(t, trap.CloseDate)

	assert.ErrorIs(t, s.CloseTrap(ctx, id, "10/04/2024"), types.ErrInvalidDate)
	assert.ErrorIs(t, s.CloseTrap(ctx, id+1, "2024-04-10"), types.ErrNotFound)
}

func TestStore_AddCatchRejectsTwoParents(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	c := types.NewTrapCatch(1, "2024-04-02", "Boar")
	c.GunLogID = ptr(int64(2))
	_, err := s.AddCatch(ctx, c)
	assert.ErrorIs(t, err, types.ErrAmbiguousCatchLink)

	// The table itself accepts the row.
	_, err = s.Catches.Add(ctx, c)
	assert.NoError(t, err)
}

func TestStore_AddCatchDefaultsEnums(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	id, err := s.AddCatch(ctx, &types.CatchRecord{CatchDate: "2024-04-02", SpeciesName: "Boar"})
	require.NoError(t, err)
	got, err := s.Catches.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, types.GenderUnknown, got.Gender)
	assert.Equal(t, types.AgeUnknown, got.Age)
	assert.Equal(t, types.MethodDirect, got.Method())
}

func TestStore_ToggleAndResetChecks(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	setID, err := s.ChecklistSets.Add(ctx, &types.ChecklistSet{Name: "Day trip"})
	require.NoError(t, err)
	knife := &types.ChecklistItem{ListID: setID, Name: "Knife"}
	rope := &types.ChecklistItem{ListID: setID, Name: "Rope"}
	require.NoError(t, s.ChecklistItems.BulkAdd(ctx, []*types.ChecklistItem{knife, rope}))

	checked, err := s.ToggleItem(ctx, knife.ID)
	require.NoError(t, err)
	assert.True(t, checked)
	checked, err = s.ToggleItem(ctx, rope.ID)
	require.NoError(t, err)
	assert.True(t, checked)
	checked, err = s.ToggleItem(ctx, rope.ID)
	require.NoError(t, err)
	assert.False(t, checked)

	n, err := s.ResetChecks(ctx, setID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	items, err := s.ChecklistItems.AllByIndex(ctx, "list_id", setID)
	require.NoError(t, err)
	for _, item := range items {
		assert.False(t, item.IsChecked, item.Name)
	}

	_, err = s.ToggleItem(ctx, 999)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = s.ResetChecks(ctx, 999)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestStore_TxRollsBackOnError(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Tx(ctx, func(tx *Store) error {
		if _, err := tx.Guns.Add(ctx, &types.Gun{Name: "Rifle"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := s.Guns.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_ProfileUpdate(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	require.NoError(t, s.UpdateProfile(ctx, map[string]any{
		"name":                   "Aiko",
		"hunting_license_expiry": types.Date("2026-03-31"),
	}))
	p, err := s.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Aiko", p.Name)
	require.NotNil(t, p.HuntingLicenseExpiry)
	assert.Equal(t, types.Date("2026-03-31"), *p.HuntingLicenseExpiry)
	assert.Nil(t, p.GunPermitExpiry)

	assert.ErrorIs(t, s.UpdateProfile(ctx, map[string]any{"age": 30}), types.ErrInvalidField)
	assert.ErrorIs(t, s.Profiles.Update(ctx, "other", map[string]any{"name": "x"}), types.ErrNotFound)
}

func TestStore_Settings(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	theme, err := s.Settings.Value(ctx, types.SettingTheme)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultTheme, theme)

	require.NoError(t, s.Settings.Set(ctx, types.SettingTheme, "dark"))
	theme, err = s.Settings.Get(ctx, types.SettingTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)

	inserted, err := s.Settings.InsertIfAbsent(ctx, types.SettingTheme, "light")
	require.NoError(t, err)
	assert.False(t, inserted)

	_, err = s.Settings.Get(ctx, "unknown")
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = s.Settings.Value(ctx, "unknown")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestStore_AmmoSummary(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	gunID, err := s.Guns.Add(ctx, &types.Gun{Name: "Rifle"})
	require.NoError(t, err)
	require.NoError(t, s.AmmoPurchases.BulkAdd(ctx, []*types.AmmoPurchase{
		{GunID: gunID, PurchaseDate: "2024-10-01", Amount: 20},
		{GunID: gunID, PurchaseDate: "2024-10-15", Amount: 5},
	}))
	require.NoError(t, s.GunLogs.BulkAdd(ctx, []*types.GunLog{
		{UseDate: "2024-11-01", GunID: gunID, Purpose: types.PurposeHunting, AmmoCount: 12},
		{UseDate: "2024-11-02", GunID: gunID, Purpose: types.PurposePractice, AmmoCount: 18},
	}))

	sum, err := s.AmmoSummary(ctx, gunID)
	require.NoError(t, err)
	assert.Equal(t, types.AmmoSummary{GunID: gunID, Purchased: 25, Used: 30, Remaining: -5}, sum)

	all, err := s.AmmoSummaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, sum, all[gunID])

	empty, err := s.AmmoRemaining(ctx, 999)
	require.NoError(t, err)
	assert.Zero(t, empty)
}

func TestStore_CatchCounts(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	a := addTrapWithCatches(t, s, "A1", 2)
	b := addTrapWithCatches(t, s, "A2", 0)
	_, err := s.AddCatch(ctx, types.NewGunCatch(5, "2024-04-02", "Deer"))
	require.NoError(t, err)

	byTrap, err := s.CatchCountsByTrap(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, byTrap[a])
	assert.Zero(t, byTrap[b])

	byLog, err := s.CatchCountsByGunLog(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{5: 1}, byLog)
}
