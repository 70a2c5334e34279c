package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// addTrapWithCatches stores a trap with n catches and returns the trap id.
func addTrapWithCatches(t *testing.T, s *Store, number string, n int) int64 {
	t.Helper()
	ctx := context.Background()
	id, err := s.Traps.Add(ctx, types.NewTrap(number, "Box trap", "2024-04-01"))
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		_, err := s.AddCatch(ctx, types.NewTrapCatch(id, "2024-04-02", "Boar"))
		require.NoError(t, err)
	}
	return id
}

// failDeletesOn installs a trigger that aborts any delete on table.
func failDeletesOn(t *testing.T, b *Backend, table string) {
	t.Helper()
	_, err := b.db.Exec("CREATE TRIGGER fail_delete BEFORE DELETE ON " + table +
		" BEGIN SELECT RAISE(ABORT, 'injected failure'); END;")
	require.NoError(t, err)
}

func count(t *testing.T, b *Backend, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, b.db.QueryRow(query, args...).Scan(&n))
	return n
}

func TestDeleteTrap_RemovesCatches(t *testing.T) {
	b, s := setupBackend(t)
	ctx := context.Background()

	id := addTrapWithCatches(t, s, "A1", 3)
	other := addTrapWithCatches(t, s, "A2", 1)

	res, err := s.DeleteTrap(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, CascadeResult{Table: types.TableTraps, ID: id, Children: 3}, res)

	assert.Zero(t, count(t, b, "SELECT COUNT(*) FROM catches WHERE trap_id = ?", id))
	assert.Equal(t, 1, count(t, b, "SELECT COUNT(*) FROM catches WHERE trap_id = ?", other))
	_, err = s.Traps.Get(ctx, id)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteTrap_Missing(t *testing.T) {
	b, s := setupBackend(t)
	ctx := context.Background()
	addTrapWithCatches(t, s, "A1", 2)

	_, err := s.DeleteTrap(ctx, 999)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NotErrorIs(t, err, types.ErrTransactionFailed)
	assert.Equal(t, 2, count(t, b, "SELECT COUNT(*) FROM catches"))
}

func TestDeleteTrap_FailureLeavesEverything(t *testing.T) {
	b, s := setupBackend(t)
	ctx := context.Background()

	id := addTrapWithCatches(t, s, "A1", 4)
	failDeletesOn(t, b, "traps")

	_, err := s.DeleteTrap(ctx, id)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrTransactionFailed)

	assert.Equal(t, 1, count(t, b, "SELECT COUNT(*) FROM traps"))
	assert.Equal(t, 4, count(t, b, "SELECT COUNT(*) FROM catches WHERE trap_id = ?", id))
}

func TestDeleteGunLog_RemovesOnlyItsCatches(t *testing.T) {
	b, s := setupBackend(t)
	ctx := context.Background()

	gunID, err := s.Guns.Add(ctx, &types.Gun{Name: "Rifle"})
	require.NoError(t, err)
	logID, err := s.GunLogs.Add(ctx, &types.GunLog{UseDate: "2024-11-15", GunID: gunID, Purpose: types.PurposeHunting, AmmoCount: 2})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := s.AddCatch(ctx, types.NewGunCatch(logID, "2024-11-15", "Deer"))
		require.NoError(t, err)
	}
	_, err = s.AddCatch(ctx, types.NewDirectCatch("2024-11-16", "Hare"))
	require.NoError(t, err)

	res, err := s.DeleteGunLog(ctx, logID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Children)
	assert.Equal(t, 1, count(t, b, "SELECT COUNT(*) FROM catches"))
	assert.Zero(t, count(t, b, "SELECT COUNT(*) FROM gun_logs"))
}

func TestDeleteGunLog_FailureLeavesEverything(t *testing.T) {
	b, s := setupBackend(t)
	ctx := context.Background()

	logID, err := s.GunLogs.Add(ctx, &types.GunLog{UseDate: "2024-11-15", GunID: 1, Purpose: types.PurposeHunting})
	require.NoError(t, err)
	_, err = s.AddCatch(ctx, types.NewGunCatch(logID, "2024-11-15", "Deer"))
	require.NoError(t, err)
	failDeletesOn(t, b, "gun_logs")

	_, err = s.DeleteGunLog(ctx, logID)
	assert.ErrorIs(t, err, types.ErrTransactionFailed)
	assert.Equal(t, 1, count(t, b, "SELECT COUNT(*) FROM catches"))
	assert.Equal(t, 1, count(t, b, "SELECT COUNT(*) FROM gun_logs"))
}

func TestDeleteChecklistSet_RemovesItems(t *testing.T) {
	b, s := setupBackend(t)
	ctx := context.Background()

	setID, err := s.ChecklistSets.Add(ctx, &types.ChecklistSet{Name: "Day trip"})
	require.NoError(t, err)
	keep, err := s.ChecklistSets.Add(ctx, &types.ChecklistSet{Name: "Overnight"})
	require.NoError(t, err)
	require.NoError(t, s.ChecklistItems.BulkAdd(ctx, []*types.ChecklistItem{
		{ListID: setID, Name: "Knife"},
		{ListID: setID, Name: "Rope"},
		{ListID: keep, Name: "Tent"},
	}))

	res, err := s.DeleteChecklistSet(ctx, setID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Children)
	assert.Equal(t, 1, count(t, b, "SELECT COUNT(*) FROM checklist_items"))
	assert.Equal(t, 1, count(t, b, "SELECT COUNT(*) FROM checklist_sets"))
}

func TestDeleteChecklistSet_FailureLeavesEverything(t *testing.T) {
	b, s := setupBackend(t)
	ctx := context.Background()

	setID, err := s.ChecklistSets.Add(ctx, &types.ChecklistSet{Name: "Day trip"})
	require.NoError(t, err)
	_, err = s.ChecklistItems.Add(ctx, &types.ChecklistItem{ListID: setID, Name: "Knife"})
	require.NoError(t, err)
	failDeletesOn(t, b, "checklist_sets")

	_, err = s.DeleteChecklistSet(ctx, setID)
	assert.ErrorIs(t, err, types.ErrTransactionFailed)
	assert.Equal(t, 1, count(t, b, "SELECT COUNT(*) FROM checklist_items"))
}

func TestDeleteGun_KeepsLogsAndCatches(t *testing.T) {
	_, s := setupBackend(t)
	ctx := context.Background()

	gunID, err := s.Guns.Add(ctx, &types.Gun{Name: "Rifle"})
	require.NoError(t, err)
	logID, err := s.GunLogs.Add(ctx, &types.GunLog{UseDate: "2024-11-15", GunID: gunID, Purpose: types.PurposeHunting, AmmoCount: 3})
	require.NoError(t, err)
	_, err = s.AddCatch(ctx, types.NewGunCatch(logID, "2024-11-15", "Deer"))
	require.NoError(t, err)
	_, err = s.AmmoPurchases.Add(ctx, &types.AmmoPurchase{GunID: gunID, PurchaseDate: "2024-11-01", Amount: 10})
	require.NoError(t, err)

	require.NoError(t, s.DeleteGun(ctx, gunID))

	log, err := s.GunLogs.Get(ctx, logID)
	require.NoError(t, err)
	assert.Equal(t, gunID, log.GunID)
	catches, err := s.Catches.AllByIndex(ctx, "gun_log_id", logID)
	require.NoError(t, err)
	assert.Len(t, catches, 1)

	remaining, err := s.AmmoRemaining(ctx, gunID)
	require.NoError(t, err)
	assert.Equal(t, 7, remaining)

	assert.ErrorIs(t, s.DeleteGun(ctx, gunID), types.ErrNotFound)
}
