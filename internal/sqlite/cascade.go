// This file implements parent deletes that remove their dependent rows in
// the same transaction.
package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// CascadeResult reports a completed parent delete.
type CascadeResult struct {
	Table    string `json:"table"`
	ID       int64  `json:"id"`
	Children int64  `json:"children"`
}

// cascade deletes child rows matching the parent id, then the parent itself.
// Either everything goes or nothing does.
func (s *Store) cascade(ctx context.Context, parent string, id int64,
	getParent func(*Store) error,
	deleteChildren func(*Store) (int64, error),
	deleteParent func(*Store) error,
) (CascadeResult, error) {
	result := CascadeResult{Table: parent, ID: id}
	if id <= 0 {
		return result, types.ErrInvalidID
	}
	err := s.Tx(ctx, func(tx *Store) error {
		if err := getParent(tx); err != nil {
			return err
		}
		n, err := deleteChildren(tx)
		if err != nil {
			return err
		}
		if err := deleteParent(tx); err != nil {
			return err
		}
		result.Children = n
		return nil
	})
	switch {
	case err == nil:
		s.logger.Info("cascade delete", "table", parent, "id", id, "children", result.Children)
		return result, nil
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrTransactionFailed):
		return CascadeResult{Table: parent, ID: id}, err
	default:
		return CascadeResult{Table: parent, ID: id}, fmt.Errorf("%w: deleting %s %d: %w", types.ErrTransactionFailed, parent, id, err)
	}
}

// DeleteTrap removes a trap and every catch recorded against it.
func (s *Store) DeleteTrap(ctx context.Context, id int64) (CascadeResult, error) {
	return s.cascade(ctx, types.TableTraps, id,
		func(tx *Store) error { _, err := tx.Traps.Get(ctx, id); return err },
		func(tx *Store) (int64, error) { return tx.Catches.deleteWhere(ctx, "trap_id", id) },
		func(tx *Store) error { return tx.Traps.Delete(ctx, id) },
	)
}

// DeleteGunLog removes a gun log and every catch recorded against it.
func (s *Store) DeleteGunLog(ctx context.Context, id int64) (CascadeResult, error) {
	return s.cascade(ctx, types.TableGunLogs, id,
		func(tx *Store) error { _, err := tx.GunLogs.Get(ctx, id); return err },
		func(tx *Store) (int64, error) { return tx.Catches.deleteWhere(ctx, "gun_log_id", id) },
		func(tx *Store) error { return tx.GunLogs.Delete(ctx, id) },
	)
}

// DeleteChecklistSet removes a checklist set and all of its items.
func (s *Store) DeleteChecklistSet(ctx context.Context, id int64) (CascadeResult, error) {
	return s.cascade(ctx, types.TableChecklistSets, id,
		func(tx *Store) error { _, err := tx.ChecklistSets.Get(ctx, id); return err },
		func(tx *Store) (int64, error) { return tx.ChecklistItems.deleteWhere(ctx, "list_id", id) },
		func(tx *Store) error { return tx.ChecklistSets.Delete(ctx, id) },
	)
}

// DeleteGun removes only the gun. Its logs and ammo purchases stay and
// keep pointing at the deleted id.
func (s *Store) DeleteGun(ctx context.Context, id int64) error {
	if err := s.Guns.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("gun deleted", "id", id)
	return nil
}
