package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// Store groups the entity tables over one connection or one transaction.
type Store struct {
	db     dbtx
	conn   *sql.DB
	logger *slog.Logger

	TrapTypes      *Table[types.TrapType]
	Traps          *Table[types.Trap]
	Catches        *Table[types.CatchRecord]
	Guns           *Table[types.Gun]
	GunLogs        *Table[types.GunLog]
	AmmoPurchases  *Table[types.AmmoPurchase]
	Species        *Table[types.GameAnimal]
	ChecklistSets  *Table[types.ChecklistSet]
	ChecklistItems *Table[types.ChecklistItem]
	ProfileImages  *Table[types.ProfileImage]
	Settings       *Settings
	Profiles       *Profiles
}

func newStore(db dbtx, conn *sql.DB, logger *slog.Logger) *Store {
	return &Store{
		db:             db,
		conn:           conn,
		logger:         logger,
		TrapTypes:      newTable(trapTypesDef, db, conn),
		Traps:          newTable(trapsDef, db, conn),
		Catches:        newTable(catchesDef, db, conn),
		Guns:           newTable(gunsDef, db, conn),
		GunLogs:        newTable(gunLogsDef, db, conn),
		AmmoPurchases:  newTable(ammoPurchasesDef, db, conn),
		Species:        newTable(speciesDef, db, conn),
		ChecklistSets:  newTable(checklistSetsDef, db, conn),
		ChecklistItems: newTable(checklistItemsDef, db, conn),
		ProfileImages:  newTable(profileImagesDef, db, conn),
		Settings:       &Settings{db: db},
		Profiles:       &Profiles{db: db},
	}
}

// Tx runs fn against a transaction-bound Store. An error from fn rolls the
// transaction back and is returned unchanged; a failed commit is reported as
// ErrTransactionFailed. Called on a Store that is already inside a
// transaction, Tx runs fn in that transaction.
func (s *Store) Tx(ctx context.Context, fn func(*Store) error) error {
	if s.conn == nil {
		return fn(s)
	}
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", types.ErrTransactionFailed, err)
	}
	defer tx.Rollback()

	if err := fn(newStore(tx, nil, s.logger)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", types.ErrTransactionFailed, err)
	}
	return nil
}

// AddCatch validates c and inserts it. A catch may belong to a trap or a
// gun log, not both.
func (s *Store) AddCatch(ctx context.Context, c *types.CatchRecord) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, fmt.Errorf("catch: %w", err)
	}
	return s.Catches.Add(ctx, c)
}

// CloseTrap marks the trap closed on the given date.
func (s *Store) CloseTrap(ctx context.Context, id int64, on types.Date) error {
	if !on.Valid() {
		return types.ErrInvalidDate
	}
	return s.Traps.Update(ctx, id, map[string]any{"is_open": false, "close_date": on})
}

// ReopenTrap marks the trap open again and clears its close date.
func (s *Store) ReopenTrap(ctx context.Context, id int64) error {
	return s.Traps.Update(ctx, id, map[string]any{"is_open": true, "close_date": nil})
}

// ToggleItem flips the checked state of a checklist item and returns the new
// state.
func (s *Store) ToggleItem(ctx context.Context, id int64) (bool, error) {
	var checked bool
	err := s.Tx(ctx, func(tx *Store) error {
		item, err := tx.ChecklistItems.Get(ctx, id)
		if err != nil {
			return err
		}
		checked = !item.IsChecked
		return tx.ChecklistItems.Update(ctx, id, map[string]any{"is_checked": checked})
	})
	return checked, err
}

// ResetChecks unchecks every item of a checklist set and reports how many
// items changed.
func (s *Store) ResetChecks(ctx context.Context, listID int64) (int64, error) {
	if _, err := s.ChecklistSets.Get(ctx, listID); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE checklist_items SET is_checked = 0 WHERE list_id = ? AND is_checked = 1", listID)
	if err != nil {
		return 0, fmt.Errorf("checklist_items reset: %w", err)
	}
	return res.RowsAffected()
}

// Profile returns the hunter profile.
func (s *Store) Profile(ctx context.Context) (*types.HunterProfile, error) {
	return s.Profiles.Get(ctx, types.ProfileKey)
}

// UpdateProfile applies a partial update to the hunter profile.
func (s *Store) UpdateProfile(ctx context.Context, fields map[string]any) error {
	return s.Profiles.Update(ctx, types.ProfileKey, fields)
}
