// This file implements whole-database export and import as one JSON document.
package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// BackupFormat identifies huntbook backup documents.
const BackupFormat = "huntbook-backup"

// Backup is the exported database. Image blobs are base64 in JSON.
type Backup struct {
	Format        string       `json:"format"`
	ID            string       `json:"id"`
	SchemaVersion int          `json:"schema_version"`
	ExportedAt    time.Time    `json:"exported_at"`
	Tables        BackupTables `json:"tables"`
}

// BackupTables holds every row of every table.
type BackupTables struct {
	TrapTypes      []*types.TrapType      `json:"trap_types"`
	Traps          []*types.Trap          `json:"traps"`
	Guns           []*types.Gun           `json:"guns"`
	GunLogs        []*types.GunLog        `json:"gun_logs"`
	Catches        []*types.CatchRecord   `json:"catches"`
	AmmoPurchases  []*types.AmmoPurchase  `json:"ammo_purchases"`
	GameAnimals    []*types.GameAnimal    `json:"game_animals"`
	ChecklistSets  []*types.ChecklistSet  `json:"checklist_sets"`
	ChecklistItems []*types.ChecklistItem `json:"checklist_items"`
	Settings       []*types.Setting       `json:"settings"`
	HunterProfile  []*types.HunterProfile `json:"hunter_profile"`
	ProfileImages  []*types.ProfileImage  `json:"profile_images"`
}

// Rows returns the total number of rows in the backup.
func (t *BackupTables) Rows() int {
	return len(t.TrapTypes) + len(t.Traps) + len(t.Guns) + len(t.GunLogs) + len(t.Catches) +
		len(t.AmmoPurchases) + len(t.GameAnimals) + len(t.ChecklistSets) + len(t.ChecklistItems) +
		len(t.Settings) + len(t.HunterProfile) + len(t.ProfileImages)
}

// Snapshot reads every table inside one transaction.
func (s *Store) Snapshot(ctx context.Context) (*Backup, error) {
	doc := &Backup{
		Format:        BackupFormat,
		ID:            uuid.NewString(),
		SchemaVersion: SchemaVersion,
		ExportedAt:    time.Now().UTC(),
	}
	t := &doc.Tables
	err := s.Tx(ctx, func(tx *Store) error {
		var err error
		if t.TrapTypes, err = tx.TrapTypes.All(ctx); err != nil {
			return err
		}
		if t.Traps, err = tx.Traps.All(ctx); err != nil {
			return err
		}
		if t.Guns, err = tx.Guns.All(ctx); err != nil {
			return err
		}
		if t.GunLogs, err = tx.GunLogs.All(ctx); err != nil {
			return err
		}
		if t.Catches, err = tx.Catches.All(ctx); err != nil {
			return err
		}
		if t.AmmoPurchases, err = tx.AmmoPurchases.All(ctx); err != nil {
			return err
		}
		if t.GameAnimals, err = tx.Species.All(ctx); err != nil {
			return err
		}
		if t.ChecklistSets, err = tx.ChecklistSets.All(ctx); err != nil {
			return err
		}
		if t.ChecklistItems, err = tx.ChecklistItems.All(ctx); err != nil {
			return err
		}
		if t.Settings, err = tx.Settings.All(ctx); err != nil {
			return err
		}
		if t.HunterProfile, err = tx.Profiles.All(ctx); err != nil {
			return err
		}
		t.ProfileImages, err = tx.ProfileImages.All(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reading backup snapshot: %w", err)
	}
	return doc, nil
}

// Export writes the whole database to w as an indented JSON document.
func (s *Store) Export(ctx context.Context, w io.Writer) (*Backup, error) {
	doc, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding backup: %w", err)
	}
	return doc, nil
}

// DecodeBackup reads and validates a backup document without touching the
// database.
func DecodeBackup(r io.Reader) (*Backup, error) {
	var doc Backup
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidBackup, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the document header and every row.
func (d *Backup) Validate() error {
	if d.Format != BackupFormat {
		return fmt.Errorf("%w: unknown format %q", types.ErrInvalidBackup, d.Format)
	}
	if d.SchemaVersion < 1 || d.SchemaVersion > SchemaVersion {
		return fmt.Errorf("%w: schema version %d not supported", types.ErrInvalidBackup, d.SchemaVersion)
	}
	t := &d.Tables
	checks := []error{
		validateRows(trapTypesDef, t.TrapTypes),
		validateRows(trapsDef, t.Traps),
		validateRows(gunsDef, t.Guns),
		validateRows(gunLogsDef, t.GunLogs),
		validateRows(catchesDef, t.Catches),
		validateRows(ammoPurchasesDef, t.AmmoPurchases),
		validateRows(speciesDef, t.GameAnimals),
		validateRows(checklistSetsDef, t.ChecklistSets),
		validateRows(checklistItemsDef, t.ChecklistItems),
		validateRows(profileImagesDef, t.ProfileImages),
	}
	for _, s := range t.Settings {
		if s == nil || s.Key == "" {
			checks = append(checks, fmt.Errorf("settings: empty key"))
		}
	}
	for _, p := range t.HunterProfile {
		if p == nil || p.Key == "" {
			checks = append(checks, fmt.Errorf("hunter_profile: empty key"))
		}
	}
	if err := errors.Join(checks...); err != nil {
		return fmt.Errorf("%w: %w", types.ErrInvalidBackup, err)
	}
	return nil
}

func validateRows[T any](def *tableDef[T], rows []*T) error {
	for i, v := range rows {
		if v == nil {
			return fmt.Errorf("%s row %d: empty", def.name, i)
		}
		if def.id(v) <= 0 {
			return fmt.Errorf("%s row %d: missing id", def.name, i)
		}
		if def.validate != nil {
			if err := def.validate(v); err != nil {
				return fmt.Errorf("%s row %d: %w", def.name, i, err)
			}
		}
	}
	return nil
}

// Restore replaces every table with the backup contents in one transaction,
// keeping row ids.
func (s *Store) Restore(ctx context.Context, doc *Backup) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	t := &doc.Tables
	err := s.Tx(ctx, func(tx *Store) error {
		clears := []func(context.Context) error{
			tx.ProfileImages.deleteAll, tx.Profiles.deleteAll, tx.Settings.deleteAll,
			tx.ChecklistItems.deleteAll, tx.ChecklistSets.deleteAll, tx.Species.deleteAll,
			tx.AmmoPurchases.deleteAll, tx.Catches.deleteAll, tx.GunLogs.deleteAll,
			tx.Guns.deleteAll, tx.Traps.deleteAll, tx.TrapTypes.deleteAll,
		}
		for _, del := range clears {
			if err := del(ctx); err != nil {
				return err
			}
		}
		if err := putAll(ctx, tx.TrapTypes, t.TrapTypes); err != nil {
			return err
		}
		if err := putAll(ctx, tx.Traps, t.Traps); err != nil {
			return err
		}
		if err := putAll(ctx, tx.Guns, t.Guns); err != nil {
			return err
		}
		if err := putAll(ctx, tx.GunLogs, t.GunLogs); err != nil {
			return err
		}
		if err := putAll(ctx, tx.Catches, t.Catches); err != nil {
			return err
		}
		if err := putAll(ctx, tx.AmmoPurchases, t.AmmoPurchases); err != nil {
			return err
		}
		if err := putAll(ctx, tx.Species, t.GameAnimals); err != nil {
			return err
		}
		if err := putAll(ctx, tx.ChecklistSets, t.ChecklistSets); err != nil {
			return err
		}
		if err := putAll(ctx, tx.ChecklistItems, t.ChecklistItems); err != nil {
			return err
		}
		if err := putAll(ctx, tx.ProfileImages, t.ProfileImages); err != nil {
			return err
		}
		for _, st := range t.Settings {
			if err := tx.Settings.Set(ctx, st.Key, st.Value); err != nil {
				return err
			}
		}
		for _, p := range t.HunterProfile {
			if err := tx.Profiles.Put(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, types.ErrTransactionFailed) {
			return err
		}
		return fmt.Errorf("%w: restoring backup: %w", types.ErrTransactionFailed, err)
	}
	s.logger.Info("backup restored", "id", doc.ID, "rows", t.Rows())
	return nil
}

// Import decodes a backup from r and restores it. A document that fails to
// decode or validate leaves the database untouched.
func (s *Store) Import(ctx context.Context, r io.Reader) (*Backup, error) {
	doc, err := DecodeBackup(r)
	if err != nil {
		return nil, err
	}
	if err := s.Restore(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func putAll[T any](ctx context.Context, t *Table[T], rows []*T) error {
	for _, v := range rows {
		if _, err := t.Put(ctx, v); err != nil {
			return err
		}
	}
	return nil
}
