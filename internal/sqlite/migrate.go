// This file implements schema versioning. Each migration runs in its own
// transaction together with the PRAGMA user_version bump, so a failed
// migration leaves the database at the previous version with rows intact.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// migration upgrades the schema from version-1 to version.
type migration struct {
	version int
	name    string
	apply   func(ctx context.Context, tx *sql.Tx) error
}

// migrations is ordered by version and must end at SchemaVersion.
var migrations = []migration{
	{version: 1, name: "base tables", apply: execAll(schemaV1)},
	{version: 2, name: "checklists, profile images, gun-log catches", apply: migrateV2},
	{version: 3, name: "rebuild species reference table", apply: execAll(schemaV3)},
}

func execAll(stmts []string) func(ctx context.Context, tx *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	}
}

func migrateV2(ctx context.Context, tx *sql.Tx) error {
	if err := execAll(schemaV2)(ctx, tx); err != nil {
		return err
	}
	exists, err := columnExists(ctx, tx, "catches", "gun_log_id")
	if err != nil {
		return err
	}
	if !exists {
		if _, err := tx.ExecContext(ctx, addCatchesGunLogID); err != nil {
			return fmt.Errorf("adding catches.gun_log_id: %w", err)
		}
	}
	_, err = tx.ExecContext(ctx, idxCatchesGunLog)
	return err
}

// columnExists reports whether table has the named column.
func columnExists(ctx context.Context, q dbtx, table, column string) (bool, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var cid, notnull, pk int
		var name, typ string
		var dflt *string
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("scanning column info: %w", err)
		}
		if name == column {
			found = true
		}
	}
	return found, rows.Err()
}

// readSchemaVersion returns PRAGMA user_version. A new database reports 0.
func readSchemaVersion(ctx context.Context, q dbtx) (int, error) {
	var v int
	if err := q.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

// migrate brings the database at path up to SchemaVersion. It refuses to
// touch a database written by a newer program.
func migrate(ctx context.Context, db *sql.DB, path string, logger *slog.Logger) error {
	onDisk, err := readSchemaVersion(ctx, db)
	if err != nil {
		return &types.SchemaOpenError{Path: path, Supported: SchemaVersion, Err: err}
	}
	if onDisk > SchemaVersion {
		return &types.SchemaOpenError{Path: path, OnDisk: onDisk, Supported: SchemaVersion, Err: types.ErrSchemaTooNew}
	}

	for _, m := range migrations {
		if m.version <= onDisk {
			continue
		}
		if err := applyMigration(ctx, db, m); err != nil {
			return &types.SchemaOpenError{Path: path, OnDisk: onDisk, Supported: SchemaVersion, Err: err}
		}
		logger.Info("schema migrated", "version", m.version, "migration", m.name)
		onDisk = m.version
	}

	if err := probeSchema(ctx, db); err != nil {
		return &types.SchemaOpenError{Path: path, OnDisk: onDisk, Supported: SchemaVersion, Err: err}
	}
	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning migration %d: %w", m.version, err)
	}
	defer tx.Rollback()

	if err := m.apply(ctx, tx); err != nil {
		return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
		return fmt.Errorf("setting schema version %d: %w", m.version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration %d: %w", m.version, err)
	}
	return nil
}
