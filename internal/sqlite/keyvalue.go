package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// Settings is the key-value settings table.
type Settings struct {
	db dbtx
}

// Get returns the stored value for key.
func (s *Settings) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("setting %q: %w", key, types.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("settings get: %w", err)
	}
	return value, nil
}

// Value returns the stored value for key, falling back to the built-in
// default when the key was never written.
func (s *Settings) Value(ctx context.Context, key string) (string, error) {
	v, err := s.Get(ctx, key)
	if errors.Is(err, types.ErrNotFound) {
		if def, ok := types.DefaultSettings[key]; ok {
			return def, nil
		}
	}
	return v, err
}

// Set writes value under key, replacing any previous value.
func (s *Settings) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return types.ErrInvalidID
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return fmt.Errorf("settings set: %w", mapError(err))
	}
	return nil
}

// InsertIfAbsent writes value only when key has no row yet and reports
// whether it did.
func (s *Settings) InsertIfAbsent(ctx context.Context, key, value string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		return false, fmt.Errorf("settings insert: %w", mapError(err))
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// All returns every setting ordered by key.
func (s *Settings) All(ctx context.Context) ([]*types.Setting, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("settings list: %w", err)
	}
	defer rows.Close()

	var out []*types.Setting
	for rows.Next() {
		var v types.Setting
		if err := rows.Scan(&v.Key, &v.Value); err != nil {
			return nil, fmt.Errorf("settings scan: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (s *Settings) deleteAll(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM settings")
	return err
}

// profileColumns are the hunter_profile columns after the key.
var profileColumns = []string{
	"name", "hunting_license_expiry", "gun_permit_expiry",
	"trap_license_expiry", "net_license_expiry",
}

// Profiles is the hunter profile table, keyed by a fixed string.
type Profiles struct {
	db dbtx
}

func profileValues(p *types.HunterProfile) []any {
	return []any{
		p.Key, p.Name, deref(p.HuntingLicenseExpiry), deref(p.GunPermitExpiry),
		deref(p.TrapLicenseExpiry), deref(p.NetLicenseExpiry),
	}
}

// Get returns the profile stored under key.
func (p *Profiles) Get(ctx context.Context, key string) (*types.HunterProfile, error) {
	query := fmt.Sprintf("SELECT key, %s FROM hunter_profile WHERE key = ?", strings.Join(profileColumns, ", "))
	v, err := scanProfile(p.db.QueryRowContext(ctx, query, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %q: %w", key, types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("profile get: %w", err)
	}
	return v, nil
}

// Put writes the profile, replacing any existing row with the same key.
func (p *Profiles) Put(ctx context.Context, v *types.HunterProfile) error {
	if v == nil || v.Key == "" {
		return types.ErrInvalidID
	}
	sets := make([]string, len(profileColumns))
	for i, c := range profileColumns {
		sets[i] = c + " = excluded." + c
	}
	query := fmt.Sprintf("INSERT INTO hunter_profile (key, %s) VALUES (?, %s) ON CONFLICT(key) DO UPDATE SET %s",
		strings.Join(profileColumns, ", "), placeholders(len(profileColumns)), strings.Join(sets, ", "))
	if _, err := p.db.ExecContext(ctx, query, profileValues(v)...); err != nil {
		return fmt.Errorf("profile put: %w", mapError(err))
	}
	return nil
}

// InsertIfAbsent writes the profile only when its key has no row yet.
func (p *Profiles) InsertIfAbsent(ctx context.Context, v *types.HunterProfile) (bool, error) {
	if v == nil || v.Key == "" {
		return false, types.ErrInvalidID
	}
	query := fmt.Sprintf("INSERT OR IGNORE INTO hunter_profile (key, %s) VALUES (?, %s)",
		strings.Join(profileColumns, ", "), placeholders(len(profileColumns)))
	res, err := p.db.ExecContext(ctx, query, profileValues(v)...)
	if err != nil {
		return false, fmt.Errorf("profile insert: %w", mapError(err))
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Update applies a partial update to the profile stored under key.
func (p *Profiles) Update(ctx context.Context, key string, fields map[string]any) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		known := false
		for _, c := range profileColumns {
			known = known || c == name
		}
		if !known {
			return fmt.Errorf("hunter_profile.%s: %w", name, types.ErrInvalidField)
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		_, err := p.Get(ctx, key)
		return err
	}
	sort.Strings(names)

	sets := make([]string, len(names))
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		sets[i] = name + " = ?"
		args = append(args, deref(fields[name]))
	}
	args = append(args, key)

	res, err := p.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE hunter_profile SET %s WHERE key = ?", strings.Join(sets, ", ")), args...)
	if err != nil {
		return fmt.Errorf("profile update: %w", mapError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("profile %q: %w", key, types.ErrNotFound)
	}
	return nil
}

// Count returns the number of stored profiles.
func (p *Profiles) Count(ctx context.Context) (int, error) {
	var n int
	if err := p.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM hunter_profile").Scan(&n); err != nil {
		return 0, fmt.Errorf("profile count: %w", err)
	}
	return n, nil
}

// All returns every profile ordered by key.
func (p *Profiles) All(ctx context.Context) ([]*types.HunterProfile, error) {
	query := fmt.Sprintf("SELECT key, %s FROM hunter_profile ORDER BY key", strings.Join(profileColumns, ", "))
	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("profile list: %w", err)
	}
	defer rows.Close()

	var out []*types.HunterProfile
	for rows.Next() {
		v, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("profile scan: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (p *Profiles) deleteAll(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, "DELETE FROM hunter_profile")
	return err
}

func scanProfile(r rowScanner) (*types.HunterProfile, error) {
	var v types.HunterProfile
	err := r.Scan(&v.Key, &v.Name, &v.HuntingLicenseExpiry, &v.GunPermitExpiry,
		&v.TrapLicenseExpiry, &v.NetLicenseExpiry)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
