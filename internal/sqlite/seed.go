// This file seeds default rows on every attach. Each step is idempotent.
package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// DefaultTrapTypes are offered as trap type choices on a fresh database.
var DefaultTrapTypes = []string{"Foot snare", "Box trap"}

// seed inserts the default trap types, the empty hunter profile and the
// default settings. Rows that already exist are left untouched.
func seed(ctx context.Context, s *Store) error {
	trapTypes := make([]*types.TrapType, len(DefaultTrapTypes))
	for i, name := range DefaultTrapTypes {
		trapTypes[i] = &types.TrapType{Name: name}
	}
	if err := s.TrapTypes.BulkAdd(ctx, trapTypes); err != nil && !errors.Is(err, types.ErrConstraintViolation) {
		return fmt.Errorf("seeding trap types: %w", err)
	}

	if _, err := s.Profiles.InsertIfAbsent(ctx, &types.HunterProfile{Key: types.ProfileKey}); err != nil {
		return fmt.Errorf("seeding profile: %w", err)
	}

	for _, key := range []string{types.SettingTheme, types.SettingFontSize} {
		if _, err := s.Settings.InsertIfAbsent(ctx, key, types.DefaultSettings[key]); err != nil {
			return fmt.Errorf("seeding setting %s: %w", key, err)
		}
	}
	return nil
}
