package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// ReplaceSpecies swaps the whole species reference table for rows in one
// transaction. An empty slice is rejected so a bad download can never wipe
// the table.
func (s *Store) ReplaceSpecies(ctx context.Context, rows []*types.GameAnimal) (int, error) {
	if len(rows) == 0 {
		return 0, types.ErrNoValidRows
	}
	err := s.Tx(ctx, func(tx *Store) error {
		if err := tx.Species.deleteAll(ctx); err != nil {
			return err
		}
		for _, row := range rows {
			row.ID = 0
			if _, err := tx.Species.Add(ctx, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, types.ErrTransactionFailed) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: replacing species: %w", types.ErrTransactionFailed, err)
	}
	s.logger.Info("species table replaced", "rows", len(rows))
	return len(rows), nil
}
