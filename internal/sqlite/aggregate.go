package sqlite

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// AmmoSummary totals purchases and usage for one gun. The gun itself need
// not exist; logs and purchases keep their gun id after the gun is deleted.
func (s *Store) AmmoSummary(ctx context.Context, gunID int64) (types.AmmoSummary, error) {
	sum := types.AmmoSummary{GunID: gunID}
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM ammo_purchases WHERE gun_id = ?", gunID).Scan(&sum.Purchased)
	if err != nil {
		return sum, fmt.Errorf("summing ammo purchases: %w", err)
	}
	err = s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(ammo_count), 0) FROM gun_logs WHERE gun_id = ?", gunID).Scan(&sum.Used)
	if err != nil {
		return sum, fmt.Errorf("summing ammo usage: %w", err)
	}
	sum.Remaining = sum.Purchased - sum.Used
	return sum, nil
}

// AmmoRemaining returns purchased minus used rounds. The result may be
// negative.
func (s *Store) AmmoRemaining(ctx context.Context, gunID int64) (int, error) {
	sum, err := s.AmmoSummary(ctx, gunID)
	return sum.Remaining, err
}

// AmmoSummaries returns the ammo summary of every gun id that appears in
// purchases or logs.
func (s *Store) AmmoSummaries(ctx context.Context) (map[int64]types.AmmoSummary, error) {
	out := make(map[int64]types.AmmoSummary)
	purchased, err := s.groupedSum(ctx, "SELECT gun_id, SUM(amount) FROM ammo_purchases GROUP BY gun_id")
	if err != nil {
		return nil, err
	}
	used, err := s.groupedSum(ctx, "SELECT gun_id, SUM(ammo_count) FROM gun_logs GROUP BY gun_id")
	if err != nil {
		return nil, err
	}
	for id, n := range purchased {
		sum := out[id]
		sum.GunID, sum.Purchased = id, n
		out[id] = sum
	}
	for id, n := range used {
		sum := out[id]
		sum.GunID, sum.Used = id, n
		out[id] = sum
	}
	for id, sum := range out {
		sum.Remaining = sum.Purchased - sum.Used
		out[id] = sum
	}
	return out, nil
}

// CatchCountsByTrap returns the number of catches per trap id.
func (s *Store) CatchCountsByTrap(ctx context.Context) (map[int64]int, error) {
	return s.groupedSum(ctx, "SELECT trap_id, COUNT(*) FROM catches WHERE trap_id IS NOT NULL GROUP BY trap_id")
}

// CatchCountsByGunLog returns the number of catches per gun log id.
func (s *Store) CatchCountsByGunLog(ctx context.Context) (map[int64]int, error) {
	return s.groupedSum(ctx, "SELECT gun_log_id, COUNT(*) FROM catches WHERE gun_log_id IS NOT NULL GROUP BY gun_log_id")
}

func (s *Store) groupedSum(ctx context.Context, query string) (map[int64]int, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("grouped count: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]int)
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("grouped count scan: %w", err)
		}
		out[id] = n
	}
	return out, rows.Err()
}
