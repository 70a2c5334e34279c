// This file verifies that migrations produced every expected table and column.
package sqlite

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// expectedSchema maps each table to the columns the program reads and writes.
var expectedSchema = map[string][]string{
	types.TableTrapTypes: {"id", "name"},
	types.TableTraps: {
		"id", "trap_number", "type", "setup_date", "close_date",
		"latitude", "longitude", "memo", "image", "is_open",
	},
	types.TableCatches: {
		"id", "trap_id", "gun_log_id", "catch_date", "species_name", "gender", "age",
		"latitude", "longitude", "memo", "image",
	},
	types.TableGuns: {"id", "name", "type", "caliber", "permit_date", "permit_expiry"},
	types.TableGunLogs: {
		"id", "use_date", "gun_id", "purpose", "location", "companion", "ammo_count",
		"latitude", "longitude", "memo", "image",
	},
	types.TableAmmoPurchases: {"id", "gun_id", "purchase_date", "amount"},
	types.TableGameAnimals: {
		"id", "category", "is_game_animal", "species_name", "method_gun", "method_trap",
		"method_net", "gender_restriction", "count_limit", "prohibited_area", "habitat",
		"notes", "ecology", "damage", "image_1", "image_2",
	},
	types.TableChecklistSets:  {"id", "name"},
	types.TableChecklistItems: {"id", "list_id", "name", "is_checked"},
	types.TableSettings:       {"key", "value"},
	types.TableHunterProfile: {
		"key", "name", "hunting_license_expiry", "gun_permit_expiry",
		"trap_license_expiry", "net_license_expiry",
	},
	types.TableProfileImages: {"id", "type", "image"},
}

// probeSchema selects every expected column with LIMIT 0 and reports what is
// missing as ErrSchemaIncompatible.
func probeSchema(ctx context.Context, q dbtx) error {
	var problems []string
	for table, cols := range expectedSchema {
		query := fmt.Sprintf("SELECT %s FROM %s LIMIT 0", strings.Join(cols, ", "), table)
		rows, err := q.QueryContext(ctx, query)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", table, err))
			continue
		}
		rows.Close()
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("%w: %s", types.ErrSchemaIncompatible, strings.Join(problems, "; "))
	}
	return nil
}
