package types

// Table names in the embedded database.
const (
	TableTraps          = "traps"
	TableTrapTypes      = "trap_types"
	TableCatches        = "catches"
	TableGuns           = "guns"
	TableGunLogs        = "gun_logs"
	TableAmmoPurchases  = "ammo_purchases"
	TableGameAnimals    = "game_animals"
	TableChecklistSets  = "checklist_sets"
	TableChecklistItems = "checklist_items"
	TableSettings       = "settings"
	TableHunterProfile  = "hunter_profile"
	TableProfileImages  = "profile_images"
)

// StandardTableNames lists every table in parent-before-child order.
// Backups are written and restored in this order.
var StandardTableNames = []string{
	TableTrapTypes,
	TableTraps,
	TableGuns,
	TableGunLogs,
	TableCatches,
	TableAmmoPurchases,
	TableGameAnimals,
	TableChecklistSets,
	TableChecklistItems,
	TableSettings,
	TableHunterProfile,
	TableProfileImages,
}
