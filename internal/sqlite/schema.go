// Package sqlite implements the embedded SQLite store for huntbook: schema
// versioning, generic per-entity tables, cascade deletes, first-run seeding,
// species reference replacement and full-database backup.
package sqlite

// SchemaVersion is the highest schema version this program understands. The
// on-disk version lives in PRAGMA user_version.
const SchemaVersion = 3

// Version 1 tables.
const (
	createTrapTypes = `CREATE TABLE IF NOT EXISTS trap_types (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);`

	createTraps = `CREATE TABLE IF NOT EXISTS traps (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    trap_number TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT '',
    setup_date TEXT NOT NULL,
    close_date TEXT,
    latitude TEXT,
    longitude TEXT,
    memo TEXT NOT NULL DEFAULT '',
    image BLOB,
    is_open INTEGER NOT NULL DEFAULT 1,
    CHECK ((is_open = 0) = (close_date IS NOT NULL))
);`

	createCatchesV1 = `CREATE TABLE IF NOT EXISTS catches (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    trap_id INTEGER,
    catch_date TEXT NOT NULL,
    species_name TEXT NOT NULL DEFAULT '',
    gender TEXT NOT NULL DEFAULT 'unknown',
    age TEXT NOT NULL DEFAULT 'unknown',
    latitude TEXT,
    longitude TEXT,
    memo TEXT NOT NULL DEFAULT '',
    image BLOB
);`

	createGuns = `CREATE TABLE IF NOT EXISTS guns (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL DEFAULT '',
    caliber TEXT NOT NULL DEFAULT '',
    permit_date TEXT,
    permit_expiry TEXT
);`

	createGunLogs = `CREATE TABLE IF NOT EXISTS gun_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    use_date TEXT NOT NULL,
    gun_id INTEGER NOT NULL,
    purpose TEXT NOT NULL,
    location TEXT NOT NULL DEFAULT '',
    companion TEXT NOT NULL DEFAULT '',
    ammo_count INTEGER NOT NULL DEFAULT 0,
    latitude TEXT,
    longitude TEXT,
    memo TEXT NOT NULL DEFAULT '',
    image BLOB
);`

	createAmmoPurchases = `CREATE TABLE IF NOT EXISTS ammo_purchases (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    gun_id INTEGER NOT NULL,
    purchase_date TEXT NOT NULL,
    amount INTEGER NOT NULL
);`

	createSettings = `CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

	createHunterProfile = `CREATE TABLE IF NOT EXISTS hunter_profile (
    key TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    hunting_license_expiry TEXT,
    gun_permit_expiry TEXT,
    trap_license_expiry TEXT,
    net_license_expiry TEXT
);`

	// The first species layout kept only a handful of columns.
	createGameAnimalsV1 = `CREATE TABLE IF NOT EXISTS game_animals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    category TEXT NOT NULL DEFAULT '',
    is_game_animal TEXT NOT NULL DEFAULT '',
    species_name TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT ''
);`
)

// Version 1 indexes.
const (
	idxTrapsIsOpen      = `CREATE INDEX IF NOT EXISTS idx_traps_is_open ON traps(is_open);`
	idxTrapsType        = `CREATE INDEX IF NOT EXISTS idx_traps_type ON traps(type);`
	idxCatchesTrap      = `CREATE INDEX IF NOT EXISTS idx_catches_trap ON catches(trap_id);`
	idxCatchesDate      = `CREATE INDEX IF NOT EXISTS idx_catches_date ON catches(catch_date);`
	idxGunLogsGun       = `CREATE INDEX IF NOT EXISTS idx_gun_logs_gun ON gun_logs(gun_id);`
	idxGunLogsDate      = `CREATE INDEX IF NOT EXISTS idx_gun_logs_date ON gun_logs(use_date);`
	idxAmmoPurchasesGun = `CREATE INDEX IF NOT EXISTS idx_ammo_purchases_gun ON ammo_purchases(gun_id);`
)

// Version 2 tables and indexes: checklists, profile images, gun-log catches
// and compound filter+sort access paths.
const (
	createChecklistSets = `CREATE TABLE IF NOT EXISTS checklist_sets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);`

	createChecklistItems = `CREATE TABLE IF NOT EXISTS checklist_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    list_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    is_checked INTEGER NOT NULL DEFAULT 0
);`

	createProfileImages = `CREATE TABLE IF NOT EXISTS profile_images (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    type TEXT NOT NULL,
    image BLOB
);`

	addCatchesGunLogID = `ALTER TABLE catches ADD COLUMN gun_log_id INTEGER`

	idxChecklistItemsUnique = `CREATE UNIQUE INDEX IF NOT EXISTS idx_checklist_items_list_name ON checklist_items(list_id, name);`
	idxProfileImagesType    = `CREATE INDEX IF NOT EXISTS idx_profile_images_type ON profile_images(type);`
	idxCatchesGunLog        = `CREATE INDEX IF NOT EXISTS idx_catches_gun_log ON catches(gun_log_id);`
	idxTrapsOpenNumber      = `CREATE INDEX IF NOT EXISTS idx_traps_open_number ON traps(is_open, trap_number);`
	idxTrapsOpenClose       = `CREATE INDEX IF NOT EXISTS idx_traps_open_close ON traps(is_open, close_date);`
	idxCatchesGenderDate    = `CREATE INDEX IF NOT EXISTS idx_catches_gender_date ON catches(gender, catch_date);`
)

// Version 3: the species table is rebuilt with the full reference layout.
// Its rows come from the remote CSV and are reloaded on the next refresh.
const (
	dropGameAnimals = `DROP TABLE IF EXISTS game_animals;`

	createGameAnimals = `CREATE TABLE game_animals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    category TEXT NOT NULL DEFAULT '',
    is_game_animal TEXT NOT NULL DEFAULT '',
    species_name TEXT NOT NULL DEFAULT '',
    method_gun TEXT NOT NULL DEFAULT '',
    method_trap TEXT NOT NULL DEFAULT '',
    method_net TEXT NOT NULL DEFAULT '',
    gender_restriction TEXT NOT NULL DEFAULT '',
    count_limit TEXT NOT NULL DEFAULT '',
    prohibited_area TEXT NOT NULL DEFAULT '',
    habitat TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    ecology TEXT NOT NULL DEFAULT '',
    damage TEXT NOT NULL DEFAULT '',
    image_1 TEXT NOT NULL DEFAULT '',
    image_2 TEXT NOT NULL DEFAULT ''
);`

	idxGameAnimalsCategory = `CREATE INDEX IF NOT EXISTS idx_game_animals_category ON game_animals(category);`
	idxGameAnimalsName     = `CREATE INDEX IF NOT EXISTS idx_game_animals_name ON game_animals(species_name);`
)

// schemaV1 lists the version 1 statements in dependency order.
var schemaV1 = []string{
	createTrapTypes,
	createTraps,
	createCatchesV1,
	createGuns,
	createGunLogs,
	createAmmoPurchases,
	createSettings,
	createHunterProfile,
	createGameAnimalsV1,
	idxTrapsIsOpen,
	idxTrapsType,
	idxCatchesTrap,
	idxCatchesDate,
	idxGunLogsGun,
	idxGunLogsDate,
	idxAmmoPurchasesGun,
}

// schemaV2 lists the version 2 statements that are safe to re-run.
// The gun_log_id column is added separately after a column probe.
var schemaV2 = []string{
	createChecklistSets,
	createChecklistItems,
	createProfileImages,
	idxChecklistItemsUnique,
	idxProfileImagesType,
	idxTrapsOpenNumber,
	idxTrapsOpenClose,
	idxCatchesGenderDate,
}

// schemaV3 rebuilds the species table.
var schemaV3 = []string{
	dropGameAnimals,
	createGameAnimals,
	idxGameAnimalsCategory,
	idxGameAnimalsName,
}
