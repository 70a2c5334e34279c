package sqlite

import (
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

var trapTypesDef = &tableDef[types.TrapType]{
	name:    types.TableTrapTypes,
	columns: []string{"name"},
	indexed: map[string]bool{"name": true},
	id:      func(v *types.TrapType) int64 { return v.ID },
	setID:   func(v *types.TrapType, id int64) { v.ID = id },
	values:  func(v *types.TrapType) []any { return []any{v.Name} },
	scan: func(r rowScanner) (*types.TrapType, error) {
		var v types.TrapType
		if err := r.Scan(&v.ID, &v.Name); err != nil {
			return nil, err
		}
		return &v, nil
	},
	validate: func(v *types.TrapType) error {
		if v.Name == "" {
			return types.ErrInvalidName
		}
		return nil
	},
}

var trapsDef = &tableDef[types.Trap]{
	name: types.TableTraps,
	columns: []string{
		"trap_number", "type", "setup_date", "close_date",
		"latitude", "longitude", "memo", "image", "is_open",
	},
	indexed: map[string]bool{"is_open": true, "type": true},
	id:      func(v *types.Trap) int64 { return v.ID },
	setID:   func(v *types.Trap, id int64) { v.ID = id },
	values: func(v *types.Trap) []any {
		return []any{
			v.TrapNumber, v.Type, deref(v.SetupDate), deref(v.CloseDate),
			deref(v.Latitude), deref(v.Longitude), v.Memo, blob(v.Image), deref(v.IsOpen),
		}
	},
	scan: func(r rowScanner) (*types.Trap, error) {
		var v types.Trap
		err := r.Scan(&v.ID, &v.TrapNumber, &v.Type, &v.SetupDate, &v.CloseDate,
			&v.Latitude, &v.Longitude, &v.Memo, &v.Image, &v.IsOpen)
		if err != nil {
			return nil, err
		}
		return &v, nil
	},
	validate: func(v *types.Trap) error { return v.Validate() },
}

// catchesDef accepts any combination of trap and gun-log links; the
// single-parent rule is applied by Store.AddCatch.
var catchesDef = &tableDef[types.CatchRecord]{
	name: types.TableCatches,
	columns: []string{
		"trap_id", "gun_log_id", "catch_date", "species_name", "gender", "age",
		"latitude", "longitude", "memo", "image",
	},
	indexed: map[string]bool{"trap_id": true, "gun_log_id": true, "catch_date": true, "gender": true},
	id:      func(v *types.CatchRecord) int64 { return v.ID },
	setID:   func(v *types.CatchRecord, id int64) { v.ID = id },
	values: func(v *types.CatchRecord) []any {
		gender, age := v.Gender, v.Age
		if gender == "" {
			gender = types.GenderUnknown
		}
		if age == "" {
			age = types.AgeUnknown
		}
		return []any{
			deref(v.TrapID), deref(v.GunLogID), deref(v.CatchDate), v.SpeciesName,
			deref(gender), deref(age), deref(v.Latitude), deref(v.Longitude), v.Memo, blob(v.Image),
		}
	},
	scan: func(r rowScanner) (*types.CatchRecord, error) {
		var v types.CatchRecord
		err := r.Scan(&v.ID, &v.TrapID, &v.GunLogID, &v.CatchDate, &v.SpeciesName, &v.Gender, &v.Age,
			&v.Latitude, &v.Longitude, &v.Memo, &v.Image)
		if err != nil {
			return nil, err
		}
		return &v, nil
	},
	validate: func(v *types.CatchRecord) error {
		if !v.CatchDate.Valid() {
			return types.ErrInvalidDate
		}
		return nil
	},
}

var gunsDef = &tableDef[types.Gun]{
	name:    types.TableGuns,
	columns: []string{"name", "type", "caliber", "permit_date", "permit_expiry"},
	indexed: map[string]bool{"name": true},
	id:      func(v *types.Gun) int64 { return v.ID },
	setID:   func(v *types.Gun, id int64) { v.ID = id },
	values: func(v *types.Gun) []any {
		return []any{v.Name, v.Type, v.Caliber, deref(v.PermitDate), deref(v.PermitExpiry)}
	},
	scan: func(r rowScanner) (*types.Gun, error) {
		var v types.Gun
		if err := r.Scan(&v.ID, &v.Name, &v.Type, &v.Caliber, &v.PermitDate, &v.PermitExpiry); err != nil {
			return nil, err
		}
		return &v, nil
	},
	validate: func(v *types.Gun) error {
		if v.Name == "" {
			return types.ErrInvalidName
		}
		return nil
	},
}

var gunLogsDef = &tableDef[types.GunLog]{
	name: types.TableGunLogs,
	columns: []string{
		"use_date", "gun_id", "purpose", "location", "companion", "ammo_count",
		"latitude", "longitude", "memo", "image",
	},
	indexed: map[string]bool{"gun_id": true, "use_date": true},
	id:      func(v *types.GunLog) int64 { return v.ID },
	setID:   func(v *types.GunLog, id int64) { v.ID = id },
	values: func(v *types.GunLog) []any {
		return []any{
			deref(v.UseDate), v.GunID, deref(v.Purpose), v.Location, v.Companion, v.AmmoCount,
			deref(v.Latitude), deref(v.Longitude), v.Memo, blob(v.Image),
		}
	},
	scan: func(r rowScanner) (*types.GunLog, error) {
		var v types.GunLog
		err := r.Scan(&v.ID, &v.UseDate, &v.GunID, &v.Purpose, &v.Location, &v.Companion, &v.AmmoCount,
			&v.Latitude, &v.Longitude, &v.Memo, &v.Image)
		if err != nil {
			return nil, err
		}
		return &v, nil
	},
	validate: func(v *types.GunLog) error { return v.Validate() },
}

var ammoPurchasesDef = &tableDef[types.AmmoPurchase]{
	name:    types.TableAmmoPurchases,
	columns: []string{"gun_id", "purchase_date", "amount"},
	indexed: map[string]bool{"gun_id": true},
	id:      func(v *types.AmmoPurchase) int64 { return v.ID },
	setID:   func(v *types.AmmoPurchase, id int64) { v.ID = id },
	values: func(v *types.AmmoPurchase) []any {
		return []any{v.GunID, deref(v.PurchaseDate), v.Amount}
	},
	scan: func(r rowScanner) (*types.AmmoPurchase, error) {
		var v types.AmmoPurchase
		if err := r.Scan(&v.ID, &v.GunID, &v.PurchaseDate, &v.Amount); err != nil {
			return nil, err
		}
		return &v, nil
	},
	validate: func(v *types.AmmoPurchase) error {
		if !v.PurchaseDate.Valid() {
			return types.ErrInvalidDate
		}
		if v.Amount < 0 {
			return types.ErrInvalidAmount
		}
		return nil
	},
}

var speciesDef = &tableDef[types.GameAnimal]{
	name: types.TableGameAnimals,
	columns: []string{
		"category", "is_game_animal", "species_name", "method_gun", "method_trap",
		"method_net", "gender_restriction", "count_limit", "prohibited_area", "habitat",
		"notes", "ecology", "damage", "image_1", "image_2",
	},
	indexed: map[string]bool{"category": true, "species_name": true},
	id:      func(v *types.GameAnimal) int64 { return v.ID },
	setID:   func(v *types.GameAnimal, id int64) { v.ID = id },
	values: func(v *types.GameAnimal) []any {
		return []any{
			v.Category, deref(v.IsGameAnimal), v.SpeciesName, deref(v.MethodGun), deref(v.MethodTrap),
			deref(v.MethodNet), v.GenderRestriction, v.CountLimit, v.ProhibitedArea, v.Habitat,
			v.Notes, v.Ecology, v.Damage, v.Image1, v.Image2,
		}
	},
	scan: func(r rowScanner) (*types.GameAnimal, error) {
		var v types.GameAnimal
		err := r.Scan(&v.ID, &v.Category, &v.IsGameAnimal, &v.SpeciesName, &v.MethodGun, &v.MethodTrap,
			&v.MethodNet, &v.GenderRestriction, &v.CountLimit, &v.ProhibitedArea, &v.Habitat,
			&v.Notes, &v.Ecology, &v.Damage, &v.Image1, &v.Image2)
		if err != nil {
			return nil, err
		}
		return &v, nil
	},
}

var checklistSetsDef = &tableDef[types.ChecklistSet]{
	name:    types.TableChecklistSets,
	columns: []string{"name"},
	indexed: map[string]bool{"name": true},
	id:      func(v *types.ChecklistSet) int64 { return v.ID },
	setID:   func(v *types.ChecklistSet, id int64) { v.ID = id },
	values:  func(v *types.ChecklistSet) []any { return []any{v.Name} },
	scan: func(r rowScanner) (*types.ChecklistSet, error) {
		var v types.ChecklistSet
		if err := r.Scan(&v.ID, &v.Name); err != nil {
			return nil, err
		}
		return &v, nil
	},
	validate: func(v *types.ChecklistSet) error {
		if v.Name == "" {
			return types.ErrInvalidName
		}
		return nil
	},
}

var checklistItemsDef = &tableDef[types.ChecklistItem]{
	name:    types.TableChecklistItems,
	columns: []string{"list_id", "name", "is_checked"},
	indexed: map[string]bool{"list_id": true},
	id:      func(v *types.ChecklistItem) int64 { return v.ID },
	setID:   func(v *types.ChecklistItem, id int64) { v.ID = id },
	values: func(v *types.ChecklistItem) []any {
		return []any{v.ListID, v.Name, deref(v.IsChecked)}
	},
	scan: func(r rowScanner) (*types.ChecklistItem, error) {
		var v types.ChecklistItem
		if err := r.Scan(&v.ID, &v.ListID, &v.Name, &v.IsChecked); err != nil {
			return nil, err
		}
		return &v, nil
	},
	validate: func(v *types.ChecklistItem) error {
		if v.Name == "" {
			return types.ErrInvalidName
		}
		return nil
	},
}

var profileImagesDef = &tableDef[types.ProfileImage]{
	name:    types.TableProfileImages,
	columns: []string{"type", "image"},
	indexed: map[string]bool{"type": true},
	id:      func(v *types.ProfileImage) int64 { return v.ID },
	setID:   func(v *types.ProfileImage, id int64) { v.ID = id },
	values:  func(v *types.ProfileImage) []any { return []any{deref(v.Type), blob(v.Image)} },
	scan: func(r rowScanner) (*types.ProfileImage, error) {
		var v types.ProfileImage
		if err := r.Scan(&v.ID, &v.Type, &v.Image); err != nil {
			return nil, err
		}
		return &v, nil
	},
	validate: func(v *types.ProfileImage) error {
		if !v.Type.Valid() {
			return types.ErrInvalidImageType
		}
		return nil
	},
}
