package types

// Gun is a registered firearm. Deleting a gun leaves its logs and purchases in
// place with a dangling GunID.
type Gun struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"` // unique
	Type         string `json:"type"`
	Caliber      string `json:"caliber"`
	PermitDate   *Date  `json:"permit_date"`
	PermitExpiry *Date  `json:"permit_expiry"`
}

// Purpose of a firearm-use occasion.
type Purpose string

const (
	PurposeHunting       Purpose = "hunting"
	PurposeExtermination Purpose = "extermination"
	PurposePractice      Purpose = "shooting_practice"
	PurposeOther         Purpose = "other"
)

var validPurposes = map[Purpose]bool{
	PurposeHunting:       true,
	PurposeExtermination: true,
	PurposePractice:      true,
	PurposeOther:         true,
}

// Valid reports whether p is a recognized purpose.
func (p Purpose) Valid() bool { return validPurposes[p] }

// GunLog records one firearm-use occasion.
type GunLog struct {
	ID        int64   `json:"id"`
	UseDate   Date    `json:"use_date"`
	GunID     int64   `json:"gun_id"`
	Purpose   Purpose `json:"purpose"`
	Location  string  `json:"location"`
	Companion string  `json:"companion"`
	AmmoCount int     `json:"ammo_count"`
	Latitude  *string `json:"latitude"`
	Longitude *string `json:"longitude"`
	Memo      string  `json:"memo"`
	Image     []byte  `json:"image,omitempty"`
}

// Validate checks the date, purpose and ammunition count.
func (l *GunLog) Validate() error {
	if !l.UseDate.Valid() {
		return ErrInvalidDate
	}
	if !l.Purpose.Valid() {
		return ErrInvalidPurpose
	}
	if l.AmmoCount < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// AmmoPurchase records rounds bought for a gun.
type AmmoPurchase struct {
	ID           int64 `json:"id"`
	GunID        int64 `json:"gun_id"`
	PurchaseDate Date  `json:"purchase_date"`
	Amount       int   `json:"amount"`
}

// AmmoSummary is the per-gun ammunition balance. Remaining may be negative
// when more rounds were logged than purchased.
type AmmoSummary struct {
	GunID     int64 `json:"gun_id"`
	Purchased int   `json:"purchased"`
	Used      int   `json:"used"`
	Remaining int   `json:"remaining"`
}
