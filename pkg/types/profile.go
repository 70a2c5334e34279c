package types

// Setting keys and their defaults.
const (
	SettingTheme    = "theme"
	SettingFontSize = "fontSize"

	DefaultTheme    = "light"
	DefaultFontSize = "medium"
)

// DefaultSettings lists the settings rows inserted on first run.
var DefaultSettings = map[string]string{
	SettingTheme:    DefaultTheme,
	SettingFontSize: DefaultFontSize,
}

// Setting is one key-value settings row.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ProfileKey is the fixed key of the singleton hunter profile row.
const ProfileKey = "main"

// HunterProfile holds the hunter's display name and renewal dates.
type HunterProfile struct {
	Key                  string `json:"key"`
	Name                 string `json:"name"`
	HuntingLicenseExpiry *Date  `json:"hunting_license_expiry"`
	GunPermitExpiry      *Date  `json:"gun_permit_expiry"`
	TrapLicenseExpiry    *Date  `json:"trap_license_expiry"`
	NetLicenseExpiry     *Date  `json:"net_license_expiry"`
}

// ProfileImageType names the permit or license a profile image illustrates.
type ProfileImageType string

const (
	ImageLicense     ProfileImageType = "license"
	ImageGunPermit   ProfileImageType = "gun_permit"
	ImageTrapLicense ProfileImageType = "trap_license"
	ImageNetLicense  ProfileImageType = "net_license"
	ImageOther       ProfileImageType = "other"
)

var validImageTypes = map[ProfileImageType]bool{
	ImageLicense: true, ImageGunPermit: true, ImageTrapLicense: true, ImageNetLicense: true, ImageOther: true,
}

// Valid reports whether t is a recognized image type.
func (t ProfileImageType) Valid() bool { return validImageTypes[t] }

// ProfileImage is a photo of a permit or license. Many per type.
type ProfileImage struct {
	ID    int64            `json:"id"`
	Type  ProfileImageType `json:"type"`
	Image []byte           `json:"image,omitempty"`
}
