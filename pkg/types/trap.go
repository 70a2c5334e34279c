package types

// Trap is a physical capture device with an open/closed lifecycle.
// CloseDate is set if and only if the trap is closed.
type Trap struct {
	ID         int64   `json:"id"`
	TrapNumber string  `json:"trap_number"` // user-assigned, not unique
	Type       string  `json:"type"`        // TrapType name, free text
	SetupDate  Date    `json:"setup_date"`
	CloseDate  *Date   `json:"close_date"`
	Latitude   *string `json:"latitude"`
	Longitude  *string `json:"longitude"`
	Memo       string  `json:"memo"`
	Image      []byte  `json:"image,omitempty"`
	IsOpen     bool    `json:"is_open"`
}

// NewTrap returns an open trap set up on the given date.
func NewTrap(number, trapType string, setup Date) *Trap {
	return &Trap{
		TrapNumber: number,
		Type:       trapType,
		SetupDate:  setup,
		IsOpen:     true,
	}
}

// Close marks the trap closed as of the given date.
func (t *Trap) Close(on Date) {
	t.IsOpen = false
	t.CloseDate = DatePtr(on)
}

// Reopen returns a closed trap to the active state.
func (t *Trap) Reopen() {
	t.IsOpen = true
	t.CloseDate = nil
}

// Validate checks field formats and the open/close invariant.
func (t *Trap) Validate() error {
	if t.TrapNumber == "" {
		return ErrInvalidName
	}
	if !t.SetupDate.Valid() {
		return ErrInvalidDate
	}
	if t.IsOpen == (t.CloseDate != nil) {
		return ErrInvalidTrapState
	}
	if t.CloseDate != nil && !t.CloseDate.Valid() {
		return ErrInvalidDate
	}
	return nil
}

// TrapType is a named trap category offered as a choice when creating traps.
// Traps reference it by name only; deleting a type leaves traps untouched.
type TrapType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
