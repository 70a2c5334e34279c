package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrapLifecycle(t *testing.T) {
	trap := NewTrap("A1", "Box trap", "2026-03-01")
	require.NoError(t, trap.Validate())
	assert.True(t, trap.IsOpen)
	assert.Nil(t, trap.CloseDate)

	trap.Close("2026-03-10")
	require.NoError(t, trap.Validate())
	assert.False(t, trap.IsOpen)
	require.NotNil(t, trap.CloseDate)
	assert.Equal(t, Date("2026-03-10"), *trap.CloseDate)

	trap.Reopen()
	require.NoError(t, trap.Validate())
	assert.True(t, trap.IsOpen)
	assert.Nil(t, trap.CloseDate)
}

func TestTrapValidate(t *testing.T) {
	closed := Date("2026-03-10")
	tests := []struct {
		name    string
		trap    Trap
		wantErr error
	}{
		{"open without close date", Trap{TrapNumber: "1", SetupDate: "2026-03-01", IsOpen: true}, nil},
		{"closed with close date", Trap{TrapNumber: "1", SetupDate: "2026-03-01", CloseDate: &closed}, nil},
		{"open with close date", Trap{TrapNumber: "1", SetupDate: "2026-03-01", CloseDate: &closed, IsOpen: true}, ErrInvalidTrapState},
		{"closed without close date", Trap{TrapNumber: "1", SetupDate: "2026-03-01"}, ErrInvalidTrapState},
		{"missing number", Trap{SetupDate: "2026-03-01", IsOpen: true}, ErrInvalidName},
		{"bad setup date", Trap{TrapNumber: "1", SetupDate: "03/01/2026", IsOpen: true}, ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.trap.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
