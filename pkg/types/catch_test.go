package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatchRecordMethod(t *testing.T) {
	assert.Equal(t, MethodTrap, NewTrapCatch(1, "2026-01-01", "Deer").Method())
	assert.Equal(t, MethodGun, NewGunCatch(2, "2026-01-01", "Deer").Method())
	assert.Equal(t, MethodDirect, NewDirectCatch("2026-01-01", "Deer").Method())
}

func TestCatchRecordValidate(t *testing.T) {
	trapID, logID := int64(1), int64(2)
	tests := []struct {
		name    string
		rec     CatchRecord
		wantErr error
	}{
		{"trap catch", CatchRecord{TrapID: &trapID, CatchDate: "2026-01-01"}, nil},
		{"direct catch", CatchRecord{CatchDate: "2026-01-01", Gender: GenderFemale, Age: AgeJuvenile}, nil},
		{"both links rejected", CatchRecord{TrapID: &trapID, GunLogID: &logID, CatchDate: "2026-01-01"}, ErrAmbiguousCatchLink},
		{"bad date", CatchRecord{CatchDate: ""}, ErrInvalidDate},
		{"bad gender", CatchRecord{CatchDate: "2026-01-01", Gender: "other"}, ErrInvalidGender},
		{"bad age", CatchRecord{CatchDate: "2026-01-01", Age: "old"}, ErrInvalidAge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCatchRecordValidateNormalizesEnums(t *testing.T) {
	rec := CatchRecord{CatchDate: "2026-01-01"}
	assert.NoError(t, rec.Validate())
	assert.Equal(t, GenderUnknown, rec.Gender)
	assert.Equal(t, AgeUnknown, rec.Age)
}
