package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGameMarker(t *testing.T) {
	tests := []struct {
		cell string
		want GameMarker
	}{
		{"○", MarkerLegal},
		{" 〇 ", MarkerLegal},
		{"Yes", MarkerLegal},
		{"×", MarkerNotLegal},
		{"NO", MarkerNotLegal},
		{"", MarkerUnspecified},
		{"-", MarkerUnspecified},
		{"△", MarkerUnspecified},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGameMarker(tt.cell))
		})
	}
}

func TestGameAnimalMethodMarker(t *testing.T) {
	g := GameAnimal{MethodGun: MarkerLegal, MethodTrap: MarkerNotLegal}
	assert.Equal(t, MarkerLegal, g.MethodMarker("gun"))
	assert.Equal(t, MarkerNotLegal, g.MethodMarker("trap"))
	assert.Equal(t, MarkerUnspecified, g.MethodMarker("net"))
	assert.Equal(t, MarkerUnspecified, g.MethodMarker("bow"))
}
