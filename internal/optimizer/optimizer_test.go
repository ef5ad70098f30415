package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEfficiencyFactor(t *testing.T) {
	tests := []struct {
		name        string
		occupancy   float64
		temperature float64
		want        float64
	}{
		{"occupied, mild", 0.8, 28, 1.0},
		{"empty, mild", 0.1, 28, 0.7},
		{"occupied, cool", 0.8, 25, 0.9},
		{"occupied, hot", 0.8, 32, 1.1},
		{"empty, cool", 0.2, 25, 0.63},
		{"empty, hot", 0.0, 34, 0.77},
		{"occupancy at threshold", 0.3, 28, 1.0},
		{"temperature exactly 26", 0.8, 26, 1.0},
		{"temperature exactly 30", 0.8, 30, 1.0},
		{"just below 26", 0.8, 25.999, 0.9},
		{"just above 30", 0.8, 30.001, 1.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EfficiencyFactor(tt.occupancy, tt.temperature), 1e-9)
		})
	}
}

func TestOptimize_KnownValue(t *testing.T) {
	assert.InDelta(t, 94.5, Optimize(0.2, 25, 150), 1e-9)
}

func TestOptimize_Deterministic(t *testing.T) {
	first := Optimize(0.55, 31.2, 173.4)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Optimize(0.55, 31.2, 173.4))
	}
}
