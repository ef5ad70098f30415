package sampler

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func seeded(seed uint64) *Sampler {
	return New(rand.NewPCG(seed, seed+1))
}

func TestIsDaytime(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		want := hour >= 8 && hour <= 18
		assert.Equal(t, want, IsDaytime(hour), "hour %d", hour)
	}
}

func TestOccupancy_Ranges(t *testing.T) {
	s := seeded(1)
	for i := 0; i < 50; i++ {
		for hour := 0; hour < 24; hour++ {
			occ := s.Occupancy(hour)
			if IsDaytime(hour) {
				assert.GreaterOrEqual(t, occ, 0.4, "hour %d", hour)
				assert.LessOrEqual(t, occ, 1.0, "hour %d", hour)
			} else {
				assert.GreaterOrEqual(t, occ, 0.0, "hour %d", hour)
				assert.LessOrEqual(t, occ, 0.2, "hour %d", hour)
			}
		}
	}
}

func TestTemperature_RangeIndependentOfHour(t *testing.T) {
	s := seeded(2)

	var day, night []float64
	for i := 0; i < 1000; i++ {
		hour := i % 24
		temp := s.Temperature()
		require.GreaterOrEqual(t, temp, 24.0)
		require.LessOrEqual(t, temp, 35.0)
		if IsDaytime(hour) {
			day = append(day, temp)
		} else {
			night = append(night, temp)
		}
	}

	// Both halves should sit near the midpoint of [24,35]
	assert.InDelta(t, 29.5, stat.Mean(day, nil), 1.0)
	assert.InDelta(t, 29.5, stat.Mean(night, nil), 1.0)
	assert.InDelta(t, stat.Mean(day, nil), stat.Mean(night, nil), 1.0)
}

func TestHistoricalUsage_Ranges(t *testing.T) {
	s := seeded(3)
	for i := 0; i < 50; i++ {
		for hour := 0; hour < 24; hour++ {
			usage := s.HistoricalUsage(hour)
			if IsDaytime(hour) {
				assert.GreaterOrEqual(t, usage, 150.0, "hour %d", hour)
				assert.LessOrEqual(t, usage, 200.0, "hour %d", hour)
			} else {
				assert.GreaterOrEqual(t, usage, 100.0, "hour %d", hour)
				assert.LessOrEqual(t, usage, 130.0, "hour %d", hour)
			}
		}
	}
}

func TestSampler_SameSeedSameDraws(t *testing.T) {
	a := seeded(42)
	b := seeded(42)
	for hour := 0; hour < 24; hour++ {
		assert.Equal(t, a.Occupancy(hour), b.Occupancy(hour))
		assert.Equal(t, a.Temperature(), b.Temperature())
		assert.Equal(t, a.HistoricalUsage(hour), b.HistoricalUsage(hour))
	}
}

func TestNewSource(t *testing.T) {
	_, seed := NewSource(7)
	assert.Equal(t, uint64(7), seed)

	_, seed = NewSource(0)
	assert.NotZero(t, seed)

	srcA, _ := NewSource(99)
	srcB, _ := NewSource(99)
	assert.Equal(t, New(srcA).Temperature(), New(srcB).Temperature())
}
