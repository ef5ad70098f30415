// Package sampler draws the synthetic occupancy, weather and baseline usage values
// for a simulated day. All draws come from an injected random source so a run
// can be replayed from its seed.
package sampler

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Daytime window, inclusive on both ends
const (
	DayStartHour = 8
	DayEndHour   = 18
)

// Baseline usage in kWh before the day/night increment is added
const BaseUsage = 100.0

// Sampler draws synthetic hourly values from a single random source
type Sampler struct {
	src rand.Source
}

// New creates a sampler backed by src
func New(src rand.Source) *Sampler {
	return &Sampler{src: src}
}

// NewSource returns a seeded source. A zero seed is replaced by one derived from the clock;
// the seed actually used is returned so the run can be reproduced.
func NewSource(seed uint64) (rand.Source, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15), seed
}

// IsDaytime reports whether hour falls in the occupied window
func IsDaytime(hour int) bool {
	return hour >= DayStartHour && hour <= DayEndHour
}

// Occupancy returns the occupied fraction of the building for hour
func (s *Sampler) Occupancy(hour int) float64 {
	if IsDaytime(hour) {
		return s.uniform(0.4, 1.0)
	}
	return s.uniform(0.0, 0.2)
}

// Temperature returns an outdoor temperature forecast in degrees C.
// It does not vary with the hour of day.
func (s *Sampler) Temperature() float64 {
	return s.uniform(24, 35)
}

// HistoricalUsage returns the baseline kWh drawn for hour
func (s *Sampler) HistoricalUsage(hour int) float64 {
	if IsDaytime(hour) {
		return BaseUsage + s.uniform(50, 100)
	}
	return BaseUsage + s.uniform(0, 30)
}

func (s *Sampler) uniform(lo, hi float64) float64 {
	return distuv.Uniform{Min: lo, Max: hi, Src: s.src}.Rand()
}
