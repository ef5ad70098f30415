package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HoursPerDay is the number of records in a simulated day
const HoursPerDay = 24

// HourRecord represents one simulated hour of HVAC usage
type HourRecord struct {
	Hour            int             `json:"hour"`
	Occupancy       float64         `json:"occupancy"`        // Fraction 0.0-1.0
	Temperature     float64         `json:"temperature"`      // Degrees C
	HistoricalUsage float64         `json:"historical_usage"` // kWh without optimization
	OptimizedUsage  float64         `json:"optimized_usage"`  // kWh after the efficiency factor
	EnergySaved     float64         `json:"energy_saved"`     // HistoricalUsage - OptimizedUsage
	CostSaved       decimal.Decimal `json:"cost_saved"`
}

// Run is a complete simulated day, ordered by hour
type Run struct {
	ID               uuid.UUID       `json:"id"`
	Seed             uint64          `json:"seed"`
	StartedAt        time.Time       `json:"started_at"`
	CostPerKWh       decimal.Decimal `json:"cost_per_kwh"`
	Records          []HourRecord    `json:"records"`
	TotalEnergySaved float64         `json:"total_energy_saved"`
	TotalCostSaved   decimal.Decimal `json:"total_cost_saved"`
}

// Hours returns the hour of each record as float64 for plotting
func (r *Run) Hours() []float64 {
	return r.series(func(h HourRecord) float64 { return float64(h.Hour) })
}

// HistoricalSeries returns historical usage by hour
func (r *Run) HistoricalSeries() []float64 {
	return r.series(func(h HourRecord) float64 { return h.HistoricalUsage })
}

// OptimizedSeries returns optimized usage by hour
func (r *Run) OptimizedSeries() []float64 {
	return r.series(func(h HourRecord) float64 { return h.OptimizedUsage })
}

// OccupancySeries returns occupancy by hour
func (r *Run) OccupancySeries() []float64 {
	return r.series(func(h HourRecord) float64 { return h.Occupancy })
}

// TemperatureSeries returns temperature by hour
func (r *Run) TemperatureSeries() []float64 {
	return r.series(func(h HourRecord) float64 { return h.Temperature })
}

// SavingsSeries returns energy saved by hour
func (r *Run) SavingsSeries() []float64 {
	return r.series(func(h HourRecord) float64 { return h.EnergySaved })
}

func (r *Run) series(f func(HourRecord) float64) []float64 {
	out := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		out[i] = f(rec)
	}
	return out
}

// HourTime returns the wall-clock start of hour on the day the run started
func (r *Run) HourTime(hour int) time.Time {
	y, m, d := r.StartedAt.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, r.StartedAt.Location())
}
