package publisher

import (
	"time"

	"github.com/jgoulah/hvacsim/pkg/models"
)

// HourPayload is the wire form of one hour record
type HourPayload struct {
	RunID       string    `json:"run_id"`
	Hour        int       `json:"hour"`
	Timestamp   time.Time `json:"timestamp"`
	Occupancy   float64   `json:"occupancy"`
	Temperature float64   `json:"temperature"`
	Historical  float64   `json:"historical_kwh"`
	Optimized   float64   `json:"optimized_kwh"`
	EnergySaved float64   `json:"energy_saved_kwh"`
	CostSaved   string    `json:"cost_saved"`
}

// SummaryPayload is the wire form of a run's totals
type SummaryPayload struct {
	RunID            string    `json:"run_id"`
	Seed             uint64    `json:"seed"`
	StartedAt        time.Time `json:"started_at"`
	Hours            int       `json:"hours"`
	CostPerKWh       string    `json:"cost_per_kwh"`
	TotalEnergySaved float64   `json:"total_energy_saved_kwh"`
	TotalCostSaved   string    `json:"total_cost_saved"`
}

// NewHourPayload converts a record of run
func NewHourPayload(run *models.Run, rec models.HourRecord) HourPayload {
	return HourPayload{
		RunID:       run.ID.String(),
		Hour:        rec.Hour,
		Timestamp:   run.HourTime(rec.Hour),
		Occupancy:   rec.Occupancy,
		Temperature: rec.Temperature,
		Historical:  rec.HistoricalUsage,
		Optimized:   rec.OptimizedUsage,
		EnergySaved: rec.EnergySaved,
		CostSaved:   rec.CostSaved.StringFixed(4),
	}
}

// NewSummaryPayload converts the totals of run
func NewSummaryPayload(run *models.Run) SummaryPayload {
	return SummaryPayload{
		RunID:            run.ID.String(),
		Seed:             run.Seed,
		StartedAt:        run.StartedAt,
		Hours:            len(run.Records),
		CostPerKWh:       run.CostPerKWh.String(),
		TotalEnergySaved: run.TotalEnergySaved,
		TotalCostSaved:   run.TotalCostSaved.StringFixed(2),
	}
}
