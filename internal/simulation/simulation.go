// Package simulation runs one synthetic day through the samplers and the optimizer.
package simulation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jgoulah/hvacsim/internal/optimizer"
	"github.com/jgoulah/hvacsim/internal/sampler"
	"github.com/jgoulah/hvacsim/pkg/models"
)

// DefaultCostPerKWh is the tariff used to price saved energy
var DefaultCostPerKWh = decimal.NewFromFloat(0.2)

// Options controls a single run
type Options struct {
	CostPerKWh decimal.Decimal
	Seed       uint64 // recorded on the run; the sampler must already be seeded with it
	Now        func() time.Time
}

// Simulate produces a full day of records. For every hour occupancy is drawn
// first, then temperature, then historical usage.
func Simulate(s *sampler.Sampler, opts Options) *models.Run {
	cost := opts.CostPerKWh
	if cost.IsZero() {
		cost = DefaultCostPerKWh
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	run := &models.Run{
		ID:             uuid.New(),
		Seed:           opts.Seed,
		StartedAt:      now(),
		CostPerKWh:     cost,
		Records:        make([]models.HourRecord, 0, models.HoursPerDay),
		TotalCostSaved: decimal.Zero,
	}

	for hour := 0; hour < models.HoursPerDay; hour++ {
		rec := Hour(s, hour, cost)
		run.Records = append(run.Records, rec)
		run.TotalEnergySaved += rec.EnergySaved
		run.TotalCostSaved = run.TotalCostSaved.Add(rec.CostSaved)
	}

	return run
}

// Hour draws and derives a single record
func Hour(s *sampler.Sampler, hour int, costPerKWh decimal.Decimal) models.HourRecord {
	occupancy := s.Occupancy(hour)
	temperature := s.Temperature()
	historical := s.HistoricalUsage(hour)
	optimized := optimizer.Optimize(occupancy, temperature, historical)
	saved := historical - optimized

	return models.HourRecord{
		Hour:            hour,
		Occupancy:       occupancy,
		Temperature:     temperature,
		HistoricalUsage: historical,
		OptimizedUsage:  optimized,
		EnergySaved:     saved,
		CostSaved:       decimal.NewFromFloat(saved).Mul(costPerKWh),
	}
}
