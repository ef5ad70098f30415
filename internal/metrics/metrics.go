package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jgoulah/hvacsim/pkg/models"
)

// Metrics holds gauges describing the most recent run
type Metrics struct {
	registry        *prometheus.Registry
	energySaved     prometheus.Gauge
	costSaved       prometheus.Gauge
	historicalUsage *prometheus.GaugeVec
	optimizedUsage  *prometheus.GaugeVec
	occupancy       *prometheus.GaugeVec
	temperature     *prometheus.GaugeVec
	runTimestamp    prometheus.Gauge
}

// New creates the gauges on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		energySaved: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hvacsim_energy_saved_kwh",
			Help: "Total energy saved over the simulated day.",
		}),
		costSaved: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hvacsim_cost_saved",
			Help: "Total cost saved over the simulated day.",
		}),
		historicalUsage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hvacsim_historical_usage_kwh",
			Help: "Baseline energy usage by hour.",
		}, []string{"hour"}),
		optimizedUsage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hvacsim_optimized_usage_kwh",
			Help: "Optimized energy usage by hour.",
		}, []string{"hour"}),
		occupancy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hvacsim_occupancy_ratio",
			Help: "Simulated occupancy fraction by hour.",
		}, []string{"hour"}),
		temperature: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hvacsim_temperature_celsius",
			Help: "Simulated outdoor temperature by hour.",
		}, []string{"hour"}),
		runTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hvacsim_run_timestamp_seconds",
			Help: "Unix time the run started.",
		}),
	}

	m.registry.MustRegister(
		m.energySaved,
		m.costSaved,
		m.historicalUsage,
		m.optimizedUsage,
		m.occupancy,
		m.temperature,
		m.runTimestamp,
	)

	return m
}

// Registry exposes the gatherer for HTTP handlers
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe replaces all gauges with the values of run
func (m *Metrics) Observe(run *models.Run) {
	m.historicalUsage.Reset()
	m.optimizedUsage.Reset()
	m.occupancy.Reset()
	m.temperature.Reset()

	m.energySaved.Set(run.TotalEnergySaved)
	m.costSaved.Set(run.TotalCostSaved.InexactFloat64())
	m.runTimestamp.Set(float64(run.StartedAt.Unix()))

	for _, rec := range run.Records {
		hour := strconv.Itoa(rec.Hour)
		m.historicalUsage.WithLabelValues(hour).Set(rec.HistoricalUsage)
		m.optimizedUsage.WithLabelValues(hour).Set(rec.OptimizedUsage)
		m.occupancy.WithLabelValues(hour).Set(rec.Occupancy)
		m.temperature.WithLabelValues(hour).Set(rec.Temperature)
	}
}

// WriteTextfile writes the gauges in the node exporter textfile format
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
