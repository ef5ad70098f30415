package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jgoulah/hvacsim/internal/metrics"
	"github.com/jgoulah/hvacsim/internal/report"
	"github.com/jgoulah/hvacsim/internal/sampler"
	"github.com/jgoulah/hvacsim/internal/simulation"
	"github.com/jgoulah/hvacsim/pkg/models"
)

// Server serves simulated days over HTTP. Every request runs its own simulation.
type Server struct {
	costPerKWh decimal.Decimal
	metrics    *metrics.Metrics
	log        *zap.Logger
}

// New creates a server pricing savings at costPerKWh
func New(costPerKWh decimal.Decimal, log *zap.Logger) *Server {
	return &Server{
		costPerKWh: costPerKWh,
		metrics:    metrics.New(),
		log:        log,
	}
}

// Router returns the API routes
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.health).Methods("GET")
	r.HandleFunc("/simulate", s.simulateJSON).Methods("GET")
	r.HandleFunc("/simulate.csv", s.simulateCSV).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})).Methods("GET")

	return r
}

// Handler wraps the router with access logging written to w
func (s *Server) Handler(w io.Writer) http.Handler {
	return handlers.LoggingHandler(w, s.Router())
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

// run simulates a day for the seed in the query string, or a fresh seed
func (s *Server) run(r *http.Request) (*models.Run, error) {
	var seed uint64
	if v := r.URL.Query().Get("seed"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q: %w", v, err)
		}
		seed = parsed
	}

	src, seed := sampler.NewSource(seed)
	run := simulation.Simulate(sampler.New(src), simulation.Options{CostPerKWh: s.costPerKWh, Seed: seed})
	s.metrics.Observe(run)
	s.log.Debug("simulated run", zap.Stringer("run", run.ID), zap.Uint64("seed", seed))
	return run, nil
}

func (s *Server) simulateJSON(w http.ResponseWriter, r *http.Request) {
	run, err := s.run(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(run); err != nil {
		s.log.Error("encoding run", zap.Error(err))
	}
}

func (s *Server) simulateCSV(w http.ResponseWriter, r *http.Request) {
	run, err := s.run(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.DefaultCSVPath+`"`)
	if err := report.WriteCSV(w, run); err != nil {
		s.log.Error("writing csv", zap.Error(err))
	}
}
