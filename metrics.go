package maneuvers

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Candidate outcomes, as labelled in the metrics.
const (
	outcomeAccepted   = "accepted"
	outcomeRejected   = "rejected"
	outcomeInfeasible = "infeasible"
)

// Metrics holds the prometheus collectors updated by a Mission.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	candidates *prometheus.CounterVec
	catches    prometheus.Counter
	hopΔv      prometheus.Histogram
	hopElapsed prometheus.Histogram
	fuelSpent  prometheus.Gauge
}

// NewMetrics creates the mission collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		candidates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "maneuvers_candidates_total",
				Help: "Total number of catalog objects evaluated as the next catch, by outcome.",
			},
			[]string{"outcome"},
		),
		catches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "maneuvers_catches_total",
			Help: "Total number of catalog objects caught.",
		}),
		hopΔv: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "maneuvers_hop_delta_v_meters_per_second",
			Help:    "Delta-v spent per catch.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		hopElapsed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "maneuvers_hop_elapsed_seconds",
			Help:    "Time elapsed per catch.",
			Buckets: prometheus.ExponentialBuckets(3600, 2, 12),
		}),
		fuelSpent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "maneuvers_fuel_spent_meters_per_second",
			Help: "Cumulative delta-v spent by the mission.",
		}),
	}
	reg.MustRegister(m.candidates, m.catches, m.hopΔv, m.hopElapsed, m.fuelSpent)
	return m
}

func (m *Metrics) observeCandidate(outcome string) {
	if m == nil {
		return
	}
	m.candidates.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeHop(h Hop, fuelSpent float64) {
	if m == nil {
		return
	}
	m.catches.Inc()
	m.hopΔv.Observe(h.Δv)
	m.hopElapsed.Observe(h.Elapsed)
	m.fuelSpent.Set(fuelSpent)
}
