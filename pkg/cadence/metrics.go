package cadence

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the driver's Prometheus collectors.
type Metrics struct {
	TicksTotal          *prometheus.CounterVec
	ActionFailuresTotal *prometheus.CounterVec
	ActiveSessions      prometheus.Gauge
	TickLateness        prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TicksTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hzsync_cadence_ticks_total",
				Help: "Total number of cadence ticks delivered",
			},
			[]string{"display"},
		),
		ActionFailuresTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hzsync_cadence_action_failures_total",
				Help: "Total number of failed action invocations",
			},
			[]string{"display", "action"},
		),
		ActiveSessions: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "hzsync_cadence_active_sessions",
				Help: "Number of armed or running software sessions",
			},
		),
		TickLateness: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hzsync_cadence_tick_lateness_seconds",
				Help:    "Delay between a tick's scheduled time and its handling",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.002, 0.005, 0.01, 0.025, 0.05, 0.1},
			},
		),
	}
}
