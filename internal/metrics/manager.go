// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline run outcomes.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

type Manager struct {
	// counters
	CounterRequests     *prometheus.CounterVec
	CounterPipelineRuns *prometheus.CounterVec

	// gauges
	GaugeEnrichedSets    prometheus.Gauge
	GaugeUnknownExercise prometheus.Gauge
	GaugeLastRun         prometheus.Gauge

	// histograms
	HistRunDuration     prometheus.Histogram
	HistRequestDuration prometheus.Histogram
}

// NewRegistry returns a registry carrying the build, Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func NewTestManager() *Manager {
	return NewManager("hevystats", "test", prometheus.NewRegistry())
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests_total",
		Help:      "The total number of API requests",
	}, []string{"method", "status"})
	counterPipelineRuns := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "pipeline_runs_total",
		Help:      "The total number of enrichment runs by outcome",
	}, []string{"status"})

	gaugeEnrichedSets := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "enriched_sets",
		Help:      "Number of sets in the current dataset",
	})
	gaugeUnknownExercises := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "unknown_exercises",
		Help:      "Distinct exercises missing from the catalog in the current dataset",
	})
	gaugeLastRun := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "last_successful_run_timestamp_seconds",
		Help:      "Unix time of the last successful enrichment run",
	})

	histRunDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		Name:      "pipeline_run_duration_seconds",
		Help:      "Duration of a full load and enrichment run in seconds",
	})
	histRequestDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		Name:      "request_duration_seconds",
		Help:      "Duration of API requests in seconds",
	})

	return &Manager{
		CounterRequests:      counterRequests,
		CounterPipelineRuns:  counterPipelineRuns,
		GaugeEnrichedSets:    gaugeEnrichedSets,
		GaugeUnknownExercise: gaugeUnknownExercises,
		GaugeLastRun:         gaugeLastRun,
		HistRunDuration:      histRunDuration,
		HistRequestDuration:  histRequestDuration,
	}
}
