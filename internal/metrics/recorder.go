package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Recorder collects benchmark measurements into a private Prometheus
// registry. A private registry keeps repeated benchmarks in one process (and
// tests) from colliding on the default registerer.
type Recorder struct {
	registry    *prometheus.Registry
	runDuration *prometheus.HistogramVec
	tasks       prometheus.Counter
	speedup     *prometheus.GaugeVec
	tau         prometheus.Gauge
}

// NewRecorder creates a Recorder with Go runtime collectors attached.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kendall_run_duration_seconds",
			Help:    "Wall-clock duration of one Kendall tau computation.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
		}, []string{"mode", "workers"}),
		tasks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kendall_tasks_dispatched_total",
			Help: "Per-index tasks dispatched to parallel worker pools.",
		}),
		speedup: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kendall_speedup_ratio",
			Help: "Serial mean duration divided by parallel mean duration.",
		}, []string{"workers"}),
		tau: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kendall_tau",
			Help: "Kendall tau-a of the benchmark input.",
		}),
	}
	r.registry.MustRegister(
		r.runDuration, r.tasks, r.speedup, r.tau,
		collectors.NewGoCollector(),
	)
	return r
}

// ObserveRun records one aggregator call. workers is 0 for the serial mode;
// tasks is the number of per-index tasks dispatched (0 for serial).
func (r *Recorder) ObserveRun(mode string, workers int, d time.Duration, tasks int) {
	r.runDuration.WithLabelValues(mode, strconv.Itoa(workers)).Observe(d.Seconds())
	if tasks > 0 {
		r.tasks.Add(float64(tasks))
	}
}

// SetSpeedup records the speedup ratio for a worker count.
func (r *Recorder) SetSpeedup(workers int, ratio float64) {
	r.speedup.WithLabelValues(strconv.Itoa(workers)).Set(ratio)
}

// SetTau records the coefficient computed for the input.
func (r *Recorder) SetTau(tau float64) {
	r.tau.Set(tau)
}

// Reset discards every recorded measurement. It must not be called while a
// benchmark is writing to r.
func (r *Recorder) Reset() {
	*r = *NewRecorder()
}

// Gatherer exposes the registry, e.g. for an HTTP handler or tests.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.registry }

// WriteTextfile writes the current metrics in the Prometheus text format,
// suitable for the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
