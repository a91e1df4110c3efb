package metrics

import (
	"errors"
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"time"
)

// Metrics holds the Prometheus collectors updated by a pool and its workers.
// All methods are safe to call on a nil *Metrics, in which case they do nothing.
type Metrics struct {
	JobsSubmitted prometheus.Counter
	JobsExecuted  prometheus.Counter
	JobsPanicked  prometheus.Counter
	LiveWorkers   prometheus.Gauge
	JobDuration   prometheus.Histogram
}

// New creates the pool collectors under namespace and registers them with reg.
func New(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		JobsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "jobs_submitted_total",
			Help:      "Total number of jobs submitted to the pool",
		}),
		JobsExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "jobs_executed_total",
			Help:      "Total number of jobs that ran to completion",
		}),
		JobsPanicked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "jobs_panicked_total",
			Help:      "Total number of jobs that panicked and took their worker down",
		}),
		LiveWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "live_workers",
			Help:      "Current number of running workers",
		}),
		JobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "job_duration_seconds",
			Help:      "Histogram of job execution time",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{m.JobsSubmitted, m.JobsExecuted, m.JobsPanicked, m.LiveWorkers, m.JobDuration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register pool metrics: %w", err)
		}
	}

	return m, nil
}

// JobSubmitted counts a Job accepted by Submit.
func (m *Metrics) JobSubmitted() {
	if m == nil {
		return
	}
	m.JobsSubmitted.Inc()
}

// JobFinished counts a Job that returned normally and records how long it ran.
func (m *Metrics) JobFinished(d time.Duration) {
	if m == nil {
		return
	}
	m.JobsExecuted.Inc()
	m.JobDuration.Observe(d.Seconds())
}

// JobPanicked counts a Job whose panic terminated its Worker.
func (m *Metrics) JobPanicked() {
	if m == nil {
		return
	}
	m.JobsPanicked.Inc()
}

// WorkerStarted increments the live worker gauge.
func (m *Metrics) WorkerStarted() {
	if m == nil {
		return
	}
	m.LiveWorkers.Inc()
}

// WorkerExited decrements the live worker gauge.
func (m *Metrics) WorkerExited() {
	if m == nil {
		return
	}
	m.LiveWorkers.Dec()
}

// Snapshot gathers g and flattens every counter and gauge into name -> value.
// Histograms are reported by their sample count under "<name>_count".
func Snapshot(g prometheus.Gatherer) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	out := make(map[string]float64, len(families))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				out[mf.GetName()] += m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				out[mf.GetName()] += m.GetGauge().GetValue()
			case dto.MetricType_HISTOGRAM:
				out[mf.GetName()+"_count"] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}

	if len(out) == 0 {
		return nil, errors.New("no metrics gathered")
	}

	return out, nil
}
