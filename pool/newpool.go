package pool

import (
	"github.com/pgvanniekerk/ezpool/internal/metrics"
	"github.com/pgvanniekerk/ezpool/internal/pool"
	"github.com/pgvanniekerk/ezpool/internal/worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Option customizes a Pool created by New.
type Option = pool.Option

// Metrics holds the Prometheus collectors a Pool reports to.
type Metrics = metrics.Metrics

var (
	ErrZeroWorkers    = pool.ErrZeroWorkers
	ErrPoolClosed     = pool.ErrPoolClosed
	ErrNoWorkers      = pool.ErrNoWorkers
	ErrNilJob         = pool.ErrNilJob
	ErrWorkerPanicked = worker.ErrWorkerPanicked
	ErrWorkerExited   = worker.ErrWorkerExited
)

// New creates a pool of size workers, each running on its own goroutine.
// It panics with ErrZeroWorkers if size is 0.
func New(size uint16, opts ...Option) Pool {
	return pool.NewPool(size, opts...)
}

// WithLogger sets the logger workers write their trace lines to.
// The default is logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) Option {
	return pool.WithLogger(logger)
}

// WithMetrics makes the pool report to m.
func WithMetrics(m *Metrics) Option {
	return pool.WithMetrics(m)
}

// NewMetrics creates the pool collectors under namespace and registers them with reg.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	return metrics.New(reg, namespace)
}
