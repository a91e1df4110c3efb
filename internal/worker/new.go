package worker

import (
	"github.com/pgvanniekerk/ezpool/internal/metrics"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/panics"
	"sync/atomic"
)

// New creates a Worker with the given id, attaches it to source and starts its
// goroutine. The Worker is attached before the goroutine starts, so the source never
// appears disconnected while the Worker is being created.
//
// Parameters:
//   - id: The Worker's id within its pool.
//   - source: The shared consuming end the Worker receives Jobs from.
//   - logger: Logger the Worker's trace lines are written to. It is decorated with
//     the field "worker".
//   - m: Metrics to update, or nil.
func New(id int, source Source, logger logrus.FieldLogger, m *metrics.Metrics) *Worker {

	w := &Worker{
		id:       id,
		source:   source,
		done:     make(chan struct{}),
		catcher:  &panics.Catcher{},
		finished: &atomic.Bool{},
		logger:   logger.WithField("worker", id),
		metrics:  m,
	}

	source.Attach()
	m.WorkerStarted()

	go w.run()

	return w
}
