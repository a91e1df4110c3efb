package pool

import (
	"errors"
	"github.com/pgvanniekerk/ezpool/internal/metrics"
	"github.com/pgvanniekerk/ezpool/internal/queue"
	"github.com/pgvanniekerk/ezpool/internal/worker"
	"github.com/pgvanniekerk/ezpool/job"
	"github.com/sirupsen/logrus"
	"sync"
	"sync/atomic"
)

// Pool is a fixed-size pool of Workers executing Jobs submitted from any goroutine.
// Jobs are handed to an unbounded FIFO queue shared by all Workers, and each Job is
// executed exactly once by whichever Worker dequeues it first.
// The set of Workers is created by NewPool and never changes afterwards. Close
// releases the producing end of the queue and joins every Worker.
type Pool struct {

	// workers holds the Pool's Workers, indexed by id.
	workers []*worker.Worker

	// sender is the producing end of the queue shared with the Workers.
	sender *queue.Queue[job.Job]

	// closed is an atomic flag that tracks whether Close has begun.
	// Once closed, the Pool cannot accept further Jobs.
	closed *atomic.Bool

	// closeMutex serializes calls to Close.
	closeMutex *sync.Mutex

	// logger receives the shutdown lines written by Close and is handed to every Worker.
	logger logrus.FieldLogger

	// metrics is shared with the Workers. It may be nil.
	metrics *metrics.Metrics
}

//region Implementation

// Submit hands j to the Pool for execution on one of its Workers. Submit never
// waits for a Worker to become available; if every Worker is busy the Job waits
// in the queue.
//
// Submit panics if j is nil, if Close has already been called, or if no Worker
// remains to execute the Job.
func (p *Pool) Submit(j job.Job) {

	if j == nil {
		panic(ErrNilJob)
	}

	// The caller should not be attempting to use the Pool once closed.
	if p.isClosed() {
		panic(ErrPoolClosed)
	}

	err := p.sender.Send(j)
	switch {
	case errors.Is(err, queue.ErrClosed):
		panic(ErrPoolClosed)
	case errors.Is(err, queue.ErrDisconnected):
		panic(ErrNoWorkers)
	case err != nil:
		panic(err)
	}

	p.metrics.JobSubmitted()
}

// Close shuts down the Pool. It releases the producing end of the queue, then waits
// for every Worker, in id order, to drain the remaining Jobs and exit. Jobs submitted
// before Close are never discarded.
//
// If a Worker was terminated by a panicking Job, or by a Job that ended its goroutine,
// Close panics with the error returned by that Worker's Join. Calling Close more than once has no effect.
func (p *Pool) Close() {
	p.closeMutex.Lock()
	defer p.closeMutex.Unlock()

	// Ensure p is not already closed.
	if p.isClosed() {
		return
	}

	// Set the state of p to "closed".
	p.closed.Store(true)

	// Release the producing end so that Workers exit once the queue is drained.
	p.sender.Close()

	for _, w := range p.workers {
		p.logger.WithField("worker", w.ID()).Info("shutting down worker")
		if err := w.Join(); err != nil {
			panic(err)
		}
	}
}

// Size returns the number of Workers the Pool was created with.
func (p *Pool) Size() uint16 {
	return uint16(len(p.workers))
}

// Pending returns the number of Jobs waiting in the queue for a Worker.
func (p *Pool) Pending() int {
	return p.sender.Len()
}

//endregion

//region Helpers

// isClosed is a helper method that checks if the Pool has been closed.
func (p *Pool) isClosed() bool {
	return p.closed.Load()
}

//endregion

//region Constructor

// NewPool creates a Pool with size Workers, each started on its own goroutine and
// reading from a shared queue.
//
// Panics with ErrZeroWorkers if size is 0; no goroutine is started in that case.
func NewPool(size uint16, opts ...Option) *Pool {

	if size == 0 {
		panic(ErrZeroWorkers)
	}

	cfg := &options{
		logger: logrus.StandardLogger(),
	}

	for idx := range opts {
		opts[idx](cfg)
	}

	sender := queue.New[job.Job]()

	workers := make([]*worker.Worker, 0, size)
	for id := 0; id < int(size); id++ {
		workers = append(workers, worker.New(id, sender, cfg.logger, cfg.metrics))
	}

	return &Pool{
		workers:    workers,
		sender:     sender,
		closed:     &atomic.Bool{},
		closeMutex: &sync.Mutex{},
		logger:     cfg.logger,
		metrics:    cfg.metrics,
	}
}

//endregion
