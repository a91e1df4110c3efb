package pool

import "github.com/pgvanniekerk/ezpool/job"

// Pool defines the interface for a fixed-size worker pool.
// A pool owns a fixed number of worker goroutines that take submitted Jobs from a shared
// FIFO queue and execute each of them exactly once.
// Implementations of this interface must ensure thread safety and proper resource handling.
type Pool interface {

	// Submit hands a Job to the pool. It never waits for a worker to become available:
	// if every worker is busy the Job waits in the queue, which has no capacity bound.
	// Submit may be called concurrently from any number of goroutines.
	//
	// Submitting after Close has begun is a programming error and panics with
	// ErrPoolClosed. Submit also panics with ErrNoWorkers once every worker has been
	// terminated by a failing Job, and with ErrNilJob for a nil Job.
	Submit(job.Job)

	// Close shuts the pool down. It stops accepting Jobs, then blocks until every worker
	// has drained the queue and exited. Jobs submitted before Close are never discarded.
	// If a worker was terminated by a panicking Job, Close panics with an error wrapping
	// ErrWorkerPanicked, or ErrWorkerExited if the Job ended its goroutine without
	// panicking. Calling Close more than once has no effect.
	//
	// Always pair New with a deferred Close:
	//
	//	p := pool.New(4)
	//	defer p.Close()
	Close()

	// Size returns the number of workers the pool was created with.
	Size() uint16

	// Pending returns the number of Jobs waiting in the queue for a worker.
	Pending() int
}
