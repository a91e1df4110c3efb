// Package pool provides a fixed-size worker pool for running submitted functions on a
// bounded set of background goroutines.
//
// # Overview
//
// A Pool is created with a fixed number of workers. Each worker owns one goroutine that
// repeatedly takes the next Job from a queue shared by all workers and runs it. Submitting
// a Job never waits for a worker: Jobs queue up in FIFO order until a worker is free.
// Every submitted Job runs exactly once, on exactly one worker.
//
// Key properties:
//   - The number of workers is fixed at construction and must be greater than 0
//   - Submit is safe to call from any number of goroutines
//   - Delivery to workers is FIFO; completion order is not guaranteed
//   - Close drains every queued Job and joins the workers in id order
//   - A panicking Job terminates its worker, which is not replaced
//
// # Usage
//
//	p := pool.New(4)
//	defer p.Close()
//
//	for i := 0; i < 8; i++ {
//		p.Submit(func() {
//			fmt.Println("processing", i)
//		})
//	}
//
// # Lifecycle
//
// Close must be called once the pool is no longer needed, typically with defer. It stops
// the pool accepting Jobs and blocks until all queued Jobs have run. Calling Submit after
// Close is a programming error and panics with ErrPoolClosed.
//
// # Failing Jobs
//
// The pool does not isolate Jobs from each other. A Job that panics ends the goroutine of
// the worker running it and the pool continues with one worker fewer. Once no worker
// remains, Submit panics with ErrNoWorkers. The panic is surfaced again when the pool is
// closed: Close panics with an error wrapping ErrWorkerPanicked. A Job that ends its
// goroutine without panicking, for example through runtime.Goexit, also terminates its
// worker, and Close then panics with an error wrapping ErrWorkerExited. Jobs that can
// fail should recover internally.
//
// # Observability
//
// Workers log through logrus: a debug line when a Job is picked up, an info line when a
// worker shuts down and an error line when a Job panics. Use WithLogger to supply a
// different logger and WithMetrics with NewMetrics to export Prometheus collectors.
package pool
