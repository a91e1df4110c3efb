package worker

import (
	"errors"
	"fmt"
	"github.com/pgvanniekerk/ezpool/internal/metrics"
	"github.com/pgvanniekerk/ezpool/job"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/panics"
	"sync/atomic"
	"time"
)

// ErrWorkerPanicked is wrapped by the error Join returns when the Worker's goroutine
// was terminated by a panicking Job.
var ErrWorkerPanicked = errors.New("worker terminated by a panicking job")

// ErrWorkerExited is wrapped by the error Join returns when a Job ended the Worker's
// goroutine without panicking, for example by calling runtime.Goexit.
var ErrWorkerExited = errors.New("worker terminated by a job exiting its goroutine")

// Source is the consuming end of a job queue shared by a set of Workers.
type Source interface {

	// Receive blocks until a Job is available and returns it, or returns false once
	// the source is closed and drained.
	Receive() (job.Job, bool)

	// Attach registers the Worker as a consumer of the source.
	Attach()

	// Detach unregisters the Worker once its goroutine is exiting.
	Detach()
}

// Worker owns a single goroutine that repeatedly takes the next Job from a shared
// Source and runs it. A Worker runs at most one Job at a time and exits once the
// Source reports that it is closed and drained, or when a Job panics.
type Worker struct {

	// id identifies the Worker within its pool.
	id int

	// source is the shared queue the Worker receives Jobs from.
	source Source

	// done is closed once the Worker's goroutine has returned. It acts as the
	// Worker's join handle.
	done chan struct{}

	// catcher records a panic raised by a Job so that it can be surfaced by Join.
	catcher *panics.Catcher

	// finished is set once the receive loop has returned because the source was
	// closed and drained. It stays unset if a Job ended the goroutine.
	finished *atomic.Bool

	// logger is decorated with the Worker's id.
	logger logrus.FieldLogger

	// metrics may be nil.
	metrics *metrics.Metrics
}

//region Implementation

// ID returns the Worker's id.
func (w *Worker) ID() int {
	return w.id
}

// Done returns a channel that is closed once the Worker's goroutine has exited.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Join blocks until the Worker's goroutine has exited. It returns an error wrapping
// ErrWorkerPanicked if the goroutine was terminated by a panicking Job, or
// ErrWorkerExited if a Job ended the goroutine in any other way.
func (w *Worker) Join() error {
	<-w.done

	if r := w.catcher.Recovered(); r != nil {
		return fmt.Errorf("worker %d: %w: %v", w.id, ErrWorkerPanicked, r.Value)
	}

	if !w.finished.Load() {
		return fmt.Errorf("worker %d: %w", w.id, ErrWorkerExited)
	}

	return nil
}

//endregion

//region Helpers

// run is the body of the Worker's goroutine.
func (w *Worker) run() {
	defer close(w.done)
	defer w.metrics.WorkerExited()
	defer w.source.Detach()
	defer w.reportExit()

	w.catcher.Try(w.loop)

	// Not reached when a Job calls runtime.Goexit; only the deferred calls run.
	w.finished.Store(true)
}

// reportExit logs and counts an abnormal end of the Worker's goroutine.
func (w *Worker) reportExit() {
	if r := w.catcher.Recovered(); r != nil {
		w.metrics.JobPanicked()
		w.logger.WithField("panic", r.Value).Error("job panicked; worker terminated")
		return
	}

	if !w.finished.Load() {
		w.logger.Error("job exited the worker goroutine; worker terminated")
	}
}

// loop receives and executes Jobs until the source is closed and drained.
func (w *Worker) loop() {
	for {
		j, ok := w.source.Receive()
		if !ok {
			w.logger.Info("disconnected; shutting down")
			return
		}

		w.logger.Debug("got a job; executing")

		start := time.Now()
		j()
		w.metrics.JobFinished(time.Since(start))
	}
}

//endregion
