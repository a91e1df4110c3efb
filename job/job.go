package job

// Job is a single deferred unit of work submitted to a pool for background execution.
// A Job is invoked exactly once, by exactly one worker, on that worker's goroutine.
// Any state the Job needs must be captured by the closure itself, and access to state
// shared with other Jobs must be synchronized by the caller.
type Job func()
