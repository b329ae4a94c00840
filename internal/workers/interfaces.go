// Package workers provides the background loops of the client: periodic
// jobs, a debounced trigger and an idle timer, plus a Workers aggregate that
// runs them together and stops them as one unit.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run blocks until ctx is cancelled.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}

// WorkerFunc adapts an ordinary function to [Worker].
type WorkerFunc func(ctx context.Context)

// Run implements [Worker].
func (f WorkerFunc) Run(ctx context.Context) {
	f(ctx)
}
