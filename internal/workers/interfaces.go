// Package workers provides abstractions for managing and running
// background workers in the client.
// It defines the Worker interface, a Workers aggregate that allows
// running multiple workers in a unified way, and the connectivity
// observer that drives queue replay.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run starts the worker's execution and Stop ends it, blocking until every
// goroutine started by Run has returned.
//
// Implementations are expected to spawn goroutines internally so that Run
// returns immediately.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run()  { go w.loop() }
//	func (w *MyWorker) Stop() { w.cancel(); w.wg.Wait() }
type Worker interface {
	Run()
	Stop()
}

// Prober reports whether the backend looks reachable. A nil error means
// reachable. Probes are hints only: a successful probe does not guarantee
// the next request succeeds.
type Prober interface {
	Probe(ctx context.Context) error
}
