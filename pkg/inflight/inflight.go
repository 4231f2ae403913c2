package inflight

import "sync"

// Gate blocks duplicate submissions: while one mutation for a page is in
// flight, further attempts are rejected instead of queued, mirroring a
// disabled submit button. It is the console's only concurrency control; there
// is no request cancellation or deduplication beyond it.
type Gate struct {
	mu sync.Mutex
}

// Enter claims the gate. It reports false when another operation already holds
// it.
func (g *Gate) Enter() bool {
	return g.mu.TryLock()
}

// Leave releases the gate.
func (g *Gate) Leave() {
	g.mu.Unlock()
}
