// Package guard de-duplicates concurrent mutations keyed by operation kind
// and target id.
package guard

import "sync"

// Key identifies one mutation slot: at most one mutation per key may be in
// flight at any time.
type Key struct {
	Kind     string
	TargetID string
}

// Mutation kinds used across the client.
const (
	KindFriend        = "friend"
	KindCommentMutate = "comment-mutate"
)

// Guard tracks in-flight mutation keys. A second TryAcquire for a held key
// is rejected synchronously; there is no queueing and no backoff. Callers
// must Release on every exit path, success or failure, or the key stays dead
// for the rest of the session.
type Guard struct {
	mu   sync.Mutex
	held map[Key]struct{}
}

func New() *Guard {
	return &Guard{held: make(map[Key]struct{})}
}

// TryAcquire claims the key, reporting false if it is already held.
func (g *Guard) TryAcquire(k Key) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.held[k]; ok {
		return false
	}
	g.held[k] = struct{}{}
	return true
}

// Release frees the key. Releasing an unheld key is a no-op.
func (g *Guard) Release(k Key) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, k)
}

// Held reports whether the key is currently in flight.
func (g *Guard) Held(k Key) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.held[k]
	return ok
}
