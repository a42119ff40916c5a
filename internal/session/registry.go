package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/vinmasci/bikepathmap/util"
)

const sweepInterval = time.Minute

type entry struct {
	routeID   string
	expiresAt time.Time
}

// Registry maps a client session to the route identifier it is
// currently drawing. Entries expire after the configured TTL so the
// map stays bounded for a long-running process.
type Registry struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

func NewRegistry(ttl time.Duration) *Registry {
	r := &Registry{
		entries: make(map[string]entry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go r.sweep()
	return r
}

// Generate produces a new route identifier for the session, replacing
// any identifier generated earlier for it.
func (r *Registry) Generate(sessionID string) string {
	routeID := fmt.Sprintf("route_%d_%s", time.Now().UnixMilli(), util.GenerateShortCode(6))

	r.mu.Lock()
	r.entries[sessionID] = entry{
		routeID:   routeID,
		expiresAt: time.Now().Add(r.ttl),
	}
	r.mu.Unlock()

	return routeID
}

// Lookup returns the route identifier most recently generated for the
// session, or false when none exists or the entry has expired.
func (r *Registry) Lookup(sessionID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		delete(r.entries, sessionID)
		return "", false
	}
	return e.routeID, true
}

// Len reports the number of live entries, expired ones included until
// the next sweep.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Close stops the background sweeper.
func (r *Registry) Close() {
	r.once.Do(func() { close(r.done) })
}

func (r *Registry) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case now := <-ticker.C:
			r.mu.Lock()
			for sessionID, e := range r.entries {
				if now.After(e.expiresAt) {
					delete(r.entries, sessionID)
				}
			}
			r.mu.Unlock()
		}
	}
}
