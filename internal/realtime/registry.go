package realtime

import "sync"

// Registry maps a logical user id to its current live connection id.
// Entries are process-local and lost on restart; clients re-register on
// reconnect. A user re-registering from a new connection (tab refresh)
// overwrites the previous entry: last writer wins.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]string
}

func NewRegistry() *Registry {
	return &Registry{byUser: make(map[string]string)}
}

// Register associates userID with connID, replacing any existing entry.
func (r *Registry) Register(userID, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[userID] = connID
}

// Lookup returns the live connection id for userID, if any.
func (r *Registry) Lookup(userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	connID, ok := r.byUser[userID]
	return connID, ok
}

// Unregister removes the entry holding connID. A stale disconnect for a
// connection that was already replaced removes nothing.
func (r *Registry) Unregister(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for uid, cid := range r.byUser {
		if cid == connID {
			delete(r.byUser, uid)
			return
		}
	}
}

// Online reports the number of registered users.
func (r *Registry) Online() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}
