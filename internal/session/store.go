package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the in-memory session registry. Sessions are keyed by a UUID
// handed to the client; there is no durable storage behind it.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewStore returns a store whose sessions expire after ttl of inactivity.
// A non-positive ttl disables expiry.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create registers a fresh session and returns it.
func (st *Store) Create() *Session {
	s := New(uuid.NewString())
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	return s
}

// Get returns the session with the given ID, or false.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete discards a session. Deleting an unknown ID is a no-op.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// PruneExpired drops sessions idle longer than the TTL and returns the IDs it
// removed.
func (st *Store) PruneExpired() []string {
	if st.ttl <= 0 {
		return nil
	}
	cutoff := time.Now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()
	var removed []string
	for id, s := range st.sessions {
		if s.LastActive().Before(cutoff) {
			removed = append(removed, id)
		}
	}
	for _, id := range removed {
		delete(st.sessions, id)
	}
	return removed
}

// StartSweeper prunes expired sessions on the given interval until stop is
// closed.
func (st *Store) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			st.PruneExpired()
		case <-stop:
			return
		}
	}
}
