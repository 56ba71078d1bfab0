package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository is a thread-safe store of per-token sessions with automatic
// cleanup of stale entries. Sessions untouched for longer than the TTL are
// removed by a background sweep; a removed token simply reads as unknown and
// the client starts a fresh session.
//
// Usage:
//
//	repo := session.NewRepository(16, 30*time.Minute)
//	go repo.Serve() // start background cleanup
//	token, _ := repo.Create()
type Repository struct {
	historyLength int
	ttl           time.Duration

	sessions map[string]*Session
	lastSeen map[string]time.Time

	cleanTicker *time.Ticker
	mu          sync.RWMutex
}

// Create registers a new session and returns its token.
func (r *Repository) Create() (string, *Session) {
	token := uuid.NewString()
	s := newSession(r.historyLength)

	r.mu.Lock()
	r.sessions[token] = s
	r.lastSeen[token] = time.Now()
	r.mu.Unlock()
	return token, s
}

// Get returns the session for the token and refreshes its last-seen time.
// Unknown or expired tokens return (nil, false).
func (r *Repository) Get(token string) (*Session, bool) {
	r.mu.RLock()
	s, found := r.sessions[token]
	r.mu.RUnlock()
	if !found {
		return nil, false
	}

	r.mu.Lock()
	r.lastSeen[token] = time.Now()
	r.mu.Unlock()
	return s, true
}

// Serve runs the periodic cleanup loop, removing sessions whose last access
// is older than the TTL. Blocks; run in its own goroutine:
//
//	go repo.Serve()
//
// Stop with Stop.
func (r *Repository) Serve() {
	r.cleanTicker = time.NewTicker(time.Minute)
	for range r.cleanTicker.C {
		var expired []string

		r.mu.RLock()
		now := time.Now()
		for token, seen := range r.lastSeen {
			if now.Sub(seen) > r.ttl {
				expired = append(expired, token)
			}
		}
		r.mu.RUnlock()

		if len(expired) > 0 {
			r.mu.Lock()
			for _, token := range expired {
				delete(r.sessions, token)
				delete(r.lastSeen, token)
			}
			r.mu.Unlock()
		}
	}
}

// Stop cancels the cleanup ticker. Safe to call even if Serve never ran.
func (r *Repository) Stop() {
	if r.cleanTicker != nil {
		r.cleanTicker.Stop()
	}
}

// NewRepository creates a session store. historyLength bounds the per-session
// scoring history; ttl is the inactivity window after which a session is
// dropped by the background sweep started with Serve.
func NewRepository(historyLength int, ttl time.Duration) *Repository {
	return &Repository{
		historyLength: historyLength,
		ttl:           ttl,
		sessions:      make(map[string]*Session),
		lastSeen:      make(map[string]time.Time),
	}
}
