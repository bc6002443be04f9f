package web

import (
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"rolechat/internal/chat"
)

// Registry tracks live chat sessions by UID. Sessions never outlive the
// process; idle ones are swept so an abandoned browser tab does not pin its
// transcript forever.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*chat.Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*chat.Session)}
}

func (r *Registry) Create() (string, *chat.Session) {
	uid := shortuuid.New()
	sess := chat.NewSession()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[uid] = sess
	return uid, sess
}

func (r *Registry) Get(uid string) (*chat.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[uid]
	return sess, ok
}

func (r *Registry) Delete(uid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, uid)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than ttl and reports how many were
// dropped.
func (r *Registry) Sweep(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for uid, sess := range r.sessions {
		if sess.LastActive().Before(cutoff) {
			delete(r.sessions, uid)
			removed++
		}
	}
	return removed
}
