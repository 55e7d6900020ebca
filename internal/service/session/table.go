package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type sessionTable struct {
	mu       sync.Mutex
	expiry   map[string]time.Time
	now      func() time.Time
	lastScan time.Time
}

func newSessionTable() *sessionTable {
	return &sessionTable{
		expiry: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (t *sessionTable) Issue(ttl time.Duration) string {
	id := uuid.NewString()
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.expiry[id] = now.Add(ttl)
	t.sweepLocked(now, ttl)
	return id
}

func (t *sessionTable) Touch(id string, ttl time.Duration) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	expiresAt, ok := t.expiry[id]
	if !ok {
		return false
	}
	now := t.now()
	if now.After(expiresAt) {
		delete(t.expiry, id)
		return false
	}
	t.expiry[id] = now.Add(ttl)
	return true
}

// sweepLocked drops expired ids at most once per ttl.
func (t *sessionTable) sweepLocked(now time.Time, ttl time.Duration) {
	if now.Sub(t.lastScan) < ttl {
		return
	}
	t.lastScan = now
	for id, expiresAt := range t.expiry {
		if now.After(expiresAt) {
			delete(t.expiry, id)
		}
	}
}
