// pkg/memcache/role_cache.go
package mem

import (
	"sync"
	"time"
)

// RoleCache keeps resolved role names per user for a bounded time.
type RoleCache interface {
	Set(userID string, role string, ttl time.Duration)

	// Get returns the cached role if present and not expired.
	Get(userID string) (string, bool)

	Invalidate(userID string)
}

type entry struct {
	role      string
	expiresAt time.Time
}

type RoleEntries struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewRoleEntries() *RoleEntries {
	return &RoleEntries{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *RoleEntries) Set(userID string, role string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = entry{
		role:      role,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *RoleEntries) Get(userID string) (string, bool) {
	s.mu.RLock()
	e, ok := s.data[userID]
	s.mu.RUnlock()

	if !ok {
		return "", false
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		// re-check under the write lock, a concurrent Set may have refreshed it
		if cur, ok := s.data[userID]; ok && s.now().After(cur.expiresAt) {
			delete(s.data, userID)
		}
		s.mu.Unlock()
		return "", false
	}
	return e.role, true
}

func (s *RoleEntries) Invalidate(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
}

// Len counts entries including expired ones not yet evicted.
func (s *RoleEntries) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
