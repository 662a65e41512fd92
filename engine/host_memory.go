package engine

import (
	"sync"
	"time"
)

type hostEntry struct {
	engineName string
	expiresAt  time.Time
}

// HostMemory remembers which engine last succeeded for a host so later
// listings on the same site skip the race. Entries expire after ttl.
type HostMemory struct {
	mu      sync.Mutex
	entries map[string]hostEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewHostMemory creates a HostMemory with the given TTL.
func NewHostMemory(ttl time.Duration) *HostMemory {
	return &HostMemory{
		entries: make(map[string]hostEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the remembered engine name for host, or "" if none or expired.
func (m *HostMemory) Get(host string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[host]
	if !ok {
		return ""
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, host)
		return ""
	}
	return e.engineName
}

// Set records the engine that succeeded for host.
func (m *HostMemory) Set(host, engineName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[host] = hostEntry{engineName: engineName, expiresAt: m.now().Add(m.ttl)}
}

// Delete forgets host, e.g. after the remembered engine failed.
func (m *HostMemory) Delete(host string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, host)
}
