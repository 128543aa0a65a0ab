package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tradezlk/vendorgo/internal/catalog"
)

// Factory builds the catalog session for a vendor/store pair once the
// manager has assigned it an ID. It lets the caller wire per-session
// collaborators (audited saver, session-bound notifier).
type Factory func(id, vendorID, storeID string) *catalog.Session

type entry struct {
	session  *catalog.Session
	lastSeen time.Time
}

// Manager tracks the live editing sessions. One session exists per
// (vendor, store) pair; idle sessions are evicted after the TTL, dropping
// any drafts they still held.
type Manager struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*entry  // by session ID
	byPair  map[string]string  // vendorID+"/"+storeID -> session ID
	stop    chan struct{}
	once    sync.Once
}

// NewManager creates a manager and starts its eviction loop.
func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		ttl:     ttl,
		entries: make(map[string]*entry),
		byPair:  make(map[string]string),
		stop:    make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Open returns the existing session for the vendor/store pair or creates a
// new one via factory. The second result reports whether a session was
// created.
func (m *Manager) Open(vendorID, storeID string, factory Factory) (*catalog.Session, bool) {
	key := vendorID + "/" + storeID

	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.byPair[key]; ok {
		if e, ok := m.entries[id]; ok {
			e.lastSeen = time.Now()
			return e.session, false
		}
	}

	id := uuid.NewString()
	s := factory(id, vendorID, storeID)
	m.entries[id] = &entry{session: s, lastSeen: time.Now()}
	m.byPair[key] = id
	return s, true
}

// Get looks a session up by ID and refreshes its idle timer.
func (m *Manager) Get(id string) (*catalog.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.session, true
}

// Close stops the eviction loop.
func (m *Manager) Close() {
	m.once.Do(func() { close(m.stop) })
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.evictIdle()
		}
	}
}

func (m *Manager) evictIdle() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		if e.lastSeen.After(cutoff) {
			continue
		}
		delete(m.entries, id)
		delete(m.byPair, e.session.VendorID+"/"+e.session.StoreID)
		log.Printf("🧹 session %s evicted after %s idle", id, m.ttl)
	}
}
