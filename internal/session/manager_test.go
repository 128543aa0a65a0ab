package session

import (
	"testing"
	"time"

	"github.com/tradezlk/vendorgo/internal/catalog"
)

func factory(id, vendorID, storeID string) *catalog.Session {
	return catalog.NewSession(id, vendorID, storeID, nil, nil, nil)
}

func TestManagerReusesSessionPerPair(t *testing.T) {
	m := NewManager(time.Hour)
	defer m.Close()

	s1, created := m.Open("vendor-1", "store-1", factory)
	if !created {
		t.Fatal("first open: got reuse, want created")
	}
	s2, created := m.Open("vendor-1", "store-1", factory)
	if created {
		t.Error("second open: got created, want reuse")
	}
	if s1 != s2 {
		t.Error("same pair returned different sessions")
	}

	s3, created := m.Open("vendor-1", "store-2", factory)
	if !created || s3 == s1 {
		t.Error("different store must get its own session")
	}
}

func TestManagerGet(t *testing.T) {
	m := NewManager(time.Hour)
	defer m.Close()

	s, _ := m.Open("vendor-1", "store-1", factory)

	got, ok := m.Get(s.ID)
	if !ok || got != s {
		t.Errorf("Get(%s): got %v, %v", s.ID, got, ok)
	}
	if _, ok := m.Get("nope"); ok {
		t.Error("Get of unknown ID: got ok")
	}
}

func TestManagerEvictsIdleSessions(t *testing.T) {
	m := NewManager(10 * time.Millisecond)
	defer m.Close()

	s, _ := m.Open("vendor-1", "store-1", factory)
	time.Sleep(20 * time.Millisecond)
	m.evictIdle()

	if _, ok := m.Get(s.ID); ok {
		t.Error("idle session survived eviction")
	}

	// the pair slot is free again
	if _, created := m.Open("vendor-1", "store-1", factory); !created {
		t.Error("open after eviction: got reuse, want created")
	}
}
