package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/tradezlk/vendorgo/internal/models"
)

// ProductSource fetches the canonical product list for a store. An empty
// store yields an empty slice, not an error.
type ProductSource interface {
	FetchProducts(ctx context.Context, storeID string) ([]models.Product, error)
}

// Session owns the editing state of one vendor looking at one store: the
// canonical variant store, the draft tracker and the collaborators that
// drive saves. HTTP handlers and save completions interleave on it, so all
// state access goes through the session mutex; only the upstream save call
// itself runs outside the lock, with the per-draft saving status acting as
// the mutual-exclusion bit for that row.
type Session struct {
	ID       string
	VendorID string
	StoreID  string

	mu      sync.Mutex
	store   *Store
	tracker *Tracker

	source   ProductSource
	saver    Saver
	notifier Notifier
}

// NewSession builds an empty session; call Refresh to populate it.
func NewSession(id, vendorID, storeID string, source ProductSource, saver Saver, notifier Notifier) *Session {
	return &Session{
		ID:       id,
		VendorID: vendorID,
		StoreID:  storeID,
		store:    NewStore(),
		tracker:  NewTracker(),
		source:   source,
		saver:    saver,
		notifier: notifier,
	}
}

// Refresh refetches the canonical product list. Variants with a live draft
// keep their previous canonical values so unsaved edits are never silently
// discarded; drafts whose variant disappeared upstream are dropped.
func (s *Session) Refresh(ctx context.Context) error {
	products, err := s.source.FetchProducts(ctx, s.StoreID)
	if err != nil {
		return fmt.Errorf("fetch products for store %s: %w", s.StoreID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Replace(products, func(variantID string) bool {
		_, ok := s.tracker.Get(variantID)
		return ok
	})
	for _, id := range s.tracker.IDs() {
		if _, _, ok := s.store.Find(id); !ok {
			s.tracker.Clear(id)
		}
	}
	return nil
}

// Rows returns the filtered, sorted display projection plus the headline
// stats over the full row set.
func (s *Session) Rows(query string, key SortKey) ([]Row, Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := ProjectRows(s.store.Products(), s.tracker, query, key)
	stats := ProjectStats(s.store.Products(), s.tracker)
	return rows, stats
}

// PatchDraft merges a partial edit into the variant's draft. Rows that are
// mid-save reject edits; an errored row moves back to edited, keeping the
// vendor's values.
func (s *Session) PatchDraft(variantID string, p DraftPatch) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, v, ok := s.store.Find(variantID)
	if !ok {
		return Draft{}, ErrUnknownVariant
	}
	if d, exists := s.tracker.Get(variantID); exists && d.Status == StatusSaving {
		return d, ErrSaveInFlight
	}
	return s.tracker.Patch(v, p), nil
}

// ResetRow discards the draft of a single variant, unless it is mid-save.
func (s *Session) ResetRow(variantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, _, ok := s.store.Find(variantID); !ok {
		return ErrUnknownVariant
	}
	if d, exists := s.tracker.Get(variantID); exists && d.Status == StatusSaving {
		return ErrSaveInFlight
	}
	s.tracker.Clear(variantID)
	return nil
}
