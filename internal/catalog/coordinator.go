package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/tradezlk/vendorgo/internal/models"
)

var (
	// ErrUnknownVariant means the variant ID is not in the canonical store.
	ErrUnknownVariant = errors.New("catalog: unknown variant")
	// ErrNoPendingEdit means the variant has no draft that differs from canonical.
	ErrNoPendingEdit = errors.New("catalog: variant has no pending edit")
	// ErrSaveInFlight means the variant's draft is already being saved.
	ErrSaveInFlight = errors.New("catalog: save already in progress for variant")
)

// SaveItem is one entry of a batch save request sent upstream.
type SaveItem struct {
	ProductID         string              `json:"productId"`
	VariantID         string              `json:"variantId"`
	NewStock          int                 `json:"newStock"`
	NewPrice          float64             `json:"newPrice"`
	NewDiscount       float64             `json:"newDiscount"`
	DiscountType      models.DiscountType `json:"discountType"`
	IsDiscountPercent bool                `json:"isDiscountPercent"`
}

// Saver dispatches one batch save request to the external save endpoint.
// The batch is atomic from the session's point of view: it either fully
// succeeds or fully fails.
type Saver interface {
	Save(ctx context.Context, storeID string, items []SaveItem) error
}

// Level classifies a user-facing notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notifier receives the user-facing outcome of save operations. Transport
// (toast, websocket, log) is up to the implementation.
type Notifier interface {
	Notify(level Level, message string)
}

func buildSaveItem(p models.Product, v models.Variant, d Draft) SaveItem {
	return SaveItem{
		ProductID:         p.ID,
		VariantID:         v.ID,
		NewStock:          d.Units,
		NewPrice:          d.Price,
		NewDiscount:       d.Discount,
		DiscountType:      d.DiscountType,
		IsDiscountPercent: d.DiscountType == models.DiscountPercent,
	}
}

// SaveOne saves the pending edit of a single variant. The draft moves to
// saving, the canonical cache is patched optimistically, and one 1-item
// batch goes upstream. On success the draft is removed and the optimistic
// patch stands; on failure the patch is reverted and the draft moves to
// error with its values intact so the vendor can retry without retyping.
func (s *Session) SaveOne(ctx context.Context, variantID string) error {
	s.mu.Lock()
	p, v, ok := s.store.Find(variantID)
	if !ok {
		s.mu.Unlock()
		return ErrUnknownVariant
	}
	d, exists := s.tracker.Get(variantID)
	if exists && d.Status == StatusSaving {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	if !exists || !s.tracker.IsChanged(v) {
		s.mu.Unlock()
		return ErrNoPendingEdit
	}

	item := buildSaveItem(p, v, d)
	s.tracker.SetStatus(variantID, StatusSaving)
	undo := s.store.ApplyItems([]SaveItem{item})
	s.mu.Unlock()

	err := s.saver.Save(ctx, s.StoreID, []SaveItem{item})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.store.Revert(undo)
		s.tracker.SetStatus(variantID, StatusError)
		s.notifier.Notify(LevelError, "Save failed. Please try again.")
		return fmt.Errorf("save variant %s: %w", variantID, err)
	}

	s.tracker.Clear(variantID)
	s.notifier.Notify(LevelSuccess, fmt.Sprintf("%q saved successfully", p.Name))
	return nil
}

// SaveAll collects every changed draft that is not already mid-save and
// sends them upstream as one batch. All participants are marked saving
// before the request is dispatched and resolve together from the single
// response: on success every participating draft is removed, on failure
// every one moves to error and the optimistic cache patch is reverted.
// With nothing to save it emits a no-op notification and sends nothing.
func (s *Session) SaveAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	var items []SaveItem
	var ids []string
	for _, p := range s.store.Products() {
		for _, v := range p.Variants {
			d, ok := s.tracker.Get(v.ID)
			if !ok || d.Status == StatusSaving || !s.tracker.IsChanged(v) {
				continue
			}
			items = append(items, buildSaveItem(p, v, d))
			ids = append(ids, v.ID)
		}
	}
	if len(items) == 0 {
		s.mu.Unlock()
		s.notifier.Notify(LevelInfo, "No changes to save.")
		return 0, nil
	}

	for _, id := range ids {
		s.tracker.SetStatus(id, StatusSaving)
	}
	undo := s.store.ApplyItems(items)
	s.mu.Unlock()

	err := s.saver.Save(ctx, s.StoreID, items)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.store.Revert(undo)
		for _, id := range ids {
			s.tracker.SetStatus(id, StatusError)
		}
		s.notifier.Notify(LevelError, "Bulk save failed. Please try again.")
		return 0, fmt.Errorf("bulk save of %d items: %w", len(items), err)
	}

	for _, id := range ids {
		s.tracker.Clear(id)
	}
	plural := "s"
	if len(items) == 1 {
		plural = ""
	}
	s.notifier.Notify(LevelSuccess, fmt.Sprintf("%d product%s saved successfully", len(items), plural))
	return len(items), nil
}

// DiscardAll drops every draft regardless of status, returning all rows to
// canonical values. Nothing is sent upstream. Calling it on an empty
// tracker is harmless.
func (s *Session) DiscardAll() {
	s.mu.Lock()
	s.tracker.ClearAll()
	s.mu.Unlock()
	s.notifier.Notify(LevelInfo, "All changes discarded.")
}
