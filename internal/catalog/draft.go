package catalog

import (
	"github.com/tradezlk/vendorgo/internal/models"
)

// DraftStatus is the per-row lifecycle state of an unsaved edit.
type DraftStatus string

const (
	StatusIdle   DraftStatus = "idle"
	StatusEdited DraftStatus = "edited"
	StatusSaving DraftStatus = "saving"
	StatusSaved  DraftStatus = "saved" // transient: collapses to idle when the draft is deleted
	StatusError  DraftStatus = "error"
)

// Draft holds the locally edited values for one variant, decoupled from the
// canonical variant until a save confirms them.
type Draft struct {
	Units        int                 `json:"units"`
	Price        float64             `json:"price"`
	Discount     float64             `json:"discount"`
	DiscountType models.DiscountType `json:"discountType"`
	Status       DraftStatus         `json:"status"`
}

// DraftPatch is a partial update to a draft. Nil fields are left untouched.
// Status defaults to edited when not set explicitly.
type DraftPatch struct {
	Units        *int
	Price        *float64
	Discount     *float64
	DiscountType *models.DiscountType
	Status       *DraftStatus
}

// Tracker maps variant ID to its draft. At most one draft exists per
// variant; a variant without an entry is idle (in sync with canonical).
// The tracker never does I/O; callers own synchronization.
type Tracker struct {
	drafts map[string]Draft
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{drafts: make(map[string]Draft)}
}

// seedDraft builds an idle draft from the canonical variant values.
func seedDraft(v models.Variant) Draft {
	dt := v.DiscountType
	if dt == "" {
		dt = models.DiscountPercent
	}
	return Draft{
		Units:        v.Units,
		Price:        v.Price,
		Discount:     v.Discount,
		DiscountType: dt,
		Status:       StatusIdle,
	}
}

// GetDraft returns the stored draft for the variant, or a fresh idle draft
// seeded from canonical values. Reading never mutates the map.
func (t *Tracker) GetDraft(v models.Variant) Draft {
	if d, ok := t.drafts[v.ID]; ok {
		return d
	}
	return seedDraft(v)
}

// Get returns the stored draft only, without synthesizing one.
func (t *Tracker) Get(variantID string) (Draft, bool) {
	d, ok := t.drafts[variantID]
	return d, ok
}

// Patch merges p into the existing (or seeded) draft for the variant and
// stores the result. Numeric inputs are silently clamped: negatives to 0
// and percent discounts to at most 100. Unless p carries an explicit
// status, the draft becomes edited.
func (t *Tracker) Patch(v models.Variant, p DraftPatch) Draft {
	d, ok := t.drafts[v.ID]
	if !ok {
		d = seedDraft(v)
	}

	if p.Units != nil {
		d.Units = max(0, *p.Units)
	}
	if p.Price != nil {
		d.Price = max(0, *p.Price)
	}
	if p.Discount != nil {
		d.Discount = max(0, *p.Discount)
	}
	if p.DiscountType != nil {
		d.DiscountType = *p.DiscountType
	}
	if d.DiscountType == models.DiscountPercent && d.Discount > 100 {
		d.Discount = 100
	}

	if p.Status != nil {
		d.Status = *p.Status
	} else {
		d.Status = StatusEdited
	}

	t.drafts[v.ID] = d
	return d
}

// SetStatus moves an existing draft to status s, enforcing the lifecycle:
// saving is only reachable from edited (or error, when the vendor retries a
// failed row), and error only from saving. Returns false when no draft
// exists or the transition is not allowed.
func (t *Tracker) SetStatus(variantID string, s DraftStatus) bool {
	d, ok := t.drafts[variantID]
	if !ok {
		return false
	}
	switch s {
	case StatusSaving:
		if d.Status != StatusEdited && d.Status != StatusError {
			return false
		}
	case StatusError:
		if d.Status != StatusSaving {
			return false
		}
	}
	d.Status = s
	t.drafts[variantID] = d
	return true
}

// Clear removes the draft for the variant, returning the row to idle.
// Clearing an absent draft is a no-op.
func (t *Tracker) Clear(variantID string) {
	delete(t.drafts, variantID)
}

// ClearAll removes every draft regardless of status.
func (t *Tracker) ClearAll() {
	t.drafts = make(map[string]Draft)
}

// Len reports how many drafts are currently held.
func (t *Tracker) Len() int {
	return len(t.drafts)
}

// IDs returns the variant IDs that currently have a draft, in no
// particular order.
func (t *Tracker) IDs() []string {
	ids := make([]string, 0, len(t.drafts))
	for id := range t.drafts {
		ids = append(ids, id)
	}
	return ids
}

// IsChanged reports whether the draft for the variant differs from its
// canonical values. Editing a field back to its original value makes the
// row unchanged again, even though the draft entry may still exist.
func (t *Tracker) IsChanged(v models.Variant) bool {
	d, ok := t.drafts[v.ID]
	if !ok {
		return false
	}
	seed := seedDraft(v)
	return d.Units != seed.Units ||
		d.Price != seed.Price ||
		d.Discount != seed.Discount ||
		d.DiscountType != seed.DiscountType
}
