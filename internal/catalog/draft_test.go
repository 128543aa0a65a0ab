package catalog

import (
	"testing"

	"github.com/tradezlk/vendorgo/internal/models"
)

func variant(id string, units int, price float64) models.Variant {
	return models.Variant{
		ID:           id,
		SKU:          "SKU-" + id,
		Units:        units,
		Price:        price,
		DiscountType: models.DiscountPercent,
	}
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestTrackerGetDraftSeedsFromCanonical(t *testing.T) {
	tr := NewTracker()
	v := variant("v1", 10, 99.5)

	d := tr.GetDraft(v)
	if d.Units != 10 || d.Price != 99.5 || d.Status != StatusIdle {
		t.Errorf("seeded draft: got %+v, want canonical values with idle status", d)
	}
	if tr.Len() != 0 {
		t.Errorf("GetDraft must not store anything: got %d drafts", tr.Len())
	}
}

func TestTrackerSeedDefaultsDiscountType(t *testing.T) {
	tr := NewTracker()
	v := models.Variant{ID: "v1", Price: 10}

	d := tr.GetDraft(v)
	if d.DiscountType != models.DiscountPercent {
		t.Errorf("empty discount type: got %q, want %q", d.DiscountType, models.DiscountPercent)
	}
}

func TestTrackerPatchMarksEdited(t *testing.T) {
	tr := NewTracker()
	v := variant("v1", 10, 50)

	d := tr.Patch(v, DraftPatch{Units: intp(25)})
	if d.Units != 25 {
		t.Errorf("units: got %d, want 25", d.Units)
	}
	if d.Price != 50 {
		t.Errorf("untouched price: got %v, want 50", d.Price)
	}
	if d.Status != StatusEdited {
		t.Errorf("status: got %q, want %q", d.Status, StatusEdited)
	}
	if !tr.IsChanged(v) {
		t.Error("IsChanged: got false, want true after an edit")
	}
}

func TestTrackerPatchClampsInputs(t *testing.T) {
	tr := NewTracker()
	v := variant("v1", 10, 50)

	d := tr.Patch(v, DraftPatch{Units: intp(-3), Price: floatp(-1), Discount: floatp(250)})
	if d.Units != 0 {
		t.Errorf("negative units: got %d, want 0", d.Units)
	}
	if d.Price != 0 {
		t.Errorf("negative price: got %v, want 0", d.Price)
	}
	if d.Discount != 100 {
		t.Errorf("percent discount over 100: got %v, want 100", d.Discount)
	}
}

func TestTrackerPatchAbsoluteDiscountNotClamped(t *testing.T) {
	tr := NewTracker()
	v := variant("v1", 10, 500)
	dt := models.DiscountAbsolute

	d := tr.Patch(v, DraftPatch{Discount: floatp(250), DiscountType: &dt})
	if d.Discount != 250 {
		t.Errorf("absolute discount: got %v, want 250", d.Discount)
	}
}

func TestTrackerEditBackToOriginalIsUnchanged(t *testing.T) {
	tr := NewTracker()
	v := variant("v1", 10, 50)

	tr.Patch(v, DraftPatch{Units: intp(20)})
	if !tr.IsChanged(v) {
		t.Fatal("after edit: got unchanged, want changed")
	}

	tr.Patch(v, DraftPatch{Units: intp(10)})
	if tr.IsChanged(v) {
		t.Error("after editing back to canonical: got changed, want unchanged")
	}
	if tr.Len() != 1 {
		t.Errorf("draft entry should remain: got %d, want 1", tr.Len())
	}
}

func TestTrackerStatusTransitions(t *testing.T) {
	tr := NewTracker()
	v := variant("v1", 10, 50)
	tr.Patch(v, DraftPatch{Units: intp(20)})

	if !tr.SetStatus("v1", StatusSaving) {
		t.Fatal("edited -> saving refused")
	}
	if tr.SetStatus("v1", StatusSaving) {
		t.Error("saving -> saving accepted, want refused")
	}
	if !tr.SetStatus("v1", StatusError) {
		t.Fatal("saving -> error refused")
	}
	if !tr.SetStatus("v1", StatusSaving) {
		t.Error("error -> saving refused, retry must be allowed")
	}

	if tr.SetStatus("missing", StatusSaving) {
		t.Error("SetStatus on absent draft accepted, want refused")
	}
}

func TestTrackerErrorCannotComeFromEdited(t *testing.T) {
	tr := NewTracker()
	v := variant("v1", 10, 50)
	tr.Patch(v, DraftPatch{Units: intp(20)})

	if tr.SetStatus("v1", StatusError) {
		t.Error("edited -> error accepted, want refused")
	}
}

func TestTrackerClear(t *testing.T) {
	tr := NewTracker()
	v := variant("v1", 10, 50)
	tr.Patch(v, DraftPatch{Units: intp(20)})

	tr.Clear("v1")
	if tr.Len() != 0 {
		t.Errorf("after Clear: got %d drafts, want 0", tr.Len())
	}
	if tr.IsChanged(v) {
		t.Error("cleared row reports changed")
	}

	// clearing again is harmless
	tr.Clear("v1")
	tr.ClearAll()
	tr.ClearAll()
}
