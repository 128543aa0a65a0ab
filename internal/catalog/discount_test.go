package catalog

import (
	"testing"

	"github.com/tradezlk/vendorgo/internal/models"
)

func TestApplyDiscountPercent(t *testing.T) {
	got := ApplyDiscount(100, models.DiscountPercent, 25)
	if got != 75 {
		t.Errorf("25%% off 100: got %v, want 75", got)
	}

	got = ApplyDiscount(19.99, models.DiscountPercent, 10)
	if got != 17.99 {
		t.Errorf("10%% off 19.99: got %v, want 17.99", got)
	}
}

func TestApplyDiscountAbsolute(t *testing.T) {
	got := ApplyDiscount(100, models.DiscountAbsolute, 30)
	if got != 70 {
		t.Errorf("100 - 30: got %v, want 70", got)
	}

	// an absolute discount larger than the price bottoms out at zero
	got = ApplyDiscount(50, models.DiscountAbsolute, 80)
	if got != 0 {
		t.Errorf("50 - 80: got %v, want 0", got)
	}
}

func TestApplyDiscountNoOp(t *testing.T) {
	for _, value := range []float64{0, -5} {
		got := ApplyDiscount(42.5, models.DiscountPercent, value)
		if got != 42.5 {
			t.Errorf("discount %v: got %v, want unchanged 42.5", value, got)
		}
	}
}

func TestApplyDiscountPercentClamped(t *testing.T) {
	// 150% behaves as 100%, never a negative price
	got := ApplyDiscount(100, models.DiscountPercent, 150)
	if got != 0 {
		t.Errorf("150%% off 100: got %v, want 0", got)
	}
}
