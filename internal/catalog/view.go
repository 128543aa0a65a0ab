package catalog

import (
	"sort"
	"strings"

	"github.com/tradezlk/vendorgo/internal/models"
)

// SortKey selects the display order of the row projection.
type SortKey string

const (
	SortNone      SortKey = "none"
	SortStockAsc  SortKey = "stock-asc"
	SortStockDesc SortKey = "stock-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// Row is one (product, variant) pair as presented in the editing view,
// combined with its draft and derived display fields.
type Row struct {
	Product models.Product `json:"product"`
	Variant models.Variant `json:"variant"`
	Draft   Draft          `json:"draft"`
	Changed bool           `json:"changed"`
	// PreviewPrice is the draft price after the draft discount, present
	// only while a positive discount is being entered.
	PreviewPrice *float64 `json:"previewPrice,omitempty"`
}

// Stats are the headline counters shown above the table.
type Stats struct {
	Total      int `json:"total"`
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
	LowStock   int `json:"lowStock"`
	Edited     int `json:"edited"`
}

// ProjectRows flattens products into (product, variant) rows, filters them
// by a case-insensitive substring match against product name or variant
// SKU, and orders them by key. Sorting is stable: ties keep upstream
// insertion order. The projection is read-only; it never mutates the store
// or the tracker.
func ProjectRows(products []models.Product, tracker *Tracker, query string, key SortKey) []Row {
	q := strings.ToLower(query)

	var rows []Row
	for _, p := range products {
		for _, v := range p.Variants {
			if q != "" &&
				!strings.Contains(strings.ToLower(p.Name), q) &&
				!strings.Contains(strings.ToLower(v.SKU), q) {
				continue
			}
			d := tracker.GetDraft(v)
			row := Row{
				Product: p,
				Variant: v,
				Draft:   d,
				Changed: tracker.IsChanged(v),
			}
			if d.Discount > 0 {
				preview := ApplyDiscount(d.Price, d.DiscountType, d.Discount)
				row.PreviewPrice = &preview
			}
			rows = append(rows, row)
		}
	}

	switch key {
	case SortStockAsc:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Variant.Units < rows[j].Variant.Units })
	case SortStockDesc:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Variant.Units > rows[j].Variant.Units })
	case SortPriceAsc:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Variant.Price < rows[j].Variant.Price })
	case SortPriceDesc:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Variant.Price > rows[j].Variant.Price })
	}
	return rows
}

// ProjectStats counts stock and edit state over the full (unfiltered) row
// set. A variant with no reorder level configured counts as low stock at 5
// units or fewer.
func ProjectStats(products []models.Product, tracker *Tracker) Stats {
	var st Stats
	for _, p := range products {
		for _, v := range p.Variants {
			st.Total++
			threshold := v.ReorderLevel
			if threshold <= 0 {
				threshold = 5
			}
			switch {
			case v.Units == 0:
				st.OutOfStock++
			case v.Units <= threshold:
				st.InStock++
				st.LowStock++
			default:
				st.InStock++
			}
			if tracker.IsChanged(v) {
				st.Edited++
			}
		}
	}
	return st
}
