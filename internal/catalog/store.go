package catalog

import (
	"github.com/tradezlk/vendorgo/internal/models"
)

// Store holds the canonical product list for one vendor store, as last
// confirmed by the upstream API. Canonical variants change only through
// Replace (refetch), ApplyItems (optimistic save patch) or Revert
// (compensation after a failed save). Callers own synchronization.
type Store struct {
	products []models.Product
	// variant ID -> index pair into products, rebuilt on Replace
	index map[string][2]int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{index: make(map[string][2]int)}
}

// Products returns the canonical product list in upstream order. The
// returned slice is the store's own; callers must not mutate it.
func (s *Store) Products() []models.Product {
	return s.products
}

// Find locates a variant and its parent product by variant ID.
func (s *Store) Find(variantID string) (models.Product, models.Variant, bool) {
	loc, ok := s.index[variantID]
	if !ok {
		return models.Product{}, models.Variant{}, false
	}
	p := s.products[loc[0]]
	return p, p.Variants[loc[1]], true
}

// Replace swaps in a freshly fetched product list. Variants for which keep
// reports true (live drafts, per the refetch policy) retain their previous
// canonical values so that unsaved edits keep diffing against the state the
// vendor was looking at when they made them. keep may be nil.
func (s *Store) Replace(products []models.Product, keep func(variantID string) bool) {
	if keep != nil {
		for pi := range products {
			for vi, v := range products[pi].Variants {
				if !keep(v.ID) {
					continue
				}
				if _, prev, ok := s.Find(v.ID); ok {
					products[pi].Variants[vi] = prev
				}
			}
		}
	}
	s.products = products
	s.reindex()
}

func (s *Store) reindex() {
	s.index = make(map[string][2]int)
	for pi := range s.products {
		for vi := range s.products[pi].Variants {
			s.index[s.products[pi].Variants[vi].ID] = [2]int{pi, vi}
		}
	}
}

// Undo is the snapshot taken before an optimistic patch. Reverting it
// restores the exact pre-request canonical values.
type Undo struct {
	prev []models.Variant
}

// ApplyItems optimistically patches canonical variants to the values of a
// dispatched batch and returns the snapshot needed to undo the patch if the
// save fails. Items for unknown variants are skipped.
func (s *Store) ApplyItems(items []SaveItem) Undo {
	u := Undo{}
	for _, it := range items {
		loc, ok := s.index[it.VariantID]
		if !ok {
			continue
		}
		v := &s.products[loc[0]].Variants[loc[1]]
		u.prev = append(u.prev, *v)

		v.Units = it.NewStock
		v.Price = it.NewPrice
		v.Discount = it.NewDiscount
		v.DiscountType = it.DiscountType
	}
	return u
}

// Revert restores the snapshot taken by ApplyItems.
func (s *Store) Revert(u Undo) {
	for _, prev := range u.prev {
		loc, ok := s.index[prev.ID]
		if !ok {
			continue
		}
		s.products[loc[0]].Variants[loc[1]] = prev
	}
}
