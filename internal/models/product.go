package models

// DiscountType distinguishes a percentage discount from a flat amount
// taken off the price. The wire value for flat discounts is the currency
// code the upstream API uses.
type DiscountType string

const (
	DiscountPercent  DiscountType = "%"
	DiscountAbsolute DiscountType = "LKR"
)

// VariantAttribute is one name/value pair describing a variant
// (e.g. Color=Black, Size=42).
type VariantAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variant is the canonical, server-confirmed state of one sellable unit.
// Canonical values are only ever changed by a refetch or by save
// reconciliation, never directly by an edit.
type Variant struct {
	ID           string             `json:"id"`
	SKU          string             `json:"sku"`
	Units        int                `json:"units"`
	Price        float64            `json:"price"`
	Discount     float64            `json:"discount"`
	DiscountType DiscountType       `json:"discountType"`
	ReorderLevel int                `json:"reOrderLevel"`
	Attributes   []VariantAttribute `json:"attributes"`
}

// Category groups products for display.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product as fetched from the upstream commerce API. A variant belongs to
// exactly one product and never moves between products.
type Product struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Brand    string    `json:"brand,omitempty"`
	Images   []string  `json:"images,omitempty"`
	MinPrice float64   `json:"minPrice"`
	MaxPrice float64   `json:"maxPrice"`
	Category Category  `json:"category"`
	Variants []Variant `json:"variants"`
}
