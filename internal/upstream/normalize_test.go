package upstream

import (
	"testing"

	"github.com/tradezlk/vendorgo/internal/models"
)

func TestNormalizeProductsUnwrapsNestedEnvelope(t *testing.T) {
	body := []byte(`{
		"success": true,
		"data": {
			"data": {
				"listProduct": [
					{
						"id": "p1",
						"name": "Ceylon Tea",
						"variants": [
							{"id": "v1", "sku": "TEA-100G", "units": 10, "price": 450}
						]
					}
				]
			}
		}
	}`)

	products, err := normalizeProducts(body)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("products: got %d, want 1", len(products))
	}
	p := products[0]
	if p.ID != "p1" || p.Name != "Ceylon Tea" {
		t.Errorf("product: got %+v", p)
	}
	if len(p.Variants) != 1 || p.Variants[0].Units != 10 || p.Variants[0].Price != 450 {
		t.Errorf("variant: got %+v", p.Variants)
	}
}

func TestNormalizeProductsBareArray(t *testing.T) {
	body := []byte(`[{"id": "p1", "name": "Plain", "variants": []}]`)
	products, err := normalizeProducts(body)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Errorf("products: got %+v", products)
	}
}

func TestNormalizeVariantDefaults(t *testing.T) {
	body := []byte(`{"data": {"products": [{"id": "p1", "variants": [{"id": "v1", "sku": "X"}]}]}}`)
	products, err := normalizeProducts(body)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	v := products[0].Variants[0]
	if v.Units != 0 || v.Price != 0 || v.Discount != 0 {
		t.Errorf("numeric defaults: got %+v, want zeros", v)
	}
	if v.DiscountType != models.DiscountPercent {
		t.Errorf("discount type default: got %q, want %q", v.DiscountType, models.DiscountPercent)
	}
}

func TestNormalizeDiscountType(t *testing.T) {
	cases := []struct {
		in   string
		want models.DiscountType
	}{
		{"", models.DiscountPercent},
		{"%", models.DiscountPercent},
		{"LKR", models.DiscountAbsolute},
		{"absolute", models.DiscountAbsolute},
	}
	for _, c := range cases {
		if got := normalizeDiscountType(c.in); got != c.want {
			t.Errorf("normalizeDiscountType(%q): got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestResponseAccepted(t *testing.T) {
	cases := []struct {
		name string
		body string
		want bool
	}{
		{"explicit success", `{"success": true}`, true},
		{"explicit failure", `{"success": false, "message": "nope"}`, false},
		{"isSuccess variant", `{"isSuccess": false}`, false},
		{"status code 200", `{"statusCode": 200}`, true},
		{"status code 500", `{"statusCode": 500}`, false},
		{"no flags at all", `{"data": {}}`, true},
	}
	for _, c := range cases {
		ok, _ := responseAccepted([]byte(c.body))
		if ok != c.want {
			t.Errorf("%s: got %v, want %v", c.name, ok, c.want)
		}
	}
}

func TestNormalizeStoresResolvesLogo(t *testing.T) {
	c := NewClient("https://intranet.example.lk/api", "https://intranet.example.lk/")
	body := []byte(`{
		"success": true,
		"data": {
			"stores": [
				{"storeId": "s1", "storeCode": "C01", "storeName": "Colombo", "storeLogo": "store/ab-12/asset/logo.png"},
				{"storeId": "s2", "storeCode": "K01", "storeName": "Kandy"}
			]
		}
	}`)

	stores, err := c.normalizeStores(body)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(stores) != 2 {
		t.Fatalf("stores: got %d, want 2", len(stores))
	}

	s := stores[0]
	if s.LogoURL != "https://intranet.example.lk/store/ab-12/asset/logo.png" {
		t.Errorf("logo url: got %q", s.LogoURL)
	}
	if s.LogoAPIURL != "https://intranet.example.lk/api/Asset/GetAssetAsync?path=store%2Fab-12%2Fasset%2Flogo.png" {
		t.Errorf("logo api url: got %q", s.LogoAPIURL)
	}
	if s.StoreUUID != "ab-12" {
		t.Errorf("store uuid: got %q, want ab-12", s.StoreUUID)
	}

	if stores[1].LogoURL != "" || stores[1].StoreUUID != "" {
		t.Errorf("store without logo: got %+v, want empty logo fields", stores[1])
	}
}

func TestNormalizeQRLogin(t *testing.T) {
	body := []byte(`{"success": true, "data": {"vendorId": "vnd-1", "email": "v@example.lk", "fullName": "Vendor One"}}`)
	res, err := normalizeQRLogin(body)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if res.VendorID != "vnd-1" || res.Email != "v@example.lk" {
		t.Errorf("result: got %+v", res)
	}

	if _, err := normalizeQRLogin([]byte(`{"success": false, "message": "expired"}`)); err == nil {
		t.Error("rejected token: got nil error")
	}
	if _, err := normalizeQRLogin([]byte(`{"success": true, "data": {}}`)); err == nil {
		t.Error("empty identity: got nil error")
	}
}
