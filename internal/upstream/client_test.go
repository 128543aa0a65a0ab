package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tradezlk/vendorgo/internal/catalog"
	"github.com/tradezlk/vendorgo/internal/models"
)

func TestClientSave(t *testing.T) {
	var gotPath string
	var gotPayload map[string]json.RawMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL+"/")
	items := []catalog.SaveItem{{
		ProductID:         "p1",
		VariantID:         "v1",
		NewStock:          5,
		NewPrice:          100,
		DiscountType:      models.DiscountPercent,
		IsDiscountPercent: true,
	}}

	if err := c.Save(context.Background(), "store-1", items); err != nil {
		t.Fatalf("save: %v", err)
	}
	if gotPath != "/TradezVendor/GetProductMgtSaveAsync" {
		t.Errorf("path: got %q", gotPath)
	}
	if _, ok := gotPayload["listUpdateDetails"]; !ok {
		t.Error("payload missing listUpdateDetails")
	}
	if string(gotPayload["storeId"]) != `"store-1"` {
		t.Errorf("storeId: got %s", gotPayload["storeId"])
	}
}

func TestClientSaveRejectedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with a failure flag still fails the batch
		w.Write([]byte(`{"success": false, "message": "stock conflict"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL+"/")
	err := c.Save(context.Background(), "store-1", []catalog.SaveItem{{VariantID: "v1"}})
	if err == nil {
		t.Fatal("save: got nil error, want rejection")
	}
}

func TestClientSaveHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL+"/")
	if err := c.Save(context.Background(), "store-1", nil); err == nil {
		t.Fatal("save: got nil error, want status failure")
	}
}

func TestClientFetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/TradezProduct/GetProductMgtInitAsync" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		if r.URL.Query().Get("storeId") != "store-1" {
			t.Errorf("storeId: got %q", r.URL.Query().Get("storeId"))
		}
		w.Write([]byte(`{"success": true, "data": {"listProduct": [{"id": "p1", "name": "Tea", "variants": [{"id": "v1", "units": 3}]}]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.URL+"/")
	products, err := c.FetchProducts(context.Background(), "store-1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(products) != 1 || products[0].Variants[0].Units != 3 {
		t.Errorf("products: got %+v", products)
	}
}
