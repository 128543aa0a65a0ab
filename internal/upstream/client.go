package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tradezlk/vendorgo/internal/catalog"
	"github.com/tradezlk/vendorgo/internal/models"
)

// Client talks to the intranet commerce API. The API is treated as opaque:
// every response goes through the normalization boundary in normalize.go
// before anything else sees it.
type Client struct {
	BaseURL    string
	AssetBase  string
	HTTPClient *http.Client
}

// NewClient creates a client for the given API base URL, e.g.
// "https://intranet.example.lk/api".
func NewClient(baseURL, assetBase string) *Client {
	return &Client{
		BaseURL:    baseURL,
		AssetBase:  assetBase,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values) ([]byte, int, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("upstream GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("upstream GET %s: read body: %w", path, err)
	}
	return body, resp.StatusCode, nil
}

// FetchProducts loads and normalizes the product list for one store. A
// store with no products yields an empty slice.
func (c *Client) FetchProducts(ctx context.Context, storeID string) ([]models.Product, error) {
	q := url.Values{"storeId": {storeID}}
	body, status, err := c.getJSON(ctx, "/TradezProduct/GetProductMgtInitAsync", q)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("upstream product fetch: status %d", status)
	}
	return normalizeProducts(body)
}

// Save sends one batch save request. The batch is atomic: a non-success
// response or a success=false body fails the whole batch.
func (c *Client) Save(ctx context.Context, storeID string, items []catalog.SaveItem) error {
	payload := map[string]interface{}{
		"storeId":           storeID,
		"listUpdateDetails": items,
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/TradezVendor/GetProductMgtSaveAsync", bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream save: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("upstream save: status %d: %s", resp.StatusCode, truncate(body, 200))
	}
	if ok, msg := responseAccepted(body); !ok {
		return fmt.Errorf("upstream save rejected: %s", msg)
	}
	return nil
}

// Dashboard returns the vendor dashboard KPIs with the upstream envelope
// already unwrapped. The inner shape is passed through untouched.
func (c *Client) Dashboard(ctx context.Context, vendorID string) (json.RawMessage, error) {
	q := url.Values{"vendorId": {vendorID}}
	body, status, err := c.getJSON(ctx, "/TradezVendor/GetVendorDashboard", q)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("upstream dashboard: status %d", status)
	}
	return unwrapData(body), nil
}

// Stores lists the vendor's stores with logo paths resolved to absolute
// URLs.
func (c *Client) Stores(ctx context.Context, vendorID string) ([]StoreInfo, error) {
	q := url.Values{"vendorId": {vendorID}}
	body, status, err := c.getJSON(ctx, "/TradezProduct/GetVendorStoreDetailsInitAsync", q)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("upstream stores: status %d", status)
	}
	return c.normalizeStores(body)
}

// QRLoginResult is the vendor identity returned by a successful QR token
// exchange.
type QRLoginResult struct {
	VendorID          string
	Email             string
	FullName          string
	ProfilePictureURL string
	SystemToken       string
}

// LoginViaQR exchanges a scanned QR token for the vendor identity. The
// endpoint is known to answer with inconsistent success flags, so several
// shapes are accepted.
func (c *Client) LoginViaQR(ctx context.Context, qrToken string) (*QRLoginResult, error) {
	q := url.Values{"QRToken": {qrToken}}
	body, status, err := c.getJSON(ctx, "/TradezAuth/GetLoginViaQR", q)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("upstream qr login: status %d", status)
	}
	return normalizeQRLogin(body)
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
