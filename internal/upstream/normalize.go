package upstream

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"

	"github.com/tradezlk/vendorgo/internal/models"
)

// This file is the single place where the upstream API's loose JSON becomes
// the strict product model. Fields absent upstream get their documented
// defaults here (units/price/discount 0, discount type percent); nothing
// partial leaks past this boundary.

type envelope struct {
	Success    *bool           `json:"success"`
	IsSuccess  *bool           `json:"isSuccess"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

// unwrapData peels the (sometimes doubly) nested data envelope the API
// wraps every response in. Input that is not an envelope comes back as is.
func unwrapData(body []byte) json.RawMessage {
	cur := json.RawMessage(body)
	for i := 0; i < 2; i++ {
		var env envelope
		if err := json.Unmarshal(cur, &env); err != nil || len(env.Data) == 0 {
			break
		}
		cur = env.Data
	}
	return cur
}

// responseAccepted interprets the API's inconsistent success flags: an
// explicit success/isSuccess boolean wins, then a 2xx statusCode field,
// otherwise the body is taken as accepted.
func responseAccepted(body []byte) (bool, string) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return false, "unparseable response body"
	}
	if env.Success != nil {
		return *env.Success, env.Message
	}
	if env.IsSuccess != nil {
		return *env.IsSuccess, env.Message
	}
	if env.StatusCode != 0 {
		return env.StatusCode >= 200 && env.StatusCode < 300, env.Message
	}
	return true, env.Message
}

type rawVariant struct {
	ID           string                    `json:"id"`
	SKU          string                    `json:"sku"`
	Units        *int                      `json:"units"`
	Price        *float64                  `json:"price"`
	Discount     *float64                  `json:"discount"`
	DiscountType string                    `json:"discountType"`
	ReorderLevel *int                      `json:"reOrderLevel"`
	Attributes   []models.VariantAttribute `json:"attributes"`
}

type rawProduct struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Brand    string          `json:"brand"`
	Images   []string        `json:"images"`
	MinPrice float64         `json:"minPrice"`
	MaxPrice float64         `json:"maxPrice"`
	Category models.Category `json:"category"`
	Variants []rawVariant    `json:"variants"`
}

type productList struct {
	ListProduct []rawProduct `json:"listProduct"`
	Products    []rawProduct `json:"products"`
}

func normalizeProducts(body []byte) ([]models.Product, error) {
	inner := unwrapData(body)

	var raw []rawProduct
	// Bare array, then the two known envelope field names.
	if err := json.Unmarshal(inner, &raw); err != nil {
		var list productList
		if err := json.Unmarshal(inner, &list); err != nil {
			return nil, fmt.Errorf("normalize products: %w", err)
		}
		raw = list.ListProduct
		if raw == nil {
			raw = list.Products
		}
	}

	products := make([]models.Product, 0, len(raw))
	for _, rp := range raw {
		p := models.Product{
			ID:       rp.ID,
			Name:     rp.Name,
			Brand:    rp.Brand,
			Images:   rp.Images,
			MinPrice: rp.MinPrice,
			MaxPrice: rp.MaxPrice,
			Category: rp.Category,
		}
		p.Variants = make([]models.Variant, 0, len(rp.Variants))
		for _, rv := range rp.Variants {
			p.Variants = append(p.Variants, normalizeVariant(rv))
		}
		products = append(products, p)
	}
	return products, nil
}

func normalizeVariant(rv rawVariant) models.Variant {
	v := models.Variant{
		ID:           rv.ID,
		SKU:          rv.SKU,
		DiscountType: normalizeDiscountType(rv.DiscountType),
		Attributes:   rv.Attributes,
	}
	if rv.Units != nil {
		v.Units = *rv.Units
	}
	if rv.Price != nil {
		v.Price = *rv.Price
	}
	if rv.Discount != nil {
		v.Discount = *rv.Discount
	}
	if rv.ReorderLevel != nil {
		v.ReorderLevel = *rv.ReorderLevel
	}
	return v
}

func normalizeDiscountType(s string) models.DiscountType {
	switch s {
	case "", string(models.DiscountPercent):
		return models.DiscountPercent
	default:
		// "LKR", "absolute" and anything else flat
		return models.DiscountAbsolute
	}
}

// StoreInfo is one of the vendor's stores, with logo paths resolved.
type StoreInfo struct {
	StoreID    string `json:"storeId"`
	StoreCode  string `json:"storeCode"`
	StoreName  string `json:"storeName"`
	StoreUUID  string `json:"storeUuid,omitempty"`
	LogoURL    string `json:"logoUrl,omitempty"`
	LogoAPIURL string `json:"logoApiUrl,omitempty"`
}

type rawStore struct {
	StoreID   string `json:"storeId"`
	StoreCode string `json:"storeCode"`
	StoreName string `json:"storeName"`
	StoreLogo string `json:"storeLogo"`
}

type storeList struct {
	Stores []rawStore `json:"stores"`
}

// Logo paths look like "store/{uuid}/asset/{file}.png".
var storeUUIDRe = regexp.MustCompile(`^store/([^/]+)/`)

func (c *Client) normalizeStores(body []byte) ([]StoreInfo, error) {
	inner := unwrapData(body)

	var list storeList
	if err := json.Unmarshal(inner, &list); err != nil {
		return nil, fmt.Errorf("normalize stores: %w", err)
	}

	stores := make([]StoreInfo, 0, len(list.Stores))
	for _, rs := range list.Stores {
		info := StoreInfo{
			StoreID:   rs.StoreID,
			StoreCode: rs.StoreCode,
			StoreName: rs.StoreName,
		}
		if rs.StoreLogo != "" {
			info.LogoURL = c.AssetBase + rs.StoreLogo
			info.LogoAPIURL = c.BaseURL + "/Asset/GetAssetAsync?path=" + url.QueryEscape(rs.StoreLogo)
			if m := storeUUIDRe.FindStringSubmatch(rs.StoreLogo); m != nil {
				info.StoreUUID = m[1]
			}
		}
		stores = append(stores, info)
	}
	return stores, nil
}

type rawQRLogin struct {
	VendorID          string `json:"vendorId"`
	Email             string `json:"email"`
	FullName          string `json:"fullName"`
	ProfilePictureURL string `json:"profilePictureUrl"`
	Token             string `json:"token"`
}

func normalizeQRLogin(body []byte) (*QRLoginResult, error) {
	if ok, msg := responseAccepted(body); !ok {
		if msg == "" {
			msg = "access denied"
		}
		return nil, fmt.Errorf("qr token rejected: %s", msg)
	}

	var raw rawQRLogin
	if err := json.Unmarshal(unwrapData(body), &raw); err != nil {
		return nil, fmt.Errorf("normalize qr login: %w", err)
	}
	if raw.VendorID == "" && raw.Email == "" {
		return nil, fmt.Errorf("qr login response carried no vendor identity")
	}
	return &QRLoginResult{
		VendorID:          raw.VendorID,
		Email:             raw.Email,
		FullName:          raw.FullName,
		ProfilePictureURL: raw.ProfilePictureURL,
		SystemToken:       raw.Token,
	}, nil
}
