package handlers

import (
	"net/http"

	"github.com/tradezlk/vendorgo/internal/middleware"
)

// listStores returns the authenticated vendor's stores, logos resolved.
func (r *Router) listStores(w http.ResponseWriter, req *http.Request) {
	vendorID := middleware.VendorIDFrom(req.Context())
	if vendorID == "" {
		respondError(w, http.StatusForbidden, "No vendor bound to this account")
		return
	}

	stores, err := r.upstream.Stores(req.Context(), vendorID)
	if err != nil {
		respondError(w, http.StatusBadGateway, "Store lookup failed: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"stores": stores})
}

// getDashboard proxies the vendor dashboard KPIs.
func (r *Router) getDashboard(w http.ResponseWriter, req *http.Request) {
	vendorID := middleware.VendorIDFrom(req.Context())
	if vendorID == "" {
		respondError(w, http.StatusForbidden, "No vendor bound to this account")
		return
	}

	data, err := r.upstream.Dashboard(req.Context(), vendorID)
	if err != nil {
		respondError(w, http.StatusBadGateway, "Dashboard fetch failed: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
