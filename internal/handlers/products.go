package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tradezlk/vendorgo/internal/audit"
	"github.com/tradezlk/vendorgo/internal/catalog"
	"github.com/tradezlk/vendorgo/internal/middleware"
	"github.com/tradezlk/vendorgo/internal/models"
)

// OpenSessionRequest starts (or resumes) editing one store.
type OpenSessionRequest struct {
	StoreID string `json:"storeId" validate:"required"`
}

// openSession creates the editing session for the vendor/store pair, or
// reuses the live one, and loads the product list.
func (r *Router) openSession(w http.ResponseWriter, req *http.Request) {
	vendorID := middleware.VendorIDFrom(req.Context())
	if vendorID == "" {
		respondError(w, http.StatusForbidden, "No vendor bound to this account")
		return
	}

	var body OpenSessionRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(&body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, created := r.sessions.Open(vendorID, body.StoreID, func(id, vendorID, storeID string) *catalog.Session {
		saver := audit.Wrap(r.db, vendorID, r.upstream)
		return catalog.NewSession(id, vendorID, storeID, r.upstream, saver, r.hub.NotifierFor(id))
	})

	if created {
		if err := s.Refresh(req.Context()); err != nil {
			// The session stays open; the client retries via /refresh.
			respondJSON(w, http.StatusBadGateway, map[string]string{
				"sessionId": s.ID,
				"error":     "Product fetch failed: " + err.Error(),
			})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sessionId": s.ID,
		"created":   created,
	})
}

// sessionFor resolves the {sid} path variable to a session owned by the
// authenticated vendor.
func (r *Router) sessionFor(w http.ResponseWriter, req *http.Request) *catalog.Session {
	sid := mux.Vars(req)["sid"]
	s, ok := r.sessions.Get(sid)
	if !ok {
		respondError(w, http.StatusNotFound, "Session not found or expired")
		return nil
	}
	if s.VendorID != middleware.VendorIDFrom(req.Context()) {
		respondError(w, http.StatusForbidden, "Session belongs to another vendor")
		return nil
	}
	return s
}

// listRows returns the filtered, sorted editing rows plus headline stats.
func (r *Router) listRows(w http.ResponseWriter, req *http.Request) {
	s := r.sessionFor(w, req)
	if s == nil {
		return
	}

	query := req.URL.Query().Get("q")
	sortKey := catalog.SortKey(req.URL.Query().Get("sort"))
	if sortKey == "" {
		sortKey = catalog.SortNone
	}

	rows, stats := s.Rows(query, sortKey)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"rows":  rows,
		"stats": stats,
	})
}

// refreshSession refetches canonical data, preserving live drafts.
func (r *Router) refreshSession(w http.ResponseWriter, req *http.Request) {
	s := r.sessionFor(w, req)
	if s == nil {
		return
	}
	if err := s.Refresh(req.Context()); err != nil {
		respondError(w, http.StatusBadGateway, "Product fetch failed: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

// DraftPatchRequest carries one partial row edit. Absent fields stay
// untouched.
type DraftPatchRequest struct {
	Units        *int     `json:"units" validate:"omitempty,gte=0"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	Discount     *float64 `json:"discount" validate:"omitempty,gte=0"`
	DiscountType *string  `json:"discountType" validate:"omitempty,oneof=% LKR absolute"`
}

// patchDraft merges an edit into the variant's draft.
func (r *Router) patchDraft(w http.ResponseWriter, req *http.Request) {
	s := r.sessionFor(w, req)
	if s == nil {
		return
	}

	var body DraftPatchRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(&body); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := catalog.DraftPatch{
		Units:    body.Units,
		Price:    body.Price,
		Discount: body.Discount,
	}
	if body.DiscountType != nil {
		dt := models.DiscountAbsolute
		if *body.DiscountType == string(models.DiscountPercent) {
			dt = models.DiscountPercent
		}
		patch.DiscountType = &dt
	}

	draft, err := s.PatchDraft(mux.Vars(req)["vid"], patch)
	if err != nil {
		respondError(w, errStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

// resetRow discards the draft of one variant.
func (r *Router) resetRow(w http.ResponseWriter, req *http.Request) {
	s := r.sessionFor(w, req)
	if s == nil {
		return
	}
	if err := s.ResetRow(mux.Vars(req)["vid"]); err != nil {
		respondError(w, errStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// saveRow saves the pending edit of one variant.
func (r *Router) saveRow(w http.ResponseWriter, req *http.Request) {
	s := r.sessionFor(w, req)
	if s == nil {
		return
	}
	if err := s.SaveOne(req.Context(), mux.Vars(req)["vid"]); err != nil {
		respondError(w, errStatus(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// saveAll batches every changed row into one upstream request.
func (r *Router) saveAll(w http.ResponseWriter, req *http.Request) {
	s := r.sessionFor(w, req)
	if s == nil {
		return
	}
	n, err := s.SaveAll(req.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"saved": n})
}

// discardAll drops every draft in the session.
func (r *Router) discardAll(w http.ResponseWriter, req *http.Request) {
	s := r.sessionFor(w, req)
	if s == nil {
		return
	}
	s.DiscardAll()
	respondJSON(w, http.StatusOK, map[string]string{"status": "discarded"})
}

// errStatus maps catalog errors onto HTTP statuses.
func errStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrUnknownVariant):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrNoPendingEdit), errors.Is(err, catalog.ErrSaveInFlight):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
