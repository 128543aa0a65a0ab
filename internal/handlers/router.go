package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/tradezlk/vendorgo/internal/buildinfo"
	"github.com/tradezlk/vendorgo/internal/config"
	"github.com/tradezlk/vendorgo/internal/database"
	"github.com/tradezlk/vendorgo/internal/middleware"
	"github.com/tradezlk/vendorgo/internal/notify"
	"github.com/tradezlk/vendorgo/internal/session"
	"github.com/tradezlk/vendorgo/internal/upstream"
)

// Router wraps the mux router and the portal's collaborators
type Router struct {
	*mux.Router
	db       *database.DB
	cfg      *config.Config
	upstream *upstream.Client
	sessions *session.Manager
	hub      *notify.Hub
	validate *validator.Validate
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, up *upstream.Client, sessions *session.Manager, hub *notify.Hub) *Router {
	r := &Router{
		Router:   mux.NewRouter(),
		db:       db,
		cfg:      cfg,
		upstream: up,
		sessions: sessions,
		hub:      hub,
		validate: validator.New(),
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.register).Methods("POST")
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/qr", r.qrLogin).Methods("GET")
	auth.HandleFunc("/qr/image", r.qrImage).Methods("GET")

	// Vendor API (protected)
	api := r.PathPrefix("/api/vendor").Subrouter()
	api.Use(middleware.Auth(cfg.JWTSecret))
	api.HandleFunc("/stores", r.listStores).Methods("GET")
	api.HandleFunc("/dashboard", r.getDashboard).Methods("GET")

	// Editing sessions (protected)
	api.HandleFunc("/session", r.openSession).Methods("POST")
	api.HandleFunc("/session/{sid}/rows", r.listRows).Methods("GET")
	api.HandleFunc("/session/{sid}/refresh", r.refreshSession).Methods("POST")
	api.HandleFunc("/session/{sid}/save", r.saveAll).Methods("POST")
	api.HandleFunc("/session/{sid}/discard", r.discardAll).Methods("POST")
	api.HandleFunc("/session/{sid}/variants/{vid}", r.patchDraft).Methods("PATCH")
	api.HandleFunc("/session/{sid}/variants/{vid}/reset", r.resetRow).Methods("POST")
	api.HandleFunc("/session/{sid}/variants/{vid}/save", r.saveRow).Methods("POST")

	// Websocket notice stream. The session ID is an unguessable UUID and
	// browsers cannot set Authorization headers on websocket upgrades.
	r.HandleFunc("/ws/session/{sid}", r.sessionNotices).Methods("GET")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"server":    "vendor-portal",
		"commit":    buildinfo.CommitHash,
		"buildTime": buildinfo.BuildTime,
		"startTime": buildinfo.StartTime,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
