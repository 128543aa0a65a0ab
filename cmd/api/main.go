package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tradezlk/vendorgo/internal/config"
	"github.com/tradezlk/vendorgo/internal/database"
	"github.com/tradezlk/vendorgo/internal/handlers"
	"github.com/tradezlk/vendorgo/internal/models"
	"github.com/tradezlk/vendorgo/internal/notify"
	"github.com/tradezlk/vendorgo/internal/session"
	"github.com/tradezlk/vendorgo/internal/upstream"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (Detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// 3. Auto-Migrate Schema
	log.Println("🚀 Synchronizing database schema...")
	if err := db.AutoMigrate(
		&models.VendorUser{},
		&models.SaveAudit{},
	); err != nil {
		log.Printf("⚠️ Migration warning: %v", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Upstream commerce API client
	up := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.AssetBase)
	log.Printf("🔗 Upstream API: %s", cfg.Upstream.BaseURL)

	// 5. Editing sessions + notification hub
	hub := notify.NewHub()
	sessions := session.NewManager(time.Duration(cfg.Session.TTLMinutes) * time.Minute)
	defer sessions.Close()

	// 6. HTTP router
	router := handlers.NewRouter(db, cfg, up, sessions, hub)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("✅ Vendor portal listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️ Shutdown error: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("⚠️ Database shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
