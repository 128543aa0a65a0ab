package main

import (
	"fmt"
	"log"

	"github.com/tradezlk/vendorgo/internal/config"
	"github.com/tradezlk/vendorgo/internal/database"
	"github.com/tradezlk/vendorgo/internal/models"
	"github.com/tradezlk/vendorgo/internal/utils"
)

// Seeds a demo portal account so the API can be exercised without a QR
// login against the real intranet.
func main() {
	fmt.Println("🌱 Vendor Portal Demo Seeder")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(&models.VendorUser{}, &models.SaveAudit{}); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	hash, err := utils.HashPassword("demo1234")
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	user := models.VendorUser{
		Email:    "demo@vendor.local",
		Password: hash,
		FullName: "Demo Vendor",
		VendorID: "demo-vendor-1",
		Provider: "password",
	}

	var existing models.VendorUser
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		fmt.Printf("✅ Demo account already exists: %s\n", existing.Email)
		return
	}

	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("❌ Failed to create demo account: %v", err)
	}

	fmt.Printf("✅ Demo account created: %s / demo1234 (vendor %s)\n", user.Email, user.VendorID)
}
