package audit

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/tradezlk/vendorgo/internal/catalog"
	"github.com/tradezlk/vendorgo/internal/database"
	"github.com/tradezlk/vendorgo/internal/models"
)

// Recorder wraps a Saver and writes one SaveAudit row per dispatched batch,
// keeping the exact payload that went upstream. Audit failures are logged
// and never affect the save outcome.
type Recorder struct {
	db       *database.DB
	vendorID string
	next     catalog.Saver
}

// Wrap decorates next with audit recording for one vendor.
func Wrap(db *database.DB, vendorID string, next catalog.Saver) *Recorder {
	return &Recorder{db: db, vendorID: vendorID, next: next}
}

// Save implements catalog.Saver.
func (r *Recorder) Save(ctx context.Context, storeID string, items []catalog.SaveItem) error {
	err := r.next.Save(ctx, storeID, items)

	payload, marshalErr := json.Marshal(items)
	if marshalErr != nil {
		log.Printf("⚠️ audit: marshal payload: %v", marshalErr)
		return err
	}

	entry := models.SaveAudit{
		ID:        uuid.NewString(),
		VendorID:  r.vendorID,
		StoreID:   storeID,
		ItemCount: len(items),
		Outcome:   "ok",
		Payload:   datatypes.JSON(payload),
	}
	if err != nil {
		entry.Outcome = "failed"
		entry.Error = err.Error()
	}
	if dbErr := r.db.WithContext(ctx).Create(&entry).Error; dbErr != nil {
		log.Printf("⚠️ audit: write save audit: %v", dbErr)
	}
	return err
}
