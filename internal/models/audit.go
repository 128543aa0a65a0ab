package models

import (
	"time"

	"gorm.io/datatypes"
)

// SaveAudit records one dispatched batch save request, successful or not.
// The raw payload is kept verbatim so a disputed stock/price change can be
// traced back to what the portal actually sent upstream.
type SaveAudit struct {
	ID        string         `gorm:"primaryKey;type:uuid" json:"id"`
	VendorID  string         `gorm:"index" json:"vendorId"`
	StoreID   string         `gorm:"index" json:"storeId"`
	ItemCount int            `json:"itemCount"`
	Outcome   string         `gorm:"index" json:"outcome"` // ok | failed
	Error     string         `json:"error,omitempty"`
	Payload   datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
}

// TableName specifies the table name for SaveAudit model
func (SaveAudit) TableName() string {
	return "save_audits"
}
