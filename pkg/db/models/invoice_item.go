package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shreemobiles/storefront-backend/pkg/types"
)

// InvoiceItem freezes one cart line at checkout time. The product reference is
// weak (the product may later change or be deleted); name, prices, and offer
// snapshots are copies owned by the invoice. Price never exceeds OriginalPrice.
type InvoiceItem struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:(gen_random_uuid());primaryKey"`
	InvoiceID     uuid.UUID           `gorm:"column:invoice_id;type:uuid;not null;index"`
	ProductID     *uuid.UUID          `gorm:"column:product_id;type:uuid"`
	Name          string              `gorm:"column:name;not null"`
	Price         float64             `gorm:"column:price;type:numeric(12,2);not null"`
	OriginalPrice float64             `gorm:"column:original_price;type:numeric(12,2);not null"`
	AppliedOffers types.AppliedOffers `gorm:"column:applied_offers;type:jsonb;serializer:json"`
	Quantity      int                 `gorm:"column:quantity;not null"`
	Position      int                 `gorm:"column:position;not null"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
}
