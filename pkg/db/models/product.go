package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/shreemobiles/storefront-backend/pkg/types"
)

// Product represents a catalog listing. Stock is decremented only by checkout
// and increased only by admin writes; the discounted price is derived on read
// and never stored.
type Product struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:(gen_random_uuid());primaryKey"`
	Code          string              `gorm:"column:code;not null;uniqueIndex"`
	Name          string              `gorm:"column:name;not null"`
	Brand         string              `gorm:"column:brand;not null"`
	Price         float64             `gorm:"column:price;type:numeric(12,2);not null"`
	Stock         int                 `gorm:"column:stock;not null;default:0"`
	AppliedOffers types.AppliedOffers `gorm:"column:applied_offers;type:jsonb;serializer:json"`
	Description   *string             `gorm:"column:description"`
	Image         *string             `gorm:"column:image"`
	Images        pq.StringArray      `gorm:"column:images;type:text[]"`
	CreatedBy     uuid.UUID           `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
