package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shreemobiles/storefront-backend/pkg/enums"
)

// Invoice is the financial record of truth. It is immutable after creation:
// no update path exists anywhere in the codebase, and the stored total is
// printed verbatim rather than re-summed from items.
type Invoice struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:(gen_random_uuid());primaryKey"`
	InvoiceNumber string              `gorm:"column:invoice_number;not null;uniqueIndex"`
	UserID        uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	Items         []InvoiceItem       `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Total         float64             `gorm:"column:total;type:numeric(14,2);not null"`
	CustomerName  string              `gorm:"column:customer_name"`
	CustomerEmail string              `gorm:"column:customer_email"`
	Status        enums.InvoiceStatus `gorm:"column:status;type:text;not null;default:'completed'"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
}
