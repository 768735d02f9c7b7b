package models

import (
	"time"

	"github.com/google/uuid"
)

// Offer is the master promotional rule. Offers are toggled, never deleted;
// products and invoices hold their own snapshots of its terms.
type Offer struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;default:(gen_random_uuid());primaryKey"`
	Name            string     `gorm:"column:name;not null"`
	DiscountPercent float64    `gorm:"column:discount_percent;type:numeric(5,2);not null"`
	StartDate       *time.Time `gorm:"column:start_date"`
	EndDate         *time.Time `gorm:"column:end_date"`
	Active          bool       `gorm:"column:active;not null;default:false"`
	CreatedBy       uuid.UUID  `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
