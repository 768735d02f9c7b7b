package offers

import (
	"time"

	"github.com/google/uuid"

	"github.com/shreemobiles/storefront-backend/pkg/db/models"
)

// OfferDTO is the admin-facing shape of a promotional rule.
type OfferDTO struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	DiscountPercent float64    `json:"discount_percent"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Active          bool       `json:"active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CreateOfferInput holds the payload to create an offer.
type CreateOfferInput struct {
	Name            string     `json:"name" validate:"required"`
	DiscountPercent float64    `json:"discount_percent" validate:"required,gt=0,lte=100"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Active          bool       `json:"active"`
}

// UpdateOfferInput holds optional mutation values for an offer.
type UpdateOfferInput struct {
	Name            *string    `json:"name,omitempty"`
	DiscountPercent *float64   `json:"discount_percent,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Active          *bool      `json:"active,omitempty"`
}

// ApplyResult reports how many products an apply-to-all touched.
type ApplyResult struct {
	Offer           *OfferDTO `json:"offer"`
	ProductsUpdated int       `json:"products_updated"`
}

func FromModel(o *models.Offer) *OfferDTO {
	if o == nil {
		return nil
	}
	return &OfferDTO{
		ID:              o.ID,
		Name:            o.Name,
		DiscountPercent: o.DiscountPercent,
		StartDate:       o.StartDate,
		EndDate:         o.EndDate,
		Active:          o.Active,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}
