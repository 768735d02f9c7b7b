package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/shreemobiles/storefront-backend/internal/pricing"
	"github.com/shreemobiles/storefront-backend/pkg/db/models"
	"github.com/shreemobiles/storefront-backend/pkg/types"
)

// ProductDTO represents the catalog payload returned to clients. The
// discounted price is derived from the offer snapshots at read time and never
// persisted.
type ProductDTO struct {
	ID              uuid.UUID           `json:"id"`
	Code            string              `json:"code"`
	Name            string              `json:"name"`
	Brand           string              `json:"brand"`
	Price           float64             `json:"price"`
	DiscountedPrice float64             `json:"discounted_price"`
	Stock           int                 `json:"stock"`
	AppliedOffers   types.AppliedOffers `json:"applied_offers"`
	Description     *string             `json:"description,omitempty"`
	Image           *string             `json:"image,omitempty"`
	Images          []string            `json:"images,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// NewProductDTO builds a DTO from the persisted model, pricing offers at asOf.
func NewProductDTO(product *models.Product, asOf time.Time) *ProductDTO {
	if product == nil {
		return nil
	}

	return &ProductDTO{
		ID:              product.ID,
		Code:            product.Code,
		Name:            product.Name,
		Brand:           product.Brand,
		Price:           product.Price,
		DiscountedPrice: pricing.EffectivePrice(product.Price, product.AppliedOffers, asOf),
		Stock:           product.Stock,
		AppliedOffers:   product.AppliedOffers.Clone(),
		Description:     product.Description,
		Image:           product.Image,
		Images:          append([]string{}, product.Images...),
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
}

// NewProductDTOs maps a model slice, pricing every row at the same instant.
func NewProductDTOs(rows []models.Product, asOf time.Time) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewProductDTO(&rows[i], asOf))
	}
	return dtos
}
