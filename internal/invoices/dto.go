package invoices

import (
	"time"

	"github.com/google/uuid"

	"github.com/shreemobiles/storefront-backend/pkg/db/models"
	"github.com/shreemobiles/storefront-backend/pkg/enums"
	"github.com/shreemobiles/storefront-backend/pkg/types"
)

// InvoiceItemDTO is the API shape of one invoice line.
type InvoiceItemDTO struct {
	ID            uuid.UUID           `json:"id"`
	ProductID     *uuid.UUID          `json:"product_id,omitempty"`
	Name          string              `json:"name"`
	Price         float64             `json:"price"`
	OriginalPrice float64             `json:"original_price"`
	AppliedOffers types.AppliedOffers `json:"applied_offers,omitempty"`
	Quantity      int                 `json:"quantity"`
}

// InvoiceDTO is the API shape of an invoice.
type InvoiceDTO struct {
	ID            uuid.UUID           `json:"id"`
	InvoiceNumber string              `json:"invoice_number"`
	UserID        uuid.UUID           `json:"user_id"`
	Items         []InvoiceItemDTO    `json:"items"`
	Total         float64             `json:"total"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
	Status        enums.InvoiceStatus `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
}

// InvoiceListResult is one page of invoices plus the cursor for the next one.
type InvoiceListResult struct {
	Invoices   []InvoiceDTO `json:"invoices"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// FromModel converts a persisted invoice into its API shape.
func FromModel(invoice *models.Invoice) *InvoiceDTO {
	items := make([]InvoiceItemDTO, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, InvoiceItemDTO{
			ID:            item.ID,
			ProductID:     item.ProductID,
			Name:          item.Name,
			Price:         item.Price,
			OriginalPrice: item.OriginalPrice,
			AppliedOffers: item.AppliedOffers,
			Quantity:      item.Quantity,
		})
	}
	return &InvoiceDTO{
		ID:            invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		UserID:        invoice.UserID,
		Items:         items,
		Total:         invoice.Total,
		CustomerName:  invoice.CustomerName,
		CustomerEmail: invoice.CustomerEmail,
		Status:        invoice.Status,
		CreatedAt:     invoice.CreatedAt,
	}
}
