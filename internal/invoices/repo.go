package invoices

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shreemobiles/storefront-backend/pkg/db/models"
	"github.com/shreemobiles/storefront-backend/pkg/pagination"
)

const (
	invoiceNumberCounter = "invoice_number"
	invoiceNumberWidth   = 6
)

// Repository exposes invoice persistence operations. Invoices are
// insert-only; there is deliberately no update method.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an invoices repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts an invoice together with its line items.
func (r *Repository) Create(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	for i := range invoice.Items {
		if invoice.Items[i].ID == uuid.Nil {
			invoice.Items[i].ID = uuid.New()
		}
		invoice.Items[i].InvoiceID = invoice.ID
	}
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return nil, err
	}
	return invoice, nil
}

// NextInvoiceNumber advances the invoice counter and formats a display
// number that sorts the way invoices were issued. The advance is a single
// upsert so concurrent checkouts never observe the same value.
func (r *Repository) NextInvoiceNumber(ctx context.Context, now time.Time) (string, error) {
	var value int64
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO counters (name, value) VALUES (?, 1)
		 ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		 RETURNING value`,
		invoiceNumberCounter,
	).Scan(&value).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%s-%0*d", now.UTC().Format("20060102"), invoiceNumberWidth, value), nil
}

// FindByID loads an invoice with its items in line order.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&invoice, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListByUser returns one page of a user's invoices, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Invoice, string, error) {
	return r.list(ctx, params, func(qb *gorm.DB) *gorm.DB {
		return qb.Where("user_id = ?", userID)
	})
}

// ListAll returns one page of every invoice, newest first.
func (r *Repository) ListAll(ctx context.Context, params pagination.Params) ([]models.Invoice, string, error) {
	return r.list(ctx, params, nil)
}

func (r *Repository) list(ctx context.Context, params pagination.Params, scope func(*gorm.DB) *gorm.DB) ([]models.Invoice, string, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)
	if limitWithBuffer <= pageSize {
		limitWithBuffer = pageSize + 1
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).Model(&models.Invoice{})
	if scope != nil {
		qb = scope(qb)
	}
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	qb = qb.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").Order("id DESC").
		Limit(limitWithBuffer)

	var rows []models.Invoice
	if err := qb.Find(&rows).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return rows, nextCursor, nil
}
