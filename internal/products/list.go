package product

import (
	"context"
	"strings"
	"time"

	"github.com/shreemobiles/storefront-backend/pkg/db/models"
	"github.com/shreemobiles/storefront-backend/pkg/pagination"
)

// ListFilters narrows the public catalog listing.
type ListFilters struct {
	Brand    *string
	Query    string
	PriceMin *float64
	PriceMax *float64
	InStock  *bool
}

// ListProductsInput bundles pagination and filters for the catalog listing.
type ListProductsInput struct {
	Pagination pagination.Params
	Filters    ListFilters
}

// ProductListResult is one catalog page plus the cursor for the next one.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// List returns one page of products ordered newest first, with a cursor for
// the next page when more rows remain.
func (r *Repository) List(ctx context.Context, input ListProductsInput) ([]models.Product, string, error) {
	pageSize := pagination.NormalizeLimit(input.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(input.Pagination.Limit)
	if limitWithBuffer <= pageSize {
		limitWithBuffer = pageSize + 1
	}

	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).Model(&models.Product{})

	filter := input.Filters
	if filter.Brand != nil {
		qb = qb.Where("brand = ?", *filter.Brand)
	}
	if filter.PriceMin != nil {
		qb = qb.Where("price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		qb = qb.Where("price <= ?", *filter.PriceMax)
	}
	if filter.InStock != nil {
		if *filter.InStock {
			qb = qb.Where("stock > 0")
		} else {
			qb = qb.Where("stock = 0")
		}
	}
	if search := strings.TrimSpace(filter.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR code LIKE ?)", pattern, pattern, pattern)
	}

	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	qb = qb.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer)

	var rows []models.Product
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

// listAsOf pins a single pricing instant for one catalog page.
func listAsOf() time.Time {
	return time.Now().UTC()
}
