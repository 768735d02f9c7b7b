package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shreemobiles/storefront-backend/pkg/db"
	"github.com/shreemobiles/storefront-backend/pkg/db/models"
	pkgerrors "github.com/shreemobiles/storefront-backend/pkg/errors"
	"github.com/shreemobiles/storefront-backend/pkg/types"
)

// Service exposes catalog read paths and admin product management.
type Service interface {
	CreateProduct(ctx context.Context, adminID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
}

// AppliedOfferInput is one offer snapshot supplied on a product write.
type AppliedOfferInput struct {
	OfferID         uuid.UUID  `json:"offer_id"`
	Name            string     `json:"name"`
	DiscountPercent float64    `json:"discount_percent"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Active          bool       `json:"active"`
}

// CreateProductInput holds the validated payload to create a product. The
// singular Offer field is a legacy client shape folded into AppliedOffers
// before anything is persisted.
type CreateProductInput struct {
	Name          string
	Brand         string
	Price         float64
	Stock         int
	AppliedOffers []AppliedOfferInput
	Offer         *AppliedOfferInput
	Description   *string
	Image         *string
	Images        []string
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name          *string
	Brand         *string
	Price         *float64
	Stock         *int
	AppliedOffers *[]AppliedOfferInput
	Offer         *AppliedOfferInput
	Description   *string
	Image         *string
	Images        *[]string
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo     *Repository
	dbClient txRunner
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
	}, nil
}

// CreateProduct assigns the next sequential code and persists the product.
func (s *service) CreateProduct(ctx context.Context, adminID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	brand := strings.TrimSpace(input.Brand)
	if brand == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "brand is required")
	}
	if input.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	offers := normalizeOffers(input.AppliedOffers, input.Offer)

	var created *models.Product
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		code, err := txRepo.NextProductCode(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: next product code")
		}

		product := &models.Product{
			Code:          code,
			Name:          name,
			Brand:         brand,
			Price:         input.Price,
			Stock:         input.Stock,
			AppliedOffers: offers,
			Description:   input.Description,
			Image:         input.Image,
			Images:        input.Images,
			CreatedBy:     adminID,
		}
		created, err = txRepo.Create(ctx, product)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return NewProductDTO(created, time.Now().UTC()), nil
}

// UpdateProduct applies the provided fields to an existing product.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if input.Price != nil && *input.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	applyUpdateToProduct(product, input)

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	return NewProductDTO(updated, time.Now().UTC()), nil
}

// DeleteProduct removes the product from the catalog. Historical invoices
// keep their own snapshots, so this never cascades into financial records.
func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

// GetProduct returns one product with its discounted price computed now.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product, time.Now().UTC()), nil
}

// ListProducts returns one catalog page. All rows in a page are priced at the
// same instant so a page is internally consistent.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	rows, nextCursor, err := s.repo.List(ctx, input)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return &ProductListResult{
		Products:   NewProductDTOs(rows, listAsOf()),
		NextCursor: nextCursor,
	}, nil
}

func applyUpdateToProduct(product *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Brand != nil {
		product.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.AppliedOffers != nil || input.Offer != nil {
		var explicit []AppliedOfferInput
		if input.AppliedOffers != nil {
			explicit = *input.AppliedOffers
		}
		product.AppliedOffers = normalizeOffers(explicit, input.Offer)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Image != nil {
		product.Image = input.Image
	}
	if input.Images != nil {
		product.Images = *input.Images
	}
}

// normalizeOffers folds the legacy singular offer field into the snapshot
// list. Persisted rows only ever carry the plural shape.
func normalizeOffers(offers []AppliedOfferInput, legacy *AppliedOfferInput) types.AppliedOffers {
	inputs := offers
	if legacy != nil {
		inputs = append(append([]AppliedOfferInput{}, offers...), *legacy)
	}
	normalized := make(types.AppliedOffers, 0, len(inputs))
	for _, in := range inputs {
		normalized = append(normalized, types.AppliedOffer{
			OfferID:         in.OfferID,
			Name:            in.Name,
			DiscountPercent: in.DiscountPercent,
			StartDate:       in.StartDate,
			EndDate:         in.EndDate,
			Active:          in.Active,
		})
	}
	return normalized
}

var _ txRunner = (*db.Client)(nil)
