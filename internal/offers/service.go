package offers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	product "github.com/shreemobiles/storefront-backend/internal/products"
	"github.com/shreemobiles/storefront-backend/pkg/db"
	"github.com/shreemobiles/storefront-backend/pkg/db/models"
	pkgerrors "github.com/shreemobiles/storefront-backend/pkg/errors"
	"github.com/shreemobiles/storefront-backend/pkg/logger"
	"github.com/shreemobiles/storefront-backend/pkg/types"
)

// Service exposes the offer lifecycle: create, update, list, apply to the
// whole catalog, and stop.
type Service interface {
	CreateOffer(ctx context.Context, adminID uuid.UUID, input CreateOfferInput) (*OfferDTO, error)
	UpdateOffer(ctx context.Context, offerID uuid.UUID, input UpdateOfferInput) (*OfferDTO, error)
	ListOffers(ctx context.Context) ([]OfferDTO, error)
	ApplyToAll(ctx context.Context, offerID uuid.UUID) (*ApplyResult, error)
	Stop(ctx context.Context, offerID uuid.UUID) (*ApplyResult, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo     *Repository
	products *product.Repository
	dbClient txRunner
	logg     *logger.Logger
}

// ServiceParams bundles the dependencies required to build an offers service.
type ServiceParams struct {
	Repo        *Repository
	ProductRepo *product.Repository
	DB          txRunner
	Logger      *logger.Logger
}

// NewService constructs an offers service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("offers repository is required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &service{
		repo:     params.Repo,
		products: params.ProductRepo,
		dbClient: params.DB,
		logg:     params.Logger,
	}, nil
}

func (s *service) CreateOffer(ctx context.Context, adminID uuid.UUID, input CreateOfferInput) (*OfferDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if err := validateDiscountPercent(input.DiscountPercent); err != nil {
		return nil, err
	}
	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	offer, err := s.repo.Create(ctx, &models.Offer{
		Name:            name,
		DiscountPercent: input.DiscountPercent,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Active:          input.Active,
		CreatedBy:       adminID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert offer")
	}
	return FromModel(offer), nil
}

func (s *service) UpdateOffer(ctx context.Context, offerID uuid.UUID, input UpdateOfferInput) (*OfferDTO, error) {
	if input.DiscountPercent != nil {
		if err := validateDiscountPercent(*input.DiscountPercent); err != nil {
			return nil, err
		}
	}

	offer, err := s.loadOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be blank")
		}
		offer.Name = name
	}
	if input.DiscountPercent != nil {
		offer.DiscountPercent = *input.DiscountPercent
	}
	if input.StartDate != nil {
		offer.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		offer.EndDate = input.EndDate
	}
	if err := validateDateRange(offer.StartDate, offer.EndDate); err != nil {
		return nil, err
	}
	if input.Active != nil {
		offer.Active = *input.Active
	}

	updated, err := s.repo.Update(ctx, offer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update offer")
	}
	return FromModel(updated), nil
}

func (s *service) ListOffers(ctx context.Context) ([]OfferDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list offers")
	}
	dtos := make([]OfferDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

// ApplyToAll attaches the offer's current terms to every product in the
// catalog. Any previous snapshot of the same offer is removed first, so
// re-applying after editing the offer is idempotent rather than stacking.
func (s *service) ApplyToAll(ctx context.Context, offerID uuid.UUID) (*ApplyResult, error) {
	var (
		offer   *models.Offer
		updated int
	)
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txOffers := s.repo.WithTx(tx)
		txProducts := s.products.WithTx(tx)

		var err error
		offer, err = txOffers.FindByID(ctx, offerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
		}

		// Applying always switches the offer on; the flag is server-authoritative.
		offer.Active = true
		if _, err := txOffers.Update(ctx, offer); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: activate offer")
		}

		snapshot := types.AppliedOffer{
			OfferID:         offer.ID,
			Name:            offer.Name,
			DiscountPercent: offer.DiscountPercent,
			StartDate:       offer.StartDate,
			EndDate:         offer.EndDate,
			Active:          true,
		}

		rows, err := txProducts.ListAll(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
		}
		for i := range rows {
			next := append(rows[i].AppliedOffers.Without(offer.ID), snapshot)
			if err := txProducts.UpdateAppliedOffers(ctx, rows[i].ID, next); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product offers")
			}
			updated++
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply offer")
	}

	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{"offer_id": offerID, "products_updated": updated})
		s.logg.Info(ctx, "offer applied to catalog")
	}

	return &ApplyResult{Offer: FromModel(offer), ProductsUpdated: updated}, nil
}

// Stop deactivates the offer and every product snapshot that references it.
// Snapshots are kept, flagged inactive, so invoices and product history
// remain intact; nothing is removed.
func (s *service) Stop(ctx context.Context, offerID uuid.UUID) (*ApplyResult, error) {
	var (
		offer   *models.Offer
		updated int
	)
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txOffers := s.repo.WithTx(tx)
		txProducts := s.products.WithTx(tx)

		var err error
		offer, err = txOffers.FindByID(ctx, offerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
		}

		offer.Active = false
		if _, err := txOffers.Update(ctx, offer); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deactivate offer")
		}

		rows, err := txProducts.ListAll(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
		}
		for i := range rows {
			if !rows[i].AppliedOffers.Deactivate(offer.ID) {
				continue
			}
			if err := txProducts.UpdateAppliedOffers(ctx, rows[i].ID, rows[i].AppliedOffers); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product offers")
			}
			updated++
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stop offer")
	}

	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{"offer_id": offerID, "products_updated": updated})
		s.logg.Info(ctx, "offer stopped")
	}

	return &ApplyResult{Offer: FromModel(offer), ProductsUpdated: updated}, nil
}

func (s *service) loadOffer(ctx context.Context, offerID uuid.UUID) (*models.Offer, error) {
	offer, err := s.repo.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
	}
	return offer, nil
}

func validateDiscountPercent(percent float64) error {
	if percent <= 0 || percent > 100 {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount_percent must be between 0 and 100")
	}
	return nil
}

func validateDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return pkgerrors.New(pkgerrors.CodeValidation, "end_date cannot precede start_date")
	}
	return nil
}

var _ txRunner = (*db.Client)(nil)
