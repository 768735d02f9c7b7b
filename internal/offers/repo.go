package offers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shreemobiles/storefront-backend/pkg/db/models"
)

// Repository exposes offer persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an offers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new offer row.
func (r *Repository) Create(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(offer).Error; err != nil {
		return nil, err
	}
	return offer, nil
}

// Update saves an existing offer row.
func (r *Repository) Update(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	if err := r.db.WithContext(ctx).Save(offer).Error; err != nil {
		return nil, err
	}
	return offer, nil
}

// FindByID loads an offer by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	if err := r.db.WithContext(ctx).First(&offer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// List returns every offer, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Offer, error) {
	var rows []models.Offer
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}
