package product

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shreemobiles/storefront-backend/pkg/db/models"
	"github.com/shreemobiles/storefront-backend/pkg/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.User{},
		&models.Offer{},
		&models.Product{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Counter{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return conn
}

type gormTxRunner struct {
	db *gorm.DB
}

func (g gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

func mustCreateTestProduct(t *testing.T, db *gorm.DB, price float64, stock int, offers types.AppliedOffers) *models.Product {
	t.Helper()
	p := &models.Product{
		ID:            uuid.New(),
		Code:          "test-" + uuid.NewString(),
		Name:          "Galaxy A15",
		Brand:         "Samsung",
		Price:         price,
		Stock:         stock,
		AppliedOffers: offers,
		CreatedBy:     uuid.New(),
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}
