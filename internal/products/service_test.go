package product

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/shreemobiles/storefront-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	db := newTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, gormTxRunner{db: db})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, repo
}

func TestCreateProductAssignsSequentialCodes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	adminID := uuid.New()

	first, err := svc.CreateProduct(ctx, adminID, CreateProductInput{
		Name:  "Redmi Note 13",
		Brand: "Xiaomi",
		Price: 17999,
		Stock: 25,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	second, err := svc.CreateProduct(ctx, adminID, CreateProductInput{
		Name:  "Pixel 8a",
		Brand: "Google",
		Price: 52999,
		Stock: 10,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if len(first.Code) != 13 || len(second.Code) != 13 {
		t.Fatalf("expected 13-digit codes, got %q and %q", first.Code, second.Code)
	}
	if !strings.HasPrefix(first.Code, "0") {
		t.Fatalf("expected zero padding, got %q", first.Code)
	}
	if first.Code >= second.Code {
		t.Fatalf("codes must sort by creation order: %q vs %q", first.Code, second.Code)
	}
}

func TestCreateProductNormalizesLegacyOffer(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	legacy := AppliedOfferInput{
		OfferID:         uuid.New(),
		Name:            "Launch Discount",
		DiscountPercent: 10,
		Active:          true,
	}
	dto, err := svc.CreateProduct(ctx, uuid.New(), CreateProductInput{
		Name:  "iPhone 15",
		Brand: "Apple",
		Price: 79900,
		Stock: 5,
		AppliedOffers: []AppliedOfferInput{{
			OfferID:         uuid.New(),
			Name:            "Festive Sale",
			DiscountPercent: 5,
			Active:          true,
		}},
		Offer: &legacy,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if len(dto.AppliedOffers) != 2 {
		t.Fatalf("expected singular offer folded into list, got %d snapshots", len(dto.AppliedOffers))
	}
	if !dto.AppliedOffers.Contains(legacy.OfferID) {
		t.Fatalf("legacy offer missing from snapshots")
	}

	// The stored row carries the plural shape only.
	stored, err := repo.FindByID(ctx, dto.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(stored.AppliedOffers) != 2 {
		t.Fatalf("expected 2 persisted snapshots, got %d", len(stored.AppliedOffers))
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{"missing name", CreateProductInput{Brand: "Nokia", Price: 100}},
		{"missing brand", CreateProductInput{Name: "3310", Price: 100}},
		{"negative price", CreateProductInput{Name: "3310", Brand: "Nokia", Price: -1}},
		{"negative stock", CreateProductInput{Name: "3310", Brand: "Nokia", Price: 100, Stock: -2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, uuid.New(), tc.input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestGetProductComputesDiscountedPrice(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	dto, err := svc.CreateProduct(ctx, uuid.New(), CreateProductInput{
		Name:  "OnePlus 12R",
		Brand: "OnePlus",
		Price: 1000,
		Stock: 8,
		AppliedOffers: []AppliedOfferInput{{
			OfferID:         uuid.New(),
			Name:            "Clearance",
			DiscountPercent: 20,
			Active:          true,
		}},
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	got, err := svc.GetProduct(ctx, dto.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.Price != 1000 {
		t.Fatalf("base price must stay stored, got %v", got.Price)
	}
	if got.DiscountedPrice != 800.00 {
		t.Fatalf("expected discounted price 800.00, got %v", got.DiscountedPrice)
	}
}

func TestUpdateProductPartialFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	dto, err := svc.CreateProduct(ctx, uuid.New(), CreateProductInput{
		Name:  "Moto G84",
		Brand: "Motorola",
		Price: 18999,
		Stock: 12,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	newPrice := 16999.0
	updated, err := svc.UpdateProduct(ctx, dto.ID, UpdateProductInput{Price: &newPrice})
	if err != nil {
		t.Fatalf("update product: %v", err)
	}
	if updated.Price != 16999 {
		t.Fatalf("expected updated price, got %v", updated.Price)
	}
	if updated.Name != "Moto G84" || updated.Stock != 12 {
		t.Fatalf("untouched fields must survive: %+v", updated)
	}
	if updated.Code != dto.Code {
		t.Fatalf("code must never change on update")
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	name := "Ghost Phone"
	_, err := svc.UpdateProduct(context.Background(), uuid.New(), UpdateProductInput{Name: &name})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	dto, err := svc.CreateProduct(ctx, uuid.New(), CreateProductInput{
		Name:  "Vivo V30",
		Brand: "Vivo",
		Price: 33999,
		Stock: 6,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := svc.DeleteProduct(ctx, dto.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	_, err = svc.GetProduct(ctx, dto.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	err = svc.DeleteProduct(ctx, dto.ID)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for second delete, got %v", err)
	}
}

func TestListProductsPricesWholePageAtOneInstant(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	end := time.Now().UTC().Add(24 * time.Hour)
	for i := 0; i < 2; i++ {
		_, err := svc.CreateProduct(ctx, uuid.New(), CreateProductInput{
			Name:  "Narzo 70",
			Brand: "Realme",
			Price: 500,
			Stock: 3,
			AppliedOffers: []AppliedOfferInput{{
				OfferID:         uuid.New(),
				Name:            "Weekend Deal",
				DiscountPercent: 50,
				EndDate:         &end,
				Active:          true,
			}},
		})
		if err != nil {
			t.Fatalf("create product: %v", err)
		}
	}

	result, err := svc.ListProducts(ctx, ListProductsInput{})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(result.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(result.Products))
	}
	for _, p := range result.Products {
		if p.DiscountedPrice != 250.00 {
			t.Fatalf("expected discounted price 250.00, got %v", p.DiscountedPrice)
		}
	}
}
