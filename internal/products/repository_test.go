package product

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shreemobiles/storefront-backend/pkg/pagination"
	"github.com/shreemobiles/storefront-backend/pkg/types"
)

func TestNextProductCodeSequential(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first, err := repo.NextProductCode(ctx)
	if err != nil {
		t.Fatalf("next product code: %v", err)
	}
	if first != "0000000000001" {
		t.Fatalf("expected 13-digit code 0000000000001, got %q", first)
	}

	second, err := repo.NextProductCode(ctx)
	if err != nil {
		t.Fatalf("next product code: %v", err)
	}
	if second != "0000000000002" {
		t.Fatalf("expected 0000000000002, got %q", second)
	}
}

func TestDecrementStockConditional(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	p := mustCreateTestProduct(t, db, 24999, 5, nil)

	ok, err := repo.DecrementStock(ctx, p.ID, 3)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if !ok {
		t.Fatalf("expected decrement to succeed")
	}

	reloaded, err := repo.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Stock != 2 {
		t.Fatalf("expected stock 2, got %d", reloaded.Stock)
	}

	// Requesting more than remains must not change anything.
	ok, err = repo.DecrementStock(ctx, p.ID, 3)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if ok {
		t.Fatalf("expected decrement to be refused")
	}
	reloaded, err = repo.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Stock != 2 {
		t.Fatalf("stock must be untouched, got %d", reloaded.Stock)
	}
}

func TestDecrementStockUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	ok, err := repo.DecrementStock(context.Background(), uuid.New(), 1)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if ok {
		t.Fatalf("expected decrement against unknown product to be refused")
	}
}

func TestUpdateAppliedOffersRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	p := mustCreateTestProduct(t, db, 9999, 3, nil)

	end := time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)
	offers := types.AppliedOffers{{
		OfferID:         uuid.New(),
		Name:            "Diwali Sale",
		DiscountPercent: 15,
		EndDate:         &end,
		Active:          true,
	}}
	if err := repo.UpdateAppliedOffers(ctx, p.ID, offers); err != nil {
		t.Fatalf("update applied offers: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.AppliedOffers) != 1 {
		t.Fatalf("expected one snapshot, got %d", len(reloaded.AppliedOffers))
	}
	snap := reloaded.AppliedOffers[0]
	if snap.Name != "Diwali Sale" || snap.DiscountPercent != 15 || !snap.Active {
		t.Fatalf("snapshot mangled: %+v", snap)
	}
	if snap.EndDate == nil || !snap.EndDate.Equal(end) {
		t.Fatalf("end date not preserved: %v", snap.EndDate)
	}
}

func TestListCursorPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		mustCreateTestProduct(t, db, float64(1000*(i+1)), 10, nil)
	}

	page1, cursor, err := repo.List(ctx, ListProductsInput{
		Pagination: pagination.Params{Limit: 2},
	})
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(page1))
	}
	if cursor == "" {
		t.Fatalf("expected next cursor")
	}

	page2, cursor2, err := repo.List(ctx, ListProductsInput{
		Pagination: pagination.Params{Limit: 2, Cursor: cursor},
	})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(page2) != 1 {
		t.Fatalf("expected 1 row on final page, got %d", len(page2))
	}
	if cursor2 != "" {
		t.Fatalf("expected no cursor on final page, got %q", cursor2)
	}

	seen := map[uuid.UUID]bool{}
	for _, p := range append(page1, page2...) {
		if seen[p.ID] {
			t.Fatalf("product %s returned twice", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	inStock := mustCreateTestProduct(t, db, 15000, 4, nil)
	soldOut := mustCreateTestProduct(t, db, 30000, 0, nil)

	yes := true
	rows, _, err := repo.List(ctx, ListProductsInput{
		Filters: ListFilters{InStock: &yes},
	})
	if err != nil {
		t.Fatalf("list in stock: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != inStock.ID {
		t.Fatalf("expected only the in-stock product")
	}

	max := 20000.0
	rows, _, err = repo.List(ctx, ListProductsInput{
		Filters: ListFilters{PriceMax: &max},
	})
	if err != nil {
		t.Fatalf("list price max: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != inStock.ID {
		t.Fatalf("expected only the cheaper product, got %d rows", len(rows))
	}

	rows, _, err = repo.List(ctx, ListProductsInput{
		Filters: ListFilters{Query: "galaxy"},
	})
	if err != nil {
		t.Fatalf("list query: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected both products to match name search, got %d", len(rows))
	}
	_ = soldOut
}
