package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"gorm.io/gorm"

	"github.com/shreemobiles/storefront-backend/internal/invoices"
	"github.com/shreemobiles/storefront-backend/internal/pricing"
	product "github.com/shreemobiles/storefront-backend/internal/products"
	"github.com/shreemobiles/storefront-backend/pkg/db"
	"github.com/shreemobiles/storefront-backend/pkg/db/models"
	"github.com/shreemobiles/storefront-backend/pkg/enums"
	pkgerrors "github.com/shreemobiles/storefront-backend/pkg/errors"
	"github.com/shreemobiles/storefront-backend/pkg/logger"
	"github.com/shreemobiles/storefront-backend/pkg/metrics"
)

// invoiceNumberRetries bounds how often a checkout is replayed after an
// invoice number collision. Collisions require the counter row to be reset
// underneath a live system, so one replay is paranoia and two is plenty.
const invoiceNumberRetries = 2

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service converts a submitted cart into exactly one persisted invoice,
// with server-side pricing and stock enforcement.
type Service interface {
	Execute(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*models.Invoice, error)
}

type service struct {
	tx       txRunner
	products *product.Repository
	invoices *invoices.Repository
	metrics  *metrics.CheckoutMetrics
	logg     *logger.Logger
	now      func() time.Time
}

// ServiceParams bundles the dependencies required to build a checkout service.
type ServiceParams struct {
	DB          txRunner
	ProductRepo *product.Repository
	InvoiceRepo *invoices.Repository
	Metrics     *metrics.CheckoutMetrics
	Logger      *logger.Logger
	Now         func() time.Time
}

// NewService constructs a checkout service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	if params.InvoiceRepo == nil {
		return nil, fmt.Errorf("invoice repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		tx:       params.DB,
		products: params.ProductRepo,
		invoices: params.InvoiceRepo,
		metrics:  params.Metrics,
		logg:     params.Logger,
		now:      now,
	}, nil
}

// Execute runs a checkout. Every cart line is validated before any stock is
// touched, and decrements plus the invoice insert share one transaction, so
// a rejected checkout leaves stock exactly as it found it.
func (s *service) Execute(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*models.Invoice, error) {
	started := time.Now()

	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if len(input.Cart) == 0 {
		return nil, s.reject(ctx, started, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty"))
	}

	var invoice *models.Invoice
	// An invoice number collision rolls the whole transaction back, so the
	// safe recovery is to replay the checkout with a fresh number.
	backoff := retry.WithMaxRetries(invoiceNumberRetries, retry.NewConstant(25*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		created, err := s.runCheckout(ctx, userID, input)
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return retry.RetryableError(err)
			}
			return err
		}
		invoice = created
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			err = pkgerrors.Wrap(pkgerrors.CodeConflict, err, "could not allocate a unique invoice number")
		}
		return nil, s.reject(ctx, started, err)
	}

	if s.metrics != nil {
		s.metrics.ObserveSuccess(time.Since(started), invoice.Total)
	}
	if s.logg != nil {
		lctx := s.logg.WithFields(ctx, map[string]any{
			"invoice_number": invoice.InvoiceNumber,
			"user_id":        userID.String(),
			"line_count":     len(invoice.Items),
			"total":          invoice.Total,
		})
		s.logg.Info(lctx, "checkout completed")
	}
	return invoice, nil
}

func (s *service) reject(ctx context.Context, started time.Time, err error) error {
	if s.metrics != nil {
		s.metrics.ObserveFailure(time.Since(started), string(pkgerrors.As(err).Code()))
	}
	if s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "reason", string(pkgerrors.As(err).Code())), "checkout rejected")
	}
	return err
}

type resolvedLine struct {
	product  *models.Product
	quantity int
}

func (s *service) runCheckout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*models.Invoice, error) {
	asOf := s.now()

	// The counter advance runs outside the transaction so a rejected
	// checkout does not hold the counter row locked. Gaps in the sequence
	// are acceptable; reuse is not.
	number, err := s.invoices.NextInvoiceNumber(ctx, asOf)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to allocate invoice number")
	}

	var result *models.Invoice
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		productRepo := s.products.WithTx(tx)
		invoiceRepo := s.invoices.WithTx(tx)

		resolved, order, required, err := s.validateCart(ctx, productRepo, input.Cart)
		if err != nil {
			return err
		}

		// Commit phase: one conditional decrement per product. The quantity
		// was already checked against a snapshot, but the decrement is the
		// authoritative read-check-write, so a concurrent checkout that got
		// there first surfaces here.
		for _, productID := range order {
			ok, err := productRepo.DecrementStock(ctx, productID, required[productID])
			if err != nil {
				return err
			}
			if !ok {
				fresh, err := productRepo.FindByID(ctx, productID)
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to reload product stock")
				}
				return insufficientStock(fresh, required[productID])
			}
		}

		items := make([]models.InvoiceItem, 0, len(resolved))
		total := 0.0
		for i, line := range resolved {
			price := pricing.EffectivePrice(line.product.Price, line.product.AppliedOffers, asOf)
			productID := line.product.ID
			items = append(items, models.InvoiceItem{
				ProductID:     &productID,
				Name:          line.product.Name,
				Price:         price,
				OriginalPrice: line.product.Price,
				AppliedOffers: pricing.ValidOffers(line.product.AppliedOffers, asOf).Clone(),
				Quantity:      line.quantity,
				Position:      i,
			})
			total += price * float64(line.quantity)
		}

		invoice := &models.Invoice{
			InvoiceNumber: number,
			UserID:        userID,
			Items:         items,
			Total:         pricing.Round2(total),
			CustomerName:  input.Customer.Name,
			CustomerEmail: input.Customer.Email,
			Status:        enums.InvoiceStatusCompleted,
		}
		result, err = invoiceRepo.Create(ctx, invoice)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	return result, nil
}

// validateCart resolves every cart line before any stock is touched. It
// returns the lines in submission order, the distinct products in first-seen
// order, and the total quantity required per product.
func (s *service) validateCart(ctx context.Context, repo *product.Repository, cart []CartLine) ([]resolvedLine, []uuid.UUID, map[uuid.UUID]int, error) {
	resolved := make([]resolvedLine, 0, len(cart))
	cache := make(map[uuid.UUID]*models.Product, len(cart))
	required := make(map[uuid.UUID]int, len(cart))
	order := make([]uuid.UUID, 0, len(cart))

	for i, line := range cart {
		if line.ProductID == uuid.Nil {
			return nil, nil, nil, pkgerrors.New(
				pkgerrors.CodeValidation,
				fmt.Sprintf("cart line %d has no recognizable product id", i+1),
			)
		}

		prod, ok := cache[line.ProductID]
		if !ok {
			loaded, err := repo.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
						WithDetails(map[string]any{"product_id": line.ProductID.String()})
				}
				return nil, nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load product")
			}
			cache[line.ProductID] = loaded
			order = append(order, line.ProductID)
			prod = loaded
		}

		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}
		required[prod.ID] += qty
		if prod.Stock < required[prod.ID] {
			return nil, nil, nil, insufficientStock(prod, required[prod.ID])
		}
		resolved = append(resolved, resolvedLine{product: prod, quantity: qty})
	}

	return resolved, order, required, nil
}

func insufficientStock(prod *models.Product, requested int) error {
	return pkgerrors.New(
		pkgerrors.CodeInsufficientStock,
		fmt.Sprintf("insufficient stock for %s: only %d left", prod.Name, prod.Stock),
	).WithDetails(map[string]any{
		"product_id": prod.ID.String(),
		"product":    prod.Name,
		"available":  prod.Stock,
		"requested":  requested,
	})
}

var _ txRunner = (*db.Client)(nil)
