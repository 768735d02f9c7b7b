package invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shreemobiles/storefront-backend/pkg/db/models"
	"github.com/shreemobiles/storefront-backend/pkg/enums"
	pkgerrors "github.com/shreemobiles/storefront-backend/pkg/errors"
	"github.com/shreemobiles/storefront-backend/pkg/logger"
	"github.com/shreemobiles/storefront-backend/pkg/pagination"
)

// Requester identifies who is asking for an invoice. Access is allowed only
// to the invoice's owner or an admin.
type Requester struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

func (r Requester) canAccess(invoice *models.Invoice) bool {
	return r.Role == enums.UserRoleAdmin || r.UserID == invoice.UserID
}

// RenderedPDF is a fully produced invoice document ready to stream.
type RenderedPDF struct {
	Filename string
	Content  []byte
}

// Service exposes invoice reads and document rendering. Invoices are created
// only by checkout; there is no mutation surface here.
type Service interface {
	GetInvoice(ctx context.Context, requester Requester, invoiceID uuid.UUID) (*InvoiceDTO, error)
	ListInvoices(ctx context.Context, userID uuid.UUID, params pagination.Params) (*InvoiceListResult, error)
	ListAllInvoices(ctx context.Context, params pagination.Params) (*InvoiceListResult, error)
	RenderInvoicePDF(ctx context.Context, requester Requester, invoiceID uuid.UUID) (*RenderedPDF, error)
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// ServiceParams bundles the dependencies required to build an invoices service.
type ServiceParams struct {
	Repo   *Repository
	Logger *logger.Logger
}

// NewService constructs an invoices service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("invoices repository is required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) GetInvoice(ctx context.Context, requester Requester, invoiceID uuid.UUID) (*InvoiceDTO, error) {
	invoice, err := s.authorize(ctx, requester, invoiceID)
	if err != nil {
		return nil, err
	}
	return FromModel(invoice), nil
}

func (s *service) ListInvoices(ctx context.Context, userID uuid.UUID, params pagination.Params) (*InvoiceListResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	rows, next, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list invoices")
	}
	return listResult(rows, next), nil
}

func (s *service) ListAllInvoices(ctx context.Context, params pagination.Params) (*InvoiceListResult, error) {
	rows, next, err := s.repo.ListAll(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to list invoices")
	}
	return listResult(rows, next), nil
}

// RenderInvoicePDF resolves and authorizes the invoice before producing any
// document bytes, so an unauthorized caller never receives a partial stream.
func (s *service) RenderInvoicePDF(ctx context.Context, requester Requester, invoiceID uuid.UUID) (*RenderedPDF, error) {
	invoice, err := s.authorize(ctx, requester, invoiceID)
	if err != nil {
		return nil, err
	}

	content, err := RenderPDF(invoice)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to render invoice")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithInvoiceNumber(ctx, invoice.InvoiceNumber), "invoice pdf rendered")
	}
	return &RenderedPDF{Filename: PDFFilename(invoice), Content: content}, nil
}

func (s *service) authorize(ctx context.Context, requester Requester, invoiceID uuid.UUID) (*models.Invoice, error) {
	if invoiceID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice id is required")
	}
	invoice, err := s.repo.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load invoice")
	}
	if !requester.canAccess(invoice) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you do not have access to this invoice")
	}
	return invoice, nil
}

func listResult(rows []models.Invoice, next string) *InvoiceListResult {
	dtos := make([]InvoiceDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return &InvoiceListResult{Invoices: dtos, NextCursor: next}
}
