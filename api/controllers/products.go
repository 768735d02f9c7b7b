package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shreemobiles/storefront-backend/api/responses"
	"github.com/shreemobiles/storefront-backend/api/validators"
	productsvc "github.com/shreemobiles/storefront-backend/internal/products"
	pkgerrors "github.com/shreemobiles/storefront-backend/pkg/errors"
	"github.com/shreemobiles/storefront-backend/pkg/logger"
	"github.com/shreemobiles/storefront-backend/pkg/pagination"
)

type createProductRequest struct {
	Name          string                          `json:"name" validate:"required"`
	Brand         string                          `json:"brand" validate:"required"`
	Price         float64                         `json:"price" validate:"gte=0"`
	Stock         int                             `json:"stock" validate:"gte=0"`
	AppliedOffers []productsvc.AppliedOfferInput  `json:"applied_offers,omitempty"`
	Offer         *productsvc.AppliedOfferInput   `json:"offer,omitempty"`
	Description   *string                         `json:"description,omitempty"`
	Image         *string                         `json:"image,omitempty"`
	Images        []string                        `json:"images,omitempty"`
}

func (req createProductRequest) toInput() productsvc.CreateProductInput {
	return productsvc.CreateProductInput{
		Name:          validators.SanitizeString(req.Name, 200),
		Brand:         validators.SanitizeString(req.Brand, 100),
		Price:         req.Price,
		Stock:         req.Stock,
		AppliedOffers: req.AppliedOffers,
		Offer:         req.Offer,
		Description:   req.Description,
		Image:         req.Image,
		Images:        req.Images,
	}
}

type updateProductRequest struct {
	Name          *string                         `json:"name,omitempty"`
	Brand         *string                         `json:"brand,omitempty"`
	Price         *float64                        `json:"price,omitempty" validate:"omitempty,gte=0"`
	Stock         *int                            `json:"stock,omitempty" validate:"omitempty,gte=0"`
	AppliedOffers *[]productsvc.AppliedOfferInput `json:"applied_offers,omitempty"`
	Offer         *productsvc.AppliedOfferInput   `json:"offer,omitempty"`
	Description   *string                         `json:"description,omitempty"`
	Image         *string                         `json:"image,omitempty"`
	Images        *[]string                       `json:"images,omitempty"`
}

func (req updateProductRequest) toInput() productsvc.UpdateProductInput {
	return productsvc.UpdateProductInput{
		Name:          req.Name,
		Brand:         req.Brand,
		Price:         req.Price,
		Stock:         req.Stock,
		AppliedOffers: req.AppliedOffers,
		Offer:         req.Offer,
		Description:   req.Description,
		Image:         req.Image,
		Images:        req.Images,
	}
}

// ListProducts serves the public catalog with filters and cursor pagination.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		priceMin, err := validators.ParseQueryFloat(r, "price_min")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		priceMax, err := validators.ParseQueryFloat(r, "price_max")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		inStock, err := validators.ParseQueryBool(r, "in_stock")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var brand *string
		if b := validators.SanitizeString(r.URL.Query().Get("brand"), 100); b != "" {
			brand = &b
		}

		result, err := svc.ListProducts(r.Context(), productsvc.ListProductsInput{
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: r.URL.Query().Get("cursor"),
			},
			Filters: productsvc.ListFilters{
				Brand:    brand,
				Query:    validators.SanitizeString(r.URL.Query().Get("q"), 200),
				PriceMin: priceMin,
				PriceMax: priceMax,
				InStock:  inStock,
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetProduct serves a single catalog entry by id.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminCreateProduct handles catalog creation by an admin.
func AdminCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		adminID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), adminID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminUpdateProduct applies a partial update to a catalog entry.
func AdminUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), productID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminDeleteProduct removes a catalog entry.
func AdminDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := pathUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "missing path parameter").WithDetails(map[string]any{"field": key})
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid identifier").WithDetails(map[string]any{"field": key})
	}
	return id, nil
}
