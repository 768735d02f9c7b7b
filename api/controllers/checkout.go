package controllers

import (
	"net/http"

	"github.com/shreemobiles/storefront-backend/api/responses"
	"github.com/shreemobiles/storefront-backend/api/validators"
	checkoutsvc "github.com/shreemobiles/storefront-backend/internal/checkout"
	"github.com/shreemobiles/storefront-backend/internal/invoices"
	pkgerrors "github.com/shreemobiles/storefront-backend/pkg/errors"
	"github.com/shreemobiles/storefront-backend/pkg/logger"
)

// Checkout converts the submitted cart into an invoice. Prices are always
// recomputed server-side; anything the client asserts about price is ignored.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutsvc.CheckoutInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.Execute(r.Context(), userID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"invoice": invoices.FromModel(invoice),
		})
	}
}
