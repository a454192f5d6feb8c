package controllers

import (
	"net/http"

	"github.com/nutrimart/nutrimart-backend/api/middleware"
	"github.com/nutrimart/nutrimart-backend/api/responses"
	"github.com/nutrimart/nutrimart-backend/api/validators"
	"github.com/nutrimart/nutrimart-backend/internal/checkout"
	"github.com/nutrimart/nutrimart-backend/pkg/logger"
)

// Checkout places an order for the active cart against one store.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input checkout.CheckoutInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Execute(r.Context(), middleware.UserIDFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
