package controllers

import (
	"fmt"
	"net/http"

	"github.com/homestylefoods/storefront-backend/api/middleware"
	"github.com/homestylefoods/storefront-backend/api/responses"
	"github.com/homestylefoods/storefront-backend/api/validators"
	"github.com/homestylefoods/storefront-backend/internal/checkout"
	apperrors "github.com/homestylefoods/storefront-backend/pkg/errors"
)

// CheckoutForm renders the delivery details form, re-checking the
// preconditions so a direct GET cannot skip them.
func CheckoutForm(view *View, svc checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := middleware.SessionFrom(r.Context())

		if err := svc.Guard(&handle.Session); err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg, err)
			return
		}

		view.Render(w, r, http.StatusOK, "checkout", "Checkout", nil)
	}
}

// CheckoutSubmit places the order and confirms with the order number.
func CheckoutSubmit(view *View, svc checkout.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := middleware.SessionFrom(r.Context())

		if err := r.ParseForm(); err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg,
				apperrors.Wrap(apperrors.CodeValidation, err, "invalid form"))
			return
		}

		input := checkout.Input{
			Name:    validators.SanitizeString(r.PostFormValue("name"), 120),
			Email:   validators.SanitizeString(r.PostFormValue("email"), 254),
			Phone:   validators.SanitizeString(r.PostFormValue("phone"), 20),
			Address: validators.SanitizeString(r.PostFormValue("address"), 1000),
			Notes:   validators.SanitizeString(r.PostFormValue("notes"), 1000),
		}
		if err := validators.ValidateStruct(input); err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg, err)
			return
		}

		order, err := svc.Execute(r.Context(), &handle.Session, input)
		if err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg, err)
			return
		}

		responses.Flash(w, r, view.Manager, handle, apperrors.FlashSuccess,
			fmt.Sprintf("Order #%s placed successfully!", order.ID), "/success")
	}
}
