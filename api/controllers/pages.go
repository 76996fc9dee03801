package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/homestylefoods/storefront-backend/api/middleware"
	"github.com/homestylefoods/storefront-backend/api/responses"
	"github.com/homestylefoods/storefront-backend/api/validators"
	"github.com/homestylefoods/storefront-backend/internal/catalog"
	apperrors "github.com/homestylefoods/storefront-backend/pkg/errors"
	"github.com/homestylefoods/storefront-backend/pkg/notify"
)

// ContactNotifier publishes contact form submissions.
type ContactNotifier interface {
	ContactMessage(ctx context.Context, event notify.ContactMessageEvent) error
}

// Index renders the landing page.
func Index(view *View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view.Render(w, r, http.StatusOK, "index", "Welcome", nil)
	}
}

// Home renders the featured products.
func Home(view *View, store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view.Render(w, r, http.StatusOK, "home", "Home", store.Featured())
	}
}

// About renders the about page.
func About(view *View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view.Render(w, r, http.StatusOK, "about", "About Us", nil)
	}
}

// Success renders the order confirmation page.
func Success(view *View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view.Render(w, r, http.StatusOK, "success", "Order Placed", nil)
	}
}

// ContactForm renders the contact page.
func ContactForm(view *View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view.Render(w, r, http.StatusOK, "contact", "Contact Us", nil)
	}
}

type contactInput struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required,email"`
	Message string `form:"message" validate:"required"`
}

// ContactSubmit accepts the form, hands the message to the notifier and
// thanks the visitor. Publishing is best effort.
func ContactSubmit(view *View, notifier ContactNotifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := middleware.SessionFrom(r.Context())

		if err := r.ParseForm(); err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg,
				apperrors.Wrap(apperrors.CodeValidation, err, "invalid form"))
			return
		}

		input := contactInput{
			Name:    validators.SanitizeString(r.PostFormValue("name"), 120),
			Email:   validators.SanitizeString(r.PostFormValue("email"), 254),
			Message: validators.SanitizeString(r.PostFormValue("message"), 4000),
		}
		if err := validators.ValidateStruct(input); err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg, err)
			return
		}

		event := notify.ContactMessageEvent{
			Name:       input.Name,
			Email:      input.Email,
			Message:    input.Message,
			ReceivedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := notifier.ContactMessage(r.Context(), event); err != nil {
			view.Logg.Warn(r.Context(), "contact message publish failed")
		}

		responses.Flash(w, r, view.Manager, handle, apperrors.FlashSuccess,
			"Thank you for your message! We will get back to you soon.", "/contact")
	}
}
