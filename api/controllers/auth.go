package controllers

import (
	"net/http"

	"github.com/homestylefoods/storefront-backend/api/middleware"
	"github.com/homestylefoods/storefront-backend/api/responses"
	"github.com/homestylefoods/storefront-backend/api/validators"
	"github.com/homestylefoods/storefront-backend/internal/auth"
	apperrors "github.com/homestylefoods/storefront-backend/pkg/errors"
)

// LoginForm renders the login page.
func LoginForm(view *View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view.Render(w, r, http.StatusOK, "login", "Login", nil)
	}
}

// LoginSubmit authenticates and binds the user to the session.
func LoginSubmit(view *View, svc auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := middleware.SessionFrom(r.Context())

		if err := r.ParseForm(); err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg,
				apperrors.Wrap(apperrors.CodeValidation, err, "invalid form"))
			return
		}

		email := validators.SanitizeString(r.PostFormValue("email"), 254)
		password := r.PostFormValue("password")

		user, err := svc.Login(r.Context(), email, password)
		if err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg, err)
			return
		}

		handle.Session.UserEmail = user.Email
		handle.Session.UserName = user.Name

		responses.Flash(w, r, view.Manager, handle, apperrors.FlashSuccess,
			"Login successful!", "/home")
	}
}

// SignupForm renders the registration page.
func SignupForm(view *View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view.Render(w, r, http.StatusOK, "signup", "Sign Up", nil)
	}
}

// SignupSubmit registers the account and sends the visitor to login.
func SignupSubmit(view *View, svc auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := middleware.SessionFrom(r.Context())

		if err := r.ParseForm(); err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg,
				apperrors.Wrap(apperrors.CodeValidation, err, "invalid form"))
			return
		}

		input := auth.RegisterInput{
			Name:            validators.SanitizeString(r.PostFormValue("name"), 120),
			Email:           validators.SanitizeString(r.PostFormValue("email"), 254),
			Password:        r.PostFormValue("password"),
			ConfirmPassword: r.PostFormValue("confirm_password"),
		}
		if err := validators.ValidateStruct(input); err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg, err)
			return
		}

		if err := svc.Register(r.Context(), input); err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg, err)
			return
		}

		responses.Flash(w, r, view.Manager, handle, apperrors.FlashSuccess,
			"Registration successful! Please login.", "/login")
	}
}

// Logout destroys the session and returns to the landing page.
func Logout(view *View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := middleware.SessionFrom(r.Context())

		if err := view.Manager.Destroy(r.Context(), w, handle); err != nil {
			view.Logg.Error(r.Context(), "destroying session", err)
		}
		responses.Redirect(w, r, "/")
	}
}
