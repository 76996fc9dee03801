package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/homestylefoods/storefront-backend/api/middleware"
	"github.com/homestylefoods/storefront-backend/api/responses"
	"github.com/homestylefoods/storefront-backend/api/validators"
	"github.com/homestylefoods/storefront-backend/internal/admin"
	apperrors "github.com/homestylefoods/storefront-backend/pkg/errors"
)

// AddProductForm renders the admin form, rejecting non-admins up front.
func AddProductForm(view *View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := middleware.SessionFrom(r.Context())

		if !view.Admins.IsAdmin(handle.Session.UserEmail) {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg,
				apperrors.New(apperrors.CodeForbidden, "admin access required"))
			return
		}

		view.Render(w, r, http.StatusOK, "admin_add_product", "Add Product", nil)
	}
}

// AddProductSubmit parses the multipart form and hands the upload to the
// admin service.
func AddProductSubmit(view *View, svc admin.Service, maxUploadMB int) http.HandlerFunc {
	maxBytes := int64(maxUploadMB) << 20

	return func(w http.ResponseWriter, r *http.Request) {
		handle := middleware.SessionFrom(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1024)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg,
				apperrors.Wrap(apperrors.CodeValidation, err, "Image is too large or the form is invalid"))
			return
		}

		price, err := strconv.ParseInt(r.PostFormValue("price"), 10, 64)
		if err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg,
				apperrors.New(apperrors.CodeValidation, "Price must be a whole number"))
			return
		}

		input := admin.AddProductInput{
			Name:        validators.SanitizeString(r.PostFormValue("name"), 120),
			Price:       price,
			Description: validators.SanitizeString(r.PostFormValue("description"), 1000),
			Category:    r.PostFormValue("category"),
		}

		file, header, err := r.FormFile("image")
		if err == nil {
			defer file.Close()
			data, readErr := io.ReadAll(file)
			if readErr != nil {
				responses.WriteFailure(w, r, view.Manager, handle, view.Logg,
					apperrors.Wrap(apperrors.CodeInternal, readErr, "reading upload"))
				return
			}
			input.ImageFilename = validators.SanitizeFilename(header.Filename)
			input.ImageData = data
		}

		if err := validators.ValidateStruct(input); err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg, err)
			return
		}

		if _, err := svc.AddProduct(r.Context(), handle.Session.UserEmail, input); err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg, err)
			return
		}

		responses.Flash(w, r, view.Manager, handle, apperrors.FlashSuccess,
			"Product added successfully", "/home")
	}
}
