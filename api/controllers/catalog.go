package controllers

import (
	"net/http"

	"github.com/homestylefoods/storefront-backend/internal/catalog"
)

type shelfContent struct {
	Heading  string
	Products []catalog.Product
}

// CategoryPage renders one shelf of the catalog.
func CategoryPage(view *View, store *catalog.Store, category catalog.Category, heading string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view.Render(w, r, http.StatusOK, "products", heading, shelfContent{
			Heading:  heading,
			Products: store.List(category),
		})
	}
}
