package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/homestylefoods/storefront-backend/api/middleware"
	"github.com/homestylefoods/storefront-backend/api/responses"
	"github.com/homestylefoods/storefront-backend/internal/cart"
	apperrors "github.com/homestylefoods/storefront-backend/pkg/errors"
)

type cartLineView struct {
	ProductID int
	Name      string
	Price     int64
	Image     string
	Quantity  int
	Subtotal  int64
}

type cartContent struct {
	Items []cartLineView
	Total int64
}

// CartView renders the cart with line subtotals and the grand total.
func CartView(view *View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := middleware.SessionFrom(r.Context())

		items := make([]cartLineView, 0, len(handle.Session.Cart))
		for _, line := range handle.Session.Cart {
			items = append(items, cartLineView{
				ProductID: line.ProductID,
				Name:      line.Name,
				Price:     line.Price,
				Image:     line.Image,
				Quantity:  line.Quantity,
				Subtotal:  line.Price * int64(line.Quantity),
			})
		}

		view.Render(w, r, http.StatusOK, "cart", "Your Cart", cartContent{
			Items: items,
			Total: handle.Session.Cart.Total(),
		})
	}
}

// AddToCart merges the posted product into the session cart and bounces
// back to the page the visitor came from.
func AddToCart(view *View, engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := middleware.SessionFrom(r.Context())

		if !handle.Session.LoggedIn() {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg,
				apperrors.New(apperrors.CodeUnauthorized, "Please login to add items to cart"))
			return
		}

		if err := r.ParseForm(); err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg,
				apperrors.Wrap(apperrors.CodeValidation, err, "invalid form"))
			return
		}

		productID, err := strconv.Atoi(r.PostFormValue("product_id"))
		if err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg,
				apperrors.New(apperrors.CodeValidation, "Invalid product"))
			return
		}
		quantity, err := strconv.Atoi(r.PostFormValue("quantity"))
		if err != nil {
			quantity = 1
		}

		updated, product, err := engine.Add(handle.Session.Cart, productID, quantity)
		if err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg, err)
			return
		}
		handle.Session.Cart = updated

		back := r.Referer()
		if back == "" {
			back = "/home"
		}
		responses.Flash(w, r, view.Manager, handle, apperrors.FlashSuccess,
			fmt.Sprintf("%s added to cart", product.Name), back)
	}
}

// RemoveFromCart drops the product line and returns to the cart.
func RemoveFromCart(view *View, engine *cart.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := middleware.SessionFrom(r.Context())

		if !handle.Session.LoggedIn() {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg,
				apperrors.New(apperrors.CodeUnauthorized, "Please login to modify your cart"))
			return
		}

		productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteFailure(w, r, view.Manager, handle, view.Logg,
				apperrors.New(apperrors.CodeValidation, "Invalid product"))
			return
		}

		handle.Session.Cart = engine.Remove(handle.Session.Cart, productID)

		responses.Flash(w, r, view.Manager, handle, apperrors.FlashInfo,
			"Item removed from cart", "/cart")
	}
}
