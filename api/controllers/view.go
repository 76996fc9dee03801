package controllers

import (
	"net/http"

	"github.com/homestylefoods/storefront-backend/api/middleware"
	"github.com/homestylefoods/storefront-backend/api/views"
	"github.com/homestylefoods/storefront-backend/internal/session"
	"github.com/homestylefoods/storefront-backend/pkg/logger"
)

// AdminChecker reports whether an email belongs to the admin account.
type AdminChecker interface {
	IsAdmin(email string) bool
}

// View bundles the rendering dependencies every controller shares.
type View struct {
	Renderer *views.Renderer
	Manager  *session.Manager
	Admins   AdminChecker
	Logg     *logger.Logger
}

// Render writes a page with the session-derived chrome: nav state, cart
// count and any pending flashes. Consuming flashes mutates the session, so
// it is saved before the body goes out.
func (v *View) Render(w http.ResponseWriter, r *http.Request, status int, page, title string, content any) {
	handle := middleware.SessionFrom(r.Context())

	flashes := handle.Session.ConsumeFlashes()
	if len(flashes) > 0 || handle.IsNew() {
		if err := v.Manager.Save(r.Context(), w, handle); err != nil {
			v.Logg.Error(r.Context(), "saving session before render", err)
		}
	}

	data := views.Data{
		Title:     title,
		UserEmail: handle.Session.UserEmail,
		UserName:  handle.Session.UserName,
		IsAdmin:   v.Admins.IsAdmin(handle.Session.UserEmail),
		CartCount: handle.Session.Cart.Count(),
		Flashes:   flashes,
		Content:   content,
	}
	if err := v.Renderer.Render(w, status, page, data); err != nil {
		v.Logg.Error(r.Context(), "rendering page", err)
		http.Error(w, "Something went wrong, please try again", http.StatusInternalServerError)
	}
}
