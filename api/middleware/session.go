package middleware

import (
	"context"
	"net/http"

	"github.com/homestylefoods/storefront-backend/internal/session"
	"github.com/homestylefoods/storefront-backend/pkg/logger"
)

type sessionKey struct{}

// SessionFrom returns the handle placed on the context by Session.
func SessionFrom(ctx context.Context) *session.Handle {
	handle, _ := ctx.Value(sessionKey{}).(*session.Handle)
	return handle
}

// Session resolves the visitor cookie into a session handle and binds the
// session fields onto the request log context.
func Session(manager *session.Manager, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handle := manager.Resolve(r)

			ctx := context.WithValue(r.Context(), sessionKey{}, handle)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, handle.ID)
				if handle.Session.LoggedIn() {
					ctx = logg.WithUserEmail(ctx, handle.Session.UserEmail)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
