package middleware

import (
	"fmt"
	"net/http"

	"github.com/homestylefoods/storefront-backend/pkg/logger"
)

func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := fmt.Errorf("panic: %v", rec)
					if logg != nil {
						ctx := logg.WithFields(r.Context(), map[string]any{"panic": rec})
						logg.Error(ctx, "panic.recovered", err)
					}
					http.Error(w, "Something went wrong, please try again", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
