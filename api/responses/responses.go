package responses

import (
	"net/http"

	"github.com/homestylefoods/storefront-backend/internal/session"
	apperrors "github.com/homestylefoods/storefront-backend/pkg/errors"
	"github.com/homestylefoods/storefront-backend/pkg/logger"
)

// Redirect issues a 303 so the browser re-requests with GET after a POST.
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// Flash queues a one-shot notice, saves the session and redirects.
func Flash(w http.ResponseWriter, r *http.Request, manager *session.Manager, handle *session.Handle, level, message, location string) {
	handle.Session.AddFlash(level, message)
	// A failed save only loses the notice, never the response.
	_ = manager.Save(r.Context(), w, handle)
	Redirect(w, r, location)
}

// WriteFailure converts an error into its flash notice and redirect. Every
// handler exits through here on failure so recovery is uniform: the code's
// metadata picks the flash level and destination, and validation errors
// bounce back to the submitting page.
func WriteFailure(w http.ResponseWriter, r *http.Request, manager *session.Manager, handle *session.Handle, logg *logger.Logger, err error) {
	ctx := r.Context()
	code := apperrors.CodeOf(err)
	meta := apperrors.MetadataFor(code)

	location := meta.Redirect
	if location == "" {
		location = r.Referer()
		if location == "" {
			location = "/home"
		}
	}

	dump := apperrors.Dump(err)
	logCtx := logg.WithFields(ctx, map[string]any{
		"code":  string(code),
		"chain": dump.Chain,
	})
	switch code {
	case apperrors.CodeInternal, apperrors.CodeDependency:
		logg.Error(logCtx, "request failed", err)
	default:
		logg.Warn(logCtx, "request rejected")
	}

	Flash(w, r, manager, handle, meta.FlashLevel, apperrors.PublicMessage(err), location)
}
