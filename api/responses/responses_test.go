package responses

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/homestylefoods/storefront-backend/internal/session"
	"github.com/homestylefoods/storefront-backend/pkg/config"
	apperrors "github.com/homestylefoods/storefront-backend/pkg/errors"
	"github.com/homestylefoods/storefront-backend/pkg/logger"
)

func testManager(t *testing.T) (*session.Manager, *session.MemoryStore) {
	t.Helper()

	store := session.NewMemoryStore()
	manager, err := session.NewManager(config.SessionConfig{
		CookieName: "hf_session",
		TTL:        time.Hour,
		Secret:     "secret",
		Issuer:     "homestyle-foods",
	}, store, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return manager, store
}

func TestWriteFailureRedirectsByCode(t *testing.T) {
	t.Parallel()

	manager, store := testManager(t)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	handle := manager.Resolve(httptest.NewRequest(http.MethodGet, "/checkout", nil))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/checkout", nil)

	WriteFailure(rec, req, manager, handle, logg, apperrors.New(apperrors.CodeUnauthorized, "Please login to checkout"))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/login" {
		t.Fatalf("expected redirect to /login, got %s", got)
	}

	saved, err := store.Get(context.Background(), handle.ID)
	if err != nil {
		t.Fatalf("session not saved: %v", err)
	}
	if len(saved.Flashes) != 1 || saved.Flashes[0].Message != "Please login to checkout" {
		t.Fatalf("unexpected flashes %+v", saved.Flashes)
	}
	if saved.Flashes[0].Level != apperrors.FlashWarning {
		t.Fatalf("expected warning flash, got %s", saved.Flashes[0].Level)
	}
}

func TestWriteFailureValidationBouncesToReferer(t *testing.T) {
	t.Parallel()

	manager, _ := testManager(t)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	handle := manager.Resolve(httptest.NewRequest(http.MethodPost, "/signup", nil))
	req := httptest.NewRequest(http.MethodPost, "/signup", nil)
	req.Header.Set("Referer", "/signup")
	rec := httptest.NewRecorder()

	WriteFailure(rec, req, manager, handle, logg, apperrors.New(apperrors.CodeValidation, "Passwords do not match"))

	if got := rec.Header().Get("Location"); got != "/signup" {
		t.Fatalf("expected redirect to referer, got %s", got)
	}
}

func TestWriteFailureValidationWithoutRefererGoesHome(t *testing.T) {
	t.Parallel()

	manager, _ := testManager(t)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	handle := manager.Resolve(httptest.NewRequest(http.MethodPost, "/contact", nil))
	rec := httptest.NewRecorder()

	WriteFailure(rec, httptest.NewRequest(http.MethodPost, "/contact", nil), manager, handle, logg,
		apperrors.New(apperrors.CodeValidation, "Please check the form"))

	if got := rec.Header().Get("Location"); got != "/home" {
		t.Fatalf("expected fallback redirect to /home, got %s", got)
	}
}
