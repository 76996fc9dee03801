package session

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/homestylefoods/storefront-backend/internal/cart"
	"github.com/homestylefoods/storefront-backend/pkg/config"
	"github.com/homestylefoods/storefront-backend/pkg/logger"
)

func testManager(t *testing.T) (*Manager, *MemoryStore) {
	t.Helper()

	store := NewMemoryStore()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	manager, err := NewManager(config.SessionConfig{
		CookieName: "hf_session",
		TTL:        time.Hour,
		Secret:     "secret",
		Issuer:     "homestyle-foods",
	}, store, logg)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return manager, store
}

func TestResolveWithoutCookieStartsFresh(t *testing.T) {
	t.Parallel()

	manager, _ := testManager(t)

	handle := manager.Resolve(httptest.NewRequest(http.MethodGet, "/home", nil))
	if !handle.IsNew() {
		t.Fatal("expected a fresh session")
	}
	if handle.Session.LoggedIn() {
		t.Fatal("fresh session must be anonymous")
	}
}

func TestSaveSetsCookieAndPersists(t *testing.T) {
	t.Parallel()

	manager, store := testManager(t)
	ctx := context.Background()

	handle := manager.Resolve(httptest.NewRequest(http.MethodGet, "/home", nil))
	handle.Session.UserEmail = "priya@example.com"
	handle.Session.Cart = cart.Cart{{ProductID: 1, Price: 150, Quantity: 2}}

	rec := httptest.NewRecorder()
	if err := manager.Save(ctx, rec, handle); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "hf_session" {
		t.Fatalf("expected hf_session cookie, got %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("session cookie must be http-only")
	}

	stored, err := store.Get(ctx, handle.ID)
	if err != nil {
		t.Fatalf("stored session missing: %v", err)
	}
	if stored.UserEmail != "priya@example.com" || stored.Cart.Total() != 300 {
		t.Fatalf("unexpected stored session %+v", stored)
	}
}

func TestResolveRoundTripsCookie(t *testing.T) {
	t.Parallel()

	manager, _ := testManager(t)
	ctx := context.Background()

	handle := manager.Resolve(httptest.NewRequest(http.MethodGet, "/home", nil))
	handle.Session.UserEmail = "priya@example.com"

	rec := httptest.NewRecorder()
	if err := manager.Save(ctx, rec, handle); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	next := httptest.NewRequest(http.MethodGet, "/cart", nil)
	next.AddCookie(rec.Result().Cookies()[0])

	resumed := manager.Resolve(next)
	if resumed.IsNew() {
		t.Fatal("expected the session to resume")
	}
	if resumed.ID != handle.ID {
		t.Fatalf("expected session id %s, got %s", handle.ID, resumed.ID)
	}
	if resumed.Session.UserEmail != "priya@example.com" {
		t.Fatal("session state did not round trip")
	}
}

func TestResolveTamperedCookieStartsFresh(t *testing.T) {
	t.Parallel()

	manager, _ := testManager(t)

	handle := manager.Resolve(httptest.NewRequest(http.MethodGet, "/home", nil))
	rec := httptest.NewRecorder()
	if err := manager.Save(context.Background(), rec, handle); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	cookie := rec.Result().Cookies()[0]
	cookie.Value += "tampered"

	next := httptest.NewRequest(http.MethodGet, "/cart", nil)
	next.AddCookie(cookie)

	if resumed := manager.Resolve(next); !resumed.IsNew() {
		t.Fatal("tampered cookie must start a fresh session")
	}
}

func TestDestroyRemovesRecordAndExpiresCookie(t *testing.T) {
	t.Parallel()

	manager, store := testManager(t)
	ctx := context.Background()

	handle := manager.Resolve(httptest.NewRequest(http.MethodGet, "/home", nil))
	if err := manager.Save(ctx, httptest.NewRecorder(), handle); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := manager.Destroy(ctx, rec, handle); err != nil {
		t.Fatalf("destroy failed: %v", err)
	}

	if _, err := store.Get(ctx, handle.ID); err != ErrNotFound {
		t.Fatalf("expected record to be deleted, got %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("expected expired cookie, got %+v", cookies)
	}
}

func TestConsumeFlashes(t *testing.T) {
	t.Parallel()

	var sess Session
	sess.AddFlash("success", "Login successful!")
	sess.AddFlash("info", "Item removed from cart")

	flashes := sess.ConsumeFlashes()
	if len(flashes) != 2 {
		t.Fatalf("expected 2 flashes, got %d", len(flashes))
	}
	if flashes[0].Message != "Login successful!" || flashes[1].Level != "info" {
		t.Fatalf("unexpected flashes %+v", flashes)
	}
	if len(sess.ConsumeFlashes()) != 0 {
		t.Fatal("flashes must be consumed once")
	}
}
