package checkout

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/homestylefoods/storefront-backend/internal/cart"
	"github.com/homestylefoods/storefront-backend/internal/session"
	apperrors "github.com/homestylefoods/storefront-backend/pkg/errors"
	"github.com/homestylefoods/storefront-backend/pkg/logger"
	"github.com/homestylefoods/storefront-backend/pkg/notify"
)

type stubNotifier struct {
	events []notify.OrderPlacedEvent
	err    error
}

func (s *stubNotifier) OrderPlaced(_ context.Context, event notify.OrderPlacedEvent) error {
	s.events = append(s.events, event)
	return s.err
}

func testService(t *testing.T, notifier Notifier) Service {
	t.Helper()

	svc, err := NewService(notifier, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func testInput() Input {
	return Input{
		Name:    "Priya",
		Email:   "priya@example.com",
		Phone:   "9876543210",
		Address: "12 Beach Road, Visakhapatnam",
	}
}

func TestGuardRequiresLoginBeforeCart(t *testing.T) {
	t.Parallel()

	svc := testService(t, &stubNotifier{})

	// Anonymous with an empty cart: login wins.
	err := svc.Guard(&session.Session{})
	if apperrors.CodeOf(err) != apperrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}

	err = svc.Guard(&session.Session{UserEmail: "priya@example.com"})
	if apperrors.CodeOf(err) != apperrors.CodeEmptyCart {
		t.Fatalf("expected EMPTY_CART, got %v", err)
	}

	err = svc.Guard(&session.Session{
		UserEmail: "priya@example.com",
		Cart:      cart.Cart{{ProductID: 1, Price: 150, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("guard must pass for logged-in user with items: %v", err)
	}
}

func TestExecutePlacesOrderAndClearsCart(t *testing.T) {
	t.Parallel()

	notifier := &stubNotifier{}
	svc := testService(t, notifier)

	sess := &session.Session{
		UserEmail: "priya@example.com",
		Cart: cart.Cart{
			{ProductID: 1, Price: 150, Quantity: 2},
			{ProductID: 13, Price: 70, Quantity: 1},
		},
	}

	order, err := svc.Execute(context.Background(), sess, testInput())
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if len(order.ID) != 8 {
		t.Fatalf("expected 8-char order id, got %q", order.ID)
	}
	if order.ID != strings.ToUpper(order.ID) {
		t.Fatalf("order id must be uppercase, got %q", order.ID)
	}
	if order.Total != 370 || order.ItemCount != 2 {
		t.Fatalf("unexpected order %+v", order)
	}
	if len(sess.Cart) != 0 {
		t.Fatal("checkout must clear the cart")
	}

	if len(notifier.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(notifier.events))
	}
	event := notifier.events[0]
	if event.OrderID != order.ID || event.Total != 370 || event.CustomerEmail != "priya@example.com" {
		t.Fatalf("unexpected event %+v", event)
	}
}

func TestExecuteSurvivesPublishFailure(t *testing.T) {
	t.Parallel()

	svc := testService(t, &stubNotifier{err: errors.New("broker down")})

	sess := &session.Session{
		UserEmail: "priya@example.com",
		Cart:      cart.Cart{{ProductID: 1, Price: 150, Quantity: 1}},
	}

	order, err := svc.Execute(context.Background(), sess, testInput())
	if err != nil {
		t.Fatalf("publish failure must not fail checkout: %v", err)
	}
	if order.Total != 150 {
		t.Fatalf("unexpected order %+v", order)
	}
	if len(sess.Cart) != 0 {
		t.Fatal("checkout must clear the cart even when publish fails")
	}
}

func TestExecuteRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	svc := testService(t, &stubNotifier{})

	_, err := svc.Execute(context.Background(), &session.Session{UserEmail: "priya@example.com"}, testInput())
	if apperrors.CodeOf(err) != apperrors.CodeEmptyCart {
		t.Fatalf("expected EMPTY_CART, got %v", err)
	}
}
