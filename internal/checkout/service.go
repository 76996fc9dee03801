package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/homestylefoods/storefront-backend/internal/session"
	apperrors "github.com/homestylefoods/storefront-backend/pkg/errors"
	"github.com/homestylefoods/storefront-backend/pkg/logger"
	"github.com/homestylefoods/storefront-backend/pkg/notify"
)

// Input carries the delivery details from the checkout form.
type Input struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required,email"`
	Phone   string `form:"phone" validate:"required"`
	Address string `form:"address" validate:"required"`
	Notes   string `form:"notes"`
}

// Order is the placed order summary.
type Order struct {
	ID        string
	Total     int64
	ItemCount int
	PlacedAt  time.Time
}

// Notifier publishes the order event after checkout completes.
type Notifier interface {
	OrderPlaced(ctx context.Context, event notify.OrderPlacedEvent) error
}

// Service places orders from session carts.
type Service interface {
	Guard(sess *session.Session) error
	Execute(ctx context.Context, sess *session.Session, input Input) (Order, error)
}

type service struct {
	notifier Notifier
	logg     *logger.Logger
	now      func() time.Time
}

// NewService validates dependencies and returns the checkout service. The
// notifier may wrap a nil Pub/Sub client; publishes then become no-ops.
func NewService(notifier Notifier, logg *logger.Logger) (Service, error) {
	if notifier == nil {
		return nil, errors.New("notifier is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &service{
		notifier: notifier,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// Guard enforces the checkout preconditions: a logged-in user and a
// non-empty cart, checked in that order.
func (s *service) Guard(sess *session.Session) error {
	if !sess.LoggedIn() {
		return apperrors.New(apperrors.CodeUnauthorized, "Please login to checkout")
	}
	if len(sess.Cart) == 0 {
		return apperrors.New(apperrors.CodeEmptyCart, "Your cart is empty")
	}
	return nil
}

// Execute places the order and clears the cart. Publishing the order event
// is best effort; a broker outage never fails a checkout.
func (s *service) Execute(ctx context.Context, sess *session.Session, input Input) (Order, error) {
	if err := s.Guard(sess); err != nil {
		return Order{}, err
	}

	order := Order{
		ID:        newOrderID(),
		Total:     sess.Cart.Total(),
		ItemCount: sess.Cart.Count(),
		PlacedAt:  s.now().UTC(),
	}

	sess.Cart = nil

	event := notify.OrderPlacedEvent{
		OrderID:       order.ID,
		CustomerName:  input.Name,
		CustomerEmail: input.Email,
		Total:         order.Total,
		ItemCount:     order.ItemCount,
		PlacedAt:      order.PlacedAt.Format(time.RFC3339),
	}
	if err := s.notifier.OrderPlaced(ctx, event); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "order_id", order.ID), "order event publish failed")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id": order.ID,
		"total":    order.Total,
		"items":    order.ItemCount,
	}), "order placed")

	return order, nil
}

// newOrderID derives the short confirmation token shown to the customer.
func newOrderID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
