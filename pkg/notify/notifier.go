package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/homestylefoods/storefront-backend/pkg/config"
	"github.com/homestylefoods/storefront-backend/pkg/logger"
)

var errProjectIDRequired = errors.New("gcp project id is required")

const publishTimeout = 10 * time.Second

// OrderPlacedEvent is published when a checkout completes.
type OrderPlacedEvent struct {
	OrderID       string `json:"order_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Total         int64  `json:"total"`
	ItemCount     int    `json:"item_count"`
	PlacedAt      string `json:"placed_at"`
}

// ContactMessageEvent is published when a visitor submits the contact form.
type ContactMessageEvent struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Message    string `json:"message"`
	ReceivedAt string `json:"received_at"`
}

// Notifier publishes storefront events to Pub/Sub. A nil Notifier is valid
// and drops every publish, so the app keeps working without a broker.
type Notifier struct {
	client *pubsub.Client
	cfg    config.PubSubConfig
}

// New creates a Pub/Sub v2 client for the configured project.
func New(ctx context.Context, cfg config.PubSubConfig, logg *logger.Logger) (*Notifier, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, errProjectIDRequired
	}

	psClient, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "pubsub notifier initialized")
	}

	return &Notifier{client: psClient, cfg: cfg}, nil
}

// OrderPlaced publishes the order event to the order topic.
func (n *Notifier) OrderPlaced(ctx context.Context, event OrderPlacedEvent) error {
	if n == nil || n.client == nil {
		return nil
	}
	return n.publish(ctx, n.cfg.OrderTopic, event)
}

// ContactMessage publishes the contact submission to the contact topic.
func (n *Notifier) ContactMessage(ctx context.Context, event ContactMessageEvent) error {
	if n == nil || n.client == nil {
		return nil
	}
	return n.publish(ctx, n.cfg.ContactTopic, event)
}

func (n *Notifier) publish(ctx context.Context, topic string, payload any) error {
	fullName := n.topicResourceName(topic)
	if fullName == "" {
		return fmt.Errorf("topic %q not configured", topic)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	result := n.client.Publisher(fullName).Publish(ctx, &pubsub.Message{Data: data})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}
	return nil
}

// Close releases the Pub/Sub client resources.
func (n *Notifier) Close() error {
	if n == nil || n.client == nil {
		return nil
	}
	return n.client.Close()
}

func (n *Notifier) topicResourceName(name string) string {
	t := strings.TrimSpace(name)
	if t == "" {
		return ""
	}
	if strings.HasPrefix(t, "projects/") && strings.Contains(t, "/topics/") {
		return t
	}
	p := strings.TrimSpace(n.cfg.ProjectID)
	if p == "" {
		return ""
	}
	return fmt.Sprintf("projects/%s/topics/%s", p, t)
}
