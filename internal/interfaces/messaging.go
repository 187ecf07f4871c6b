package interfaces

import (
	"context"
	"time"

	"github.com/ukemeuu/mani24-kds/internal/domain"
)

// OrderEvent is the store-change notification fanned out to every connected
// station board after any order mutation.
type OrderEvent struct {
	Event       string        `json:"event"` // order_created | status_changed | order_updated
	OrderID     string        `json:"order_id"`
	OrderNumber string        `json:"order_number"`
	Status      domain.Status `json:"status"`
	ChangedBy   string        `json:"changed_by,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
}

const (
	EventOrderCreated  = "order_created"
	EventStatusChanged = "status_changed"
	EventOrderUpdated  = "order_updated"
)

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}

type OrderEventHandler func(ctx context.Context, body []byte) error

type EventConsumer interface {
	ConsumeOrderEvents(ctx context.Context, handler OrderEventHandler) error
}

// StatusSyncer pushes an internal status change back to the originating
// delivery platform. Statuses with no platform mapping are silently ignored.
type StatusSyncer interface {
	SyncStatus(ctx context.Context, storeID, externalOrderID string, status domain.Status) error
}
