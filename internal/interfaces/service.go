package interfaces

import (
	"context"

	"github.com/ukemeuu/mani24-kds/internal/domain"
)

// CreateOrderCommand carries a manual front-desk order entry.
type CreateOrderCommand struct {
	CustomerName string                   `json:"customer_name"`
	OrderType    string                   `json:"order_type"`
	OrderNumber  string                   `json:"order_number,omitempty"`
	Items        []CreateOrderItemCommand `json:"items"`
}

type CreateOrderItemCommand struct {
	// ID is set on edits that carry an existing line through; new lines and
	// order creation leave it empty and get a generated id.
	ID                string `json:"id,omitempty"`
	Name              string `json:"name"`
	Quantity          int    `json:"quantity"`
	Category          string `json:"category,omitempty"`
	EstimatedPrepTime int    `json:"estimated_prep_time,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// UpdateOrderCommand carries staff edits to an order still in preparation.
type UpdateOrderCommand struct {
	CustomerName *string                  `json:"customer_name,omitempty"`
	OrderType    *string                  `json:"order_type,omitempty"`
	Items        []CreateOrderItemCommand `json:"items,omitempty"`
}

type IngestService interface {
	Ingest(ctx context.Context, source string, body []byte) (*domain.Order, error)
}

type LifecycleService interface {
	Advance(ctx context.Context, by domain.Station, orderID string, to domain.Status) (*domain.Order, error)
	BulkReady(ctx context.Context, by domain.Station) ([]string, error)
	UpdateOrder(ctx context.Context, orderID string, cmd UpdateOrderCommand) (*domain.Order, error)
	DeleteItem(ctx context.Context, orderID, itemID string) error
}

type AuthService interface {
	Login(ctx context.Context, role domain.Role, pin string) (domain.StaffUser, error)
}
