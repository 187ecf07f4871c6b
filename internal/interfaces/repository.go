package interfaces

import (
	"context"

	"github.com/ukemeuu/mani24-kds/internal/domain"
)

// OrderRepository is the Order Store. Header and item writes are deliberately
// separate calls: no cross-table transaction is assumed, and an order whose
// item insert failed stays in the store with zero items.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	CreateItems(ctx context.Context, orderID string, items []domain.OrderItem) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// FindByExternalID is the best-effort webhook dedupe lookup keyed on the
	// source tag and the platform's own order identifier in metadata.
	FindByExternalID(ctx context.Context, source, externalID string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status, dispatchedAt *int64) error
	// UpdateStatusBulk moves the identified orders still in from to the new
	// status. Rows another station advanced past from since the caller's
	// snapshot are left alone.
	UpdateStatusBulk(ctx context.Context, ids []string, from, to domain.Status) error
	UpdateDetails(ctx context.Context, order *domain.Order) error
	DeleteItem(ctx context.Context, orderID, itemID string) error
}
