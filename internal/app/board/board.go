package board

import (
	"context"
	"sync"

	"github.com/ukemeuu/mani24-kds/internal/adapter/logger"
	"github.com/ukemeuu/mani24-kds/internal/domain"
	"github.com/ukemeuu/mani24-kds/internal/interfaces"
)

// Board owns the single in-memory order collection all station views project
// from. Mutations are applied optimistically ahead of the store; the
// authoritative state re-reads on every store change notification, so a
// failed write converges on the next refresh.
type Board struct {
	repo   interfaces.OrderRepository
	logger logger.Logger

	mu     sync.RWMutex
	orders []domain.Order
}

func New(repo interfaces.OrderRepository, lgr logger.Logger) *Board {
	return &Board{repo: repo, logger: lgr}
}

// Refresh replaces the collection with the store's current state.
func (b *Board) Refresh(ctx context.Context) error {
	orders, err := b.repo.List(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.orders = orders
	b.mu.Unlock()

	b.logger.Debug("board_refreshed", "Order collection reloaded from store", "", map[string]interface{}{
		"orders": len(orders),
	})
	return nil
}

// Start subscribes to the store change feed and refreshes on every event.
// It blocks until the context is cancelled.
func (b *Board) Start(ctx context.Context, consumer interfaces.EventConsumer) error {
	if err := b.Refresh(ctx); err != nil {
		return err
	}
	return consumer.ConsumeOrderEvents(ctx, func(ctx context.Context, _ []byte) error {
		if err := b.Refresh(ctx); err != nil {
			b.logger.Error("board_refresh_failed", "Failed to reload orders", "", nil, err)
		}
		return nil
	})
}

// Snapshot returns a copy of the collection at call time.
func (b *Board) Snapshot() []domain.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Order, len(b.orders))
	copy(out, b.orders)
	return out
}

// Get returns the order with the given id, if present.
func (b *Board) Get(id string) (domain.Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, o := range b.orders {
		if o.ID == id {
			return o, true
		}
	}
	return domain.Order{}, false
}

// ApplyLocal applies one optimistic mutation, replacing a present order or
// appending a new one. The store feed reconciles it later.
func (b *Board) ApplyLocal(order domain.Order) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.orders {
		if b.orders[i].ID == order.ID {
			b.orders[i] = order
			return
		}
	}
	b.orders = append(b.orders, order)
}

// View projects the current collection through the given query.
func (b *Board) View(q Query) []domain.Order {
	return Project(b.Snapshot(), q)
}
