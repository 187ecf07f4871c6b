package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ukemeuu/mani24-kds/internal/adapter/logger"
	"github.com/ukemeuu/mani24-kds/internal/app/board"
	"github.com/ukemeuu/mani24-kds/internal/domain"
	"github.com/ukemeuu/mani24-kds/internal/interfaces"
)

// Engine authorizes and applies status transitions and staff edits. Mutations
// hit the local board first, then the store; a failed store write is logged
// and left for the next store-driven refresh to reconcile.
type Engine struct {
	board     *board.Board
	repo      interfaces.OrderRepository
	publisher interfaces.EventPublisher
	syncer    interfaces.StatusSyncer
	logger    logger.Logger
	now       func() int64
}

func NewEngine(
	b *board.Board,
	repo interfaces.OrderRepository,
	publisher interfaces.EventPublisher,
	syncer interfaces.StatusSyncer,
	lgr logger.Logger,
) *Engine {
	return &Engine{
		board:     b,
		repo:      repo,
		publisher: publisher,
		syncer:    syncer,
		logger:    lgr,
		now:       func() int64 { return time.Now().UnixMilli() },
	}
}

var _ interfaces.LifecycleService = (*Engine)(nil)

// Advance moves one order a single step along the workflow. A (station,
// status) pair outside the canonical sequence is rejected without touching
// the order.
func (e *Engine) Advance(ctx context.Context, by domain.Station, orderID string, to domain.Status) (*domain.Order, error) {
	order, err := e.lookup(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.TransitionTo(to, by, e.now()); err != nil {
		return nil, err
	}

	e.board.ApplyLocal(*order)

	if err := e.repo.UpdateStatus(ctx, order.ID, order.Status, order.DispatchedAt); err != nil {
		// Local state stays ahead of the store until the next refresh.
		e.logger.Error("store_update_failed", "Failed to persist status change", "", map[string]interface{}{
			"order_number": order.OrderNumber,
			"status":       order.Status,
		}, err)
	}

	e.publishEvent(ctx, interfaces.EventStatusChanged, order, string(by))
	e.syncOutbound(order)

	return order, nil
}

// BulkReady moves every order in PREPARING at call time to READY, skipping
// PACKING. Only the front desk may trigger it, and only after explicit
// confirmation on its side. Orders entering PREPARING concurrently are not
// included.
func (e *Engine) BulkReady(ctx context.Context, by domain.Station) ([]string, error) {
	if by != domain.StationFrontDesk {
		return nil, domain.ErrRoleNotPermitted
	}

	snapshot := e.board.Snapshot()
	var moved []string
	var ready []domain.Order
	for i := range snapshot {
		o := snapshot[i]
		if o.ForceReady() != nil {
			continue
		}
		moved = append(moved, o.ID)
		ready = append(ready, o)
		e.board.ApplyLocal(o)
	}

	if len(moved) == 0 {
		return nil, nil
	}

	if err := e.repo.UpdateStatusBulk(ctx, moved, domain.StatusPreparing, domain.StatusReady); err != nil {
		e.logger.Error("store_update_failed", "Failed to persist bulk ready", "", map[string]interface{}{
			"orders": len(moved),
		}, err)
	}

	// Notifications fan out only after the store write; a board refresh they
	// trigger re-reads the new status.
	for i := range ready {
		e.publishEvent(ctx, interfaces.EventStatusChanged, &ready[i], string(by))
		e.syncOutbound(&ready[i])
	}

	e.logger.Info("bulk_ready", "All preparing orders marked ready", "", map[string]interface{}{
		"orders": len(moved),
	})
	return moved, nil
}

// UpdateOrder applies staff edits to an order still at the preparation
// stations. Quantities below 1 are rejected at this boundary, not clamped.
func (e *Engine) UpdateOrder(ctx context.Context, orderID string, cmd interfaces.UpdateOrderCommand) (*domain.Order, error) {
	order, err := e.lookup(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Editable() {
		return nil, domain.ErrOrderLocked
	}

	if cmd.CustomerName != nil {
		order.CustomerName = *cmd.CustomerName
	}
	if cmd.OrderType != nil {
		t, err := domain.ParseOrderType(*cmd.OrderType)
		if err != nil {
			return nil, err
		}
		order.Type = t
	}
	if cmd.Items != nil {
		items := make([]domain.OrderItem, 0, len(cmd.Items))
		for _, ic := range cmd.Items {
			if ic.Quantity < 1 {
				return nil, domain.ErrQuantityTooLow
			}
			category := domain.CategoryMain
			if ic.Category != "" {
				category = domain.Category(ic.Category)
			}
			prep := ic.EstimatedPrepTime
			if prep <= 0 {
				prep = domain.DefaultPrepTime(category)
			}
			id := ic.ID
			if id == "" {
				id = uuid.NewString()
			}
			items = append(items, domain.OrderItem{
				ID:                id,
				OrderID:           order.ID,
				Name:              ic.Name,
				Quantity:          ic.Quantity,
				Category:          category,
				EstimatedPrepTime: prep,
				Notes:             ic.Notes,
			})
		}
		order.Items = items
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	e.board.ApplyLocal(*order)

	if err := e.repo.UpdateDetails(ctx, order); err != nil {
		e.logger.Error("store_update_failed", "Failed to persist order edit", "", map[string]interface{}{
			"order_number": order.OrderNumber,
		}, err)
	}

	e.publishEvent(ctx, interfaces.EventOrderUpdated, order, "")
	return order, nil
}

// DeleteItem removes one line from an order still in preparation.
func (e *Engine) DeleteItem(ctx context.Context, orderID, itemID string) error {
	order, err := e.lookup(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.Editable() {
		return domain.ErrOrderLocked
	}

	kept := order.Items[:0:0]
	for _, it := range order.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	order.Items = kept
	e.board.ApplyLocal(*order)

	if err := e.repo.DeleteItem(ctx, orderID, itemID); err != nil {
		e.logger.Error("store_update_failed", "Failed to delete order item", "", map[string]interface{}{
			"order_number": order.OrderNumber,
		}, err)
	}

	e.publishEvent(ctx, interfaces.EventOrderUpdated, order, "")
	return nil
}

func (e *Engine) lookup(ctx context.Context, orderID string) (*domain.Order, error) {
	if o, ok := e.board.Get(orderID); ok {
		return &o, nil
	}
	return e.repo.FindByID(ctx, orderID)
}

func (e *Engine) publishEvent(ctx context.Context, event string, order *domain.Order, by string) {
	err := e.publisher.PublishOrderEvent(ctx, interfaces.OrderEvent{
		Event:       event,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		ChangedBy:   by,
		Timestamp:   time.Now().UTC(),
	})
	if err != nil {
		e.logger.Error("event_publish_failed", "Failed to publish order event", "", map[string]interface{}{
			"order_number": order.OrderNumber,
		}, err)
	}
}

// syncOutbound pushes the new status back to the originating platform,
// fire-and-forget from the caller's point of view.
func (e *Engine) syncOutbound(order *domain.Order) {
	if e.syncer == nil || order.Source() != "glovo" {
		return
	}
	externalID := order.ExternalID()
	storeID, _ := order.Metadata["store_id"].(string)
	if externalID == "" || storeID == "" {
		return
	}

	status := order.Status
	number := order.OrderNumber
	go func() {
		if err := e.syncer.SyncStatus(context.Background(), storeID, externalID, status); err != nil {
			e.logger.Error("status_sync_failed", "Failed to push status to platform", "", map[string]interface{}{
				"order_number": number,
			}, err)
		}
	}()
}
