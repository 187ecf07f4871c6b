package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ukemeuu/mani24-kds/internal/domain"
	"github.com/ukemeuu/mani24-kds/internal/interfaces"
)

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	metadata, err := json.Marshal(order.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `
		INSERT INTO orders (id, order_number, customer_name, type, status, created_at, dispatched_at, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.Exec(ctx, query,
		order.ID, order.OrderNumber, order.CustomerName, order.Type,
		order.Status, order.CreatedAt, order.DispatchedAt, metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *orderRepository) CreateItems(ctx context.Context, orderID string, items []domain.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, name, quantity, category, estimated_prep_time, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, item := range items {
		_, err := r.db.Exec(ctx, query,
			item.ID, orderID, item.Name, item.Quantity, item.Category, item.EstimatedPrepTime, item.Notes,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, order_number, customer_name, type, status, created_at, dispatched_at, metadata
		FROM orders
		WHERE id = $1
	`
	order, err := r.scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) FindByExternalID(ctx context.Context, source, externalID string) (*domain.Order, error) {
	query := `
		SELECT id, order_number, customer_name, type, status, created_at, dispatched_at, metadata
		FROM orders
		WHERE metadata->>'source' = $1
		  AND (metadata->>'glovo_order_id' = $2 OR metadata->>'external_order_id' = $2)
		LIMIT 1
	`
	order, err := r.scanOrder(r.db.QueryRow(ctx, query, source, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, order_number, customer_name, type, status, created_at, dispatched_at, metadata
		FROM orders
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	index := make(map[string]int)
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		index[order.ID] = len(orders)
		orders = append(orders, *order)
	}

	itemsQuery := `
		SELECT id, order_id, name, quantity, category, estimated_prep_time, notes
		FROM order_items
	`
	itemRows, err := r.db.Query(ctx, itemsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item domain.OrderItem
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.Name, &item.Quantity,
			&item.Category, &item.EstimatedPrepTime, &item.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}

	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, dispatchedAt *int64) error {
	query := `
		UPDATE orders
		SET status = $1, dispatched_at = COALESCE(dispatched_at, $2)
		WHERE id = $3
	`
	tag, err := r.db.Exec(ctx, query, status, dispatchedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) UpdateStatusBulk(ctx context.Context, ids []string, from, to domain.Status) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE orders SET status = $1 WHERE id = ANY($2) AND status = $3`
	if _, err := r.db.Exec(ctx, query, to, ids, from); err != nil {
		return fmt.Errorf("failed to bulk update order status: %w", err)
	}
	return nil
}

func (r *orderRepository) UpdateDetails(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET customer_name = $1, type = $2
		WHERE id = $3
	`
	tag, err := r.db.Exec(ctx, query, order.CustomerName, order.Type, order.ID)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}

	// Item edits replace the line set wholesale; the board re-reads on the
	// next change notification anyway.
	if _, err := r.db.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("failed to clear order items: %w", err)
	}
	return r.CreateItems(ctx, order.ID, order.Items)
}

func (r *orderRepository) DeleteItem(ctx context.Context, orderID, itemID string) error {
	query := `DELETE FROM order_items WHERE order_id = $1 AND id = $2`
	if _, err := r.db.Exec(ctx, query, orderID, itemID); err != nil {
		return fmt.Errorf("failed to delete order item: %w", err)
	}
	return nil
}

func (r *orderRepository) scanOrder(row Row) (*domain.Order, error) {
	var order domain.Order
	var rawStatus string
	var metadata []byte
	if err := row.Scan(&order.ID, &order.OrderNumber, &order.CustomerName, &order.Type,
		&rawStatus, &order.CreatedAt, &order.DispatchedAt, &metadata); err != nil {
		return nil, err
	}

	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	order.Status = status

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &order.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}
	return &order, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	query := `
		SELECT id, order_id, name, quantity, category, estimated_prep_time, notes
		FROM order_items
		WHERE order_id = $1
	`
	rows, err := r.db.Query(ctx, query, order.ID)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Name, &item.Quantity,
			&item.Category, &item.EstimatedPrepTime, &item.Notes); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return nil
}
