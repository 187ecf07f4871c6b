package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ukemeuu/mani24-kds/internal/adapter/logger"
	"github.com/ukemeuu/mani24-kds/internal/domain"
	"github.com/ukemeuu/mani24-kds/internal/interfaces"
)

// Service runs payloads through the matching source normalizer and persists
// the result. The order header and its items are separate writes: if the
// item write fails the order stays in the store with zero items and is
// surfaced to operators rather than deleted.
type Service struct {
	repo      interfaces.OrderRepository
	publisher interfaces.EventPublisher
	logger    logger.Logger
	sources   map[string]Source
	now       func() int64
}

func NewService(repo interfaces.OrderRepository, publisher interfaces.EventPublisher, lgr logger.Logger, sources ...Source) *Service {
	m := make(map[string]Source, len(sources))
	for _, src := range sources {
		m[src.Name()] = src
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    lgr,
		sources:   m,
		now:       func() int64 { return time.Now().UnixMilli() },
	}
}

var _ interfaces.IngestService = (*Service)(nil)

func (s *Service) Ingest(ctx context.Context, source string, body []byte) (*domain.Order, error) {
	src, ok := s.sources[source]
	if !ok {
		return nil, fmt.Errorf("unknown order source %q", source)
	}

	order, err := src.Normalize(body, s.now())
	if err != nil {
		s.logger.Error("payload_rejected", "Failed to normalize ingestion payload", "", map[string]interface{}{
			"source": source,
		}, err)
		return nil, err
	}

	// The engine owns all later transitions; every ingested order starts NEW.
	order.Status = domain.StatusNew
	order.ID = uuid.NewString()
	for i := range order.Items {
		order.Items[i].ID = uuid.NewString()
		order.Items[i].OrderID = order.ID
	}

	// Webhook retries can redeliver the same external event; reuse the order
	// already keyed to that external id when we can find it.
	if externalID := order.ExternalID(); externalID != "" {
		existing, err := s.repo.FindByExternalID(ctx, source, externalID)
		if err == nil {
			s.logger.Info("duplicate_delivery", "External order already ingested", "", map[string]interface{}{
				"source":            source,
				"external_order_id": externalID,
				"order_number":      existing.OrderNumber,
			})
			return existing, nil
		}
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	if len(order.Items) == 0 {
		s.logger.Info("zero_item_order", "Order ingested without items", "", map[string]interface{}{
			"source":       source,
			"order_number": order.OrderNumber,
		})
	} else if err := s.repo.CreateItems(ctx, order.ID, order.Items); err != nil {
		// No cross-table transaction: the header stays, visible as a
		// zero-item NEW ticket for staff to resolve.
		s.logger.Error("items_persist_failed", "Order left in store with zero items", "", map[string]interface{}{
			"source":       source,
			"order_number": order.OrderNumber,
		}, err)
		order.Items = nil
	}

	if err := s.publisher.PublishOrderEvent(ctx, interfaces.OrderEvent{
		Event:       interfaces.EventOrderCreated,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		Timestamp:   time.Now().UTC(),
	}); err != nil {
		s.logger.Error("event_publish_failed", "Failed to publish order created event", "", map[string]interface{}{
			"order_number": order.OrderNumber,
		}, err)
	}

	s.logger.Debug("order_ingested", "Order normalized and persisted", "", map[string]interface{}{
		"source":       source,
		"order_number": order.OrderNumber,
		"items":        len(order.Items),
	})
	return order, nil
}
