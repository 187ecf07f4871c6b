package ingest

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/ukemeuu/mani24-kds/internal/domain"
	"github.com/ukemeuu/mani24-kds/internal/interfaces"
)

// ManualSource normalizes front-desk order entry.
type ManualSource struct{}

func (ManualSource) Name() string { return "manual" }

func (ManualSource) Normalize(body []byte, now int64) (*domain.Order, error) {
	var cmd interfaces.CreateOrderCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		return nil, fmt.Errorf("invalid manual order payload: %w", err)
	}

	orderType, err := domain.ParseOrderType(cmd.OrderType)
	if err != nil {
		return nil, err
	}

	number := cmd.OrderNumber
	if number == "" {
		number = synthesizeNumber()
	}

	items := make([]domain.OrderItem, 0, len(cmd.Items))
	for _, ic := range cmd.Items {
		items = append(items, domain.OrderItem{
			Name:              ic.Name,
			Quantity:          ic.Quantity,
			Category:          domain.Category(ic.Category),
			EstimatedPrepTime: ic.EstimatedPrepTime,
			Notes:             ic.Notes,
		})
	}

	return &domain.Order{
		OrderNumber:  number,
		CustomerName: cmd.CustomerName,
		Type:         orderType,
		Status:       domain.StatusNew,
		CreatedAt:    now,
		Items:        normalizeItems(items),
		Metadata:     map[string]any{"source": "manual"},
	}, nil
}

// synthesizeNumber produces a short display label; uniqueness only needs to
// hold across one shift.
func synthesizeNumber() string {
	return fmt.Sprintf("PJ-%03d", 100+rand.Intn(900))
}
