package ingest

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ukemeuu/mani24-kds/internal/domain"
)

// PartnerSource handles the generic delivery-partner webhook shape: a unique
// external order id, an optional customer name and a list of line items.
// Anything optional falls back to documented defaults.
type PartnerSource struct{}

type partnerPayload struct {
	ExternalOrderID string `json:"external_order_id"`
	OrderNumber     string `json:"order_number"`
	CustomerName    string `json:"customer_name"`
	Items           []struct {
		Name              string `json:"name"`
		Quantity          int    `json:"quantity"`
		Category          string `json:"category"`
		EstimatedPrepTime int    `json:"estimated_prep_time"`
		Notes             string `json:"notes"`
	} `json:"items"`
}

func (PartnerSource) Name() string { return "partner" }

func (PartnerSource) Normalize(body []byte, now int64) (*domain.Order, error) {
	var p partnerPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("invalid partner payload: %w", err)
	}
	if p.ExternalOrderID == "" {
		return nil, errors.New("partner payload missing external_order_id")
	}

	number := p.OrderNumber
	if number == "" {
		suffix := p.ExternalOrderID
		if len(suffix) > 4 {
			suffix = suffix[len(suffix)-4:]
		}
		number = "PT-" + suffix
	}

	customer := p.CustomerName
	if customer == "" {
		customer = "Partner Customer"
	}

	items := make([]domain.OrderItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, domain.OrderItem{
			Name:              it.Name,
			Quantity:          it.Quantity,
			Category:          domain.Category(it.Category),
			EstimatedPrepTime: it.EstimatedPrepTime,
			Notes:             it.Notes,
		})
	}

	return &domain.Order{
		OrderNumber:  number,
		CustomerName: customer,
		Type:         domain.TypeDelivery,
		Status:       domain.StatusNew,
		CreatedAt:    now,
		Items:        normalizeItems(items),
		Metadata: map[string]any{
			"source":            "partner",
			"external_order_id": p.ExternalOrderID,
		},
	}, nil
}
