package ingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ukemeuu/mani24-kds/internal/domain"
)

// GlovoSource maps a Glovo webhook body onto a canonical order. Glovo orders
// are always deliveries; customer details are sparse for marketplace orders.
type GlovoSource struct{}

type glovoPayload struct {
	OrderID       string `json:"order_id"`
	OrderCode     string `json:"order_code"`
	StoreID       string `json:"store_id"`
	PaymentMethod string `json:"payment_method"`
	Customer      struct {
		Name string `json:"name"`
	} `json:"customer"`
	Products []glovoProduct `json:"products"`
}

type glovoProduct struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Attributes []struct {
		Name string `json:"name"`
	} `json:"attributes"`
}

func (GlovoSource) Name() string { return "glovo" }

func (GlovoSource) Normalize(body []byte, now int64) (*domain.Order, error) {
	var p glovoPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("invalid glovo payload: %w", err)
	}

	number := p.OrderCode
	if number == "" {
		number = p.OrderID
	}
	if number == "" {
		number = fmt.Sprintf("GL-%d", now)
	}

	customer := p.Customer.Name
	if customer == "" {
		customer = "Glovo Customer"
	}

	items := make([]domain.OrderItem, 0, len(p.Products))
	for _, prod := range p.Products {
		var notes string
		if len(prod.Attributes) > 0 {
			names := make([]string, 0, len(prod.Attributes))
			for _, a := range prod.Attributes {
				names = append(names, a.Name)
			}
			notes = "Options: " + strings.Join(names, ", ")
		}
		items = append(items, domain.OrderItem{
			Name:     prod.Name,
			Quantity: prod.Quantity,
			Category: domain.CategoryMain,
			Notes:    notes,
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
			"source":         "glovo",
			"store_id":       p.StoreID,
			"glovo_order_id": p.OrderID,
			"payment_method": p.PaymentMethod,
		},
	}, nil
}
