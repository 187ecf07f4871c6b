package domain

import (
	"errors"
	"fmt"
)

// Order is one kitchen ticket.
type Order struct {
	ID           string
	OrderNumber  string
	CustomerName string
	Type         OrderType
	Status       Status
	CreatedAt    int64  // epoch millis, immutable
	DispatchedAt *int64 // stamped once on entering DISPATCHED, never cleared
	Items        []OrderItem
	Metadata     map[string]any // source tagging, write-once at creation
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID                string
	OrderID           string
	Name              string
	Quantity          int
	Category          Category
	EstimatedPrepTime int // minutes
	Notes             string
}

type OrderType string

const (
	TypeDineIn   OrderType = "Dine-in"
	TypeTakeout  OrderType = "Takeout"
	TypeDelivery OrderType = "Delivery"
)

func ParseOrderType(raw string) (OrderType, error) {
	t := OrderType(raw)
	switch t {
	case TypeDineIn, TypeTakeout, TypeDelivery:
		return t, nil
	}
	return "", fmt.Errorf("unknown order type %q", raw)
}

type Category string

const (
	CategoryMain    Category = "Main"
	CategorySide    Category = "Side"
	CategoryDrink   Category = "Drink"
	CategoryDessert Category = "Dessert"
)

// DefaultPrepTime is the fallback preparation estimate, in minutes, applied
// when a source omits one for an item.
func DefaultPrepTime(c Category) int {
	switch c {
	case CategorySide:
		return 8
	case CategoryDrink:
		return 2
	case CategoryDessert:
		return 5
	default:
		return 15
	}
}

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrRoleNotPermitted  = errors.New("station not permitted to perform transition")
	ErrOrderLocked       = errors.New("order is no longer editable")
	ErrQuantityTooLow    = errors.New("item quantity must be at least 1")
	ErrEmptyOrder        = errors.New("order must have at least one item")
	ErrOrderNotFound     = errors.New("order not found")
	ErrStaffNotFound     = errors.New("no staff member matches role and pin")
	ErrOutsideShift      = errors.New("outside configured shift hours")
	ErrServicePaused     = errors.New("insight service paused, rate limit reached")
)

// TransitionTo moves the order one step along the canonical workflow if the
// station is permitted to trigger it, stamping DispatchedAt on entry to the
// terminal status. A rejected pair leaves the order untouched.
func (o *Order) TransitionTo(to Status, by Station, now int64) error {
	if !CanTransition(by, o.Status, to) {
		next, ok := NextStatus(o.Status)
		if ok && next == to {
			return ErrRoleNotPermitted
		}
		return ErrInvalidTransition
	}
	o.Status = to
	o.markDispatched(now)
	return nil
}

// ForceReady is the bulk-shortcut step PREPARING->READY. Callers are expected
// to have confirmed the operation; the engine only offers it to FRONT_DESK.
func (o *Order) ForceReady() error {
	if o.Status != StatusPreparing {
		return ErrInvalidTransition
	}
	o.Status = StatusReady
	return nil
}

func (o *Order) markDispatched(now int64) {
	if o.Status == StatusDispatched && o.DispatchedAt == nil {
		o.DispatchedAt = &now
	}
}

// Editable reports whether staff may still change items, customer name or
// type. Orders freeze once they leave the preparation stations.
func (o *Order) Editable() bool {
	return o.Status == StatusNew || o.Status == StatusPreparing
}

// TotalItems is the summed quantity across all lines.
func (o *Order) TotalItems() int {
	total := 0
	for _, it := range o.Items {
		total += it.Quantity
	}
	return total
}

// Validate applies the persistence-boundary rules. The UI may clamp
// quantities locally but the store must never see less than 1.
func (o *Order) Validate() error {
	if o.OrderNumber == "" {
		return errors.New("order number is required")
	}
	for _, it := range o.Items {
		if it.Name == "" {
			return errors.New("item name is required")
		}
		if it.Quantity < 1 {
			return ErrQuantityTooLow
		}
	}
	if o.Status == StatusDispatched && len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	return nil
}

// Source returns the ingestion source tag recorded at creation, if any.
func (o *Order) Source() string {
	if o.Metadata == nil {
		return ""
	}
	s, _ := o.Metadata["source"].(string)
	return s
}

// ExternalID returns the originating platform's order identifier, if any.
func (o *Order) ExternalID() string {
	if o.Metadata == nil {
		return ""
	}
	for _, key := range []string{"glovo_order_id", "external_order_id"} {
		if v, ok := o.Metadata[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
