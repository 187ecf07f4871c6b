package ingest

import (
	"github.com/ukemeuu/mani24-kds/internal/domain"
)

// Source normalizes one external payload shape into a canonical order. Every
// order source (manual entry, simulation, delivery-platform webhook)
// implements the same contract; the service forces status NEW, assigns ids
// and persists the result.
type Source interface {
	Name() string
	Normalize(body []byte, now int64) (*domain.Order, error)
}

// normalizeItems applies the per-category defaults a source may omit and
// drops lines with no name rather than failing the whole order.
func normalizeItems(items []domain.OrderItem) []domain.OrderItem {
	out := items[:0:0]
	for _, it := range items {
		if it.Name == "" {
			continue
		}
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		switch it.Category {
		case domain.CategoryMain, domain.CategorySide, domain.CategoryDrink, domain.CategoryDessert:
		default:
			it.Category = domain.CategoryMain
		}
		if it.EstimatedPrepTime <= 0 {
			it.EstimatedPrepTime = domain.DefaultPrepTime(it.Category)
		}
		out = append(out, it)
	}
	return out
}
