package ingest

import (
	"math/rand"

	"github.com/ukemeuu/mani24-kds/internal/domain"
)

// SimulatedSource fabricates a realistic order from the house menu. The body
// is ignored; the source is its own payload generator.
type SimulatedSource struct{}

type menuEntry struct {
	name     string
	category domain.Category
	prep     int
}

var simulatedMenu = []menuEntry{
	{"Party Jollof Rice", domain.CategoryMain, 12},
	{"Beef Suya", domain.CategoryMain, 15},
	{"Chicken Suya", domain.CategoryMain, 15},
	{"Egusi Soup with Pounded Yam", domain.CategoryMain, 18},
	{"Fried Plantain (Dodo)", domain.CategorySide, 5},
	{"Moin Moin", domain.CategorySide, 8},
	{"Zobo Drink", domain.CategoryDrink, 2},
	{"Chapman", domain.CategoryDrink, 3},
	{"Puff Puff", domain.CategoryDessert, 6},
}

var simulatedCustomers = []string{
	"Ayo Balogun", "Chidi E.", "Tunde W.", "Ngozi A.", "Femi O.", "Amaka D.",
}

var simulatedTypes = []domain.OrderType{
	domain.TypeDineIn, domain.TypeTakeout, domain.TypeDelivery,
}

func (SimulatedSource) Name() string { return "simulated" }

func (SimulatedSource) Normalize(_ []byte, now int64) (*domain.Order, error) {
	count := 2 + rand.Intn(3)
	picked := rand.Perm(len(simulatedMenu))[:count]

	items := make([]domain.OrderItem, 0, count)
	for _, idx := range picked {
		entry := simulatedMenu[idx]
		items = append(items, domain.OrderItem{
			Name:              entry.name,
			Quantity:          1 + rand.Intn(3),
			Category:          entry.category,
			EstimatedPrepTime: entry.prep,
		})
	}

	return &domain.Order{
		OrderNumber:  synthesizeNumber(),
		CustomerName: simulatedCustomers[rand.Intn(len(simulatedCustomers))],
		Type:         simulatedTypes[rand.Intn(len(simulatedTypes))],
		Status:       domain.StatusNew,
		CreatedAt:    now,
		Items:        normalizeItems(items),
		Metadata:     map[string]any{"source": "simulated"},
	}, nil
}
