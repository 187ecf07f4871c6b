package board

import (
	"sort"
	"strings"

	"github.com/ukemeuu/mani24-kds/internal/domain"
)

// Tab selects a front-desk sub-view. Other stations ignore it.
type Tab string

const (
	TabAll        Tab = "ALL"
	TabNew        Tab = Tab(domain.StatusNew)
	TabReady      Tab = Tab(domain.StatusReady)
	TabDispatched Tab = Tab(domain.StatusDispatched)
)

// Query is the UI-selected filter state for one board view.
type Query struct {
	Station domain.Station
	Tab     Tab
	Search  string
	Desc    bool // newest first when true
}

// Project derives the visible order set for a station view. It is a pure
// function: the input slice is never mutated, and ties on createdAt keep
// their input order.
func Project(orders []domain.Order, q Query) []domain.Order {
	search := strings.ToLower(q.Search)

	visible := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if search != "" &&
			!strings.Contains(strings.ToLower(o.CustomerName), search) &&
			!strings.Contains(strings.ToLower(o.OrderNumber), search) {
			continue
		}
		if !stationShows(q.Station, q.Tab, o.Status) {
			continue
		}
		visible = append(visible, o)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		if q.Desc {
			return visible[i].CreatedAt > visible[j].CreatedAt
		}
		return visible[i].CreatedAt < visible[j].CreatedAt
	})
	return visible
}

func stationShows(station domain.Station, tab Tab, status domain.Status) bool {
	switch station {
	case domain.StationChef:
		return status == domain.StatusNew || status == domain.StatusPreparing
	case domain.StationPacker:
		return status == domain.StatusPacking
	case domain.StationFrontDesk:
		if tab == TabAll || tab == "" {
			return status != domain.StatusDispatched
		}
		return status == domain.Status(tab)
	default:
		return true
	}
}
