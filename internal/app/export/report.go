package export

import (
	"github.com/ukemeuu/mani24-kds/internal/domain"
)

// Report is the end-of-shift performance summary.
type Report struct {
	TotalOrders          int                      `json:"total_orders"`
	Dispatched           int                      `json:"dispatched"`
	Active               int                      `json:"active"`
	AvgTurnaroundMinutes int                      `json:"avg_turnaround_minutes"`
	TypeMix              map[domain.OrderType]int `json:"type_mix"`
	StationLoad          map[string]int           `json:"station_load"`
}

// BuildReport aggregates the day's orders at the given moment. Turnaround for
// a dispatched order runs creation to dispatch; still-active orders count
// elapsed time so a clogged board shows up in the average.
func BuildReport(orders []domain.Order, now int64) Report {
	r := Report{
		TypeMix: map[domain.OrderType]int{
			domain.TypeDineIn:   0,
			domain.TypeTakeout:  0,
			domain.TypeDelivery: 0,
		},
		StationLoad: map[string]int{
			"CHEF":       0,
			"PACKER":     0,
			"FRONT_DESK": 0,
		},
	}

	var totalElapsed int64
	for _, o := range orders {
		r.TotalOrders++
		r.TypeMix[o.Type]++

		switch o.Status {
		case domain.StatusNew, domain.StatusPreparing:
			r.StationLoad["CHEF"]++
		case domain.StatusPacking:
			r.StationLoad["PACKER"]++
		case domain.StatusReady:
			r.StationLoad["FRONT_DESK"]++
		}

		if o.Status == domain.StatusDispatched {
			r.Dispatched++
			if o.DispatchedAt != nil {
				totalElapsed += *o.DispatchedAt - o.CreatedAt
			}
		} else {
			totalElapsed += now - o.CreatedAt
		}
	}

	r.Active = r.TotalOrders - r.Dispatched
	if r.TotalOrders > 0 {
		r.AvgTurnaroundMinutes = int(totalElapsed / int64(r.TotalOrders) / 60000)
	}
	return r
}
