package http

import (
	"net/http"

	"github.com/ukemeuu/mani24-kds/internal/adapter/logger"
	"github.com/ukemeuu/mani24-kds/internal/app/board"
	"github.com/ukemeuu/mani24-kds/internal/domain"
)

type BoardHandler struct {
	board  *board.Board
	logger logger.Logger
}

func NewBoardHandler(b *board.Board, lgr logger.Logger) *BoardHandler {
	return &BoardHandler{board: b, logger: lgr}
}

type ticketResponse struct {
	ID           string           `json:"id"`
	OrderNumber  string           `json:"order_number"`
	CustomerName string           `json:"customer_name"`
	Type         domain.OrderType `json:"type"`
	Status       domain.Status    `json:"status"`
	CreatedAt    int64            `json:"created_at"`
	DispatchedAt *int64           `json:"dispatched_at,omitempty"`
	Items        []itemResponse   `json:"items"`
}

type itemResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Quantity          int             `json:"quantity"`
	Category          domain.Category `json:"category"`
	EstimatedPrepTime int             `json:"estimated_prep_time"`
	Notes             string          `json:"notes,omitempty"`
}

// View renders one station's slice of the board.
// GET /board?station=CHEF&tab=ALL&q=ayo&sort=desc
func (h *BoardHandler) View(w http.ResponseWriter, r *http.Request) {
	station, err := domain.ParseStation(r.URL.Query().Get("station"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	q := board.Query{
		Station: station,
		Tab:     board.Tab(r.URL.Query().Get("tab")),
		Search:  r.URL.Query().Get("q"),
		Desc:    r.URL.Query().Get("sort") == "desc",
	}

	orders := h.board.View(q)
	tickets := make([]ticketResponse, 0, len(orders))
	for _, o := range orders {
		tickets = append(tickets, toTicketResponse(o))
	}
	respondJSON(w, http.StatusOK, tickets)
}

func toTicketResponse(o domain.Order) ticketResponse {
	items := make([]itemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, itemResponse{
			ID:                it.ID,
			Name:              it.Name,
			Quantity:          it.Quantity,
			Category:          it.Category,
			EstimatedPrepTime: it.EstimatedPrepTime,
			Notes:             it.Notes,
		})
	}
	return ticketResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerName: o.CustomerName,
		Type:         o.Type,
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
		DispatchedAt: o.DispatchedAt,
		Items:        items,
	}
}
