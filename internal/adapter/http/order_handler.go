package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ukemeuu/mani24-kds/internal/adapter/logger"
	"github.com/ukemeuu/mani24-kds/internal/domain"
	"github.com/ukemeuu/mani24-kds/internal/interfaces"
)

type OrderHandler struct {
	ingest    interfaces.IngestService
	lifecycle interfaces.LifecycleService
	logger    logger.Logger
}

func NewOrderHandler(ingest interfaces.IngestService, lifecycle interfaces.LifecycleService, lgr logger.Logger) *OrderHandler {
	return &OrderHandler{ingest: ingest, lifecycle: lifecycle, logger: lgr}
}

// Create punches in a manual front-desk order.
// POST /orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.ingest.Ingest(r.Context(), "manual", body)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toTicketResponse(*order))
}

// Simulate ingests one generated order.
// POST /orders/simulate
func (h *OrderHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	order, err := h.ingest.Ingest(r.Context(), "simulated", nil)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toTicketResponse(*order))
}

type advanceRequest struct {
	Station string `json:"station"`
	To      string `json:"to"`
}

// Advance moves one order a single workflow step.
// POST /orders/{id}/advance
func (h *OrderHandler) Advance(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	station, err := domain.ParseStation(req.Station)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	to, err := domain.ParseStatus(req.To)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	order, err := h.lifecycle.Advance(r.Context(), station, r.PathValue("id"), to)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toTicketResponse(*order))
}

type bulkReadyRequest struct {
	Station string `json:"station"`
	// Confirmed mirrors the front-desk confirmation dialog; the shortcut is
	// refused without it.
	Confirmed bool `json:"confirmed"`
}

type bulkReadyResponse struct {
	Moved []string `json:"moved"`
}

// BulkReady moves every preparing order straight to ready.
// POST /orders/bulk-ready
func (h *OrderHandler) BulkReady(w http.ResponseWriter, r *http.Request) {
	var req bulkReadyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if !req.Confirmed {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bulk ready requires explicit confirmation"})
		return
	}

	station, err := domain.ParseStation(req.Station)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	moved, err := h.lifecycle.BulkReady(r.Context(), station)
	if err != nil {
		respondError(w, err)
		return
	}
	if moved == nil {
		moved = []string{}
	}
	respondJSON(w, http.StatusOK, bulkReadyResponse{Moved: moved})
}

// Update applies staff edits to an order still in preparation.
// PATCH /orders/{id}
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var cmd interfaces.UpdateOrderCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.lifecycle.UpdateOrder(r.Context(), r.PathValue("id"), cmd)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toTicketResponse(*order))
}

// DeleteItem removes one line from an order.
// DELETE /orders/{id}/items/{itemID}
func (h *OrderHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	err := h.lifecycle.DeleteItem(r.Context(), r.PathValue("id"), r.PathValue("itemID"))
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
