package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/ukemeuu/mani24-kds/internal/adapter/logger"
	"github.com/ukemeuu/mani24-kds/internal/interfaces"
)

type WebhookHandler struct {
	ingest         interfaces.IngestService
	glovoAuthToken string
	logger         logger.Logger
}

func NewWebhookHandler(ingest interfaces.IngestService, glovoAuthToken string, lgr logger.Logger) *WebhookHandler {
	return &WebhookHandler{ingest: ingest, glovoAuthToken: glovoAuthToken, logger: lgr}
}

// Glovo receives the platform's order webhook. The shared secret arrives in
// the Authorization header, sometimes with a Bearer prefix.
// POST /webhooks/glovo
func (h *WebhookHandler) Glovo(w http.ResponseWriter, r *http.Request) {
	if h.glovoAuthToken != "" {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.Contains(auth, h.glovoAuthToken) {
			respondJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
			return
		}
	}
	h.handle(w, r, "glovo")
}

// Partner receives the generic delivery-partner webhook.
// POST /webhooks/partner
func (h *WebhookHandler) Partner(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "partner")
}

func (h *WebhookHandler) handle(w http.ResponseWriter, r *http.Request, source string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.ingest.Ingest(r.Context(), source, body)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message":      "Order processed successfully",
		"order_number": order.OrderNumber,
	})
}
