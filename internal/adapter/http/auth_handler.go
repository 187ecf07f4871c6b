package http

import (
	"encoding/json"
	"net/http"

	"github.com/ukemeuu/mani24-kds/internal/adapter/logger"
	"github.com/ukemeuu/mani24-kds/internal/domain"
	"github.com/ukemeuu/mani24-kds/internal/interfaces"
)

type AuthHandler struct {
	service interfaces.AuthService
	logger  logger.Logger
}

func NewAuthHandler(service interfaces.AuthService, lgr logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: lgr}
}

type loginRequest struct {
	Role string `json:"role"`
	PIN  string `json:"pin"`
}

type loginResponse struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if len(req.PIN) != 4 {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "pin must be 4 digits"})
		return
	}

	user, err := h.service.Login(r.Context(), role, req.PIN)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{ID: user.ID, Name: user.Name, Role: user.Role})
}
