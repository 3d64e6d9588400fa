package stats

import (
	"encoding/json"
	"net/http"

	"quizmaster/internal/apperr"
	"quizmaster/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) UserDashboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, apperr.Message(apperr.ErrUnauthenticated), http.StatusUnauthorized)
		return
	}

	dash, err := h.service.UserDashboard(identity.UserID)
	if err != nil {
		http.Error(w, apperr.Message(err), apperr.HTTPStatus(err))
		return
	}
	json.NewEncoder(w).Encode(dash)
}

func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.service.AdminDashboard()
	if err != nil {
		http.Error(w, apperr.Message(err), apperr.HTTPStatus(err))
		return
	}
	json.NewEncoder(w).Encode(dash)
}
