package handler

import (
	"net/http"

	"paysim/internal/tickets/repository"
	httputil "paysim/pkg/http"
	"paysim/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Tickets int64  `json:"tickets"`
}

type HealthHandler struct {
	repo repository.TicketRepository
	log  *logger.Logger
}

func NewHealthHandler(repo repository.TicketRepository, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		repo: repo,
		log:  log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	count, err := h.repo.Count(r.Context())
	if err != nil {
		h.log.Error("Ticket store health check failed", logger.Err(err))
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Health", logger.Err(writeErr))
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Tickets: count,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", logger.Err(err))
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
}
