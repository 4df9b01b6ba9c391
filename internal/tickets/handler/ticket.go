package handler

import (
	"encoding/json"
	"net/http"

	"paysim/internal/tickets/service"
	"paysim/internal/tickets/validator"
	apperrors "paysim/pkg/errors"
	httputil "paysim/pkg/http"
	"paysim/pkg/logger"
	"paysim/pkg/middleware"
	"paysim/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	GeneratePath = "/api/ticket/generate"
	GetByIDPath  = "/api/ticket/id/:id"

	// FailureBody is what a forced failure answers with.
	FailureBody = "error"
)

type TicketHandler struct {
	service    service.TicketService
	validator  *validator.TicketValidator
	secret     []byte
	failStatus int
	log        *logger.Logger
}

func NewTicketHandler(svc service.TicketService, v *validator.TicketValidator, secret []byte, log *logger.Logger) *TicketHandler {
	return &TicketHandler{
		service:   svc,
		validator: v,
		secret:    secret,
		log:       log,
	}
}

// FailWith makes every generate call answer status with a plain text body,
// for exercising the gateway's failure path. Zero disables it.
func (h *TicketHandler) FailWith(status int) *TicketHandler {
	h.failStatus = status
	return h
}

func (h *TicketHandler) Generate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if h.failStatus != 0 {
		h.log.Warn("Forced failure answering ticket generation", "status", h.failStatus)
		if err := httputil.WriteText(w, h.failStatus, FailureBody); err != nil {
			h.log.Error("failed to write response", "handler", "Generate", logger.Err(err))
		}
		return
	}

	var req model.GenerateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Generate", apperrors.InvalidInput("invalid JSON body"))
		return
	}

	if err := h.validator.ValidateGenerateRequest(&req); err != nil {
		h.writeError(w, "Generate", err)
		return
	}

	ticket, err := h.service.Generate(r.Context(), req.ClientToken)
	if err != nil {
		h.writeError(w, "Generate", err)
		return
	}

	if err := httputil.WriteSuccess(w, ticket); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Generate", logger.Err(err))
	}
}

func (h *TicketHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ticket, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, ticket); err != nil {
		h.log.Error("failed to write JSON response", "handler", "GetByID", logger.Err(err))
	}
}

func (h *TicketHandler) writeError(w http.ResponseWriter, handler string, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.log.Error("request failed", "handler", handler, logger.Err(err))
	} else {
		h.log.Info("request rejected", "handler", handler, "code", appErr.Code, "message", appErr.Message)
	}

	if writeErr := apperrors.WriteError(w, appErr); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, logger.Err(writeErr))
	}
}

func (h *TicketHandler) RegisterRoutes(router *httprouter.Router) {
	auth := middleware.ServiceAuth(h.secret, h.log)
	jsonOnly := middleware.ContentTypeValidation(h.log)

	router.Handler(http.MethodPost, GeneratePath, auth(jsonOnly(withParams(h.Generate))))
	router.Handler(http.MethodGet, GetByIDPath, auth(withParams(h.GetByID)))
}

// withParams adapts an httprouter.Handle so it can sit behind plain
// http.Handler middleware.
func withParams(handle httprouter.Handle) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handle(w, r, httprouter.ParamsFromContext(r.Context()))
	})
}
