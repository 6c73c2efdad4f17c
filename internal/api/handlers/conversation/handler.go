package conversation

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/bontle/BB-BookingService/internal/api/handlers"
	conversationService "github.com/bontle/BB-BookingService/internal/service/conversation"
)

// Handler HTTP обработчики состояний многошаговых диалогов чат-бота
type Handler struct {
	service ConversationService
	logger  Logger
}

// NewHandler создает новый обработчик
func NewHandler(service ConversationService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// HandleGet обрабатывает GET /conversations/{chatID}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Get(r.Context(), mux.Vars(r)["chatID"])
	if err != nil {
		switch {
		case errors.Is(err, conversationService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, conversationService.ErrStateNotFound):
			handlers.RespondNotFound(w, err.Error())
		default:
			h.logger.Error("Conversation handler: get: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, StateResponse{
		ChatID:    state.ChatID,
		Step:      state.Step,
		Payload:   state.PayloadJSON,
		ExpiresAt: state.ExpiresAt.Format(time.RFC3339),
		UpdatedAt: state.UpdatedAt.Format(time.RFC3339),
	})
}

// HandleSave обрабатывает PUT /conversations/{chatID}
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, "invalid request body")
		return
	}

	err := h.service.Save(r.Context(), mux.Vars(r)["chatID"], req.Step, req.Payload)
	if err != nil {
		switch {
		case errors.Is(err, conversationService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("Conversation handler: save: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleClear обрабатывает DELETE /conversations/{chatID}
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	err := h.service.Clear(r.Context(), mux.Vars(r)["chatID"])
	if err != nil {
		switch {
		case errors.Is(err, conversationService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("Conversation handler: clear: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
