package purge_history

import (
	"errors"
	"net/http"
	"time"

	"github.com/bontle/BB-BookingService/internal/api/handlers"
	"github.com/bontle/BB-BookingService/internal/api/middleware"
	usecase "github.com/bontle/BB-BookingService/internal/usecase/purge_history"
)

// Request тело запроса на очистку истории
type Request struct {
	OlderThanDays int `json:"older_than_days"`
}

// Response тело ответа с результатом очистки. Счётчики aged_* покрывают
// только строки старше cutoff, удалённые напрямую (без каскадных)
type Response struct {
	Cutoff           time.Time `json:"cutoff"`
	DeletedBookings  int64     `json:"deleted_bookings"`
	DeletedEvents    int64     `json:"deleted_aged_events"`
	DeletedFeedback  int64     `json:"deleted_aged_feedback"`
	DeletedIncidents int64     `json:"deleted_aged_incidents"`
}

// Handler HTTP обработчик retention purge
type Handler struct {
	useCase UseCase
	logger  Logger
}

// NewHandler создает новый обработчик
func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// Handle обрабатывает POST /admin/purge
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing actor")
		return
	}

	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, "invalid JSON body")
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &usecase.Request{
		OlderThanDays: req.OlderThanDays,
		Actor:         actor,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput),
			errors.Is(err, usecase.ErrRetentionTooShort):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrUnauthorized):
			handlers.RespondForbidden(w, err.Error())
		default:
			h.logger.Error("PurgeHistory handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		Cutoff:           resp.Cutoff,
		DeletedBookings:  resp.DeletedBookings,
		DeletedEvents:    resp.DeletedEvents,
		DeletedFeedback:  resp.DeletedFeedback,
		DeletedIncidents: resp.DeletedIncidents,
	})
}
