package assign_consultant

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bontle/BB-BookingService/internal/api/handlers"
	"github.com/bontle/BB-BookingService/internal/api/middleware"
	"github.com/bontle/BB-BookingService/internal/service/bookings"
)

// Request тело запроса на назначение консультанта
type Request struct {
	ConsultantID int64 `json:"consultant_id"`
}

// Handler HTTP обработчик назначения консультанта
type Handler struct {
	service BookingService
	logger  Logger
}

// NewHandler создает новый обработчик
func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle обрабатывает POST /bookings/{bookingID}/consultant
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

	err := h.service.AssignConsultant(r.Context(), mux.Vars(r)["bookingID"], req.ConsultantID, actor)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, err.Error())
		case errors.Is(err, bookings.ErrUnauthorized):
			handlers.RespondForbidden(w, err.Error())
		case errors.Is(err, bookings.ErrConsultantUnavailable):
			handlers.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			h.logger.Error("AssignConsultant handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
