package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bontle/BB-BookingService/internal/api/handlers"
	"github.com/bontle/BB-BookingService/internal/api/middleware"
	"github.com/bontle/BB-BookingService/internal/service/bookings"
)

// Handler HTTP обработчик чтения бронирований и их журнала
type Handler struct {
	service BookingService
	logger  Logger
}

// NewHandler создает новый обработчик
func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// HandleByID обрабатывает GET /bookings/{bookingID}
func (h *Handler) HandleByID(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing actor")
		return
	}

	booking, err := h.service.GetByID(r.Context(), mux.Vars(r)["bookingID"], actor)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.ToBookingResponse(booking))
}

// HandleByCode обрабатывает GET /bookings/code/{code}
func (h *Handler) HandleByCode(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing actor")
		return
	}

	booking, err := h.service.GetByCode(r.Context(), mux.Vars(r)["code"], actor)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.ToBookingResponse(booking))
}

// HandleEvents обрабатывает GET /bookings/{bookingID}/events
func (h *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing actor")
		return
	}

	entries, err := h.service.Events(r.Context(), mux.Vars(r)["bookingID"], actor)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, toEventResponses(entries))
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bookings.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())
	case errors.Is(err, bookings.ErrBookingNotFound):
		handlers.RespondNotFound(w, err.Error())
	case errors.Is(err, bookings.ErrUnauthorized):
		handlers.RespondForbidden(w, err.Error())
	default:
		h.logger.Error("GetBooking handler: %v", err)
		handlers.RespondInternalError(w)
	}
}
