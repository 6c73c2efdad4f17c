package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bontle/BB-BookingService/internal/api/handlers"
	usecase "github.com/bontle/BB-BookingService/internal/usecase/reschedule_booking"
)

// Handler HTTP обработчик переноса бронирования
type Handler struct {
	useCase UseCase
	logger  Logger
}

// NewHandler создает новый обработчик
func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// Handle обрабатывает POST /bookings/{bookingID}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, "invalid JSON body")
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &usecase.Request{
		BookingID:      mux.Vars(r)["bookingID"],
		CustomerChatID: req.CustomerChatID,
		StartAt:        req.StartAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrBookingNotFound):
			handlers.RespondNotFound(w, err.Error())
		case errors.Is(err, usecase.ErrUnauthorized):
			handlers.RespondForbidden(w, err.Error())
		case errors.Is(err, usecase.ErrNotReschedulable):
			handlers.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, usecase.ErrSlotNotAvailable),
			errors.Is(err, usecase.ErrConcurrencyConflict):
			// 409 в обоих случаях: клиент перечитывает слоты и пробует снова
			handlers.RespondConflict(w, err.Error())
		default:
			h.logger.Error("RescheduleBooking handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, toResponse(resp.Booking))
}
