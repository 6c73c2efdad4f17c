package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bontle/BB-BookingService/internal/api/handlers"
	"github.com/bontle/BB-BookingService/internal/api/middleware"
	"github.com/bontle/BB-BookingService/internal/domain"
	usecase "github.com/bontle/BB-BookingService/internal/usecase/update_booking_status"
)

// Handler HTTP обработчик смены статуса бронирования
type Handler struct {
	useCase UseCase
	logger  Logger
}

// NewHandler создает новый обработчик
func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// Handle обрабатывает POST /bookings/{bookingID}/status
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
		BookingID: mux.Vars(r)["bookingID"],
		Target:    domain.BookingStatus(req.Status),
		Actor:     actor,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrBookingNotFound):
			handlers.RespondNotFound(w, err.Error())
		case errors.Is(err, usecase.ErrUnauthorized):
			handlers.RespondForbidden(w, err.Error())
		case errors.Is(err, usecase.ErrInvalidTransition):
			// 409: текущий статус не допускает запрошенный переход
			handlers.RespondConflict(w, err.Error())
		default:
			h.logger.Error("UpdateBookingStatus handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		BookingID: resp.BookingID,
		Previous:  string(resp.Previous),
		Status:    string(resp.Status),
	})
}
