package create_booking

import (
	"errors"
	"net/http"

	"github.com/bontle/BB-BookingService/internal/api/handlers"
	"github.com/bontle/BB-BookingService/internal/domain"
	usecase "github.com/bontle/BB-BookingService/internal/usecase/create_booking"
)

// Handler HTTP обработчик создания бронирования
type Handler struct {
	useCase UseCase
	logger  Logger
}

// NewHandler создает новый обработчик
func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// Handle обрабатывает POST /bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, "invalid JSON body")
		return
	}

	channel := req.Channel
	if channel == "" {
		channel = domain.ChannelTelegram
	}

	resp, err := h.useCase.Execute(r.Context(), &usecase.Request{
		StoreID:           req.StoreID,
		ServiceID:         req.ServiceID,
		ConsultantID:      req.ConsultantID,
		StationID:         req.StationID,
		CustomerChatID:    req.CustomerChatID,
		CustomerFirstName: req.CustomerFirstName,
		StartAt:           req.StartAt,
		Channel:           channel,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrStoreNotFound),
			errors.Is(err, usecase.ErrServiceNotFound):
			handlers.RespondNotFound(w, err.Error())
		case errors.Is(err, usecase.ErrStoreInactive),
			errors.Is(err, usecase.ErrServiceInactive),
			errors.Is(err, usecase.ErrConsultantUnavailable):
			handlers.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, usecase.ErrSlotNotAvailable),
			errors.Is(err, usecase.ErrConcurrencyConflict):
			// 409 в обоих случаях: клиент перечитывает слоты и пробует снова
			handlers.RespondConflict(w, err.Error())
		default:
			h.logger.Error("CreateBooking handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, toResponse(resp.Booking))
}
