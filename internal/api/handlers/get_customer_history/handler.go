package get_customer_history

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/bontle/BB-BookingService/internal/api/handlers"
	"github.com/bontle/BB-BookingService/internal/service/bookings"
)

// Handler HTTP обработчик истории бронирований клиента
type Handler struct {
	service BookingService
	logger  Logger
}

// NewHandler создает новый обработчик
func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle обрабатывает GET /customers/{chatID}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.CustomerHistory(r.Context(), mux.Vars(r)["chatID"])
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, bookings.ErrCustomerNotFound):
			handlers.RespondNotFound(w, err.Error())
		default:
			h.logger.Error("GetCustomerHistory handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.ToBookingResponses(history))
}
