package get_today_queue

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bontle/BB-BookingService/internal/api/handlers"
	"github.com/bontle/BB-BookingService/internal/api/middleware"
	"github.com/bontle/BB-BookingService/internal/service/bookings"
)

// Handler HTTP обработчик очереди магазина на сегодня
type Handler struct {
	service BookingService
	logger  Logger
}

// NewHandler создает новый обработчик
func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle обрабатывает GET /stores/{storeID}/queue
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing actor")
		return
	}

	storeID, err := strconv.ParseInt(mux.Vars(r)["storeID"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, "invalid store id")
		return
	}

	queue, err := h.service.TodayQueue(r.Context(), storeID, actor)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, bookings.ErrUnauthorized):
			handlers.RespondForbidden(w, err.Error())
		default:
			h.logger.Error("GetTodayQueue handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.ToBookingResponses(queue))
}
