package log_incident

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/bontle/BB-BookingService/internal/api/handlers"
	"github.com/bontle/BB-BookingService/internal/api/middleware"
	"github.com/bontle/BB-BookingService/internal/service/bookings"
)

// Request тело запроса на регистрацию инцидента
type Request struct {
	Category string `json:"category"`
	Severity string `json:"severity"`
	Note     string `json:"note"`
}

// Response тело ответа с созданным инцидентом
type Response struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	Category  string    `json:"category"`
	Severity  string    `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

// Handler HTTP обработчик регистрации инцидентов
type Handler struct {
	service BookingService
	logger  Logger
}

// NewHandler создает новый обработчик
func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle обрабатывает POST /bookings/{bookingID}/incidents
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

	incident, err := h.service.LogIncident(r.Context(), &bookings.IncidentRequest{
		BookingID: mux.Vars(r)["bookingID"],
		Category:  req.Category,
		Severity:  req.Severity,
		Note:      req.Note,
		Actor:     actor,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, err.Error())
		case errors.Is(err, bookings.ErrUnauthorized):
			handlers.RespondForbidden(w, err.Error())
		default:
			h.logger.Error("LogIncident handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, Response{
		ID:        incident.ID,
		BookingID: incident.BookingID,
		Category:  incident.Category,
		Severity:  incident.Severity,
		CreatedAt: incident.CreatedAt,
	})
}
