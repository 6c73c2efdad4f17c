package submit_feedback

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/bontle/BB-BookingService/internal/api/handlers"
	"github.com/bontle/BB-BookingService/internal/service/bookings"
)

// Request тело запроса на отзыв
type Request struct {
	CustomerChatID string  `json:"customer_chat_id"`
	Rating         int     `json:"rating"`
	Comment        *string `json:"comment,omitempty"`
}

// Response тело ответа с сохранённым отзывом
type Response struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// Handler HTTP обработчик отзывов клиентов
type Handler struct {
	service BookingService
	logger  Logger
}

// NewHandler создает новый обработчик
func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle обрабатывает POST /bookings/{bookingID}/feedback
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, "invalid JSON body")
		return
	}

	fb, err := h.service.SubmitFeedback(r.Context(), &bookings.FeedbackRequest{
		BookingID:      mux.Vars(r)["bookingID"],
		CustomerChatID: req.CustomerChatID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, bookings.ErrBookingNotFound),
			errors.Is(err, bookings.ErrCustomerNotFound):
			handlers.RespondNotFound(w, err.Error())
		case errors.Is(err, bookings.ErrFeedbackNotAllowed):
			handlers.RespondError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			h.logger.Error("SubmitFeedback handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, Response{
		ID:        fb.ID,
		BookingID: fb.BookingID,
		Rating:    fb.Rating,
		CreatedAt: fb.CreatedAt,
	})
}
