package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bontle/BB-BookingService/internal/api/handlers"
	"github.com/bontle/BB-BookingService/internal/domain"
	usecase "github.com/bontle/BB-BookingService/internal/usecase/get_available_slots"
)

// Handler HTTP обработчик получения доступных слотов
type Handler struct {
	useCase UseCase
	logger  Logger
}

// NewHandler создает новый обработчик
func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// Handle обрабатывает GET /stores/{storeID}/slots?service_id=&date=&consultant_id=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(mux.Vars(r)["storeID"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, "invalid store id")
		return
	}

	serviceID, err := strconv.ParseInt(r.URL.Query().Get("service_id"), 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, "invalid or missing service_id")
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, "invalid or missing date, expected YYYY-MM-DD")
		return
	}

	var consultantID *int64
	if raw := r.URL.Query().Get("consultant_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, "invalid consultant_id")
			return
		}
		consultantID = &id
	}

	resp, err := h.useCase.Execute(r.Context(), &usecase.Request{
		StoreID:      storeID,
		ServiceID:    serviceID,
		Date:         date,
		ConsultantID: consultantID,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("GetAvailableSlots handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		StoreID:      resp.StoreID,
		ServiceID:    resp.ServiceID,
		Date:         resp.Date.Format(domain.DateFormat),
		ConsultantID: resp.ConsultantID,
		Times:        resp.Times,
	})
}
