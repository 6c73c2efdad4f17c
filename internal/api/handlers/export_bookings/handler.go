package export_bookings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bontle/BB-BookingService/internal/api/handlers"
	"github.com/bontle/BB-BookingService/internal/api/middleware"
	"github.com/bontle/BB-BookingService/internal/domain"
	analyticsService "github.com/bontle/BB-BookingService/internal/service/analytics"
)

var csvHeader = []string{
	"booking_code",
	"store_id",
	"service_id",
	"consultant_id",
	"customer_id",
	"start_at",
	"end_at",
	"status",
	"channel",
	"created_at",
}

// Handler HTTP обработчик выгрузки бронирований в CSV
type Handler struct {
	service AnalyticsService
	logger  Logger
}

// NewHandler создает новый обработчик
func NewHandler(service AnalyticsService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle обрабатывает GET /stores/{storeID}/export?from=&to=
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

	from, err := time.Parse(domain.DateFormat, r.URL.Query().Get("from"))
	if err != nil {
		handlers.RespondBadRequest(w, "invalid or missing from, expected YYYY-MM-DD")
		return
	}
	to, err := time.Parse(domain.DateFormat, r.URL.Query().Get("to"))
	if err != nil {
		handlers.RespondBadRequest(w, "invalid or missing to, expected YYYY-MM-DD")
		return
	}

	rows, err := h.service.ExportBookings(r.Context(), storeID, analyticsService.Period{From: from, To: to}, actor)
	if err != nil {
		switch {
		case errors.Is(err, analyticsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())
		case errors.Is(err, analyticsService.ErrUnauthorized):
			handlers.RespondForbidden(w, err.Error())
		default:
			h.logger.Error("ExportBookings handler: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	filename := fmt.Sprintf("bookings_store%d_%s_%s.csv",
		storeID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		h.logger.Error("ExportBookings handler: write header: %v", err)
		return
	}

	for _, b := range rows {
		consultantID := ""
		if b.ConsultantID != nil {
			consultantID = strconv.FormatInt(*b.ConsultantID, 10)
		}

		record := []string{
			b.BookingCode,
			strconv.FormatInt(b.StoreID, 10),
			strconv.FormatInt(b.ServiceID, 10),
			consultantID,
			strconv.FormatInt(b.CustomerID, 10),
			b.ScheduledStartAt.Format(time.RFC3339),
			b.ScheduledEndAt.Format(time.RFC3339),
			string(b.Status),
			b.SourceChannel,
			b.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			h.logger.Error("ExportBookings handler: write row: %v", err)
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		h.logger.Error("ExportBookings handler: flush: %v", err)
	}
}
