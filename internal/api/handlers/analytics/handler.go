package analytics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bontle/BB-BookingService/internal/api/handlers"
	"github.com/bontle/BB-BookingService/internal/api/middleware"
	"github.com/bontle/BB-BookingService/internal/domain"
	analyticsService "github.com/bontle/BB-BookingService/internal/service/analytics"
)

// Handler HTTP обработчики отчётов по магазину
type Handler struct {
	service AnalyticsService
	logger  Logger
}

// NewHandler создает новый обработчик
func NewHandler(service AnalyticsService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// HandleDailySummary обрабатывает GET /stores/{storeID}/analytics/daily?day=
func (h *Handler) HandleDailySummary(w http.ResponseWriter, r *http.Request) {
	actor, storeID, ok := h.requireActorAndStore(w, r)
	if !ok {
		return
	}

	day, err := time.Parse(domain.DateFormat, r.URL.Query().Get("day"))
	if err != nil {
		handlers.RespondBadRequest(w, "invalid or missing day, expected YYYY-MM-DD")
		return
	}

	summary, err := h.service.DailySummary(r.Context(), storeID, day, actor)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, toDailySummaryResponse(summary))
}

// HandlePeakHours обрабатывает GET /stores/{storeID}/analytics/peak-hours?from=&to=
func (h *Handler) HandlePeakHours(w http.ResponseWriter, r *http.Request) {
	actor, storeID, ok := h.requireActorAndStore(w, r)
	if !ok {
		return
	}
	period, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}

	buckets, err := h.service.PeakHours(r.Context(), storeID, period, actor)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	out := make([]PeakHourResponse, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, PeakHourResponse{Hour: b.Hour, Bookings: b.Bookings})
	}
	handlers.RespondJSON(w, http.StatusOK, out)
}

// HandleServiceMix обрабатывает GET /stores/{storeID}/analytics/service-mix?from=&to=
func (h *Handler) HandleServiceMix(w http.ResponseWriter, r *http.Request) {
	actor, storeID, ok := h.requireActorAndStore(w, r)
	if !ok {
		return
	}
	period, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}

	rows, err := h.service.ServiceMix(r.Context(), storeID, period, actor)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	out := make([]ServiceMixResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, ServiceMixResponse{
			Category:    row.Category,
			ServiceName: row.ServiceName,
			Bookings:    row.Bookings,
			ValueCents:  row.ValueCents,
		})
	}
	handlers.RespondJSON(w, http.StatusOK, out)
}

// HandleConsultantPerformance обрабатывает GET /stores/{storeID}/analytics/consultants?from=&to=
func (h *Handler) HandleConsultantPerformance(w http.ResponseWriter, r *http.Request) {
	actor, storeID, ok := h.requireActorAndStore(w, r)
	if !ok {
		return
	}
	period, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}

	rows, err := h.service.ConsultantPerformance(r.Context(), storeID, period, actor)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	out := make([]ConsultantPerformanceResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, ConsultantPerformanceResponse{
			ConsultantID: row.ConsultantID,
			Bookings:     row.Bookings,
			Completed:    row.Completed,
			NoShow:       row.NoShow,
		})
	}
	handlers.RespondJSON(w, http.StatusOK, out)
}

// HandleIncidentRate обрабатывает GET /stores/{storeID}/analytics/incident-rate?from=&to=
func (h *Handler) HandleIncidentRate(w http.ResponseWriter, r *http.Request) {
	actor, storeID, ok := h.requireActorAndStore(w, r)
	if !ok {
		return
	}
	period, ok := h.parsePeriod(w, r)
	if !ok {
		return
	}

	rows, err := h.service.IncidentRate(r.Context(), storeID, period, actor)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	out := make([]IncidentRateResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, IncidentRateResponse{
			Day:             row.Day.Format(domain.DateFormat),
			Incidents:       row.Incidents,
			Bookings:        row.Bookings,
			IncidentsPer100: row.IncidentsPer100,
		})
	}
	handlers.RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) requireActorAndStore(w http.ResponseWriter, r *http.Request) (domain.Actor, int64, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing actor")
		return domain.Actor{}, 0, false
	}

	storeID, err := strconv.ParseInt(mux.Vars(r)["storeID"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, "invalid store id")
		return domain.Actor{}, 0, false
	}

	return actor, storeID, true
}

// parsePeriod читает границы периода [from, to); to - эксклюзивная дата
func (h *Handler) parsePeriod(w http.ResponseWriter, r *http.Request) (analyticsService.Period, bool) {
	from, err := time.Parse(domain.DateFormat, r.URL.Query().Get("from"))
	if err != nil {
		handlers.RespondBadRequest(w, "invalid or missing from, expected YYYY-MM-DD")
		return analyticsService.Period{}, false
	}

	to, err := time.Parse(domain.DateFormat, r.URL.Query().Get("to"))
	if err != nil {
		handlers.RespondBadRequest(w, "invalid or missing to, expected YYYY-MM-DD")
		return analyticsService.Period{}, false
	}

	return analyticsService.Period{From: from, To: to}, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analyticsService.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())
	case errors.Is(err, analyticsService.ErrUnauthorized):
		handlers.RespondForbidden(w, err.Error())
	default:
		h.logger.Error("Analytics handler: %v", err)
		handlers.RespondInternalError(w)
	}
}
