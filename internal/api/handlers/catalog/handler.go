package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bontle/BB-BookingService/internal/api/handlers"
	catalogService "github.com/bontle/BB-BookingService/internal/service/catalog"
)

// Handler HTTP обработчики каталога: магазины, услуги, категории, консультанты
type Handler struct {
	service CatalogService
	logger  Logger
}

// NewHandler создает новый обработчик
func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// HandleListStores обрабатывает GET /stores
func (h *Handler) HandleListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.ListStores(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, toStoreResponses(stores))
}

// HandleListServices обрабатывает GET /stores/{storeID}/services?category=&q=&limit=&offset=
func (h *Handler) HandleListServices(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(mux.Vars(r)["storeID"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, "invalid store id")
		return
	}

	q := &catalogService.ServicesQuery{StoreID: storeID}

	query := r.URL.Query()
	if category := query.Get("category"); category != "" {
		q.Category = &category
	}
	if name := query.Get("q"); name != "" {
		q.NameQuery = &name
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, "invalid limit")
			return
		}
		q.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, "invalid offset")
			return
		}
		q.Offset = offset
	}

	services, err := h.service.ListServices(r.Context(), q)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, toServiceResponses(services))
}

// HandleListCategories обрабатывает GET /stores/{storeID}/categories
func (h *Handler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(mux.Vars(r)["storeID"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, "invalid store id")
		return
	}

	categories, err := h.service.ListServiceCategories(r.Context(), storeID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, categories)
}

// HandleListConsultants обрабатывает GET /stores/{storeID}/consultants
func (h *Handler) HandleListConsultants(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(mux.Vars(r)["storeID"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, "invalid store id")
		return
	}

	consultants, err := h.service.ListConsultants(r.Context(), storeID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, toConsultantResponses(consultants))
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalogService.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())
	case errors.Is(err, catalogService.ErrStoreNotFound),
		errors.Is(err, catalogService.ErrServiceNotFound):
		handlers.RespondNotFound(w, err.Error())
	default:
		h.logger.Error("Catalog handler: %v", err)
		handlers.RespondInternalError(w)
	}
}
