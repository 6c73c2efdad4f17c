package catalog

import "github.com/bontle/BB-BookingService/internal/domain"

// StoreResponse JSON представление магазина
type StoreResponse struct {
	ID     int64  `json:"id"`
	Brand  string `json:"brand"`
	Region string `json:"region"`
	Name   string `json:"name"`
	City   string `json:"city"`
}

// ServiceResponse JSON представление услуги
type ServiceResponse struct {
	ID              int64  `json:"id"`
	StoreID         int64  `json:"store_id"`
	Category        string `json:"category"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int    `json:"price_cents"`
}

// ConsultantResponse JSON представление консультанта
type ConsultantResponse struct {
	ID      int64  `json:"id"`
	StoreID int64  `json:"store_id"`
	Name    string `json:"name"`
}

func toStoreResponses(stores []*domain.Store) []StoreResponse {
	out := make([]StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, StoreResponse{
			ID:     s.ID,
			Brand:  s.Brand,
			Region: s.Region,
			Name:   s.Name,
			City:   s.City,
		})
	}
	return out
}

func toServiceResponses(services []*domain.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceResponse{
			ID:              s.ID,
			StoreID:         s.StoreID,
			Category:        s.Category,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			PriceCents:      s.PriceCents,
		})
	}
	return out
}

func toConsultantResponses(consultants []*domain.Consultant) []ConsultantResponse {
	out := make([]ConsultantResponse, 0, len(consultants))
	for _, c := range consultants {
		out = append(out, ConsultantResponse{ID: c.ID, StoreID: c.StoreID, Name: c.Name})
	}
	return out
}
