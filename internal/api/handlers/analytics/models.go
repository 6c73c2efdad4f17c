package analytics

import "github.com/bontle/BB-BookingService/internal/domain"

// DailySummaryResponse JSON представление итогов дня
type DailySummaryResponse struct {
	StoreID   int64  `json:"store_id"`
	Day       string `json:"day"`
	Bookings  int64  `json:"bookings"`
	Completed int64  `json:"completed"`
	NoShow    int64  `json:"no_show"`
	Cancelled int64  `json:"cancelled"`
}

// PeakHourResponse JSON представление часового распределения
type PeakHourResponse struct {
	Hour     int   `json:"hour"`
	Bookings int64 `json:"bookings"`
}

// ServiceMixResponse JSON представление распределения по услугам
type ServiceMixResponse struct {
	Category    string `json:"category"`
	ServiceName string `json:"service_name"`
	Bookings    int64  `json:"bookings"`
	ValueCents  int64  `json:"value_cents"`
}

// ConsultantPerformanceResponse JSON представление показателей консультанта
type ConsultantPerformanceResponse struct {
	ConsultantID int64 `json:"consultant_id"`
	Bookings     int64 `json:"bookings"`
	Completed    int64 `json:"completed"`
	NoShow       int64 `json:"no_show"`
}

// IncidentRateResponse JSON представление отношения инцидентов к бронированиям
type IncidentRateResponse struct {
	Day             string  `json:"day"`
	Incidents       int64   `json:"incidents"`
	Bookings        int64   `json:"bookings"`
	IncidentsPer100 float64 `json:"incidents_per_100"`
}

func toDailySummaryResponse(s *domain.DailySummary) DailySummaryResponse {
	return DailySummaryResponse{
		StoreID:   s.StoreID,
		Day:       s.Day.Format(domain.DateFormat),
		Bookings:  s.Bookings,
		Completed: s.Completed,
		NoShow:    s.NoShow,
		Cancelled: s.Cancelled,
	}
}
