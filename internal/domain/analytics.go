package domain

import "time"

// DailySummary is the per-store booking outcome count for one day
type DailySummary struct {
	StoreID   int64
	Day       time.Time
	Bookings  int64
	Completed int64
	NoShow    int64
	Cancelled int64
}

// PeakHourBucket is the booking count for one hour of day
type PeakHourBucket struct {
	Hour     int // 0..23, store-local
	Bookings int64
}

// ServiceMixRow aggregates bookings per service
type ServiceMixRow struct {
	Category    string
	ServiceName string
	Bookings    int64
	ValueCents  int64
}

// ConsultantPerformanceRow aggregates bookings per consultant
type ConsultantPerformanceRow struct {
	ConsultantID int64
	Bookings     int64
	Completed    int64
	NoShow       int64
}

// IncidentRateRow relates incidents to bookings per day
type IncidentRateRow struct {
	Day             time.Time
	Incidents       int64
	Bookings        int64
	IncidentsPer100 float64
}
