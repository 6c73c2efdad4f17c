package domain

// Scheduling constants
const (
	// SlotStepMinutes фиксированный шаг генерации слотов
	SlotStepMinutes = 30

	// DefaultPurgeAgeDays возраст по умолчанию для retention purge
	DefaultPurgeAgeDays = 90
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MinFeedbackRating         = 1
	MaxFeedbackRating         = 5
	MaxIncidentNoteLength     = 1000
	MaxFeedbackCommentLength  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
