package get_booking

import (
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// EventResponse JSON представление записи журнала событий
type EventResponse struct {
	ID           string    `json:"id"`
	EventType    string    `json:"event_type"`
	ActorType    string    `json:"actor_type"`
	ActorStaffID *int64    `json:"actor_staff_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
	Metadata     *string   `json:"metadata,omitempty"`
}

func toEventResponses(entries []*domain.EventLogEntry) []EventResponse {
	out := make([]EventResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, EventResponse{
			ID:           e.ID,
			EventType:    string(e.EventType),
			ActorType:    string(e.ActorType),
			ActorStaffID: e.ActorStaffID,
			OccurredAt:   e.OccurredAt,
			Metadata:     e.MetadataJSON,
		})
	}
	return out
}
