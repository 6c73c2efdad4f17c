package domain

import "time"

// ConversationState holds a chat customer's multi-step booking flow state,
// keyed by the external chat id. It replaces any process-local session memory:
// every bot step reads and writes this record explicitly.
type ConversationState struct {
	ChatID      string
	Step        string
	PayloadJSON string // Accumulated flow selections as JSON
	ExpiresAt   time.Time
	UpdatedAt   time.Time
}

// IsExpired reports whether the state should be treated as absent
func (c *ConversationState) IsExpired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}
