package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCartItemAdded   EventType = "cart.item_added"
	EventCartItemRemoved EventType = "cart.item_removed"
	EventQuizCompleted   EventType = "quiz.completed"
)

// Event — аналитическое событие витрины.
type Event struct {
	ID         string
	Type       EventType
	SessionID  string
	OccurredAt time.Time
	Payload    map[string]any
}

func NewEvent(eventType EventType, sessionID string, payload map[string]any) *Event {
	return &Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		SessionID:  sessionID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}
