package events

import (
	"time"

	"github.com/CaioVictor3/Bus-Manager-App/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionChanged   EventType = "session_changed"
	EventStudentAdded     EventType = "student_added"
	EventStudentUpdated   EventType = "student_updated"
	EventStudentDeleted   EventType = "student_deleted"
	EventPresenceToggled  EventType = "presence_toggled"
	EventRouteSettingsSet EventType = "route_settings_set"
)

// Event represents a store-change notification emitted after a mutation
// has been durably persisted and committed to memory. Presentation
// layers subscribe to these and re-read store state.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// SessionChangedPayload payload.
type SessionChangedPayload struct {
	Authenticated bool    `json:"authenticated"`
	UserID        *string `json:"user_id,omitempty"`
}

// StudentPayload payload for add/update/delete/toggle events.
type StudentPayload struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name,omitempty"`
	IsPresent *bool  `json:"is_present,omitempty"`
}

// RouteSettingsPayload payload.
type RouteSettingsPayload struct {
	StartCEP string `json:"start_cep"`
	EndCEP   string `json:"end_cep"`
}

// NewSessionChanged builds a session event from the current user state.
func NewSessionChanged(id string, user *domain.User) Event {
	payload := SessionChangedPayload{Authenticated: user != nil}
	if user != nil {
		payload.UserID = &user.ID
	}
	return Event{ID: id, Type: EventSessionChanged, Timestamp: time.Now(), Payload: payload}
}
