package event

import (
	"time"

	eventDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/event"
)

// EventType distinguishes the two kinds of declared absence.
type EventType string

const (
	EventTypeRemoteWork EventType = "RemoteWork"
	EventTypePaidLeave  EventType = "PaidLeave"
)

func KnownEventType(t EventType) bool {
	return t == EventTypeRemoteWork || t == EventTypePaidLeave
}

// EventStatus tracks an event through its lifecycle. Remote work is accepted
// on creation, paid leave starts pending and must be validated or declined.
type EventStatus string

const (
	EventStatusPending  EventStatus = "Pending"
	EventStatusAccepted EventStatus = "Accepted"
	EventStatusDeclined EventStatus = "Declined"
)

// Event is a single-day leave or remote-work declaration.
type Event struct {
	ID               string      `json:"id"`
	UserID           string      `json:"user_id"`
	Date             time.Time   `json:"date"`
	EventType        EventType   `json:"event_type"`
	EventStatus      EventStatus `json:"event_status"`
	EventDescription *string     `json:"event_description,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// IsFinalized reports whether the event reached a terminal status. Accepted
// and declined events can never change status again.
func (e *Event) IsFinalized() bool {
	return e.EventStatus == EventStatusAccepted || e.EventStatus == EventStatusDeclined
}

// InitialStatus returns the status a fresh event of the given type carries.
// Remote work needs no approval, paid leave does.
func InitialStatus(t EventType) EventStatus {
	if t == EventTypeRemoteWork {
		return EventStatusAccepted
	}
	return EventStatusPending
}

func ToDataModel(e *Event) *eventDatamodel.Event {
	return &eventDatamodel.Event{
		ID:               e.ID,
		UserID:           e.UserID,
		Date:             e.Date,
		EventType:        string(e.EventType),
		EventStatus:      string(e.EventStatus),
		EventDescription: e.EventDescription,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func FromDataModel(e *eventDatamodel.Event) *Event {
	return &Event{
		ID:               e.ID,
		UserID:           e.UserID,
		Date:             e.Date,
		EventType:        EventType(e.EventType),
		EventStatus:      EventStatus(e.EventStatus),
		EventDescription: e.EventDescription,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func FromDataModelSlice(events []*eventDatamodel.Event) []*Event {
	result := make([]*Event, len(events))
	for i, e := range events {
		result[i] = FromDataModel(e)
	}
	return result
}
