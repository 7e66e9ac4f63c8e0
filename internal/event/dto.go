package event

import (
	"errors"
	"time"
)

// CreateEventDTO represents the request payload for declaring an event
type CreateEventDTO struct {
	Date             time.Time `json:"date"`
	EventType        EventType `json:"event_type"`
	EventDescription *string   `json:"event_description,omitempty"`
}

// Validate validates the CreateEventDTO
func (dto CreateEventDTO) Validate() error {
	if dto.Date.IsZero() {
		return errors.New("date is required")
	}
	if !KnownEventType(dto.EventType) {
		return errors.New("event_type must be RemoteWork or PaidLeave")
	}
	return nil
}
