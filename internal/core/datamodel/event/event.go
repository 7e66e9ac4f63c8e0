package event

import "time"

// Event is the persistence model for leave and remote-work events.
type Event struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	UserID           string    `json:"user_id" gorm:"column:user_id;not null"`
	Date             time.Time `json:"date" gorm:"column:date;not null"`
	EventType        string    `json:"event_type" gorm:"column:event_type;not null"`
	EventStatus      string    `json:"event_status" gorm:"column:event_status;default:Pending"`
	EventDescription *string   `json:"event_description,omitempty" gorm:"column:event_description"`
	CreatedAt        time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (Event) TableName() string {
	return "events"
}
