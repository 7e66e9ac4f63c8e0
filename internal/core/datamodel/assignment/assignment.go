package assignment

import "time"

// ProjectAssignment is the persistence model for the project_users table,
// placing one employee on one project over a closed date interval.
type ProjectAssignment struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	ProjectID string    `json:"project_id" gorm:"column:project_id;not null"`
	UserID    string    `json:"user_id" gorm:"column:user_id;not null"`
	StartDate time.Time `json:"start_date" gorm:"column:start_date;not null"`
	EndDate   time.Time `json:"end_date" gorm:"column:end_date;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (ProjectAssignment) TableName() string {
	return "project_users"
}
