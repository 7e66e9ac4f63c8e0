package project

// Project is the persistence model for projects.
type Project struct {
	ID                  string `json:"id" gorm:"primaryKey"`
	Name                string `json:"name" gorm:"not null"`
	ReferringEmployeeID string `json:"referring_employee_id" gorm:"column:referring_employee_id;not null"`
}

// TableName returns the table name for GORM
func (Project) TableName() string {
	return "projects"
}
