package assignment

import (
	"errors"
	"time"

	"github.com/frahmantamala/workforce-management/internal/auth"
	"github.com/frahmantamala/workforce-management/internal/project"
)

// AssignUserDTO represents the request payload for assigning a user to a project
type AssignUserDTO struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	UserID    string    `json:"user_id"`
	ProjectID string    `json:"project_id"`
}

// Validate validates the AssignUserDTO
func (dto AssignUserDTO) Validate() error {
	if dto.UserID == "" {
		return errors.New("user_id is required")
	}
	if dto.ProjectID == "" {
		return errors.New("project_id is required")
	}
	if dto.StartDate.IsZero() || dto.EndDate.IsZero() {
		return errors.New("start_date and end_date are required")
	}
	if dto.EndDate.Before(dto.StartDate) {
		return errors.New("end_date must not be before start_date")
	}
	return nil
}

// AssignResponse carries the stored assignment together with its project and
// the project's referring employee.
type AssignResponse struct {
	Assignment        *Assignment      `json:"assignment"`
	Project           *project.Project `json:"project"`
	ReferringEmployee *auth.User       `json:"referring_employee"`
}
