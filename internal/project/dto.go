package project

import (
	"errors"

	"github.com/frahmantamala/workforce-management/internal/auth"
)

// CreateProjectDTO represents the request payload for creating a project
type CreateProjectDTO struct {
	Name                string `json:"name"`
	ReferringEmployeeID string `json:"referring_employee_id"`
}

// Validate validates the CreateProjectDTO
func (dto CreateProjectDTO) Validate() error {
	if dto.ReferringEmployeeID == "" {
		return errors.New("referring_employee_id is required")
	}
	return nil
}

// CreateProjectResponse carries the stored project together with its
// referring employee, password never included.
type CreateProjectResponse struct {
	Project           *Project   `json:"project"`
	ReferringEmployee *auth.User `json:"referring_employee"`
}
