package user

import (
	"regexp"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/auth"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// SignUpDTO represents the request payload for account creation. Role is
// optional and defaults to Employee.
type SignUpDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Validate validates the SignUpDTO
func (dto SignUpDTO) Validate() error {
	if len(dto.Username) < 3 {
		return internal.NewValidationError("username must contain at least 3 characters", internal.ErrCodeUsernameTooShort)
	}
	if len(dto.Password) < 8 {
		return internal.NewValidationError("password must contain at least 8 characters", internal.ErrCodePasswordTooShort)
	}
	if !emailPattern.MatchString(dto.Email) {
		return internal.NewValidationError("email must be a valid address", internal.ErrCodeInvalidEmail)
	}
	if dto.Role != "" && !auth.KnownRole(dto.Role) {
		return internal.NewValidationError("role must be Employee, Admin or ProjectManager", internal.ErrCodeInvalidRole)
	}
	return nil
}
