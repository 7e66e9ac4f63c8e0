package assignment

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/auth"
	"github.com/frahmantamala/workforce-management/internal/project"
)

// Repository interface defines the data access methods for assignments.
// CreateExclusive re-runs the conflict check inside the same transaction as
// the insert, so two racing creations cannot both pass the guard.
type Repository interface {
	CreateExclusive(a *Assignment) error
	GetByID(id string) (*Assignment, error)
	GetByIDForUser(id, userID string) (*Assignment, error)
	GetByUserID(userID string) ([]*Assignment, error)
	GetAll() ([]*Assignment, error)
}

// ProjectDirectory resolves the project an assignment points at.
type ProjectDirectory interface {
	GetByID(id string) (*project.Project, error)
}

// UserDirectory resolves assigned users and referring employees.
type UserDirectory interface {
	GetUserByID(id string) (*auth.User, error)
}

// Service handles assignment business logic
type Service struct {
	repo     Repository
	projects ProjectDirectory
	users    UserDirectory
	logger   *slog.Logger
}

func NewService(repo Repository, projects ProjectDirectory, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		projects: projects,
		users:    users,
		logger:   logger,
	}
}

// Assign places a user on a project for a date interval. Only admins and
// project managers may assign; the interval must not collide with any of the
// user's existing assignments.
func (s *Service) Assign(dto AssignUserDTO, requester *auth.User) (*AssignResponse, error) {
	if !requester.CanManageProjects() {
		s.logger.Warn("assignment denied: insufficient role", "user_id", requester.ID, "role", requester.Role)
		return nil, internal.ErrInsufficientRole
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidDateRange)
	}

	existing, err := s.repo.GetByUserID(dto.UserID)
	if err != nil {
		s.logger.Error("failed to load existing assignments", "error", err, "user_id", dto.UserID)
		return nil, err
	}

	if HasConflict(dto.StartDate, dto.EndDate, existing) {
		s.logger.Warn("assignment denied: overlapping period",
			"user_id", dto.UserID,
			"start_date", dto.StartDate,
			"end_date", dto.EndDate)
		return nil, internal.ErrAssignmentOverlap
	}

	proj, err := s.projects.GetByID(dto.ProjectID)
	if err != nil {
		return nil, internal.ErrProjectNotFound
	}

	assignee, err := s.users.GetUserByID(dto.UserID)
	if err != nil {
		return nil, internal.ErrUserNotFound
	}

	referrer, err := s.users.GetUserByID(proj.ReferringEmployeeID)
	if err != nil {
		s.logger.Error("failed to load referring employee", "error", err, "project_id", proj.ID)
		return nil, err
	}

	now := time.Now()
	a := &Assignment{
		ID:        uuid.NewString(),
		ProjectID: proj.ID,
		UserID:    assignee.ID,
		StartDate: dto.StartDate,
		EndDate:   dto.EndDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateExclusive(a); err != nil {
		s.logger.Error("failed to create assignment", "error", err, "user_id", assignee.ID, "project_id", proj.ID)
		return nil, err
	}

	s.logger.Info("assignment created",
		"assignment_id", a.ID,
		"user_id", assignee.ID,
		"project_id", proj.ID,
		"start_date", a.StartDate,
		"end_date", a.EndDate)

	return &AssignResponse{Assignment: a, Project: proj, ReferringEmployee: referrer}, nil
}

// List returns assignments visible to the requester: employees see their
// own, admins and project managers see all.
func (s *Service) List(requester *auth.User) ([]*Assignment, error) {
	switch requester.Role {
	case auth.RoleEmployee:
		return s.repo.GetByUserID(requester.ID)
	case auth.RoleAdmin, auth.RoleProjectManager:
		return s.repo.GetAll()
	default:
		s.logger.Warn("assignment listing denied: unknown role", "user_id", requester.ID, "role", requester.Role)
		return nil, internal.ErrUnknownRole
	}
}

// Get returns a single assignment under the same visibility rule as List.
func (s *Service) Get(id string, requester *auth.User) (*Assignment, error) {
	switch requester.Role {
	case auth.RoleEmployee:
		a, err := s.repo.GetByIDForUser(id, requester.ID)
		if err != nil {
			return nil, internal.ErrAssignmentNotFound
		}
		return a, nil
	case auth.RoleAdmin, auth.RoleProjectManager:
		a, err := s.repo.GetByID(id)
		if err != nil {
			return nil, internal.ErrAssignmentNotFound
		}
		return a, nil
	default:
		s.logger.Warn("assignment access denied: unknown role", "user_id", requester.ID, "role", requester.Role)
		return nil, internal.ErrUnknownRole
	}
}
