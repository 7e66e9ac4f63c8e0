package project

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/auth"
)

// Repository interface defines the data access methods for projects
type Repository interface {
	Create(p *Project) error
	GetByID(id string) (*Project, error)
	GetByIDForMember(id, userID string) (*Project, error)
	GetAll() ([]*Project, error)
	GetByMemberID(userID string) ([]*Project, error)
}

// UserDirectory resolves users referenced by projects.
type UserDirectory interface {
	GetUserByID(id string) (*auth.User, error)
}

// Service handles project business logic
type Service struct {
	repo   Repository
	users  UserDirectory
	logger *slog.Logger
}

func NewService(repo Repository, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

// Create registers a new project. Only admins and project managers may
// create one, and the referring employee must hold one of those roles too.
func (s *Service) Create(dto CreateProjectDTO, requester *auth.User) (*CreateProjectResponse, error) {
	if !requester.CanManageProjects() {
		s.logger.Warn("project creation denied: insufficient role", "user_id", requester.ID, "role", requester.Role)
		return nil, internal.ErrInsufficientRole
	}

	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	referrer, err := s.users.GetUserByID(dto.ReferringEmployeeID)
	if err != nil || referrer == nil || !referrer.CanManageProjects() {
		s.logger.Warn("project creation denied: referring employee not eligible",
			"referring_employee_id", dto.ReferringEmployeeID)
		return nil, internal.ErrReferrerNotManager
	}

	if len(dto.Name) < MinNameLength {
		return nil, internal.ErrProjectNameShort
	}

	p := &Project{
		ID:                  uuid.NewString(),
		Name:                dto.Name,
		ReferringEmployeeID: referrer.ID,
	}

	if err := s.repo.Create(p); err != nil {
		s.logger.Error("failed to create project", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("project created", "project_id", p.ID, "name", p.Name, "referring_employee_id", referrer.ID)

	return &CreateProjectResponse{Project: p, ReferringEmployee: referrer}, nil
}

// List returns the projects visible to the requester: employees see only
// projects they are assigned to, admins and project managers see all.
func (s *Service) List(requester *auth.User) ([]*Project, error) {
	switch requester.Role {
	case auth.RoleEmployee:
		return s.repo.GetByMemberID(requester.ID)
	case auth.RoleAdmin, auth.RoleProjectManager:
		return s.repo.GetAll()
	default:
		s.logger.Warn("project listing denied: unknown role", "user_id", requester.ID, "role", requester.Role)
		return nil, internal.ErrUnknownRole
	}
}

// Get returns a single project under the same visibility rule as List.
func (s *Service) Get(id string, requester *auth.User) (*Project, error) {
	switch requester.Role {
	case auth.RoleEmployee:
		p, err := s.repo.GetByIDForMember(id, requester.ID)
		if err != nil {
			return nil, internal.ErrProjectNotFound
		}
		return p, nil
	case auth.RoleAdmin, auth.RoleProjectManager:
		p, err := s.repo.GetByID(id)
		if err != nil {
			return nil, internal.ErrProjectNotFound
		}
		return p, nil
	default:
		s.logger.Warn("project access denied: unknown role", "user_id", requester.ID, "role", requester.Role)
		return nil, internal.ErrUnknownRole
	}
}
