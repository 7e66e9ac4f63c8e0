package event

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/auth"
	"github.com/frahmantamala/workforce-management/pkg/datetime"
)

// Repository interface defines the data access methods for events.
// UpdateStatusIfPending performs a conditional update and reports how many
// rows changed, so concurrent validations cannot both succeed.
type Repository interface {
	Create(e *Event) error
	GetByID(id string) (*Event, error)
	GetByIDForUser(id, userID string) (*Event, error)
	GetByUserID(userID string) ([]*Event, error)
	GetAll() ([]*Event, error)
	GetFromDate(userID string, date time.Time) ([]*Event, error)
	GetRemoteWorkFromDate(userID string, from time.Time) ([]*Event, error)
	UpdateStatusIfPending(id string, status EventStatus) (int64, error)
}

// AssignmentDirectory answers the two questions the approval flow asks of the
// project planning: is the requester staffed on the day, and does the
// requester lead one of the event owner's projects on that day.
type AssignmentDirectory interface {
	HasAssignmentOnDate(userID string, dayStart, dayEnd time.Time) (bool, error)
	IsLeadOnDate(leadID, ownerID string, dayStart, dayEnd time.Time) (bool, error)
}

// Service handles event business logic
type Service struct {
	repo        Repository
	assignments AssignmentDirectory
	logger      *slog.Logger
}

func NewService(repo Repository, assignments AssignmentDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		assignments: assignments,
		logger:      logger,
	}
}

// CreateEvent declares a leave or remote-work day for the requester. The
// declaration is refused when the requester already has an event dated on or
// after the requested day, and remote work is capped at two accepted or
// pending days within the week of the requested date.
func (s *Service) CreateEvent(dto CreateEventDTO, requester *auth.User) (*Event, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidEventType)
	}

	laterEvents, err := s.repo.GetFromDate(requester.ID, dto.Date)
	if err != nil {
		s.logger.Error("failed to load existing events", "error", err, "user_id", requester.ID)
		return nil, err
	}
	if len(laterEvents) > 0 {
		s.logger.Warn("event declined: conflicting event on or after date",
			"user_id", requester.ID,
			"date", dto.Date)
		return nil, internal.ErrEventSameDay
	}

	if dto.EventType == EventTypeRemoteWork {
		weekEvents, err := s.repo.GetRemoteWorkFromDate(requester.ID, datetime.WeekStart(dto.Date))
		if err != nil {
			s.logger.Error("failed to load weekly remote work", "error", err, "user_id", requester.ID)
			return nil, err
		}
		if len(weekEvents) >= 2 {
			s.logger.Warn("event declined: weekly remote work cap reached",
				"user_id", requester.ID,
				"date", dto.Date)
			return nil, internal.ErrEventWeeklyCap
		}
	}

	now := time.Now()
	e := &Event{
		ID:               uuid.NewString(),
		UserID:           requester.ID,
		Date:             dto.Date,
		EventType:        dto.EventType,
		EventStatus:      InitialStatus(dto.EventType),
		EventDescription: dto.EventDescription,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(e); err != nil {
		s.logger.Error("failed to create event", "error", err, "user_id", requester.ID)
		return nil, err
	}

	s.logger.Info("event created",
		"event_id", e.ID,
		"user_id", e.UserID,
		"event_type", e.EventType,
		"event_status", e.EventStatus,
		"date", e.Date)

	return e, nil
}

// Validate accepts a pending event.
func (s *Service) Validate(id string, requester *auth.User) (*Event, error) {
	return s.finalize(id, EventStatusAccepted, requester)
}

// Decline rejects a pending event.
func (s *Service) Decline(id string, requester *auth.User) (*Event, error) {
	return s.finalize(id, EventStatusDeclined, requester)
}

// finalize moves a pending event into a terminal status. Admins may act on
// any pending event. Anyone else must hold an assignment covering the day of
// the event and must lead a project the event owner is staffed on that day.
func (s *Service) finalize(id string, status EventStatus, requester *auth.User) (*Event, error) {
	ev, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrEventNotFound
	}

	if ev.IsFinalized() {
		s.logger.Warn("event transition refused: already finalized",
			"event_id", ev.ID,
			"event_status", ev.EventStatus,
			"requested_by", requester.ID)
		return nil, internal.ErrEventFinalized
	}

	if !requester.IsAdmin() {
		dayStart, dayEnd := datetime.DayBounds(ev.Date)

		assigned, err := s.assignments.HasAssignmentOnDate(requester.ID, dayStart, dayEnd)
		if err != nil {
			s.logger.Error("failed to check assignment on date", "error", err, "event_id", ev.ID)
			return nil, err
		}
		if !assigned {
			return nil, internal.ErrNotAssignedOnDate
		}

		leads, err := s.assignments.IsLeadOnDate(requester.ID, ev.UserID, dayStart, dayEnd)
		if err != nil {
			s.logger.Error("failed to check project lead", "error", err, "event_id", ev.ID)
			return nil, err
		}
		if !leads {
			s.logger.Warn("event transition refused: requester does not lead owner",
				"event_id", ev.ID,
				"requested_by", requester.ID,
				"owner_id", ev.UserID)
			return nil, internal.ErrNotEventManager
		}
	}

	rows, err := s.repo.UpdateStatusIfPending(ev.ID, status)
	if err != nil {
		s.logger.Error("failed to update event status", "error", err, "event_id", ev.ID)
		return nil, err
	}
	if rows == 0 {
		// A concurrent transition won the race.
		return nil, internal.ErrEventFinalized
	}

	ev.EventStatus = status
	ev.UpdatedAt = time.Now()

	s.logger.Info("event transitioned",
		"event_id", ev.ID,
		"event_status", status,
		"requested_by", requester.ID)

	return ev, nil
}

// List returns events visible to the requester: employees see their own,
// admins and project managers see all.
func (s *Service) List(requester *auth.User) ([]*Event, error) {
	switch requester.Role {
	case auth.RoleEmployee:
		return s.repo.GetByUserID(requester.ID)
	case auth.RoleAdmin, auth.RoleProjectManager:
		return s.repo.GetAll()
	default:
		s.logger.Warn("event listing denied: unknown role", "user_id", requester.ID, "role", requester.Role)
		return nil, internal.ErrUnknownRole
	}
}

// Get returns a single event under the same visibility rule as List.
func (s *Service) Get(id string, requester *auth.User) (*Event, error) {
	switch requester.Role {
	case auth.RoleEmployee:
		ev, err := s.repo.GetByIDForUser(id, requester.ID)
		if err != nil {
			return nil, internal.ErrEventNotFound
		}
		return ev, nil
	case auth.RoleAdmin, auth.RoleProjectManager:
		ev, err := s.repo.GetByID(id)
		if err != nil {
			return nil, internal.ErrEventNotFound
		}
		return ev, nil
	default:
		s.logger.Warn("event access denied: unknown role", "user_id", requester.ID, "role", requester.Role)
		return nil, internal.ErrUnknownRole
	}
}
