package user

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/auth"
)

// Repository interface defines the data access methods for users
type Repository interface {
	Create(u *User) error
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	GetByUsername(username string) (*User, error)
	GetAll() ([]*User, error)
}

// LeaveSource exposes the accepted paid-leave days of a user, backed by the
// event store. Used for meal voucher computation.
type LeaveSource interface {
	AcceptedPaidLeaveDates(userID string, from, to time.Time) ([]time.Time, error)
}

// Service handles user business logic
type Service struct {
	repo       Repository
	leaves     LeaveSource
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, leaves LeaveSource, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		leaves:     leaves,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// SignUp creates a new account. Role defaults to Employee when omitted.
func (s *Service) SignUp(dto SignUpDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("sign-up validation failed", "error", err, "username", dto.Username)
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, internal.ErrEmailTaken
	}
	if existing, err := s.repo.GetByUsername(dto.Username); err == nil && existing != nil {
		return nil, internal.ErrUsernameTaken
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	role := dto.Role
	if role == "" {
		role = auth.RoleEmployee
	}

	now := time.Now()
	u := &User{
		ID:           uuid.NewString(),
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", dto.Username)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return u, nil
}

// GetAll returns every user. Password hashes never serialize; the domain
// struct hides them from JSON.
func (s *Service) GetAll() ([]*User, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

// GetByID fetches one user. Malformed ids are rejected before the lookup.
func (s *Service) GetByID(id string) (*User, error) {
	if !IsUUIDv4(id) {
		return nil, internal.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

// MealVoucherAmount computes the meal voucher total in euros for the given
// month of the current year: one voucher per weekday not covered by an
// accepted paid-leave event.
func (s *Service) MealVoucherAmount(userID string, month int) (int, error) {
	if !IsUUIDv4(userID) {
		return 0, internal.ErrInvalidUserID
	}
	if month < 1 || month > 12 {
		return 0, internal.ErrInvalidMonth
	}

	if _, err := s.repo.GetByID(userID); err != nil {
		return 0, internal.ErrUserNotFound
	}

	from := time.Date(time.Now().UTC().Year(), time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	leaveDates, err := s.leaves.AcceptedPaidLeaveDates(userID, from, to)
	if err != nil {
		s.logger.Error("failed to load paid leave dates", "error", err, "user_id", userID)
		return 0, err
	}

	onLeave := make(map[string]bool, len(leaveDates))
	for _, d := range leaveDates {
		onLeave[d.UTC().Format("2006-01-02")] = true
	}

	workedDays := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if onLeave[day.Format("2006-01-02")] {
			continue
		}
		workedDays++
	}

	return workedDays * MealVoucherDailyAmount, nil
}
