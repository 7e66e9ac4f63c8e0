package user_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/auth"
	"github.com/frahmantamala/workforce-management/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

// MockRepository implements user.Repository for testing
type MockRepository struct {
	users map[string]*user.User
}

func NewMockRepository() *MockRepository {
	return &MockRepository{users: make(map[string]*user.User)}
}

func (m *MockRepository) Create(u *user.User) error {
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *MockRepository) GetByID(id string) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *u
	return &copied, nil
}

func (m *MockRepository) GetByEmail(email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *MockRepository) GetByUsername(username string) (*user.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *MockRepository) GetAll() ([]*user.User, error) {
	var result []*user.User
	for _, u := range m.users {
		result = append(result, u)
	}
	return result, nil
}

// MockLeaveSource implements user.LeaveSource for testing
type MockLeaveSource struct {
	dates []time.Time
}

func (m *MockLeaveSource) AcceptedPaidLeaveDates(userID string, from, to time.Time) ([]time.Time, error) {
	var result []time.Time
	for _, d := range m.dates {
		if !d.Before(from) && !d.After(to) {
			result = append(result, d)
		}
	}
	return result, nil
}

// weekdaysInMonth counts Monday through Friday days of the month in the
// current year.
func weekdaysInMonth(month time.Month) int {
	from := time.Date(time.Now().UTC().Year(), month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	count := 0
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
			count++
		}
	}
	return count
}

// firstWeekdays returns the first n weekdays of the month in the current year.
func firstWeekdays(month time.Month, n int) []time.Time {
	var result []time.Time
	day := time.Date(time.Now().UTC().Year(), month, 1, 0, 0, 0, 0, time.UTC)
	for len(result) < n {
		if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
			result = append(result, day)
		}
		day = day.AddDate(0, 0, 1)
	}
	return result
}

var _ = Describe("User Service", func() {
	var (
		mockRepo   *MockRepository
		mockLeaves *MockLeaveSource
		service    *user.Service
	)

	validSignUp := func() user.SignUpDTO {
		return user.SignUpDTO{
			Username: "jdoe",
			Email:    "jdoe@mail.com",
			Password: "supersecret",
		}
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockLeaves = &MockLeaveSource{}
		log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(mockRepo, mockLeaves, 4, log)
	})

	Describe("SignUp", func() {
		It("should create a user with the Employee role by default", func() {
			u, err := service.SignUp(validSignUp())

			Expect(err).NotTo(HaveOccurred())
			Expect(u.Role).To(Equal(auth.RoleEmployee))
			Expect(u.Username).To(Equal("jdoe"))
		})

		It("should hash the password", func() {
			u, err := service.SignUp(validSignUp())

			Expect(err).NotTo(HaveOccurred())
			Expect(u.PasswordHash).NotTo(Equal("supersecret"))
			Expect(auth.VerifyPassword(u.PasswordHash, "supersecret")).To(Succeed())
		})

		It("should keep an explicit role", func() {
			dto := validSignUp()
			dto.Role = auth.RoleProjectManager

			u, err := service.SignUp(dto)

			Expect(err).NotTo(HaveOccurred())
			Expect(u.Role).To(Equal(auth.RoleProjectManager))
		})

		It("should reject an unknown role", func() {
			dto := validSignUp()
			dto.Role = "Contractor"

			_, err := service.SignUp(dto)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidRole))
		})

		It("should reject a short username", func() {
			dto := validSignUp()
			dto.Username = "jd"

			_, err := service.SignUp(dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeUsernameTooShort))
		})

		It("should reject a short password", func() {
			dto := validSignUp()
			dto.Password = "short"

			_, err := service.SignUp(dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodePasswordTooShort))
		})

		It("should reject a malformed email", func() {
			dto := validSignUp()
			dto.Email = "not-an-email"

			_, err := service.SignUp(dto)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidEmail))
		})

		It("should reject a duplicate email", func() {
			_, err := service.SignUp(validSignUp())
			Expect(err).NotTo(HaveOccurred())

			dto := validSignUp()
			dto.Username = "other"

			_, err = service.SignUp(dto)

			Expect(err).To(Equal(internal.ErrEmailTaken))
		})

		It("should reject a duplicate username", func() {
			_, err := service.SignUp(validSignUp())
			Expect(err).NotTo(HaveOccurred())

			dto := validSignUp()
			dto.Email = "jdoe2@mail.com"

			_, err = service.SignUp(dto)

			Expect(err).To(Equal(internal.ErrUsernameTaken))
		})
	})

	Describe("GetByID", func() {
		It("should reject an id that is not a uuidv4", func() {
			_, err := service.GetByID("not-a-uuid")

			Expect(err).To(Equal(internal.ErrInvalidUserID))
		})

		It("should return not found for an unknown id", func() {
			_, err := service.GetByID("8c9d6ee9-45c6-4d2f-a0c4-48f52375d0de")

			Expect(err).To(Equal(internal.ErrUserNotFound))
		})

		It("should return the user for a known id", func() {
			created, err := service.SignUp(validSignUp())
			Expect(err).NotTo(HaveOccurred())

			u, err := service.GetByID(created.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(u.Email).To(Equal("jdoe@mail.com"))
		})
	})

	Describe("MealVoucherAmount", func() {
		var userID string

		BeforeEach(func() {
			created, err := service.SignUp(validSignUp())
			Expect(err).NotTo(HaveOccurred())
			userID = created.ID
		})

		It("should reject an id that is not a uuidv4", func() {
			_, err := service.MealVoucherAmount("nope", 3)

			Expect(err).To(Equal(internal.ErrInvalidUserID))
		})

		It("should reject an out-of-range month", func() {
			_, err := service.MealVoucherAmount(userID, 13)

			Expect(err).To(Equal(internal.ErrInvalidMonth))

			_, err = service.MealVoucherAmount(userID, 0)

			Expect(err).To(Equal(internal.ErrInvalidMonth))
		})

		It("should return not found for an unknown user", func() {
			_, err := service.MealVoucherAmount("8c9d6ee9-45c6-4d2f-a0c4-48f52375d0de", 3)

			Expect(err).To(Equal(internal.ErrUserNotFound))
		})

		It("should grant one voucher per weekday when no leave was taken", func() {
			amount, err := service.MealVoucherAmount(userID, 3)

			Expect(err).NotTo(HaveOccurred())
			Expect(amount).To(Equal(weekdaysInMonth(time.March) * user.MealVoucherDailyAmount))
		})

		It("should subtract accepted paid leave days", func() {
			mockLeaves.dates = firstWeekdays(time.March, 2)

			amount, err := service.MealVoucherAmount(userID, 3)

			Expect(err).NotTo(HaveOccurred())
			Expect(amount).To(Equal((weekdaysInMonth(time.March) - 2) * user.MealVoucherDailyAmount))
		})
	})
})
