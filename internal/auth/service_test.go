package auth_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/auth"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

const testSecret = "test-secret-key-for-jwt-token-signing-at-least-32"

// MockRepository implements auth.RepositoryAPI for testing
type MockRepository struct {
	credentials map[string]struct {
		userID string
		hash   string
	}
	users map[string]*auth.User
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		credentials: make(map[string]struct {
			userID string
			hash   string
		}),
		users: make(map[string]*auth.User),
	}
}

func (m *MockRepository) GetCredentials(email string) (string, string, error) {
	cred, ok := m.credentials[email]
	if !ok {
		return "", "", errors.New("record not found")
	}
	return cred.userID, cred.hash, nil
}

func (m *MockRepository) GetUserByID(userID string) (*auth.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (m *MockRepository) AddUser(u *auth.User, password string) {
	hash, err := auth.HashPassword(password, 4)
	Expect(err).NotTo(HaveOccurred())
	m.credentials[u.Email] = struct {
		userID string
		hash   string
	}{userID: u.ID, hash: hash}
	m.users[u.ID] = u
}

var _ = Describe("Auth Service", func() {
	var (
		mockRepo *MockRepository
		tokenGen *auth.JWTTokenGenerator
		service  *auth.Service
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		tokenGen = auth.NewJWTTokenGenerator(testSecret, time.Hour)
		service = auth.NewService(mockRepo, tokenGen)

		mockRepo.AddUser(&auth.User{
			ID:       "user-1",
			Username: "jdoe",
			Email:    "jdoe@mail.com",
			Role:     auth.RoleEmployee,
		}, "supersecret")
	})

	Describe("Authenticate", func() {
		It("should return a token for valid credentials", func() {
			token, err := service.Authenticate(auth.LoginDTO{
				Email:    "jdoe@mail.com",
				Password: "supersecret",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(token).NotTo(BeEmpty())

			claims, err := service.ValidateAccessToken(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("user-1"))
			Expect(claims.Email).To(Equal("jdoe@mail.com"))
		})

		It("should reject a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "jdoe@mail.com",
				Password: "wrong-password",
			})

			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject an unknown email", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "ghost@mail.com",
				Password: "supersecret",
			})

			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("should reject a missing email or password", func() {
			_, err := service.Authenticate(auth.LoginDTO{Password: "supersecret"})
			Expect(err).To(HaveOccurred())

			_, err = service.Authenticate(auth.LoginDTO{Email: "jdoe@mail.com"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ValidateAccessToken", func() {
		It("should reject a garbage token", func() {
			_, err := service.ValidateAccessToken("not-a-token")

			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("should reject a token signed with another secret", func() {
			otherGen := auth.NewJWTTokenGenerator("another-secret-key-that-is-long-enough-too", time.Hour)
			token, err := otherGen.GenerateAccessToken("user-1", "jdoe@mail.com")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(token)

			Expect(err).To(Equal(internal.ErrInvalidToken))
		})

		It("should reject an expired token", func() {
			expiredGen := auth.NewJWTTokenGenerator(testSecret, -time.Minute)
			token, err := expiredGen.GenerateAccessToken("user-1", "jdoe@mail.com")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(token)

			Expect(err).To(Equal(internal.ErrTokenExpired))
		})
	})

	Describe("GetUserByID", func() {
		It("should return the stored user", func() {
			u, err := service.GetUserByID("user-1")

			Expect(err).NotTo(HaveOccurred())
			Expect(u.Username).To(Equal("jdoe"))
		})

		It("should propagate not found", func() {
			_, err := service.GetUserByID("missing")

			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})
})
