package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Roles form a closed set. Anything outside it is denied by default.
const (
	RoleEmployee       = "Employee"
	RoleAdmin          = "Admin"
	RoleProjectManager = "ProjectManager"
)

func KnownRole(role string) bool {
	switch role {
	case RoleEmployee, RoleAdmin, RoleProjectManager:
		return true
	}
	return false
}

// User is the authenticated caller attached to the request context.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsProjectManager() bool {
	return u.Role == RoleProjectManager
}

// CanManageProjects reports whether the user may create projects and
// assign employees to them.
func (u *User) CanManageProjects() bool {
	return u.Role == RoleAdmin || u.Role == RoleProjectManager
}

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	Secret         []byte
	AccessTokenTTL time.Duration
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
