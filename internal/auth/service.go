package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/workforce-management/internal"
)

type RepositoryAPI interface {
	GetCredentials(email string) (userID string, passwordHash string, err error)
	GetUserByID(userID string) (*User, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID, email string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Service performs authentication business logic: credentials check and
// token issue/verify. Account creation lives in the user module.
type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGeneratorAPI
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI) *Service {
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
	}
}

// NewJWTTokenGenerator builds an HS256 generator. The secret comes from
// validated configuration; there is no default.
func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		AccessTokenTTL: ttl,
	}
}

// Authenticate validates credentials and returns a signed access token.
func (s *Service) Authenticate(dto LoginDTO) (string, error) {
	if err := dto.Validate(); err != nil {
		return "", err
	}

	userID, storedHash, err := s.repo.GetCredentials(dto.Email)
	if err != nil {
		return "", internal.ErrInvalidCredentials
	}

	if err := VerifyPassword(storedHash, dto.Password); err != nil {
		return "", internal.ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateAccessToken(userID, dto.Email)
	if err != nil {
		return "", err
	}

	return token, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetUserByID loads the caller for the auth middleware.
func (s *Service) GetUserByID(userID string) (*User, error) {
	return s.repo.GetUserByID(userID)
}

func (j *JWTTokenGenerator) GenerateAccessToken(userID, email string) (string, error) {
	expiresAt := time.Now().Add(j.AccessTokenTTL)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}

	return claims, nil
}
