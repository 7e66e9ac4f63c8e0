package postgres

import (
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/auth"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentials(email string) (string, string, error) {
	var userID string
	var passwordHash string
	query := `SELECT id, password_hash FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", internal.ErrUserNotFound
		}
		return "", "", err
	}
	return userID, passwordHash, nil
}

func (r *Repository) GetUserByID(userID string) (*auth.User, error) {
	var user auth.User
	query := `SELECT id, username, email, role FROM users WHERE id = ?`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
