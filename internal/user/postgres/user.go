package postgres

import (
	"gorm.io/gorm"

	userDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/user"
	"github.com/frahmantamala/workforce-management/internal/user"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	return r.db.Create(user.ToDataModel(u)).Error
}

func (r *UserRepository) GetByID(id string) (*user.User, error) {
	var dm userDatamodel.User
	if err := r.db.Where("id = ?", id).First(&dm).Error; err != nil {
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var dm userDatamodel.User
	if err := r.db.Where("email = ?", email).First(&dm).Error; err != nil {
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *UserRepository) GetByUsername(username string) (*user.User, error) {
	var dm userDatamodel.User
	if err := r.db.Where("username = ?", username).First(&dm).Error; err != nil {
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *UserRepository) GetAll() ([]*user.User, error) {
	var dms []*userDatamodel.User
	if err := r.db.Order("created_at ASC").Find(&dms).Error; err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(dms), nil
}
