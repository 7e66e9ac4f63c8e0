package postgres

import (
	"gorm.io/gorm"

	projectDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/project"
	"github.com/frahmantamala/workforce-management/internal/project"
)

// ProjectRepository implements the project.Repository interface using GORM
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) project.Repository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(p *project.Project) error {
	return r.db.Create(project.ToDataModel(p)).Error
}

func (r *ProjectRepository) GetByID(id string) (*project.Project, error) {
	var dm projectDatamodel.Project
	if err := r.db.Where("id = ?", id).First(&dm).Error; err != nil {
		return nil, err
	}
	return project.FromDataModel(&dm), nil
}

// GetByIDForMember returns the project only when the given user holds at
// least one assignment on it.
func (r *ProjectRepository) GetByIDForMember(id, userID string) (*project.Project, error) {
	var dm projectDatamodel.Project
	err := r.db.
		Joins("JOIN project_users ON project_users.project_id = projects.id").
		Where("projects.id = ? AND project_users.user_id = ?", id, userID).
		First(&dm).Error
	if err != nil {
		return nil, err
	}
	return project.FromDataModel(&dm), nil
}

func (r *ProjectRepository) GetAll() ([]*project.Project, error) {
	var dms []*projectDatamodel.Project
	if err := r.db.Find(&dms).Error; err != nil {
		return nil, err
	}
	return project.FromDataModelSlice(dms), nil
}

// GetByMemberID lists every project the user has an assignment on.
func (r *ProjectRepository) GetByMemberID(userID string) ([]*project.Project, error) {
	var dms []*projectDatamodel.Project
	err := r.db.
		Distinct("projects.*").
		Joins("JOIN project_users ON project_users.project_id = projects.id").
		Where("project_users.user_id = ?", userID).
		Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return project.FromDataModelSlice(dms), nil
}
