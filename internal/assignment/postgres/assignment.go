package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/workforce-management/internal"
	"github.com/frahmantamala/workforce-management/internal/assignment"
	assignmentDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/assignment"
)

// AssignmentRepository implements the assignment.Repository interface using GORM
type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// CreateExclusive inserts the assignment after re-checking, inside one
// transaction, that no existing assignment of the same user collides with it.
// The service already checked before calling; repeating the check here closes
// the window between the two racing creations.
func (r *AssignmentRepository) CreateExclusive(a *assignment.Assignment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var dms []*assignmentDatamodel.ProjectAssignment
		if err := tx.Where("user_id = ?", a.UserID).Find(&dms).Error; err != nil {
			return err
		}
		if assignment.HasConflict(a.StartDate, a.EndDate, assignment.FromDataModelSlice(dms)) {
			return internal.ErrAssignmentOverlap
		}
		return tx.Create(assignment.ToDataModel(a)).Error
	})
}

func (r *AssignmentRepository) GetByID(id string) (*assignment.Assignment, error) {
	var dm assignmentDatamodel.ProjectAssignment
	if err := r.db.Where("id = ?", id).First(&dm).Error; err != nil {
		return nil, err
	}
	return assignment.FromDataModel(&dm), nil
}

// GetByIDForUser returns the assignment only when it belongs to the given user.
func (r *AssignmentRepository) GetByIDForUser(id, userID string) (*assignment.Assignment, error) {
	var dm assignmentDatamodel.ProjectAssignment
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&dm).Error; err != nil {
		return nil, err
	}
	return assignment.FromDataModel(&dm), nil
}

func (r *AssignmentRepository) GetByUserID(userID string) ([]*assignment.Assignment, error) {
	var dms []*assignmentDatamodel.ProjectAssignment
	if err := r.db.Where("user_id = ?", userID).Find(&dms).Error; err != nil {
		return nil, err
	}
	return assignment.FromDataModelSlice(dms), nil
}

func (r *AssignmentRepository) GetAll() ([]*assignment.Assignment, error) {
	var dms []*assignmentDatamodel.ProjectAssignment
	if err := r.db.Find(&dms).Error; err != nil {
		return nil, err
	}
	return assignment.FromDataModelSlice(dms), nil
}

// HasAssignmentOnDate reports whether the user holds any assignment whose
// interval covers the day bounded by [dayStart, dayEnd].
func (r *AssignmentRepository) HasAssignmentOnDate(userID string, dayStart, dayEnd time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&assignmentDatamodel.ProjectAssignment{}).
		Where("user_id = ? AND start_date <= ? AND end_date >= ?", userID, dayEnd, dayStart).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsLeadOnDate reports whether leadID is the referring employee of any project
// that ownerID is assigned to on the given day.
func (r *AssignmentRepository) IsLeadOnDate(leadID, ownerID string, dayStart, dayEnd time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&assignmentDatamodel.ProjectAssignment{}).
		Joins("JOIN projects ON projects.id = project_users.project_id").
		Where("project_users.user_id = ? AND projects.referring_employee_id = ?", ownerID, leadID).
		Where("project_users.start_date <= ? AND project_users.end_date >= ?", dayEnd, dayStart).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
