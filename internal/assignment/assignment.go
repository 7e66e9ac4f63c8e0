package assignment

import (
	"time"

	assignmentDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/assignment"
)

// Assignment places one employee on one project over the closed interval
// [StartDate, EndDate]. Assignments are immutable once saved.
type Assignment struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasConflict reports whether the candidate interval [start, end] collides
// with any of the user's existing assignments. The three conditions mirror
// the period rules the product defined: an existing assignment spanning the
// candidate, one ending on or after the candidate's end, and one starting on
// or before the candidate's start and ending inside it. Exact equality of
// both bounds falls under the first condition. No existing assignments means
// no conflict.
func HasConflict(start, end time.Time, existing []*Assignment) bool {
	for _, a := range existing {
		spans := !a.StartDate.After(start) && !a.EndDate.Before(end)
		endsAfter := !a.StartDate.Before(start) && !a.EndDate.Before(end)
		startsBefore := !a.StartDate.After(start) && !a.EndDate.After(end)
		if spans || endsAfter || startsBefore {
			return true
		}
	}
	return false
}

func ToDataModel(a *Assignment) *assignmentDatamodel.ProjectAssignment {
	return &assignmentDatamodel.ProjectAssignment{
		ID:        a.ID,
		ProjectID: a.ProjectID,
		UserID:    a.UserID,
		StartDate: a.StartDate,
		EndDate:   a.EndDate,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func FromDataModel(a *assignmentDatamodel.ProjectAssignment) *Assignment {
	return &Assignment{
		ID:        a.ID,
		ProjectID: a.ProjectID,
		UserID:    a.UserID,
		StartDate: a.StartDate,
		EndDate:   a.EndDate,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func FromDataModelSlice(assignments []*assignmentDatamodel.ProjectAssignment) []*Assignment {
	result := make([]*Assignment, len(assignments))
	for i, a := range assignments {
		result[i] = FromDataModel(a)
	}
	return result
}
