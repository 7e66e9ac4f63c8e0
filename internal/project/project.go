package project

import (
	projectDatamodel "github.com/frahmantamala/workforce-management/internal/core/datamodel/project"
)

type Project struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	ReferringEmployeeID string `json:"referring_employee_id"`
}

// MinNameLength is the shortest accepted project name.
const MinNameLength = 3

func ToDataModel(p *Project) *projectDatamodel.Project {
	return &projectDatamodel.Project{
		ID:                  p.ID,
		Name:                p.Name,
		ReferringEmployeeID: p.ReferringEmployeeID,
	}
}

func FromDataModel(p *projectDatamodel.Project) *Project {
	return &Project{
		ID:                  p.ID,
		Name:                p.Name,
		ReferringEmployeeID: p.ReferringEmployeeID,
	}
}

func FromDataModelSlice(projects []*projectDatamodel.Project) []*Project {
	result := make([]*Project, len(projects))
	for i, p := range projects {
		result[i] = FromDataModel(p)
	}
	return result
}
