package project

// Project is a row of the projects table. The ID is server-assigned and
// immutable.
type Project struct {
	ID          int64  `json:"id"`
	ProjectName string `json:"project_name"`
}

// Input carries the writable fields of a project. Only the project name
// crosses the wire; anything else a caller holds stays local.
type Input struct {
	ProjectName string `json:"project_name"`
}
