package project

import "context"

// Gateway provides CRUD on the remote projects table.
type Gateway interface {
	// ListProjects returns all rows ordered by id descending.
	ListProjects(ctx context.Context) ([]Project, error)
	InsertProject(ctx context.Context, in Input) (Project, error)
	UpdateProject(ctx context.Context, id int64, in Input) (Project, error)
	DeleteProject(ctx context.Context, id int64) error
}
