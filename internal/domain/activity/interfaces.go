package activity

import "context"

// Gateway provides CRUD on the remote activities table.
type Gateway interface {
	// ListActivities returns rows ordered by created_at descending. A
	// non-empty projectName filters by equality on project_name.
	ListActivities(ctx context.Context, projectName string) ([]Activity, error)
	InsertActivity(ctx context.Context, in Input) (Activity, error)
	UpdateActivity(ctx context.Context, id int64, in Input) (Activity, error)
	DeleteActivity(ctx context.Context, id int64) error
}
