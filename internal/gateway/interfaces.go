package gateway

import (
	"context"

	"github.com/dvail/trackline/internal/domain/activity"
	"github.com/dvail/trackline/internal/domain/auth"
	"github.com/dvail/trackline/internal/domain/project"
)

// AuthGateway provides identity operations
type AuthGateway interface {
	SignInWithPassword(ctx context.Context, email, password string) (*auth.Session, error)
	SignOut(ctx context.Context) error
	GetUser(ctx context.Context) (*auth.User, error)
}

// ProjectGateway provides CRUD on the projects table
type ProjectGateway interface {
	ListProjects(ctx context.Context) ([]project.Project, error)
	InsertProject(ctx context.Context, in project.Input) (project.Project, error)
	UpdateProject(ctx context.Context, id int64, in project.Input) (project.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// ActivityGateway provides CRUD on the activities table
type ActivityGateway interface {
	ListActivities(ctx context.Context, projectName string) ([]activity.Activity, error)
	InsertActivity(ctx context.Context, in activity.Input) (activity.Activity, error)
	UpdateActivity(ctx context.Context, id int64, in activity.Input) (activity.Activity, error)
	DeleteActivity(ctx context.Context, id int64) error
}

// AdminGateway answers admin membership lookups against the
// admin_users table
type AdminGateway interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}
