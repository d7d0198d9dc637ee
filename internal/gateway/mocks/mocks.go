package mocks

import (
	"context"

	"github.com/dvail/trackline/internal/domain/activity"
	"github.com/dvail/trackline/internal/domain/auth"
	"github.com/dvail/trackline/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// AuthGateway is a mock for gateway.AuthGateway.
type AuthGateway struct {
	mock.Mock
}

func (m *AuthGateway) SignInWithPassword(ctx context.Context, email, password string) (*auth.Session, error) {
	args := m.Called(ctx, email, password)
	if sess, ok := args.Get(0).(*auth.Session); ok {
		return sess, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AuthGateway) SignOut(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *AuthGateway) GetUser(ctx context.Context) (*auth.User, error) {
	args := m.Called(ctx)
	if user, ok := args.Get(0).(*auth.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// ProjectGateway is a mock for gateway.ProjectGateway.
type ProjectGateway struct {
	mock.Mock
}

func (m *ProjectGateway) ListProjects(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if rows, ok := args.Get(0).([]project.Project); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectGateway) InsertProject(ctx context.Context, in project.Input) (project.Project, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(project.Project), args.Error(1)
}

func (m *ProjectGateway) UpdateProject(ctx context.Context, id int64, in project.Input) (project.Project, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(project.Project), args.Error(1)
}

func (m *ProjectGateway) DeleteProject(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ActivityGateway is a mock for gateway.ActivityGateway.
type ActivityGateway struct {
	mock.Mock
}

func (m *ActivityGateway) ListActivities(ctx context.Context, projectName string) ([]activity.Activity, error) {
	args := m.Called(ctx, projectName)
	if rows, ok := args.Get(0).([]activity.Activity); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityGateway) InsertActivity(ctx context.Context, in activity.Input) (activity.Activity, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(activity.Activity), args.Error(1)
}

func (m *ActivityGateway) UpdateActivity(ctx context.Context, id int64, in activity.Input) (activity.Activity, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(activity.Activity), args.Error(1)
}

func (m *ActivityGateway) DeleteActivity(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// AdminGateway is a mock for gateway.AdminGateway.
type AdminGateway struct {
	mock.Mock
}

func (m *AdminGateway) IsAdmin(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
