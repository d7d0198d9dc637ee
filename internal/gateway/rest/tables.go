package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dvail/trackline/internal/domain/activity"
	"github.com/dvail/trackline/internal/domain/project"
	"github.com/dvail/trackline/internal/gateway"
)

// returnRepresentation asks the service to echo affected rows back, so
// mirrors are patched from server state rather than client input.
var returnRepresentation = map[string]string{"Prefer": "return=representation"}

func eqID(id int64) string {
	return "eq." + strconv.FormatInt(id, 10)
}

// ListProjects returns all projects ordered by id descending.
func (c *Client) ListProjects(ctx context.Context) ([]project.Project, error) {
	query := url.Values{
		"select": {"*"},
		"order":  {"id.desc"},
	}

	var rows []project.Project
	if err := c.do(ctx, http.MethodGet, "/rest/v1/projects", query, nil, nil, &rows); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return rows, nil
}

// InsertProject creates one project and returns the server's row.
func (c *Client) InsertProject(ctx context.Context, in project.Input) (project.Project, error) {
	var rows []project.Project
	err := c.do(ctx, http.MethodPost, "/rest/v1/projects", nil, returnRepresentation, []project.Input{in}, &rows)
	if err != nil {
		return project.Project{}, fmt.Errorf("inserting project: %w", err)
	}
	if len(rows) == 0 {
		return project.Project{}, fmt.Errorf("inserting project: empty representation")
	}
	return rows[0], nil
}

// UpdateProject replaces the writable fields of the row matching id and
// returns the server's row. A filter matching nothing is ErrNotFound.
func (c *Client) UpdateProject(ctx context.Context, id int64, in project.Input) (project.Project, error) {
	query := url.Values{"id": {eqID(id)}}

	var rows []project.Project
	err := c.do(ctx, http.MethodPatch, "/rest/v1/projects", query, returnRepresentation, in, &rows)
	if err != nil {
		return project.Project{}, fmt.Errorf("updating project: %w", err)
	}
	if len(rows) == 0 {
		return project.Project{}, gateway.ErrNotFound
	}
	return rows[0], nil
}

// DeleteProject deletes the row matching id. A filter matching nothing
// is still a success, mirroring the service's behavior.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	query := url.Values{"id": {eqID(id)}}
	if err := c.do(ctx, http.MethodDelete, "/rest/v1/projects", query, nil, nil, nil); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// ListActivities returns activities ordered by created_at descending,
// optionally narrowed to one project name.
func (c *Client) ListActivities(ctx context.Context, projectName string) ([]activity.Activity, error) {
	query := url.Values{
		"select": {"*"},
		"order":  {"created_at.desc"},
	}
	if projectName != "" {
		query.Set("project_name", "eq."+projectName)
	}

	var rows []activity.Activity
	if err := c.do(ctx, http.MethodGet, "/rest/v1/activities", query, nil, nil, &rows); err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	return rows, nil
}

// InsertActivity creates one activity and returns the server's row.
func (c *Client) InsertActivity(ctx context.Context, in activity.Input) (activity.Activity, error) {
	var rows []activity.Activity
	err := c.do(ctx, http.MethodPost, "/rest/v1/activities", nil, returnRepresentation, []activity.Input{in}, &rows)
	if err != nil {
		return activity.Activity{}, fmt.Errorf("inserting activity: %w", err)
	}
	if len(rows) == 0 {
		return activity.Activity{}, fmt.Errorf("inserting activity: empty representation")
	}
	return rows[0], nil
}

// UpdateActivity replaces the writable fields of the row matching id
// and returns the server's row.
func (c *Client) UpdateActivity(ctx context.Context, id int64, in activity.Input) (activity.Activity, error) {
	query := url.Values{"id": {eqID(id)}}

	var rows []activity.Activity
	err := c.do(ctx, http.MethodPatch, "/rest/v1/activities", query, returnRepresentation, in, &rows)
	if err != nil {
		return activity.Activity{}, fmt.Errorf("updating activity: %w", err)
	}
	if len(rows) == 0 {
		return activity.Activity{}, gateway.ErrNotFound
	}
	return rows[0], nil
}

// DeleteActivity deletes the row matching id.
func (c *Client) DeleteActivity(ctx context.Context, id int64) error {
	query := url.Values{"id": {eqID(id)}}
	if err := c.do(ctx, http.MethodDelete, "/rest/v1/activities", query, nil, nil, nil); err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	return nil
}
