package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dvail/trackline/internal/domain/project"
	"github.com/dvail/trackline/internal/gateway"
)

// ListProjects returns all projects ordered by id descending.
func (g *Gateway) ListProjects(ctx context.Context) ([]project.Project, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT id, project_name
		FROM projects
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		var p project.Project
		if err := rows.Scan(&p.ID, &p.ProjectName); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}

	return projects, nil
}

// InsertProject creates a project and returns the stored row with its
// assigned id.
func (g *Gateway) InsertProject(ctx context.Context, in project.Input) (project.Project, error) {
	res, err := g.db.ExecContext(ctx,
		`INSERT INTO projects (project_name) VALUES (?)`,
		in.ProjectName,
	)
	if err != nil {
		return project.Project{}, fmt.Errorf("inserting project: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return project.Project{}, fmt.Errorf("reading inserted id: %w", err)
	}

	return g.getProject(ctx, id)
}

// UpdateProject replaces the writable fields of the row matching id and
// returns the stored row. A missing row is ErrNotFound.
func (g *Gateway) UpdateProject(ctx context.Context, id int64, in project.Input) (project.Project, error) {
	res, err := g.db.ExecContext(ctx,
		`UPDATE projects SET project_name = ? WHERE id = ?`,
		in.ProjectName, id,
	)
	if err != nil {
		return project.Project{}, fmt.Errorf("updating project: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return project.Project{}, fmt.Errorf("reading rows affected: %w", err)
	}
	if affected == 0 {
		return project.Project{}, gateway.ErrNotFound
	}

	return g.getProject(ctx, id)
}

// DeleteProject deletes the row matching id. Deleting a missing row is
// a success, matching the hosted service.
func (g *Gateway) DeleteProject(ctx context.Context, id int64) error {
	if _, err := g.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func (g *Gateway) getProject(ctx context.Context, id int64) (project.Project, error) {
	var p project.Project
	err := g.db.QueryRowContext(ctx,
		`SELECT id, project_name FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.ProjectName)
	if err == sql.ErrNoRows {
		return project.Project{}, gateway.ErrNotFound
	}
	if err != nil {
		return project.Project{}, fmt.Errorf("getting project: %w", err)
	}
	return p, nil
}
