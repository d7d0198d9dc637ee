package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dvail/trackline/internal/domain/activity"
	"github.com/dvail/trackline/internal/gateway"
)

const activityColumns = `id, project_name, activity_name, progress, expected_time,
	urgency, notes, assigned, assigned_to_who, created_by, created_at`

// ListActivities returns activities newest first, optionally narrowed
// to one project name. Ties on created_at break by id so the order is
// deterministic.
func (g *Gateway) ListActivities(ctx context.Context, projectName string) ([]activity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities`
	var args []any
	if projectName != "" {
		query += ` WHERE project_name = ?`
		args = append(args, projectName)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := g.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	var activities []activity.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}

	return activities, nil
}

// InsertActivity creates an activity, assigning id and created_at, and
// returns the stored row.
func (g *Gateway) InsertActivity(ctx context.Context, in activity.Input) (activity.Activity, error) {
	res, err := g.db.ExecContext(ctx, `
		INSERT INTO activities (project_name, activity_name, progress, expected_time,
			urgency, notes, assigned, assigned_to_who, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ProjectName,
		in.ActivityName,
		string(in.Progress),
		in.ExpectedTime,
		in.Urgency,
		in.Notes,
		in.Assigned,
		in.AssignedToWho,
		in.CreatedBy,
		time.Now().UTC(),
	)
	if err != nil {
		return activity.Activity{}, fmt.Errorf("inserting activity: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return activity.Activity{}, fmt.Errorf("reading inserted id: %w", err)
	}

	return g.getActivity(ctx, id)
}

// UpdateActivity replaces the writable fields of the row matching id
// and returns the stored row. A missing row is ErrNotFound.
func (g *Gateway) UpdateActivity(ctx context.Context, id int64, in activity.Input) (activity.Activity, error) {
	res, err := g.db.ExecContext(ctx, `
		UPDATE activities
		SET project_name = ?, activity_name = ?, progress = ?, expected_time = ?,
			urgency = ?, notes = ?, assigned = ?, assigned_to_who = ?, created_by = ?
		WHERE id = ?`,
		in.ProjectName,
		in.ActivityName,
		string(in.Progress),
		in.ExpectedTime,
		in.Urgency,
		in.Notes,
		in.Assigned,
		in.AssignedToWho,
		in.CreatedBy,
		id,
	)
	if err != nil {
		return activity.Activity{}, fmt.Errorf("updating activity: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return activity.Activity{}, fmt.Errorf("reading rows affected: %w", err)
	}
	if affected == 0 {
		return activity.Activity{}, gateway.ErrNotFound
	}

	return g.getActivity(ctx, id)
}

// DeleteActivity deletes the row matching id. Deleting a missing row is
// a success.
func (g *Gateway) DeleteActivity(ctx context.Context, id int64) error {
	if _, err := g.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	return nil
}

func (g *Gateway) getActivity(ctx context.Context, id int64) (activity.Activity, error) {
	row := g.db.QueryRowContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = ?`, id)

	a, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return activity.Activity{}, gateway.ErrNotFound
	}
	if err != nil {
		return activity.Activity{}, err
	}
	return a, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanActivity(s scanner) (activity.Activity, error) {
	var a activity.Activity
	var progress string
	err := s.Scan(
		&a.ID,
		&a.ProjectName,
		&a.ActivityName,
		&progress,
		&a.ExpectedTime,
		&a.Urgency,
		&a.Notes,
		&a.Assigned,
		&a.AssignedToWho,
		&a.CreatedBy,
		&a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return activity.Activity{}, err
	}
	if err != nil {
		return activity.Activity{}, fmt.Errorf("scanning activity: %w", err)
	}
	a.Progress = activity.ProgressText(progress)
	return a, nil
}
