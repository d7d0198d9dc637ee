package project

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Store holds the local mirror of the projects table. The mirror is
// patched only from rows the gateway returns, never from caller input.
type Store struct {
	gw     Gateway
	logger *slog.Logger

	mu       sync.Mutex
	projects []Project
	selected *Project
	loading  bool
}

// NewStore creates a new project store with an empty mirror.
func NewStore(gw Gateway, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{gw: gw, logger: logger}
}

// Fetch replaces the mirror with all rows from the gateway, ordered by
// id descending. On error the prior mirror is left intact.
func (s *Store) Fetch(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	rows, err := s.gw.ListProjects(ctx)
	if err != nil {
		s.logger.Error("fetching projects", "error", err)
		return fmt.Errorf("fetching projects: %w", err)
	}
	if rows == nil {
		rows = []Project{}
	}

	s.mu.Lock()
	s.projects = rows
	s.mu.Unlock()

	return nil
}

// Create submits a new project and prepends the server's returned row
// to the mirror.
func (s *Store) Create(ctx context.Context, in Input) (Project, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	created, err := s.gw.InsertProject(ctx, Input{ProjectName: in.ProjectName})
	if err != nil {
		s.logger.Error("creating project", "error", err)
		return Project{}, fmt.Errorf("creating project: %w", err)
	}

	s.mu.Lock()
	s.projects = append([]Project{created}, s.projects...)
	s.mu.Unlock()

	return created, nil
}

// Update replaces the named row remotely and substitutes the server's
// returned row at the matching mirror index. An id absent from the
// mirror is a silent local no-op; the remote write still happened and
// its row is still returned.
func (s *Store) Update(ctx context.Context, id int64, in Input) (Project, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	updated, err := s.gw.UpdateProject(ctx, id, Input{ProjectName: in.ProjectName})
	if err != nil {
		s.logger.Error("updating project", "id", id, "error", err)
		return Project{}, fmt.Errorf("updating project: %w", err)
	}

	s.mu.Lock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i] = updated
			break
		}
	}
	s.mu.Unlock()

	return updated, nil
}

// Delete removes the row remotely, excises it from the mirror and
// clears the selection if it pointed at the deleted project.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.gw.DeleteProject(ctx, id); err != nil {
		s.logger.Error("deleting project", "id", id, "error", err)
		return fmt.Errorf("deleting project: %w", err)
	}

	s.mu.Lock()
	kept := s.projects[:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	s.mu.Unlock()

	return nil
}

// Select marks a project as the current selection. Nil clears it. No
// gateway call is made.
func (s *Store) Select(p *Project) {
	s.mu.Lock()
	s.selected = p
	s.mu.Unlock()
}

// Selected returns the current selection, which may be nil.
func (s *Store) Selected() *Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Projects returns a copy of the mirror.
func (s *Store) Projects() []Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Loading reports whether at least one operation appears outstanding.
// It is best-effort, not a lock: with overlapping calls the first
// completion clears it while the second is still pending.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
