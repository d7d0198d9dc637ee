package activity

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Store holds the local mirror of the activities table plus the filter
// criteria for the derived view. The mirror is patched only from rows
// the gateway returns.
type Store struct {
	gw     Gateway
	logger *slog.Logger

	mu         sync.Mutex
	activities []Activity
	filters    Filters
	loading    bool
}

// NewStore creates a new activity store with an empty mirror and
// default filters.
func NewStore(gw Gateway, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{gw: gw, logger: logger, filters: DefaultFilters()}
}

// Fetch replaces the mirror with rows from the gateway, newest first.
// A non-empty projectName narrows the fetch server-side. On error the
// prior mirror is left intact.
func (s *Store) Fetch(ctx context.Context, projectName string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	rows, err := s.gw.ListActivities(ctx, projectName)
	if err != nil {
		s.logger.Error("fetching activities", "project", projectName, "error", err)
		return fmt.Errorf("fetching activities: %w", err)
	}
	if rows == nil {
		rows = []Activity{}
	}

	s.mu.Lock()
	s.activities = rows
	s.mu.Unlock()

	return nil
}

// Create submits a new activity and prepends the server's returned row
// to the mirror.
func (s *Store) Create(ctx context.Context, in Input) (Activity, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	created, err := s.gw.InsertActivity(ctx, in)
	if err != nil {
		s.logger.Error("creating activity", "error", err)
		return Activity{}, fmt.Errorf("creating activity: %w", err)
	}

	s.mu.Lock()
	s.activities = append([]Activity{created}, s.activities...)
	s.mu.Unlock()

	return created, nil
}

// Update replaces the named row remotely and substitutes the server's
// returned row at the matching mirror index. An id absent from the
// mirror is a silent local no-op.
func (s *Store) Update(ctx context.Context, id int64, in Input) (Activity, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	updated, err := s.gw.UpdateActivity(ctx, id, in)
	if err != nil {
		s.logger.Error("updating activity", "id", id, "error", err)
		return Activity{}, fmt.Errorf("updating activity: %w", err)
	}

	s.mu.Lock()
	for i := range s.activities {
		if s.activities[i].ID == id {
			s.activities[i] = updated
			break
		}
	}
	s.mu.Unlock()

	return updated, nil
}

// Delete removes the row remotely and excises it from the mirror.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.gw.DeleteActivity(ctx, id); err != nil {
		s.logger.Error("deleting activity", "id", id, "error", err)
		return fmt.Errorf("deleting activity: %w", err)
	}

	s.mu.Lock()
	kept := s.activities[:0]
	for _, a := range s.activities {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.activities = kept
	s.mu.Unlock()

	return nil
}

// SetFilters merges the patch into the current criteria. Nil fields
// keep their prior value.
func (s *Store) SetFilters(p Patch) {
	s.mu.Lock()
	if p.Urgency != nil {
		s.filters.Urgency = *p.Urgency
	}
	if p.Assigned != nil {
		s.filters.Assigned = *p.Assigned
	}
	if p.SortBy != nil {
		s.filters.SortBy = *p.SortBy
	}
	s.mu.Unlock()
}

// Filters returns the current criteria.
func (s *Store) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Filtered computes the derived view from the current mirror and
// criteria. It is recomputed on every call and never cached, so it is
// always consistent with the state it reads.
func (s *Store) Filtered() []Activity {
	s.mu.Lock()
	items := make([]Activity, len(s.activities))
	copy(items, s.activities)
	filters := s.filters
	s.mu.Unlock()

	return filters.Apply(items)
}

// Activities returns a copy of the unfiltered mirror.
func (s *Store) Activities() []Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

// Loading reports whether at least one operation appears outstanding.
// Best-effort only: with overlapping calls the first completion clears
// it while the second is still pending.
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
