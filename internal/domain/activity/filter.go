package activity

import (
	"math"
	"sort"
)

// SortField selects the key for ordering the filtered view.
type SortField string

const (
	SortByCreatedAt    SortField = "created_at"
	SortByUrgency      SortField = "urgency"
	SortByProgress     SortField = "progress"
	SortByExpectedTime SortField = "expected_time"
)

// Filters is the user-controlled criteria for the derived view.
// Urgency empty means no urgency filter. Assigned is tri-state: empty
// means no filter, otherwise it is interpreted as a boolean where only
// the literal "true" is true.
type Filters struct {
	Urgency  string
	Assigned string
	SortBy   SortField
}

// DefaultFilters returns the initial criteria: no filtering, newest
// first.
func DefaultFilters() Filters {
	return Filters{SortBy: SortByCreatedAt}
}

// Patch is a partial update of Filters. Nil fields keep their prior
// value.
type Patch struct {
	Urgency  *string
	Assigned *string
	SortBy   *SortField
}

var urgencyRank = map[string]int{
	UrgencyHigh:   3,
	UrgencyMedium: 2,
	UrgencyLow:    1,
}

// Apply computes the filtered, sorted view of the given activities. It
// is a pure function: the input slice is copied, never mutated, and the
// sort is stable so equal keys keep their relative order.
func (f Filters) Apply(items []Activity) []Activity {
	filtered := make([]Activity, 0, len(items))
	for _, a := range items {
		if f.Urgency != "" && a.Urgency != f.Urgency {
			continue
		}
		if f.Assigned != "" && a.Assigned != (f.Assigned == "true") {
			continue
		}
		filtered = append(filtered, a)
	}

	less := sortLess(f.SortBy)
	sort.SliceStable(filtered, func(i, j int) bool {
		return less(filtered[i], filtered[j])
	})

	return filtered
}

// sortLess returns a descending comparison for the sort field. Unknown
// urgency values rank 0, below Low. Non-numeric progress parses to NaN
// and orders below any number.
func sortLess(field SortField) func(a, b Activity) bool {
	switch field {
	case SortByUrgency:
		return func(a, b Activity) bool {
			return urgencyRank[a.Urgency] > urgencyRank[b.Urgency]
		}
	case SortByProgress:
		return func(a, b Activity) bool {
			return numericGreater(a.Progress.Value(), b.Progress.Value())
		}
	case SortByExpectedTime:
		return func(a, b Activity) bool {
			return a.ExpectedTime > b.ExpectedTime
		}
	default:
		return func(a, b Activity) bool {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
}

func numericGreater(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}
