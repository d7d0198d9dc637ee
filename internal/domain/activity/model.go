package activity

import (
	"math"
	"strconv"
	"time"
)

// Urgency levels as stored in the activities table.
const (
	UrgencyHigh   = "High"
	UrgencyMedium = "Medium"
	UrgencyLow    = "Low"
)

// Progress is a decimal value stored as text server-side. Construct it
// with ProgressText or ProgressValue so numeric input is normalized at
// the boundary instead of at call sites.
type Progress string

// ProgressText wraps an already-textual progress value.
func ProgressText(s string) Progress {
	return Progress(s)
}

// ProgressValue formats a numeric progress value as text.
func ProgressValue(v float64) Progress {
	return Progress(strconv.FormatFloat(v, 'f', -1, 64))
}

// Value parses the text back to a number. Non-numeric text yields NaN.
func (p Progress) Value() float64 {
	v, err := strconv.ParseFloat(string(p), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Activity is a row of the activities table. ID and CreatedAt are
// server-assigned.
type Activity struct {
	ID            int64     `json:"id"`
	ProjectName   string    `json:"project_name"`
	ActivityName  string    `json:"activity_name"`
	Progress      Progress  `json:"progress"`
	ExpectedTime  float64   `json:"expected_time"`
	Urgency       string    `json:"urgency"`
	Notes         string    `json:"notes"`
	Assigned      bool      `json:"assigned"`
	AssignedToWho string    `json:"assigned_to_who"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// Input carries the writable fields of an activity. Zero values are the
// persisted defaults: optional fields never reach the table as absent.
type Input struct {
	ProjectName   string   `json:"project_name"`
	ActivityName  string   `json:"activity_name"`
	Progress      Progress `json:"progress"`
	ExpectedTime  float64  `json:"expected_time"`
	Urgency       string   `json:"urgency"`
	Notes         string   `json:"notes"`
	Assigned      bool     `json:"assigned"`
	AssignedToWho string   `json:"assigned_to_who"`
	CreatedBy     string   `json:"created_by"`
}
