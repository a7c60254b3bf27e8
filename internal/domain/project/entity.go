package project

import (
	"time"
)

// Project is reference data owned by team management; consumed read-only.
type Project struct {
	ID     int64
	TeamID int64
	Name   string
	Active bool
}

// TimeEntry is one open/close pair of special-project time. At most one entry
// per user may have ClosedAt unset at any time, and closing requires a
// non-empty report.
type TimeEntry struct {
	ID        int64
	UserID    int64
	TeamID    int64
	ProjectID int64
	Date      time.Time
	OpenedAt  time.Time
	ClosedAt  *time.Time
	Report    *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	ProjectName *string
}

// Seconds returns the entry's elapsed duration. Unlike break time, project
// time is never capped.
func (e TimeEntry) Seconds(now time.Time) int64 {
	end := now
	if e.ClosedAt != nil {
		end = *e.ClosedAt
	}
	s := int64(end.Sub(e.OpenedAt).Seconds())
	if s < 0 {
		return 0
	}
	return s
}
