package project

import (
	"context"
	"time"
)

// ProjectRepository reads project reference data.
type ProjectRepository interface {
	// GetActiveByIDAndTeam retrieves an active project scoped to the team.
	GetActiveByIDAndTeam(ctx context.Context, id, teamID int64) (Project, error)
}

// TimeEntryRepository stores special-project open/close pairs.
type TimeEntryRepository interface {
	Create(ctx context.Context, e TimeEntry) (TimeEntry, error)

	// GetOpenByUser returns the user's entry with ClosedAt unset, if any.
	GetOpenByUser(ctx context.Context, userID int64) (TimeEntry, error)

	// Close records ClosedAt and the mandatory report on an open entry.
	Close(ctx context.Context, id int64, closedAt time.Time, report string) error

	// ListByUserAndRange returns active entries with Date inside [from, to],
	// ordered by OpenedAt ascending.
	ListByUserAndRange(ctx context.Context, userID int64, from, to time.Time) ([]TimeEntry, error)
}
