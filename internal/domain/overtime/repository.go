package overtime

import (
	"context"
	"time"
)

type OvertimeRepository interface {
	Create(ctx context.Context, r OvertimeRequest) (OvertimeRequest, error)

	GetByID(ctx context.Context, id int64) (OvertimeRequest, error)

	// SetOutcome records the single allowed decision.
	SetOutcome(ctx context.Context, id int64, outcome Outcome, decidedBy int64, decidedAt time.Time) error

	// ListByUser returns the user's requests, most recent first.
	ListByUser(ctx context.Context, userID int64, filter ListFilter) ([]OvertimeRequest, int64, error)

	// ListByTeam returns a team's requests (admin view), most recent first.
	ListByTeam(ctx context.Context, teamID int64, filter ListFilter) ([]OvertimeRequest, int64, error)

	// AcceptedHoursByUserAndDate sums accepted hours for a user on one date.
	AcceptedHoursByUserAndDate(ctx context.Context, userID int64, date time.Time) (int, error)
}
