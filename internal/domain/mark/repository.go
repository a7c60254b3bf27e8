package mark

import (
	"context"
	"time"
)

// OpenDay is one day on which a user has more check-ins than check-outs.
type OpenDay struct {
	Date      time.Time
	CheckIns  int
	CheckOuts int
}

// MarkRepository is the Mark Ledger: the single source of truth for presence
// events. It performs no validation against prior marks; sequencing rules,
// where they exist, live in the calling workflow. Mutations are the caller's
// to serialize per user.
type MarkRepository interface {
	// Create appends a new active mark.
	Create(ctx context.Context, m Mark) (Mark, error)

	// GetByID retrieves a mark regardless of owner; ownership checks are the
	// caller's responsibility.
	GetByID(ctx context.Context, id int64) (Mark, error)

	// ListByUserAndRange returns active marks for a user with At inside
	// [from, to], ordered by At ascending.
	ListByUserAndRange(ctx context.Context, userID int64, from, to time.Time) ([]Mark, error)

	// UpdateTime rewrites a mark's instant in place. Used only by approved
	// edit requests.
	UpdateTime(ctx context.Context, id int64, at time.Time) error

	// Deactivate soft-deletes a mark.
	Deactivate(ctx context.Context, id int64) error

	// OpenDays returns the days within [from, to] on which the user has more
	// check-ins than check-outs, most recent first, capped to limit.
	OpenDays(ctx context.Context, userID int64, from, to time.Time, limit int) ([]OpenDay, error)

	// UsersCheckedInOn returns distinct (user, team) pairs with an active
	// check-in inside [from, to].
	UsersCheckedInOn(ctx context.Context, from, to time.Time) ([]UserTeam, error)

	// HasCheckOutOn reports whether the user has an active check-out inside
	// [from, to].
	HasCheckOutOn(ctx context.Context, userID int64, from, to time.Time) (bool, error)
}

// UserTeam identifies the owner scope of a day's marks.
type UserTeam struct {
	UserID int64
	TeamID int64
}
