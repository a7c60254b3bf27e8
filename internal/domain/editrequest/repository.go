package editrequest

import (
	"context"
	"time"
)

type EditRequestRepository interface {
	// Create inserts a new pending request.
	Create(ctx context.Context, r EditRequest) (EditRequest, error)

	// GetByID retrieves a request by id.
	GetByID(ctx context.Context, id int64) (EditRequest, error)

	// SetApproved marks the request approved and stores the mark an approval
	// created (nil for in-place edits).
	SetApproved(ctx context.Context, id int64, createdMarkID *int64) error

	// SetWithdrawn marks the request withdrawn.
	SetWithdrawn(ctx context.Context, id int64) error

	// HasPendingForDate reports whether the user already has an unresolved
	// request of the given kind with ProposedAt inside [from, to].
	HasPendingForDate(ctx context.Context, userID int64, kind RequestKind, from, to time.Time) (bool, error)

	// ListPendingByUser returns the user's unresolved requests of the given
	// kind, most recent first.
	ListPendingByUser(ctx context.Context, userID int64, kind RequestKind) ([]EditRequest, error)

	// ListByTeam returns a team's requests for review, most recent first.
	ListByTeam(ctx context.Context, teamID int64, onlyPending bool, page, limit int) ([]EditRequest, int64, error)
}
