package overtime

import (
	"context"
)

type OvertimeService interface {
	// Submit files an overtime request for the authenticated user.
	Submit(ctx context.Context, req SubmitRequest) (OvertimeResponse, error)

	// Decide records the one allowed decision on a pending request.
	Decide(ctx context.Context, req DecideRequest) (OvertimeResponse, error)

	// ListMine returns the authenticated user's requests.
	ListMine(ctx context.Context, filter ListFilter) (ListOvertimeResponse, error)

	// ListForTeam returns the authenticated user's team's requests.
	ListForTeam(ctx context.Context, filter ListFilter) (ListOvertimeResponse, error)
}
