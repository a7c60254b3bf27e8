package editrequest

import (
	"context"
)

// EditRequestService defines the correction workflow. A request moves from
// pending to exactly one of approved or withdrawn; approval mutates the mark
// ledger in the same unit of work.
type EditRequestService interface {
	// Submit files a correction for the authenticated user.
	Submit(ctx context.Context, req SubmitRequest) (EditRequestResponse, error)

	// Approve applies a pending request: the targeted mark is rewritten, or a
	// new mark is materialized, atomically with the status change.
	Approve(ctx context.Context, id int64) (EditRequestResponse, error)

	// Reject withdraws a pending request without touching the ledger.
	Reject(ctx context.Context, id int64) (EditRequestResponse, error)

	// MissingExitCheck scans recent days (excluding today) where check-ins
	// outnumber check-outs and no exit request is already pending.
	MissingExitCheck(ctx context.Context, windowDays int) ([]MissingExitDay, error)

	// RequestMissingExit validates the date's entry/exit counts and files a
	// check-out request for it.
	RequestMissingExit(ctx context.Context, req MissingExitRequest) (EditRequestResponse, error)

	// ListForTeam pages a team's requests for review.
	ListForTeam(ctx context.Context, filter ListRequestsFilter) ([]EditRequestResponse, int64, error)
}
