package project

import (
	"context"
)

type ProjectTimeService interface {
	// Open starts project time for the authenticated user. At most one entry
	// may be open per user.
	Open(ctx context.Context, req OpenRequest) (EntryResponse, error)

	// Close ends the open entry with a mandatory report and returns the
	// uncapped elapsed duration.
	Close(ctx context.Context, req CloseRequest) (CloseResponse, error)

	// ThresholdStatus reports the advisory 9-hour gate for today plus
	// whether the caller has project time running.
	ThresholdStatus(ctx context.Context) (ThresholdResponse, error)

	// ListMine returns the caller's entries for a date range.
	ListMine(ctx context.Context, startDate, endDate string) ([]EntryResponse, error)
}
