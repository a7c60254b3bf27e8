package mark

import (
	"context"
)

// MarkService defines the manual check actions and day views.
type MarkService interface {
	// Register appends a presence event for the authenticated user at the
	// current instant.
	Register(ctx context.Context, req RegisterMarkRequest) (MarkResponse, error)

	// Today returns the authenticated user's marks and derived summary for
	// the current organizational day.
	Today(ctx context.Context) (TodayResponse, error)

	// ListMine pages the authenticated user's marks over a date range.
	ListMine(ctx context.Context, filter ListMarksFilter) ([]MarkResponse, error)
}
