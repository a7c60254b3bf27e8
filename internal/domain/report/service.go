package report

import (
	"context"
)

type ReportService interface {
	// Range aggregates per (user, date) rows over an inclusive date range,
	// scoped to one team or one user.
	Range(ctx context.Context, filter RangeFilter) (RangeReport, error)

	// TeamDay is a single-day team report for dashboards.
	TeamDay(ctx context.Context, date string) (RangeReport, error)
}
