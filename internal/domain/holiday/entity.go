package holiday

import (
	"context"
)

// Holiday is a recurring organizational holiday. Only the day/month pair is
// authoritative; holidays are assumed to recur annually on fixed dates.
type Holiday struct {
	ID    int64
	Name  string
	Day   int
	Month int
}

type HolidayRepository interface {
	List(ctx context.Context) ([]Holiday, error)
}
