package overtime

import (
	"time"
)

// Outcome is the tri-state decision on an overtime request.
type Outcome string

const (
	OutcomePending  Outcome = "pending"
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
)

func (o Outcome) Valid() bool {
	switch o {
	case OutcomePending, OutcomeAccepted, OutcomeRejected:
		return true
	}
	return false
}

// OvertimeRequest asks to log overtime hours for a date. It never touches the
// mark ledger; accepted hours are only consumed by reporting.
type OvertimeRequest struct {
	ID        int64
	UserID    int64
	TeamID    int64
	Date      time.Time
	Hours     int
	Reason    string
	Outcome   Outcome
	DecidedBy *int64
	DecidedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
