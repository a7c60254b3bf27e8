package overtime

import (
	"github.com/teampulse/attendance-backend-go/internal/pkg/validator"
)

// SubmitRequest files an overtime request for a date.
type SubmitRequest struct {
	Date   string `json:"date"`
	Hours  int    `json:"hours"`
	Reason string `json:"reason"`
}

func (r SubmitRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if r.Hours < 1 || r.Hours > 24 {
		errs = append(errs, validator.ValidationError{Field: "hours", Message: "must be between 1 and 24"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DecideRequest records the approver's decision.
type DecideRequest struct {
	ID      int64   `json:"-"`
	Outcome Outcome `json:"outcome"`
}

func (r DecideRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Outcome != OutcomeAccepted && r.Outcome != OutcomeRejected {
		errs = append(errs, validator.ValidationError{Field: "outcome", Message: "must be accepted or rejected"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListFilter narrows overtime listings.
type ListFilter struct {
	StartDate *string
	EndDate   *string
	Outcome   *Outcome
	Page      int
	Limit     int
}

func (f ListFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if f.Outcome != nil && !f.Outcome.Valid() {
		errs = append(errs, validator.ValidationError{Field: "outcome", Message: "must be pending, accepted or rejected"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// OvertimeResponse is the wire form of a request.
type OvertimeResponse struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	TeamID    int64   `json:"team_id"`
	Date      string  `json:"date"`
	Hours     int     `json:"hours"`
	Reason    string  `json:"reason"`
	Outcome   Outcome `json:"outcome"`
	DecidedBy *int64  `json:"decided_by,omitempty"`
	DecidedAt *string `json:"decided_at,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// ListOvertimeResponse pages OvertimeResponse rows.
type ListOvertimeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Requests   []OvertimeResponse `json:"requests"`
}
