package editrequest

import (
	"github.com/teampulse/attendance-backend-go/internal/pkg/validator"
)

// SubmitRequest files a correction. MarkID 0 plus a new-mark kind materializes
// a missing mark on approval; a non-zero MarkID rewrites that mark's time.
type SubmitRequest struct {
	MarkID     int64       `json:"mark_id"`
	ProposedAt string      `json:"proposed_at"`
	Kind       RequestKind `json:"kind"`
}

func (r SubmitRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDateTime(r.ProposedAt); !ok {
		errs = append(errs, validator.ValidationError{Field: "proposed_at", Message: "must be an RFC3339 timestamp"})
	}
	if r.MarkID == 0 {
		if _, ok := r.Kind.MarkKind(); !ok {
			errs = append(errs, validator.ValidationError{Field: "kind", Message: "new-mark requests need kind 1 (check-in), 2 (break) or 3 (check-out)"})
		}
	} else if r.Kind != RequestKindEdit {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be 0 when editing an existing mark"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MissingExitRequest asks for a forgotten check-out to be materialized.
type MissingExitRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (r MissingExitRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidClockTime(r.Time); !ok {
		errs = append(errs, validator.ValidationError{Field: "time", Message: "must be HH:MM"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EditRequestResponse is the wire form of a request.
type EditRequestResponse struct {
	ID            int64       `json:"id"`
	MarkID        int64       `json:"mark_id"`
	UserID        int64       `json:"user_id"`
	TeamID        int64       `json:"team_id"`
	ProposedAt    string      `json:"proposed_at"`
	Kind          RequestKind `json:"kind"`
	Approved      bool        `json:"approved"`
	Withdrawn     bool        `json:"withdrawn"`
	CreatedMarkID *int64      `json:"created_mark_id,omitempty"`
	CreatedAt     string      `json:"created_at"`
}

// MissingExitDay is one unresolved day surfaced by the missing-exit scan.
type MissingExitDay struct {
	Date      string `json:"date"`
	CheckIns  int    `json:"check_ins"`
	CheckOuts int    `json:"check_outs"`
}

// ListRequestsFilter pages a team's requests for review.
type ListRequestsFilter struct {
	OnlyPending bool
	Page        int
	Limit       int
}
