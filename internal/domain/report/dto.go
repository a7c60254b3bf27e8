package report

import (
	"github.com/teampulse/attendance-backend-go/internal/domain/mark"
	"github.com/teampulse/attendance-backend-go/internal/pkg/validator"
)

// RangeFilter scopes a report to one team or one user over an inclusive date
// range. Exactly one of TeamID/UserID is set.
type RangeFilter struct {
	TeamID    *int64
	UserID    *int64
	StartDate string
	EndDate   string
}

func (f RangeFilter) Validate() error {
	var errs validator.ValidationErrors
	start, okStart := validator.IsValidDate(f.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	end, okEnd := validator.IsValidDate(f.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if (f.TeamID == nil) == (f.UserID == nil) {
		errs = append(errs, validator.ValidationError{Field: "scope", Message: "exactly one of team_id or user_id is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ProjectDetail is one project entry expanded on single-user reports.
type ProjectDetail struct {
	ProjectName string  `json:"project_name"`
	OpenedAt    string  `json:"opened_at"`
	ClosedAt    *string `json:"closed_at,omitempty"`
	Seconds     int64   `json:"seconds"`
	Report      *string `json:"report,omitempty"`
}

// Row is one (user, date) line. Days with zero marks are omitted entirely.
type Row struct {
	UserID         int64           `json:"user_id"`
	UserName       string          `json:"user_name"`
	Date           string          `json:"date"`
	Holiday        *string         `json:"holiday,omitempty"`
	GrossSeconds   int64           `json:"gross_seconds"`
	BreakSeconds   int64           `json:"break_seconds"`
	NetSeconds     int64           `json:"net_seconds"`
	Status         mark.DayStatus  `json:"status"`
	OvertimeHours  int             `json:"overtime_hours"`
	ProjectSeconds int64           `json:"project_seconds"`
	Projects       []ProjectDetail `json:"projects,omitempty"`
}

// RangeReport is the aggregated output for a date range.
type RangeReport struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Rows      []Row  `json:"rows"`
}
