package mark

import (
	"github.com/teampulse/attendance-backend-go/internal/pkg/validator"
)

// RegisterMarkRequest records a manual check action for the caller.
type RegisterMarkRequest struct {
	Kind Kind `json:"kind"`
}

func (r RegisterMarkRequest) Validate() error {
	var errs validator.ValidationErrors
	if !r.Kind.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "must be one of entrada, descanso, salida",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MarkResponse is the wire form of one ledger entry.
type MarkResponse struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	TeamID int64  `json:"team_id"`
	Kind   Kind   `json:"kind"`
	At     string `json:"at"`
	Time   string `json:"time"`
}

// DaySummary bundles the derived figures for one user's day.
type DaySummary struct {
	GrossSeconds   int64     `json:"gross_seconds"`
	BreakSeconds   int64     `json:"break_seconds"`
	NetSeconds     int64     `json:"net_seconds"`
	ProjectSeconds int64     `json:"project_seconds"`
	Status         DayStatus `json:"status"`
}

// ThresholdStatus reports the advisory 9-hour net gate for special-project
// time. It is informational; nothing blocks on it.
type ThresholdStatus struct {
	Reached          bool  `json:"reached"`
	NetSeconds       int64 `json:"net_seconds"`
	ThresholdSeconds int64 `json:"threshold_seconds"`
}

// TodayResponse is the caller's current day: raw marks plus derived summary.
type TodayResponse struct {
	Date    string         `json:"date"`
	Marks   []MarkResponse `json:"marks"`
	Summary DaySummary     `json:"summary"`
}

// ListMarksFilter pages a user's marks over a date range.
type ListMarksFilter struct {
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

func (f ListMarksFilter) Validate() error {
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
	if len(errs) > 0 {
		return errs
	}
	return nil
}
