package project

import (
	"github.com/teampulse/attendance-backend-go/internal/domain/mark"
	"github.com/teampulse/attendance-backend-go/internal/pkg/validator"
)

// OpenRequest starts project time on a named project.
type OpenRequest struct {
	ProjectID int64 `json:"project_id"`
}

func (r OpenRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.ProjectID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "project_id", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CloseRequest ends the caller's open entry. The report is mandatory.
type CloseRequest struct {
	Report string `json:"report"`
}

func (r CloseRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Report) {
		errs = append(errs, validator.ValidationError{Field: "report", Message: "is required to close project time"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EntryResponse is the wire form of a time entry.
type EntryResponse struct {
	ID          int64   `json:"id"`
	ProjectID   int64   `json:"project_id"`
	ProjectName *string `json:"project_name,omitempty"`
	Date        string  `json:"date"`
	OpenedAt    string  `json:"opened_at"`
	ClosedAt    *string `json:"closed_at,omitempty"`
	Report      *string `json:"report,omitempty"`
	Seconds     int64   `json:"seconds"`
}

// CloseResponse reports the elapsed duration of the closed entry.
type CloseResponse struct {
	Entry   EntryResponse `json:"entry"`
	Seconds int64         `json:"seconds"`
}

// ThresholdResponse is the advisory 9-hour gate plus whether the caller
// currently has project time running.
type ThresholdResponse struct {
	Threshold mark.ThresholdStatus `json:"threshold"`
	HasOpen   bool                 `json:"has_open_entry"`
}
