package response

import (
	"errors"
	"net/http"

	"github.com/teampulse/attendance-backend-go/internal/domain/editrequest"
	"github.com/teampulse/attendance-backend-go/internal/domain/mark"
	"github.com/teampulse/attendance-backend-go/internal/domain/overtime"
	"github.com/teampulse/attendance-backend-go/internal/domain/project"
	"github.com/teampulse/attendance-backend-go/internal/domain/team"
	"github.com/teampulse/attendance-backend-go/internal/domain/user"
	"github.com/teampulse/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Mark ledger errors
	case errors.Is(err, mark.ErrMarkNotFound):
		NotFound(w, "Mark not found")
	case errors.Is(err, mark.ErrNotMarkOwner):
		Forbidden(w, "Mark belongs to another user")
	case errors.Is(err, mark.ErrInvalidKind):
		BadRequest(w, "Invalid mark kind", nil)

	// Edit request errors
	case errors.Is(err, editrequest.ErrRequestNotFound):
		NotFound(w, "Edit request not found")
	case errors.Is(err, editrequest.ErrAlreadyProcessed):
		Conflict(w, "Edit request already processed")
	case errors.Is(err, editrequest.ErrDuplicatePending):
		Conflict(w, "A pending request already exists for this date")
	case errors.Is(err, editrequest.ErrNoCheckInOnDate):
		BadRequest(w, "No check-in exists on this date", nil)
	case errors.Is(err, editrequest.ErrDayAlreadyClosed):
		BadRequest(w, "Day already has a check-out", nil)
	case errors.Is(err, editrequest.ErrInvalidRequestKind):
		BadRequest(w, "Invalid edit request kind", nil)

	// Overtime errors
	case errors.Is(err, overtime.ErrRequestNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, overtime.ErrAlreadyDecided):
		Conflict(w, "Overtime request already decided")
	case errors.Is(err, overtime.ErrInvalidOutcome):
		BadRequest(w, "Invalid overtime outcome", nil)

	// Project time errors
	case errors.Is(err, project.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, project.ErrEntryNotFound):
		NotFound(w, "No open project time entry")
	case errors.Is(err, project.ErrEntryAlreadyOpen):
		Conflict(w, "A project time entry is already open")

	// Reference data errors
	case errors.Is(err, team.ErrTeamNotFound):
		NotFound(w, "Team not found")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
