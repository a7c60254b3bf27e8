package editrequest

import "errors"

// Correction workflow errors
var (
	ErrRequestNotFound    = errors.New("edit request not found")
	ErrAlreadyProcessed   = errors.New("edit request has already been approved or withdrawn")
	ErrDuplicatePending   = errors.New("an unresolved request of this kind already exists for that date")
	ErrNoCheckInOnDate    = errors.New("no check-in recorded on that date")
	ErrDayAlreadyClosed   = errors.New("that date already has a check-out for every check-in")
	ErrInvalidRequestKind = errors.New("invalid edit request kind")
)
