package overtime

import "errors"

var (
	ErrRequestNotFound = errors.New("overtime request not found")
	ErrAlreadyDecided  = errors.New("overtime request has already been decided")
	ErrInvalidOutcome  = errors.New("invalid overtime outcome")
)
