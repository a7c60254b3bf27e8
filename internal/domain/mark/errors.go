package mark

import "errors"

// Mark domain errors
var (
	ErrMarkNotFound = errors.New("mark not found")
	ErrNotMarkOwner = errors.New("mark does not belong to the requesting user")
	ErrInvalidKind  = errors.New("invalid mark kind")
)
