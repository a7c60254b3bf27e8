package project

import "errors"

var (
	ErrProjectNotFound  = errors.New("project not found or not available to this team")
	ErrEntryNotFound    = errors.New("no open project time entry for this user")
	ErrEntryAlreadyOpen = errors.New("an open project time entry already exists for this user")
)
