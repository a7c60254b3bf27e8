package user

import (
	"context"
	"errors"
)

// User carries the display fields the engine needs for reports and webhook
// cards. Account state and credentials live in the external auth system.
type User struct {
	ID       int64
	TeamID   int64
	FullName string
	Active   bool
}

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (User, error)

	// ListActiveByTeam returns the team's active users for report fan-out.
	ListActiveByTeam(ctx context.Context, teamID int64) ([]User, error)
}
