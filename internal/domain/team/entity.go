package team

import (
	"context"
	"errors"
	"time"
)

// Team is reference data owned by the team-management subsystem; the engine
// reads it for webhook routing and scoping only.
type Team struct {
	ID             int64
	Name           string
	WebhookURL     *string
	WebhookEnabled bool
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	GetByID(ctx context.Context, id int64) (Team, error)
}
