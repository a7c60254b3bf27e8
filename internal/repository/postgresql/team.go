package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/teampulse/attendance-backend-go/internal/domain/team"
	"github.com/teampulse/attendance-backend-go/internal/pkg/database"
)

type teamRepository struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) team.TeamRepository {
	return &teamRepository{db: db}
}

// GetByID implements team.TeamRepository.
func (r *teamRepository) GetByID(ctx context.Context, id int64) (team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, webhook_url, webhook_enabled, active, created_at, updated_at
		FROM teams
		WHERE id = $1 AND active = true
	`

	var t team.Team
	err := retryRead(ctx, func() error {
		return q.QueryRow(ctx, query, id).Scan(
			&t.ID, &t.Name, &t.WebhookURL, &t.WebhookEnabled, &t.Active,
			&t.CreatedAt, &t.UpdatedAt,
		)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return team.Team{}, team.ErrTeamNotFound
		}
		return team.Team{}, fmt.Errorf("failed to get team: %w", err)
	}

	return t, nil
}
