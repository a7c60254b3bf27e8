package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/teampulse/attendance-backend-go/internal/domain/user"
	"github.com/teampulse/attendance-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, team_id, full_name, active
		FROM users
		WHERE id = $1
	`

	var u user.User
	err := retryRead(ctx, func() error {
		return q.QueryRow(ctx, query, id).Scan(&u.ID, &u.TeamID, &u.FullName, &u.Active)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// ListActiveByTeam implements user.UserRepository.
func (r *userRepository) ListActiveByTeam(ctx context.Context, teamID int64) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, team_id, full_name, active
		FROM users
		WHERE team_id = $1 AND active = true
		ORDER BY full_name ASC
	`

	var users []user.User
	err := retryRead(ctx, func() error {
		rows, err := q.Query(ctx, query, teamID)
		if err != nil {
			return err
		}
		defer rows.Close()

		users = users[:0]
		for rows.Next() {
			var u user.User
			if err := rows.Scan(&u.ID, &u.TeamID, &u.FullName, &u.Active); err != nil {
				return err
			}
			users = append(users, u)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list team users: %w", err)
	}

	return users, nil
}
