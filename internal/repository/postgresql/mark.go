package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/teampulse/attendance-backend-go/internal/domain/mark"
	"github.com/teampulse/attendance-backend-go/internal/pkg/database"
)

type markRepository struct {
	db *database.DB
}

func NewMarkRepository(db *database.DB) mark.MarkRepository {
	return &markRepository{db: db}
}

// Create implements mark.MarkRepository.
func (r *markRepository) Create(ctx context.Context, m mark.Mark) (mark.Mark, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO marks (user_id, team_id, kind, at, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		m.UserID,
		m.TeamID,
		m.Kind,
		m.At,
		m.Active,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return mark.Mark{}, fmt.Errorf("failed to create mark: %w", err)
	}

	return m, nil
}

// GetByID implements mark.MarkRepository.
func (r *markRepository) GetByID(ctx context.Context, id int64) (mark.Mark, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, team_id, kind, at, active, created_at, updated_at
		FROM marks
		WHERE id = $1
	`

	var m mark.Mark
	err := retryRead(ctx, func() error {
		return q.QueryRow(ctx, query, id).Scan(
			&m.ID, &m.UserID, &m.TeamID, &m.Kind, &m.At, &m.Active,
			&m.CreatedAt, &m.UpdatedAt,
		)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mark.Mark{}, mark.ErrMarkNotFound
		}
		return mark.Mark{}, fmt.Errorf("failed to get mark: %w", err)
	}

	return m, nil
}

// ListByUserAndRange implements mark.MarkRepository.
func (r *markRepository) ListByUserAndRange(ctx context.Context, userID int64, from, to time.Time) ([]mark.Mark, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, team_id, kind, at, active, created_at, updated_at
		FROM marks
		WHERE user_id = $1
		  AND at BETWEEN $2 AND $3
		  AND active = true
		ORDER BY at ASC
	`

	var marks []mark.Mark
	err := retryRead(ctx, func() error {
		rows, err := q.Query(ctx, query, userID, from, to)
		if err != nil {
			return err
		}
		defer rows.Close()

		marks = marks[:0]
		for rows.Next() {
			var m mark.Mark
			if err := rows.Scan(
				&m.ID, &m.UserID, &m.TeamID, &m.Kind, &m.At, &m.Active,
				&m.CreatedAt, &m.UpdatedAt,
			); err != nil {
				return err
			}
			marks = append(marks, m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list marks: %w", err)
	}

	return marks, nil
}

// UpdateTime implements mark.MarkRepository.
func (r *markRepository) UpdateTime(ctx context.Context, id int64, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE marks
		SET at = $2, updated_at = NOW()
		WHERE id = $1 AND active = true
	`

	tag, err := q.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to update mark time: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return mark.ErrMarkNotFound
	}

	return nil
}

// Deactivate implements mark.MarkRepository.
func (r *markRepository) Deactivate(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE marks
		SET active = false, updated_at = NOW()
		WHERE id = $1 AND active = true
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate mark: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return mark.ErrMarkNotFound
	}

	return nil
}

// OpenDays implements mark.MarkRepository. A day is open when it has more
// check-ins than check-outs; the timezone boundary is the caller's concern,
// here days are grouped in the organizational offset.
func (r *markRepository) OpenDays(ctx context.Context, userID int64, from, to time.Time, limit int) ([]mark.OpenDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT date_trunc('day', at AT TIME ZONE INTERVAL '-06:00') AS day,
			   COUNT(*) FILTER (WHERE kind = 'entrada')  AS check_ins,
			   COUNT(*) FILTER (WHERE kind = 'salida')   AS check_outs
		FROM marks
		WHERE user_id = $1
		  AND at BETWEEN $2 AND $3
		  AND active = true
		GROUP BY day
		HAVING COUNT(*) FILTER (WHERE kind = 'entrada') > COUNT(*) FILTER (WHERE kind = 'salida')
		ORDER BY day DESC
		LIMIT $4
	`

	var days []mark.OpenDay
	err := retryRead(ctx, func() error {
		rows, err := q.Query(ctx, query, userID, from, to, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		days = days[:0]
		for rows.Next() {
			var d mark.OpenDay
			if err := rows.Scan(&d.Date, &d.CheckIns, &d.CheckOuts); err != nil {
				return err
			}
			days = append(days, d)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list open days: %w", err)
	}

	return days, nil
}

// UsersCheckedInOn implements mark.MarkRepository.
func (r *markRepository) UsersCheckedInOn(ctx context.Context, from, to time.Time) ([]mark.UserTeam, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT user_id, team_id
		FROM marks
		WHERE kind = 'entrada'
		  AND at BETWEEN $1 AND $2
		  AND active = true
	`

	var users []mark.UserTeam
	err := retryRead(ctx, func() error {
		rows, err := q.Query(ctx, query, from, to)
		if err != nil {
			return err
		}
		defer rows.Close()

		users = users[:0]
		for rows.Next() {
			var u mark.UserTeam
			if err := rows.Scan(&u.UserID, &u.TeamID); err != nil {
				return err
			}
			users = append(users, u)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list checked-in users: %w", err)
	}

	return users, nil
}

// HasCheckOutOn implements mark.MarkRepository.
func (r *markRepository) HasCheckOutOn(ctx context.Context, userID int64, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM marks
			WHERE user_id = $1
			  AND kind = 'salida'
			  AND at BETWEEN $2 AND $3
			  AND active = true
		)
	`

	var exists bool
	err := retryRead(ctx, func() error {
		return q.QueryRow(ctx, query, userID, from, to).Scan(&exists)
	})
	if err != nil {
		return false, fmt.Errorf("failed to check for check-out: %w", err)
	}

	return exists, nil
}
