package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/teampulse/attendance-backend-go/internal/domain/overtime"
	"github.com/teampulse/attendance-backend-go/internal/pkg/clock"
	"github.com/teampulse/attendance-backend-go/internal/pkg/database"
)

type overtimeRepository struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.OvertimeRepository {
	return &overtimeRepository{db: db}
}

// Create implements overtime.OvertimeRepository.
func (r *overtimeRepository) Create(ctx context.Context, req overtime.OvertimeRequest) (overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_requests (user_id, team_id, date, hours, reason, outcome)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.UserID,
		req.TeamID,
		req.Date,
		req.Hours,
		req.Reason,
		req.Outcome,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return overtime.OvertimeRequest{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	return req, nil
}

// GetByID implements overtime.OvertimeRepository.
func (r *overtimeRepository) GetByID(ctx context.Context, id int64) (overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, team_id, date, hours, reason, outcome,
			   decided_by, decided_at, created_at, updated_at
		FROM overtime_requests
		WHERE id = $1
	`

	var req overtime.OvertimeRequest
	err := retryRead(ctx, func() error {
		return q.QueryRow(ctx, query, id).Scan(
			&req.ID, &req.UserID, &req.TeamID, &req.Date, &req.Hours, &req.Reason, &req.Outcome,
			&req.DecidedBy, &req.DecidedAt, &req.CreatedAt, &req.UpdatedAt,
		)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.OvertimeRequest{}, overtime.ErrRequestNotFound
		}
		return overtime.OvertimeRequest{}, fmt.Errorf("failed to get overtime request: %w", err)
	}

	return req, nil
}

// SetOutcome implements overtime.OvertimeRepository. The pending predicate
// makes the decision single-shot even under concurrent admins.
func (r *overtimeRepository) SetOutcome(ctx context.Context, id int64, outcome overtime.Outcome, decidedBy int64, decidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_requests
		SET outcome = $2, decided_by = $3, decided_at = $4, updated_at = NOW()
		WHERE id = $1 AND outcome = 'pending'
	`

	tag, err := q.Exec(ctx, query, id, outcome, decidedBy, decidedAt)
	if err != nil {
		return fmt.Errorf("failed to record overtime decision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return overtime.ErrAlreadyDecided
	}

	return nil
}

// ListByUser implements overtime.OvertimeRepository.
func (r *overtimeRepository) ListByUser(ctx context.Context, userID int64, filter overtime.ListFilter) ([]overtime.OvertimeRequest, int64, error) {
	return r.list(ctx, "user_id", userID, filter)
}

// ListByTeam implements overtime.OvertimeRepository.
func (r *overtimeRepository) ListByTeam(ctx context.Context, teamID int64, filter overtime.ListFilter) ([]overtime.OvertimeRequest, int64, error) {
	return r.list(ctx, "team_id", teamID, filter)
}

func (r *overtimeRepository) list(ctx context.Context, scopeColumn string, scopeID int64, filter overtime.ListFilter) ([]overtime.OvertimeRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := scopeColumn + " = $1"
	args := []interface{}{scopeID}

	if filter.StartDate != nil {
		start, err := clock.ParseDate(*filter.StartDate)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to parse start_date: %w", err)
		}
		args = append(args, start)
		where += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		end, err := clock.ParseDate(*filter.EndDate)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to parse end_date: %w", err)
		}
		args = append(args, end)
		where += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if filter.Outcome != nil {
		args = append(args, *filter.Outcome)
		where += fmt.Sprintf(" AND outcome = $%d", len(args))
	}

	countQuery := "SELECT COUNT(*) FROM overtime_requests WHERE " + where

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	listQuery := fmt.Sprintf(`
		SELECT id, user_id, team_id, date, hours, reason, outcome,
			   decided_by, decided_at, created_at, updated_at
		FROM overtime_requests
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	var total int64
	var requests []overtime.OvertimeRequest
	err := retryRead(ctx, func() error {
		if err := q.QueryRow(ctx, countQuery, args[:len(args)-2]...).Scan(&total); err != nil {
			return err
		}

		rows, err := q.Query(ctx, listQuery, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		requests = requests[:0]
		for rows.Next() {
			var req overtime.OvertimeRequest
			if err := rows.Scan(
				&req.ID, &req.UserID, &req.TeamID, &req.Date, &req.Hours, &req.Reason, &req.Outcome,
				&req.DecidedBy, &req.DecidedAt, &req.CreatedAt, &req.UpdatedAt,
			); err != nil {
				return err
			}
			requests = append(requests, req)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list overtime requests: %w", err)
	}

	return requests, total, nil
}

// AcceptedHoursByUserAndDate implements overtime.OvertimeRepository.
func (r *overtimeRepository) AcceptedHoursByUserAndDate(ctx context.Context, userID int64, date time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(hours), 0)
		FROM overtime_requests
		WHERE user_id = $1
		  AND date = $2
		  AND outcome = 'accepted'
	`

	var hours int
	err := retryRead(ctx, func() error {
		return q.QueryRow(ctx, query, userID, date).Scan(&hours)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to sum accepted overtime hours: %w", err)
	}

	return hours, nil
}
