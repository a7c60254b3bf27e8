package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/teampulse/attendance-backend-go/internal/domain/editrequest"
	"github.com/teampulse/attendance-backend-go/internal/pkg/database"
)

type editRequestRepository struct {
	db *database.DB
}

func NewEditRequestRepository(db *database.DB) editrequest.EditRequestRepository {
	return &editRequestRepository{db: db}
}

// Create implements editrequest.EditRequestRepository.
func (r *editRequestRepository) Create(ctx context.Context, req editrequest.EditRequest) (editrequest.EditRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO edit_requests (mark_id, user_id, team_id, proposed_at, kind)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.MarkID,
		req.UserID,
		req.TeamID,
		req.ProposedAt,
		req.Kind,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return editrequest.EditRequest{}, fmt.Errorf("failed to create edit request: %w", err)
	}

	return req, nil
}

// GetByID implements editrequest.EditRequestRepository.
func (r *editRequestRepository) GetByID(ctx context.Context, id int64) (editrequest.EditRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, mark_id, user_id, team_id, proposed_at, kind,
			   approved, withdrawn, created_mark_id, created_at, updated_at
		FROM edit_requests
		WHERE id = $1
	`

	var req editrequest.EditRequest
	err := retryRead(ctx, func() error {
		return q.QueryRow(ctx, query, id).Scan(
			&req.ID, &req.MarkID, &req.UserID, &req.TeamID, &req.ProposedAt, &req.Kind,
			&req.Approved, &req.Withdrawn, &req.CreatedMarkID, &req.CreatedAt, &req.UpdatedAt,
		)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return editrequest.EditRequest{}, editrequest.ErrRequestNotFound
		}
		return editrequest.EditRequest{}, fmt.Errorf("failed to get edit request: %w", err)
	}

	return req, nil
}

// SetApproved implements editrequest.EditRequestRepository. The pending
// predicate in the WHERE clause makes concurrent approvals lose cleanly.
func (r *editRequestRepository) SetApproved(ctx context.Context, id int64, createdMarkID *int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE edit_requests
		SET approved = true, created_mark_id = $2, updated_at = NOW()
		WHERE id = $1 AND approved = false AND withdrawn = false
	`

	tag, err := q.Exec(ctx, query, id, createdMarkID)
	if err != nil {
		return fmt.Errorf("failed to approve edit request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return editrequest.ErrAlreadyProcessed
	}

	return nil
}

// SetWithdrawn implements editrequest.EditRequestRepository.
func (r *editRequestRepository) SetWithdrawn(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE edit_requests
		SET withdrawn = true, updated_at = NOW()
		WHERE id = $1 AND approved = false AND withdrawn = false
	`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to withdraw edit request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return editrequest.ErrAlreadyProcessed
	}

	return nil
}

// HasPendingForDate implements editrequest.EditRequestRepository.
func (r *editRequestRepository) HasPendingForDate(ctx context.Context, userID int64, kind editrequest.RequestKind, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM edit_requests
			WHERE user_id = $1
			  AND kind = $2
			  AND proposed_at BETWEEN $3 AND $4
			  AND approved = false AND withdrawn = false
		)
	`

	var exists bool
	err := retryRead(ctx, func() error {
		return q.QueryRow(ctx, query, userID, kind, from, to).Scan(&exists)
	})
	if err != nil {
		return false, fmt.Errorf("failed to check for pending request: %w", err)
	}

	return exists, nil
}

// ListPendingByUser implements editrequest.EditRequestRepository.
func (r *editRequestRepository) ListPendingByUser(ctx context.Context, userID int64, kind editrequest.RequestKind) ([]editrequest.EditRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, mark_id, user_id, team_id, proposed_at, kind,
			   approved, withdrawn, created_mark_id, created_at, updated_at
		FROM edit_requests
		WHERE user_id = $1
		  AND kind = $2
		  AND approved = false AND withdrawn = false
		ORDER BY proposed_at DESC
	`

	var requests []editrequest.EditRequest
	err := retryRead(ctx, func() error {
		rows, err := q.Query(ctx, query, userID, kind)
		if err != nil {
			return err
		}
		defer rows.Close()

		requests = requests[:0]
		for rows.Next() {
			var req editrequest.EditRequest
			if err := rows.Scan(
				&req.ID, &req.MarkID, &req.UserID, &req.TeamID, &req.ProposedAt, &req.Kind,
				&req.Approved, &req.Withdrawn, &req.CreatedMarkID, &req.CreatedAt, &req.UpdatedAt,
			); err != nil {
				return err
			}
			requests = append(requests, req)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}

	return requests, nil
}

// ListByTeam implements editrequest.EditRequestRepository.
func (r *editRequestRepository) ListByTeam(ctx context.Context, teamID int64, onlyPending bool, page, limit int) ([]editrequest.EditRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "team_id = $1"
	if onlyPending {
		where += " AND approved = false AND withdrawn = false"
	}

	countQuery := "SELECT COUNT(*) FROM edit_requests WHERE " + where
	listQuery := `
		SELECT id, mark_id, user_id, team_id, proposed_at, kind,
			   approved, withdrawn, created_mark_id, created_at, updated_at
		FROM edit_requests
		WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var total int64
	var requests []editrequest.EditRequest
	err := retryRead(ctx, func() error {
		if err := q.QueryRow(ctx, countQuery, teamID).Scan(&total); err != nil {
			return err
		}

		rows, err := q.Query(ctx, listQuery, teamID, limit, (page-1)*limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		requests = requests[:0]
		for rows.Next() {
			var req editrequest.EditRequest
			if err := rows.Scan(
				&req.ID, &req.MarkID, &req.UserID, &req.TeamID, &req.ProposedAt, &req.Kind,
				&req.Approved, &req.Withdrawn, &req.CreatedMarkID, &req.CreatedAt, &req.UpdatedAt,
			); err != nil {
				return err
			}
			requests = append(requests, req)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list team requests: %w", err)
	}

	return requests, total, nil
}
