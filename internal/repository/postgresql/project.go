package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/teampulse/attendance-backend-go/internal/domain/project"
	"github.com/teampulse/attendance-backend-go/internal/pkg/database"
)

type projectRepository struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &projectRepository{db: db}
}

// GetActiveByIDAndTeam implements project.ProjectRepository.
func (r *projectRepository) GetActiveByIDAndTeam(ctx context.Context, id, teamID int64) (project.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, team_id, name, active
		FROM projects
		WHERE id = $1 AND team_id = $2 AND active = true
	`

	var p project.Project
	err := retryRead(ctx, func() error {
		return q.QueryRow(ctx, query, id, teamID).Scan(&p.ID, &p.TeamID, &p.Name, &p.Active)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, project.ErrProjectNotFound
		}
		return project.Project{}, fmt.Errorf("failed to get project: %w", err)
	}

	return p, nil
}

type timeEntryRepository struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) project.TimeEntryRepository {
	return &timeEntryRepository{db: db}
}

// Create implements project.TimeEntryRepository.
func (r *timeEntryRepository) Create(ctx context.Context, e project.TimeEntry) (project.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO project_time_entries (user_id, team_id, project_id, date, opened_at, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.UserID,
		e.TeamID,
		e.ProjectID,
		e.Date,
		e.OpenedAt,
		e.Active,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return project.TimeEntry{}, fmt.Errorf("failed to create project time entry: %w", err)
	}

	return e, nil
}

// GetOpenByUser implements project.TimeEntryRepository.
func (r *timeEntryRepository) GetOpenByUser(ctx context.Context, userID int64) (project.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.user_id, e.team_id, e.project_id, e.date, e.opened_at,
			   e.closed_at, e.report, e.active, e.created_at, e.updated_at, p.name
		FROM project_time_entries e
		JOIN projects p ON p.id = e.project_id
		WHERE e.user_id = $1
		  AND e.closed_at IS NULL
		  AND e.active = true
		ORDER BY e.opened_at DESC
		LIMIT 1
	`

	var e project.TimeEntry
	err := retryRead(ctx, func() error {
		return q.QueryRow(ctx, query, userID).Scan(
			&e.ID, &e.UserID, &e.TeamID, &e.ProjectID, &e.Date, &e.OpenedAt,
			&e.ClosedAt, &e.Report, &e.Active, &e.CreatedAt, &e.UpdatedAt, &e.ProjectName,
		)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.TimeEntry{}, project.ErrEntryNotFound
		}
		return project.TimeEntry{}, fmt.Errorf("failed to get open project entry: %w", err)
	}

	return e, nil
}

// Close implements project.TimeEntryRepository.
func (r *timeEntryRepository) Close(ctx context.Context, id int64, closedAt time.Time, report string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE project_time_entries
		SET closed_at = $2, report = $3, updated_at = NOW()
		WHERE id = $1 AND closed_at IS NULL AND active = true
	`

	tag, err := q.Exec(ctx, query, id, closedAt, report)
	if err != nil {
		return fmt.Errorf("failed to close project entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return project.ErrEntryNotFound
	}

	return nil
}

// ListByUserAndRange implements project.TimeEntryRepository.
func (r *timeEntryRepository) ListByUserAndRange(ctx context.Context, userID int64, from, to time.Time) ([]project.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.user_id, e.team_id, e.project_id, e.date, e.opened_at,
			   e.closed_at, e.report, e.active, e.created_at, e.updated_at, p.name
		FROM project_time_entries e
		JOIN projects p ON p.id = e.project_id
		WHERE e.user_id = $1
		  AND e.date BETWEEN $2 AND $3
		  AND e.active = true
		ORDER BY e.opened_at ASC
	`

	var entries []project.TimeEntry
	err := retryRead(ctx, func() error {
		rows, err := q.Query(ctx, query, userID, from, to)
		if err != nil {
			return err
		}
		defer rows.Close()

		entries = entries[:0]
		for rows.Next() {
			var e project.TimeEntry
			if err := rows.Scan(
				&e.ID, &e.UserID, &e.TeamID, &e.ProjectID, &e.Date, &e.OpenedAt,
				&e.ClosedAt, &e.Report, &e.Active, &e.CreatedAt, &e.UpdatedAt, &e.ProjectName,
			); err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list project entries: %w", err)
	}

	return entries, nil
}
