package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/teampulse/attendance-backend-go/internal/domain/mark"
	"github.com/teampulse/attendance-backend-go/internal/domain/project"
	"github.com/teampulse/attendance-backend-go/internal/domain/team"
	"github.com/teampulse/attendance-backend-go/internal/pkg/clock"
	"github.com/teampulse/attendance-backend-go/internal/pkg/identity"
	"github.com/teampulse/attendance-backend-go/internal/pkg/userlock"
	"github.com/teampulse/attendance-backend-go/internal/pkg/webhook"
	calc "github.com/teampulse/attendance-backend-go/internal/service/mark"
)

type ProjectTimeServiceImpl struct {
	project.ProjectRepository
	project.TimeEntryRepository
	markRepo mark.MarkRepository
	teamRepo team.TeamRepository
	locker   *userlock.Locker
	sender   webhook.Sender
	now      func() time.Time
}

func NewProjectTimeService(
	projectRepo project.ProjectRepository,
	entryRepo project.TimeEntryRepository,
	markRepo mark.MarkRepository,
	teamRepo team.TeamRepository,
	locker *userlock.Locker,
	sender webhook.Sender,
) project.ProjectTimeService {
	return &ProjectTimeServiceImpl{
		ProjectRepository:   projectRepo,
		TimeEntryRepository: entryRepo,
		markRepo:            markRepo,
		teamRepo:            teamRepo,
		locker:              locker,
		sender:              sender,
		now:                 time.Now,
	}
}

// Open implements project.ProjectTimeService.
func (s *ProjectTimeServiceImpl) Open(ctx context.Context, req project.OpenRequest) (project.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return project.EntryResponse{}, err
	}

	userID, teamID, err := identity.FromContext(ctx)
	if err != nil {
		return project.EntryResponse{}, err
	}

	proj, err := s.ProjectRepository.GetActiveByIDAndTeam(ctx, req.ProjectID, teamID)
	if err != nil {
		return project.EntryResponse{}, err
	}

	s.locker.Lock(userID)
	defer s.locker.Unlock(userID)

	if _, err := s.TimeEntryRepository.GetOpenByUser(ctx, userID); err == nil {
		return project.EntryResponse{}, project.ErrEntryAlreadyOpen
	} else if !errors.Is(err, project.ErrEntryNotFound) {
		return project.EntryResponse{}, fmt.Errorf("failed to check for open project entry: %w", err)
	}

	now := s.now()
	created, err := s.TimeEntryRepository.Create(ctx, project.TimeEntry{
		UserID:    userID,
		TeamID:    teamID,
		ProjectID: proj.ID,
		Date:      clock.Today(now),
		OpenedAt:  now,
		Active:    true,
	})
	if err != nil {
		return project.EntryResponse{}, fmt.Errorf("failed to open project entry: %w", err)
	}
	created.ProjectName = &proj.Name

	s.notify(teamID, "project_started", map[string]string{
		"user_id": fmt.Sprintf("%d", userID),
		"project": proj.Name,
		"at":      now.In(clock.Location).Format(time.RFC3339),
	})

	return s.toEntryResponse(created), nil
}

// Close implements project.ProjectTimeService.
func (s *ProjectTimeServiceImpl) Close(ctx context.Context, req project.CloseRequest) (project.CloseResponse, error) {
	if err := req.Validate(); err != nil {
		return project.CloseResponse{}, err
	}

	userID, teamID, err := identity.FromContext(ctx)
	if err != nil {
		return project.CloseResponse{}, err
	}

	s.locker.Lock(userID)
	defer s.locker.Unlock(userID)

	entry, err := s.TimeEntryRepository.GetOpenByUser(ctx, userID)
	if err != nil {
		return project.CloseResponse{}, err
	}

	now := s.now()
	if err := s.TimeEntryRepository.Close(ctx, entry.ID, now, req.Report); err != nil {
		return project.CloseResponse{}, fmt.Errorf("failed to close project entry: %w", err)
	}
	entry.ClosedAt = &now
	entry.Report = &req.Report
	seconds := entry.Seconds(now)

	s.notify(teamID, "project_ended", map[string]string{
		"user_id":  fmt.Sprintf("%d", userID),
		"duration": (time.Duration(seconds) * time.Second).String(),
		"report":   req.Report,
	})

	return project.CloseResponse{
		Entry:   s.toEntryResponse(entry),
		Seconds: seconds,
	}, nil
}

// ThresholdStatus implements project.ProjectTimeService.
func (s *ProjectTimeServiceImpl) ThresholdStatus(ctx context.Context) (project.ThresholdResponse, error) {
	userID, _, err := identity.FromContext(ctx)
	if err != nil {
		return project.ThresholdResponse{}, err
	}

	now := s.now()
	today := clock.Today(now)
	marks, err := s.markRepo.ListByUserAndRange(ctx, userID, clock.StartOfDay(today), clock.EndOfDay(today))
	if err != nil {
		return project.ThresholdResponse{}, fmt.Errorf("failed to list today's marks: %w", err)
	}

	hasOpen := true
	if _, err := s.TimeEntryRepository.GetOpenByUser(ctx, userID); err != nil {
		if !errors.Is(err, project.ErrEntryNotFound) {
			return project.ThresholdResponse{}, fmt.Errorf("failed to check for open project entry: %w", err)
		}
		hasOpen = false
	}

	return project.ThresholdResponse{
		Threshold: calc.Threshold(marks, now),
		HasOpen:   hasOpen,
	}, nil
}

// ListMine implements project.ProjectTimeService.
func (s *ProjectTimeServiceImpl) ListMine(ctx context.Context, startDate, endDate string) ([]project.EntryResponse, error) {
	userID, _, err := identity.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	from, to := clock.StartOfDay(clock.Today(now)), clock.EndOfDay(clock.Today(now))
	if startDate != "" {
		start, err := clock.ParseDate(startDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse start_date: %w", err)
		}
		from = clock.StartOfDay(start)
	}
	if endDate != "" {
		end, err := clock.ParseDate(endDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse end_date: %w", err)
		}
		to = clock.EndOfDay(end)
	}

	entries, err := s.TimeEntryRepository.ListByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list project entries: %w", err)
	}

	responses := make([]project.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, s.toEntryResponse(e))
	}
	return responses, nil
}

// notify delivers a card off the request path. Failures are logged inside the
// sender and never surface here.
func (s *ProjectTimeServiceImpl) notify(teamID int64, eventKind string, fields map[string]string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		t, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return
		}
		s.sender.SendCard(ctx, t, eventKind, fields)
	}()
}

func (s *ProjectTimeServiceImpl) toEntryResponse(e project.TimeEntry) project.EntryResponse {
	resp := project.EntryResponse{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		ProjectName: e.ProjectName,
		Date:        e.Date.In(clock.Location).Format("2006-01-02"),
		OpenedAt:    e.OpenedAt.In(clock.Location).Format(time.RFC3339),
		Report:      e.Report,
		Seconds:     e.Seconds(s.now()),
	}
	if e.ClosedAt != nil {
		closedAt := e.ClosedAt.In(clock.Location).Format(time.RFC3339)
		resp.ClosedAt = &closedAt
	}
	return resp
}
