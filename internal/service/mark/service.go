package mark

import (
	"context"
	"fmt"
	"time"

	"github.com/teampulse/attendance-backend-go/internal/domain/mark"
	"github.com/teampulse/attendance-backend-go/internal/domain/project"
	"github.com/teampulse/attendance-backend-go/internal/pkg/clock"
	"github.com/teampulse/attendance-backend-go/internal/pkg/identity"
	"github.com/teampulse/attendance-backend-go/internal/pkg/sse"
	"github.com/teampulse/attendance-backend-go/internal/pkg/userlock"
)

type MarkServiceImpl struct {
	mark.MarkRepository
	entryRepo project.TimeEntryRepository
	locker    *userlock.Locker
	notifier  sse.Notifier
	now       func() time.Time
}

func NewMarkService(
	markRepo mark.MarkRepository,
	entryRepo project.TimeEntryRepository,
	locker *userlock.Locker,
	notifier sse.Notifier,
) mark.MarkService {
	return &MarkServiceImpl{
		MarkRepository: markRepo,
		entryRepo:      entryRepo,
		locker:         locker,
		notifier:       notifier,
		now:            time.Now,
	}
}

// Register implements mark.MarkService.
func (s *MarkServiceImpl) Register(ctx context.Context, req mark.RegisterMarkRequest) (mark.MarkResponse, error) {
	if err := req.Validate(); err != nil {
		return mark.MarkResponse{}, err
	}

	userID, teamID, err := identity.FromContext(ctx)
	if err != nil {
		return mark.MarkResponse{}, err
	}

	now := s.now()

	// Serialize against concurrent approvals and the auto-exit job for the
	// same user.
	s.locker.Lock(userID)
	defer s.locker.Unlock(userID)

	created, err := s.MarkRepository.Create(ctx, mark.Mark{
		UserID: userID,
		TeamID: teamID,
		Kind:   req.Kind,
		At:     now,
		Active: true,
	})
	if err != nil {
		return mark.MarkResponse{}, fmt.Errorf("failed to create mark: %w", err)
	}

	status := mark.StatusNoRecord
	today, err := s.MarkRepository.ListByUserAndRange(ctx, userID, clock.StartOfDay(clock.Today(now)), clock.EndOfDay(clock.Today(now)))
	if err == nil {
		status = StatusOf(today)
	}

	// Best effort; delivery failure never fails the check action.
	s.notifier.Publish(sse.TeamTopic(teamID), sse.Event{
		Event: "status_changed",
		Data: map[string]interface{}{
			"user_id": userID,
			"kind":    created.Kind,
			"status":  status,
			"at":      created.At.In(clock.Location).Format(time.RFC3339),
		},
	})

	return toMarkResponse(created), nil
}

// Today implements mark.MarkService.
func (s *MarkServiceImpl) Today(ctx context.Context) (mark.TodayResponse, error) {
	userID, _, err := identity.FromContext(ctx)
	if err != nil {
		return mark.TodayResponse{}, err
	}

	now := s.now()
	date := clock.Today(now)
	from, to := clock.StartOfDay(date), clock.EndOfDay(date)

	marks, err := s.MarkRepository.ListByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return mark.TodayResponse{}, fmt.Errorf("failed to list today's marks: %w", err)
	}

	entries, err := s.entryRepo.ListByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return mark.TodayResponse{}, fmt.Errorf("failed to list today's project entries: %w", err)
	}

	responses := make([]mark.MarkResponse, 0, len(marks))
	for _, m := range marks {
		responses = append(responses, toMarkResponse(m))
	}

	return mark.TodayResponse{
		Date:    date.Format("2006-01-02"),
		Marks:   responses,
		Summary: Summarize(marks, entries, now),
	}, nil
}

// ListMine implements mark.MarkService.
func (s *MarkServiceImpl) ListMine(ctx context.Context, filter mark.ListMarksFilter) ([]mark.MarkResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	userID, _, err := identity.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	from := clock.StartOfDay(clock.Today(now))
	to := clock.EndOfDay(clock.Today(now))
	if filter.StartDate != nil {
		d, parseErr := clock.ParseDate(*filter.StartDate)
		if parseErr == nil {
			from = clock.StartOfDay(d)
		}
	}
	if filter.EndDate != nil {
		d, parseErr := clock.ParseDate(*filter.EndDate)
		if parseErr == nil {
			to = clock.EndOfDay(d)
		}
	}

	marks, err := s.MarkRepository.ListByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list marks: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(marks) {
		return []mark.MarkResponse{}, nil
	}
	end := start + limit
	if end > len(marks) {
		end = len(marks)
	}

	responses := make([]mark.MarkResponse, 0, end-start)
	for _, m := range marks[start:end] {
		responses = append(responses, toMarkResponse(m))
	}
	return responses, nil
}

func toMarkResponse(m mark.Mark) mark.MarkResponse {
	local := m.At.In(clock.Location)
	return mark.MarkResponse{
		ID:     m.ID,
		UserID: m.UserID,
		TeamID: m.TeamID,
		Kind:   m.Kind,
		At:     local.Format(time.RFC3339),
		Time:   local.Format("15:04:05"),
	}
}
