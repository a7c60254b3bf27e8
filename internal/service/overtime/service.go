package overtime

import (
	"context"
	"fmt"
	"time"

	"github.com/teampulse/attendance-backend-go/internal/domain/overtime"
	"github.com/teampulse/attendance-backend-go/internal/pkg/clock"
	"github.com/teampulse/attendance-backend-go/internal/pkg/identity"
	"github.com/teampulse/attendance-backend-go/internal/pkg/sse"
)

type OvertimeServiceImpl struct {
	overtime.OvertimeRepository
	notifier sse.Notifier
	now      func() time.Time
}

func NewOvertimeService(repo overtime.OvertimeRepository, notifier sse.Notifier) overtime.OvertimeService {
	return &OvertimeServiceImpl{
		OvertimeRepository: repo,
		notifier:           notifier,
		now:                time.Now,
	}
}

// Submit implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) Submit(ctx context.Context, req overtime.SubmitRequest) (overtime.OvertimeResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	userID, teamID, err := identity.FromContext(ctx)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}

	date, _ := clock.ParseDate(req.Date)
	created, err := s.OvertimeRepository.Create(ctx, overtime.OvertimeRequest{
		UserID:  userID,
		TeamID:  teamID,
		Date:    date,
		Hours:   req.Hours,
		Reason:  req.Reason,
		Outcome: overtime.OutcomePending,
	})
	if err != nil {
		return overtime.OvertimeResponse{}, fmt.Errorf("failed to create overtime request: %w", err)
	}

	return toResponse(created), nil
}

// Decide implements overtime.OvertimeService. A request accepts exactly one
// decision; anything after that is a conflict.
func (s *OvertimeServiceImpl) Decide(ctx context.Context, req overtime.DecideRequest) (overtime.OvertimeResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	approverID, _, err := identity.FromContext(ctx)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}

	request, err := s.OvertimeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	if request.Outcome != overtime.OutcomePending {
		return overtime.OvertimeResponse{}, overtime.ErrAlreadyDecided
	}

	decidedAt := s.now()
	if err := s.OvertimeRepository.SetOutcome(ctx, request.ID, req.Outcome, approverID, decidedAt); err != nil {
		return overtime.OvertimeResponse{}, fmt.Errorf("failed to record overtime decision: %w", err)
	}
	request.Outcome = req.Outcome
	request.DecidedBy = &approverID
	request.DecidedAt = &decidedAt

	s.notifier.Publish(sse.UserTopic(request.UserID), sse.Event{
		Event: "overtime_decided",
		Data: map[string]interface{}{
			"request_id": request.ID,
			"outcome":    request.Outcome,
		},
	})

	return toResponse(request), nil
}

// ListMine implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) ListMine(ctx context.Context, filter overtime.ListFilter) (overtime.ListOvertimeResponse, error) {
	if err := filter.Validate(); err != nil {
		return overtime.ListOvertimeResponse{}, err
	}

	userID, _, err := identity.FromContext(ctx)
	if err != nil {
		return overtime.ListOvertimeResponse{}, err
	}

	filter = normalize(filter)
	requests, total, err := s.OvertimeRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return overtime.ListOvertimeResponse{}, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	return toListResponse(requests, total, filter), nil
}

// ListForTeam implements overtime.OvertimeService.
func (s *OvertimeServiceImpl) ListForTeam(ctx context.Context, filter overtime.ListFilter) (overtime.ListOvertimeResponse, error) {
	if err := filter.Validate(); err != nil {
		return overtime.ListOvertimeResponse{}, err
	}

	_, teamID, err := identity.FromContext(ctx)
	if err != nil {
		return overtime.ListOvertimeResponse{}, err
	}

	filter = normalize(filter)
	requests, total, err := s.OvertimeRepository.ListByTeam(ctx, teamID, filter)
	if err != nil {
		return overtime.ListOvertimeResponse{}, fmt.Errorf("failed to list team overtime requests: %w", err)
	}
	return toListResponse(requests, total, filter), nil
}

func normalize(filter overtime.ListFilter) overtime.ListFilter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	return filter
}

func toListResponse(requests []overtime.OvertimeRequest, total int64, filter overtime.ListFilter) overtime.ListOvertimeResponse {
	responses := make([]overtime.OvertimeResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, toResponse(r))
	}
	return overtime.ListOvertimeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   responses,
	}
}

func toResponse(r overtime.OvertimeRequest) overtime.OvertimeResponse {
	resp := overtime.OvertimeResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		TeamID:    r.TeamID,
		Date:      r.Date.In(clock.Location).Format("2006-01-02"),
		Hours:     r.Hours,
		Reason:    r.Reason,
		Outcome:   r.Outcome,
		DecidedBy: r.DecidedBy,
		CreatedAt: r.CreatedAt.In(clock.Location).Format(time.RFC3339),
	}
	if r.DecidedAt != nil {
		decidedAt := r.DecidedAt.In(clock.Location).Format(time.RFC3339)
		resp.DecidedAt = &decidedAt
	}
	return resp
}
