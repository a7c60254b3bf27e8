package editrequest

import (
	"context"
	"fmt"
	"time"

	"github.com/teampulse/attendance-backend-go/internal/domain/editrequest"
	"github.com/teampulse/attendance-backend-go/internal/domain/mark"
	"github.com/teampulse/attendance-backend-go/internal/pkg/clock"
	"github.com/teampulse/attendance-backend-go/internal/pkg/database"
	"github.com/teampulse/attendance-backend-go/internal/pkg/identity"
	"github.com/teampulse/attendance-backend-go/internal/pkg/sse"
	"github.com/teampulse/attendance-backend-go/internal/pkg/userlock"
)

// missingExitPageSize caps the missing-exit diagnostic to one page.
const missingExitPageSize = 30

type EditRequestServiceImpl struct {
	tx database.TxRunner
	editrequest.EditRequestRepository
	mark.MarkRepository
	locker   *userlock.Locker
	notifier sse.Notifier
	now      func() time.Time
}

func NewEditRequestService(
	tx database.TxRunner,
	requestRepo editrequest.EditRequestRepository,
	markRepo mark.MarkRepository,
	locker *userlock.Locker,
	notifier sse.Notifier,
) editrequest.EditRequestService {
	return &EditRequestServiceImpl{
		tx:                    tx,
		EditRequestRepository: requestRepo,
		MarkRepository:        markRepo,
		locker:                locker,
		notifier:              notifier,
		now:                   time.Now,
	}
}

// Submit implements editrequest.EditRequestService.
func (s *EditRequestServiceImpl) Submit(ctx context.Context, req editrequest.SubmitRequest) (editrequest.EditRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return editrequest.EditRequestResponse{}, err
	}

	userID, teamID, err := identity.FromContext(ctx)
	if err != nil {
		return editrequest.EditRequestResponse{}, err
	}

	proposedAt, _ := time.Parse(time.RFC3339, req.ProposedAt)

	if req.MarkID != 0 {
		target, err := s.MarkRepository.GetByID(ctx, req.MarkID)
		if err != nil {
			return editrequest.EditRequestResponse{}, err
		}
		if target.UserID != userID {
			return editrequest.EditRequestResponse{}, mark.ErrNotMarkOwner
		}
	}

	created, err := s.EditRequestRepository.Create(ctx, editrequest.EditRequest{
		MarkID:     req.MarkID,
		UserID:     userID,
		TeamID:     teamID,
		ProposedAt: proposedAt,
		Kind:       req.Kind,
	})
	if err != nil {
		return editrequest.EditRequestResponse{}, fmt.Errorf("failed to create edit request: %w", err)
	}

	return toResponse(created), nil
}

// Approve implements editrequest.EditRequestService. The status change and
// the ledger mutation commit together or not at all.
func (s *EditRequestServiceImpl) Approve(ctx context.Context, id int64) (editrequest.EditRequestResponse, error) {
	request, err := s.EditRequestRepository.GetByID(ctx, id)
	if err != nil {
		return editrequest.EditRequestResponse{}, err
	}
	if !request.Pending() {
		return editrequest.EditRequestResponse{}, editrequest.ErrAlreadyProcessed
	}

	s.locker.Lock(request.UserID)
	defer s.locker.Unlock(request.UserID)

	var createdMarkID *int64
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if request.MarkID != 0 {
			if err := s.MarkRepository.UpdateTime(txCtx, request.MarkID, request.ProposedAt); err != nil {
				return fmt.Errorf("failed to rewrite mark: %w", err)
			}
		} else {
			kind, ok := request.Kind.MarkKind()
			if !ok {
				return editrequest.ErrInvalidRequestKind
			}
			created, err := s.MarkRepository.Create(txCtx, mark.Mark{
				UserID: request.UserID,
				TeamID: request.TeamID,
				Kind:   kind,
				At:     request.ProposedAt,
				Active: true,
			})
			if err != nil {
				return fmt.Errorf("failed to materialize mark: %w", err)
			}
			createdMarkID = &created.ID
		}
		return s.EditRequestRepository.SetApproved(txCtx, request.ID, createdMarkID)
	})
	if err != nil {
		return editrequest.EditRequestResponse{}, err
	}

	request.Approved = true
	request.CreatedMarkID = createdMarkID

	s.notifier.Publish(sse.UserTopic(request.UserID), sse.Event{
		Event: "request_resolved",
		Data: map[string]interface{}{
			"request_id": request.ID,
			"approved":   true,
		},
	})

	return toResponse(request), nil
}

// Reject implements editrequest.EditRequestService.
func (s *EditRequestServiceImpl) Reject(ctx context.Context, id int64) (editrequest.EditRequestResponse, error) {
	request, err := s.EditRequestRepository.GetByID(ctx, id)
	if err != nil {
		return editrequest.EditRequestResponse{}, err
	}
	if !request.Pending() {
		return editrequest.EditRequestResponse{}, editrequest.ErrAlreadyProcessed
	}

	if err := s.EditRequestRepository.SetWithdrawn(ctx, request.ID); err != nil {
		return editrequest.EditRequestResponse{}, fmt.Errorf("failed to withdraw edit request: %w", err)
	}
	request.Withdrawn = true

	s.notifier.Publish(sse.UserTopic(request.UserID), sse.Event{
		Event: "request_resolved",
		Data: map[string]interface{}{
			"request_id": request.ID,
			"approved":   false,
		},
	})

	return toResponse(request), nil
}

// MissingExitCheck implements editrequest.EditRequestService.
func (s *EditRequestServiceImpl) MissingExitCheck(ctx context.Context, windowDays int) ([]editrequest.MissingExitDay, error) {
	userID, _, err := identity.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	if windowDays <= 0 {
		windowDays = 30
	}

	today := clock.Today(s.now())
	// The current day is excluded: it may legitimately still be open.
	to := clock.EndOfDay(today.AddDate(0, 0, -1))
	from := clock.StartOfDay(today.AddDate(0, 0, -windowDays))

	openDays, err := s.MarkRepository.OpenDays(ctx, userID, from, to, missingExitPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to scan open days: %w", err)
	}

	pending, err := s.EditRequestRepository.ListPendingByUser(ctx, userID, editrequest.RequestKindNewCheckOut)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending exit requests: %w", err)
	}
	covered := make(map[string]struct{}, len(pending))
	for _, r := range pending {
		covered[clock.Today(r.ProposedAt).Format("2006-01-02")] = struct{}{}
	}

	days := make([]editrequest.MissingExitDay, 0, len(openDays))
	for _, d := range openDays {
		key := d.Date.Format("2006-01-02")
		if _, ok := covered[key]; ok {
			continue
		}
		days = append(days, editrequest.MissingExitDay{
			Date:      key,
			CheckIns:  d.CheckIns,
			CheckOuts: d.CheckOuts,
		})
	}
	return days, nil
}

// RequestMissingExit implements editrequest.EditRequestService.
func (s *EditRequestServiceImpl) RequestMissingExit(ctx context.Context, req editrequest.MissingExitRequest) (editrequest.EditRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return editrequest.EditRequestResponse{}, err
	}

	userID, _, err := identity.FromContext(ctx)
	if err != nil {
		return editrequest.EditRequestResponse{}, err
	}

	date, _ := clock.ParseDate(req.Date)
	clockTime, _ := clock.ParseClock(req.Time)
	proposedAt := clock.At(date, clockTime.Hour(), clockTime.Minute(), clockTime.Second())

	from, to := clock.StartOfDay(date), clock.EndOfDay(date)
	marks, err := s.MarkRepository.ListByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return editrequest.EditRequestResponse{}, fmt.Errorf("failed to list marks for %s: %w", req.Date, err)
	}

	var checkIns, checkOuts int
	for _, m := range marks {
		switch m.Kind {
		case mark.KindCheckIn:
			checkIns++
		case mark.KindCheckOut:
			checkOuts++
		}
	}
	if checkIns == 0 {
		return editrequest.EditRequestResponse{}, editrequest.ErrNoCheckInOnDate
	}
	if checkOuts >= checkIns {
		return editrequest.EditRequestResponse{}, editrequest.ErrDayAlreadyClosed
	}

	duplicate, err := s.EditRequestRepository.HasPendingForDate(ctx, userID, editrequest.RequestKindNewCheckOut, from, to)
	if err != nil {
		return editrequest.EditRequestResponse{}, fmt.Errorf("failed to check for duplicate requests: %w", err)
	}
	if duplicate {
		return editrequest.EditRequestResponse{}, editrequest.ErrDuplicatePending
	}

	return s.Submit(ctx, editrequest.SubmitRequest{
		MarkID:     0,
		ProposedAt: proposedAt.Format(time.RFC3339),
		Kind:       editrequest.RequestKindNewCheckOut,
	})
}

// ListForTeam implements editrequest.EditRequestService.
func (s *EditRequestServiceImpl) ListForTeam(ctx context.Context, filter editrequest.ListRequestsFilter) ([]editrequest.EditRequestResponse, int64, error) {
	_, teamID, err := identity.FromContext(ctx)
	if err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	requests, total, err := s.EditRequestRepository.ListByTeam(ctx, teamID, filter.OnlyPending, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list edit requests: %w", err)
	}

	responses := make([]editrequest.EditRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, toResponse(r))
	}
	return responses, total, nil
}

func toResponse(r editrequest.EditRequest) editrequest.EditRequestResponse {
	return editrequest.EditRequestResponse{
		ID:            r.ID,
		MarkID:        r.MarkID,
		UserID:        r.UserID,
		TeamID:        r.TeamID,
		ProposedAt:    r.ProposedAt.In(clock.Location).Format(time.RFC3339),
		Kind:          r.Kind,
		Approved:      r.Approved,
		Withdrawn:     r.Withdrawn,
		CreatedMarkID: r.CreatedMarkID,
		CreatedAt:     r.CreatedAt.In(clock.Location).Format(time.RFC3339),
	}
}
