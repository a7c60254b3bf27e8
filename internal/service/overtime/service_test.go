package overtime

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teampulse/attendance-backend-go/internal/domain/overtime"
	"github.com/teampulse/attendance-backend-go/internal/pkg/clock"
	"github.com/teampulse/attendance-backend-go/internal/pkg/sse"
	"github.com/teampulse/attendance-backend-go/internal/pkg/validator"
)

func authCtx(t *testing.T, userID, teamID int64) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", strconv.FormatInt(userID, 10)))
	require.NoError(t, tok.Set("team_id", strconv.FormatInt(teamID, 10)))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type fakeOvertimeRepo struct {
	requests map[int64]overtime.OvertimeRequest
	nextID   int64
}

func newFakeOvertimeRepo() *fakeOvertimeRepo {
	return &fakeOvertimeRepo{requests: map[int64]overtime.OvertimeRequest{}, nextID: 1}
}

func (f *fakeOvertimeRepo) Create(_ context.Context, r overtime.OvertimeRequest) (overtime.OvertimeRequest, error) {
	r.ID = f.nextID
	f.nextID++
	r.CreatedAt = time.Now()
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeOvertimeRepo) GetByID(_ context.Context, id int64) (overtime.OvertimeRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return overtime.OvertimeRequest{}, overtime.ErrRequestNotFound
	}
	return r, nil
}

func (f *fakeOvertimeRepo) SetOutcome(_ context.Context, id int64, outcome overtime.Outcome, decidedBy int64, decidedAt time.Time) error {
	r, ok := f.requests[id]
	if !ok {
		return overtime.ErrRequestNotFound
	}
	r.Outcome = outcome
	r.DecidedBy = &decidedBy
	r.DecidedAt = &decidedAt
	f.requests[id] = r
	return nil
}

func (f *fakeOvertimeRepo) ListByUser(_ context.Context, userID int64, _ overtime.ListFilter) ([]overtime.OvertimeRequest, int64, error) {
	var out []overtime.OvertimeRequest
	for _, r := range f.requests {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOvertimeRepo) ListByTeam(_ context.Context, teamID int64, _ overtime.ListFilter) ([]overtime.OvertimeRequest, int64, error) {
	var out []overtime.OvertimeRequest
	for _, r := range f.requests {
		if r.TeamID == teamID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOvertimeRepo) AcceptedHoursByUserAndDate(_ context.Context, userID int64, date time.Time) (int, error) {
	total := 0
	for _, r := range f.requests {
		if r.UserID == userID && r.Outcome == overtime.OutcomeAccepted && clock.SameDay(r.Date, date) {
			total += r.Hours
		}
	}
	return total, nil
}

type fakeNotifier struct {
	events []sse.Event
}

func (f *fakeNotifier) Publish(topic string, event sse.Event) {
	event.Topic = topic
	f.events = append(f.events, event)
}

func TestSubmitValidation(t *testing.T) {
	svc := NewOvertimeService(newFakeOvertimeRepo(), &fakeNotifier{})
	ctx := authCtx(t, 7, 1)

	tests := []struct {
		name string
		req  overtime.SubmitRequest
	}{
		{"bad date", overtime.SubmitRequest{Date: "12-03-2026", Hours: 2, Reason: "release"}},
		{"zero hours", overtime.SubmitRequest{Date: "2026-03-12", Hours: 0, Reason: "release"}},
		{"too many hours", overtime.SubmitRequest{Date: "2026-03-12", Hours: 25, Reason: "release"}},
		{"empty reason", overtime.SubmitRequest{Date: "2026-03-12", Hours: 2, Reason: "  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tt.req)
			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}
}

func TestDecideOnce(t *testing.T) {
	repo := newFakeOvertimeRepo()
	notifier := &fakeNotifier{}
	svc := NewOvertimeService(repo, notifier)

	submitted, err := svc.Submit(authCtx(t, 7, 1), overtime.SubmitRequest{
		Date: "2026-03-12", Hours: 3, Reason: "production incident",
	})
	require.NoError(t, err)
	assert.Equal(t, overtime.OutcomePending, submitted.Outcome)

	adminCtx := authCtx(t, 2, 1)
	decided, err := svc.Decide(adminCtx, overtime.DecideRequest{ID: submitted.ID, Outcome: overtime.OutcomeAccepted})
	require.NoError(t, err)
	assert.Equal(t, overtime.OutcomeAccepted, decided.Outcome)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, int64(2), *decided.DecidedBy)
	require.NotNil(t, decided.DecidedAt)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, sse.UserTopic(7), notifier.events[0].Topic)
	assert.Equal(t, "overtime_decided", notifier.events[0].Event)

	_, err = svc.Decide(adminCtx, overtime.DecideRequest{ID: submitted.ID, Outcome: overtime.OutcomeRejected})
	assert.ErrorIs(t, err, overtime.ErrAlreadyDecided)
	assert.Len(t, notifier.events, 1)

	hours, err := repo.AcceptedHoursByUserAndDate(context.Background(), 7, mustDate(t, "2026-03-12"))
	require.NoError(t, err)
	assert.Equal(t, 3, hours)
}

func TestDecideUnknownRequest(t *testing.T) {
	svc := NewOvertimeService(newFakeOvertimeRepo(), &fakeNotifier{})
	_, err := svc.Decide(authCtx(t, 2, 1), overtime.DecideRequest{ID: 404, Outcome: overtime.OutcomeAccepted})
	assert.ErrorIs(t, err, overtime.ErrRequestNotFound)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := clock.ParseDate(s)
	require.NoError(t, err)
	return date
}
