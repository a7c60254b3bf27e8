package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teampulse/attendance-backend-go/internal/domain/mark"
	"github.com/teampulse/attendance-backend-go/internal/pkg/clock"
	"github.com/teampulse/attendance-backend-go/internal/pkg/sse"
	"github.com/teampulse/attendance-backend-go/internal/pkg/userlock"
)

type fakeMarkRepo struct {
	marks  []mark.Mark
	nextID int64
}

func (f *fakeMarkRepo) Create(_ context.Context, m mark.Mark) (mark.Mark, error) {
	f.nextID++
	m.ID = f.nextID
	f.marks = append(f.marks, m)
	return m, nil
}

func (f *fakeMarkRepo) GetByID(_ context.Context, _ int64) (mark.Mark, error) {
	return mark.Mark{}, mark.ErrMarkNotFound
}

func (f *fakeMarkRepo) ListByUserAndRange(_ context.Context, userID int64, from, to time.Time) ([]mark.Mark, error) {
	var out []mark.Mark
	for _, m := range f.marks {
		if m.UserID == userID && !m.At.Before(from) && !m.At.After(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMarkRepo) UpdateTime(_ context.Context, _ int64, _ time.Time) error { return nil }
func (f *fakeMarkRepo) Deactivate(_ context.Context, _ int64) error              { return nil }
func (f *fakeMarkRepo) OpenDays(_ context.Context, _ int64, _, _ time.Time, _ int) ([]mark.OpenDay, error) {
	return nil, nil
}

func (f *fakeMarkRepo) UsersCheckedInOn(_ context.Context, from, to time.Time) ([]mark.UserTeam, error) {
	seen := map[int64]bool{}
	var out []mark.UserTeam
	for _, m := range f.marks {
		if m.Kind == mark.KindCheckIn && !m.At.Before(from) && !m.At.After(to) && !seen[m.UserID] {
			seen[m.UserID] = true
			out = append(out, mark.UserTeam{UserID: m.UserID, TeamID: m.TeamID})
		}
	}
	return out, nil
}

func (f *fakeMarkRepo) HasCheckOutOn(_ context.Context, userID int64, from, to time.Time) (bool, error) {
	for _, m := range f.marks {
		if m.UserID == userID && m.Kind == mark.KindCheckOut && !m.At.Before(from) && !m.At.After(to) {
			return true, nil
		}
	}
	return false, nil
}

type fakeNotifier struct {
	events []sse.Event
}

func (f *fakeNotifier) Publish(topic string, event sse.Event) {
	event.Topic = topic
	f.events = append(f.events, event)
}

func TestRunOnce(t *testing.T) {
	day, err := clock.ParseDate("2026-03-09")
	require.NoError(t, err)

	repo := &fakeMarkRepo{marks: []mark.Mark{
		// Ana forgot to check out.
		{ID: 1, UserID: 7, TeamID: 1, Kind: mark.KindCheckIn, At: clock.At(day, 9, 0, 0), Active: true},
		// Luis closed his day himself.
		{ID: 2, UserID: 8, TeamID: 1, Kind: mark.KindCheckIn, At: clock.At(day, 9, 30, 0), Active: true},
		{ID: 3, UserID: 8, TeamID: 1, Kind: mark.KindCheckOut, At: clock.At(day, 17, 30, 0), Active: true},
	}}
	repo.nextID = 3
	notifier := &fakeNotifier{}
	job := NewAutoExitJob(repo, userlock.NewLocker(), notifier)

	actions, err := job.RunOnce(context.Background(), day)
	require.NoError(t, err)

	require.Len(t, actions, 1)
	assert.Equal(t, int64(7), actions[0].UserID)

	created, err := repo.GetByIDFromSlice(actions[0].MarkID)
	require.NoError(t, err)
	assert.Equal(t, mark.KindCheckOut, created.Kind)
	assert.True(t, created.At.Equal(clock.At(day, AutoExitHour, 0, 0)))

	require.Len(t, notifier.events, 1)
	assert.Equal(t, sse.TeamTopic(1), notifier.events[0].Topic)
	assert.Equal(t, "auto_exit", notifier.events[0].Event)

	// The synthetic check-out now closes Ana's day, so a second sweep does
	// nothing.
	actions, err = job.RunOnce(context.Background(), day)
	require.NoError(t, err)
	assert.Empty(t, actions)
	assert.Len(t, notifier.events, 1)
}

func (f *fakeMarkRepo) GetByIDFromSlice(id int64) (mark.Mark, error) {
	for _, m := range f.marks {
		if m.ID == id {
			return m, nil
		}
	}
	return mark.Mark{}, mark.ErrMarkNotFound
}

func TestRunGatesOnCheckTime(t *testing.T) {
	day, err := clock.ParseDate("2026-03-09")
	require.NoError(t, err)

	repo := &fakeMarkRepo{marks: []mark.Mark{
		{ID: 1, UserID: 7, TeamID: 1, Kind: mark.KindCheckIn, At: clock.At(day, 9, 0, 0), Active: true},
	}}
	repo.nextID = 1
	job := NewAutoExitJob(repo, userlock.NewLocker(), &fakeNotifier{})

	// Before the check time nothing runs.
	job.now = func() time.Time { return clock.At(day, 18, 4, 59) }
	require.NoError(t, job.Run(context.Background()))
	assert.Len(t, repo.marks, 1)

	// At the check time the sweep closes the open day.
	job.now = func() time.Time { return clock.At(day, 18, 5, 0) }
	require.NoError(t, job.Run(context.Background()))
	assert.Len(t, repo.marks, 2)

	// Same day again is a no-op via the in-memory guard.
	job.now = func() time.Time { return clock.At(day, 19, 0, 0) }
	require.NoError(t, job.Run(context.Background()))
	assert.Len(t, repo.marks, 2)
}
