package project

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teampulse/attendance-backend-go/internal/domain/mark"
	"github.com/teampulse/attendance-backend-go/internal/domain/project"
	"github.com/teampulse/attendance-backend-go/internal/domain/team"
	"github.com/teampulse/attendance-backend-go/internal/pkg/clock"
	"github.com/teampulse/attendance-backend-go/internal/pkg/userlock"
	"github.com/teampulse/attendance-backend-go/internal/pkg/validator"
)

func authCtx(t *testing.T, userID, teamID int64) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", strconv.FormatInt(userID, 10)))
	require.NoError(t, tok.Set("team_id", strconv.FormatInt(teamID, 10)))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type fakeProjectRepo struct {
	projects map[int64]project.Project
}

func (f *fakeProjectRepo) GetActiveByIDAndTeam(_ context.Context, id, teamID int64) (project.Project, error) {
	p, ok := f.projects[id]
	if !ok || !p.Active || p.TeamID != teamID {
		return project.Project{}, project.ErrProjectNotFound
	}
	return p, nil
}

type fakeEntryRepo struct {
	entries map[int64]project.TimeEntry
	nextID  int64
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: map[int64]project.TimeEntry{}, nextID: 1}
}

func (f *fakeEntryRepo) Create(_ context.Context, e project.TimeEntry) (project.TimeEntry, error) {
	e.ID = f.nextID
	f.nextID++
	f.entries[e.ID] = e
	return e, nil
}

func (f *fakeEntryRepo) GetOpenByUser(_ context.Context, userID int64) (project.TimeEntry, error) {
	for _, e := range f.entries {
		if e.UserID == userID && e.Active && e.ClosedAt == nil {
			return e, nil
		}
	}
	return project.TimeEntry{}, project.ErrEntryNotFound
}

func (f *fakeEntryRepo) Close(_ context.Context, id int64, closedAt time.Time, report string) error {
	e, ok := f.entries[id]
	if !ok {
		return project.ErrEntryNotFound
	}
	e.ClosedAt = &closedAt
	e.Report = &report
	f.entries[id] = e
	return nil
}

func (f *fakeEntryRepo) ListByUserAndRange(_ context.Context, userID int64, from, to time.Time) ([]project.TimeEntry, error) {
	var out []project.TimeEntry
	for _, e := range f.entries {
		if e.UserID == userID && e.Active && !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeMarkRepo struct {
	marks []mark.Mark
}

func (f *fakeMarkRepo) Create(_ context.Context, m mark.Mark) (mark.Mark, error) { return m, nil }
func (f *fakeMarkRepo) GetByID(_ context.Context, _ int64) (mark.Mark, error) {
	return mark.Mark{}, mark.ErrMarkNotFound
}
func (f *fakeMarkRepo) ListByUserAndRange(_ context.Context, _ int64, _, _ time.Time) ([]mark.Mark, error) {
	return f.marks, nil
}
func (f *fakeMarkRepo) UpdateTime(_ context.Context, _ int64, _ time.Time) error  { return nil }
func (f *fakeMarkRepo) Deactivate(_ context.Context, _ int64) error               { return nil }
func (f *fakeMarkRepo) OpenDays(_ context.Context, _ int64, _, _ time.Time, _ int) ([]mark.OpenDay, error) {
	return nil, nil
}
func (f *fakeMarkRepo) UsersCheckedInOn(_ context.Context, _, _ time.Time) ([]mark.UserTeam, error) {
	return nil, nil
}
func (f *fakeMarkRepo) HasCheckOutOn(_ context.Context, _ int64, _, _ time.Time) (bool, error) {
	return false, nil
}

type fakeTeamRepo struct {
	team team.Team
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int64) (team.Team, error) {
	if id != f.team.ID {
		return team.Team{}, team.ErrTeamNotFound
	}
	return f.team, nil
}

type fakeSender struct {
	mu    sync.Mutex
	cards []string
	ok    bool
}

func (f *fakeSender) SendCard(_ context.Context, _ team.Team, eventKind string, _ map[string]string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cards = append(f.cards, eventKind)
	return f.ok
}

func (f *fakeSender) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cards...)
}

type fixture struct {
	service project.ProjectTimeService
	entries *fakeEntryRepo
	marks   *fakeMarkRepo
	sender  *fakeSender
	now     time.Time
}

func newFixture() *fixture {
	url := "https://hooks.example.com/teams/1"
	projects := &fakeProjectRepo{projects: map[int64]project.Project{
		10: {ID: 10, TeamID: 1, Name: "migration", Active: true},
		11: {ID: 11, TeamID: 1, Name: "retired", Active: false},
		12: {ID: 12, TeamID: 2, Name: "other team", Active: true},
	}}
	entries := newFakeEntryRepo()
	marks := &fakeMarkRepo{}
	teams := &fakeTeamRepo{team: team.Team{ID: 1, WebhookURL: &url, WebhookEnabled: true, Active: true}}
	sender := &fakeSender{ok: true}

	svc := NewProjectTimeService(projects, entries, marks, teams, userlock.NewLocker(), sender).(*ProjectTimeServiceImpl)
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, clock.Location)
	svc.now = func() time.Time { return now }

	return &fixture{service: svc, entries: entries, marks: marks, sender: sender, now: now}
}

func TestOpen(t *testing.T) {
	t.Run("unknown project", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.Open(authCtx(t, 7, 1), project.OpenRequest{ProjectID: 999})
		assert.ErrorIs(t, err, project.ErrProjectNotFound)
	})

	t.Run("inactive project", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.Open(authCtx(t, 7, 1), project.OpenRequest{ProjectID: 11})
		assert.ErrorIs(t, err, project.ErrProjectNotFound)
	})

	t.Run("project of another team", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.Open(authCtx(t, 7, 1), project.OpenRequest{ProjectID: 12})
		assert.ErrorIs(t, err, project.ErrProjectNotFound)
	})

	t.Run("second open is a conflict", func(t *testing.T) {
		f := newFixture()
		ctx := authCtx(t, 7, 1)

		entry, err := f.service.Open(ctx, project.OpenRequest{ProjectID: 10})
		require.NoError(t, err)
		require.NotNil(t, entry.ProjectName)
		assert.Equal(t, "migration", *entry.ProjectName)

		_, err = f.service.Open(ctx, project.OpenRequest{ProjectID: 10})
		assert.ErrorIs(t, err, project.ErrEntryAlreadyOpen)

		assert.Eventually(t, func() bool {
			sent := f.sender.sent()
			return len(sent) == 1 && sent[0] == "project_started"
		}, time.Second, 10*time.Millisecond)
	})
}

func TestClose(t *testing.T) {
	t.Run("empty report", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.Close(authCtx(t, 7, 1), project.CloseRequest{Report: "   "})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("nothing open", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.Close(authCtx(t, 7, 1), project.CloseRequest{Report: "done"})
		assert.ErrorIs(t, err, project.ErrEntryNotFound)
	})

	t.Run("returns uncapped duration", func(t *testing.T) {
		f := newFixture()
		ctx := authCtx(t, 7, 1)
		svc := f.service.(*ProjectTimeServiceImpl)

		_, err := f.service.Open(ctx, project.OpenRequest{ProjectID: 10})
		require.NoError(t, err)

		// Well past the break cap; project time is never clipped.
		svc.now = func() time.Time { return f.now.Add(3 * time.Hour) }
		closed, err := f.service.Close(ctx, project.CloseRequest{Report: "migration batch finished"})
		require.NoError(t, err)
		assert.Equal(t, int64(3*60*60), closed.Seconds)
		require.NotNil(t, closed.Entry.Report)
		assert.Equal(t, "migration batch finished", *closed.Entry.Report)

		// Each card is dispatched from its own goroutine, so only the set of
		// delivered events is deterministic, not their order.
		assert.Eventually(t, func() bool {
			return len(f.sender.sent()) == 2
		}, time.Second, 10*time.Millisecond)
		assert.ElementsMatch(t, []string{"project_started", "project_ended"}, f.sender.sent())
	})

	t.Run("webhook failure does not fail the close", func(t *testing.T) {
		f := newFixture()
		f.sender.ok = false
		ctx := authCtx(t, 7, 1)

		_, err := f.service.Open(ctx, project.OpenRequest{ProjectID: 10})
		require.NoError(t, err)
		_, err = f.service.Close(ctx, project.CloseRequest{Report: "report"})
		assert.NoError(t, err)
	})
}

func TestThresholdStatus(t *testing.T) {
	f := newFixture()
	ctx := authCtx(t, 7, 1)

	f.marks.marks = []mark.Mark{
		{UserID: 7, Kind: mark.KindCheckIn, At: f.now.Add(-10 * time.Hour), Active: true},
	}

	status, err := f.service.ThresholdStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.Threshold.Reached)
	assert.False(t, status.HasOpen)

	_, err = f.service.Open(ctx, project.OpenRequest{ProjectID: 10})
	require.NoError(t, err)

	status, err = f.service.ThresholdStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.HasOpen)
}
