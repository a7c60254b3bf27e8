package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teampulse/attendance-backend-go/internal/domain/holiday"
	"github.com/teampulse/attendance-backend-go/internal/domain/mark"
	"github.com/teampulse/attendance-backend-go/internal/domain/overtime"
	"github.com/teampulse/attendance-backend-go/internal/domain/project"
	"github.com/teampulse/attendance-backend-go/internal/domain/report"
	"github.com/teampulse/attendance-backend-go/internal/domain/user"
	"github.com/teampulse/attendance-backend-go/internal/pkg/clock"
	"github.com/teampulse/attendance-backend-go/internal/pkg/validator"
)

type fakeMarkRepo struct {
	marks []mark.Mark
}

func (f *fakeMarkRepo) Create(_ context.Context, m mark.Mark) (mark.Mark, error) { return m, nil }
func (f *fakeMarkRepo) GetByID(_ context.Context, _ int64) (mark.Mark, error) {
	return mark.Mark{}, mark.ErrMarkNotFound
}
func (f *fakeMarkRepo) ListByUserAndRange(_ context.Context, userID int64, from, to time.Time) ([]mark.Mark, error) {
	var out []mark.Mark
	for _, m := range f.marks {
		if m.UserID == userID && m.Active && !m.At.Before(from) && !m.At.After(to) {
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
func (f *fakeMarkRepo) UsersCheckedInOn(_ context.Context, _, _ time.Time) ([]mark.UserTeam, error) {
	return nil, nil
}
func (f *fakeMarkRepo) HasCheckOutOn(_ context.Context, _ int64, _, _ time.Time) (bool, error) {
	return false, nil
}

type fakeEntryRepo struct {
	entries []project.TimeEntry
}

func (f *fakeEntryRepo) Create(_ context.Context, e project.TimeEntry) (project.TimeEntry, error) {
	return e, nil
}
func (f *fakeEntryRepo) GetOpenByUser(_ context.Context, _ int64) (project.TimeEntry, error) {
	return project.TimeEntry{}, project.ErrEntryNotFound
}
func (f *fakeEntryRepo) Close(_ context.Context, _ int64, _ time.Time, _ string) error { return nil }
func (f *fakeEntryRepo) ListByUserAndRange(_ context.Context, userID int64, from, to time.Time) ([]project.TimeEntry, error) {
	var out []project.TimeEntry
	for _, e := range f.entries {
		if e.UserID == userID && e.Active && !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeOvertimeRepo struct {
	accepted map[int64]map[string]int
}

func (f *fakeOvertimeRepo) Create(_ context.Context, r overtime.OvertimeRequest) (overtime.OvertimeRequest, error) {
	return r, nil
}
func (f *fakeOvertimeRepo) GetByID(_ context.Context, _ int64) (overtime.OvertimeRequest, error) {
	return overtime.OvertimeRequest{}, overtime.ErrRequestNotFound
}
func (f *fakeOvertimeRepo) SetOutcome(_ context.Context, _ int64, _ overtime.Outcome, _ int64, _ time.Time) error {
	return nil
}
func (f *fakeOvertimeRepo) ListByUser(_ context.Context, _ int64, _ overtime.ListFilter) ([]overtime.OvertimeRequest, int64, error) {
	return nil, 0, nil
}
func (f *fakeOvertimeRepo) ListByTeam(_ context.Context, _ int64, _ overtime.ListFilter) ([]overtime.OvertimeRequest, int64, error) {
	return nil, 0, nil
}
func (f *fakeOvertimeRepo) AcceptedHoursByUserAndDate(_ context.Context, userID int64, date time.Time) (int, error) {
	return f.accepted[userID][date.Format("2006-01-02")], nil
}

type fakeUserRepo struct {
	users map[int64]user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}
func (f *fakeUserRepo) ListActiveByTeam(_ context.Context, teamID int64) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.TeamID == teamID && u.Active {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func (f *fakeHolidayRepo) List(_ context.Context) ([]holiday.Holiday, error) {
	return f.holidays, nil
}

func at(day time.Time, hour, minute int) time.Time {
	return clock.At(day, hour, minute, 0)
}

func TestRangeValidation(t *testing.T) {
	svc := NewReportService(&fakeMarkRepo{}, &fakeEntryRepo{}, &fakeOvertimeRepo{}, &fakeUserRepo{}, &fakeHolidayRepo{})

	teamID := int64(1)
	userID := int64(7)
	tests := []struct {
		name   string
		filter report.RangeFilter
	}{
		{"no scope", report.RangeFilter{StartDate: "2026-03-09", EndDate: "2026-03-10"}},
		{"both scopes", report.RangeFilter{TeamID: &teamID, UserID: &userID, StartDate: "2026-03-09", EndDate: "2026-03-10"}},
		{"inverted range", report.RangeFilter{TeamID: &teamID, StartDate: "2026-03-10", EndDate: "2026-03-09"}},
		{"bad date", report.RangeFilter{TeamID: &teamID, StartDate: "09/03/2026", EndDate: "2026-03-10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Range(context.Background(), tt.filter)
			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}
}

func TestRangeTeamReport(t *testing.T) {
	day, err := clock.ParseDate("2026-03-09")
	require.NoError(t, err)

	marks := &fakeMarkRepo{marks: []mark.Mark{
		{ID: 1, UserID: 7, TeamID: 1, Kind: mark.KindCheckIn, At: at(day, 9, 0), Active: true},
		{ID: 2, UserID: 7, TeamID: 1, Kind: mark.KindBreak, At: at(day, 13, 0), Active: true},
		{ID: 3, UserID: 7, TeamID: 1, Kind: mark.KindBreak, At: at(day, 13, 45), Active: true},
		{ID: 4, UserID: 7, TeamID: 1, Kind: mark.KindCheckOut, At: at(day, 18, 0), Active: true},
	}}
	overtimeRepo := &fakeOvertimeRepo{accepted: map[int64]map[string]int{
		7: {"2026-03-09": 2},
	}}
	users := &fakeUserRepo{users: map[int64]user.User{
		7: {ID: 7, TeamID: 1, FullName: "Ana Torres", Active: true},
		8: {ID: 8, TeamID: 1, FullName: "Luis Vega", Active: true},
	}}
	holidays := &fakeHolidayRepo{holidays: []holiday.Holiday{
		{ID: 1, Name: "Company Day", Day: 9, Month: 3},
	}}

	svc := NewReportService(marks, &fakeEntryRepo{}, overtimeRepo, users, holidays)
	teamID := int64(1)
	result, err := svc.Range(context.Background(), report.RangeFilter{
		TeamID:    &teamID,
		StartDate: "2026-03-09",
		EndDate:   "2026-03-10",
	})
	require.NoError(t, err)

	// Luis has no marks at all and the 10th is empty for everyone, so only
	// Ana's 9th survives.
	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	assert.Equal(t, int64(7), row.UserID)
	assert.Equal(t, "Ana Torres", row.UserName)
	assert.Equal(t, "2026-03-09", row.Date)
	assert.Equal(t, int64(9*60*60), row.GrossSeconds)
	assert.Equal(t, int64(45*60), row.BreakSeconds)
	assert.Equal(t, int64(9*60*60-45*60), row.NetSeconds)
	assert.Equal(t, mark.StatusDone, row.Status)
	assert.Equal(t, 2, row.OvertimeHours)
	require.NotNil(t, row.Holiday)
	assert.Equal(t, "Company Day", *row.Holiday)
	assert.Nil(t, row.Projects)
}

func TestRangeSingleUserIncludesProjectDetail(t *testing.T) {
	day, err := clock.ParseDate("2026-03-09")
	require.NoError(t, err)

	marks := &fakeMarkRepo{marks: []mark.Mark{
		{ID: 1, UserID: 7, TeamID: 1, Kind: mark.KindCheckIn, At: at(day, 9, 0), Active: true},
		{ID: 2, UserID: 7, TeamID: 1, Kind: mark.KindCheckOut, At: at(day, 17, 0), Active: true},
	}}
	closedAt := at(day, 16, 0)
	name := "migration"
	reportText := "batch finished"
	entries := &fakeEntryRepo{entries: []project.TimeEntry{
		{
			ID: 1, UserID: 7, TeamID: 1, ProjectID: 10, Date: day,
			OpenedAt: at(day, 14, 0), ClosedAt: &closedAt,
			Report: &reportText, Active: true, ProjectName: &name,
		},
	}}
	users := &fakeUserRepo{users: map[int64]user.User{
		7: {ID: 7, TeamID: 1, FullName: "Ana Torres", Active: true},
	}}

	svc := NewReportService(marks, entries, &fakeOvertimeRepo{}, users, &fakeHolidayRepo{})
	userID := int64(7)
	result, err := svc.Range(context.Background(), report.RangeFilter{
		UserID:    &userID,
		StartDate: "2026-03-09",
		EndDate:   "2026-03-09",
	})
	require.NoError(t, err)

	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	assert.Equal(t, int64(2*60*60), row.ProjectSeconds)
	require.Len(t, row.Projects, 1)
	detail := row.Projects[0]
	assert.Equal(t, "migration", detail.ProjectName)
	assert.Equal(t, "14:00", detail.OpenedAt)
	require.NotNil(t, detail.ClosedAt)
	assert.Equal(t, "16:00", *detail.ClosedAt)
	assert.Equal(t, int64(2*60*60), detail.Seconds)
	require.NotNil(t, detail.Report)
	assert.Equal(t, "batch finished", *detail.Report)
}
