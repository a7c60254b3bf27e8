package report

import (
	"context"
	"fmt"
	"time"

	"github.com/teampulse/attendance-backend-go/internal/domain/holiday"
	"github.com/teampulse/attendance-backend-go/internal/domain/mark"
	"github.com/teampulse/attendance-backend-go/internal/domain/overtime"
	"github.com/teampulse/attendance-backend-go/internal/domain/project"
	"github.com/teampulse/attendance-backend-go/internal/domain/report"
	"github.com/teampulse/attendance-backend-go/internal/domain/user"
	"github.com/teampulse/attendance-backend-go/internal/pkg/clock"
	"github.com/teampulse/attendance-backend-go/internal/pkg/identity"
	calc "github.com/teampulse/attendance-backend-go/internal/service/mark"
)

type ReportServiceImpl struct {
	markRepo     mark.MarkRepository
	entryRepo    project.TimeEntryRepository
	overtimeRepo overtime.OvertimeRepository
	userRepo     user.UserRepository
	holidayRepo  holiday.HolidayRepository
	now          func() time.Time
}

func NewReportService(
	markRepo mark.MarkRepository,
	entryRepo project.TimeEntryRepository,
	overtimeRepo overtime.OvertimeRepository,
	userRepo user.UserRepository,
	holidayRepo holiday.HolidayRepository,
) report.ReportService {
	return &ReportServiceImpl{
		markRepo:     markRepo,
		entryRepo:    entryRepo,
		overtimeRepo: overtimeRepo,
		userRepo:     userRepo,
		holidayRepo:  holidayRepo,
		now:          time.Now,
	}
}

// Range implements report.ReportService.
func (s *ReportServiceImpl) Range(ctx context.Context, filter report.RangeFilter) (report.RangeReport, error) {
	if err := filter.Validate(); err != nil {
		return report.RangeReport{}, err
	}

	start, _ := clock.ParseDate(filter.StartDate)
	end, _ := clock.ParseDate(filter.EndDate)

	var users []user.User
	singleUser := filter.UserID != nil
	if singleUser {
		u, err := s.userRepo.GetByID(ctx, *filter.UserID)
		if err != nil {
			return report.RangeReport{}, err
		}
		users = []user.User{u}
	} else {
		var err error
		users, err = s.userRepo.ListActiveByTeam(ctx, *filter.TeamID)
		if err != nil {
			return report.RangeReport{}, fmt.Errorf("failed to list team users: %w", err)
		}
	}

	holidays, err := s.holidayNames(ctx)
	if err != nil {
		return report.RangeReport{}, err
	}

	now := s.now()
	result := report.RangeReport{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		Rows:      []report.Row{},
	}

	for _, u := range users {
		from, to := clock.StartOfDay(start), clock.EndOfDay(end)
		marks, err := s.markRepo.ListByUserAndRange(ctx, u.ID, from, to)
		if err != nil {
			return report.RangeReport{}, fmt.Errorf("failed to list marks for user %d: %w", u.ID, err)
		}
		entries, err := s.entryRepo.ListByUserAndRange(ctx, u.ID, from, to)
		if err != nil {
			return report.RangeReport{}, fmt.Errorf("failed to list project entries for user %d: %w", u.ID, err)
		}

		marksByDay := groupMarks(marks)
		entriesByDay := groupEntries(entries)

		for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
			key := date.Format("2006-01-02")
			dayMarks := marksByDay[key]
			if len(dayMarks) == 0 {
				continue
			}
			dayEntries := entriesByDay[key]
			summary := calc.Summarize(dayMarks, dayEntries, now)

			overtimeHours, err := s.overtimeRepo.AcceptedHoursByUserAndDate(ctx, u.ID, date)
			if err != nil {
				return report.RangeReport{}, fmt.Errorf("failed to sum overtime for user %d: %w", u.ID, err)
			}

			row := report.Row{
				UserID:         u.ID,
				UserName:       u.FullName,
				Date:           key,
				GrossSeconds:   summary.GrossSeconds,
				BreakSeconds:   summary.BreakSeconds,
				NetSeconds:     summary.NetSeconds,
				Status:         summary.Status,
				OvertimeHours:  overtimeHours,
				ProjectSeconds: summary.ProjectSeconds,
			}
			if name, ok := holidays[monthDay(date)]; ok {
				holidayName := name
				row.Holiday = &holidayName
			}
			if singleUser {
				row.Projects = projectDetails(dayEntries, now)
			}
			result.Rows = append(result.Rows, row)
		}
	}
	return result, nil
}

// TeamDay implements report.ReportService.
func (s *ReportServiceImpl) TeamDay(ctx context.Context, date string) (report.RangeReport, error) {
	_, teamID, err := identity.FromContext(ctx)
	if err != nil {
		return report.RangeReport{}, err
	}
	return s.Range(ctx, report.RangeFilter{
		TeamID:    &teamID,
		StartDate: date,
		EndDate:   date,
	})
}

// holidayNames keys holiday names by "MM-DD". Holidays recur annually, so the
// year never enters the join.
func (s *ReportServiceImpl) holidayNames(ctx context.Context) (map[string]string, error) {
	holidays, err := s.holidayRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	names := make(map[string]string, len(holidays))
	for _, h := range holidays {
		names[fmt.Sprintf("%02d-%02d", h.Month, h.Day)] = h.Name
	}
	return names, nil
}

func monthDay(date time.Time) string {
	local := date.In(clock.Location)
	return fmt.Sprintf("%02d-%02d", int(local.Month()), local.Day())
}

func groupMarks(marks []mark.Mark) map[string][]mark.Mark {
	byDay := make(map[string][]mark.Mark)
	for _, m := range marks {
		key := clock.Today(m.At).Format("2006-01-02")
		byDay[key] = append(byDay[key], m)
	}
	return byDay
}

func groupEntries(entries []project.TimeEntry) map[string][]project.TimeEntry {
	byDay := make(map[string][]project.TimeEntry)
	for _, e := range entries {
		key := clock.Today(e.Date).Format("2006-01-02")
		byDay[key] = append(byDay[key], e)
	}
	return byDay
}

func projectDetails(entries []project.TimeEntry, now time.Time) []report.ProjectDetail {
	if len(entries) == 0 {
		return nil
	}
	details := make([]report.ProjectDetail, 0, len(entries))
	for _, e := range entries {
		name := ""
		if e.ProjectName != nil {
			name = *e.ProjectName
		}
		d := report.ProjectDetail{
			ProjectName: name,
			OpenedAt:    e.OpenedAt.In(clock.Location).Format("15:04"),
			Seconds:     e.Seconds(now),
			Report:      e.Report,
		}
		if e.ClosedAt != nil {
			closedAt := e.ClosedAt.In(clock.Location).Format("15:04")
			d.ClosedAt = &closedAt
		}
		details = append(details, d)
	}
	return details
}
