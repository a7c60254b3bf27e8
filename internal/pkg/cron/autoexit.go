package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/teampulse/attendance-backend-go/internal/domain/mark"
	"github.com/teampulse/attendance-backend-go/internal/pkg/clock"
	"github.com/teampulse/attendance-backend-go/internal/pkg/sse"
	"github.com/teampulse/attendance-backend-go/internal/pkg/userlock"
)

const (
	// AutoExitHour is the wall-clock hour the synthetic check-out is stamped
	// with.
	AutoExitHour = 18

	// AutoExitCheckMinute is when the daily sweep becomes eligible to run.
	AutoExitCheckMinute = 5
)

// ActionTaken records one synthetic check-out appended by the sweep.
type ActionTaken struct {
	UserID int64
	TeamID int64
	MarkID int64
}

// AutoExitJob closes days left open past the cutoff. Users who checked in but
// never checked out get a check-out at 18:00 org time.
type AutoExitJob struct {
	markRepo mark.MarkRepository
	locker   *userlock.Locker
	notifier sse.Notifier
	now      func() time.Time

	mu      sync.Mutex
	lastRun string
}

func NewAutoExitJob(markRepo mark.MarkRepository, locker *userlock.Locker, notifier sse.Notifier) *AutoExitJob {
	return &AutoExitJob{
		markRepo: markRepo,
		locker:   locker,
		notifier: notifier,
		now:      time.Now,
	}
}

// Run is the scheduler entry point. It fires at most once per org day, and
// only at or after the check time. The once-per-day guard is in memory only;
// a restart re-running the sweep is harmless because RunOnce skips users who
// already have a check-out.
func (j *AutoExitJob) Run(ctx context.Context) error {
	now := j.now().In(clock.Location)
	if now.Hour() < AutoExitHour || (now.Hour() == AutoExitHour && now.Minute() < AutoExitCheckMinute) {
		return nil
	}

	day := clock.Today(now).Format("2006-01-02")
	j.mu.Lock()
	if j.lastRun == day {
		j.mu.Unlock()
		return nil
	}
	j.lastRun = day
	j.mu.Unlock()

	actions, err := j.RunOnce(ctx, clock.Today(now))
	if err != nil {
		return err
	}
	slog.Info("Auto-exit sweep completed", "date", day, "closed", len(actions))
	return nil
}

// RunOnce appends a synthetic check-out for every user with a check-in and no
// check-out on the given date. Safe to call repeatedly for the same date.
func (j *AutoExitJob) RunOnce(ctx context.Context, date time.Time) ([]ActionTaken, error) {
	from, to := clock.StartOfDay(date), clock.EndOfDay(date)

	users, err := j.markRepo.UsersCheckedInOn(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list checked-in users: %w", err)
	}

	exitAt := clock.At(date, AutoExitHour, 0, 0)
	var actions []ActionTaken
	for _, u := range users {
		action, closed, err := j.closeDay(ctx, u, from, to, exitAt)
		if err != nil {
			slog.Error("Auto-exit failed for user", "user_id", u.UserID, "error", err)
			continue
		}
		if !closed {
			continue
		}
		actions = append(actions, action)

		j.notifier.Publish(sse.TeamTopic(u.TeamID), sse.Event{
			Event: "auto_exit",
			Data: map[string]interface{}{
				"user_id": u.UserID,
				"at":      exitAt.Format(time.RFC3339),
			},
		})
	}
	return actions, nil
}

func (j *AutoExitJob) closeDay(ctx context.Context, u mark.UserTeam, from, to, exitAt time.Time) (ActionTaken, bool, error) {
	j.locker.Lock(u.UserID)
	defer j.locker.Unlock(u.UserID)

	hasExit, err := j.markRepo.HasCheckOutOn(ctx, u.UserID, from, to)
	if err != nil {
		return ActionTaken{}, false, fmt.Errorf("failed to check for existing check-out: %w", err)
	}
	if hasExit {
		return ActionTaken{}, false, nil
	}

	created, err := j.markRepo.Create(ctx, mark.Mark{
		UserID: u.UserID,
		TeamID: u.TeamID,
		Kind:   mark.KindCheckOut,
		At:     exitAt,
		Active: true,
	})
	if err != nil {
		return ActionTaken{}, false, fmt.Errorf("failed to append synthetic check-out: %w", err)
	}
	return ActionTaken{UserID: u.UserID, TeamID: u.TeamID, MarkID: created.ID}, true, nil
}
