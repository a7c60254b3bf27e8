package mark

import (
	"sort"
	"time"

	"github.com/teampulse/attendance-backend-go/internal/domain/mark"
	"github.com/teampulse/attendance-backend-go/internal/domain/project"
)

const (
	// BreakCapSeconds is the maximum break duration credited per break pair.
	BreakCapSeconds int64 = 70 * 60

	// ThresholdSeconds is the net worked time after which special-project
	// time may be logged. The gate is advisory; nothing blocks on it.
	ThresholdSeconds int64 = 9 * 60 * 60
)

// GrossSeconds returns the elapsed time from the first check-in to the last
// check-out, or to now when the day is still open. Multiple check-in/out
// cycles collapse into one span: only the earliest check-in and the latest
// check-out are considered. Malformed sequences clamp to zero.
func GrossSeconds(marks []mark.Mark, now time.Time) int64 {
	var firstIn, lastOut *time.Time
	for i := range marks {
		m := marks[i]
		switch m.Kind {
		case mark.KindCheckIn:
			if firstIn == nil || m.At.Before(*firstIn) {
				at := m.At
				firstIn = &at
			}
		case mark.KindCheckOut:
			if lastOut == nil || m.At.After(*lastOut) {
				at := m.At
				lastOut = &at
			}
		}
	}
	if firstIn == nil {
		return 0
	}
	end := now
	if lastOut != nil {
		end = *lastOut
	}
	secs := int64(end.Sub(*firstIn).Seconds())
	if secs < 0 {
		return 0
	}
	return secs
}

// BreakSeconds pairs the day's break marks in order (open, close) and sums
// their durations, capping each pair at BreakCapSeconds. A trailing unpaired
// mark is a break still open and accrues against now, capped the same way.
func BreakSeconds(marks []mark.Mark, now time.Time) int64 {
	var breaks []time.Time
	for _, m := range marks {
		if m.Kind == mark.KindBreak {
			breaks = append(breaks, m.At)
		}
	}
	sort.Slice(breaks, func(i, j int) bool { return breaks[i].Before(breaks[j]) })

	var total int64
	for i := 0; i+1 < len(breaks); i += 2 {
		total += cappedSeconds(breaks[i], breaks[i+1])
	}
	if len(breaks)%2 == 1 {
		total += cappedSeconds(breaks[len(breaks)-1], now)
	}
	return total
}

func cappedSeconds(start, end time.Time) int64 {
	secs := int64(end.Sub(start).Seconds())
	if secs < 0 {
		secs = 0
	}
	if secs > BreakCapSeconds {
		secs = BreakCapSeconds
	}
	return secs
}

// NetSeconds is gross time minus capped break time, never negative.
func NetSeconds(marks []mark.Mark, now time.Time) int64 {
	net := GrossSeconds(marks, now) - BreakSeconds(marks, now)
	if net < 0 {
		return 0
	}
	return net
}

// StatusOf derives the day's presence state. Precedence is fixed: a check-out
// always wins, then an odd break count, then any check-in.
func StatusOf(marks []mark.Mark) mark.DayStatus {
	if len(marks) == 0 {
		return mark.StatusNoRecord
	}
	var checkIns, breaks, checkOuts int
	for _, m := range marks {
		switch m.Kind {
		case mark.KindCheckIn:
			checkIns++
		case mark.KindBreak:
			breaks++
		case mark.KindCheckOut:
			checkOuts++
		}
	}
	switch {
	case checkOuts > 0:
		return mark.StatusDone
	case breaks%2 == 1:
		return mark.StatusOnBreak
	case checkIns > 0:
		return mark.StatusWorking
	}
	return mark.StatusNoRecord
}

// Threshold reports whether net worked time has reached the special-project
// threshold. Informational only.
func Threshold(marks []mark.Mark, now time.Time) mark.ThresholdStatus {
	net := NetSeconds(marks, now)
	return mark.ThresholdStatus{
		Reached:          net >= ThresholdSeconds,
		NetSeconds:       net,
		ThresholdSeconds: ThresholdSeconds,
	}
}

// Summarize bundles the derived figures for one user's day, including total
// project time across the day's entries.
func Summarize(marks []mark.Mark, entries []project.TimeEntry, now time.Time) mark.DaySummary {
	var projectSecs int64
	for _, e := range entries {
		if e.ClosedAt == nil {
			continue
		}
		projectSecs += e.Seconds(now)
	}
	return mark.DaySummary{
		GrossSeconds:   GrossSeconds(marks, now),
		BreakSeconds:   BreakSeconds(marks, now),
		NetSeconds:     NetSeconds(marks, now),
		ProjectSeconds: projectSecs,
		Status:         StatusOf(marks),
	}
}
