package clock

import (
	"testing"
	"time"
)

func TestToday(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"midday utc", time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), "2024-03-15"},
		// 03:00 UTC is still 21:00 of the previous day at UTC-6.
		{"early utc is previous local day", time.Date(2024, 3, 15, 3, 0, 0, 0, time.UTC), "2024-03-14"},
		{"exactly local midnight", time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC), "2024-03-15"},
	}
	for _, c := range cases {
		got := Today(c.now).Format("2006-01-02")
		if got != c.want {
			t.Errorf("%s: Today(%v) = %s, want %s", c.name, c.now, got, c.want)
		}
	}
}

func TestStartAndEndOfDay(t *testing.T) {
	date, err := ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}

	start := StartOfDay(date)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Errorf("StartOfDay = %v, want midnight", start)
	}

	end := EndOfDay(date)
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Errorf("EndOfDay = %v, want 23:59:59", end)
	}

	if !end.After(start) {
		t.Errorf("EndOfDay %v not after StartOfDay %v", end, start)
	}
	if got := end.Sub(start); got != 24*time.Hour-time.Second {
		t.Errorf("day span = %v, want %v", got, 24*time.Hour-time.Second)
	}
}

func TestAt(t *testing.T) {
	date, _ := ParseDate("2024-03-15")
	got := At(date, 18, 0, 0)
	if got.Hour() != 18 || got.Day() != 15 {
		t.Errorf("At = %v, want 18:00 on the 15th", got)
	}
	// 18:00 UTC-6 is 00:00 UTC the next day.
	if utc := got.UTC(); utc.Hour() != 0 || utc.Day() != 16 {
		t.Errorf("At in UTC = %v, want 00:00 on the 16th", utc)
	}
}

func TestParseClock(t *testing.T) {
	valid := []string{"08:00", "18:05", "23:59:59"}
	invalid := []string{"8am", "25:00", "", "12-30"}
	for _, s := range valid {
		if _, err := ParseClock(s); err != nil {
			t.Errorf("ParseClock(%q) returned error: %v", s, err)
		}
	}
	for _, s := range invalid {
		if _, err := ParseClock(s); err == nil {
			t.Errorf("ParseClock(%q) = nil error, want failure", s)
		}
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC)  // 00:00 local
	b := time.Date(2024, 3, 16, 5, 59, 0, 0, time.UTC) // 23:59 local same day
	c := time.Date(2024, 3, 16, 6, 0, 0, 0, time.UTC)  // next local day
	if !SameDay(a, b) {
		t.Errorf("SameDay(%v, %v) = false, want true", a, b)
	}
	if SameDay(a, c) {
		t.Errorf("SameDay(%v, %v) = true, want false", a, c)
	}
}
