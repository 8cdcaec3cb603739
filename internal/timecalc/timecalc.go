package timecalc

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Week identifies an ISO 8601 week.
type Week struct {
	Year   int
	Number int
}

// WeekOf returns the ISO week containing d.
func WeekOf(d civil.Date) Week {
	year, week := d.In(time.UTC).ISOWeek()
	return Week{Year: year, Number: week}
}

// Monday returns the first day of the week.
func (w Week) Monday() civil.Date {
	// January 4th always falls in week 1.
	jan4 := civil.Date{Year: w.Year, Month: time.January, Day: 4}
	return MondayOf(jan4).AddDays((w.Number - 1) * 7)
}

// Add returns the week n weeks after w (n may be negative).
func (w Week) Add(n int) Week {
	return WeekOf(w.Monday().AddDays(7 * n))
}

// String returns a label like "2026-W09".
func (w Week) String() string {
	return fmt.Sprintf("%d-W%02d", w.Year, w.Number)
}

// ParseWeek parses a label produced by Week.String.
func ParseWeek(s string) (Week, error) {
	var w Week
	if _, err := fmt.Sscanf(s, "%4d-W%2d", &w.Year, &w.Number); err != nil {
		return Week{}, fmt.Errorf("invalid week %q: %w", s, err)
	}
	if w.String() != s {
		return Week{}, fmt.Errorf("invalid week %q: want YYYY-Www", s)
	}
	if w.Number < 1 || w.Number > 53 || WeekOf(w.Monday()) != w {
		return Week{}, fmt.Errorf("invalid week %q: no such ISO week", s)
	}
	return w, nil
}

// MondayOf returns the Monday of the ISO week containing d.
func MondayOf(d civil.Date) civil.Date {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(Weekday(d))
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	return d.AddDays(-(wd - 1))
}

// Weekday returns the day of the week of d.
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// WeekdayName returns the lowercase English name of d's weekday, e.g. "monday".
func WeekdayName(d civil.Date) string {
	return strings.ToLower(Weekday(d).String())
}

// IsWeekend reports whether d is a Saturday or Sunday.
func IsWeekend(d civil.Date) bool {
	wd := Weekday(d)
	return wd == time.Saturday || wd == time.Sunday
}

// MinutesBetween returns stop − start as a duration, ignoring seconds below
// the minute. A stop before start yields a negative duration.
func MinutesBetween(start, stop civil.Time) time.Duration {
	return Sub(stop, start).Truncate(time.Minute)
}

// Sub returns a − b for two times of the same day.
func Sub(a, b civil.Time) time.Duration {
	return sinceMidnight(a) - sinceMidnight(b)
}

func sinceMidnight(t civil.Time) time.Duration {
	return time.Duration(t.Hour)*time.Hour +
		time.Duration(t.Minute)*time.Minute +
		time.Duration(t.Second)*time.Second +
		time.Duration(t.Nanosecond)
}

// FormatDuration formats d as "8 h 36 m". The sign is carried on the hour
// term only, so -30m renders as "-0 h 30 m".
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	minutes := int64(d / time.Minute)
	return fmt.Sprintf("%s%d h %d m", sign, minutes/60, minutes%60)
}

// TruncateToMinute drops seconds and below from t.
func TruncateToMinute(t civil.Time) civil.Time {
	return civil.Time{Hour: t.Hour, Minute: t.Minute}
}
