package timecalc_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/Tiliavir/weektracker/internal/timecalc"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0 h 0 m"},
		{45 * time.Second, "0 h 0 m"},
		{time.Minute, "0 h 1 m"},
		{90 * time.Minute, "1 h 30 m"},
		{40*time.Hour + 54*time.Minute, "40 h 54 m"},
		{-30 * time.Minute, "-0 h 30 m"},
		{-(8*time.Hour + 36*time.Minute), "-8 h 36 m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDuration(tt.d)
		if got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestMondayOf(t *testing.T) {
	// 2026-02-27 is a Friday (week 9).
	tests := []struct {
		in   civil.Date
		want civil.Date
	}{
		{date(2026, 2, 27), date(2026, 2, 23)},
		{date(2026, 2, 23), date(2026, 2, 23)},
		{date(2026, 3, 1), date(2026, 2, 23)},
	}
	for _, tt := range tests {
		if got := timecalc.MondayOf(tt.in); got != tt.want {
			t.Errorf("MondayOf(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestWeekMonday(t *testing.T) {
	tests := []struct {
		week timecalc.Week
		want civil.Date
	}{
		{timecalc.Week{Year: 2026, Number: 9}, date(2026, 2, 23)},
		{timecalc.Week{Year: 2020, Number: 1}, date(2019, 12, 30)},
		{timecalc.Week{Year: 2020, Number: 53}, date(2020, 12, 28)},
		{timecalc.Week{Year: 2024, Number: 4}, date(2024, 1, 22)},
	}
	for _, tt := range tests {
		if got := tt.week.Monday(); got != tt.want {
			t.Errorf("%s.Monday() = %s, want %s", tt.week, got, tt.want)
		}
	}
}

func TestWeekOfAndAdd(t *testing.T) {
	w := timecalc.WeekOf(date(2021, 1, 1))
	if w != (timecalc.Week{Year: 2020, Number: 53}) {
		t.Fatalf("WeekOf(2021-01-01) = %v, want 2020-W53", w)
	}
	if got := w.Add(1); got != (timecalc.Week{Year: 2021, Number: 1}) {
		t.Errorf("Add(1) = %v, want 2021-W01", got)
	}
	if got := w.Add(-53); got != (timecalc.Week{Year: 2019, Number: 52}) {
		t.Errorf("Add(-53) = %v, want 2019-W52", got)
	}
}

func TestWeekString(t *testing.T) {
	got := timecalc.WeekOf(date(2026, 2, 27)).String()
	if got != "2026-W09" {
		t.Errorf("String = %q, want %q", got, "2026-W09")
	}
}

func TestParseWeek(t *testing.T) {
	w, err := timecalc.ParseWeek("2024-W04")
	if err != nil {
		t.Fatalf("ParseWeek: %v", err)
	}
	if w != (timecalc.Week{Year: 2024, Number: 4}) {
		t.Errorf("ParseWeek = %v", w)
	}
	for _, bad := range []string{"", "2024-04", "2024-W00", "2021-W53", "week", "2024-W045", "2024-W04x", "2024-W4"} {
		if _, err := timecalc.ParseWeek(bad); err == nil {
			t.Errorf("ParseWeek(%q): expected error", bad)
		}
	}
}

func TestWeekdayName(t *testing.T) {
	if got := timecalc.WeekdayName(date(2020, 7, 13)); got != "monday" {
		t.Errorf("WeekdayName = %q, want monday", got)
	}
	if got := timecalc.WeekdayName(date(2020, 7, 19)); got != "sunday" {
		t.Errorf("WeekdayName = %q, want sunday", got)
	}
}

func TestMinutesBetween(t *testing.T) {
	start := civil.Time{Hour: 8, Minute: 24}
	stop := civil.Time{Hour: 9, Minute: 12, Second: 59}
	if got := timecalc.MinutesBetween(start, stop); got != 48*time.Minute {
		t.Errorf("MinutesBetween = %v, want 48m", got)
	}
	if got := timecalc.MinutesBetween(stop, start); got != -48*time.Minute {
		t.Errorf("MinutesBetween reversed = %v, want -48m", got)
	}
}
