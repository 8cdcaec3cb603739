// Package report derives worked time and balance from a week document.
package report

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/Tiliavir/weektracker/internal/model"
	"github.com/Tiliavir/weektracker/internal/timecalc"
)

// Report is the worked-time summary of a document at a given instant.
type Report struct {
	DurationToday time.Duration
	DurationWeek  time.Duration
	IsOngoing     bool
	Balance       time.Duration
}

// Compute builds the report for doc as seen at now. Only the day matching
// now's date counts its open shift, up to now.
func Compute(doc model.Document, now civil.DateTime, ww model.WorkWeek) Report {
	var r Report
	var other time.Duration
	for _, day := range doc.Days {
		if day.Date == now.Date {
			r.DurationToday += dayDuration(day, &now, ww)
			r.IsOngoing = r.IsOngoing || day.HasOpenShift()
			continue
		}
		other += dayDuration(day, nil, ww)
	}
	r.DurationWeek = r.DurationToday + other

	expected := time.Duration(ExpectedDays(doc.Week, now.Date, ww)) * ww.DayDuration()
	r.Balance = r.DurationWeek - expected + Carry(doc)
	return r
}

// ExpectedDays returns how many working days of week have begun by date,
// clamped to [0, DaysPerWeek].
func ExpectedDays(week timecalc.Week, date civil.Date, ww model.WorkWeek) int {
	n := date.DaysSince(week.Monday()) + 1
	return max(0, min(n, ww.DaysPerWeek))
}

// Carry sums the duration entries of the document's preamble.
func Carry(doc model.Document) time.Duration {
	var total time.Duration
	for _, l := range doc.Preamble {
		if d, ok := l.(model.DurationShift); ok {
			total += d.Duration
		}
	}
	return total
}

func dayDuration(day model.Day, now *civil.DateTime, ww model.WorkWeek) time.Duration {
	var total time.Duration
	for _, l := range day.Lines {
		total += lineDuration(l, now, ww)
	}
	return total
}

// lineDuration is the worked time contributed by one line. Stop times before
// start times are not rejected and yield negative durations.
func lineDuration(l model.Line, now *civil.DateTime, ww model.WorkWeek) time.Duration {
	switch v := l.(type) {
	case model.ClosedShift:
		return timecalc.MinutesBetween(v.Start, v.Stop)
	case model.SpecialShift:
		return timecalc.MinutesBetween(v.Start, v.Stop)
	case model.OpenShift:
		if now == nil {
			return 0
		}
		return timecalc.MinutesBetween(v.Start, now.Time)
	case model.SpecialDay:
		return ww.DayDuration()
	case model.DurationShift, model.Comment, model.Blank, model.DayHeader:
		return 0
	default:
		return 0
	}
}
