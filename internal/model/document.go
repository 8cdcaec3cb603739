package model

import (
	"cloud.google.com/go/civil"

	"github.com/Tiliavir/weektracker/internal/timecalc"
)

// Document is the parsed content of one week-file: the lines before the first
// day header and the days in file order (ascending by date when maintained
// through InsertingDay).
type Document struct {
	Week     timecalc.Week
	Preamble []Line
	Days     []Day
}

// NewDocument returns a Document owning copies of preamble and days.
func NewDocument(week timecalc.Week, preamble []Line, days []Day) Document {
	return Document{
		Week:     week,
		Preamble: cloneLines(preamble),
		Days:     cloneDays(days),
	}
}

// Empty returns a document for week without any lines.
func Empty(week timecalc.Week) Document {
	return Document{Week: week}
}

// HasOpenShift reports whether any day of the document has an open shift.
// At most one open shift may exist across the whole document.
func (doc Document) HasOpenShift() bool {
	_, ok := doc.OpenShiftDay()
	return ok
}

// OpenShiftDay returns the first day holding an open shift.
func (doc Document) OpenShiftDay() (Day, bool) {
	for _, d := range doc.Days {
		if d.HasOpenShift() {
			return d, true
		}
	}
	return Day{}, false
}

// Day returns the day for date, if the document has one.
func (doc Document) Day(date civil.Date) (Day, bool) {
	for _, d := range doc.Days {
		if d.Date == date {
			return d, true
		}
	}
	return Day{}, false
}

// ReplacingDay returns a copy of doc where the day matching date is swapped
// for day. If no such day exists the day list is left unchanged.
func (doc Document) ReplacingDay(date civil.Date, day Day) Document {
	days := make([]Day, len(doc.Days))
	for i, d := range doc.Days {
		if d.Date == date {
			days[i] = cloneDay(day)
			continue
		}
		days[i] = cloneDay(d)
	}
	if doc.Days == nil {
		days = nil
	}
	return Document{Week: doc.Week, Preamble: cloneLines(doc.Preamble), Days: days}
}

// InsertingDay returns a copy of doc with day placed between the days dated
// strictly before and strictly after it. A Blank line is appended to the
// preceding day, if any, to separate it from the new one.
func (doc Document) InsertingDay(day Day) Document {
	var before, after []Day
	for _, d := range doc.Days {
		switch {
		case d.Date.Before(day.Date):
			before = append(before, cloneDay(d))
		case d.Date.After(day.Date):
			after = append(after, cloneDay(d))
		}
	}
	if n := len(before); n > 0 {
		before[n-1].Lines = append(before[n-1].Lines, Blank{})
	}
	days := make([]Day, 0, len(before)+1+len(after))
	days = append(days, before...)
	days = append(days, cloneDay(day))
	days = append(days, after...)
	return Document{Week: doc.Week, Preamble: cloneLines(doc.Preamble), Days: days}
}

func cloneDay(d Day) Day {
	return Day{Date: d.Date, Lines: cloneLines(d.Lines)}
}

func cloneDays(days []Day) []Day {
	if days == nil {
		return nil
	}
	out := make([]Day, len(days))
	for i, d := range days {
		out[i] = cloneDay(d)
	}
	return out
}
