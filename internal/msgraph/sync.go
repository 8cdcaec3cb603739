package msgraph

import (
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/civil"

	"github.com/Tiliavir/weektracker/internal/model"
	"github.com/Tiliavir/weektracker/internal/timecalc"
)

// SyncResult holds counters for a sync operation.
type SyncResult struct {
	Imported int
	Skipped  int
	Errors   int
}

// SyncOptions configures a sync run.
type SyncOptions struct {
	// Label is written as the special day of each imported absence.
	Label string
	// Timezone is the IANA zone event times are interpreted in; "" for UTC.
	Timezone string
	// Out receives one line per imported or skipped day.
	Out io.Writer
}

// parseGraphTime parses a Graph API dateTime string in the given timezone.
// Graph returns times like "2026-02-27T09:00:00.0000000" without a zone suffix
// when a Prefer: outlook.timezone header is set.
func parseGraphTime(dt, tz string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		return t, nil
	}

	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	// Graph returns fractional seconds: "2026-02-27T09:00:00.0000000"
	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// IsAbsence reports whether event marks the user out of office for whole
// days.
func IsAbsence(event CalendarEvent) bool {
	return !event.IsCancelled &&
		event.IsAllDay &&
		event.ShowAs == "oof" &&
		event.Start.DateTime != "" &&
		event.End.DateTime != ""
}

// AbsenceDates returns the dates covered by an all-day event. Graph reports
// the end of an all-day event as midnight of the following day.
func AbsenceDates(event CalendarEvent, timezone string) ([]civil.Date, error) {
	start, err := parseGraphTime(event.Start.DateTime, timezone)
	if err != nil {
		return nil, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := parseGraphTime(event.End.DateTime, timezone)
	if err != nil {
		return nil, fmt.Errorf("parsing end time: %w", err)
	}
	first, last := civil.DateOf(start), civil.DateOf(end)
	if !first.Before(last) {
		return []civil.Date{first}, nil
	}
	var dates []civil.Date
	for d := first; d.Before(last); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates, nil
}

// ApplyEvents adds a special day labelled opts.Label to doc for every
// weekday of doc's week covered by an absence event. Days already carrying
// the label are skipped, so repeated syncs are idempotent.
func ApplyEvents(doc model.Document, events []CalendarEvent, opts SyncOptions) (model.Document, SyncResult) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	monday := doc.Week.Monday()
	var result SyncResult

	for _, event := range events {
		if !IsAbsence(event) {
			continue
		}
		dates, err := AbsenceDates(event, opts.Timezone)
		if err != nil {
			fmt.Fprintf(out, "  ! Error mapping event %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}
		for _, date := range dates {
			if timecalc.MondayOf(date) != monday || timecalc.IsWeekend(date) {
				continue
			}
			special := model.SpecialDay{Label: opts.Label}
			day, ok := doc.Day(date)
			switch {
			case ok && day.HasLabel(opts.Label):
				fmt.Fprintf(out, "  – Skipped:  %s %s (already recorded)\n", date, event.Subject)
				result.Skipped++
				continue
			case ok:
				doc = doc.ReplacingDay(date, day.AddingShift(special))
			default:
				doc = doc.InsertingDay(model.NewDay(date, special))
			}
			fmt.Fprintf(out, "  ✓ Imported: %s %s\n", date, event.Subject)
			result.Imported++
		}
	}
	return doc, result
}
