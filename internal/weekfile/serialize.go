package weekfile

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/Tiliavir/weektracker/internal/model"
	"github.com/Tiliavir/weektracker/internal/timecalc"
)

// FormatLine renders a single line without terminator.
func FormatLine(l model.Line) string {
	switch v := l.(type) {
	case model.Comment:
		if v.Text == "" {
			return "#"
		}
		return "# " + v.Text
	case model.DayHeader:
		return formatHeader(v.Date)
	case model.OpenShift:
		return fmt.Sprintf("* %s-", hhmm(v.Start))
	case model.ClosedShift:
		return fmt.Sprintf("* %s-%s", hhmm(v.Start), hhmm(v.Stop))
	case model.DurationShift:
		return fmt.Sprintf("* %s %s", v.Label, formatSigned(v.Duration))
	case model.SpecialDay:
		return "* " + v.Label
	case model.SpecialShift:
		return fmt.Sprintf("* %s %s-%s", v.Label, hhmm(v.Start), hhmm(v.Stop))
	case model.Blank:
		return ""
	default:
		panic(fmt.Sprintf("weekfile: unknown line type %T", l))
	}
}

// SerializeDay renders a day header followed by the day's lines.
func SerializeDay(d model.Day) string {
	var b strings.Builder
	writeDay(&b, d)
	return b.String()
}

// Serialize renders doc as week-file text. Every line, including the last,
// is terminated by a newline.
func Serialize(doc model.Document) string {
	var b strings.Builder
	for _, l := range doc.Preamble {
		b.WriteString(FormatLine(l))
		b.WriteByte('\n')
	}
	for _, d := range doc.Days {
		writeDay(&b, d)
	}
	return b.String()
}

func writeDay(b *strings.Builder, d model.Day) {
	b.WriteString(formatHeader(d.Date))
	b.WriteByte('\n')
	for _, l := range d.Lines {
		b.WriteString(FormatLine(l))
		b.WriteByte('\n')
	}
}

func formatHeader(d civil.Date) string {
	return fmt.Sprintf("[%s %s]", timecalc.WeekdayName(d), d)
}

func hhmm(t civil.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// formatSigned renders "1h 10m" or "-2h 5m"; the sign is only written on
// the hour term.
func formatSigned(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	minutes := int64(d / time.Minute)
	return fmt.Sprintf("%s%dh %dm", sign, minutes/60, minutes%60)
}
