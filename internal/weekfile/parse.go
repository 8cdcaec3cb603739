// Package weekfile reads and writes the line-oriented week-file format.
//
// Each line is matched against an ordered list of rules. Several rules
// overlap textually ("* Vacation" is a prefix of "* VAB 13:00-17:00"), so the
// most specific shapes are tried first.
package weekfile

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/Tiliavir/weektracker/internal/model"
	"github.com/Tiliavir/weektracker/internal/timecalc"
)

// ErrNoMatch is wrapped by ParseError when a line fits no rule.
var ErrNoMatch = errors.New("unrecognized line")

// ParseError reports a line that could not be parsed.
type ParseError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

type rule struct {
	name  string
	re    *regexp.Regexp
	build func(m []string) (model.Line, error)
}

const clock = `([0-9]{2}):([0-9]{2})`

var rules = []rule{
	{
		name: "comment",
		re:   regexp.MustCompile(`^#(?: (.*))?$`),
		build: func(m []string) (model.Line, error) {
			return model.Comment{Text: m[1]}, nil
		},
	},
	{
		name: "day header",
		re:   regexp.MustCompile(`^\[[A-Za-z]+\s+([0-9]{4}-[0-9]{2}-[0-9]{2})\]$`),
		build: func(m []string) (model.Line, error) {
			d, err := civil.ParseDate(m[1])
			if err != nil {
				return nil, fmt.Errorf("invalid date %q", m[1])
			}
			return model.DayHeader{Date: d}, nil
		},
	},
	{
		name: "open shift",
		re:   regexp.MustCompile(`^\* ` + clock + `-$`),
		build: func(m []string) (model.Line, error) {
			start, err := clockTime(m[1], m[2])
			if err != nil {
				return nil, err
			}
			return model.OpenShift{Start: start}, nil
		},
	},
	{
		name: "closed shift",
		re:   regexp.MustCompile(`^\* ` + clock + `-` + clock + `$`),
		build: func(m []string) (model.Line, error) {
			start, stop, err := clockRange(m[1:5])
			if err != nil {
				return nil, err
			}
			return model.ClosedShift{Start: start, Stop: stop}, nil
		},
	},
	{
		name: "special shift",
		re:   regexp.MustCompile(`^\* ([A-Za-z]+) ` + clock + `-` + clock + `$`),
		build: func(m []string) (model.Line, error) {
			start, stop, err := clockRange(m[2:6])
			if err != nil {
				return nil, err
			}
			return model.SpecialShift{Label: m[1], Start: start, Stop: stop}, nil
		},
	},
	{
		name: "duration shift",
		re:   regexp.MustCompile(`^\* ([A-Za-z]+)\s+(-?[0-9]+)\s*h\s+([0-9]+)\s*m$`),
		build: func(m []string) (model.Line, error) {
			hours, err := strconv.ParseInt(m[2], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid hours %q", m[2])
			}
			minutes, err := strconv.ParseInt(m[3], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid minutes %q", m[3])
			}
			if hours > maxHours || hours < -maxHours {
				return nil, fmt.Errorf("hours %q out of range", m[2])
			}
			if minutes > (math.MaxInt64-abs(hours)*int64(time.Hour))/int64(time.Minute) {
				return nil, fmt.Errorf("minutes %q out of range", m[3])
			}
			d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
			if strings.HasPrefix(m[2], "-") {
				d = time.Duration(hours)*time.Hour - time.Duration(minutes)*time.Minute
			}
			return model.DurationShift{Label: m[1], Duration: d}, nil
		},
	},
	{
		name: "special day",
		re:   regexp.MustCompile(`^\* ([A-Za-z]+)$`),
		build: func(m []string) (model.Line, error) {
			return model.SpecialDay{Label: m[1]}, nil
		},
	},
	{
		name: "blank",
		re:   regexp.MustCompile(`^\s*$`),
		build: func([]string) (model.Line, error) {
			return model.Blank{}, nil
		},
	},
}

// maxHours is the largest hour count a time.Duration can hold.
const maxHours = math.MaxInt64 / int64(time.Hour)

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func clockTime(hour, minute string) (civil.Time, error) {
	h, _ := strconv.Atoi(hour)
	m, _ := strconv.Atoi(minute)
	t := civil.Time{Hour: h, Minute: m}
	if h > 23 || m > 59 {
		return civil.Time{}, fmt.Errorf("invalid time %s:%s", hour, minute)
	}
	return t, nil
}

func clockRange(parts []string) (civil.Time, civil.Time, error) {
	start, err := clockTime(parts[0], parts[1])
	if err != nil {
		return civil.Time{}, civil.Time{}, err
	}
	stop, err := clockTime(parts[2], parts[3])
	if err != nil {
		return civil.Time{}, civil.Time{}, err
	}
	return start, stop, nil
}

// ParseLine parses a single line without its terminator. The returned error
// is ErrNoMatch when no rule applies.
func ParseLine(s string) (model.Line, error) {
	for _, r := range rules {
		m := r.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		l, err := r.build(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.name, err)
		}
		return l, nil
	}
	return nil, ErrNoMatch
}

// Parse parses the full text of a week-file into a Document for week.
// Lines before the first day header form the preamble. Parsing stops at the
// first malformed line.
func Parse(week timecalc.Week, text string) (model.Document, error) {
	doc := model.Document{Week: week}
	var current *model.Day

	for i, raw := range splitLines(text) {
		l, err := ParseLine(raw)
		if err != nil {
			return model.Document{}, &ParseError{Line: i + 1, Text: raw, Err: err}
		}
		if h, ok := l.(model.DayHeader); ok {
			if current != nil {
				doc.Days = append(doc.Days, *current)
			}
			current = &model.Day{Date: h.Date}
			continue
		}
		if current == nil {
			doc.Preamble = append(doc.Preamble, l)
			continue
		}
		current.Lines = append(current.Lines, l)
	}
	if current != nil {
		doc.Days = append(doc.Days, *current)
	}
	return doc, nil
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
