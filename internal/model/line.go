package model

import (
	"time"

	"cloud.google.com/go/civil"
)

// Line is a single line of a week-file. The set of implementations is closed:
// Comment, DayHeader, OpenShift, ClosedShift, DurationShift, SpecialDay,
// SpecialShift and Blank.
type Line interface {
	isLine()
}

// Comment is a free-text line starting with "# ".
type Comment struct {
	Text string
}

// DayHeader opens a day, e.g. "[monday 2021-09-13]".
type DayHeader struct {
	Date civil.Date
}

// OpenShift is a shift that has been started but not stopped yet.
type OpenShift struct {
	Start civil.Time
}

// ClosedShift is a shift with both start and stop time recorded.
type ClosedShift struct {
	Start civil.Time
	Stop  civil.Time
}

// DurationShift is a manually entered, signed duration such as a balance
// carried over from an earlier week. It affects the balance only.
type DurationShift struct {
	Label    string
	Duration time.Duration
}

// SpecialDay marks a whole day of non-regular work time (vacation, leave).
type SpecialDay struct {
	Label string
}

// SpecialShift is a labelled clock range of non-regular work time.
type SpecialShift struct {
	Label string
	Start civil.Time
	Stop  civil.Time
}

// Blank is an empty or whitespace-only line.
type Blank struct{}

func (Comment) isLine()       {}
func (DayHeader) isLine()     {}
func (OpenShift) isLine()     {}
func (ClosedShift) isLine()   {}
func (DurationShift) isLine() {}
func (SpecialDay) isLine()    {}
func (SpecialShift) isLine()  {}
func (Blank) isLine()         {}

// IsShift reports whether l is a clock-range shift entry. Shift entries are
// kept clustered at the top of a day's body.
func IsShift(l Line) bool {
	switch l.(type) {
	case OpenShift, ClosedShift, SpecialShift:
		return true
	default:
		return false
	}
}

func cloneLines(lines []Line) []Line {
	if lines == nil {
		return nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
