package model

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// Day holds the lines recorded under one day header. The header itself is not
// part of Lines.
type Day struct {
	Date  civil.Date
	Lines []Line
}

// NewDay returns a Day owning a copy of lines.
func NewDay(date civil.Date, lines ...Line) Day {
	return Day{Date: date, Lines: cloneLines(lines)}
}

// HasOpenShift reports whether any line of the day is an OpenShift.
func (d Day) HasOpenShift() bool {
	return d.openShiftCount() > 0
}

func (d Day) openShiftCount() int {
	n := 0
	for _, l := range d.Lines {
		if _, ok := l.(OpenShift); ok {
			n++
		}
	}
	return n
}

// AddingShift returns a copy of d with line inserted right after the leading
// run of shift entries, before any trailing comments or blank lines.
func (d Day) AddingShift(line Line) Day {
	i := 0
	for i < len(d.Lines) && IsShift(d.Lines[i]) {
		i++
	}
	lines := make([]Line, 0, len(d.Lines)+1)
	lines = append(lines, d.Lines[:i]...)
	lines = append(lines, line)
	lines = append(lines, d.Lines[i:]...)
	return Day{Date: d.Date, Lines: lines}
}

// ClosingShift returns a copy of d with its single OpenShift replaced by a
// ClosedShift ending at stop. It panics unless the day has exactly one open
// shift; callers are expected to have checked the document-wide invariant.
func (d Day) ClosingShift(stop civil.Time) Day {
	switch n := d.openShiftCount(); {
	case n == 0:
		panic(fmt.Sprintf("model: no open shift to close on %s", d.Date))
	case n > 1:
		panic(fmt.Sprintf("model: %d open shifts on %s", n, d.Date))
	}
	lines := make([]Line, len(d.Lines))
	for i, l := range d.Lines {
		if open, ok := l.(OpenShift); ok {
			lines[i] = ClosedShift{Start: open.Start, Stop: stop}
			continue
		}
		lines[i] = l
	}
	return Day{Date: d.Date, Lines: lines}
}

// HasLabel reports whether the day already carries a SpecialDay or
// SpecialShift with the given label.
func (d Day) HasLabel(label string) bool {
	for _, l := range d.Lines {
		switch v := l.(type) {
		case SpecialDay:
			if v.Label == label {
				return true
			}
		case SpecialShift:
			if v.Label == label {
				return true
			}
		}
	}
	return false
}
