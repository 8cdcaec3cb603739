package tracker

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/Tiliavir/weektracker/internal/model"
)

var (
	// ErrAlreadyHasOpenShift is returned by Start when a shift is already
	// open anywhere in the document.
	ErrAlreadyHasOpenShift = errors.New("week-file already has an open shift")
	// ErrDoesNotHaveOpenShift is returned by Stop when there is no open shift
	// to close on the given date.
	ErrDoesNotHaveOpenShift = errors.New("week-file does not have an open shift")
)

// Start returns doc with a new open shift at t on date. The day is created
// and inserted in date order when it does not exist yet.
func Start(doc model.Document, date civil.Date, t civil.Time) (model.Document, error) {
	if doc.HasOpenShift() {
		return model.Document{}, ErrAlreadyHasOpenShift
	}
	open := model.OpenShift{Start: t}
	if day, ok := doc.Day(date); ok {
		return doc.ReplacingDay(date, day.AddingShift(open)), nil
	}
	return doc.InsertingDay(model.NewDay(date, open)), nil
}

// Stop returns doc with the open shift on date closed at t. Only the day
// named by date is considered; a shift left open on another day is reported
// as ErrDoesNotHaveOpenShift.
func Stop(doc model.Document, date civil.Date, t civil.Time) (model.Document, error) {
	openDay, ok := doc.OpenShiftDay()
	if !ok {
		return model.Document{}, ErrDoesNotHaveOpenShift
	}
	day, ok := doc.Day(date)
	if !ok || !day.HasOpenShift() {
		return model.Document{}, fmt.Errorf("%w on %s (the open shift is on %s)", ErrDoesNotHaveOpenShift, date, openDay.Date)
	}
	return doc.ReplacingDay(date, day.ClosingShift(t)), nil
}
