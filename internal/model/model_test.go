package model_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"

	"github.com/Tiliavir/weektracker/internal/model"
	"github.com/Tiliavir/weektracker/internal/timecalc"
)

func hm(h, m int) civil.Time { return civil.Time{Hour: h, Minute: m} }

func date(y int, m time.Month, d int) civil.Date { return civil.Date{Year: y, Month: m, Day: d} }

func TestIsShift(t *testing.T) {
	tests := []struct {
		line model.Line
		want bool
	}{
		{model.OpenShift{}, true},
		{model.ClosedShift{}, true},
		{model.SpecialShift{}, true},
		{model.SpecialDay{}, false},
		{model.DurationShift{}, false},
		{model.Comment{}, false},
		{model.DayHeader{}, false},
		{model.Blank{}, false},
	}
	for _, tt := range tests {
		if got := model.IsShift(tt.line); got != tt.want {
			t.Errorf("IsShift(%T) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestDayAddingShift(t *testing.T) {
	day := model.NewDay(date(2019, 12, 2),
		model.ClosedShift{Start: hm(10, 0), Stop: hm(10, 30)},
		model.Comment{Text: "lunch"},
		model.Blank{},
	)
	got := day.AddingShift(model.OpenShift{Start: hm(12, 0)})

	want := model.NewDay(date(2019, 12, 2),
		model.ClosedShift{Start: hm(10, 0), Stop: hm(10, 30)},
		model.OpenShift{Start: hm(12, 0)},
		model.Comment{Text: "lunch"},
		model.Blank{},
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AddingShift mismatch (-want +got):\n%s", diff)
	}
	if len(day.Lines) != 3 {
		t.Errorf("AddingShift modified the receiver: %d lines", len(day.Lines))
	}
}

func TestDayAddingShiftToEmptyDay(t *testing.T) {
	got := model.NewDay(date(2019, 12, 2)).AddingShift(model.OpenShift{Start: hm(8, 0)})
	want := []model.Line{model.OpenShift{Start: hm(8, 0)}}
	if diff := cmp.Diff(want, got.Lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestDayAddingShiftStopsAtFirstNonShift(t *testing.T) {
	day := model.NewDay(date(2019, 12, 2),
		model.Comment{Text: "note"},
		model.ClosedShift{Start: hm(10, 0), Stop: hm(11, 0)},
	)
	got := day.AddingShift(model.OpenShift{Start: hm(12, 0)})
	if _, ok := got.Lines[0].(model.OpenShift); !ok {
		t.Errorf("expected open shift first, got %#v", got.Lines)
	}
}

func TestDayClosingShift(t *testing.T) {
	day := model.NewDay(date(2019, 12, 2),
		model.ClosedShift{Start: hm(8, 0), Stop: hm(9, 0)},
		model.OpenShift{Start: hm(10, 0)},
		model.Blank{},
	)
	if !day.HasOpenShift() {
		t.Fatal("HasOpenShift = false, want true")
	}
	got := day.ClosingShift(hm(12, 0))
	want := model.NewDay(date(2019, 12, 2),
		model.ClosedShift{Start: hm(8, 0), Stop: hm(9, 0)},
		model.ClosedShift{Start: hm(10, 0), Stop: hm(12, 0)},
		model.Blank{},
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ClosingShift mismatch (-want +got):\n%s", diff)
	}
	if got.HasOpenShift() {
		t.Error("closed day still has an open shift")
	}
	if !day.HasOpenShift() {
		t.Error("ClosingShift modified the receiver")
	}
}

func TestDayClosingShiftPanics(t *testing.T) {
	tests := []struct {
		name string
		day  model.Day
	}{
		{"none", model.NewDay(date(2019, 12, 2), model.ClosedShift{Start: hm(8, 0), Stop: hm(9, 0)})},
		{"two", model.NewDay(date(2019, 12, 2), model.OpenShift{Start: hm(8, 0)}, model.OpenShift{Start: hm(9, 0)})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.day.ClosingShift(hm(12, 0))
		})
	}
}

func TestDayHasLabel(t *testing.T) {
	day := model.NewDay(date(2019, 12, 2),
		model.SpecialShift{Label: "VAB", Start: hm(8, 0), Stop: hm(9, 0)},
		model.SpecialDay{Label: "Vacation"},
	)
	if !day.HasLabel("VAB") || !day.HasLabel("Vacation") {
		t.Error("HasLabel missed an existing label")
	}
	if day.HasLabel("Sick") {
		t.Error("HasLabel found a missing label")
	}
}

func week() timecalc.Week { return timecalc.WeekOf(date(2019, 12, 2)) }

func TestDocumentHasOpenShift(t *testing.T) {
	doc := model.NewDocument(week(), nil, []model.Day{
		model.NewDay(date(2019, 12, 2), model.ClosedShift{Start: hm(8, 0), Stop: hm(9, 0)}),
	})
	if doc.HasOpenShift() {
		t.Error("HasOpenShift = true for a closed document")
	}
	doc = model.NewDocument(week(), nil, []model.Day{
		model.NewDay(date(2019, 12, 2)),
		model.NewDay(date(2019, 12, 3), model.OpenShift{Start: hm(8, 0)}),
	})
	if !doc.HasOpenShift() {
		t.Error("HasOpenShift = false with an open shift on the second day")
	}
	day, ok := doc.OpenShiftDay()
	if !ok || day.Date != date(2019, 12, 3) {
		t.Errorf("OpenShiftDay = %v, %v", day.Date, ok)
	}
}

func TestDocumentReplacingDayThatDoesNotExist(t *testing.T) {
	doc := model.Empty(timecalc.WeekOf(date(2020, 7, 13)))
	got := doc.ReplacingDay(date(2020, 7, 13), model.NewDay(date(2020, 7, 13)))
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("ReplacingDay on a missing day changed the document:\n%s", diff)
	}
}

func TestDocumentReplacingDay(t *testing.T) {
	doc := model.NewDocument(week(), []model.Line{model.Comment{Text: "p"}}, []model.Day{
		model.NewDay(date(2019, 12, 2), model.Blank{}),
		model.NewDay(date(2019, 12, 3), model.Blank{}),
	})
	replacement := model.NewDay(date(2019, 12, 3), model.SpecialDay{Label: "Vacation"})
	got := doc.ReplacingDay(date(2019, 12, 3), replacement)

	want := model.NewDocument(week(), []model.Line{model.Comment{Text: "p"}}, []model.Day{
		model.NewDay(date(2019, 12, 2), model.Blank{}),
		replacement,
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReplacingDay mismatch (-want +got):\n%s", diff)
	}
	if _, ok := doc.Days[1].Lines[0].(model.Blank); !ok {
		t.Error("ReplacingDay modified the receiver")
	}
}

func TestDocumentInsertingDay(t *testing.T) {
	doc := model.NewDocument(week(), nil, []model.Day{
		model.NewDay(date(2019, 12, 2), model.ClosedShift{Start: hm(10, 0), Stop: hm(10, 30)}),
		model.NewDay(date(2019, 12, 5), model.Blank{}),
	})
	got := doc.InsertingDay(model.NewDay(date(2019, 12, 3), model.OpenShift{Start: hm(8, 0)}))

	want := model.NewDocument(week(), nil, []model.Day{
		model.NewDay(date(2019, 12, 2), model.ClosedShift{Start: hm(10, 0), Stop: hm(10, 30)}, model.Blank{}),
		model.NewDay(date(2019, 12, 3), model.OpenShift{Start: hm(8, 0)}),
		model.NewDay(date(2019, 12, 5), model.Blank{}),
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("InsertingDay mismatch (-want +got):\n%s", diff)
	}
	if len(doc.Days[0].Lines) != 1 {
		t.Error("InsertingDay modified the receiver's predecessor day")
	}
}

func TestDocumentInsertingFirstDayAddsNoBlank(t *testing.T) {
	doc := model.NewDocument(week(), nil, []model.Day{
		model.NewDay(date(2019, 12, 3), model.ClosedShift{Start: hm(10, 0), Stop: hm(10, 30)}),
	})
	got := doc.InsertingDay(model.NewDay(date(2019, 12, 2)))

	want := model.NewDocument(week(), nil, []model.Day{
		model.NewDay(date(2019, 12, 2)),
		model.NewDay(date(2019, 12, 3), model.ClosedShift{Start: hm(10, 0), Stop: hm(10, 30)}),
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("InsertingDay mismatch (-want +got):\n%s", diff)
	}
}

func TestWorkWeekDayDuration(t *testing.T) {
	if got := (model.WorkWeek{DaysPerWeek: 4, HoursPerDay: 6}).DayDuration(); got != 6*time.Hour {
		t.Errorf("DayDuration = %v, want 6h", got)
	}
}
