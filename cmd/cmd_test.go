package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/weektracker/internal/clock"
	"github.com/Tiliavir/weektracker/internal/model"
	"github.com/Tiliavir/weektracker/internal/report"
	"github.com/Tiliavir/weektracker/internal/storage"
	"github.com/Tiliavir/weektracker/internal/timecalc"
	"github.com/Tiliavir/weektracker/internal/tracker"
	"github.com/Tiliavir/weektracker/internal/weekfile"
)

type fakeLauncher struct {
	content string
	err     error
	edited  string
}

func (f *fakeLauncher) Edit(path string) error {
	f.edited = path
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(path, []byte(f.content), 0o600)
}

func testService(t *testing.T) *tracker.Service {
	t.Helper()
	root := t.TempDir()
	return &tracker.Service{
		Dirs:     storage.Dirs{Config: filepath.Join(root, "config"), Data: filepath.Join(root, "data")},
		Clock:    clock.Fixed(civil.DateTime{Date: civil.Date{Year: 2024, Month: 1, Day: 23}, Time: civil.Time{Hour: 10}}),
		WorkWeek: model.DefaultWorkWeek,
	}
}

func TestEditWeekFile(t *testing.T) {
	svc := testService(t)
	l := &fakeLauncher{content: "[tuesday 2024-01-23]\n* 08:00-09:00\n"}

	require.NoError(t, editWeekFile(svc, l))
	assert.Equal(t, svc.Path(), l.edited)

	doc, err := svc.Load()
	require.NoError(t, err)
	assert.Len(t, doc.Days, 1)
}

func TestEditWeekFileReportsParseError(t *testing.T) {
	svc := testService(t)
	l := &fakeLauncher{content: "[tuesday 2024-01-23]\n* 8-9\n"}

	err := editWeekFile(svc, l)
	var perr *weekfile.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, exitCode(err))
}

func TestEditWeekFileEditorFails(t *testing.T) {
	svc := testService(t)
	l := &fakeLauncher{err: errors.New("editor crashed")}

	err := editWeekFile(svc, l)
	assert.EqualError(t, err, "editor crashed")
	_, statErr := os.Stat(svc.Path())
	assert.NoError(t, statErr, "week-file is created before the editor runs")
}

func TestWriteReportJSON(t *testing.T) {
	reportFormat = "json"
	t.Cleanup(func() { reportFormat = "text" })

	var buf bytes.Buffer
	r := report.Report{
		DurationToday: 90 * time.Minute,
		DurationWeek:  10 * time.Hour,
		IsOngoing:     true,
		Balance:       -6 * time.Hour,
	}
	require.NoError(t, writeReport(&buf, timecalc.Week{Year: 2024, Number: 4}, r))
	assert.JSONEq(t, `{
		"week": "2024-W04",
		"today_minutes": 90,
		"week_minutes": 600,
		"balance_minutes": -360,
		"ongoing": true
	}`, buf.String())
}

func TestWriteReportText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, timecalc.Week{Year: 2024, Number: 4}, report.Report{DurationToday: time.Hour}))
	assert.Contains(t, buf.String(), "You have worked 1 h 0 m today.")
}
