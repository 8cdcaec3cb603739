package tracker

import (
	"fmt"
	"path/filepath"
	"strings"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"

	"github.com/Tiliavir/weektracker/internal/clock"
	"github.com/Tiliavir/weektracker/internal/model"
	"github.com/Tiliavir/weektracker/internal/report"
	"github.com/Tiliavir/weektracker/internal/storage"
	"github.com/Tiliavir/weektracker/internal/timecalc"
	"github.com/Tiliavir/weektracker/internal/weekfile"
)

// carryLabel names the preamble entry holding last week's balance.
const carryLabel = "carry"

// Service resolves the active week-file and runs the tracking commands
// against it.
type Service struct {
	Dirs     storage.Dirs
	Clock    clock.Clock
	WorkWeek model.WorkWeek
	// TransferBalance seeds newly created week-files with the previous
	// week's balance. Ignored when WeekDiff or WeekFile select the week.
	TransferBalance bool
	// WeekDiff selects the week relative to the current one.
	WeekDiff int
	// WeekFile overrides the week-file location.
	WeekFile string
	Log      *zap.Logger
}

func (s *Service) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Service) weekSelected() bool {
	return s.WeekDiff != 0 || s.WeekFile != ""
}

// ActiveWeek returns the ISO week the service operates on. With an explicit
// week-file it is taken from the base name (2024-W04.txt) when possible.
func (s *Service) ActiveWeek() timecalc.Week {
	current := timecalc.WeekOf(s.Clock.Now().Date)
	if s.WeekFile != "" {
		base := filepath.Base(s.WeekFile)
		if w, err := timecalc.ParseWeek(strings.TrimSuffix(base, filepath.Ext(base))); err == nil {
			return w
		}
		return current
	}
	return current.Add(s.WeekDiff)
}

// Path returns the active week-file path without touching the filesystem.
func (s *Service) Path() string {
	if s.WeekFile != "" {
		return s.WeekFile
	}
	return s.Dirs.WeekFilePath(s.ActiveWeek())
}

// EnsureWeekFile creates the active week-file if it does not exist yet and
// returns its path.
func (s *Service) EnsureWeekFile() (string, error) {
	path := s.Path()
	week := s.ActiveWeek()
	created, err := storage.CreateIfMissing(path, func() (string, error) {
		doc, err := s.initialDocument(week)
		if err != nil {
			return "", err
		}
		return weekfile.Serialize(doc), nil
	})
	if err != nil {
		return "", err
	}
	if created {
		s.log().Info("created week-file", zap.String("path", path), zap.Stringer("week", week))
	}
	return path, nil
}

// initialDocument is the content of a freshly created week-file. It carries
// the previous week's balance when transfer is enabled and that file exists.
func (s *Service) initialDocument(week timecalc.Week) (model.Document, error) {
	doc := model.Empty(week)
	if !s.TransferBalance || s.weekSelected() {
		return doc, nil
	}
	prevWeek := week.Add(-1)
	prevPath := s.Dirs.WeekFilePath(prevWeek)
	prev, exists, err := s.read(prevPath, prevWeek)
	if err != nil {
		return doc, fmt.Errorf("reading previous week: %w", err)
	}
	if !exists {
		s.log().Debug("no previous week-file to transfer from", zap.String("path", prevPath))
		return doc, nil
	}
	r := report.Compute(prev, civil.DateTime{Date: week.Monday()}, s.WorkWeek)
	s.log().Debug("transferring balance",
		zap.Stringer("from", prevWeek), zap.Duration("balance", r.Balance))
	doc.Preamble = []model.Line{
		model.DurationShift{Label: carryLabel, Duration: r.Balance},
		model.Blank{},
	}
	return doc, nil
}

func (s *Service) read(path string, week timecalc.Week) (model.Document, bool, error) {
	text, exists, err := storage.Read(path)
	if err != nil || !exists {
		return model.Empty(week), exists, err
	}
	doc, err := weekfile.Parse(week, text)
	if err != nil {
		return model.Document{}, true, fmt.Errorf("%s: %w", path, err)
	}
	return doc, true, nil
}

// Load reads the active week-file. A missing file yields an empty document.
func (s *Service) Load() (model.Document, error) {
	path := s.Path()
	doc, exists, err := s.read(path, s.ActiveWeek())
	if err != nil {
		return model.Document{}, err
	}
	s.log().Debug("loaded week-file", zap.String("path", path), zap.Bool("exists", exists),
		zap.Int("days", len(doc.Days)))
	return doc, nil
}

// Save writes doc to the active week-file.
func (s *Service) Save(doc model.Document) error {
	path := s.Path()
	if err := storage.Write(path, weekfile.Serialize(doc)); err != nil {
		return err
	}
	s.log().Debug("saved week-file", zap.String("path", path))
	return nil
}

func (s *Service) now() civil.DateTime {
	now := s.Clock.Now()
	now.Time = timecalc.TruncateToMinute(now.Time)
	return now
}

// StartTracking opens a shift now and returns the updated day.
func (s *Service) StartTracking() (model.Day, error) {
	if _, err := s.EnsureWeekFile(); err != nil {
		return model.Day{}, err
	}
	doc, err := s.Load()
	if err != nil {
		return model.Day{}, err
	}
	now := s.now()
	doc, err = Start(doc, now.Date, now.Time)
	if err != nil {
		return model.Day{}, err
	}
	if err := s.Save(doc); err != nil {
		return model.Day{}, err
	}
	s.log().Info("started shift", zap.Stringer("at", now))
	day, _ := doc.Day(now.Date)
	return day, nil
}

// StopTracking closes the open shift of today and returns the updated day.
// A missing week-file behaves like an empty one.
func (s *Service) StopTracking() (model.Day, error) {
	doc, err := s.Load()
	if err != nil {
		return model.Day{}, err
	}
	now := s.now()
	doc, err = Stop(doc, now.Date, now.Time)
	if err != nil {
		return model.Day{}, err
	}
	if err := s.Save(doc); err != nil {
		return model.Day{}, err
	}
	s.log().Info("stopped shift", zap.Stringer("at", now))
	day, _ := doc.Day(now.Date)
	return day, nil
}

// Report computes the worked time of the active week as of now.
func (s *Service) Report() (report.Report, error) {
	if _, err := s.EnsureWeekFile(); err != nil {
		return report.Report{}, err
	}
	doc, err := s.Load()
	if err != nil {
		return report.Report{}, err
	}
	return report.Compute(doc, s.Clock.Now(), s.WorkWeek), nil
}
