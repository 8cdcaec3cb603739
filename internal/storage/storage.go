package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Tiliavir/weektracker/internal/timecalc"
)

const appName = "tracker"

// Dirs holds the configuration and data roots. Tests construct it directly
// over a temporary directory.
type Dirs struct {
	Config string
	Data   string
}

// DefaultDirs returns the per-user directories for tracker:
// <user config dir>/tracker and $XDG_DATA_HOME/tracker (~/.local/share/tracker).
func DefaultDirs() (Dirs, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return Dirs{}, fmt.Errorf("cannot determine config directory: %w", err)
	}
	data := os.Getenv("XDG_DATA_HOME")
	if data == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Dirs{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		data = filepath.Join(home, ".local", "share")
	}
	return Dirs{
		Config: filepath.Join(cfg, appName),
		Data:   filepath.Join(data, appName),
	}, nil
}

// ConfigFile returns the path of config.toml.
func (d Dirs) ConfigFile() string {
	return filepath.Join(d.Config, "config.toml")
}

// TokenFile returns the path of the stored Microsoft Graph tokens.
func (d Dirs) TokenFile() string {
	return filepath.Join(d.Data, "auth", "msgraph_tokens.json")
}

// WeekFilePath returns the path for the given week's file, e.g.
// <data>/week-files/2024-W04.txt.
func (d Dirs) WeekFilePath(w timecalc.Week) string {
	return filepath.Join(d.Data, "week-files", w.String()+".txt")
}

// Read returns the content of path. A missing file is not an error; exists
// reports whether it was found.
func Read(path string) (text string, exists bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	return string(data), true, nil
}

// Write atomically replaces path with text.
func Write(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(text), 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// CreateIfMissing creates path with the text returned by initial unless the
// file already exists. initial is only called when the file is created.
func CreateIfMissing(path string, initial func() (string, error)) (created bool, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return false, fmt.Errorf("storage error creating directories: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage error creating %s: %w", path, err)
	}
	text, err := initial()
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return false, err
	}
	if err := finishCreate(f, path, text); err != nil {
		return false, err
	}
	return true, nil
}

// finishCreate writes text to the freshly created file f and closes it.
// The file is removed on failure.
func finishCreate(f io.WriteCloser, path, text string) error {
	if _, err := io.WriteString(f, text); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("storage error writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("storage error closing %s: %w", path, err)
	}
	return nil
}
