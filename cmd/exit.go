package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Tiliavir/weektracker/internal/tracker"
	"github.com/Tiliavir/weektracker/internal/weekfile"
)

// exitStatus ends the process with the given code without printing.
type exitStatus int

func (e exitStatus) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

// exitCode maps err to the process exit code: 1 for business and usage
// errors, 2 for unreadable or unwritable week-files.
func exitCode(err error) int {
	var exit exitStatus
	var parseErr *weekfile.ParseError
	var pathErr *fs.PathError
	var linkErr *os.LinkError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exit):
		return int(exit)
	case errors.Is(err, tracker.ErrAlreadyHasOpenShift),
		errors.Is(err, tracker.ErrDoesNotHaveOpenShift):
		return 1
	case errors.As(err, &parseErr), errors.As(err, &pathErr), errors.As(err, &linkErr):
		return 2
	default:
		return 1
	}
}
