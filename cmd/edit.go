package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/weektracker/internal/editor"
	"github.com/Tiliavir/weektracker/internal/tracker"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the week-file in $VISUAL or $EDITOR",
	Args:  cobra.NoArgs,
	RunE:  runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}
	return editWeekFile(svc, editor.FromEnv())
}

// editWeekFile opens the week-file, creating it first, and checks that the
// edited file still parses.
func editWeekFile(svc *tracker.Service, l editor.Launcher) error {
	path, err := svc.EnsureWeekFile()
	if err != nil {
		return err
	}
	if err := l.Edit(path); err != nil {
		return err
	}
	if _, err := svc.Load(); err != nil {
		return fmt.Errorf("the week-file no longer parses: %w", err)
	}
	return nil
}
