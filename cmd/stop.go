package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/weektracker/internal/weekfile"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the open shift now",
	Long: `Closes today's open shift at the current time. A shift left open on an
earlier day must be closed by editing the week-file.`,
	Args: cobra.NoArgs,
	RunE: runStop,
}

func runStop(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}
	day, err := svc.StopTracking()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), weekfile.SerializeDay(day))
	return nil
}
