package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/weektracker/internal/weekfile"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a shift now",
	Long: `Opens a new shift at the current time on today's entry of the week-file,
creating the week-file and the day as needed. Fails if a shift is already open.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}
	day, err := svc.StartTracking()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), weekfile.SerializeDay(day))
	return nil
}
