package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tiliavir/weektracker/internal/report"
	"github.com/Tiliavir/weektracker/internal/timecalc"
	"github.com/Tiliavir/weektracker/internal/tracker"
	"github.com/Tiliavir/weektracker/internal/watch"
)

var (
	reportIsWorking bool
	reportWatch     bool
	reportFormat    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show time worked today, this week and the balance",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

var watchHeaderStyle = lipgloss.NewStyle().Faint(true)

func init() {
	addReportFlags(reportCmd)
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&reportIsWorking, "is-working", false, "Print nothing; exit 0 if a shift is ongoing, 1 otherwise")
	cmd.Flags().BoolVar(&reportWatch, "watch", false, "Re-print the report whenever the week-file changes")
	cmd.Flags().StringVar(&reportFormat, "format", "text", "Output format: text, json")
	cmd.MarkFlagsMutuallyExclusive("is-working", "watch")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportFormat != "text" && reportFormat != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", reportFormat)
	}
	svc, _, err := newService()
	if err != nil {
		return err
	}

	if reportWatch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watchReport(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), svc)
	}

	r, err := svc.Report()
	if err != nil {
		return err
	}
	if reportIsWorking {
		if r.IsOngoing {
			return nil
		}
		return exitStatus(1)
	}
	return writeReport(cmd.OutOrStdout(), svc.ActiveWeek(), r)
}

type reportJSON struct {
	Week           string `json:"week"`
	TodayMinutes   int64  `json:"today_minutes"`
	WeekMinutes    int64  `json:"week_minutes"`
	BalanceMinutes int64  `json:"balance_minutes"`
	Ongoing        bool   `json:"ongoing"`
}

func writeReport(w io.Writer, week timecalc.Week, r report.Report) error {
	if reportFormat == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reportJSON{
			Week:           week.String(),
			TodayMinutes:   int64(r.DurationToday / time.Minute),
			WeekMinutes:    int64(r.DurationWeek / time.Minute),
			BalanceMinutes: int64(r.Balance / time.Minute),
			Ongoing:        r.IsOngoing,
		})
	}
	return report.Render(w, r)
}

// watchReport prints the report, then again whenever the week-file is
// saved and every minute while a shift is ongoing, until ctx is done.
// Parse errors are shown but do not end the loop; the file is likely being
// edited.
func watchReport(ctx context.Context, out, errOut io.Writer, svc *tracker.Service) error {
	path, err := svc.EnsureWeekFile()
	if err != nil {
		return err
	}
	w, err := watch.New(path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	defer w.Stop()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	ongoing := false
	render := func() {
		fmt.Fprintln(out, watchHeaderStyle.Render(fmt.Sprintf("── %s ──", time.Now().Format("15:04"))))
		r, err := svc.Report()
		if err != nil {
			logger.Debug("report failed", zap.Error(err))
			fmt.Fprintln(errOut, err)
			return
		}
		ongoing = r.IsOngoing
		if err := writeReport(out, svc.ActiveWeek(), r); err != nil {
			fmt.Fprintln(errOut, err)
		}
	}

	render()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Changes:
			if !ok {
				return nil
			}
			logger.Debug("week-file changed", zap.String("path", path))
			render()
		case <-ticker.C:
			if ongoing {
				render()
			}
		}
	}
}
