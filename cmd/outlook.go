package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tiliavir/weektracker/internal/model"
	"github.com/Tiliavir/weektracker/internal/msgraph"
	"github.com/Tiliavir/weektracker/internal/weekfile"
)

var (
	outlookSyncDryRun bool
	outlookSyncLabel  string
	outlookSyncTZ     string
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Record Outlook out-of-office days of the week as special days",
	Long: `Fetches the calendar of the selected week from Microsoft Graph and adds a
special day (e.g. "* Vacation") for every weekday covered by an all-day event
shown as "out of office". Days that already carry the label are left alone.`,
	Args: cobra.NoArgs,
	RunE: runOutlookSync,
}

func init() {
	outlookSyncCmd.Flags().BoolVar(&outlookSyncDryRun, "dry-run", false, "Print planned changes without writing")
	outlookSyncCmd.Flags().StringVar(&outlookSyncLabel, "label", "", "Special-day label (default: outlook.label from config)")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTZ, "timezone", "", "IANA timezone for event times (default: outlook.timezone from config)")
	outlookCmd.AddCommand(outlookSyncCmd)
}

func runOutlookSync(cmd *cobra.Command, args []string) error {
	svc, cfg, err := newService()
	if err != nil {
		return err
	}
	label := cfg.Outlook.Label
	if outlookSyncLabel != "" {
		label = outlookSyncLabel
	}
	if l, err := weekfile.ParseLine("* " + label); err != nil || l != (model.SpecialDay{Label: label}) {
		return fmt.Errorf("invalid label %q: use letters only", label)
	}
	timezone := cfg.Outlook.Timezone
	if outlookSyncTZ != "" {
		timezone = outlookSyncTZ
	}
	loc := time.UTC
	if timezone != "" {
		if loc, err = time.LoadLocation(timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", timezone, err)
		}
	}

	out := cmd.OutOrStdout()
	week := svc.ActiveWeek()
	from := week.Monday().In(loc)
	to := week.Monday().AddDays(7).In(loc)

	dryTag := ""
	if outlookSyncDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Fprintf(out, "Syncing Outlook absences for %s (%s → %s)%s...\n",
		week, from.Format("2006-01-02"), to.AddDate(0, 0, -1).Format("2006-01-02"), dryTag)
	fmt.Fprintln(out)

	ctx := cmd.Context()
	store := msgraph.TokenStore{Path: dirs.TokenFile()}
	auth := msgraph.Auth{
		TenantID: cfg.Outlook.TenantID,
		ClientID: cfg.Outlook.ClientID,
		Store:    store,
		Prompt:   out,
		Log:      logger,
	}
	tok, oauthCfg, err := auth.Token(ctx)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	client := msgraph.NewClient(ctx, tok, oauthCfg, store)

	events, err := client.GetCalendarView(ctx, from, to, timezone)
	if err != nil {
		return fmt.Errorf("failed to fetch calendar events: %w", err)
	}
	logger.Debug("fetched calendar events", zap.Int("count", len(events)))

	if !outlookSyncDryRun {
		if _, err := svc.EnsureWeekFile(); err != nil {
			return err
		}
	}
	doc, err := svc.Load()
	if err != nil {
		return err
	}
	doc, result := msgraph.ApplyEvents(doc, events, msgraph.SyncOptions{
		Label:    label,
		Timezone: timezone,
		Out:      out,
	})
	if result.Imported > 0 && !outlookSyncDryRun {
		if err := svc.Save(doc); err != nil {
			return err
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "  %d imported\n", result.Imported)
	fmt.Fprintf(out, "  %d skipped\n", result.Skipped)
	if result.Errors > 0 {
		fmt.Fprintf(out, "  %d errors\n", result.Errors)
		return exitStatus(2)
	}
	return nil
}
