package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/weektracker/internal/timecalc"
)

var (
	ongoingStyle  = lipgloss.NewStyle().Bold(true)
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Render writes the three-line human summary of r:
//
//	You have worked 4 h 0 m today, ongoing.
//	You have worked 12 h 30 m this week.
//	Balance: -3 h 30 m
func Render(w io.Writer, r Report) error {
	today := timecalc.FormatDuration(r.DurationToday)
	suffix := "."
	if r.IsOngoing {
		suffix = ", " + ongoingStyle.Render("ongoing") + "."
	}
	balanceStyle := positiveStyle
	if r.Balance < 0 {
		balanceStyle = negativeStyle
	}
	_, err := fmt.Fprintf(w, "You have worked %s today%s\nYou have worked %s this week.\nBalance: %s\n",
		today, suffix,
		timecalc.FormatDuration(r.DurationWeek),
		balanceStyle.Render(timecalc.FormatDuration(r.Balance)),
	)
	return err
}
