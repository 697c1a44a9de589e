package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/cmdmenu/internal/app"
	"github.com/doeshing/cmdmenu/internal/application/menu"
	"github.com/doeshing/cmdmenu/internal/domain"
)

// runStats prints the plain-text statistics report: history totals, category
// breakdown, top commands and app usage counters.
func runStats(ctx context.Context, out io.Writer, container *app.Container) error {
	service := container.MenuService
	built := buildMenuForStats(ctx, service)
	report := menu.BuildHistoryReport(built.Entries, domain.DefaultTopCommands)
	stats := service.Stats()

	fmt.Fprintln(out, "CMDMENU STATISTICS")
	fmt.Fprintln(out, "==================")
	fmt.Fprintf(out, "Total commands in history: %d\n", report.TotalCommands)
	fmt.Fprintf(out, "Unique commands: %d\n", report.UniqueCommands)
	if built.Anomalies > 0 {
		fmt.Fprintf(out, "Malformed records skipped: %d\n", built.Anomalies)
	}

	if len(report.Categories) > 0 {
		fmt.Fprintln(out, "\nCategories:")
		for _, c := range report.Categories {
			fmt.Fprintf(out, "  %-12s %d\n", c.Category, c.Count)
		}
	}

	if len(report.TopCommands) > 0 {
		fmt.Fprintf(out, "\nTop %d commands:\n", len(report.TopCommands))
		for i, e := range report.TopCommands {
			fmt.Fprintf(out, "  %2d. [%s] %s (%dx)\n", i+1, e.Category, e.Text, e.Count)
		}
	}

	fmt.Fprintln(out, "\nApp usage:")
	fmt.Fprintf(out, "  Sessions started: %d\n", stats.SessionCount)
	fmt.Fprintf(out, "  Commands executed via menu: %d\n", stats.TotalExecutions)

	if top := menu.TopExecuted(stats.CommandExecutions, domain.DefaultRecentExecutions); len(top) > 0 {
		fmt.Fprintln(out, "\nMost executed via menu:")
		for i, s := range top {
			fmt.Fprintf(out, "  %d. %s (%dx)\n", i+1, s.Command, s.Count)
		}
	}

	if recent, err := container.ExecLog.Recent(domain.DefaultRecentExecutions); err == nil && len(recent) > 0 {
		fmt.Fprintln(out, "\nRecent executions:")
		for _, ev := range recent {
			fmt.Fprintf(out, "  %s  exit %d  %s\n", humanize.Time(ev.Timestamp), ev.ExitCode, ev.Command)
		}
	}
	return nil
}
