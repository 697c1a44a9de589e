// Package cli wires the cobra command surface around the picker.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/doeshing/cmdmenu/internal/app"
	"github.com/doeshing/cmdmenu/internal/application/menu"
	"github.com/doeshing/cmdmenu/internal/domain"
	"github.com/doeshing/cmdmenu/internal/infrastructure/tui"
)

// Version is stamped by the build.
var Version = "1.0.0"

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// Run executes the root command and returns the process exit code: 0 on
// normal quit, the executed command's own code after a run, non-zero on
// unrecoverable startup failure.
func Run(ctx context.Context, opts Options) (int, error) {
	var (
		shellOverride string
		maxCommands   int
		noConfirm     bool
		showStats     bool
		showConfig    bool
		refresh       bool
	)
	exitCode := 0

	root := &cobra.Command{
		Use:     "cmdmenu",
		Short:   "Interactive menu of your most used shell commands",
		Long:    "cmdmenu parses your shell history, ranks commands by frequency and presents them in a searchable full-screen picker for one-key re-execution.",
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := app.BuildContainer(cmd.Context(), app.BuildOptions{
				Verbose:       opts.Verbose,
				ShellOverride: shellOverride,
				MaxCommands:   maxCommands,
				NoConfirm:     noConfirm,
			})
			if err != nil {
				return err
			}
			service := container.MenuService

			if showConfig {
				printConfigPaths(cmd.OutOrStdout(), container)
				return nil
			}

			if err := service.Start(); err != nil {
				return err
			}
			defer service.Flush()

			if refresh {
				return runRefresh(cmd.Context(), cmd.OutOrStdout(), service)
			}
			if showStats {
				return runStats(cmd.Context(), cmd.OutOrStdout(), container)
			}

			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("stdout is not a terminal; use --stats for non-interactive output")
			}

			built, err := service.BuildMenu(cmd.Context())
			if err != nil {
				return err
			}

			model := tui.NewModel(service, built)
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := program.Run()
			if err != nil {
				return fmt.Errorf("picker failed: %w", err)
			}
			if m, ok := final.(*tui.Model); ok {
				exitCode = m.ExitCode()
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().StringVar(&shellOverride, "shell", "", "History dialect: zsh, bash or fish (auto-detected when empty)")
	root.Flags().IntVar(&maxCommands, "max-commands", 0, "Cap on displayed commands (overrides config)")
	root.Flags().BoolVar(&noConfirm, "no-confirm", false, "Skip confirmation before executing commands")
	root.Flags().BoolVar(&showStats, "stats", false, "Show statistics and exit")
	root.Flags().BoolVar(&refresh, "refresh", false, "Re-parse history, report counts and exit")
	root.Flags().BoolVar(&showConfig, "config", false, "Show configuration paths and exit")

	if err := root.ExecuteContext(ctx); err != nil {
		return 1, err
	}
	return exitCode, nil
}

func runRefresh(ctx context.Context, out io.Writer, service *menu.Service) error {
	built, err := service.BuildMenu(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Parsed %d unique commands from %s history", len(built.Entries), built.Dialect)
	if built.Anomalies > 0 {
		fmt.Fprintf(out, " (%d malformed records skipped)", built.Anomalies)
	}
	fmt.Fprintln(out)
	return nil
}

func printConfigPaths(out io.Writer, container *app.Container) {
	fmt.Fprintf(out, "Configuration file: %s\n", container.ConfigLoader.Path())
	fmt.Fprintf(out, "Statistics file:    %s\n", container.StatsStore.Path())
	fmt.Fprintf(out, "Execution log:      %s\n", container.ExecLog.Path())
}

// buildMenuForStats tolerates total history absence: statistics can still
// report app usage counters.
func buildMenuForStats(ctx context.Context, service *menu.Service) menu.Menu {
	built, err := service.BuildMenu(ctx)
	if err != nil && errors.Is(err, menu.ErrNoHistory) {
		return menu.Menu{Dialect: domain.ShellName(service.Config.Shell)}
	}
	return built
}
