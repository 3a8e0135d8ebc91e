package main

import (
	"fmt"
	"strconv"

	"adventctl/internal/app"
	"adventctl/internal/solutions"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	year       int
	noSubmit   bool

	rootCmd = &cobra.Command{
		Use:           "adventctl",
		Short:         "Fetch, validate and submit Advent of Code puzzles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runCmd = &cobra.Command{
		Use:   "run [day]",
		Short: "Check each part against its example, then solve and submit it",
		Long: `Runs one day, or every day when no day is given. Each part is checked
against the example from the puzzle page before the real input is solved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, args, func(a *app.App, day int) error {
				return a.Run(cmd.Context(), day, solutions.Registry())
			})
		},
	}

	createCmd = &cobra.Command{
		Use:   "create [day]",
		Short: "Write a solver stub and download the day's puzzle data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, args, func(a *app.App, day int) error {
				return a.Create(cmd.Context(), day)
			})
		},
	}

	showCmd = &cobra.Command{
		Use:   "show <day>",
		Short: "Render the puzzle statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, args, func(a *app.App, day int) error {
				return a.Show(cmd.Context(), day)
			})
		},
	}

	historyCmd = &cobra.Command{
		Use:   "history [day]",
		Short: "List recorded runs and submissions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, args, func(a *app.App, day int) error {
				return a.History(cmd.Context(), day)
			})
		},
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "path to a YAML config file (default ./"+app.DefaultConfigFile+" when present)")
	flags.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	flags.IntVar(&year, "year", 0, "event year (default: the latest event)")
	runCmd.Flags().BoolVar(&noSubmit, "no-submit", false, "solve without posting answers")

	rootCmd.AddCommand(runCmd, createCmd, showCmd, historyCmd)
}

// withApp loads the configuration, applies flag overrides and hands a ready
// App to fn. A missing day argument is passed as zero.
func withApp(cmd *cobra.Command, args []string, fn func(*app.App, int) error) error {
	day := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("day must be a number, got %q", args[0])
		}
		if n < 1 {
			return fmt.Errorf("day must be a number between 1 and 25, got %d", n)
		}
		day = n
	}

	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if year != 0 {
		cfg.Year = year
	}
	if noSubmit {
		cfg.Submit = false
	}

	a, err := app.New(cfg, app.Options{Out: cmd.OutOrStdout()})
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a, day)
}
