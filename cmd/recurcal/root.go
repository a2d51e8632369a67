package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/recurcal/internal/commands"
	"github.com/sandeepkv93/recurcal/internal/config"
	applog "github.com/sandeepkv93/recurcal/internal/log"
	"github.com/sandeepkv93/recurcal/internal/schedule"
	"github.com/sandeepkv93/recurcal/internal/update"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	start      string
	end        string
	pattern    string
	weekdays   []string
	weekStart  string
	strict     bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "recurcal",
		Short: "Pick the dates of a recurring event",
		Long: `recurcal shows a month calendar of a recurring event. Pick a repeat
pattern, then toggle single dates to add or remove occurrences.

Examples:
  recurcal --start 2018-01-02 --pattern weekly --weekdays tue,thu
  recurcal preview --month 2018-02
  recurcal export > schedule.ics`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "schedule file (default $RECURCAL_CONFIG or recurcal.yaml)")
	flags.StringVar(&opts.start, "start", "", "start date, YYYY-MM-DD")
	flags.StringVar(&opts.end, "end", "", "end date, YYYY-MM-DD")
	flags.StringVarP(&opts.pattern, "pattern", "p", "", "repeat pattern (daily, weekly, two-weekly, monthly-date, monthly-day, annually)")
	flags.StringSliceVarP(&opts.weekdays, "weekdays", "w", nil, "weekdays for the weekly pattern, e.g. mon,wed")
	flags.StringVar(&opts.weekStart, "week-start", "", "first day of the week: monday or sunday")
	flags.BoolVar(&opts.strict, "strict-bounds", false, "drop every exception outside a changed start or end date")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	cmd.AddCommand(newPreviewCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	return cmd
}

// runtimeConfig merges the environment with the command-line flags.
func (o *rootOptions) runtimeConfig() update.RuntimeConfig {
	rc := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	if o.configPath != "" {
		rc.ConfigPath = o.configPath
	}
	if o.weekStart != "" {
		rc.WeekStart = strings.ToLower(o.weekStart)
	}
	if o.strict {
		rc.StrictBounds = true
	}
	return rc
}

// scheduleConfig loads the schedule file and applies flag overrides. The
// start and end flags act as the bound fields.
func (o *rootOptions) scheduleConfig(rc update.RuntimeConfig) (schedule.Config, error) {
	file, err := config.Load(rc.ConfigPath)
	if err != nil {
		return schedule.Config{}, err
	}
	cfg := rc.ApplyTo(file.ToControllerConfig(schedule.Fields{Start: o.start, End: o.end}))
	if o.pattern != "" {
		cfg.Pattern = o.pattern
	}
	if len(o.weekdays) > 0 {
		days := make([]time.Weekday, 0, len(o.weekdays))
		for _, raw := range o.weekdays {
			wd, err := commands.ParseWeekday(raw)
			if err != nil {
				return schedule.Config{}, fmt.Errorf("--weekdays: %w", err)
			}
			days = append(days, wd)
		}
		cfg.Weekdays = days
	}
	return cfg, nil
}

// logger returns the process logger and its closer. Verbose one-shot
// commands log to stderr instead of the log file.
func (o *rootOptions) logger(cmd *cobra.Command, rc update.RuntimeConfig, oneShot bool) (hclog.Logger, io.Closer, error) {
	if oneShot && o.verbose {
		level := rc.LogLevel
		if level == "info" {
			level = "debug"
		}
		return applog.NewWriter(cmd.ErrOrStderr(), level), nopCloser{}, nil
	}
	return applog.New(applog.Options{File: rc.LogFile, Level: rc.LogLevel})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	rc := opts.runtimeConfig()
	cfg, err := opts.scheduleConfig(rc)
	if err != nil {
		return err
	}
	logger, closer, err := opts.logger(cmd, rc, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	model, err := update.NewModel(cfg, rc, schedule.WithLogger(logger))
	if err != nil {
		return err
	}
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
