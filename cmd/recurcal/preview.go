package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/recurcal/internal/model"
	"github.com/sandeepkv93/recurcal/internal/schedule"
	"github.com/sandeepkv93/recurcal/internal/views"
)

func newPreviewCmd(opts *rootOptions) *cobra.Command {
	var (
		month   string
		toggles []string
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print one month of the schedule",
		Long: `Print the resolved month grid and the exception summary without
starting the terminal UI. Markers: @ start date, * repeats, + added,
x removed, o existing event.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, closer, err := openSchedule(cmd, opts)
			if err != nil {
				return err
			}
			defer closer.Close()

			for _, raw := range toggles {
				d, err := model.ParseDate(raw)
				if err != nil {
					return fmt.Errorf("--toggle %q: %w", raw, err)
				}
				if tr := ctrl.OnDateActivated(d); !tr.Changed {
					return fmt.Errorf("--toggle %s: date can not be changed", d)
				}
			}

			frame := ctrl.Frame()
			if month != "" {
				m, err := model.ParseMonth(month)
				if err != nil {
					return fmt.Errorf("--month %q: %w", month, err)
				}
				frame = ctrl.FrameFor(m)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderPreview(frame))
			return err
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "month to print, YYYY-MM (default: the start month)")
	cmd.Flags().StringSliceVarP(&toggles, "toggle", "t", nil, "dates to toggle before printing")
	return cmd
}

// openSchedule builds a controller for a one-shot command. The returned
// closer releases the logger.
func openSchedule(cmd *cobra.Command, opts *rootOptions) (*schedule.Controller, io.Closer, error) {
	rc := opts.runtimeConfig()
	cfg, err := opts.scheduleConfig(rc)
	if err != nil {
		return nil, nil, err
	}
	logger, c, err := opts.logger(cmd, rc, true)
	if err != nil {
		return nil, nil, err
	}
	ctrl, err := schedule.Initialize(schedule.PainterFunc(func(schedule.Frame) {}), cfg, schedule.WithLogger(logger))
	if err != nil {
		c.Close()
		return nil, nil, err
	}
	return ctrl, c, nil
}

func renderPreview(frame schedule.Frame) string {
	cells := make([]views.DayCellData, 0, len(frame.Days))
	for _, ds := range frame.Days {
		cells = append(cells, views.DayCellData{Day: ds.Date.Day(), State: string(ds.State)})
	}
	grid := views.RenderMonthGrid(views.MonthGridData{
		Title:        frame.Month.Title(),
		WeekStart:    frame.WeekStart,
		FirstWeekday: frame.Month.First().Weekday(),
		Cells:        cells,
		CanPrev:      frame.CanPrev,
		CanNext:      frame.CanNext,
	})
	summary := views.RenderSummary(views.SummaryData{
		AddedText:   frame.Summary.AddedText(),
		RemovedText: frame.Summary.RemovedText(),
	})
	return strings.Join([]string{
		fmt.Sprintf("%s | %s to %s", frame.PatternLabel, frame.Start, frame.End),
		grid,
		"",
		summary,
	}, "\n")
}
