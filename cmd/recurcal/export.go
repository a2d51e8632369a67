package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/recurcal/internal/ics"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		output  string
		summary string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the schedule as iCalendar",
		Long: `Export the schedule as a single recurring all-day VEVENT. The repeat
pattern becomes RRULE, added dates become RDATE and removed dates EXDATE.

Examples:
  recurcal export                  # Export to stdout
  recurcal export -o team.ics      # Export to file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, closer, err := openSchedule(cmd, opts)
			if err != nil {
				return err
			}
			defer closer.Close()

			body, err := ics.Render(ctrl, ics.Options{Summary: summary})
			if err != nil {
				return err
			}
			if output != "" {
				if err := os.WriteFile(output, []byte(body), 0o644); err != nil {
					return fmt.Errorf("failed to write file: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", output)
				return nil
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), body)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().StringVar(&summary, "summary", "", "event summary")
	return cmd
}
