package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/launchpad/internal/ports/primary"
	"github.com/example/launchpad/internal/wire"
)

// projectFlag resolves --project, falling back to the focused launch.
func projectFlag(cmd *cobra.Command) (string, error) {
	id, _ := cmd.Flags().GetString("project")
	if id == "" {
		return resolveProjectID(nil)
	}
	return resolveProjectID([]string{id})
}

// PostCmd returns the post command
func PostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post <platform> [count]",
		Short: "Log posts published on a platform",
		Long: `Log posts published on a platform. Posts on the same day add up.

Examples:
  launchpad post x              # One post today
  launchpad post linkedin 2 --date 2026-03-14`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := projectFlag(cmd)
			if err != nil {
				return err
			}
			count := 1
			if len(args) > 1 {
				if count, err = strconv.Atoi(args[1]); err != nil {
					return fmt.Errorf("count must be a number: %w", err)
				}
			}
			date, _ := cmd.Flags().GetString("date")

			if err := wire.MetricsService().LogPost(NewContext(), primary.LogPostRequest{
				ProjectID: projectID,
				Platform:  args[0],
				Date:      date,
				Count:     count,
			}); err != nil {
				return err
			}

			days, err := wire.MetricsService().ComputeStreak(NewContext(), projectID, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("✓ Logged %d post(s) on %s (streak: %d day(s))\n", count, strings.ToLower(args[0]), days)
			return nil
		},
	}
	cmd.Flags().String("project", "", "Launch ID (default: focused launch)")
	cmd.Flags().String("date", "", "Day posted (YYYY-MM-DD, default today)")
	return cmd
}

// ScheduleCmd returns the schedule command
func ScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule <platform> <count>",
		Short: "Record content queued for a platform",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := projectFlag(cmd)
			if err != nil {
				return err
			}
			count, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("count must be a number: %w", err)
			}

			ctx := NewContext()
			if err := wire.MetricsService().ScheduleContent(ctx, projectID, args[0], count); err != nil {
				return err
			}
			report, err := wire.MetricsService().ContentBuffer(ctx, projectID, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("✓ Scheduled %d on %s (buffer: %d)\n", count, report.Platform, report.Buffer)
			return nil
		},
	}
	cmd.Flags().String("project", "", "Launch ID (default: focused launch)")
	return cmd
}

// StreakCmd returns the streak command
func StreakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak <platform>...",
		Short: "Show consecutive posting days per platform",
		Long: `Show the current posting streak. A day without a post yet does not break
the streak until it is over.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := projectFlag(cmd)
			if err != nil {
				return err
			}
			ctx := NewContext()
			for _, platform := range args {
				days, err := wire.MetricsService().ComputeStreak(ctx, projectID, platform)
				if err != nil {
					return err
				}
				fmt.Printf("%-12s %d day(s)\n", strings.ToLower(platform), days)
			}
			return nil
		},
	}
	cmd.Flags().String("project", "", "Launch ID (default: focused launch)")
	return cmd
}

// BufferCmd returns the buffer command
func BufferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buffer <platform>...",
		Short: "Show scheduled minus posted content per platform",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := projectFlag(cmd)
			if err != nil {
				return err
			}
			ctx := NewContext()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "PLATFORM\tSCHEDULED\tPOSTED\tBUFFER")
			for _, platform := range args {
				report, err := wire.MetricsService().ContentBuffer(ctx, projectID, platform)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", report.Platform, report.Scheduled, report.Posted, report.Buffer)
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("project", "", "Launch ID (default: focused launch)")
	return cmd
}

// MetricCmd returns the metric command group
func MetricCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metric",
		Short: "Record and list launch metrics",
	}

	record := &cobra.Command{
		Use:   "record <type> <name> <value>",
		Short: "Record a metric value",
		Long: `Record a metric value.

Examples:
  launchpad metric record signups waitlist 42
  launchpad metric record revenue stripe 129.5 --date 2026-03-20`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := projectFlag(cmd)
			if err != nil {
				return err
			}
			value, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("value must be a number: %w", err)
			}
			date, _ := cmd.Flags().GetString("date")

			metric, err := wire.MetricsService().RecordMetric(NewContext(), primary.RecordMetricRequest{
				ProjectID:  projectID,
				Date:       date,
				MetricType: args[0],
				MetricName: args[1],
				Value:      value,
			})
			if err != nil {
				return err
			}
			fmt.Printf("✓ Recorded %s/%s = %g on %s\n", metric.MetricType, metric.MetricName, metric.Value, metric.Date)
			return nil
		},
	}
	record.Flags().String("project", "", "Launch ID (default: focused launch)")
	record.Flags().String("date", "", "Day of the value (YYYY-MM-DD, default today)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List metric values, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := projectFlag(cmd)
			if err != nil {
				return err
			}
			metricType, _ := cmd.Flags().GetString("type")
			name, _ := cmd.Flags().GetString("name")

			metrics, err := wire.MetricsService().ListMetrics(NewContext(), primary.MetricFilters{
				ProjectID:  projectID,
				MetricType: metricType,
				MetricName: name,
			})
			if err != nil {
				return err
			}
			if len(metrics) == 0 {
				fmt.Println("No metrics found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "DATE\tTYPE\tNAME\tVALUE")
			for _, m := range metrics {
				fmt.Fprintf(w, "%s\t%s\t%s\t%g\n", m.Date, m.MetricType, m.MetricName, m.Value)
			}
			return w.Flush()
		},
	}
	list.Flags().String("project", "", "Launch ID (default: focused launch)")
	list.Flags().String("type", "", "Filter by type")
	list.Flags().String("name", "", "Filter by name")

	cmd.AddCommand(record, list)
	return cmd
}

// CheckInCmd returns the checkin command
func CheckInCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkin [notes...]",
		Short: "Record a dated check-in, or list check-ins with --list",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := projectFlag(cmd)
			if err != nil {
				return err
			}
			ctx := NewContext()

			if listOnly, _ := cmd.Flags().GetBool("list"); listOnly {
				checkIns, err := wire.MetricsService().ListCheckIns(ctx, projectID)
				if err != nil {
					return err
				}
				if len(checkIns) == 0 {
					fmt.Println("No check-ins yet.")
					return nil
				}
				for _, c := range checkIns {
					fmt.Printf("%s  %s\n", c.Date, c.Notes)
				}
				return nil
			}

			date, _ := cmd.Flags().GetString("date")
			checkIn, err := wire.MetricsService().CheckIn(ctx, primary.CheckInRequest{
				ProjectID: projectID,
				Date:      date,
				Notes:     strings.Join(args, " "),
			})
			if err != nil {
				return err
			}
			fmt.Printf("✓ Checked in on %s for %s\n", checkIn.Date, checkIn.ProjectID)
			return nil
		},
	}
	cmd.Flags().String("project", "", "Launch ID (default: focused launch)")
	cmd.Flags().String("date", "", "Day of the check-in (YYYY-MM-DD, default today)")
	cmd.Flags().Bool("list", false, "List check-ins instead of recording one")
	return cmd
}
