package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/launchpad/internal/cli"
	"github.com/example/launchpad/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "launchpad",
		Short:   "Launchpad - phase-gated launch checklists",
		Version: version.String(),
		Long: `Launchpad turns markdown launch playbooks into phase-gated checklists.
It surfaces the next most important items as tasks and tracks posting
streaks, content buffers and launch metrics.`,
		PersistentPreRunE: cli.Bootstrap,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	// Checklists
	rootCmd.AddCommand(cli.DocumentCmd())
	rootCmd.AddCommand(cli.ProjectCmd())
	rootCmd.AddCommand(cli.ItemCmd())
	rootCmd.AddCommand(cli.SurfaceCmd())
	rootCmd.AddCommand(cli.TaskCmd())

	// Posting and metrics
	rootCmd.AddCommand(cli.PostCmd())
	rootCmd.AddCommand(cli.ScheduleCmd())
	rootCmd.AddCommand(cli.StreakCmd())
	rootCmd.AddCommand(cli.BufferCmd())
	rootCmd.AddCommand(cli.MetricCmd())
	rootCmd.AddCommand(cli.CheckInCmd())

	rootCmd.AddCommand(cli.LogCmd())
	rootCmd.AddCommand(cli.DevCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
