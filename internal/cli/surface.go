package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/launchpad/internal/wire"
)

// SurfaceCmd returns the surface command
func SurfaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "surface [project-id]",
		Short: "Create tasks for the next items of the current phase",
		Long: `Promote open, unlinked items of the current phase into tasks: CRITICAL
items first, then PRIORITY:HIGH, then checklist order. Items that already have
a task are skipped, so repeated runs never duplicate work.

Examples:
  launchpad surface              # Default count from config
  launchpad surface -n 3 LAUNCH-002`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(args)
			if err != nil {
				return err
			}
			count, _ := cmd.Flags().GetInt("count")
			if !cmd.Flags().Changed("count") {
				count = wire.Config().Surfacing.DefaultCount
			}

			_, err = wire.SurfacingAdapter().Surface(NewContext(), id, count)
			return err
		},
	}
	cmd.Flags().IntP("count", "n", 0, "Maximum number of tasks to create")
	return cmd
}
