package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/launchpad/internal/config"
	"github.com/example/launchpad/internal/ports/primary"
	"github.com/example/launchpad/internal/wire"
)

// ProjectCmd returns the project command group
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"launch"},
		Short:   "Manage launch projects",
		Long: `Create launches from documents and move them through their phases.

Commands that take an optional [project-id] fall back to the focused launch
(see 'launchpad project focus').`,
	}
	cmd.AddCommand(projectCreateCmd())
	cmd.AddCommand(projectListCmd())
	cmd.AddCommand(projectShowCmd())
	cmd.AddCommand(projectChecklistCmd())
	cmd.AddCommand(projectProgressCmd())
	cmd.AddCommand(projectAdvanceCmd())
	cmd.AddCommand(projectCompleteCmd())
	cmd.AddCommand(projectResetCmd())
	cmd.AddCommand(projectTargetCmd())
	cmd.AddCommand(projectFocusCmd())
	return cmd
}

// resolveProjectID returns the explicit argument or the focused launch.
func resolveProjectID(args []string) (string, error) {
	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		id = wire.Config().CurrentProject
	}
	if id == "" {
		return "", fmt.Errorf("no launch given\nHint: pass a LAUNCH-xxx ID or run 'launchpad project focus LAUNCH-xxx'")
	}
	if err := validateEntityID(id, "project"); err != nil {
		return "", err
	}
	return id, nil
}

func parseMeta(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	meta := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid --meta %q, expected key=value", p)
		}
		meta[strings.TrimSpace(k)] = v
	}
	return meta, nil
}

func projectCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <document-id>...",
		Short: "Compose documents into a new launch",
		Long: `Compose one or more documents into a new launch. Documents are merged in
the order given; phases with the same name are combined.

Examples:
  launchpad project create DOC-001
  launchpad project create DOC-001 DOC-003 --title "Spring launch" --target 2026-04-01`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := validateEntityID(id, "document"); err != nil {
					return err
				}
			}
			title, _ := cmd.Flags().GetString("title")
			target, _ := cmd.Flags().GetString("target")
			pairs, _ := cmd.Flags().GetStringArray("meta")
			focus, _ := cmd.Flags().GetBool("focus")

			meta, err := parseMeta(pairs)
			if err != nil {
				return err
			}

			project, err := wire.ProjectAdapter().Create(NewContext(), primary.CreateProjectRequest{
				DocumentIDs:      args,
				Title:            title,
				TargetLaunchDate: target,
				Meta:             meta,
			})
			if err != nil {
				return fmt.Errorf("failed to create launch: %w", err)
			}

			if focus {
				return saveFocus(project.ID)
			}
			return nil
		},
	}
	cmd.Flags().String("title", "", "Launch title (default: first document's name)")
	cmd.Flags().String("target", "", "Target launch date (YYYY-MM-DD)")
	cmd.Flags().StringArray("meta", nil, "Metadata as key=value (repeatable)")
	cmd.Flags().Bool("focus", false, "Focus the new launch")
	return cmd
}

func projectListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List launches",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, _ := cmd.Flags().GetString("status")
			_, err := wire.ProjectAdapter().List(NewContext(), status)
			return err
		},
	}
	cmd.Flags().String("status", "", "Filter by status (setup, complete or a phase slug)")
	return cmd
}

func projectShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [project-id]",
		Short: "Show launch details",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(args)
			if err != nil {
				return err
			}
			_, err = wire.ProjectAdapter().Show(NewContext(), id)
			return err
		},
	}
}

func projectChecklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist [project-id]",
		Short: "Show a launch's checklist",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(args)
			if err != nil {
				return err
			}
			phase, _ := cmd.Flags().GetString("phase")
			open, _ := cmd.Flags().GetBool("open")

			_, err = wire.ProjectAdapter().Checklist(NewContext(), primary.ChecklistFilters{
				ProjectID:      id,
				Phase:          phase,
				IncompleteOnly: open,
			})
			return err
		},
	}
	cmd.Flags().String("phase", "", "Only show one phase")
	cmd.Flags().Bool("open", false, "Only show incomplete items")
	return cmd
}

func projectProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress [project-id]",
		Short: "Show completion per phase and overdue items",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(args)
			if err != nil {
				return err
			}
			_, err = wire.ProjectAdapter().Progress(NewContext(), id)
			return err
		},
	}
}

func projectAdvanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advance [project-id]",
		Short: "Move a launch to its next phase",
		Long: `Move a launch to its next phase. Refused while any CRITICAL item of the
current phase is open, or when the current phase is the last one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(args)
			if err != nil {
				return err
			}
			_, err = wire.ProjectAdapter().Advance(NewContext(), id)
			return err
		},
	}
}

func projectCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete [project-id]",
		Short: "Mark a launch complete",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(args)
			if err != nil {
				return err
			}
			_, err = wire.ProjectAdapter().Complete(NewContext(), id)
			return err
		},
	}
}

func projectResetCmd() *cobra.Command {
	var force, keepMetrics bool

	cmd := &cobra.Command{
		Use:   "reset [project-id]",
		Short: "Clear progress and return a launch to setup",
		Long: `Clear every item's completion and task link and return the launch to its
first phase. Metrics, posting log and check-ins are deleted unless
--keep-metrics is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(args)
			if err != nil {
				return err
			}

			if !force {
				fmt.Printf("This will clear all progress on %s.\n", id)
				fmt.Print("Continue? [y/N] ")
				var response string
				fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			_, err = wire.ProjectAdapter().Reset(NewContext(), id, keepMetrics)
			return err
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&keepMetrics, "keep-metrics", false, "Keep metrics, posting log and check-ins")
	return cmd
}

func projectTargetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "target <date> [project-id]",
		Short: "Set the target launch date (YYYY-MM-DD)",
		Long: `Set the target launch date. Items with [DUE:LAUNCH±N] resolve against it.

Examples:
  launchpad project target 2026-04-01
  launchpad project target --clear LAUNCH-002`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clearDate, _ := cmd.Flags().GetBool("clear")

			date := ""
			rest := args
			if !clearDate {
				if len(args) == 0 {
					return fmt.Errorf("a date is required unless --clear is given")
				}
				date, rest = args[0], args[1:]
			}
			id, err := resolveProjectID(rest)
			if err != nil {
				return err
			}

			project, err := wire.ProjectService().SetTargetDate(NewContext(), id, date)
			if err != nil {
				return err
			}
			if project.TargetLaunchDate == "" {
				fmt.Printf("✓ Cleared target date of %s\n", project.ID)
			} else {
				fmt.Printf("✓ %s launches %s\n", project.ID, project.TargetLaunchDate)
			}
			return nil
		},
	}
	cmd.Flags().Bool("clear", false, "Clear the target date")
	return cmd
}

func projectFocusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus [project-id]",
		Short: "Set or show the focused launch",
		Long: `Focus a launch so commands without an explicit ID act on it. The focus is
stored in .launchpad/config.yaml in the current directory.

Examples:
  launchpad project focus LAUNCH-002   # Focus a launch
  launchpad project focus              # Show current focus
  launchpad project focus --clear      # Clear the focus`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clearFlag, _ := cmd.Flags().GetBool("clear")

			if clearFlag {
				if err := saveFocus(""); err != nil {
					return err
				}
				fmt.Println("✓ Focus cleared")
				return nil
			}

			if len(args) == 0 {
				current := wire.Config().CurrentProject
				if current == "" {
					fmt.Println("No launch focused.")
					return nil
				}
				_, err := wire.ProjectAdapter().Show(NewContext(), current)
				return err
			}

			id := args[0]
			if err := validateEntityID(id, "project"); err != nil {
				return err
			}
			project, err := wire.ProjectService().GetProject(NewContext(), id)
			if err != nil {
				return err
			}
			if err := saveFocus(project.ID); err != nil {
				return err
			}
			fmt.Printf("✓ Focused %s: %s\n", project.ID, project.Title)
			return nil
		},
	}
	cmd.Flags().Bool("clear", false, "Clear the current focus")
	return cmd
}

// saveFocus stores the focused launch in the working directory's config,
// keeping everything else that file already holds.
func saveFocus(projectID string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadDir(cwd)
	if err != nil {
		return err
	}
	cfg.CurrentProject = projectID
	if err := config.SaveConfig(cwd, cfg); err != nil {
		return err
	}
	wire.Config().CurrentProject = projectID
	return nil
}
