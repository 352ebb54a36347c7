package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/launchpad/internal/config"
	"github.com/example/launchpad/internal/db"
	"github.com/example/launchpad/internal/ports/primary"
	"github.com/example/launchpad/internal/wire"
)

// samplePlaybook seeds the dev database.
const samplePlaybook = `---
name: Sample SaaS Launch
type: playbook
version: 1
---
# PHASE 1: FOUNDATION
## Product
- [ ] Pick a name [CRITICAL]
- [ ] Register the domain [CRITICAL] [DUE:LAUNCH-60]
- [ ] Set up payments [PRIORITY:HIGH]
## Audience
- [ ] Start a waitlist page [DUE:LAUNCH-45]
- [ ] Post build updates [DAILY]

# PHASE 2: PRE-LAUNCH
- [ ] Record the demo video [CRITICAL] [DUE:LAUNCH-7]
- [ ] Write the launch thread [PRIORITY:HIGH]
- [ ] Weekly newsletter [WEEKLY]

# PHASE 3: LAUNCH
- [ ] Ship it [CRITICAL] [DUE:LAUNCH+0]
- [ ] Reply to every comment [DUE:LAUNCH+1]
`

// DevCmd returns the dev command group for development utilities.
func DevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Development utilities",
		Long: `Development utilities for working against a throwaway database.

These commands require LAUNCHPAD_DB to be set so they never touch the
database in ~/.launchpad.`,
	}

	cmd.AddCommand(devResetCmd())
	return cmd
}

func devResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset dev database with a sample launch",
		Long: `Delete the dev database and recreate it with a sample playbook and launch.

Safety: This command requires LAUNCHPAD_DB to be set to prevent accidental
reset of your real database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := os.Getenv(config.EnvDatabasePath)
			if dbPath == "" {
				return fmt.Errorf("%s not set\n\nThis safety check prevents accidental reset of your real database", config.EnvDatabasePath)
			}

			if !force {
				fmt.Printf("This will delete and recreate: %s\n", dbPath)
				fmt.Print("Continue? [y/N] ")
				var response string
				fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			db.Close()

			if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to delete database: %w", err)
			}
			fmt.Printf("✓ Deleted %s\n", dbPath)

			ctx := NewContext()
			doc, err := wire.DocumentService().RegisterDocument(ctx, primary.RegisterDocumentRequest{
				Content: samplePlaybook,
			})
			if err != nil {
				return fmt.Errorf("failed to seed document: %w", err)
			}
			fmt.Printf("✓ Seeded %s (%d phases, %d items)\n", doc.ID, doc.PhaseCount, doc.ItemCount)

			project, err := wire.ProjectService().CreateProject(ctx, primary.CreateProjectRequest{
				DocumentIDs: []string{doc.ID},
				Meta:        map[string]string{"stack": "go"},
			})
			if err != nil {
				return fmt.Errorf("failed to seed launch: %w", err)
			}
			fmt.Printf("✓ Seeded %s (%s)\n", project.ID, project.Status)

			fmt.Println("\nDev database reset complete!")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}
