package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/launchpad/internal/config"
	"github.com/example/launchpad/internal/db"
	"github.com/example/launchpad/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var (
		owner  string
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize launchpad config and database",
		Long: `Write .launchpad/config.yaml and create the database with the required schema.

By default the config is written to the working directory. Use --global to
write ~/.launchpad/config.yaml instead.

Examples:
  launchpad init --owner sam
  launchpad init --global --owner sam`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if global {
				dir, err = os.UserHomeDir()
			}
			if err != nil {
				return fmt.Errorf("failed to resolve config directory: %w", err)
			}

			cfg, err := config.LoadDir(dir)
			if err != nil {
				return err
			}
			if owner != "" {
				cfg.Owner = owner
			}
			if err := config.SaveConfig(dir, cfg); err != nil {
				return err
			}
			fmt.Printf("✓ Config written to %s\n", filepath.Join(dir, config.DirName, config.FileName))

			dbPath := wire.Config().Database.Path
			fmt.Printf("Initializing database at %s\n", dbPath)

			db.SetPath(dbPath)
			conn, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			version, err := db.CurrentVersion(conn)
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}
			fmt.Printf("✓ Database ready (schema v%d)\n", version)

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  launchpad document register playbook.md")
			fmt.Println("  launchpad project create DOC-001 --target 2026-12-01 --focus")
			fmt.Println("  launchpad surface")
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner recorded on new launches")
	cmd.Flags().BoolVar(&global, "global", false, "Write the global config in the home directory")
	return cmd
}
