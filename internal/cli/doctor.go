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

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // ✓, ⚠, ✗
	Details string
}

// DoctorCmd returns the doctor command
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate launchpad config and database",
		Long: `Environment health check for launchpad.

Validates:
- Config files (~/.launchpad/config.yaml, ./.launchpad/config.yaml)
- Database file location
- Schema version against the latest migration
- Focused launch, if one is set

Examples:
  launchpad doctor              # Run full health check
  launchpad doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			results := []CheckResult{
				checkConfigFiles(),
				checkDatabaseFile(cfg.Database.Path),
			}
			schema := checkSchemaVersion(cfg.Database.Path)
			results = append(results, schema)
			if schema.Status == "✓" {
				results = append(results, checkFocus(cfg.CurrentProject))
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found. Run 'launchpad init' to create config and database.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// checkConfigFiles warns when neither the global nor the project config exists.
func checkConfigFiles() CheckResult {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}

	for _, dir := range dirs {
		if _, err := os.Stat(filepath.Join(dir, config.DirName, config.FileName)); err == nil {
			return CheckResult{Name: "Config", Status: "✓"}
		}
	}
	return CheckResult{
		Name:    "Config",
		Status:  "⚠",
		Details: "  No config.yaml found; defaults are in use",
	}
}

func checkDatabaseFile(path string) CheckResult {
	info, err := os.Stat(path)
	if err != nil {
		return CheckResult{
			Name:    "Database",
			Status:  "✗",
			Details: fmt.Sprintf("  Not found: %s", path),
		}
	}
	return CheckResult{
		Name:    "Database",
		Status:  "✓",
		Details: fmt.Sprintf("  %s (%d KB)", path, info.Size()/1024),
	}
}

// checkSchemaVersion opens the database, which applies pending migrations,
// and reports the resulting version.
func checkSchemaVersion(path string) CheckResult {
	if _, err := os.Stat(path); err != nil {
		return CheckResult{Name: "Schema", Status: "✗", Details: "  Database missing"}
	}

	db.SetPath(path)
	conn, err := db.GetDB()
	if err != nil {
		return CheckResult{Name: "Schema", Status: "✗", Details: "  " + err.Error()}
	}
	version, err := db.CurrentVersion(conn)
	if err != nil {
		return CheckResult{Name: "Schema", Status: "✗", Details: "  " + err.Error()}
	}
	if version != db.LatestVersion() {
		return CheckResult{
			Name:    "Schema",
			Status:  "✗",
			Details: fmt.Sprintf("  At v%d, expected v%d", version, db.LatestVersion()),
		}
	}
	return CheckResult{Name: "Schema", Status: "✓"}
}

func checkFocus(projectID string) CheckResult {
	if projectID == "" {
		return CheckResult{Name: "Focus", Status: "✓"}
	}
	if _, err := wire.ProjectService().GetProject(NewContext(), projectID); err != nil {
		return CheckResult{
			Name:    "Focus",
			Status:  "⚠",
			Details: fmt.Sprintf("  Focused launch %s: %v", projectID, err),
		}
	}
	return CheckResult{Name: "Focus", Status: "✓"}
}
