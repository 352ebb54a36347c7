package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/example/launchpad/internal/core/playbook"
	"github.com/example/launchpad/internal/ports/primary"
	"github.com/example/launchpad/internal/wire"
)

// DocumentCmd returns the document command group
func DocumentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "document",
		Aliases: []string{"doc"},
		Short:   "Manage checklist documents",
		Long:    "Register, update, inspect and parse the markup documents launches are composed from",
	}
	cmd.AddCommand(documentRegisterCmd())
	cmd.AddCommand(documentUpdateCmd())
	cmd.AddCommand(documentShowCmd())
	cmd.AddCommand(documentListCmd())
	cmd.AddCommand(documentParseCmd())
	cmd.AddCommand(documentImportCmd())
	return cmd
}

func documentRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <file>",
		Short: "Register a document from a markup file",
		Long: `Register a document from a markup file.

Name, type and version fall back to the file's YAML frontmatter.

Examples:
  launchpad document register engine.md --type engine
  launchpad document register socials.md --name "Social playbook" --type playbook`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			name, _ := cmd.Flags().GetString("name")
			docType, _ := cmd.Flags().GetString("type")
			version, _ := cmd.Flags().GetString("version")

			doc, err := wire.DocumentService().RegisterDocument(NewContext(), primary.RegisterDocumentRequest{
				Name:    name,
				DocType: docType,
				Version: version,
				Content: string(content),
			})
			if err != nil {
				return fmt.Errorf("failed to register document: %w", err)
			}

			fmt.Printf("✓ Registered %s: %s (%s v%s)\n", doc.ID, doc.Name, doc.DocType, doc.Version)
			fmt.Printf("  %d phase(s), %d item(s)\n", doc.PhaseCount, doc.ItemCount)
			return nil
		},
	}
	cmd.Flags().String("name", "", "Document name (default: frontmatter name)")
	cmd.Flags().String("type", "", "Document type: engine, playbook or operations")
	cmd.Flags().String("version", "", "Document version (default: frontmatter version or 1)")
	return cmd
}

func documentUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <document-id> <file>",
		Short: "Replace a document's content and bump its version",
		Long: `Replace a document's content. Projects already created keep their checklist;
only new projects see the new content.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEntityID(args[0], "document"); err != nil {
				return err
			}
			content, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[1], err)
			}

			doc, err := wire.DocumentService().UpdateDocument(NewContext(), primary.UpdateDocumentRequest{
				DocumentID: args[0],
				Content:    string(content),
			})
			if err != nil {
				return fmt.Errorf("failed to update document: %w", err)
			}

			fmt.Printf("✓ Updated %s to v%s\n", doc.ID, doc.Version)
			return nil
		},
	}
}

func documentShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <document-id>",
		Short: "Show a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEntityID(args[0], "document"); err != nil {
				return err
			}
			raw, _ := cmd.Flags().GetBool("raw")

			doc, err := wire.DocumentService().GetDocument(NewContext(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get document: %w", err)
			}

			if raw {
				fmt.Print(doc.RawContent)
				return nil
			}

			fmt.Printf("\nDocument: %s\n", doc.ID)
			fmt.Printf("Name:    %s\n", doc.Name)
			fmt.Printf("Type:    %s\n", doc.DocType)
			fmt.Printf("Version: %s\n", doc.Version)
			fmt.Printf("Phases:  %d\n", doc.PhaseCount)
			fmt.Printf("Items:   %d\n", doc.ItemCount)
			fmt.Printf("Updated: %s\n", doc.UpdatedAt)
			fmt.Println()
			return nil
		},
	}
	cmd.Flags().Bool("raw", false, "Print the stored markup")
	return cmd
}

func documentListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			docType, _ := cmd.Flags().GetString("type")

			docs, err := wire.DocumentService().ListDocuments(NewContext(), primary.DocumentFilters{DocType: docType})
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Println("No documents found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tVERSION\tPHASES\tITEMS\tNAME")
			fmt.Fprintln(w, "--\t----\t-------\t------\t-----\t----")
			for _, d := range docs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n", d.ID, d.DocType, d.Version, d.PhaseCount, d.ItemCount, d.Name)
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("type", "", "Filter by type")
	return cmd
}

func documentParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a markup file without storing it",
		Long: `Parse a markup file and print what a project would receive.

With --normalize, print the canonical markup instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			normalize, _ := cmd.Flags().GetBool("normalize")

			parsed, err := wire.DocumentService().ParseDocument(NewContext(), string(content))
			if err != nil {
				return err
			}

			if normalize {
				fmt.Print(playbook.Render(&playbook.Document{Phases: parsed.Phases, Items: parsed.Items}))
				return nil
			}

			fmt.Printf("%d phase(s), %d item(s)\n", len(parsed.Phases), len(parsed.Items))
			phase := ""
			for _, item := range parsed.Items {
				if item.Phase != phase {
					phase = item.Phase
					fmt.Printf("\n%s\n", phase)
				}
				fmt.Printf("  %3d. %s\n", item.SortOrder, playbook.RenderItem(item))
			}
			return nil
		},
	}
	cmd.Flags().Bool("normalize", false, "Print canonical markup")
	return cmd
}

// bundleManifest describes a set of documents and, optionally, the project
// composed from them.
type bundleManifest struct {
	Documents []bundleDocument `yaml:"documents"`
	Project   *bundleProject   `yaml:"project,omitempty"`
}

type bundleDocument struct {
	File    string `yaml:"file"`
	Name    string `yaml:"name,omitempty"`
	Type    string `yaml:"type,omitempty"`
	Version string `yaml:"version,omitempty"`
}

type bundleProject struct {
	Title            string            `yaml:"title,omitempty"`
	TargetLaunchDate string            `yaml:"target_launch_date,omitempty"`
	Meta             map[string]string `yaml:"meta,omitempty"`
}

func loadBundle(path string) (*bundleManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var manifest bundleManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(manifest.Documents) == 0 {
		return nil, fmt.Errorf("manifest %s lists no documents", path)
	}
	return &manifest, nil
}

func documentImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <manifest.yaml>",
		Short: "Register a bundle of documents and optionally create a launch",
		Long: `Register every document listed in a YAML manifest. File paths are relative
to the manifest. When the manifest has a project section, a launch is composed
from the documents in listed order.

Example manifest:
  documents:
    - file: engine.md
      type: engine
    - file: socials.md
      type: playbook
  project:
    title: Spring launch
    target_launch_date: 2026-04-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			manifest, err := loadBundle(args[0])
			if err != nil {
				return err
			}
			baseDir := filepath.Dir(args[0])

			var ids []string
			for _, d := range manifest.Documents {
				content, err := os.ReadFile(filepath.Join(baseDir, d.File))
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", d.File, err)
				}
				doc, err := wire.DocumentService().RegisterDocument(ctx, primary.RegisterDocumentRequest{
					Name:    d.Name,
					DocType: d.Type,
					Version: d.Version,
					Content: string(content),
				})
				if err != nil {
					return fmt.Errorf("failed to register %s: %w", d.File, err)
				}
				fmt.Printf("✓ Registered %s: %s\n", doc.ID, doc.Name)
				ids = append(ids, doc.ID)
			}

			if manifest.Project == nil {
				return nil
			}
			_, err = wire.ProjectAdapter().Create(ctx, primary.CreateProjectRequest{
				DocumentIDs:      ids,
				Title:            manifest.Project.Title,
				TargetLaunchDate: manifest.Project.TargetLaunchDate,
				Meta:             manifest.Project.Meta,
			})
			return err
		},
	}
}
