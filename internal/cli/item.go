package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/launchpad/internal/wire"
)

// ItemCmd returns the checklist item command group
func ItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Work with checklist items",
	}
	cmd.AddCommand(itemCompleteCmd())
	cmd.AddCommand(itemNoteCmd())
	return cmd
}

func itemCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <item-id>...",
		Short: "Complete checklist items and their linked tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			adapter := wire.ProjectAdapter()
			for _, id := range args {
				if err := validateEntityID(id, "item"); err != nil {
					return err
				}
				if _, err := adapter.CompleteItem(ctx, id); err != nil {
					return fmt.Errorf("failed to complete %s: %w", id, err)
				}
			}
			return nil
		},
	}
}

func itemNoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "note <item-id> <text>...",
		Short: "Replace an item's notes (empty text clears them)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEntityID(args[0], "item"); err != nil {
				return err
			}
			notes := strings.Join(args[1:], " ")

			item, err := wire.ProjectService().AnnotateChecklistItem(NewContext(), args[0], notes)
			if err != nil {
				return err
			}
			if item.Notes == "" {
				fmt.Printf("✓ Cleared notes on %s\n", item.ID)
			} else {
				fmt.Printf("✓ Noted %s: %s\n", item.ID, item.Notes)
			}
			return nil
		},
	}
}
