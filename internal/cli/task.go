package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/launchpad/internal/ports/primary"
	"github.com/example/launchpad/internal/wire"
)

// TaskCmd returns the task command group
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage surfaced tasks",
		Long:  "List, inspect and complete tasks in the local ledger",
	}
	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskShowCmd())
	cmd.AddCommand(taskCompleteCmd())
	return cmd
}

func getStatusIcon(status string) string {
	if status == "complete" {
		return color.New(color.FgGreen).Sprint("✓")
	}
	return "○"
}

func taskListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, _ := cmd.Flags().GetString("project")
			status, _ := cmd.Flags().GetString("status")
			if err := validateEntityID(projectID, "project"); err != nil {
				return err
			}

			tasks, err := wire.TaskService().ListTasks(NewContext(), primary.TaskFilters{
				ProjectID: projectID,
				Status:    status,
			})
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			fmt.Printf("Found %d task(s):\n\n", len(tasks))
			for _, task := range tasks {
				fmt.Printf("%s %s: %s [P%d]\n", getStatusIcon(task.Status), task.ID, task.Title, task.Priority)
				if task.ChecklistItemID != "" {
					fmt.Printf("   Item: %s (%s)\n", task.ChecklistItemID, task.ProjectID)
				}
			}
			return nil
		},
	}
	cmd.Flags().String("project", "", "Filter by launch")
	cmd.Flags().String("status", "", "Filter by status (ready, complete)")
	return cmd
}

func taskShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEntityID(args[0], "task"); err != nil {
				return err
			}
			task, err := wire.TaskService().GetTask(NewContext(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get task: %w", err)
			}

			fmt.Printf("\nTask: %s\n", task.ID)
			fmt.Printf("Title:    %s\n", task.Title)
			fmt.Printf("Status:   %s\n", task.Status)
			fmt.Printf("Priority: %d\n", task.Priority)
			if task.ChecklistItemID != "" {
				fmt.Printf("Item:     %s\n", task.ChecklistItemID)
			}
			if task.CompletedAt != "" {
				fmt.Printf("Done:     %s\n", task.CompletedAt)
			}
			if task.Notes != "" {
				fmt.Printf("\n%s\n", task.Notes)
			}
			fmt.Println()
			return nil
		},
	}
}

func taskCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Mark a task complete",
		Long: `Mark a task complete. The checklist item it was surfaced from stays open;
complete it with 'launchpad item complete'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateEntityID(args[0], "task"); err != nil {
				return err
			}
			if err := wire.TaskService().CompleteTask(NewContext(), args[0]); err != nil {
				return fmt.Errorf("failed to complete task: %w", err)
			}
			fmt.Printf("✓ Task %s complete\n", args[0])
			return nil
		},
	}
}
