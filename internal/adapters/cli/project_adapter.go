// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/launchpad/internal/apperr"
	"github.com/example/launchpad/internal/ports/primary"
)

// ProjectAdapter is a thin adapter that translates CLI operations to ProjectService calls.
// It depends only on the ProjectService interface, enabling easy testing with mocks.
type ProjectAdapter struct {
	service primary.ProjectService
	out     io.Writer
}

// NewProjectAdapter creates a new ProjectAdapter with the given service.
func NewProjectAdapter(service primary.ProjectService, out io.Writer) *ProjectAdapter {
	return &ProjectAdapter{
		service: service,
		out:     out,
	}
}

// Create composes documents into a new project.
func (a *ProjectAdapter) Create(ctx context.Context, req primary.CreateProjectRequest) (*primary.Project, error) {
	project, err := a.service.CreateProject(ctx, req)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Created launch %s: %s\n", project.ID, project.Title)
	fmt.Fprintf(a.out, "  Documents: %s\n", strings.Join(project.DocumentIDs, ", "))
	fmt.Fprintf(a.out, "  Phase:     %s\n", project.CurrentPhase)
	if project.TargetLaunchDate != "" {
		fmt.Fprintf(a.out, "  Launch:    %s\n", project.TargetLaunchDate)
	}
	return project, nil
}

// List lists projects with optional status filter.
func (a *ProjectAdapter) List(ctx context.Context, status string) ([]*primary.Project, error) {
	projects, err := a.service.ListProjects(ctx, primary.ProjectFilters{Status: status})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Fprintln(a.out, "No launches found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Create your first launch:")
		fmt.Fprintln(a.out, "  launchpad project create DOC-001")
		return projects, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPHASE\tLAUNCH\tTITLE")
	fmt.Fprintln(w, "--\t------\t-----\t------\t-----")
	for _, p := range projects {
		launch := p.TargetLaunchDate
		if launch == "" {
			launch = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Status, p.CurrentPhase, launch, p.Title)
	}
	w.Flush()
	return projects, nil
}

// Show displays details for a single project.
func (a *ProjectAdapter) Show(ctx context.Context, projectID string) (*primary.Project, error) {
	project, err := a.service.GetProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	fmt.Fprintf(a.out, "\nLaunch: %s\n", project.ID)
	fmt.Fprintf(a.out, "Title:     %s\n", project.Title)
	fmt.Fprintf(a.out, "Status:    %s\n", statusLabel(project.Status))
	fmt.Fprintf(a.out, "Phase:     %s\n", project.CurrentPhase)
	if project.Owner != "" {
		fmt.Fprintf(a.out, "Owner:     %s\n", project.Owner)
	}
	if project.TargetLaunchDate != "" {
		fmt.Fprintf(a.out, "Launch:    %s\n", project.TargetLaunchDate)
	}
	fmt.Fprintf(a.out, "Documents: %s\n", strings.Join(project.DocumentIDs, ", "))
	for k, v := range project.Meta {
		fmt.Fprintf(a.out, "  %s: %s\n", k, v)
	}
	fmt.Fprintf(a.out, "Created:   %s\n", project.CreatedAt)
	if project.CompletedAt != "" {
		fmt.Fprintf(a.out, "Completed: %s\n", project.CompletedAt)
	}
	fmt.Fprintln(a.out)

	return project, nil
}

// Checklist prints items grouped by phase and section.
func (a *ProjectAdapter) Checklist(ctx context.Context, filters primary.ChecklistFilters) ([]*primary.ChecklistItem, error) {
	items, err := a.service.ListChecklist(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist: %w", err)
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "No checklist items found.")
		return items, nil
	}

	phase, section := "", ""
	for _, item := range items {
		if item.Phase != phase {
			phase, section = item.Phase, ""
			fmt.Fprintf(a.out, "\n%s\n", color.New(color.Bold).Sprint(phase))
		}
		if item.Section != section {
			section = item.Section
			if section != "" {
				fmt.Fprintf(a.out, "  %s\n", section)
			}
		}
		fmt.Fprintf(a.out, "  %s %s %s%s%s\n", checkbox(item.Completed), item.ID, item.ItemText, tagLabels(item.Tags), itemSuffix(item))
		if item.Notes != "" {
			fmt.Fprintf(a.out, "        %s\n", item.Notes)
		}
	}
	fmt.Fprintln(a.out)
	return items, nil
}

// Progress prints per-phase completion and overdue items.
func (a *ProjectAdapter) Progress(ctx context.Context, projectID string) (*primary.ProjectProgress, error) {
	progress, err := a.service.GetProgress(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	fmt.Fprintf(a.out, "\n%s: %s [%s]\n\n", progress.Project.ID, progress.Project.Title, statusLabel(progress.Project.Status))
	for _, p := range progress.Phases {
		marker := "  "
		if p.Current {
			marker = color.New(color.FgHiMagenta).Sprint("→ ")
		}
		line := fmt.Sprintf("%s%-20s %s %d/%d", marker, p.Phase, progressBar(p.Completed, p.Total, 20), p.Completed, p.Total)
		if p.OpenCritical > 0 {
			line += color.New(color.FgRed).Sprintf("  %d critical open", p.OpenCritical)
		}
		fmt.Fprintln(a.out, line)
	}

	if len(progress.Overdue) > 0 {
		fmt.Fprintf(a.out, "\n%s\n", color.New(color.FgRed, color.Bold).Sprintf("Overdue (%d):", len(progress.Overdue)))
		for _, item := range progress.Overdue {
			fmt.Fprintf(a.out, "  %s %s (due %s)\n", item.ID, item.ItemText, item.DueDate)
		}
	}
	fmt.Fprintln(a.out)
	return progress, nil
}

// Advance moves a project to its next phase, listing blocking items on refusal.
func (a *ProjectAdapter) Advance(ctx context.Context, projectID string) (*primary.Project, error) {
	project, err := a.service.AdvancePhase(ctx, projectID)
	if err != nil {
		var blocked *apperr.PhaseBlockedError
		if errors.As(err, &blocked) {
			fmt.Fprintf(a.out, "✗ Cannot leave %s: %d critical item(s) open\n", blocked.Phase, len(blocked.Blocking))
			for _, text := range blocked.Blocking {
				fmt.Fprintf(a.out, "  %s %s\n", checkbox(false), text)
			}
		}
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Launch %s advanced to %s\n", project.ID, project.CurrentPhase)
	return project, nil
}

// Complete marks a project complete.
func (a *ProjectAdapter) Complete(ctx context.Context, projectID string) (*primary.Project, error) {
	project, err := a.service.CompleteProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Launch %s complete\n", project.ID)
	return project, nil
}

// Reset returns a project to setup.
func (a *ProjectAdapter) Reset(ctx context.Context, projectID string, keepMetrics bool) (*primary.Project, error) {
	project, err := a.service.ResetProject(ctx, projectID, keepMetrics)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Launch %s reset to %s\n", project.ID, project.CurrentPhase)
	if !keepMetrics {
		fmt.Fprintln(a.out, "  Metrics, posting log and check-ins deleted")
	}
	return project, nil
}

// CompleteItem completes a checklist item.
func (a *ProjectAdapter) CompleteItem(ctx context.Context, itemID string) (*primary.ChecklistItem, error) {
	item, err := a.service.CompleteChecklistItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Completed %s: %s\n", item.ID, item.ItemText)
	if item.LinkedTaskID != "" {
		fmt.Fprintf(a.out, "  Linked task: %s\n", item.LinkedTaskID)
	}
	return item, nil
}
