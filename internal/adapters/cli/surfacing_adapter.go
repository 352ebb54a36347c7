package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/launchpad/internal/ports/primary"
)

// SurfacingAdapter translates CLI operations to SurfacingService calls.
type SurfacingAdapter struct {
	service primary.SurfacingService
	out     io.Writer
}

// NewSurfacingAdapter creates a new SurfacingAdapter with the given service.
func NewSurfacingAdapter(service primary.SurfacingService, out io.Writer) *SurfacingAdapter {
	return &SurfacingAdapter{
		service: service,
		out:     out,
	}
}

// Surface creates tasks for the next items of the current phase.
func (a *SurfacingAdapter) Surface(ctx context.Context, projectID string, count int) ([]*primary.ChecklistItem, error) {
	items, err := a.service.SurfaceTasks(ctx, projectID, count)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "Nothing to surface: every open item in the current phase already has a task.")
		return items, nil
	}

	fmt.Fprintf(a.out, "✓ Surfaced %d task(s):\n", len(items))
	for _, item := range items {
		fmt.Fprintf(a.out, "  %s ← %s %s%s\n", item.LinkedTaskID, item.ID, item.ItemText, tagLabels(item.Tags))
	}
	return items, nil
}
