package primary

import "context"

// SurfacingService defines the primary port for promoting checklist items into tasks.
type SurfacingService interface {
	// SurfaceTasks creates tasks for up to count items of the current phase and
	// returns the items that were linked. Failures skip the item.
	SurfaceTasks(ctx context.Context, projectID string, count int) ([]*ChecklistItem, error)
}
