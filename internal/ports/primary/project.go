package primary

import "context"

// ProjectService defines the primary port for launch project operations.
type ProjectService interface {
	// CreateProject composes one or more documents into a new project.
	CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error)

	// GetProject retrieves a project by ID.
	GetProject(ctx context.Context, projectID string) (*Project, error)

	// ListProjects lists projects with optional filters.
	ListProjects(ctx context.Context, filters ProjectFilters) ([]*Project, error)

	// AdvancePhase moves a project to its next phase when no CRITICAL item blocks it.
	AdvancePhase(ctx context.Context, projectID string) (*Project, error)

	// CompleteProject marks a project complete without gating.
	CompleteProject(ctx context.Context, projectID string) (*Project, error)

	// ResetProject clears progress and returns the project to setup.
	// When keepMetrics is false, metrics, posting log and check-ins are deleted.
	ResetProject(ctx context.Context, projectID string, keepMetrics bool) (*Project, error)

	// SetTargetDate sets (YYYY-MM-DD) or clears (empty) the target launch date.
	SetTargetDate(ctx context.Context, projectID, date string) (*Project, error)

	// ListChecklist lists a project's checklist items in sort order.
	ListChecklist(ctx context.Context, filters ChecklistFilters) ([]*ChecklistItem, error)

	// CompleteChecklistItem completes an item and its linked task, if any.
	CompleteChecklistItem(ctx context.Context, itemID string) (*ChecklistItem, error)

	// AnnotateChecklistItem replaces an item's notes.
	AnnotateChecklistItem(ctx context.Context, itemID, notes string) (*ChecklistItem, error)

	// GetProgress summarizes completion per phase and lists overdue items.
	GetProgress(ctx context.Context, projectID string) (*ProjectProgress, error)
}

// CreateProjectRequest contains parameters for creating a project.
type CreateProjectRequest struct {
	DocumentIDs      []string
	Title            string // Optional, defaults to the first document's name
	TargetLaunchDate string // Optional, YYYY-MM-DD
	Meta             map[string]string
}

// Project represents a launch project at the port boundary.
type Project struct {
	ID               string
	Owner            string
	Title            string
	DocumentIDs      []string
	TargetLaunchDate string
	Status           string
	CurrentPhase     string
	Meta             map[string]string
	CreatedAt        string
	UpdatedAt        string
	CompletedAt      string
}

// ProjectFilters contains filter options for querying projects.
type ProjectFilters struct {
	Status string
}

// ChecklistItem represents a checklist item at the port boundary.
type ChecklistItem struct {
	ID               string
	ProjectID        string
	SourceDocumentID string
	Phase            string
	Section          string
	ItemText         string
	SortOrder        int
	Tags             []string
	DueOffset        *int
	DueDate          string // Resolved against the target launch date when known
	Recurrence       string
	Completed        bool
	CompletedAt      string
	LinkedTaskID     string
	Notes            string
}

// ChecklistFilters contains filter options for querying checklist items.
type ChecklistFilters struct {
	ProjectID      string
	Phase          string
	IncompleteOnly bool
}

// ProjectProgress summarizes a project's checklist.
type ProjectProgress struct {
	Project *Project
	Phases  []PhaseProgress
	Overdue []*ChecklistItem
}

// PhaseProgress summarizes one phase of a project.
type PhaseProgress struct {
	Phase        string
	Current      bool
	Total        int
	Completed    int
	OpenCritical int
}
