package primary

import "context"

// TaskService defines the primary port for the local task ledger.
type TaskService interface {
	// GetTask retrieves a task by ID.
	GetTask(ctx context.Context, taskID string) (*Task, error)

	// ListTasks lists tasks with optional filters.
	ListTasks(ctx context.Context, filters TaskFilters) ([]*Task, error)

	// CompleteTask marks a task as complete. The checklist item it was
	// surfaced from is not touched.
	CompleteTask(ctx context.Context, taskID string) error
}

// Task represents a task entity at the port boundary.
type Task struct {
	ID              string
	Title           string
	Notes           string
	Priority        int
	Status          string
	ProjectID       string
	ChecklistItemID string
	CreatedAt       string
	UpdatedAt       string
	CompletedAt     string
}

// TaskFilters contains filter options for querying tasks.
type TaskFilters struct {
	ProjectID string
	Status    string
}
