package secondary

import "context"

// TaskCreator is the external task tracker that surfaced checklist items are
// promoted into. Completion flows one way: checklist -> task.
type TaskCreator interface {
	// CreateTask creates an actionable task and returns its ID.
	CreateTask(ctx context.Context, spec TaskSpec) (string, error)

	// CompleteTask marks a task done. Completing an already complete task is not an error.
	CompleteTask(ctx context.Context, taskID string) error
}

// TaskSpec describes a task to create.
type TaskSpec struct {
	Title           string
	Notes           string
	Priority        int // 5 critical, 4 high, 3 normal
	ProjectID       string
	ChecklistItemID string
}

// TaskRepository is the local task ledger. It also serves as the default TaskCreator.
type TaskRepository interface {
	TaskCreator

	// GetByID retrieves a task by its ID.
	GetByID(ctx context.Context, id string) (*TaskRecord, error)

	// List retrieves tasks matching the given filters.
	List(ctx context.Context, filters TaskFilters) ([]*TaskRecord, error)
}

// TaskRecord represents a task as stored in persistence.
type TaskRecord struct {
	ID              string
	Title           string
	Notes           string // Empty string means null
	Priority        int
	Status          string // ready, complete
	ProjectID       string // Empty string means null
	ChecklistItemID string // Empty string means null
	CreatedAt       string
	UpdatedAt       string
	CompletedAt     string // Empty string means null
}

// TaskFilters contains filter options for querying tasks.
type TaskFilters struct {
	ProjectID string
	Status    string
}
