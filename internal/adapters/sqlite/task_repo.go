package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/example/launchpad/internal/apperr"
	"github.com/example/launchpad/internal/ports/secondary"
)

// Task statuses.
const (
	TaskStatusReady    = "ready"
	TaskStatusComplete = "complete"
)

// TaskRepository implements secondary.TaskRepository with SQLite. It is the
// local task ledger surfaced checklist items are promoted into.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite task repository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// scanTask scans a task row into a TaskRecord.
func scanTask(scanner rowScanner) (*secondary.TaskRecord, error) {
	var (
		notes           sql.NullString
		projectID       sql.NullString
		checklistItemID sql.NullString
		createdAt       time.Time
		updatedAt       time.Time
		completedAt     sql.NullTime
	)

	record := &secondary.TaskRecord{}
	err := scanner.Scan(
		&record.ID, &record.Title, &notes, &record.Priority, &record.Status,
		&projectID, &checklistItemID, &createdAt, &updatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Notes = notes.String
	record.ProjectID = projectID.String
	record.ChecklistItemID = checklistItemID.String
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	record.CompletedAt = formatNullTime(completedAt)

	return record, nil
}

const taskSelectCols = "id, title, notes, priority, status, project_id, checklist_item_id, created_at, updated_at, completed_at"

// CreateTask persists a new ready task and returns its ID.
func (r *TaskRepository) CreateTask(ctx context.Context, spec secondary.TaskSpec) (string, error) {
	priority := spec.Priority
	if priority < 1 || priority > 5 {
		priority = 3
	}

	// ID allocation and insert share a transaction so concurrent creators
	// cannot claim the same sequence number.
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", apperr.Store("failed to begin transaction", err)
	}
	defer tx.Rollback()

	id, err := nextSequentialID(ctx, tx, "tasks", "TASK", "%03d")
	if err != nil {
		return "", apperr.Store("failed to get next task ID", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO tasks (id, title, notes, priority, status, project_id, checklist_item_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, spec.Title, nullString(spec.Notes), priority, TaskStatusReady,
		nullString(spec.ProjectID), nullString(spec.ChecklistItemID),
	)
	if err != nil {
		return "", apperr.Store("failed to create task", err)
	}

	if err := tx.Commit(); err != nil {
		return "", apperr.Store("failed to commit task", err)
	}
	return id, nil
}

// CompleteTask marks a task complete. Completing a complete task keeps its completed_at.
func (r *TaskRepository) CompleteTask(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET status = ?, updated_at = CURRENT_TIMESTAMP,
		 completed_at = COALESCE(completed_at, CURRENT_TIMESTAMP) WHERE id = ?`,
		TaskStatusComplete, id,
	)
	if err != nil {
		return apperr.Store("failed to complete task", err)
	}
	return requireAffected(result, "task", id, "failed to complete task")
}

// GetByID retrieves a task by its ID.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*secondary.TaskRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskSelectCols+" FROM tasks WHERE id = ?",
		id,
	)

	record, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("task", id)
	}
	if err != nil {
		return nil, apperr.Store("failed to get task", err)
	}

	return record, nil
}

// List retrieves tasks matching the given filters, highest priority first.
func (r *TaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	query := "SELECT " + taskSelectCols + " FROM tasks WHERE 1=1"
	args := []any{}

	if filters.ProjectID != "" {
		query += " AND project_id = ?"
		args = append(args, filters.ProjectID)
	}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY priority DESC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Store("failed to list tasks", err)
	}
	defer rows.Close()

	var tasks []*secondary.TaskRecord
	for rows.Next() {
		record, err := scanTask(rows)
		if err != nil {
			return nil, apperr.Store("failed to scan task", err)
		}
		tasks = append(tasks, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("failed to list tasks", err)
	}

	return tasks, nil
}

// Ensure TaskRepository implements the interface
var _ secondary.TaskRepository = (*TaskRepository)(nil)
