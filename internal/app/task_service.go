package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/launchpad/internal/logging"
	"github.com/example/launchpad/internal/ports/primary"
	"github.com/example/launchpad/internal/ports/secondary"
)

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskRepo secondary.TaskRepository
	logger   *zap.Logger
}

// NewTaskService creates a new TaskService with injected dependencies.
func NewTaskService(taskRepo secondary.TaskRepository, logger *zap.Logger) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskRepo: taskRepo,
		logger:   logging.OrNop(logger),
	}
}

// GetTask retrieves a task by ID.
func (s *TaskServiceImpl) GetTask(ctx context.Context, taskID string) (*primary.Task, error) {
	record, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return recordToTask(record), nil
}

// ListTasks lists tasks with optional filters.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, filters primary.TaskFilters) ([]*primary.Task, error) {
	records, err := s.taskRepo.List(ctx, secondary.TaskFilters{
		ProjectID: filters.ProjectID,
		Status:    filters.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*primary.Task, len(records))
	for i, r := range records {
		tasks[i] = recordToTask(r)
	}
	return tasks, nil
}

// CompleteTask marks a task as complete. The checklist item it came from
// stays open until completed on its own.
func (s *TaskServiceImpl) CompleteTask(ctx context.Context, taskID string) error {
	if err := s.taskRepo.CompleteTask(ctx, taskID); err != nil {
		return err
	}
	s.logger.Debug("task completed", zap.String("task_id", taskID))
	return nil
}

// Helper functions

func recordToTask(r *secondary.TaskRecord) *primary.Task {
	return &primary.Task{
		ID:              r.ID,
		Title:           r.Title,
		Notes:           r.Notes,
		Priority:        r.Priority,
		Status:          r.Status,
		ProjectID:       r.ProjectID,
		ChecklistItemID: r.ChecklistItemID,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		CompletedAt:     r.CompletedAt,
	}
}

// Ensure TaskServiceImpl implements the interface
var _ primary.TaskService = (*TaskServiceImpl)(nil)
