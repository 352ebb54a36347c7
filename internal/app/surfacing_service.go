package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/launchpad/internal/core/launch"
	"github.com/example/launchpad/internal/logging"
	"github.com/example/launchpad/internal/ports/primary"
	"github.com/example/launchpad/internal/ports/secondary"
)

// SurfacingServiceImpl implements the SurfacingService interface.
type SurfacingServiceImpl struct {
	projectRepo secondary.ProjectRepository
	itemRepo    secondary.ChecklistItemRepository
	taskCreator secondary.TaskCreator
	logger      *zap.Logger
}

// NewSurfacingService creates a new SurfacingService with injected dependencies.
func NewSurfacingService(
	projectRepo secondary.ProjectRepository,
	itemRepo secondary.ChecklistItemRepository,
	taskCreator secondary.TaskCreator,
	logger *zap.Logger,
) *SurfacingServiceImpl {
	return &SurfacingServiceImpl{
		projectRepo: projectRepo,
		itemRepo:    itemRepo,
		taskCreator: taskCreator,
		logger:      logging.OrNop(logger),
	}
}

// SurfaceTasks promotes up to count items of the current phase into tasks.
// Each item is handled on its own: a failed task creation or a link lost to a
// concurrent caller skips that item, and only linked items are returned.
func (s *SurfacingServiceImpl) SurfaceTasks(ctx context.Context, projectID string, count int) ([]*primary.ChecklistItem, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	records, err := s.itemRepo.List(ctx, secondary.ChecklistItemFilters{
		ProjectID:      projectID,
		Phase:          project.CurrentPhase,
		IncompleteOnly: true,
		UnlinkedOnly:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	byID := make(map[string]*secondary.ChecklistItemRecord, len(records))
	candidates := make([]launch.Candidate, len(records))
	for i, r := range records {
		byID[r.ID] = r
		candidates[i] = launch.Candidate{
			ID:           r.ID,
			Phase:        r.Phase,
			SortOrder:    r.SortOrder,
			Tags:         r.Tags,
			Completed:    r.Completed,
			LinkedTaskID: r.LinkedTaskID,
		}
	}

	launchDate := launchDateOf(project)
	var surfaced []*primary.ChecklistItem
	for _, c := range launch.SelectForSurfacing(candidates, project.CurrentPhase, count) {
		record := byID[c.ID]

		taskID, err := s.taskCreator.CreateTask(ctx, secondary.TaskSpec{
			Title:           record.ItemText,
			Notes:           taskNotes(project, record),
			Priority:        launch.TaskPriority(record.Tags),
			ProjectID:       projectID,
			ChecklistItemID: record.ID,
		})
		if err != nil {
			s.logger.Warn("task creation failed, item skipped",
				zap.String("project_id", projectID),
				zap.String("item_id", record.ID),
				zap.Error(err),
			)
			continue
		}

		linked, err := s.itemRepo.LinkTask(ctx, record.ID, taskID)
		if err != nil {
			s.logger.Warn("task link failed, item skipped",
				zap.String("item_id", record.ID),
				zap.String("task_id", taskID),
				zap.Error(err),
			)
			continue
		}
		if !linked {
			s.logger.Warn("item already linked by another caller",
				zap.String("item_id", record.ID),
				zap.String("orphan_task_id", taskID),
			)
			continue
		}

		record.LinkedTaskID = taskID
		surfaced = append(surfaced, recordToChecklistItem(record, launchDate))
	}

	s.logger.Info("tasks surfaced",
		zap.String("project_id", projectID),
		zap.String("phase", project.CurrentPhase),
		zap.Int("requested", count),
		zap.Int("surfaced", len(surfaced)),
	)

	return surfaced, nil
}

// taskNotes records where a surfaced task came from.
func taskNotes(project *secondary.ProjectRecord, item *secondary.ChecklistItemRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Launch: %s (%s)\n", project.Title, project.ID)
	fmt.Fprintf(&b, "Phase: %s\n", item.Phase)
	if item.Section != "" {
		fmt.Fprintf(&b, "Section: %s\n", item.Section)
	}
	if len(item.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(item.Tags, ", "))
	}
	fmt.Fprintf(&b, "Checklist item: %s", item.ID)
	return b.String()
}

// Ensure SurfacingServiceImpl implements the interface
var _ primary.SurfacingService = (*SurfacingServiceImpl)(nil)
