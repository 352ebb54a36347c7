package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/launchpad/internal/apperr"
	"github.com/example/launchpad/internal/core/launch"
	"github.com/example/launchpad/internal/core/playbook"
	"github.com/example/launchpad/internal/ctxutil"
	"github.com/example/launchpad/internal/logging"
	"github.com/example/launchpad/internal/ports/primary"
	"github.com/example/launchpad/internal/ports/secondary"
)

// ProjectServiceImpl implements the ProjectService interface.
type ProjectServiceImpl struct {
	docRepo     secondary.DocumentRepository
	projectRepo secondary.ProjectRepository
	itemRepo    secondary.ChecklistItemRepository
	taskCreator secondary.TaskCreator
	logger      *zap.Logger
	now         func() time.Time
}

// NewProjectService creates a new ProjectService with injected dependencies.
// taskCreator is optional - if nil, completing an item never touches a task.
func NewProjectService(
	docRepo secondary.DocumentRepository,
	projectRepo secondary.ProjectRepository,
	itemRepo secondary.ChecklistItemRepository,
	taskCreator secondary.TaskCreator,
	logger *zap.Logger,
) *ProjectServiceImpl {
	return &ProjectServiceImpl{
		docRepo:     docRepo,
		projectRepo: projectRepo,
		itemRepo:    itemRepo,
		taskCreator: taskCreator,
		logger:      logging.OrNop(logger),
		now:         time.Now,
	}
}

// CreateProject composes one or more documents into a new project. Every
// document is resolved and parsed before anything is written.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, req primary.CreateProjectRequest) (*primary.Project, error) {
	if len(req.DocumentIDs) == 0 {
		return nil, apperr.Invalid("documents", "at least one document is required")
	}
	if _, err := parseDate("target_launch_date", req.TargetLaunchDate); err != nil {
		return nil, err
	}

	sources := make([]launch.SourceDocument, 0, len(req.DocumentIDs))
	var firstName string
	for _, id := range req.DocumentIDs {
		doc, err := s.docRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		parsed, err := playbook.Parse(doc.RawContent)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", id, err)
		}
		if firstName == "" {
			firstName = doc.Name
		}
		sources = append(sources, launch.SourceDocument{ID: id, Parsed: parsed})
	}

	composition, err := launch.Compose(sources)
	if err != nil {
		return nil, err
	}

	nextID, err := s.projectRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate project ID: %w", err)
	}

	record := &secondary.ProjectRecord{
		ID:               nextID,
		Owner:            ctxutil.ActorFromContext(ctx),
		Title:            firstNonEmpty(req.Title, firstName),
		DocumentIDs:      req.DocumentIDs,
		TargetLaunchDate: req.TargetLaunchDate,
		Status:           launch.StatusSetup,
		CurrentPhase:     composition.FirstPhase(),
		Meta:             req.Meta,
	}

	items := make([]*secondary.ChecklistItemRecord, len(composition.Items))
	for i, it := range composition.Items {
		items[i] = &secondary.ChecklistItemRecord{
			SourceDocumentID: it.SourceDocumentID,
			Phase:            it.Phase,
			Section:          it.Section,
			ItemText:         it.Text,
			SortOrder:        it.SortOrder,
			Tags:             it.Tags,
			DueOffset:        it.DueOffset,
			Recurrence:       string(it.Recurrence),
		}
	}

	if err := s.projectRepo.CreateWithItems(ctx, record, items); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created",
		zap.String("project_id", nextID),
		zap.Strings("document_ids", req.DocumentIDs),
		zap.Int("items", len(items)),
		zap.String("phase", record.CurrentPhase),
		zap.String("request_id", ctxutil.RequestIDFromContext(ctx)),
	)

	return s.GetProject(ctx, nextID)
}

// GetProject retrieves a project by ID.
func (s *ProjectServiceImpl) GetProject(ctx context.Context, projectID string) (*primary.Project, error) {
	record, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return recordToProject(record), nil
}

// ListProjects lists projects with optional filters.
func (s *ProjectServiceImpl) ListProjects(ctx context.Context, filters primary.ProjectFilters) ([]*primary.Project, error) {
	records, err := s.projectRepo.List(ctx, secondary.ProjectFilters{Status: filters.Status})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*primary.Project, len(records))
	for i, r := range records {
		projects[i] = recordToProject(r)
	}
	return projects, nil
}

// AdvancePhase moves a project to its next phase. Nothing changes when an
// incomplete CRITICAL item remains or the current phase is the last one.
func (s *ProjectServiceImpl) AdvancePhase(ctx context.Context, projectID string) (*primary.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.List(ctx, secondary.ChecklistItemFilters{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to load checklist: %w", err)
	}
	progress := toProgressItems(items)

	transition, result := launch.ApplyAdvance(launch.AdvanceContext{
		ProjectID:    projectID,
		Status:       project.Status,
		CurrentPhase: project.CurrentPhase,
		PhaseOrder:   phaseOrder(items),
		OpenCritical: launch.OpenCriticalTexts(progress, project.CurrentPhase),
	})
	if !result.Allowed {
		s.logger.Info("phase advance refused",
			zap.String("project_id", projectID),
			zap.String("phase", project.CurrentPhase),
			zap.String("reason", result.Reason),
		)
		return nil, result.Error()
	}

	if err := s.projectRepo.UpdateState(ctx, projectID, transition.Status, transition.CurrentPhase, false); err != nil {
		return nil, fmt.Errorf("failed to advance project: %w", err)
	}

	s.logger.Info("phase advanced",
		zap.String("project_id", projectID),
		zap.String("from", project.CurrentPhase),
		zap.String("to", transition.CurrentPhase),
		zap.String("status", transition.Status),
	)

	return s.GetProject(ctx, projectID)
}

// CompleteProject marks a project complete from any phase without gating.
func (s *ProjectServiceImpl) CompleteProject(ctx context.Context, projectID string) (*primary.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status == launch.StatusComplete {
		return recordToProject(project), nil
	}

	transition := launch.ApplyComplete(project.CurrentPhase, s.now())
	if err := s.projectRepo.UpdateState(ctx, projectID, transition.Status, transition.CurrentPhase, true); err != nil {
		return nil, fmt.Errorf("failed to complete project: %w", err)
	}

	s.logger.Info("project completed",
		zap.String("project_id", projectID),
		zap.String("phase", project.CurrentPhase),
	)

	return s.GetProject(ctx, projectID)
}

// ResetProject clears progress and returns the project to setup in its first phase.
func (s *ProjectServiceImpl) ResetProject(ctx context.Context, projectID string, keepMetrics bool) (*primary.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.List(ctx, secondary.ChecklistItemFilters{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to load checklist: %w", err)
	}

	transition := launch.ApplyReset(phaseOrder(items), project.CurrentPhase)
	if err := s.projectRepo.Reset(ctx, projectID, transition.CurrentPhase, !keepMetrics); err != nil {
		return nil, fmt.Errorf("failed to reset project: %w", err)
	}

	s.logger.Info("project reset",
		zap.String("project_id", projectID),
		zap.String("phase", transition.CurrentPhase),
		zap.Bool("metrics_purged", !keepMetrics),
	)

	return s.GetProject(ctx, projectID)
}

// SetTargetDate sets (YYYY-MM-DD) or clears (empty) the target launch date.
func (s *ProjectServiceImpl) SetTargetDate(ctx context.Context, projectID, date string) (*primary.Project, error) {
	if _, err := parseDate("target_launch_date", date); err != nil {
		return nil, err
	}
	if err := s.projectRepo.UpdateTargetDate(ctx, projectID, date); err != nil {
		return nil, err
	}
	return s.GetProject(ctx, projectID)
}

// ListChecklist lists a project's checklist items in sort order.
func (s *ProjectServiceImpl) ListChecklist(ctx context.Context, filters primary.ChecklistFilters) ([]*primary.ChecklistItem, error) {
	project, err := s.projectRepo.GetByID(ctx, filters.ProjectID)
	if err != nil {
		return nil, err
	}

	records, err := s.itemRepo.List(ctx, secondary.ChecklistItemFilters{
		ProjectID:      filters.ProjectID,
		Phase:          filters.Phase,
		IncompleteOnly: filters.IncompleteOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist: %w", err)
	}

	launchDate := launchDateOf(project)
	items := make([]*primary.ChecklistItem, len(records))
	for i, r := range records {
		items[i] = recordToChecklistItem(r, launchDate)
	}
	return items, nil
}

// CompleteChecklistItem completes an item. When the item is linked to a task
// the task is completed too; a failure there is logged, not returned.
// Completing an already complete item keeps its original completion time.
func (s *ProjectServiceImpl) CompleteChecklistItem(ctx context.Context, itemID string) (*primary.ChecklistItem, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.MarkCompleted(ctx, itemID); err != nil {
		return nil, fmt.Errorf("failed to complete checklist item: %w", err)
	}

	if item.LinkedTaskID != "" && s.taskCreator != nil {
		if err := s.taskCreator.CompleteTask(ctx, item.LinkedTaskID); err != nil {
			s.logger.Warn("linked task not completed",
				zap.String("item_id", itemID),
				zap.String("task_id", item.LinkedTaskID),
				zap.Error(err),
			)
		}
	}

	return s.getChecklistItem(ctx, itemID)
}

// AnnotateChecklistItem replaces an item's notes.
func (s *ProjectServiceImpl) AnnotateChecklistItem(ctx context.Context, itemID, notes string) (*primary.ChecklistItem, error) {
	if err := s.itemRepo.UpdateNotes(ctx, itemID, notes); err != nil {
		return nil, err
	}
	return s.getChecklistItem(ctx, itemID)
}

// GetProgress summarizes completion per phase and lists overdue items.
func (s *ProjectServiceImpl) GetProgress(ctx context.Context, projectID string) (*primary.ProjectProgress, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	records, err := s.itemRepo.List(ctx, secondary.ChecklistItemFilters{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to load checklist: %w", err)
	}
	progress := toProgressItems(records)

	summary := launch.Summarize(phaseOrder(records), progress)
	phases := make([]primary.PhaseProgress, len(summary))
	for i, p := range summary {
		phases[i] = primary.PhaseProgress{
			Phase:        p.Phase,
			Current:      p.Phase == project.CurrentPhase,
			Total:        p.Total,
			Completed:    p.Completed,
			OpenCritical: p.OpenCritical,
		}
	}

	launchDate := launchDateOf(project)
	byID := make(map[string]*secondary.ChecklistItemRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	var overdue []*primary.ChecklistItem
	for _, late := range launch.Overdue(progress, launchDate, s.now()) {
		overdue = append(overdue, recordToChecklistItem(byID[late.ID], launchDate))
	}

	return &primary.ProjectProgress{
		Project: recordToProject(project),
		Phases:  phases,
		Overdue: overdue,
	}, nil
}

// Helper methods

func (s *ProjectServiceImpl) getChecklistItem(ctx context.Context, itemID string) (*primary.ChecklistItem, error) {
	record, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	var launchDate *time.Time
	if project, err := s.projectRepo.GetByID(ctx, record.ProjectID); err == nil {
		launchDate = launchDateOf(project)
	}
	return recordToChecklistItem(record, launchDate), nil
}

func recordToProject(r *secondary.ProjectRecord) *primary.Project {
	return &primary.Project{
		ID:               r.ID,
		Owner:            r.Owner,
		Title:            r.Title,
		DocumentIDs:      r.DocumentIDs,
		TargetLaunchDate: r.TargetLaunchDate,
		Status:           r.Status,
		CurrentPhase:     r.CurrentPhase,
		Meta:             r.Meta,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		CompletedAt:      r.CompletedAt,
	}
}

func recordToChecklistItem(r *secondary.ChecklistItemRecord, launchDate *time.Time) *primary.ChecklistItem {
	item := &primary.ChecklistItem{
		ID:               r.ID,
		ProjectID:        r.ProjectID,
		SourceDocumentID: r.SourceDocumentID,
		Phase:            r.Phase,
		Section:          r.Section,
		ItemText:         r.ItemText,
		SortOrder:        r.SortOrder,
		Tags:             r.Tags,
		DueOffset:        r.DueOffset,
		Recurrence:       r.Recurrence,
		Completed:        r.Completed,
		CompletedAt:      r.CompletedAt,
		LinkedTaskID:     r.LinkedTaskID,
		Notes:            r.Notes,
	}
	if due, ok := launch.DueDate(launchDate, r.DueOffset); ok {
		item.DueDate = due.Format(launch.DateLayout)
	}
	return item
}

func toProgressItems(records []*secondary.ChecklistItemRecord) []launch.ProgressItem {
	items := make([]launch.ProgressItem, len(records))
	for i, r := range records {
		items[i] = launch.ProgressItem{
			ID:        r.ID,
			Phase:     r.Phase,
			Text:      r.ItemText,
			SortOrder: r.SortOrder,
			Tags:      r.Tags,
			DueOffset: r.DueOffset,
			Completed: r.Completed,
		}
	}
	return items
}

func phaseOrder(records []*secondary.ChecklistItemRecord) []string {
	refs := make([]launch.PhaseRef, len(records))
	for i, r := range records {
		refs[i] = launch.PhaseRef{Phase: r.Phase, SortOrder: r.SortOrder}
	}
	return launch.PhaseOrder(refs)
}

func launchDateOf(project *secondary.ProjectRecord) *time.Time {
	t, err := parseDate("target_launch_date", project.TargetLaunchDate)
	if err != nil || t.IsZero() {
		return nil
	}
	return &t
}

// parseDate parses an optional YYYY-MM-DD value; empty yields the zero time.
func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(launch.DateLayout, value)
	if err != nil {
		return time.Time{}, apperr.Invalid(field, fmt.Sprintf("%q is not a YYYY-MM-DD date", value))
	}
	return t, nil
}

// Ensure ProjectServiceImpl implements the interface
var _ primary.ProjectService = (*ProjectServiceImpl)(nil)
