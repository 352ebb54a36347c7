package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/example/launchpad/internal/apperr"
	"github.com/example/launchpad/internal/ports/secondary"
)

const engineDoc = "# PHASE 1: SETUP\n## Accounts\n- [ ] Register domain [CRITICAL]\n- [ ] Buy domain [DUE:LAUNCH-30]\n# PHASE 2: LAUNCH\n- [ ] Go live [DAILY]"

// Ensure mocks implement the interfaces
var (
	_ secondary.DocumentRepository      = (*mockDocumentRepository)(nil)
	_ secondary.ProjectRepository       = (*mockProjectRepository)(nil)
	_ secondary.ChecklistItemRepository = (*mockChecklistItemRepository)(nil)
	_ secondary.TaskCreator             = (*mockTaskCreator)(nil)
)

// mockDocumentRepository implements secondary.DocumentRepository for testing.
type mockDocumentRepository struct {
	docs      map[string]*secondary.DocumentRecord
	nextID    int
	createErr error
}

func newMockDocumentRepository() *mockDocumentRepository {
	return &mockDocumentRepository{docs: make(map[string]*secondary.DocumentRecord), nextID: 1}
}

// seed stores a document directly.
func (m *mockDocumentRepository) seed(id, name, content string) {
	m.docs[id] = &secondary.DocumentRecord{ID: id, Name: name, DocType: "engine", RawContent: content, Version: "1"}
}

func (m *mockDocumentRepository) Create(ctx context.Context, doc *secondary.DocumentRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	cp := *doc
	m.docs[doc.ID] = &cp
	return nil
}

func (m *mockDocumentRepository) GetByID(ctx context.Context, id string) (*secondary.DocumentRecord, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, apperr.NotFound("document", id)
	}
	cp := *doc
	return &cp, nil
}

func (m *mockDocumentRepository) List(ctx context.Context, filters secondary.DocumentFilters) ([]*secondary.DocumentRecord, error) {
	var result []*secondary.DocumentRecord
	for _, doc := range m.docs {
		if filters.DocType != "" && doc.DocType != filters.DocType {
			continue
		}
		cp := *doc
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockDocumentRepository) UpdateContent(ctx context.Context, id, rawContent, version string) error {
	doc, ok := m.docs[id]
	if !ok {
		return apperr.NotFound("document", id)
	}
	doc.RawContent = rawContent
	doc.Version = version
	return nil
}

func (m *mockDocumentRepository) GetNextID(ctx context.Context) (string, error) {
	id := fmt.Sprintf("DOC-%03d", m.nextID)
	m.nextID++
	return id, nil
}

// mockChecklistItemRepository implements secondary.ChecklistItemRepository for testing.
type mockChecklistItemRepository struct {
	items  map[string]*secondary.ChecklistItemRecord
	nextID int

	// linkedElsewhere simulates a concurrent caller linking the item first.
	linkedElsewhere map[string]string
	linkErr         error
}

func newMockChecklistItemRepository() *mockChecklistItemRepository {
	return &mockChecklistItemRepository{
		items:           make(map[string]*secondary.ChecklistItemRecord),
		nextID:          1,
		linkedElsewhere: make(map[string]string),
	}
}

func (m *mockChecklistItemRepository) GetByID(ctx context.Context, id string) (*secondary.ChecklistItemRecord, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, apperr.NotFound("checklist item", id)
	}
	cp := *item
	return &cp, nil
}

func (m *mockChecklistItemRepository) List(ctx context.Context, filters secondary.ChecklistItemFilters) ([]*secondary.ChecklistItemRecord, error) {
	var result []*secondary.ChecklistItemRecord
	for _, item := range m.items {
		if filters.ProjectID != "" && item.ProjectID != filters.ProjectID {
			continue
		}
		if filters.Phase != "" && item.Phase != filters.Phase {
			continue
		}
		if filters.IncompleteOnly && item.Completed {
			continue
		}
		if filters.UnlinkedOnly && item.LinkedTaskID != "" {
			continue
		}
		cp := *item
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortOrder < result[j].SortOrder })
	return result, nil
}

func (m *mockChecklistItemRepository) MarkCompleted(ctx context.Context, id string) error {
	item, ok := m.items[id]
	if !ok {
		return apperr.NotFound("checklist item", id)
	}
	item.Completed = true
	if item.CompletedAt == "" {
		item.CompletedAt = "2026-10-18T09:00:00Z"
	}
	return nil
}

func (m *mockChecklistItemRepository) LinkTask(ctx context.Context, id, taskID string) (bool, error) {
	if m.linkErr != nil {
		return false, m.linkErr
	}
	item, ok := m.items[id]
	if !ok {
		return false, apperr.NotFound("checklist item", id)
	}
	if other, ok := m.linkedElsewhere[id]; ok && item.LinkedTaskID == "" {
		item.LinkedTaskID = other
	}
	if item.LinkedTaskID != "" {
		return false, nil
	}
	item.LinkedTaskID = taskID
	return true, nil
}

func (m *mockChecklistItemRepository) UpdateNotes(ctx context.Context, id, notes string) error {
	item, ok := m.items[id]
	if !ok {
		return apperr.NotFound("checklist item", id)
	}
	item.Notes = notes
	return nil
}

// mockProjectRepository implements secondary.ProjectRepository for testing.
// It writes checklist items into the shared item mock.
type mockProjectRepository struct {
	projects  map[string]*secondary.ProjectRecord
	items     *mockChecklistItemRepository
	nextID    int
	createErr error
	resets    []resetCall
}

type resetCall struct {
	projectID    string
	phase        string
	purgeMetrics bool
}

func newMockProjectRepository(items *mockChecklistItemRepository) *mockProjectRepository {
	return &mockProjectRepository{
		projects: make(map[string]*secondary.ProjectRecord),
		items:    items,
		nextID:   1,
	}
}

func (m *mockProjectRepository) CreateWithItems(ctx context.Context, project *secondary.ProjectRecord, items []*secondary.ChecklistItemRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	cp := *project
	m.projects[project.ID] = &cp
	for _, item := range items {
		item.ID = fmt.Sprintf("ITEM-%04d", m.items.nextID)
		item.ProjectID = project.ID
		m.items.nextID++
		stored := *item
		m.items.items[item.ID] = &stored
	}
	return nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	project, ok := m.projects[id]
	if !ok {
		return nil, apperr.NotFound("project", id)
	}
	cp := *project
	return &cp, nil
}

func (m *mockProjectRepository) List(ctx context.Context, filters secondary.ProjectFilters) ([]*secondary.ProjectRecord, error) {
	var result []*secondary.ProjectRecord
	for _, project := range m.projects {
		if filters.Status != "" && project.Status != filters.Status {
			continue
		}
		cp := *project
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockProjectRepository) UpdateState(ctx context.Context, id, status, currentPhase string, setCompleted bool) error {
	project, ok := m.projects[id]
	if !ok {
		return apperr.NotFound("project", id)
	}
	project.Status = status
	project.CurrentPhase = currentPhase
	if setCompleted {
		project.CompletedAt = "2026-10-18T09:00:00Z"
	}
	return nil
}

func (m *mockProjectRepository) UpdateTargetDate(ctx context.Context, id, date string) error {
	project, ok := m.projects[id]
	if !ok {
		return apperr.NotFound("project", id)
	}
	project.TargetLaunchDate = date
	return nil
}

func (m *mockProjectRepository) Reset(ctx context.Context, id, currentPhase string, purgeMetrics bool) error {
	project, ok := m.projects[id]
	if !ok {
		return apperr.NotFound("project", id)
	}
	m.resets = append(m.resets, resetCall{projectID: id, phase: currentPhase, purgeMetrics: purgeMetrics})
	project.Status = "setup"
	project.CurrentPhase = currentPhase
	project.CompletedAt = ""
	for _, item := range m.items.items {
		if item.ProjectID != id {
			continue
		}
		item.Completed = false
		item.CompletedAt = ""
		item.LinkedTaskID = ""
	}
	return nil
}

func (m *mockProjectRepository) GetNextID(ctx context.Context) (string, error) {
	id := fmt.Sprintf("LAUNCH-%03d", m.nextID)
	m.nextID++
	return id, nil
}

// mockTaskCreator implements secondary.TaskCreator for testing.
type mockTaskCreator struct {
	created     []secondary.TaskSpec
	completed   []string
	failTitles  map[string]bool
	completeErr error
	nextID      int
}

func newMockTaskCreator() *mockTaskCreator {
	return &mockTaskCreator{failTitles: make(map[string]bool), nextID: 1}
}

func (m *mockTaskCreator) CreateTask(ctx context.Context, spec secondary.TaskSpec) (string, error) {
	if m.failTitles[spec.Title] {
		return "", fmt.Errorf("task tracker unavailable")
	}
	m.created = append(m.created, spec)
	id := fmt.Sprintf("TASK-%03d", m.nextID)
	m.nextID++
	return id, nil
}

func (m *mockTaskCreator) CompleteTask(ctx context.Context, taskID string) error {
	if m.completeErr != nil {
		return m.completeErr
	}
	m.completed = append(m.completed, taskID)
	return nil
}

// launchFixture wires the project and surfacing services over shared mocks.
type launchFixture struct {
	docs      *mockDocumentRepository
	projects  *mockProjectRepository
	items     *mockChecklistItemRepository
	tasks     *mockTaskCreator
	project   *ProjectServiceImpl
	surfacing *SurfacingServiceImpl
}

func newLaunchFixture() *launchFixture {
	docs := newMockDocumentRepository()
	items := newMockChecklistItemRepository()
	projects := newMockProjectRepository(items)
	tasks := newMockTaskCreator()
	return &launchFixture{
		docs:      docs,
		projects:  projects,
		items:     items,
		tasks:     tasks,
		project:   NewProjectService(docs, projects, items, tasks, nil),
		surfacing: NewSurfacingService(projects, items, tasks, nil),
	}
}

// itemIDByText finds a project's item by its text.
func (f *launchFixture) itemIDByText(text string) string {
	for id, item := range f.items.items {
		if item.ItemText == text {
			return id
		}
	}
	return ""
}
