package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/example/launchpad/internal/apperr"
	"github.com/example/launchpad/internal/ports/primary"
)

func init() {
	color.NoColor = true
}

// mockProjectService implements primary.ProjectService for testing
type mockProjectService struct {
	listProjectsFn  func(ctx context.Context, filters primary.ProjectFilters) ([]*primary.Project, error)
	listChecklistFn func(ctx context.Context, filters primary.ChecklistFilters) ([]*primary.ChecklistItem, error)
	getProgressFn   func(ctx context.Context, projectID string) (*primary.ProjectProgress, error)
	advanceFn       func(ctx context.Context, projectID string) (*primary.Project, error)

	// Track calls for verification
	lastKeepMetrics bool
}

func (m *mockProjectService) CreateProject(ctx context.Context, req primary.CreateProjectRequest) (*primary.Project, error) {
	return &primary.Project{ID: "LAUNCH-001", Title: req.Title, DocumentIDs: req.DocumentIDs, CurrentPhase: "SETUP", Status: "setup"}, nil
}

func (m *mockProjectService) GetProject(ctx context.Context, projectID string) (*primary.Project, error) {
	return &primary.Project{
		ID:           projectID,
		Title:        "Spring launch",
		Owner:        "sam",
		DocumentIDs:  []string{"DOC-001", "DOC-002"},
		Status:       "setup",
		CurrentPhase: "SETUP",
		CreatedAt:    "2026-01-19T10:00:00Z",
	}, nil
}

func (m *mockProjectService) ListProjects(ctx context.Context, filters primary.ProjectFilters) ([]*primary.Project, error) {
	if m.listProjectsFn != nil {
		return m.listProjectsFn(ctx, filters)
	}
	return nil, nil
}

func (m *mockProjectService) AdvancePhase(ctx context.Context, projectID string) (*primary.Project, error) {
	if m.advanceFn != nil {
		return m.advanceFn(ctx, projectID)
	}
	return &primary.Project{ID: projectID, CurrentPhase: "LAUNCH", Status: "launch"}, nil
}

func (m *mockProjectService) CompleteProject(ctx context.Context, projectID string) (*primary.Project, error) {
	return &primary.Project{ID: projectID, Status: "complete"}, nil
}

func (m *mockProjectService) ResetProject(ctx context.Context, projectID string, keepMetrics bool) (*primary.Project, error) {
	m.lastKeepMetrics = keepMetrics
	return &primary.Project{ID: projectID, Status: "setup", CurrentPhase: "SETUP"}, nil
}

func (m *mockProjectService) SetTargetDate(ctx context.Context, projectID, date string) (*primary.Project, error) {
	return &primary.Project{ID: projectID, TargetLaunchDate: date}, nil
}

func (m *mockProjectService) ListChecklist(ctx context.Context, filters primary.ChecklistFilters) ([]*primary.ChecklistItem, error) {
	if m.listChecklistFn != nil {
		return m.listChecklistFn(ctx, filters)
	}
	return nil, nil
}

func (m *mockProjectService) CompleteChecklistItem(ctx context.Context, itemID string) (*primary.ChecklistItem, error) {
	return &primary.ChecklistItem{ID: itemID, ItemText: "Register domain", Completed: true, LinkedTaskID: "TASK-001"}, nil
}

func (m *mockProjectService) AnnotateChecklistItem(ctx context.Context, itemID, notes string) (*primary.ChecklistItem, error) {
	return &primary.ChecklistItem{ID: itemID, Notes: notes}, nil
}

func (m *mockProjectService) GetProgress(ctx context.Context, projectID string) (*primary.ProjectProgress, error) {
	if m.getProgressFn != nil {
		return m.getProgressFn(ctx, projectID)
	}
	return nil, errors.New("no progress")
}

var _ primary.ProjectService = (*mockProjectService)(nil)

func intPtr(n int) *int { return &n }

func TestProjectAdapter_List_Empty(t *testing.T) {
	var out bytes.Buffer
	adapter := NewProjectAdapter(&mockProjectService{}, &out)

	if _, err := adapter.List(context.Background(), ""); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !strings.Contains(out.String(), "No launches found.") {
		t.Errorf("expected empty message, got:\n%s", out.String())
	}
}

func TestProjectAdapter_List(t *testing.T) {
	var out bytes.Buffer
	service := &mockProjectService{
		listProjectsFn: func(ctx context.Context, filters primary.ProjectFilters) ([]*primary.Project, error) {
			return []*primary.Project{
				{ID: "LAUNCH-002", Status: "launch", CurrentPhase: "LAUNCH", Title: "Beta", TargetLaunchDate: "2026-04-01"},
				{ID: "LAUNCH-001", Status: "setup", CurrentPhase: "SETUP", Title: "Alpha"},
			}, nil
		},
	}
	adapter := NewProjectAdapter(service, &out)

	projects, err := adapter.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(projects) != 2 {
		t.Errorf("expected 2 projects, got %d", len(projects))
	}
	for _, want := range []string{"LAUNCH-002", "2026-04-01", "Alpha", "STATUS"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestProjectAdapter_Show(t *testing.T) {
	var out bytes.Buffer
	adapter := NewProjectAdapter(&mockProjectService{}, &out)

	if _, err := adapter.Show(context.Background(), "LAUNCH-001"); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	for _, want := range []string{"Launch: LAUNCH-001", "Spring launch", "Owner:     sam", "DOC-001, DOC-002"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestProjectAdapter_Checklist(t *testing.T) {
	var out bytes.Buffer
	service := &mockProjectService{
		listChecklistFn: func(ctx context.Context, filters primary.ChecklistFilters) ([]*primary.ChecklistItem, error) {
			return []*primary.ChecklistItem{
				{ID: "ITEM-0001", Phase: "SETUP", Section: "Accounts", ItemText: "Register domain", Tags: []string{"CRITICAL"}, Completed: true},
				{ID: "ITEM-0002", Phase: "SETUP", Section: "Accounts", ItemText: "Buy domain", DueOffset: intPtr(-30), LinkedTaskID: "TASK-004"},
				{ID: "ITEM-0003", Phase: "LAUNCH", ItemText: "Go live", Recurrence: "daily", DueDate: "2026-04-01", Notes: "at 9am"},
			}, nil
		},
	}
	adapter := NewProjectAdapter(service, &out)

	if _, err := adapter.Checklist(context.Background(), primary.ChecklistFilters{ProjectID: "LAUNCH-001"}); err != nil {
		t.Fatalf("Checklist failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"SETUP\n",
		"  Accounts\n",
		"[x] ITEM-0001 Register domain [CRITICAL]",
		"[ ] ITEM-0002 Buy domain (due L-30, → TASK-004)",
		"LAUNCH\n",
		"[ ] ITEM-0003 Go live (due 2026-04-01, daily)",
		"at 9am",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "Accounts") != 1 {
		t.Errorf("section header should print once:\n%s", got)
	}
}

func TestProjectAdapter_Progress(t *testing.T) {
	var out bytes.Buffer
	service := &mockProjectService{
		getProgressFn: func(ctx context.Context, projectID string) (*primary.ProjectProgress, error) {
			return &primary.ProjectProgress{
				Project: &primary.Project{ID: projectID, Title: "Alpha", Status: "setup"},
				Phases: []primary.PhaseProgress{
					{Phase: "SETUP", Current: true, Total: 2, Completed: 1, OpenCritical: 1},
					{Phase: "LAUNCH", Total: 1},
				},
				Overdue: []*primary.ChecklistItem{{ID: "ITEM-0002", ItemText: "Buy domain", DueDate: "2026-03-02"}},
			}, nil
		},
	}
	adapter := NewProjectAdapter(service, &out)

	if _, err := adapter.Progress(context.Background(), "LAUNCH-001"); err != nil {
		t.Fatalf("Progress failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"→ SETUP", "1/2", "1 critical open", "0/1", "Overdue (1):", "ITEM-0002 Buy domain (due 2026-03-02)"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestProjectAdapter_Advance_Blocked(t *testing.T) {
	var out bytes.Buffer
	service := &mockProjectService{
		advanceFn: func(ctx context.Context, projectID string) (*primary.Project, error) {
			return nil, &apperr.PhaseBlockedError{Phase: "SETUP", Blocking: []string{"Register domain"}}
		},
	}
	adapter := NewProjectAdapter(service, &out)

	_, err := adapter.Advance(context.Background(), "LAUNCH-001")
	if !errors.Is(err, apperr.ErrPhaseBlocked) {
		t.Fatalf("expected phase blocked, got %v", err)
	}
	if !strings.Contains(out.String(), "Cannot leave SETUP") || !strings.Contains(out.String(), "[ ] Register domain") {
		t.Errorf("expected blocking list, got:\n%s", out.String())
	}
}

func TestProjectAdapter_Advance(t *testing.T) {
	var out bytes.Buffer
	adapter := NewProjectAdapter(&mockProjectService{}, &out)

	if _, err := adapter.Advance(context.Background(), "LAUNCH-001"); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if !strings.Contains(out.String(), "advanced to LAUNCH") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestProjectAdapter_Reset(t *testing.T) {
	var out bytes.Buffer
	service := &mockProjectService{}
	adapter := NewProjectAdapter(service, &out)

	if _, err := adapter.Reset(context.Background(), "LAUNCH-001", false); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if service.lastKeepMetrics {
		t.Error("expected keepMetrics=false to be passed through")
	}
	if !strings.Contains(out.String(), "Metrics, posting log and check-ins deleted") {
		t.Errorf("expected purge notice, got:\n%s", out.String())
	}
}
