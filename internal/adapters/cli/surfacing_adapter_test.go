package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/example/launchpad/internal/ports/primary"
)

type mockSurfacingService struct {
	items     []*primary.ChecklistItem
	lastCount int
}

func (m *mockSurfacingService) SurfaceTasks(ctx context.Context, projectID string, count int) ([]*primary.ChecklistItem, error) {
	m.lastCount = count
	return m.items, nil
}

func TestSurfacingAdapter_Surface(t *testing.T) {
	var out bytes.Buffer
	service := &mockSurfacingService{items: []*primary.ChecklistItem{
		{ID: "ITEM-0001", ItemText: "Register domain", Tags: []string{"CRITICAL"}, LinkedTaskID: "TASK-001"},
		{ID: "ITEM-0002", ItemText: "Buy domain", LinkedTaskID: "TASK-002"},
	}}
	adapter := NewSurfacingAdapter(service, &out)

	if _, err := adapter.Surface(context.Background(), "LAUNCH-001", 3); err != nil {
		t.Fatalf("Surface failed: %v", err)
	}
	if service.lastCount != 3 {
		t.Errorf("expected count 3 passed through, got %d", service.lastCount)
	}
	got := out.String()
	for _, want := range []string{"Surfaced 2 task(s)", "TASK-001 ← ITEM-0001 Register domain [CRITICAL]", "TASK-002 ← ITEM-0002 Buy domain"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestSurfacingAdapter_Surface_Nothing(t *testing.T) {
	var out bytes.Buffer
	adapter := NewSurfacingAdapter(&mockSurfacingService{}, &out)

	if _, err := adapter.Surface(context.Background(), "LAUNCH-001", 5); err != nil {
		t.Fatalf("Surface failed: %v", err)
	}
	if !strings.Contains(out.String(), "Nothing to surface") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
