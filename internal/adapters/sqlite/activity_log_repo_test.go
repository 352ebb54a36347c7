package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/launchpad/internal/adapters/sqlite"
	"github.com/example/launchpad/internal/ctxutil"
	"github.com/example/launchpad/internal/ports/secondary"
)

func TestLogWriterAdapter_RecordsActor(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewActivityLogRepository(db)
	writer := sqlite.NewLogWriterAdapter(repo)
	ctx := ctxutil.WithActorID(context.Background(), "sam")

	if err := writer.LogCreate(ctx, "project", "LAUNCH-001"); err != nil {
		t.Fatalf("LogCreate failed: %v", err)
	}
	if err := writer.LogUpdate(ctx, "project", "LAUNCH-001", "current_phase", "SETUP", "LAUNCH"); err != nil {
		t.Fatalf("LogUpdate failed: %v", err)
	}
	if err := writer.LogDelete(context.Background(), "metric", "METRIC-1"); err != nil {
		t.Fatalf("LogDelete failed: %v", err)
	}

	entries, err := repo.List(context.Background(), secondary.ActivityLogFilters{EntityType: "project"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 project entries, got %d", len(entries))
	}
	update := entries[0]
	if update.Action != "update" || update.FieldName != "current_phase" || update.OldValue != "SETUP" || update.NewValue != "LAUNCH" {
		t.Errorf("unexpected update entry %+v", update)
	}
	if update.ActorID != "sam" {
		t.Errorf("expected actor sam, got %q", update.ActorID)
	}

	limited, err := repo.List(context.Background(), secondary.ActivityLogFilters{Limit: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ActorID != "" {
		t.Errorf("expected the unattributed delete entry, got %+v", limited)
	}
}

func TestActivityLogRepository_PruneOlderThan(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewActivityLogRepository(db)
	ctx := context.Background()

	if _, err := db.Exec(`INSERT INTO activity_log (id, entity_type, entity_id, action, created_at)
		VALUES ('LOG-old', 'project', 'LAUNCH-001', 'create', datetime('now', '-45 days'))`); err != nil {
		t.Fatalf("failed to seed old entry: %v", err)
	}
	if err := repo.Create(ctx, &secondary.ActivityLogRecord{EntityType: "project", EntityID: "LAUNCH-002", Action: "create"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := repo.PruneOlderThan(ctx, 30)
	if err != nil {
		t.Fatalf("PruneOlderThan failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 pruned entry, got %d", n)
	}

	remaining, _ := repo.List(ctx, secondary.ActivityLogFilters{})
	if len(remaining) != 1 || remaining[0].EntityID != "LAUNCH-002" {
		t.Errorf("unexpected remaining entries %+v", remaining)
	}
}

func TestRepositories_WriteAuditTrail(t *testing.T) {
	db := setupTestDB(t)
	seedDocument(t, db, "DOC-001", "")
	logRepo := sqlite.NewActivityLogRepository(db)
	writer := sqlite.NewLogWriterAdapter(logRepo)
	projects := sqlite.NewProjectRepository(db, writer)
	items := sqlite.NewChecklistItemRepository(db, writer)
	ctx := ctxutil.WithActorID(context.Background(), "riley")

	records := []*secondary.ChecklistItemRecord{
		{SourceDocumentID: "DOC-001", Phase: "SETUP", ItemText: "Pick a name"},
	}
	if err := projects.CreateWithItems(ctx, newProjectRecord("LAUNCH-001"), records); err != nil {
		t.Fatalf("CreateWithItems failed: %v", err)
	}
	if err := items.MarkCompleted(ctx, records[0].ID); err != nil {
		t.Fatalf("MarkCompleted failed: %v", err)
	}

	projectLog, err := logRepo.List(ctx, secondary.ActivityLogFilters{EntityType: "project", EntityID: "LAUNCH-001"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(projectLog) != 1 || projectLog[0].Action != "create" || projectLog[0].ActorID != "riley" {
		t.Errorf("unexpected project log %+v", projectLog)
	}

	itemLog, err := logRepo.List(ctx, secondary.ActivityLogFilters{EntityType: "checklist_item"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(itemLog) != 1 || itemLog[0].FieldName != "completed" {
		t.Errorf("unexpected item log %+v", itemLog)
	}
}
