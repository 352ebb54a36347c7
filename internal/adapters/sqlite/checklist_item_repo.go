package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/launchpad/internal/apperr"
	"github.com/example/launchpad/internal/ports/secondary"
)

// ChecklistItemRepository implements secondary.ChecklistItemRepository with SQLite.
type ChecklistItemRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewChecklistItemRepository creates a new SQLite checklist item repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewChecklistItemRepository(db *sql.DB, logWriter secondary.LogWriter) *ChecklistItemRepository {
	return &ChecklistItemRepository{db: db, logWriter: logWriter}
}

const checklistItemSelectCols = "id, project_id, source_document_id, phase, section, item_text, sort_order, tags, due_offset, recurrence, completed, completed_at, linked_task_id, notes, created_at"

func scanChecklistItem(scanner rowScanner) (*secondary.ChecklistItemRecord, error) {
	var (
		section      sql.NullString
		tags         string
		dueOffset    sql.NullInt64
		recurrence   sql.NullString
		completed    bool
		completedAt  sql.NullTime
		linkedTaskID sql.NullString
		notes        sql.NullString
		createdAt    time.Time
	)

	record := &secondary.ChecklistItemRecord{}
	err := scanner.Scan(
		&record.ID, &record.ProjectID, &record.SourceDocumentID, &record.Phase, &section, &record.ItemText,
		&record.SortOrder, &tags, &dueOffset, &recurrence, &completed, &completedAt, &linkedTaskID, &notes, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	record.Section = section.String
	record.Recurrence = recurrence.String
	record.Completed = completed
	record.CompletedAt = formatNullTime(completedAt)
	record.LinkedTaskID = linkedTaskID.String
	record.Notes = notes.String
	record.CreatedAt = formatTime(createdAt)
	if dueOffset.Valid {
		offset := int(dueOffset.Int64)
		record.DueOffset = &offset
	}
	if record.Tags, err = decodeStrings(tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	return record, nil
}

// GetByID retrieves an item by its ID.
func (r *ChecklistItemRepository) GetByID(ctx context.Context, id string) (*secondary.ChecklistItemRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+checklistItemSelectCols+" FROM checklist_items WHERE id = ?", id)

	record, err := scanChecklistItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("checklist item", id)
	}
	if err != nil {
		return nil, apperr.Store("failed to get checklist item", err)
	}
	return record, nil
}

// List retrieves items matching the given filters, ordered by sort order.
func (r *ChecklistItemRepository) List(ctx context.Context, filters secondary.ChecklistItemFilters) ([]*secondary.ChecklistItemRecord, error) {
	query := "SELECT " + checklistItemSelectCols + " FROM checklist_items WHERE 1=1"
	args := []any{}

	if filters.ProjectID != "" {
		query += " AND project_id = ?"
		args = append(args, filters.ProjectID)
	}
	if filters.Phase != "" {
		query += " AND phase = ?"
		args = append(args, filters.Phase)
	}
	if filters.IncompleteOnly {
		query += " AND completed = 0"
	}
	if filters.UnlinkedOnly {
		query += " AND linked_task_id IS NULL"
	}
	query += " ORDER BY sort_order ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Store("failed to list checklist items", err)
	}
	defer rows.Close()

	var items []*secondary.ChecklistItemRecord
	for rows.Next() {
		record, err := scanChecklistItem(rows)
		if err != nil {
			return nil, apperr.Store("failed to scan checklist item", err)
		}
		items = append(items, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("failed to list checklist items", err)
	}
	return items, nil
}

// MarkCompleted sets the completed flag, keeping an existing completed_at.
func (r *ChecklistItemRepository) MarkCompleted(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE checklist_items SET completed = 1, completed_at = COALESCE(completed_at, CURRENT_TIMESTAMP) WHERE id = ?",
		id,
	)
	if err != nil {
		return apperr.Store("failed to complete checklist item", err)
	}
	if err := requireAffected(result, "checklist item", id, "failed to complete checklist item"); err != nil {
		return err
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "checklist_item", id, "completed", "", "true")
	}
	return nil
}

// LinkTask sets linked_task_id only if it is still empty.
func (r *ChecklistItemRepository) LinkTask(ctx context.Context, id, taskID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE checklist_items SET linked_task_id = ? WHERE id = ? AND linked_task_id IS NULL",
		taskID, id,
	)
	if err != nil {
		return false, apperr.Store("failed to link task", err)
	}
	ok, err := checkAffected(result)
	if err != nil {
		return false, apperr.Store("failed to link task", err)
	}
	if ok {
		if r.logWriter != nil {
			_ = r.logWriter.LogUpdate(ctx, "checklist_item", id, "linked_task_id", "", taskID)
		}
		return true, nil
	}

	// Distinguish a lost race from an unknown item.
	if _, err := r.GetByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

// UpdateNotes replaces the free-form notes of an item.
func (r *ChecklistItemRepository) UpdateNotes(ctx context.Context, id, notes string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE checklist_items SET notes = ? WHERE id = ?", nullString(notes), id)
	if err != nil {
		return apperr.Store("failed to update checklist item notes", err)
	}
	return requireAffected(result, "checklist item", id, "failed to update checklist item notes")
}

var _ secondary.ChecklistItemRepository = (*ChecklistItemRepository)(nil)
