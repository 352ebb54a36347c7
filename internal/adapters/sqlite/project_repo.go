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

// ProjectRepository implements secondary.ProjectRepository with SQLite.
type ProjectRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewProjectRepository creates a new SQLite project repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewProjectRepository(db *sql.DB, logWriter secondary.LogWriter) *ProjectRepository {
	return &ProjectRepository{db: db, logWriter: logWriter}
}

const projectSelectCols = "id, owner, title, document_ids, target_launch_date, status, current_phase, meta, created_at, updated_at, completed_at"

func scanProject(scanner rowScanner) (*secondary.ProjectRecord, error) {
	var (
		owner       sql.NullString
		documentIDs string
		targetDate  sql.NullString
		meta        sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
		completedAt sql.NullTime
	)

	record := &secondary.ProjectRecord{}
	err := scanner.Scan(
		&record.ID, &owner, &record.Title, &documentIDs, &targetDate,
		&record.Status, &record.CurrentPhase, &meta, &createdAt, &updatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Owner = owner.String
	record.TargetLaunchDate = targetDate.String
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	record.CompletedAt = formatNullTime(completedAt)

	if record.DocumentIDs, err = decodeStrings(documentIDs); err != nil {
		return nil, fmt.Errorf("failed to decode document ids: %w", err)
	}
	if record.Meta, err = decodeMeta(meta); err != nil {
		return nil, fmt.Errorf("failed to decode meta: %w", err)
	}
	return record, nil
}

// CreateWithItems persists a project and its checklist in one transaction.
func (r *ProjectRepository) CreateWithItems(ctx context.Context, project *secondary.ProjectRecord, items []*secondary.ChecklistItemRecord) error {
	documentIDs, err := encodeStrings(project.DocumentIDs)
	if err != nil {
		return fmt.Errorf("failed to encode document ids: %w", err)
	}
	meta, err := encodeMeta(project.Meta)
	if err != nil {
		return fmt.Errorf("failed to encode meta: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Store("failed to begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO projects (id, owner, title, document_ids, target_launch_date, status, current_phase, meta)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID, nullString(project.Owner), project.Title, documentIDs,
		nullString(project.TargetLaunchDate), project.Status, project.CurrentPhase, meta,
	)
	if err != nil {
		return apperr.Store("failed to create project", err)
	}

	for _, item := range items {
		id, err := nextSequentialID(ctx, tx, "checklist_items", "ITEM", "%04d")
		if err != nil {
			return apperr.Store("failed to get next item ID", err)
		}
		tags, err := encodeStrings(item.Tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO checklist_items (id, project_id, source_document_id, phase, section, item_text, sort_order, tags, due_offset, recurrence)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, project.ID, item.SourceDocumentID, item.Phase, nullString(item.Section), item.ItemText,
			item.SortOrder, tags, nullInt(item.DueOffset), nullString(item.Recurrence),
		)
		if err != nil {
			return apperr.Store("failed to create checklist item", err)
		}
		item.ID = id
		item.ProjectID = project.ID
	}

	if err := tx.Commit(); err != nil {
		return apperr.Store("failed to commit project", err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "project", project.ID)
	}
	return nil
}

// GetByID retrieves a project by its ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+projectSelectCols+" FROM projects WHERE id = ?", id)

	record, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("project", id)
	}
	if err != nil {
		return nil, apperr.Store("failed to get project", err)
	}
	return record, nil
}

// List retrieves projects matching the given filters.
func (r *ProjectRepository) List(ctx context.Context, filters secondary.ProjectFilters) ([]*secondary.ProjectRecord, error) {
	query := "SELECT " + projectSelectCols + " FROM projects WHERE 1=1"
	args := []any{}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.Owner != "" {
		query += " AND owner = ?"
		args = append(args, filters.Owner)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Store("failed to list projects", err)
	}
	defer rows.Close()

	var projects []*secondary.ProjectRecord
	for rows.Next() {
		record, err := scanProject(rows)
		if err != nil {
			return nil, apperr.Store("failed to scan project", err)
		}
		projects = append(projects, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("failed to list projects", err)
	}
	return projects, nil
}

// UpdateState sets status and current phase, optionally stamping completed_at.
func (r *ProjectRepository) UpdateState(ctx context.Context, id, status, currentPhase string, setCompleted bool) error {
	query := "UPDATE projects SET status = ?, current_phase = ?, updated_at = CURRENT_TIMESTAMP"
	if setCompleted {
		query += ", completed_at = CURRENT_TIMESTAMP"
	}
	query += " WHERE id = ?"

	result, err := r.db.ExecContext(ctx, query, status, currentPhase, id)
	if err != nil {
		return apperr.Store("failed to update project state", err)
	}
	if err := requireAffected(result, "project", id, "failed to update project state"); err != nil {
		return err
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "project", id, "status", "", status)
	}
	return nil
}

// UpdateTargetDate sets or clears (empty string) the target launch date.
func (r *ProjectRepository) UpdateTargetDate(ctx context.Context, id, date string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE projects SET target_launch_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		nullString(date), id,
	)
	if err != nil {
		return apperr.Store("failed to update target date", err)
	}
	if err := requireAffected(result, "project", id, "failed to update target date"); err != nil {
		return err
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "project", id, "target_launch_date", "", date)
	}
	return nil
}

// Reset clears item progress and returns the project to setup in one transaction.
func (r *ProjectRepository) Reset(ctx context.Context, id, currentPhase string, purgeMetrics bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Store("failed to begin transaction", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE projects SET status = 'setup', current_phase = ?, completed_at = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		currentPhase, id,
	)
	if err != nil {
		return apperr.Store("failed to reset project", err)
	}
	if err := requireAffected(result, "project", id, "failed to reset project"); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE checklist_items SET completed = 0, completed_at = NULL, linked_task_id = NULL WHERE project_id = ?",
		id,
	); err != nil {
		return apperr.Store("failed to reset checklist items", err)
	}

	if purgeMetrics {
		for _, table := range []string{"metrics", "posting_log", "check_ins"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE project_id = ?", id); err != nil {
				return apperr.Store("failed to purge "+table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Store("failed to commit reset", err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "project", id, "status", "", "setup")
		if purgeMetrics {
			_ = r.logWriter.LogDelete(ctx, "metrics", id)
		}
	}
	return nil
}

// GetNextID returns the next available project ID.
func (r *ProjectRepository) GetNextID(ctx context.Context) (string, error) {
	id, err := nextSequentialID(ctx, r.db, "projects", "LAUNCH", "%03d")
	if err != nil {
		return "", apperr.Store("failed to get next project ID", err)
	}
	return id, nil
}

func requireAffected(result sql.Result, entity, id, op string) error {
	ok, err := checkAffected(result)
	if err != nil {
		return apperr.Store(op, err)
	}
	if !ok {
		return apperr.NotFound(entity, id)
	}
	return nil
}

var _ secondary.ProjectRepository = (*ProjectRepository)(nil)
