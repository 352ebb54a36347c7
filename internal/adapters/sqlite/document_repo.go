package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/example/launchpad/internal/apperr"
	"github.com/example/launchpad/internal/ports/secondary"
)

// DocumentRepository implements secondary.DocumentRepository with SQLite.
type DocumentRepository struct {
	db        *sql.DB
	logWriter secondary.LogWriter
}

// NewDocumentRepository creates a new SQLite document repository.
// logWriter is optional - if nil, no audit logging is performed.
func NewDocumentRepository(db *sql.DB, logWriter secondary.LogWriter) *DocumentRepository {
	return &DocumentRepository{db: db, logWriter: logWriter}
}

const documentSelectCols = "id, name, doc_type, raw_content, version, created_at, updated_at"

func scanDocument(scanner rowScanner) (*secondary.DocumentRecord, error) {
	var (
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.DocumentRecord{}
	err := scanner.Scan(&record.ID, &record.Name, &record.DocType, &record.RawContent, &record.Version, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

// Create persists a new document.
func (r *DocumentRepository) Create(ctx context.Context, doc *secondary.DocumentRecord) error {
	version := doc.Version
	if version == "" {
		version = "1"
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO checklist_documents (id, name, doc_type, raw_content, version) VALUES (?, ?, ?, ?, ?)",
		doc.ID, doc.Name, doc.DocType, doc.RawContent, version,
	)
	if err != nil {
		return apperr.Store("failed to create document", err)
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogCreate(ctx, "document", doc.ID)
	}
	return nil
}

// GetByID retrieves a document by its ID.
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*secondary.DocumentRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+documentSelectCols+" FROM checklist_documents WHERE id = ?", id)

	record, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("document", id)
	}
	if err != nil {
		return nil, apperr.Store("failed to get document", err)
	}
	return record, nil
}

// List retrieves documents matching the given filters.
func (r *DocumentRepository) List(ctx context.Context, filters secondary.DocumentFilters) ([]*secondary.DocumentRecord, error) {
	query := "SELECT " + documentSelectCols + " FROM checklist_documents WHERE 1=1"
	args := []any{}

	if filters.DocType != "" {
		query += " AND doc_type = ?"
		args = append(args, filters.DocType)
	}
	query += " ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Store("failed to list documents", err)
	}
	defer rows.Close()

	var docs []*secondary.DocumentRecord
	for rows.Next() {
		record, err := scanDocument(rows)
		if err != nil {
			return nil, apperr.Store("failed to scan document", err)
		}
		docs = append(docs, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("failed to list documents", err)
	}
	return docs, nil
}

// UpdateContent replaces the raw content and version of a document.
func (r *DocumentRepository) UpdateContent(ctx context.Context, id, rawContent, version string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE checklist_documents SET raw_content = ?, version = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		rawContent, version, id,
	)
	if err != nil {
		return apperr.Store("failed to update document", err)
	}
	if err := requireAffected(result, "document", id, "failed to update document"); err != nil {
		return err
	}

	if r.logWriter != nil {
		_ = r.logWriter.LogUpdate(ctx, "document", id, "version", "", version)
	}
	return nil
}

// GetNextID returns the next available document ID.
func (r *DocumentRepository) GetNextID(ctx context.Context) (string, error) {
	id, err := nextSequentialID(ctx, r.db, "checklist_documents", "DOC", "%03d")
	if err != nil {
		return "", apperr.Store("failed to get next document ID", err)
	}
	return id, nil
}

var _ secondary.DocumentRepository = (*DocumentRepository)(nil)
