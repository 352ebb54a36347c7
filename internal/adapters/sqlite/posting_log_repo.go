package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/launchpad/internal/apperr"
	"github.com/example/launchpad/internal/ports/secondary"
)

// PostingLogRepository implements secondary.PostingLogRepository with SQLite.
type PostingLogRepository struct {
	db *sql.DB
}

// NewPostingLogRepository creates a new SQLite posting log repository.
func NewPostingLogRepository(db *sql.DB) *PostingLogRepository {
	return &PostingLogRepository{db: db}
}

// Add records posts for a project/platform/day, summing with an existing row.
func (r *PostingLogRepository) Add(ctx context.Context, entry *secondary.PostingLogRecord) error {
	if entry.ID == "" {
		entry.ID = shortID("POST")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posting_log (id, project_id, platform, date, count) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(project_id, platform, date) DO UPDATE SET count = count + excluded.count`,
		entry.ID, entry.ProjectID, entry.Platform, entry.Date, entry.Count,
	)
	if err != nil {
		return apperr.Store("failed to add posting log entry", err)
	}
	return nil
}

// List retrieves entries for a platform on or after since, newest first.
func (r *PostingLogRepository) List(ctx context.Context, projectID, platform, since string) ([]*secondary.PostingLogRecord, error) {
	query := "SELECT id, project_id, platform, date, count FROM posting_log WHERE project_id = ? AND platform = ?"
	args := []any{projectID, platform}

	if since != "" {
		query += " AND date >= ?"
		args = append(args, since)
	}
	query += " ORDER BY date DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Store("failed to list posting log", err)
	}
	defer rows.Close()

	var entries []*secondary.PostingLogRecord
	for rows.Next() {
		entry := &secondary.PostingLogRecord{}
		if err := rows.Scan(&entry.ID, &entry.ProjectID, &entry.Platform, &entry.Date, &entry.Count); err != nil {
			return nil, apperr.Store("failed to scan posting log entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("failed to list posting log", err)
	}
	return entries, nil
}

// TotalPosted sums every count logged for a platform.
func (r *PostingLogRepository) TotalPosted(ctx context.Context, projectID, platform string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(count), 0) FROM posting_log WHERE project_id = ? AND platform = ?",
		projectID, platform,
	).Scan(&total)
	if err != nil {
		return 0, apperr.Store("failed to sum posting log", err)
	}
	return total, nil
}

var _ secondary.PostingLogRepository = (*PostingLogRepository)(nil)
