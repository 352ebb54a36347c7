package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/launchpad/internal/apperr"
	"github.com/example/launchpad/internal/ports/secondary"
)

// ActivityLogRepository implements secondary.ActivityLogRepository with SQLite.
type ActivityLogRepository struct {
	db *sql.DB
}

// NewActivityLogRepository creates a new SQLite activity log repository.
func NewActivityLogRepository(db *sql.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Create persists a new activity log entry.
func (r *ActivityLogRepository) Create(ctx context.Context, log *secondary.ActivityLogRecord) error {
	if log.ID == "" {
		log.ID = shortID("LOG")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_log (id, actor_id, entity_type, entity_id, action, field_name, old_value, new_value) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID,
		nullString(log.ActorID),
		log.EntityType,
		log.EntityID,
		log.Action,
		nullString(log.FieldName),
		nullString(log.OldValue),
		nullString(log.NewValue),
	)
	if err != nil {
		return apperr.Store("failed to create activity log", err)
	}

	return nil
}

// List retrieves log entries matching the given filters, newest first.
func (r *ActivityLogRepository) List(ctx context.Context, filters secondary.ActivityLogFilters) ([]*secondary.ActivityLogRecord, error) {
	query := `SELECT id, actor_id, entity_type, entity_id, action, field_name, old_value, new_value, created_at FROM activity_log WHERE 1=1`
	args := []any{}

	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}
	if filters.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, filters.EntityID)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Store("failed to list activity log", err)
	}
	defer rows.Close()

	var logs []*secondary.ActivityLogRecord
	for rows.Next() {
		var (
			actorID   sql.NullString
			fieldName sql.NullString
			oldValue  sql.NullString
			newValue  sql.NullString
			createdAt time.Time
		)

		record := &secondary.ActivityLogRecord{}
		if err := rows.Scan(
			&record.ID, &actorID, &record.EntityType, &record.EntityID, &record.Action,
			&fieldName, &oldValue, &newValue, &createdAt,
		); err != nil {
			return nil, apperr.Store("failed to scan activity log", err)
		}

		record.ActorID = actorID.String
		record.FieldName = fieldName.String
		record.OldValue = oldValue.String
		record.NewValue = newValue.String
		record.CreatedAt = formatTime(createdAt)
		logs = append(logs, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("failed to list activity log", err)
	}

	return logs, nil
}

// PruneOlderThan deletes entries older than the given number of days.
func (r *ActivityLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM activity_log WHERE created_at < datetime('now', ?)",
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return 0, apperr.Store("failed to prune activity log", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, apperr.Store("failed to prune activity log", err)
	}
	return int(n), nil
}

var _ secondary.ActivityLogRepository = (*ActivityLogRepository)(nil)
