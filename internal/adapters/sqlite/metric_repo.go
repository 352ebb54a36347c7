package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/launchpad/internal/apperr"
	"github.com/example/launchpad/internal/ports/secondary"
)

// MetricRepository implements secondary.MetricRepository with SQLite.
type MetricRepository struct {
	db *sql.DB
}

// NewMetricRepository creates a new SQLite metric repository.
func NewMetricRepository(db *sql.DB) *MetricRepository {
	return &MetricRepository{db: db}
}

func metricWhere(filters secondary.MetricFilters) (string, []any) {
	where := " WHERE 1=1"
	args := []any{}

	if filters.ProjectID != "" {
		where += " AND project_id = ?"
		args = append(args, filters.ProjectID)
	}
	if filters.MetricType != "" {
		where += " AND metric_type = ?"
		args = append(args, filters.MetricType)
	}
	if filters.MetricName != "" {
		where += " AND metric_name = ?"
		args = append(args, filters.MetricName)
	}
	return where, args
}

// Create persists a metric entry.
func (r *MetricRepository) Create(ctx context.Context, metric *secondary.MetricRecord) error {
	if metric.ID == "" {
		metric.ID = shortID("METRIC")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO metrics (id, project_id, date, metric_type, metric_name, value) VALUES (?, ?, ?, ?, ?, ?)",
		metric.ID, metric.ProjectID, metric.Date, metric.MetricType, metric.MetricName, metric.Value,
	)
	if err != nil {
		return apperr.Store("failed to create metric", err)
	}
	return nil
}

// List retrieves metric entries matching the filters, newest first.
func (r *MetricRepository) List(ctx context.Context, filters secondary.MetricFilters) ([]*secondary.MetricRecord, error) {
	where, args := metricWhere(filters)
	query := "SELECT id, project_id, date, metric_type, metric_name, value, created_at FROM metrics" + where +
		" ORDER BY date DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Store("failed to list metrics", err)
	}
	defer rows.Close()

	var metrics []*secondary.MetricRecord
	for rows.Next() {
		var createdAt time.Time
		m := &secondary.MetricRecord{}
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Date, &m.MetricType, &m.MetricName, &m.Value, &createdAt); err != nil {
			return nil, apperr.Store("failed to scan metric", err)
		}
		m.CreatedAt = formatTime(createdAt)
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("failed to list metrics", err)
	}
	return metrics, nil
}

// Sum adds up the values of matching entries.
func (r *MetricRepository) Sum(ctx context.Context, filters secondary.MetricFilters) (float64, error) {
	where, args := metricWhere(filters)

	var total float64
	if err := r.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(value), 0) FROM metrics"+where, args...).Scan(&total); err != nil {
		return 0, apperr.Store("failed to sum metrics", err)
	}
	return total, nil
}

var _ secondary.MetricRepository = (*MetricRepository)(nil)
