package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/launchpad/internal/apperr"
	"github.com/example/launchpad/internal/ports/secondary"
)

// CheckInRepository implements secondary.CheckInRepository with SQLite.
type CheckInRepository struct {
	db *sql.DB
}

// NewCheckInRepository creates a new SQLite check-in repository.
func NewCheckInRepository(db *sql.DB) *CheckInRepository {
	return &CheckInRepository{db: db}
}

// Create persists a check-in.
func (r *CheckInRepository) Create(ctx context.Context, checkIn *secondary.CheckInRecord) error {
	if checkIn.ID == "" {
		checkIn.ID = shortID("CHECKIN")
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO check_ins (id, project_id, date, notes) VALUES (?, ?, ?, ?)",
		checkIn.ID, checkIn.ProjectID, checkIn.Date, nullString(checkIn.Notes),
	)
	if err != nil {
		return apperr.Store("failed to create check-in", err)
	}
	return nil
}

// ListByProject retrieves check-ins for a project, newest first.
func (r *CheckInRepository) ListByProject(ctx context.Context, projectID string) ([]*secondary.CheckInRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, project_id, date, notes, created_at FROM check_ins WHERE project_id = ? ORDER BY date DESC, created_at DESC",
		projectID,
	)
	if err != nil {
		return nil, apperr.Store("failed to list check-ins", err)
	}
	defer rows.Close()

	var checkIns []*secondary.CheckInRecord
	for rows.Next() {
		var (
			notes     sql.NullString
			createdAt time.Time
		)
		c := &secondary.CheckInRecord{}
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Date, &notes, &createdAt); err != nil {
			return nil, apperr.Store("failed to scan check-in", err)
		}
		c.Notes = notes.String
		c.CreatedAt = formatTime(createdAt)
		checkIns = append(checkIns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("failed to list check-ins", err)
	}
	return checkIns, nil
}

var _ secondary.CheckInRepository = (*CheckInRepository)(nil)
