// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// DocumentRepository defines the secondary port for checklist document persistence.
type DocumentRepository interface {
	// Create persists a new document.
	Create(ctx context.Context, doc *DocumentRecord) error

	// GetByID retrieves a document by its ID.
	GetByID(ctx context.Context, id string) (*DocumentRecord, error)

	// List retrieves documents matching the given filters.
	List(ctx context.Context, filters DocumentFilters) ([]*DocumentRecord, error)

	// UpdateContent replaces the raw content and version of a document.
	UpdateContent(ctx context.Context, id, rawContent, version string) error

	// GetNextID returns the next available document ID.
	GetNextID(ctx context.Context) (string, error)
}

// DocumentRecord represents a checklist document as stored in persistence.
type DocumentRecord struct {
	ID         string
	Name       string
	DocType    string // engine, playbook, operations
	RawContent string
	Version    string
	CreatedAt  string
	UpdatedAt  string
}

// DocumentFilters contains filter options for querying documents.
type DocumentFilters struct {
	DocType string
}

// ProjectRepository defines the secondary port for launch project persistence.
type ProjectRepository interface {
	// CreateWithItems persists a project and its checklist in one transaction.
	// Item IDs are assigned by the repository and written back into items.
	CreateWithItems(ctx context.Context, project *ProjectRecord, items []*ChecklistItemRecord) error

	// GetByID retrieves a project by its ID.
	GetByID(ctx context.Context, id string) (*ProjectRecord, error)

	// List retrieves projects matching the given filters.
	List(ctx context.Context, filters ProjectFilters) ([]*ProjectRecord, error)

	// UpdateState sets status and current phase, optionally stamping completed_at.
	UpdateState(ctx context.Context, id, status, currentPhase string, setCompleted bool) error

	// UpdateTargetDate sets or clears (empty string) the target launch date.
	UpdateTargetDate(ctx context.Context, id, date string) error

	// Reset clears item progress and returns the project to setup in one
	// transaction. purgeMetrics also deletes metrics, posting log and check-ins.
	Reset(ctx context.Context, id, currentPhase string, purgeMetrics bool) error

	// GetNextID returns the next available project ID.
	GetNextID(ctx context.Context) (string, error)
}

// ProjectRecord represents a launch project as stored in persistence.
type ProjectRecord struct {
	ID               string
	Owner            string
	Title            string
	DocumentIDs      []string
	TargetLaunchDate string // YYYY-MM-DD, empty string means null
	Status           string // setup, <phase slug>, complete
	CurrentPhase     string
	Meta             map[string]string
	CreatedAt        string
	UpdatedAt        string
	CompletedAt      string // Empty string means null
}

// ProjectFilters contains filter options for querying projects.
type ProjectFilters struct {
	Status string
	Owner  string
}

// ChecklistItemRepository defines the secondary port for checklist item persistence.
type ChecklistItemRepository interface {
	// GetByID retrieves an item by its ID.
	GetByID(ctx context.Context, id string) (*ChecklistItemRecord, error)

	// List retrieves items matching the given filters, ordered by sort order.
	List(ctx context.Context, filters ChecklistItemFilters) ([]*ChecklistItemRecord, error)

	// MarkCompleted sets the completed flag, keeping an existing completed_at.
	MarkCompleted(ctx context.Context, id string) error

	// LinkTask sets linked_task_id only if it is still empty.
	// Returns false when another caller linked the item first.
	LinkTask(ctx context.Context, id, taskID string) (bool, error)

	// UpdateNotes replaces the free-form notes of an item.
	UpdateNotes(ctx context.Context, id, notes string) error
}

// ChecklistItemRecord represents a checklist item as stored in persistence.
type ChecklistItemRecord struct {
	ID               string
	ProjectID        string
	SourceDocumentID string
	Phase            string
	Section          string // Empty string means null
	ItemText         string
	SortOrder        int
	Tags             []string
	DueOffset        *int
	Recurrence       string // Empty string means null
	Completed        bool
	CompletedAt      string // Empty string means null
	LinkedTaskID     string // Empty string means null
	Notes            string // Empty string means null
	CreatedAt        string
}

// ChecklistItemFilters contains filter options for querying checklist items.
type ChecklistItemFilters struct {
	ProjectID      string
	Phase          string
	IncompleteOnly bool
	UnlinkedOnly   bool
}

// PostingLogRepository defines the secondary port for the posting log.
type PostingLogRepository interface {
	// Add records posts for a project/platform/day, summing with an existing row.
	Add(ctx context.Context, entry *PostingLogRecord) error

	// List retrieves entries for a platform on or after since (YYYY-MM-DD, empty for all).
	List(ctx context.Context, projectID, platform, since string) ([]*PostingLogRecord, error)

	// TotalPosted sums every count logged for a platform.
	TotalPosted(ctx context.Context, projectID, platform string) (int, error)
}

// PostingLogRecord represents one day of posts on a platform.
type PostingLogRecord struct {
	ID        string
	ProjectID string
	Platform  string
	Date      string // YYYY-MM-DD
	Count     int
}

// MetricRepository defines the secondary port for metric entries.
type MetricRepository interface {
	// Create persists a metric entry.
	Create(ctx context.Context, metric *MetricRecord) error

	// List retrieves metric entries matching the filters, newest first.
	List(ctx context.Context, filters MetricFilters) ([]*MetricRecord, error)

	// Sum adds up the values of matching entries.
	Sum(ctx context.Context, filters MetricFilters) (float64, error)
}

// MetricRecord represents a metric entry as stored in persistence.
type MetricRecord struct {
	ID         string
	ProjectID  string
	Date       string // YYYY-MM-DD
	MetricType string
	MetricName string
	Value      float64
	CreatedAt  string
}

// MetricFilters contains filter options for querying metrics.
type MetricFilters struct {
	ProjectID  string
	MetricType string
	MetricName string
}

// CheckInRepository defines the secondary port for project check-ins.
type CheckInRepository interface {
	// Create persists a check-in.
	Create(ctx context.Context, checkIn *CheckInRecord) error

	// ListByProject retrieves check-ins for a project, newest first.
	ListByProject(ctx context.Context, projectID string) ([]*CheckInRecord, error)
}

// CheckInRecord represents a dated check-in note.
type CheckInRecord struct {
	ID        string
	ProjectID string
	Date      string // YYYY-MM-DD
	Notes     string
	CreatedAt string
}
