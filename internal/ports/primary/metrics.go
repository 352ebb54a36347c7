package primary

import "context"

// MetricsService defines the primary port for posting log, metrics and check-ins.
type MetricsService interface {
	// LogPost adds posts for a platform on a day (YYYY-MM-DD, empty for today).
	LogPost(ctx context.Context, req LogPostRequest) error

	// ScheduleContent records content queued for a platform.
	ScheduleContent(ctx context.Context, projectID, platform string, count int) error

	// RecordMetric stores an arbitrary metric entry.
	RecordMetric(ctx context.Context, req RecordMetricRequest) (*Metric, error)

	// ListMetrics lists metric entries with optional filters.
	ListMetrics(ctx context.Context, filters MetricFilters) ([]*Metric, error)

	// ComputeStreak returns the current posting streak for a platform.
	ComputeStreak(ctx context.Context, projectID, platform string) (int, error)

	// ContentBuffer reports scheduled minus posted content for a platform.
	ContentBuffer(ctx context.Context, projectID, platform string) (*BufferReport, error)

	// CheckIn records a dated note against a project.
	CheckIn(ctx context.Context, req CheckInRequest) (*CheckIn, error)

	// ListCheckIns lists a project's check-ins, newest first.
	ListCheckIns(ctx context.Context, projectID string) ([]*CheckIn, error)
}

// MetricTypeScheduled is the metric type used for scheduled content counts.
const MetricTypeScheduled = "scheduled"

// LogPostRequest contains parameters for logging posts.
type LogPostRequest struct {
	ProjectID string
	Platform  string
	Date      string // Optional, YYYY-MM-DD
	Count     int
}

// RecordMetricRequest contains parameters for recording a metric.
type RecordMetricRequest struct {
	ProjectID  string
	Date       string // Optional, YYYY-MM-DD
	MetricType string
	MetricName string
	Value      float64
}

// Metric represents a metric entry at the port boundary.
type Metric struct {
	ID         string
	ProjectID  string
	Date       string
	MetricType string
	MetricName string
	Value      float64
}

// MetricFilters contains filter options for querying metrics.
type MetricFilters struct {
	ProjectID  string
	MetricType string
	MetricName string
}

// BufferReport is the content buffer of one platform.
type BufferReport struct {
	Platform  string
	Scheduled int
	Posted    int
	Buffer    int // may be negative
}

// CheckInRequest contains parameters for a check-in.
type CheckInRequest struct {
	ProjectID string
	Date      string // Optional, YYYY-MM-DD
	Notes     string
}

// CheckIn represents a check-in at the port boundary.
type CheckIn struct {
	ID        string
	ProjectID string
	Date      string
	Notes     string
	CreatedAt string
}
