package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/launchpad/internal/apperr"
	"github.com/example/launchpad/internal/core/launch"
	"github.com/example/launchpad/internal/core/streak"
	"github.com/example/launchpad/internal/logging"
	"github.com/example/launchpad/internal/ports/primary"
	"github.com/example/launchpad/internal/ports/secondary"
)

// MetricsServiceImpl implements the MetricsService interface.
type MetricsServiceImpl struct {
	projectRepo secondary.ProjectRepository
	postingRepo secondary.PostingLogRepository
	metricRepo  secondary.MetricRepository
	checkInRepo secondary.CheckInRepository
	windowDays  int
	logger      *zap.Logger
	now         func() time.Time
}

// NewMetricsService creates a new MetricsService with injected dependencies.
// windowDays bounds the streak search; zero or less uses the default.
func NewMetricsService(
	projectRepo secondary.ProjectRepository,
	postingRepo secondary.PostingLogRepository,
	metricRepo secondary.MetricRepository,
	checkInRepo secondary.CheckInRepository,
	windowDays int,
	logger *zap.Logger,
) *MetricsServiceImpl {
	if windowDays <= 0 {
		windowDays = streak.DefaultWindowDays
	}
	return &MetricsServiceImpl{
		projectRepo: projectRepo,
		postingRepo: postingRepo,
		metricRepo:  metricRepo,
		checkInRepo: checkInRepo,
		windowDays:  windowDays,
		logger:      logging.OrNop(logger),
		now:         time.Now,
	}
}

// LogPost adds posts for a platform on a day.
func (s *MetricsServiceImpl) LogPost(ctx context.Context, req primary.LogPostRequest) error {
	platform, err := requirePlatform(req.Platform)
	if err != nil {
		return err
	}
	if req.Count < 0 {
		return apperr.Invalid("count", "must not be negative")
	}
	date, err := s.dateOrToday(req.Date)
	if err != nil {
		return err
	}
	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		return err
	}

	if err := s.postingRepo.Add(ctx, &secondary.PostingLogRecord{
		ProjectID: req.ProjectID,
		Platform:  platform,
		Date:      date,
		Count:     req.Count,
	}); err != nil {
		return fmt.Errorf("failed to log post: %w", err)
	}

	s.logger.Debug("post logged",
		zap.String("project_id", req.ProjectID),
		zap.String("platform", platform),
		zap.String("date", date),
		zap.Int("count", req.Count),
	)
	return nil
}

// ScheduleContent records content queued for a platform as a "scheduled" metric.
func (s *MetricsServiceImpl) ScheduleContent(ctx context.Context, projectID, platform string, count int) error {
	platform, err := requirePlatform(platform)
	if err != nil {
		return err
	}
	if count < 0 {
		return apperr.Invalid("count", "must not be negative")
	}
	_, err = s.RecordMetric(ctx, primary.RecordMetricRequest{
		ProjectID:  projectID,
		MetricType: primary.MetricTypeScheduled,
		MetricName: platform,
		Value:      float64(count),
	})
	return err
}

// RecordMetric stores an arbitrary metric entry.
func (s *MetricsServiceImpl) RecordMetric(ctx context.Context, req primary.RecordMetricRequest) (*primary.Metric, error) {
	metricType := strings.TrimSpace(req.MetricType)
	metricName := strings.TrimSpace(req.MetricName)
	if metricType == "" {
		return nil, apperr.Invalid("metric_type", "is required")
	}
	if metricName == "" {
		return nil, apperr.Invalid("metric_name", "is required")
	}
	date, err := s.dateOrToday(req.Date)
	if err != nil {
		return nil, err
	}
	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	record := &secondary.MetricRecord{
		ProjectID:  req.ProjectID,
		Date:       date,
		MetricType: metricType,
		MetricName: metricName,
		Value:      req.Value,
	}
	if err := s.metricRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record metric: %w", err)
	}

	return recordToMetric(record), nil
}

// ListMetrics lists metric entries with optional filters.
func (s *MetricsServiceImpl) ListMetrics(ctx context.Context, filters primary.MetricFilters) ([]*primary.Metric, error) {
	records, err := s.metricRepo.List(ctx, secondary.MetricFilters{
		ProjectID:  filters.ProjectID,
		MetricType: filters.MetricType,
		MetricName: filters.MetricName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list metrics: %w", err)
	}

	metrics := make([]*primary.Metric, len(records))
	for i, r := range records {
		metrics[i] = recordToMetric(r)
	}
	return metrics, nil
}

// ComputeStreak returns the current posting streak for a platform.
func (s *MetricsServiceImpl) ComputeStreak(ctx context.Context, projectID, platform string) (int, error) {
	platform, err := requirePlatform(platform)
	if err != nil {
		return 0, err
	}
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return 0, err
	}

	today := streak.Day(s.now())
	since := today.AddDate(0, 0, -(s.windowDays - 1)).Format(launch.DateLayout)
	records, err := s.postingRepo.List(ctx, projectID, platform, since)
	if err != nil {
		return 0, fmt.Errorf("failed to load posting log: %w", err)
	}

	entries := make([]streak.Entry, 0, len(records))
	for _, r := range records {
		d, err := time.Parse(launch.DateLayout, r.Date)
		if err != nil {
			s.logger.Warn("skipping malformed posting date", zap.String("entry_id", r.ID), zap.String("date", r.Date))
			continue
		}
		entries = append(entries, streak.Entry{Date: d, Count: r.Count})
	}

	return streak.Compute(entries, today, s.windowDays), nil
}

// ContentBuffer reports scheduled minus posted content for a platform.
func (s *MetricsServiceImpl) ContentBuffer(ctx context.Context, projectID, platform string) (*primary.BufferReport, error) {
	platform, err := requirePlatform(platform)
	if err != nil {
		return nil, err
	}
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	scheduled, err := s.metricRepo.Sum(ctx, secondary.MetricFilters{
		ProjectID:  projectID,
		MetricType: primary.MetricTypeScheduled,
		MetricName: platform,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sum scheduled content: %w", err)
	}
	posted, err := s.postingRepo.TotalPosted(ctx, projectID, platform)
	if err != nil {
		return nil, fmt.Errorf("failed to sum posts: %w", err)
	}

	return &primary.BufferReport{
		Platform:  platform,
		Scheduled: int(scheduled),
		Posted:    posted,
		Buffer:    streak.Buffer(int(scheduled), posted),
	}, nil
}

// CheckIn records a dated note against a project.
func (s *MetricsServiceImpl) CheckIn(ctx context.Context, req primary.CheckInRequest) (*primary.CheckIn, error) {
	date, err := s.dateOrToday(req.Date)
	if err != nil {
		return nil, err
	}
	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	record := &secondary.CheckInRecord{
		ProjectID: req.ProjectID,
		Date:      date,
		Notes:     req.Notes,
	}
	if err := s.checkInRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record check-in: %w", err)
	}

	return &primary.CheckIn{
		ID:        record.ID,
		ProjectID: record.ProjectID,
		Date:      record.Date,
		Notes:     record.Notes,
	}, nil
}

// ListCheckIns lists a project's check-ins, newest first.
func (s *MetricsServiceImpl) ListCheckIns(ctx context.Context, projectID string) ([]*primary.CheckIn, error) {
	records, err := s.checkInRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}

	checkIns := make([]*primary.CheckIn, len(records))
	for i, r := range records {
		checkIns[i] = &primary.CheckIn{
			ID:        r.ID,
			ProjectID: r.ProjectID,
			Date:      r.Date,
			Notes:     r.Notes,
			CreatedAt: r.CreatedAt,
		}
	}
	return checkIns, nil
}

// Helper methods

func (s *MetricsServiceImpl) dateOrToday(value string) (string, error) {
	if value == "" {
		return s.now().Format(launch.DateLayout), nil
	}
	if _, err := parseDate("date", value); err != nil {
		return "", err
	}
	return value, nil
}

func requirePlatform(platform string) (string, error) {
	p := strings.ToLower(strings.TrimSpace(platform))
	if p == "" {
		return "", apperr.Invalid("platform", "is required")
	}
	return p, nil
}

func recordToMetric(r *secondary.MetricRecord) *primary.Metric {
	return &primary.Metric{
		ID:         r.ID,
		ProjectID:  r.ProjectID,
		Date:       r.Date,
		MetricType: r.MetricType,
		MetricName: r.MetricName,
		Value:      r.Value,
	}
}

// Ensure MetricsServiceImpl implements the interface
var _ primary.MetricsService = (*MetricsServiceImpl)(nil)
