package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/example/launchpad/internal/apperr"
	"github.com/example/launchpad/internal/ports/primary"
	"github.com/example/launchpad/internal/ports/secondary"
)

// mockPostingLogRepository implements secondary.PostingLogRepository for testing.
type mockPostingLogRepository struct {
	entries map[string]*secondary.PostingLogRecord // project|platform|date
}

func newMockPostingLogRepository() *mockPostingLogRepository {
	return &mockPostingLogRepository{entries: make(map[string]*secondary.PostingLogRecord)}
}

func (m *mockPostingLogRepository) Add(ctx context.Context, entry *secondary.PostingLogRecord) error {
	key := entry.ProjectID + "|" + entry.Platform + "|" + entry.Date
	if existing, ok := m.entries[key]; ok {
		existing.Count += entry.Count
		return nil
	}
	cp := *entry
	cp.ID = fmt.Sprintf("POST-%d", len(m.entries)+1)
	m.entries[key] = &cp
	return nil
}

func (m *mockPostingLogRepository) List(ctx context.Context, projectID, platform, since string) ([]*secondary.PostingLogRecord, error) {
	var result []*secondary.PostingLogRecord
	for _, e := range m.entries {
		if e.ProjectID == projectID && e.Platform == platform && e.Date >= since {
			cp := *e
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (m *mockPostingLogRepository) TotalPosted(ctx context.Context, projectID, platform string) (int, error) {
	total := 0
	for _, e := range m.entries {
		if e.ProjectID == projectID && e.Platform == platform {
			total += e.Count
		}
	}
	return total, nil
}

// mockMetricRepository implements secondary.MetricRepository for testing.
type mockMetricRepository struct {
	metrics []*secondary.MetricRecord
}

func (m *mockMetricRepository) matching(filters secondary.MetricFilters) []*secondary.MetricRecord {
	var result []*secondary.MetricRecord
	for _, r := range m.metrics {
		if filters.ProjectID != "" && r.ProjectID != filters.ProjectID {
			continue
		}
		if filters.MetricType != "" && r.MetricType != filters.MetricType {
			continue
		}
		if filters.MetricName != "" && r.MetricName != filters.MetricName {
			continue
		}
		result = append(result, r)
	}
	return result
}

func (m *mockMetricRepository) Create(ctx context.Context, metric *secondary.MetricRecord) error {
	metric.ID = fmt.Sprintf("METRIC-%d", len(m.metrics)+1)
	cp := *metric
	m.metrics = append(m.metrics, &cp)
	return nil
}

func (m *mockMetricRepository) List(ctx context.Context, filters secondary.MetricFilters) ([]*secondary.MetricRecord, error) {
	return m.matching(filters), nil
}

func (m *mockMetricRepository) Sum(ctx context.Context, filters secondary.MetricFilters) (float64, error) {
	var total float64
	for _, r := range m.matching(filters) {
		total += r.Value
	}
	return total, nil
}

// mockCheckInRepository implements secondary.CheckInRepository for testing.
type mockCheckInRepository struct {
	checkIns []*secondary.CheckInRecord
}

func (m *mockCheckInRepository) Create(ctx context.Context, checkIn *secondary.CheckInRecord) error {
	checkIn.ID = fmt.Sprintf("CHECKIN-%d", len(m.checkIns)+1)
	cp := *checkIn
	m.checkIns = append(m.checkIns, &cp)
	return nil
}

func (m *mockCheckInRepository) ListByProject(ctx context.Context, projectID string) ([]*secondary.CheckInRecord, error) {
	var result []*secondary.CheckInRecord
	for i := len(m.checkIns) - 1; i >= 0; i-- {
		if m.checkIns[i].ProjectID == projectID {
			result = append(result, m.checkIns[i])
		}
	}
	return result, nil
}

type metricsFixture struct {
	service  *MetricsServiceImpl
	posts    *mockPostingLogRepository
	metrics  *mockMetricRepository
	checkIns *mockCheckInRepository
}

func newMetricsFixture(today time.Time) *metricsFixture {
	items := newMockChecklistItemRepository()
	projects := newMockProjectRepository(items)
	projects.projects["LAUNCH-001"] = &secondary.ProjectRecord{ID: "LAUNCH-001", Status: "setup", CurrentPhase: "SETUP"}

	f := &metricsFixture{
		posts:    newMockPostingLogRepository(),
		metrics:  &mockMetricRepository{},
		checkIns: &mockCheckInRepository{},
	}
	f.service = NewMetricsService(projects, f.posts, f.metrics, f.checkIns, 60, nil)
	f.service.now = func() time.Time { return today }
	return f
}

func TestComputeStreak(t *testing.T) {
	today := time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		posts map[string]int
		want  int
	}{
		{"no posts", nil, 0},
		{"today only", map[string]int{"2026-05-10": 1}, 1},
		{"three consecutive days ending today", map[string]int{"2026-05-10": 2, "2026-05-09": 1, "2026-05-08": 1}, 3},
		{"today not posted yet", map[string]int{"2026-05-09": 1, "2026-05-08": 1}, 2},
		{"gap breaks the run", map[string]int{"2026-05-10": 1, "2026-05-09": 1, "2026-05-07": 1}, 2},
		{"two days ago only", map[string]int{"2026-05-08": 1}, 0},
		{"zero count days are ignored", map[string]int{"2026-05-10": 0, "2026-05-09": 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newMetricsFixture(today)
			for date, count := range tt.posts {
				if err := f.service.LogPost(ctx, primary.LogPostRequest{ProjectID: "LAUNCH-001", Platform: "x", Date: date, Count: count}); err != nil {
					t.Fatalf("LogPost failed: %v", err)
				}
			}

			got, err := f.service.ComputeStreak(ctx, "LAUNCH-001", "X")
			if err != nil {
				t.Fatalf("ComputeStreak failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected streak %d, got %d", tt.want, got)
			}
		})
	}
}

func TestLogPost_SumsSameDay(t *testing.T) {
	ctx := context.Background()
	f := newMetricsFixture(time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC))

	for i := 0; i < 2; i++ {
		if err := f.service.LogPost(ctx, primary.LogPostRequest{ProjectID: "LAUNCH-001", Platform: " LinkedIn ", Count: 2}); err != nil {
			t.Fatalf("LogPost failed: %v", err)
		}
	}

	entry, ok := f.posts.entries["LAUNCH-001|linkedin|2026-05-10"]
	if !ok {
		t.Fatalf("expected entry keyed by normalized platform and today, got %v", f.posts.entries)
	}
	if entry.Count != 4 {
		t.Errorf("expected summed count 4, got %d", entry.Count)
	}
}

func TestLogPost_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     primary.LogPostRequest
		wantErr error
	}{
		{"missing platform", primary.LogPostRequest{ProjectID: "LAUNCH-001", Count: 1}, apperr.ErrValidation},
		{"negative count", primary.LogPostRequest{ProjectID: "LAUNCH-001", Platform: "x", Count: -1}, apperr.ErrValidation},
		{"bad date", primary.LogPostRequest{ProjectID: "LAUNCH-001", Platform: "x", Date: "May 10", Count: 1}, apperr.ErrValidation},
		{"unknown project", primary.LogPostRequest{ProjectID: "LAUNCH-404", Platform: "x", Count: 1}, apperr.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMetricsFixture(time.Now())
			err := f.service.LogPost(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if errors.Is(err, apperr.ErrInvalidDocument) {
				t.Errorf("posting errors are not document errors, got %v", err)
			}
			if len(f.posts.entries) != 0 {
				t.Error("nothing should be logged")
			}
		})
	}
}

func TestContentBuffer(t *testing.T) {
	ctx := context.Background()
	f := newMetricsFixture(time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC))

	if err := f.service.ScheduleContent(ctx, "LAUNCH-001", "X", 3); err != nil {
		t.Fatalf("ScheduleContent failed: %v", err)
	}
	if err := f.service.ScheduleContent(ctx, "LAUNCH-001", "x", 2); err != nil {
		t.Fatalf("ScheduleContent failed: %v", err)
	}
	if err := f.service.LogPost(ctx, primary.LogPostRequest{ProjectID: "LAUNCH-001", Platform: "x", Count: 2}); err != nil {
		t.Fatalf("LogPost failed: %v", err)
	}

	report, err := f.service.ContentBuffer(ctx, "LAUNCH-001", "x")
	if err != nil {
		t.Fatalf("ContentBuffer failed: %v", err)
	}
	if report.Scheduled != 5 || report.Posted != 2 || report.Buffer != 3 {
		t.Errorf("unexpected report %+v", report)
	}

	if err := f.service.LogPost(ctx, primary.LogPostRequest{ProjectID: "LAUNCH-001", Platform: "x", Date: "2026-05-09", Count: 6}); err != nil {
		t.Fatalf("LogPost failed: %v", err)
	}
	report, err = f.service.ContentBuffer(ctx, "LAUNCH-001", "x")
	if err != nil {
		t.Fatalf("ContentBuffer failed: %v", err)
	}
	if report.Buffer != -3 {
		t.Errorf("expected negative buffer -3, got %d", report.Buffer)
	}
}

func TestRecordMetric(t *testing.T) {
	ctx := context.Background()
	f := newMetricsFixture(time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC))

	metric, err := f.service.RecordMetric(ctx, primary.RecordMetricRequest{
		ProjectID:  "LAUNCH-001",
		MetricType: "signups",
		MetricName: "waitlist",
		Value:      42,
	})
	if err != nil {
		t.Fatalf("RecordMetric failed: %v", err)
	}
	if metric.ID == "" || metric.Date != "2026-05-10" {
		t.Errorf("unexpected metric %+v", metric)
	}

	if _, err := f.service.RecordMetric(ctx, primary.RecordMetricRequest{ProjectID: "LAUNCH-001", MetricName: "x"}); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("expected validation error for missing type, got %v", err)
	}

	metrics, err := f.service.ListMetrics(ctx, primary.MetricFilters{ProjectID: "LAUNCH-001", MetricType: "signups"})
	if err != nil {
		t.Fatalf("ListMetrics failed: %v", err)
	}
	if len(metrics) != 1 || metrics[0].Value != 42 {
		t.Errorf("unexpected metrics %+v", metrics)
	}
}

func TestCheckIn(t *testing.T) {
	ctx := context.Background()
	f := newMetricsFixture(time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC))

	checkIn, err := f.service.CheckIn(ctx, primary.CheckInRequest{ProjectID: "LAUNCH-001", Notes: "shipped landing page"})
	if err != nil {
		t.Fatalf("CheckIn failed: %v", err)
	}
	if checkIn.Date != "2026-05-10" || checkIn.Notes != "shipped landing page" {
		t.Errorf("unexpected check-in %+v", checkIn)
	}

	if _, err := f.service.CheckIn(ctx, primary.CheckInRequest{ProjectID: "LAUNCH-404"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}

	list, err := f.service.ListCheckIns(ctx, "LAUNCH-001")
	if err != nil {
		t.Fatalf("ListCheckIns failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 check-in, got %d", len(list))
	}
}
