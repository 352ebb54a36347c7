package launch

import (
	"time"

	"github.com/example/launchpad/internal/core/playbook"
)

// DateLayout is the calendar-day format used for launch dates and logs.
const DateLayout = "2006-01-02"

// ProgressItem is the slice of a checklist item needed for progress reports.
type ProgressItem struct {
	ID        string
	Phase     string
	Text      string
	SortOrder int
	Tags      []string
	DueOffset *int
	Completed bool
}

// PhaseProgress summarizes one phase.
type PhaseProgress struct {
	Phase        string
	Total        int
	Completed    int
	OpenCritical int
}

// Done reports whether every item of the phase is complete.
func (p PhaseProgress) Done() bool {
	return p.Completed == p.Total
}

// Summarize counts items per phase, in the given phase order.
func Summarize(order []string, items []ProgressItem) []PhaseProgress {
	byPhase := make(map[string]*PhaseProgress, len(order))
	result := make([]PhaseProgress, len(order))
	for i, p := range order {
		result[i].Phase = p
		byPhase[p] = &result[i]
	}

	for _, it := range items {
		pp, ok := byPhase[it.Phase]
		if !ok {
			continue
		}
		pp.Total++
		if it.Completed {
			pp.Completed++
			continue
		}
		for _, t := range it.Tags {
			if t == playbook.TagCritical {
				pp.OpenCritical++
				break
			}
		}
	}
	return result
}

// OpenCriticalTexts returns the texts of incomplete CRITICAL items in phase,
// in sort order as given.
func OpenCriticalTexts(items []ProgressItem, phase string) []string {
	var texts []string
	for _, it := range items {
		if it.Phase != phase || it.Completed {
			continue
		}
		for _, t := range it.Tags {
			if t == playbook.TagCritical {
				texts = append(texts, it.Text)
				break
			}
		}
	}
	return texts
}

// DueDate resolves a due offset against the launch date. ok is false when
// either is missing.
func DueDate(launch *time.Time, offset *int) (time.Time, bool) {
	if launch == nil || offset == nil {
		return time.Time{}, false
	}
	return launch.AddDate(0, 0, *offset), true
}

// Overdue returns incomplete items whose due date is before today.
func Overdue(items []ProgressItem, launch *time.Time, today time.Time) []ProgressItem {
	today = truncateDay(today)
	var late []ProgressItem
	for _, it := range items {
		if it.Completed {
			continue
		}
		due, ok := DueDate(launch, it.DueOffset)
		if ok && truncateDay(due).Before(today) {
			late = append(late, it)
		}
	}
	return late
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
