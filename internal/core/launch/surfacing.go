package launch

import (
	"sort"

	"github.com/example/launchpad/internal/core/playbook"
)

// DefaultSurfaceCount is used when a caller asks for zero or fewer tasks.
const DefaultSurfaceCount = 5

// Candidate is a checklist item considered for surfacing.
type Candidate struct {
	ID           string
	Phase        string
	SortOrder    int
	Tags         []string
	Completed    bool
	LinkedTaskID string
}

// Tier ranks tags: 0 for CRITICAL, 1 for PRIORITY:HIGH, 2 otherwise.
func Tier(tags []string) int {
	tier := 2
	for _, t := range tags {
		switch t {
		case playbook.TagCritical:
			return 0
		case playbook.TagPriorityHigh:
			tier = 1
		}
	}
	return tier
}

// TaskPriority maps a tag tier to the priority of the created task.
func TaskPriority(tags []string) int {
	switch Tier(tags) {
	case 0:
		return 5
	case 1:
		return 4
	default:
		return 3
	}
}

// SelectForSurfacing picks up to n incomplete, unlinked items of the current
// phase: CRITICAL first, then PRIORITY:HIGH, then ascending sort order.
func SelectForSurfacing(items []Candidate, currentPhase string, n int) []Candidate {
	if n <= 0 {
		n = DefaultSurfaceCount
	}

	var pool []Candidate
	for _, it := range items {
		if it.Phase != currentPhase || it.Completed || it.LinkedTaskID != "" {
			continue
		}
		pool = append(pool, it)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		ti, tj := Tier(pool[i].Tags), Tier(pool[j].Tags)
		if ti != tj {
			return ti < tj
		}
		return pool[i].SortOrder < pool[j].SortOrder
	})

	if len(pool) > n {
		pool = pool[:n]
	}
	return pool
}
