package launch

import (
	"sort"
	"strings"
	"unicode"
)

// Project statuses outside the per-phase slugs.
const (
	StatusSetup    = "setup"
	StatusComplete = "complete"
)

// PhaseRef is the minimum an item contributes to phase ordering.
type PhaseRef struct {
	Phase     string
	SortOrder int
}

// PhaseOrder returns the phases present in a checklist ordered by the minimum
// sort order of their items.
func PhaseOrder(items []PhaseRef) []string {
	minOrder := make(map[string]int)
	for _, it := range items {
		if cur, ok := minOrder[it.Phase]; !ok || it.SortOrder < cur {
			minOrder[it.Phase] = it.SortOrder
		}
	}

	phases := make([]string, 0, len(minOrder))
	for p := range minOrder {
		phases = append(phases, p)
	}
	sort.Slice(phases, func(i, j int) bool {
		return minOrder[phases[i]] < minOrder[phases[j]]
	})
	return phases
}

// NextPhase returns the phase after current. ok is false when current is the
// last phase or not part of the order.
func NextPhase(order []string, current string) (next string, ok bool) {
	for i, p := range order {
		if p == current {
			if i+1 < len(order) {
				return order[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

// Slug converts a phase name into its status value: lower case, runs of
// non-alphanumerics collapsed to a single underscore.
func Slug(phase string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(phase) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
