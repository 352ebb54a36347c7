// Package launch contains the pure business logic for launch projects:
// composing documents into a checklist, gating phase transitions, and
// choosing which items to surface as tasks.
// This is part of the Functional Core - no I/O, only pure functions.
package launch

import (
	"sort"

	"github.com/example/launchpad/internal/apperr"
	"github.com/example/launchpad/internal/core/playbook"
)

// SourceDocument is one parsed document taking part in a composition.
type SourceDocument struct {
	ID     string
	Parsed *playbook.Document
}

// ComposedItem is a parsed item bound to its source document, carrying the
// project-wide sort order.
type ComposedItem struct {
	playbook.Item
	SourceDocumentID string
	DocumentOrder    int // the item's sort order inside its own document
}

// Composition is the merged checklist of a new project.
type Composition struct {
	Phases []string // canonical phase order (union, first encountered)
	Items  []ComposedItem
}

// FirstPhase returns the phase a new project starts in: the first canonical
// phase that owns at least one item, or the first canonical phase when the
// checklist is empty.
func (c Composition) FirstPhase() string {
	if len(c.Items) > 0 {
		return c.Items[0].Phase
	}
	if len(c.Phases) > 0 {
		return c.Phases[0]
	}
	return ""
}

// Compose merges documents in the given order. Phase names are unioned by exact
// string identity; items are stably sorted by (canonical phase index,
// per-document sort order) so ties between documents keep insertion order.
// The returned items carry SortOrder 0..n-1.
func Compose(sources []SourceDocument) (Composition, error) {
	if len(sources) == 0 {
		return Composition{}, apperr.Invalid("documents", "at least one document is required")
	}

	var phases []string
	phaseIndex := make(map[string]int)
	var items []ComposedItem

	for _, src := range sources {
		if src.Parsed == nil || len(src.Parsed.Phases) == 0 {
			return Composition{}, apperr.InvalidDocument("", "document "+src.ID+" has no phases")
		}
		for _, p := range src.Parsed.Phases {
			if _, ok := phaseIndex[p]; !ok {
				phaseIndex[p] = len(phases)
				phases = append(phases, p)
			}
		}
		for _, it := range src.Parsed.Items {
			items = append(items, ComposedItem{
				Item:             it,
				SourceDocumentID: src.ID,
				DocumentOrder:    it.SortOrder,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := phaseIndex[items[i].Phase], phaseIndex[items[j].Phase]
		if pi != pj {
			return pi < pj
		}
		return items[i].DocumentOrder < items[j].DocumentOrder
	})

	for i := range items {
		items[i].SortOrder = i
	}

	return Composition{Phases: phases, Items: items}, nil
}
