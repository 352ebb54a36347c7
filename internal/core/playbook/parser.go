package playbook

import (
	"github.com/example/launchpad/internal/apperr"
)

// parseState is the accumulator folded over the event stream.
type parseState struct {
	phase    string
	section  string
	hasPhase bool
	phases   []string
	seen     map[string]bool
	items    []Item
}

// reduce applies one event to the state and returns the next state.
func reduce(s parseState, ev Event) parseState {
	switch ev.Kind {
	case EventPhaseHeader:
		s.phase = ev.Text
		s.section = ""
		s.hasPhase = true
		if !s.seen[ev.Text] {
			s.seen[ev.Text] = true
			s.phases = append(s.phases, ev.Text)
		}
	case EventSectionHeader:
		// A section outside any phase has nothing to attach to.
		if s.hasPhase {
			s.section = ev.Text
		}
	case EventItem:
		if !s.hasPhase {
			return s
		}
		attrs := parseItemText(ev.Text)
		s.items = append(s.items, Item{
			Phase:      s.phase,
			Section:    s.section,
			Text:       attrs.text,
			SortOrder:  len(s.items),
			Tags:       attrs.tags,
			DueOffset:  attrs.dueOffset,
			Recurrence: attrs.recurrence,
		})
	}
	return s
}

// Parse turns raw markup into phases and items. Optional YAML frontmatter is
// skipped. A document without any phase heading is invalid.
func Parse(content string) (*Document, error) {
	_, body, err := SplitFrontMatter(content)
	if err != nil {
		return nil, err
	}
	return ParseBody(body)
}

// ParseBody parses markup that carries no frontmatter.
func ParseBody(body string) (*Document, error) {
	state := parseState{seen: make(map[string]bool)}
	for _, ev := range Scan(body) {
		state = reduce(state, ev)
	}

	if len(state.phases) == 0 {
		return nil, apperr.InvalidDocument("", "no phase headings found")
	}

	return &Document{
		Phases: state.phases,
		Items:  state.items,
	}, nil
}
