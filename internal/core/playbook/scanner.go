package playbook

import (
	"regexp"
	"strings"
)

// EventKind identifies the type of a scanned line.
type EventKind int

const (
	EventPhaseHeader EventKind = iota + 1
	EventSectionHeader
	EventItem
)

func (k EventKind) String() string {
	switch k {
	case EventPhaseHeader:
		return "phase"
	case EventSectionHeader:
		return "section"
	case EventItem:
		return "item"
	}
	return "unknown"
}

// Event is one meaningful markup line. Lines that are not headings or open
// checklist boxes produce no event.
type Event struct {
	Kind EventKind
	Line int    // 1-based line number in the scanned body
	Text string // phase name, section name, or raw item text
}

var (
	phaseHeaderRe   = regexp.MustCompile(`^#[ \t]+(.*\S)[ \t]*$`)
	sectionHeaderRe = regexp.MustCompile(`^##[ \t]+(.*\S)[ \t]*$`)
	phasePrefixRe   = regexp.MustCompile(`(?i)^phase[ \t]+\d+[ \t]*:[ \t]*(.*)$`)
	openItemRe      = regexp.MustCompile(`^[ \t]*-[ \t]+\[ \][ \t]+(.*\S)[ \t]*$`)
)

// Scan turns markup into an ordered sequence of line events.
func Scan(body string) []Event {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	lines := strings.Split(body, "\n")

	var events []Event
	for i, line := range lines {
		if ev, ok := scanLine(line); ok {
			ev.Line = i + 1
			events = append(events, ev)
		}
	}
	return events
}

func scanLine(line string) (Event, bool) {
	if m := sectionHeaderRe.FindStringSubmatch(line); m != nil {
		return Event{Kind: EventSectionHeader, Text: m[1]}, true
	}
	if m := phaseHeaderRe.FindStringSubmatch(line); m != nil {
		return Event{Kind: EventPhaseHeader, Text: phaseName(m[1])}, true
	}
	if m := openItemRe.FindStringSubmatch(line); m != nil {
		return Event{Kind: EventItem, Text: m[1]}, true
	}
	return Event{}, false
}

// phaseName strips an optional "PHASE n:" prefix from a heading.
func phaseName(heading string) string {
	if m := phasePrefixRe.FindStringSubmatch(heading); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			return name
		}
	}
	return strings.TrimSpace(heading)
}
