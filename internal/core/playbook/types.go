// Package playbook parses checklist markup into phases and tagged items.
// This is part of the Functional Core - no I/O, only pure functions.
//
// The markup is line oriented:
//
//	# PHASE 1: SETUP          opens a phase (the "PHASE n:" prefix is optional)
//	## Accounts               sets the section inside the active phase
//	- [ ] Register domain [CRITICAL] [DUE:LAUNCH-30] [DAILY]
//
// Bracketed tokens are lifted out of the item text: DUE:LAUNCH±N becomes a
// due offset, DAILY/WEEKLY a recurrence, anything else an upper-cased tag.
package playbook

// DocType classifies a checklist document.
type DocType string

const (
	DocTypeEngine     DocType = "engine"
	DocTypePlaybook   DocType = "playbook"
	DocTypeOperations DocType = "operations"
)

// Valid reports whether t is a known document type.
func (t DocType) Valid() bool {
	switch t {
	case DocTypeEngine, DocTypePlaybook, DocTypeOperations:
		return true
	}
	return false
}

// Recurrence marks a repeating checklist item.
type Recurrence string

const (
	RecurrenceNone   Recurrence = ""
	RecurrenceDaily  Recurrence = "daily"
	RecurrenceWeekly Recurrence = "weekly"
)

// Well-known generic tags.
const (
	TagCritical     = "CRITICAL"
	TagPriorityHigh = "PRIORITY:HIGH"
)

// Item is a single open checklist line.
type Item struct {
	Phase      string
	Section    string
	Text       string
	SortOrder  int
	Tags       []string
	DueOffset  *int // days relative to launch; nil when absent
	Recurrence Recurrence
}

// HasTag reports whether the item carries tag (already upper-cased).
func (i Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Document is the result of parsing one markup text.
type Document struct {
	Phases []string // distinct, first-seen order
	Items  []Item   // document order, SortOrder 0..n-1
}
