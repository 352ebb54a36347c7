package playbook

import (
	"fmt"
	"strings"
)

// Render serializes a parsed document back into markup. Parsing the output
// yields the same phases and items.
func Render(doc *Document) string {
	var b strings.Builder
	emitted := make(map[string]bool)
	phaseNum := 0

	writePhase := func(name string) {
		phaseNum++
		emitted[name] = true
		fmt.Fprintf(&b, "# PHASE %d: %s\n", phaseNum, name)
	}

	// Phases without items still need a heading, in first-seen order.
	flushEmptyBefore := func(name string) {
		for _, p := range doc.Phases {
			if p == name {
				return
			}
			if !emitted[p] {
				writePhase(p)
			}
		}
	}

	curPhase, curSection := "", ""
	started := false
	for _, item := range doc.Items {
		newPhase := !started || item.Phase != curPhase
		// An empty section can only follow a fresh phase heading.
		if !newPhase && item.Section != curSection && item.Section == "" {
			newPhase = true
		}
		if newPhase {
			if !emitted[item.Phase] {
				flushEmptyBefore(item.Phase)
			}
			writePhase(item.Phase)
			curPhase, curSection = item.Phase, ""
			started = true
		}
		if item.Section != curSection {
			fmt.Fprintf(&b, "## %s\n", item.Section)
			curSection = item.Section
		}
		b.WriteString(RenderItem(item))
		b.WriteString("\n")
	}

	for _, p := range doc.Phases {
		if !emitted[p] {
			writePhase(p)
		}
	}
	return b.String()
}

// RenderItem formats one item as an open checklist line.
func RenderItem(item Item) string {
	parts := []string{"- [ ]"}
	if item.Text != "" {
		parts = append(parts, item.Text)
	}
	for _, tag := range item.Tags {
		parts = append(parts, "["+tag+"]")
	}
	if item.DueOffset != nil {
		parts = append(parts, fmt.Sprintf("[DUE:LAUNCH%+d]", *item.DueOffset))
	}
	switch item.Recurrence {
	case RecurrenceDaily:
		parts = append(parts, "[DAILY]")
	case RecurrenceWeekly:
		parts = append(parts, "[WEEKLY]")
	}
	return strings.Join(parts, " ")
}
