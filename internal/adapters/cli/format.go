package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/example/launchpad/internal/ports/primary"
)

func statusLabel(status string) string {
	switch status {
	case "setup":
		return color.New(color.FgHiBlue).Sprint(status)
	case "complete":
		return color.New(color.FgHiGreen).Sprint(status)
	default:
		return color.New(color.FgYellow).Sprint(status)
	}
}

func checkbox(completed bool) string {
	if completed {
		return color.New(color.FgGreen).Sprint("[x]")
	}
	return "[ ]"
}

func tagLabels(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		switch t {
		case "CRITICAL":
			parts[i] = color.New(color.FgRed, color.Bold).Sprint(t)
		case "PRIORITY:HIGH":
			parts[i] = color.New(color.FgHiYellow).Sprint(t)
		default:
			parts[i] = color.New(color.FgCyan).Sprint(t)
		}
	}
	return " [" + strings.Join(parts, ", ") + "]"
}

// itemSuffix lists due date, recurrence and link of an item.
func itemSuffix(item *primary.ChecklistItem) string {
	var extra []string
	if item.DueDate != "" {
		extra = append(extra, "due "+item.DueDate)
	} else if item.DueOffset != nil {
		extra = append(extra, fmt.Sprintf("due L%+d", *item.DueOffset))
	}
	if item.Recurrence != "" {
		extra = append(extra, item.Recurrence)
	}
	if item.LinkedTaskID != "" {
		extra = append(extra, "→ "+item.LinkedTaskID)
	}
	if len(extra) == 0 {
		return ""
	}
	return color.New(color.FgHiBlack).Sprint(" (" + strings.Join(extra, ", ") + ")")
}

func progressBar(done, total, width int) string {
	if total == 0 {
		return strings.Repeat("·", width)
	}
	filled := done * width / total
	return color.New(color.FgGreen).Sprint(strings.Repeat("█", filled)) + strings.Repeat("·", width-filled)
}
