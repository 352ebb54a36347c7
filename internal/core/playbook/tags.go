package playbook

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	bracketTokenRe = regexp.MustCompile(`\[[ \t]*([^\[\]\s][^\[\]]*?)[ \t]*\]`)
	dueTokenRe     = regexp.MustCompile(`(?i)^DUE:LAUNCH(?:[ \t]*([+-])[ \t]*(\d+))?$`)
)

// itemAttrs is what the bracketed tokens of one item resolve to.
type itemAttrs struct {
	text       string
	tags       []string
	dueOffset  *int
	recurrence Recurrence
}

// parseItemText lifts bracketed tokens out of raw item text.
// Unknown tokens are kept permissively as generic tags.
func parseItemText(raw string) itemAttrs {
	var attrs itemAttrs
	seen := make(map[string]bool)

	for _, m := range bracketTokenRe.FindAllStringSubmatch(raw, -1) {
		token := strings.TrimSpace(m[1])

		if offset, ok := parseDueOffset(token); ok {
			attrs.dueOffset = &offset
			continue
		}

		upper := strings.ToUpper(token)
		switch upper {
		case "DAILY":
			attrs.recurrence = RecurrenceDaily
			continue
		case "WEEKLY":
			attrs.recurrence = RecurrenceWeekly
			continue
		}

		if !seen[upper] {
			seen[upper] = true
			attrs.tags = append(attrs.tags, upper)
		}
	}

	stripped := bracketTokenRe.ReplaceAllString(raw, " ")
	attrs.text = strings.Join(strings.Fields(stripped), " ")
	return attrs
}

// parseDueOffset reads a DUE:LAUNCH±N token. An offset that does not fit in
// an int is not a due date, so the token stays a generic tag.
func parseDueOffset(token string) (int, bool) {
	d := dueTokenRe.FindStringSubmatch(token)
	if d == nil {
		return 0, false
	}
	if d[2] == "" {
		return 0, true
	}
	n, err := strconv.Atoi(d[1] + d[2])
	if err != nil {
		return 0, false
	}
	return n, true
}
