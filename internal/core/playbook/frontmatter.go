package playbook

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/launchpad/internal/apperr"
)

// FrontMatter is the optional metadata block at the top of a document.
type FrontMatter struct {
	Name        string `yaml:"name,omitempty"`
	Type        string `yaml:"type,omitempty"`
	Version     string `yaml:"version,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// SplitFrontMatter separates a leading `---` fenced YAML block from the body.
// Content without a fence is returned unchanged with empty metadata.
func SplitFrontMatter(content string) (FrontMatter, string, error) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return FrontMatter{}, content, nil
	}

	rest := normalized[4:]
	var meta, body string
	if strings.HasPrefix(rest, "---\n") {
		body = rest[4:]
	} else {
		parts := strings.SplitN(rest, "\n---\n", 2)
		if len(parts) < 2 {
			return FrontMatter{}, "", apperr.InvalidDocument("frontmatter", "is not closed")
		}
		meta, body = parts[0], parts[1]
	}

	var fm FrontMatter
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		return FrontMatter{}, "", apperr.InvalidDocument("frontmatter", err.Error())
	}
	return fm, body, nil
}

// WriteFrontMatter renders metadata and body with YAML fences.
func WriteFrontMatter(fm FrontMatter, body string) (string, error) {
	data, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(bytes.TrimRight(data, "\n"))
	buf.WriteString("\n---\n")
	buf.WriteString(body)
	return buf.String(), nil
}
