package playbook

import (
	"errors"
	"testing"

	"github.com/example/launchpad/internal/apperr"
)

func TestSplitFrontMatter(t *testing.T) {
	fm, body, err := SplitFrontMatter("---\nname: Newsletter Playbook\ntype: playbook\nversion: \"3\"\n---\n# Build\n")
	if err != nil {
		t.Fatalf("SplitFrontMatter failed: %v", err)
	}
	if fm.Name != "Newsletter Playbook" || fm.Type != "playbook" || fm.Version != "3" {
		t.Errorf("unexpected frontmatter %+v", fm)
	}
	if body != "# Build\n" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestSplitFrontMatter_NoFence(t *testing.T) {
	fm, body, err := SplitFrontMatter("# Build")
	if err != nil {
		t.Fatalf("SplitFrontMatter failed: %v", err)
	}
	if fm != (FrontMatter{}) || body != "# Build" {
		t.Errorf("expected passthrough, got %+v %q", fm, body)
	}
}

func TestSplitFrontMatter_Unclosed(t *testing.T) {
	_, _, err := SplitFrontMatter("---\nname: x\n# Build")
	if !errors.Is(err, apperr.ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestWriteFrontMatter_RoundTrip(t *testing.T) {
	in := FrontMatter{Name: "Ops", Type: "operations", Version: "2"}
	content, err := WriteFrontMatter(in, "# Run\n- [ ] Check metrics\n")
	if err != nil {
		t.Fatalf("WriteFrontMatter failed: %v", err)
	}
	out, body, err := SplitFrontMatter(content)
	if err != nil {
		t.Fatalf("SplitFrontMatter failed: %v", err)
	}
	if out != in {
		t.Errorf("frontmatter = %+v, want %+v", out, in)
	}
	if body != "# Run\n- [ ] Check metrics\n" {
		t.Errorf("unexpected body %q", body)
	}
}
