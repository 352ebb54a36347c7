package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/launchpad/internal/apperr"
	"github.com/example/launchpad/internal/ports/primary"
)

func newTestDocumentService() (*DocumentServiceImpl, *mockDocumentRepository) {
	repo := newMockDocumentRepository()
	return NewDocumentService(repo, nil), repo
}

func TestRegisterDocument(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		req         primary.RegisterDocumentRequest
		wantName    string
		wantType    string
		wantVersion string
		wantErr     error
	}{
		{
			name:        "explicit fields",
			req:         primary.RegisterDocumentRequest{Name: "Engine", DocType: "engine", Content: engineDoc},
			wantName:    "Engine",
			wantType:    "engine",
			wantVersion: "1",
		},
		{
			name:        "frontmatter fallback",
			req:         primary.RegisterDocumentRequest{Content: "---\nname: Socials\ntype: Playbook\nversion: \"3\"\n---\n" + engineDoc},
			wantName:    "Socials",
			wantType:    "playbook",
			wantVersion: "3",
		},
		{
			name:        "request wins over frontmatter",
			req:         primary.RegisterDocumentRequest{Name: "Ops", DocType: "operations", Content: "---\nname: Other\ntype: engine\n---\n" + engineDoc},
			wantName:    "Ops",
			wantType:    "operations",
			wantVersion: "1",
		},
		{
			name:    "missing name",
			req:     primary.RegisterDocumentRequest{DocType: "engine", Content: engineDoc},
			wantErr: apperr.ErrInvalidDocument,
		},
		{
			name:    "unknown type",
			req:     primary.RegisterDocumentRequest{Name: "X", DocType: "manual", Content: engineDoc},
			wantErr: apperr.ErrInvalidDocument,
		},
		{
			name:    "no phases",
			req:     primary.RegisterDocumentRequest{Name: "X", DocType: "engine", Content: "- [ ] orphan item"},
			wantErr: apperr.ErrInvalidDocument,
		},
		{
			name:    "unclosed frontmatter",
			req:     primary.RegisterDocumentRequest{Name: "X", DocType: "engine", Content: "---\nname: X\n# PHASE 1: A"},
			wantErr: apperr.ErrInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestDocumentService()

			doc, err := service.RegisterDocument(ctx, tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if len(repo.docs) != 0 {
					t.Error("nothing should be stored on validation failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("RegisterDocument failed: %v", err)
			}
			if doc.ID != "DOC-001" {
				t.Errorf("expected DOC-001, got %q", doc.ID)
			}
			if doc.Name != tt.wantName || doc.DocType != tt.wantType || doc.Version != tt.wantVersion {
				t.Errorf("got name=%q type=%q version=%q", doc.Name, doc.DocType, doc.Version)
			}
			if doc.PhaseCount != 2 || doc.ItemCount != 3 {
				t.Errorf("expected 2 phases / 3 items, got %d / %d", doc.PhaseCount, doc.ItemCount)
			}
		})
	}
}

func TestUpdateDocument_Versioning(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		current     string
		content     string
		wantVersion string
	}{
		{"numeric bump", "1", engineDoc, "2"},
		{"same frontmatter version bumps", "4", "---\nversion: \"4\"\n---\n" + engineDoc, "5"},
		{"explicit frontmatter version", "1", "---\nversion: \"2.0\"\n---\n" + engineDoc, "2.0"},
		{"non numeric bump", "beta", engineDoc, "beta.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestDocumentService()
			repo.seed("DOC-001", "Engine", engineDoc)
			repo.docs["DOC-001"].Version = tt.current

			doc, err := service.UpdateDocument(ctx, primary.UpdateDocumentRequest{DocumentID: "DOC-001", Content: tt.content})
			if err != nil {
				t.Fatalf("UpdateDocument failed: %v", err)
			}
			if doc.Version != tt.wantVersion {
				t.Errorf("expected version %q, got %q", tt.wantVersion, doc.Version)
			}
			if repo.docs["DOC-001"].RawContent != tt.content {
				t.Error("content not replaced")
			}
		})
	}
}

func TestUpdateDocument_RejectsInvalidContent(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestDocumentService()
	repo.seed("DOC-001", "Engine", engineDoc)

	_, err := service.UpdateDocument(ctx, primary.UpdateDocumentRequest{DocumentID: "DOC-001", Content: "no headings"})
	if !errors.Is(err, apperr.ErrInvalidDocument) {
		t.Fatalf("expected invalid document, got %v", err)
	}
	if repo.docs["DOC-001"].RawContent != engineDoc || repo.docs["DOC-001"].Version != "1" {
		t.Error("document should be unchanged")
	}
}

func TestUpdateDocument_NotFound(t *testing.T) {
	service, _ := newTestDocumentService()

	_, err := service.UpdateDocument(context.Background(), primary.UpdateDocumentRequest{DocumentID: "DOC-404", Content: engineDoc})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestParseDocument(t *testing.T) {
	service, _ := newTestDocumentService()

	parsed, err := service.ParseDocument(context.Background(), engineDoc)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	if len(parsed.Phases) != 2 || parsed.Phases[0] != "SETUP" || parsed.Phases[1] != "LAUNCH" {
		t.Errorf("unexpected phases %v", parsed.Phases)
	}
	if len(parsed.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(parsed.Items))
	}
	if parsed.Items[0].Text != "Register domain" || !parsed.Items[0].HasTag("CRITICAL") {
		t.Errorf("unexpected first item %+v", parsed.Items[0])
	}
}

func TestListDocuments_FilterByType(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestDocumentService()
	repo.seed("DOC-001", "Engine", engineDoc)
	repo.seed("DOC-002", "Socials", engineDoc)
	repo.docs["DOC-002"].DocType = "playbook"

	docs, err := service.ListDocuments(ctx, primary.DocumentFilters{DocType: "playbook"})
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "DOC-002" {
		t.Errorf("expected only DOC-002, got %v", docs)
	}
}
