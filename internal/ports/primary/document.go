package primary

import (
	"context"

	"github.com/example/launchpad/internal/core/playbook"
)

// DocumentService defines the primary port for checklist document operations.
type DocumentService interface {
	// ParseDocument parses markup without storing it.
	ParseDocument(ctx context.Context, content string) (*ParsedDocument, error)

	// RegisterDocument validates and stores a new document.
	RegisterDocument(ctx context.Context, req RegisterDocumentRequest) (*Document, error)

	// UpdateDocument replaces a document's content and bumps its version.
	UpdateDocument(ctx context.Context, req UpdateDocumentRequest) (*Document, error)

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, documentID string) (*Document, error)

	// ListDocuments lists documents with optional filters.
	ListDocuments(ctx context.Context, filters DocumentFilters) ([]*Document, error)
}

// ParsedDocument is the transient result of parsing markup.
type ParsedDocument struct {
	Phases []string
	Items  []playbook.Item
}

// RegisterDocumentRequest contains parameters for registering a document.
// Name, DocType and Version fall back to the content's frontmatter.
type RegisterDocumentRequest struct {
	Name    string
	DocType string // engine, playbook, operations
	Version string // Optional, defaults to "1"
	Content string
}

// UpdateDocumentRequest contains parameters for updating a document.
type UpdateDocumentRequest struct {
	DocumentID string
	Content    string
}

// Document represents a checklist document at the port boundary.
type Document struct {
	ID         string
	Name       string
	DocType    string
	RawContent string
	Version    string
	PhaseCount int
	ItemCount  int
	CreatedAt  string
	UpdatedAt  string
}

// DocumentFilters contains filter options for querying documents.
type DocumentFilters struct {
	DocType string
}
