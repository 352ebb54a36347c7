package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/example/launchpad/internal/apperr"
	"github.com/example/launchpad/internal/core/playbook"
	"github.com/example/launchpad/internal/logging"
	"github.com/example/launchpad/internal/ports/primary"
	"github.com/example/launchpad/internal/ports/secondary"
)

// DocumentServiceImpl implements the DocumentService interface.
type DocumentServiceImpl struct {
	docRepo secondary.DocumentRepository
	logger  *zap.Logger
}

// NewDocumentService creates a new DocumentService with injected dependencies.
func NewDocumentService(docRepo secondary.DocumentRepository, logger *zap.Logger) *DocumentServiceImpl {
	return &DocumentServiceImpl{
		docRepo: docRepo,
		logger:  logging.OrNop(logger),
	}
}

// ParseDocument parses markup without storing it.
func (s *DocumentServiceImpl) ParseDocument(ctx context.Context, content string) (*primary.ParsedDocument, error) {
	doc, err := playbook.Parse(content)
	if err != nil {
		return nil, err
	}
	return &primary.ParsedDocument{Phases: doc.Phases, Items: doc.Items}, nil
}

// RegisterDocument validates and stores a new document. Name, type and
// version fall back to the content's frontmatter.
func (s *DocumentServiceImpl) RegisterDocument(ctx context.Context, req primary.RegisterDocumentRequest) (*primary.Document, error) {
	fm, body, err := playbook.SplitFrontMatter(req.Content)
	if err != nil {
		return nil, err
	}

	name := firstNonEmpty(req.Name, fm.Name)
	docType := strings.ToLower(firstNonEmpty(req.DocType, fm.Type))
	version := firstNonEmpty(req.Version, fm.Version, "1")

	if strings.TrimSpace(name) == "" {
		return nil, apperr.InvalidDocument("name", "is required")
	}
	if !playbook.DocType(docType).Valid() {
		return nil, apperr.InvalidDocument("type", fmt.Sprintf("%q must be engine, playbook or operations", docType))
	}
	if _, err := playbook.ParseBody(body); err != nil {
		return nil, err
	}

	nextID, err := s.docRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate document ID: %w", err)
	}

	record := &secondary.DocumentRecord{
		ID:         nextID,
		Name:       name,
		DocType:    docType,
		RawContent: req.Content,
		Version:    version,
	}
	if err := s.docRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	s.logger.Info("document registered",
		zap.String("document_id", nextID),
		zap.String("doc_type", docType),
		zap.String("version", version),
	)

	return s.GetDocument(ctx, nextID)
}

// UpdateDocument replaces a document's content and bumps its version. A
// version in the new content's frontmatter wins over the bump. Projects
// already composed from the document keep their copied items.
func (s *DocumentServiceImpl) UpdateDocument(ctx context.Context, req primary.UpdateDocumentRequest) (*primary.Document, error) {
	existing, err := s.docRepo.GetByID(ctx, req.DocumentID)
	if err != nil {
		return nil, err
	}

	fm, _, err := playbook.SplitFrontMatter(req.Content)
	if err != nil {
		return nil, err
	}
	if _, err := playbook.Parse(req.Content); err != nil {
		return nil, err
	}

	version := fm.Version
	if version == "" || version == existing.Version {
		version = bumpVersion(existing.Version)
	}

	if err := s.docRepo.UpdateContent(ctx, req.DocumentID, req.Content, version); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	s.logger.Info("document updated",
		zap.String("document_id", req.DocumentID),
		zap.String("from_version", existing.Version),
		zap.String("to_version", version),
	)

	return s.GetDocument(ctx, req.DocumentID)
}

// GetDocument retrieves a document by ID.
func (s *DocumentServiceImpl) GetDocument(ctx context.Context, documentID string) (*primary.Document, error) {
	record, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return s.recordToDocument(record), nil
}

// ListDocuments lists documents with optional filters.
func (s *DocumentServiceImpl) ListDocuments(ctx context.Context, filters primary.DocumentFilters) ([]*primary.Document, error) {
	records, err := s.docRepo.List(ctx, secondary.DocumentFilters{DocType: filters.DocType})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make([]*primary.Document, len(records))
	for i, r := range records {
		docs[i] = s.recordToDocument(r)
	}
	return docs, nil
}

// Helper methods

func (s *DocumentServiceImpl) recordToDocument(r *secondary.DocumentRecord) *primary.Document {
	doc := &primary.Document{
		ID:         r.ID,
		Name:       r.Name,
		DocType:    r.DocType,
		RawContent: r.RawContent,
		Version:    r.Version,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if parsed, err := playbook.Parse(r.RawContent); err == nil {
		doc.PhaseCount = len(parsed.Phases)
		doc.ItemCount = len(parsed.Items)
	}
	return doc
}

// bumpVersion increments an integer version; other schemes get a ".1" suffix.
func bumpVersion(v string) string {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return v + ".1"
	}
	return strconv.Itoa(n + 1)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Ensure DocumentServiceImpl implements the interface
var _ primary.DocumentService = (*DocumentServiceImpl)(nil)
