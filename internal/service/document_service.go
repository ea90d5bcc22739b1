package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shiftiq/internal/dto"
	"shiftiq/internal/models"
	"shiftiq/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// DocumentService is the admin CRUD layer over documents. Creating or
// updating a document re-runs ingestion so the searchable chunks track the
// stored content.
type DocumentService struct {
	docRepo       *repository.DocumentRepository
	ingestService *IngestService
	logger        *zap.Logger
}

func NewDocumentService(docRepo *repository.DocumentRepository, ingestService *IngestService, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		docRepo:       docRepo,
		ingestService: ingestService,
		logger:        logger,
	}
}

func (s *DocumentService) Create(ctx context.Context, createdBy uuid.UUID, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	category := models.DocumentCategory(req.Category)
	if category == "" {
		category = models.CategoryOther
	}
	fileType := req.FileType
	if fileType == "" {
		fileType = "text"
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	doc := &models.Document{
		ID:        uuid.New(),
		Title:     req.Title,
		Content:   sanitizeUTF8(req.Content),
		Category:  category,
		Tags:      tags,
		FileType:  fileType,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	// Ingestion failure does not fail the create; the document can be
	// reprocessed explicitly.
	if _, err := s.ingestService.ProcessDocument(ctx, doc.ID); err != nil {
		s.logger.Warn("Ingestion after create failed",
			zap.String("document_id", doc.ID.String()),
			zap.Error(err),
		)
	}

	return toDocumentResponse(doc), nil
}

func (s *DocumentService) Get(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

func (s *DocumentService) List(ctx context.Context, category string, limit, offset int) ([]*dto.DocumentResponse, error) {
	docs, err := s.docRepo.List(ctx, category, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.DocumentResponse, len(docs))
	for i, doc := range docs {
		responses[i] = toDocumentResponse(doc)
	}
	return responses, nil
}

func (s *DocumentService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	if req.Title != "" {
		doc.Title = req.Title
	}
	if req.Content != "" {
		doc.Content = sanitizeUTF8(req.Content)
	}
	if req.Category != "" {
		doc.Category = models.DocumentCategory(req.Category)
	}
	if req.Tags != nil {
		doc.Tags = req.Tags
	}
	doc.UpdatedAt = time.Now()

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}

	if _, err := s.ingestService.ProcessDocument(ctx, doc.ID); err != nil {
		s.logger.Warn("Re-ingestion after update failed",
			zap.String("document_id", doc.ID.String()),
			zap.Error(err),
		)
	}

	return toDocumentResponse(doc), nil
}

// Delete removes a document and, through the store's cascade, all of its
// chunk rows.
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.docRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrDocumentNotFound
		}
		return err
	}

	return s.docRepo.Delete(ctx, id)
}

func toDocumentResponse(doc *models.Document) *dto.DocumentResponse {
	createdBy := ""
	if doc.CreatedBy != uuid.Nil {
		createdBy = doc.CreatedBy.String()
	}
	return &dto.DocumentResponse{
		ID:        doc.ID.String(),
		Title:     doc.Title,
		Content:   doc.Content,
		Category:  string(doc.Category),
		Tags:      doc.Tags,
		FileType:  doc.FileType,
		CreatedBy: createdBy,
		CreatedAt: doc.CreatedAt.Format(time.RFC3339),
		UpdatedAt: doc.UpdatedAt.Format(time.RFC3339),
	}
}
