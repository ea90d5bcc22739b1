package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shiftiq/internal/chunker"
	"shiftiq/internal/models"
	"shiftiq/pkg/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// DocumentGetter loads documents for ingestion.
type DocumentGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
}

// ChunkReplacer swaps the full chunk set of a document.
type ChunkReplacer interface {
	ReplaceForDocument(ctx context.Context, documentID uuid.UUID, chunks []*models.DocumentChunk) error
}

// IngestService (re)computes the searchable representation of one document:
// chunk the text, embed each chunk, replace the stored set.
type IngestService struct {
	documents DocumentGetter
	chunks    ChunkReplacer
	provider  Provider
	config    *config.RAGConfig
	logger    *zap.Logger
}

func NewIngestService(
	documents DocumentGetter,
	chunks ChunkReplacer,
	provider Provider,
	cfg *config.RAGConfig,
	logger *zap.Logger,
) *IngestService {
	return &IngestService{
		documents: documents,
		chunks:    chunks,
		provider:  provider,
		config:    cfg,
		logger:    logger,
	}
}

// ProcessDocument re-ingests one document and returns the number of chunks
// stored. A chunk whose embedding call fails is skipped, not fatal; the run
// fails only when no chunk could be embedded at all. The stored set is
// replaced only after all embedding attempts, so the document never carries
// a mixture of old and new chunks.
func (s *IngestService) ProcessDocument(ctx context.Context, documentID uuid.UUID) (int, error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrDocumentNotFound
		}
		return 0, fmt.Errorf("failed to load document: %w", err)
	}

	pieces, err := chunker.Split(doc.Content, s.config.ChunkSize, s.config.ChunkOverlap)
	if err != nil {
		return 0, fmt.Errorf("failed to split document: %w", err)
	}
	if len(pieces) == 0 {
		return 0, ErrEmptyDocument
	}

	now := time.Now()
	var chunks []*models.DocumentChunk
	for i, piece := range pieces {
		vec, err := s.provider.Embed(ctx, piece.Content)
		if err != nil {
			s.logger.Warn("Failed to embed chunk, skipping",
				zap.String("document_id", documentID.String()),
				zap.Int("chunk_index", i),
				zap.Error(err),
			)
			continue
		}

		chunks = append(chunks, &models.DocumentChunk{
			ID:         uuid.New(),
			DocumentID: documentID,
			Content:    sanitizeUTF8(piece.Content),
			Embedding:  pgvector.NewVector(vec),
			CreatedAt:  now,
		})
	}

	if len(chunks) == 0 {
		return 0, ErrEmbeddingFailure
	}

	if err := s.chunks.ReplaceForDocument(ctx, documentID, chunks); err != nil {
		return 0, fmt.Errorf("failed to store embeddings: %w", err)
	}

	s.logger.Info("Document ingested",
		zap.String("document_id", documentID.String()),
		zap.Int("chunks_total", len(pieces)),
		zap.Int("chunks_stored", len(chunks)),
	)

	return len(chunks), nil
}
