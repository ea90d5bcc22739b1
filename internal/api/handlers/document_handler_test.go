package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"shiftiq/internal/dto"
	"shiftiq/internal/models"
	"shiftiq/internal/service"
	"shiftiq/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubDocs struct {
	doc *models.Document
	err error
}

func (s *stubDocs) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

type stubChunkStore struct {
	stored int
}

func (s *stubChunkStore) ReplaceForDocument(ctx context.Context, documentID uuid.UUID, chunks []*models.DocumentChunk) error {
	s.stored = len(chunks)
	return nil
}

func newProcessApp(docs service.DocumentGetter, chunks service.ChunkReplacer, provider service.Provider) *fiber.App {
	cfg := &config.RAGConfig{ChunkSize: 1000, ChunkOverlap: 200, TopK: 3, SimilarityThreshold: 0.7}
	ingestService := service.NewIngestService(docs, chunks, provider, cfg, zap.NewNop())
	handler := NewDocumentHandler(nil, ingestService, zap.NewNop())

	app := fiber.New()
	app.Post("/api/v1/process-document", handler.ProcessDocument)
	return app
}

func TestProcessDocumentMissingID(t *testing.T) {
	app := newProcessApp(&stubDocs{}, &stubChunkStore{}, &stubProvider{})

	resp := postJSON(t, app, "/api/v1/process-document", dto.ProcessDocumentRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProcessDocumentInvalidID(t *testing.T) {
	app := newProcessApp(&stubDocs{}, &stubChunkStore{}, &stubProvider{})

	resp := postJSON(t, app, "/api/v1/process-document", dto.ProcessDocumentRequest{DocumentID: "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProcessDocumentNotFound(t *testing.T) {
	app := newProcessApp(&stubDocs{err: pgx.ErrNoRows}, &stubChunkStore{}, &stubProvider{})

	resp := postJSON(t, app, "/api/v1/process-document", dto.ProcessDocumentRequest{DocumentID: uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProcessDocumentEmptyContent(t *testing.T) {
	docs := &stubDocs{doc: &models.Document{ID: uuid.New(), Content: " "}}
	app := newProcessApp(docs, &stubChunkStore{}, &stubProvider{})

	resp := postJSON(t, app, "/api/v1/process-document", dto.ProcessDocumentRequest{DocumentID: docs.doc.ID.String()})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProcessDocumentSuccess(t *testing.T) {
	docs := &stubDocs{doc: &models.Document{ID: uuid.New(), Content: strings.Repeat("a", 2500)}}
	chunks := &stubChunkStore{}
	app := newProcessApp(docs, chunks, &stubProvider{embedVec: []float32{0.5}})

	resp := postJSON(t, app, "/api/v1/process-document", dto.ProcessDocumentRequest{DocumentID: docs.doc.ID.String()})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[dto.ProcessDocumentResponse](t, resp)
	assert.True(t, body.Success)
	assert.Equal(t, 3, body.ChunksProcessed)
	assert.Equal(t, docs.doc.ID.String(), body.DocumentID)
	assert.Equal(t, 3, chunks.stored)
}
