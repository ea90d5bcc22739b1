package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"shiftiq/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDocs struct {
	doc *models.Document
	err error
}

func (f *fakeDocs) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

type fakeChunkStore struct {
	chunks []*models.DocumentChunk
	err    error
	calls  int
}

func (f *fakeChunkStore) ReplaceForDocument(ctx context.Context, documentID uuid.UUID, chunks []*models.DocumentChunk) error {
	f.calls++
	f.chunks = chunks
	return f.err
}

// failingEmbedder fails Embed for specific call indexes (1-based).
type failingEmbedder struct {
	fakeProvider
	failOn map[int]bool
	calls  int
}

func (f *failingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.failOn[f.calls] {
		return nil, errors.New("embedding unavailable")
	}
	return []float32{0.5}, nil
}

func docWithContent(content string) *fakeDocs {
	return &fakeDocs{doc: &models.Document{
		ID:      uuid.New(),
		Title:   "Handbook",
		Content: content,
	}}
}

func newTestIngestService(docs DocumentGetter, chunks ChunkReplacer, provider Provider) *IngestService {
	return NewIngestService(docs, chunks, provider, testRAGConfig(), zap.NewNop())
}

func TestProcessDocumentNotFound(t *testing.T) {
	svc := newTestIngestService(&fakeDocs{err: pgx.ErrNoRows}, &fakeChunkStore{}, &fakeProvider{})

	_, err := svc.ProcessDocument(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestProcessDocumentEmptyContent(t *testing.T) {
	store := &fakeChunkStore{}
	svc := newTestIngestService(docWithContent("   "), store, &fakeProvider{})

	_, err := svc.ProcessDocument(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrEmptyDocument)
	assert.Equal(t, 0, store.calls)
}

func TestProcessDocumentStoresAllChunks(t *testing.T) {
	// 2500 runes with size 1000 / overlap 200 yields windows at 0, 800, 1600.
	content := strings.Repeat("a", 2500)
	store := &fakeChunkStore{}
	provider := &fakeProvider{embedVec: []float32{0.5}}
	docs := docWithContent(content)

	svc := newTestIngestService(docs, store, provider)
	count, err := svc.ProcessDocument(context.Background(), docs.doc.ID)

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.Equal(t, 1, store.calls)
	require.Len(t, store.chunks, 3)
	for _, chunk := range store.chunks {
		assert.Equal(t, docs.doc.ID, chunk.DocumentID)
		assert.NotEmpty(t, chunk.Content)
	}
}

func TestProcessDocumentSkipsFailedEmbeddings(t *testing.T) {
	content := strings.Repeat("a", 2500)
	store := &fakeChunkStore{}
	provider := &failingEmbedder{failOn: map[int]bool{2: true}}
	docs := docWithContent(content)

	svc := newTestIngestService(docs, store, provider)
	count, err := svc.ProcessDocument(context.Background(), docs.doc.ID)

	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, store.chunks, 2)
}

func TestProcessDocumentAllEmbeddingsFail(t *testing.T) {
	content := strings.Repeat("a", 2500)
	store := &fakeChunkStore{}
	provider := &failingEmbedder{failOn: map[int]bool{1: true, 2: true, 3: true}}

	svc := newTestIngestService(docWithContent(content), store, provider)
	_, err := svc.ProcessDocument(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrEmbeddingFailure)
	assert.Equal(t, 0, store.calls)
}

func TestProcessDocumentStoreErrorPropagates(t *testing.T) {
	content := strings.Repeat("a", 2500)
	store := &fakeChunkStore{err: errors.New("deadlock detected")}
	provider := &fakeProvider{embedVec: []float32{0.5}}

	svc := newTestIngestService(docWithContent(content), store, provider)
	_, err := svc.ProcessDocument(context.Background(), uuid.New())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmbeddingFailure)
}
