package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"shiftiq/internal/dto"
	"shiftiq/internal/llm"
	"shiftiq/internal/models"
	"shiftiq/internal/service"
	"shiftiq/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProvider struct {
	embedVec []float32
	answer   string
}

func (s *stubProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	return s.embedVec, nil
}

func (s *stubProvider) Complete(ctx context.Context, messages []llm.Message, opts llm.CompleteOptions) (string, error) {
	return s.answer, nil
}

type stubSessions struct {
	err error
}

func (s *stubSessions) GetByID(ctx context.Context, id uuid.UUID) (*models.ChatSession, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.ChatSession{ID: id}, nil
}

type stubSearcher struct {
	matches []*models.ChunkMatch
}

func (s *stubSearcher) Search(ctx context.Context, embedding pgvector.Vector, limit int, threshold float64) ([]*models.ChunkMatch, error) {
	return s.matches, nil
}

type stubTurns struct{}

func (s *stubTurns) AppendTurn(ctx context.Context, userMsg, assistantMsg *models.ChatMessage) error {
	return nil
}

func newChatApp(sessions service.SessionGetter, searcher service.ChunkSearcher, provider service.Provider) *fiber.App {
	cfg := &config.RAGConfig{ChunkSize: 1000, ChunkOverlap: 200, TopK: 3, SimilarityThreshold: 0.7}
	chatService := service.NewChatService(sessions, searcher, &stubTurns{}, provider, cfg, zap.NewNop())
	handler := NewChatHandler(chatService, zap.NewNop())

	app := fiber.New()
	app.Post("/api/v1/chat", handler.Chat)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestChatMissingFields(t *testing.T) {
	app := newChatApp(&stubSessions{}, &stubSearcher{}, &stubProvider{})

	resp := postJSON(t, app, "/api/v1/chat", dto.ChatRequest{Message: "hello"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/chat", dto.ChatRequest{SessionID: uuid.NewString()})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatInvalidSessionID(t *testing.T) {
	app := newChatApp(&stubSessions{}, &stubSearcher{}, &stubProvider{})

	resp := postJSON(t, app, "/api/v1/chat", dto.ChatRequest{Message: "hello", SessionID: "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatUnknownSession(t *testing.T) {
	app := newChatApp(&stubSessions{err: pgx.ErrNoRows}, &stubSearcher{}, &stubProvider{embedVec: []float32{0.1}})

	resp := postJSON(t, app, "/api/v1/chat", dto.ChatRequest{Message: "hello", SessionID: uuid.NewString()})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatGroundedAnswer(t *testing.T) {
	searcher := &stubSearcher{matches: []*models.ChunkMatch{
		{Title: "Opening Checklist", Content: "Count the drawer.", Similarity: 0.85, Category: models.CategoryOperations},
	}}
	provider := &stubProvider{embedVec: []float32{0.1}, answer: "Count the drawer at open."}

	app := newChatApp(&stubSessions{}, searcher, provider)
	resp := postJSON(t, app, "/api/v1/chat", dto.ChatRequest{Message: "How do I open?", SessionID: uuid.NewString()})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[dto.ChatResponse](t, resp)
	assert.Equal(t, service.SourceInternal, body.Source)
	assert.Equal(t, "Count the drawer at open.", body.Response)
	require.Len(t, body.SourceDocuments, 1)
	assert.Equal(t, "Opening Checklist", body.SourceDocuments[0].Title)
}
