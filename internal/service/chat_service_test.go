package service

import (
	"context"
	"errors"
	"testing"

	"shiftiq/internal/llm"
	"shiftiq/internal/models"
	"shiftiq/pkg/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProvider struct {
	embedVec   []float32
	embedErr   error
	embedCalls int

	completions   []llm.CompleteOptions
	completeFn    func(opts llm.CompleteOptions) (string, error)
	completeCalls int
}

func (f *fakeProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	f.embedCalls++
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return f.embedVec, nil
}

func (f *fakeProvider) Complete(ctx context.Context, messages []llm.Message, opts llm.CompleteOptions) (string, error) {
	f.completeCalls++
	f.completions = append(f.completions, opts)
	return f.completeFn(opts)
}

type fakeSessions struct {
	session *models.ChatSession
	err     error
}

func (f *fakeSessions) GetByID(ctx context.Context, id uuid.UUID) (*models.ChatSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

type fakeSearcher struct {
	matches   []*models.ChunkMatch
	err       error
	limit     int
	threshold float64
}

func (f *fakeSearcher) Search(ctx context.Context, embedding pgvector.Vector, limit int, threshold float64) ([]*models.ChunkMatch, error) {
	f.limit = limit
	f.threshold = threshold
	if f.err != nil {
		return nil, f.err
	}
	return f.matches, nil
}

type fakeTurns struct {
	userMsg      *models.ChatMessage
	assistantMsg *models.ChatMessage
	err          error
	calls        int
}

func (f *fakeTurns) AppendTurn(ctx context.Context, userMsg, assistantMsg *models.ChatMessage) error {
	f.calls++
	f.userMsg = userMsg
	f.assistantMsg = assistantMsg
	return f.err
}

func testRAGConfig() *config.RAGConfig {
	return &config.RAGConfig{
		ChunkSize:           1000,
		ChunkOverlap:        200,
		TopK:                3,
		SimilarityThreshold: 0.7,
	}
}

func newTestChatService(sessions SessionGetter, chunks ChunkSearcher, turns TurnWriter, provider Provider) *ChatService {
	return NewChatService(sessions, chunks, turns, provider, testRAGConfig(), zap.NewNop())
}

func existingSession() *fakeSessions {
	return &fakeSessions{session: &models.ChatSession{ID: uuid.New()}}
}

func TestAnswerGroundedWhenMatchAboveThreshold(t *testing.T) {
	provider := &fakeProvider{
		embedVec: []float32{0.1, 0.2},
		completeFn: func(opts llm.CompleteOptions) (string, error) {
			return "Count the drawer against the overnight sheet.", nil
		},
	}
	searcher := &fakeSearcher{matches: []*models.ChunkMatch{
		{Title: "Opening Checklist", Content: "Count the cash drawer.", Similarity: 0.82, Category: models.CategoryOperations},
		{Title: "POS Quick Reference", Content: "End of shift report.", Similarity: 0.74, Category: models.CategoryPOS},
	}}
	turns := &fakeTurns{}

	svc := newTestChatService(existingSession(), searcher, turns, provider)
	resp, err := svc.Answer(context.Background(), uuid.New(), "How do I count the drawer?")

	require.NoError(t, err)
	assert.Equal(t, SourceInternal, resp.Source)
	assert.Equal(t, "Count the drawer against the overnight sheet.", resp.Response)
	require.Len(t, resp.SourceDocuments, 2)
	assert.Equal(t, "Opening Checklist", resp.SourceDocuments[0].Title)
	assert.InDelta(t, 0.82, resp.SourceDocuments[0].Similarity, 1e-9)

	// One answer call, no classifier.
	require.Equal(t, 1, provider.completeCalls)
	assert.InDelta(t, answerTemperature, provider.completions[0].Temperature, 1e-9)
	assert.Equal(t, answerMaxTokens, provider.completions[0].MaxTokens)

	assert.Equal(t, 3, searcher.limit)
	assert.InDelta(t, 0.7, searcher.threshold, 1e-9)
}

func TestAnswerFallsBackBelowThreshold(t *testing.T) {
	provider := &fakeProvider{
		embedVec: []float32{0.1},
		completeFn: func(opts llm.CompleteOptions) (string, error) {
			if opts.MaxTokens == classifierMaxTokens {
				return "craft_beer", nil
			}
			return "An IPA is a hop-forward pale ale.", nil
		},
	}
	searcher := &fakeSearcher{matches: []*models.ChunkMatch{
		{Title: "Opening Checklist", Content: "irrelevant", Similarity: 0.65, Category: models.CategoryOperations},
	}}
	turns := &fakeTurns{}

	svc := newTestChatService(existingSession(), searcher, turns, provider)
	resp, err := svc.Answer(context.Background(), uuid.New(), "What is an IPA?")

	require.NoError(t, err)
	assert.Equal(t, SourceFallback, resp.Source)
	assert.Equal(t, "An IPA is a hop-forward pale ale.", resp.Response)
	assert.Empty(t, resp.SourceDocuments)

	// Classifier call plus answer call.
	require.Equal(t, 2, provider.completeCalls)
	assert.InDelta(t, classifierTemperature, provider.completions[0].Temperature, 1e-9)
	assert.Equal(t, classifierMaxTokens, provider.completions[0].MaxTokens)
	assert.Equal(t, answerMaxTokens, provider.completions[1].MaxTokens)
}

func TestAnswerEscalatesOutsideAllowedTopics(t *testing.T) {
	provider := &fakeProvider{
		embedVec: []float32{0.1},
		completeFn: func(opts llm.CompleteOptions) (string, error) {
			return "Other", nil
		},
	}
	turns := &fakeTurns{}

	svc := newTestChatService(existingSession(), &fakeSearcher{}, turns, provider)
	resp, err := svc.Answer(context.Background(), uuid.New(), "What is the capital of France?")

	require.NoError(t, err)
	assert.Equal(t, SourceFallback, resp.Source)
	assert.Equal(t, EscalationMessage, resp.Response)

	// The escalation short-circuits: no answer-generating call is made.
	assert.Equal(t, 1, provider.completeCalls)
}

func TestAnswerSearchErrorDegradesToFallback(t *testing.T) {
	provider := &fakeProvider{
		embedVec: []float32{0.1},
		completeFn: func(opts llm.CompleteOptions) (string, error) {
			if opts.MaxTokens == classifierMaxTokens {
				return "hospitality", nil
			}
			return "Greet guests within a minute of seating.", nil
		},
	}
	searcher := &fakeSearcher{err: errors.New("connection refused")}
	turns := &fakeTurns{}

	svc := newTestChatService(existingSession(), searcher, turns, provider)
	resp, err := svc.Answer(context.Background(), uuid.New(), "How fast should we greet tables?")

	require.NoError(t, err)
	assert.Equal(t, SourceFallback, resp.Source)
	assert.Equal(t, "Greet guests within a minute of seating.", resp.Response)
}

func TestAnswerRejectsEmptyMessage(t *testing.T) {
	svc := newTestChatService(existingSession(), &fakeSearcher{}, &fakeTurns{}, &fakeProvider{})

	_, err := svc.Answer(context.Background(), uuid.New(), "   ")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestAnswerUnknownSession(t *testing.T) {
	sessions := &fakeSessions{err: pgx.ErrNoRows}
	svc := newTestChatService(sessions, &fakeSearcher{}, &fakeTurns{}, &fakeProvider{})

	_, err := svc.Answer(context.Background(), uuid.New(), "hello")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAnswerEmbedErrorIsFatal(t *testing.T) {
	provider := &fakeProvider{embedErr: errors.New("rate limited")}
	turns := &fakeTurns{}

	svc := newTestChatService(existingSession(), &fakeSearcher{}, turns, provider)
	_, err := svc.Answer(context.Background(), uuid.New(), "hello")

	require.Error(t, err)
	assert.Equal(t, 0, turns.calls)
}

func TestAnswerPersistsBothMessages(t *testing.T) {
	sessionID := uuid.New()
	provider := &fakeProvider{
		embedVec: []float32{0.1},
		completeFn: func(opts llm.CompleteOptions) (string, error) {
			return "Answer text.", nil
		},
	}
	searcher := &fakeSearcher{matches: []*models.ChunkMatch{
		{Title: "Doc", Content: "text", Similarity: 0.9, Category: models.CategoryOperations},
	}}
	turns := &fakeTurns{}

	svc := newTestChatService(existingSession(), searcher, turns, provider)
	_, err := svc.Answer(context.Background(), sessionID, "question")

	require.NoError(t, err)
	require.Equal(t, 1, turns.calls)
	require.NotNil(t, turns.userMsg)
	require.NotNil(t, turns.assistantMsg)

	assert.Equal(t, sessionID, turns.userMsg.SessionID)
	assert.True(t, turns.userMsg.IsUser)
	assert.Equal(t, "question", turns.userMsg.Content)

	assert.False(t, turns.assistantMsg.IsUser)
	assert.Equal(t, "Answer text.", turns.assistantMsg.Content)
	assert.True(t, turns.assistantMsg.CreatedAt.After(turns.userMsg.CreatedAt))
}

func TestAnswerSurvivesPersistenceFailure(t *testing.T) {
	provider := &fakeProvider{
		embedVec: []float32{0.1},
		completeFn: func(opts llm.CompleteOptions) (string, error) {
			return "Answer text.", nil
		},
	}
	searcher := &fakeSearcher{matches: []*models.ChunkMatch{
		{Title: "Doc", Content: "text", Similarity: 0.9, Category: models.CategoryOperations},
	}}
	turns := &fakeTurns{err: errors.New("disk full")}

	svc := newTestChatService(existingSession(), searcher, turns, provider)
	resp, err := svc.Answer(context.Background(), uuid.New(), "question")

	require.NoError(t, err)
	assert.Equal(t, "Answer text.", resp.Response)
}

func TestAnswerReplacesEmptyCompletion(t *testing.T) {
	provider := &fakeProvider{
		embedVec: []float32{0.1},
		completeFn: func(opts llm.CompleteOptions) (string, error) {
			return "  ", nil
		},
	}
	searcher := &fakeSearcher{matches: []*models.ChunkMatch{
		{Title: "Doc", Content: "text", Similarity: 0.9, Category: models.CategoryOperations},
	}}

	svc := newTestChatService(existingSession(), searcher, &fakeTurns{}, provider)
	resp, err := svc.Answer(context.Background(), uuid.New(), "question")

	require.NoError(t, err)
	assert.Equal(t, emptyAnswerMessage, resp.Response)
}
