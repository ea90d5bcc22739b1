package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shiftiq/internal/dto"
	"shiftiq/internal/llm"
	"shiftiq/internal/models"
	"shiftiq/pkg/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// Answer source tags returned to the client.
const (
	SourceInternal = "internal"
	SourceFallback = "fallback"
	SourceError    = "error"
)

const (
	answerTemperature     = 0.3
	classifierTemperature = 0.1
	answerMaxTokens       = 500
	classifierMaxTokens   = 50

	// EscalationMessage is the fixed refusal for questions outside the
	// allowed topics. No answer-generating model call is made for them.
	EscalationMessage = "That topic isn't in the system. Ask your manager or submit it for review."

	// ApologyMessage is the safe user-facing string for unhandled failures.
	ApologyMessage = "I apologize, but I encountered an error processing your request. Please try again."

	emptyAnswerMessage = "I apologize, but I could not generate a response."
)

var allowedTopics = map[string]struct{}{
	"restaurant_operations": {},
	"hospitality":           {},
	"pos_systems":           {},
	"craft_beer":            {},
	"cocktails":             {},
}

// SessionGetter checks that a chat turn targets an existing session.
type SessionGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.ChatSession, error)
}

// ChunkSearcher finds stored chunks similar to a query embedding.
type ChunkSearcher interface {
	Search(ctx context.Context, embedding pgvector.Vector, limit int, threshold float64) ([]*models.ChunkMatch, error)
}

// TurnWriter appends a completed user/assistant exchange to history.
type TurnWriter interface {
	AppendTurn(ctx context.Context, userMsg, assistantMsg *models.ChatMessage) error
}

// ChatService answers one chat turn: embed the question, search the document
// chunks, answer from context when a close enough match exists, otherwise
// fall back to a topic-gated general answer; then persist the exchange.
type ChatService struct {
	sessions SessionGetter
	chunks   ChunkSearcher
	turns    TurnWriter
	provider Provider
	config   *config.RAGConfig
	logger   *zap.Logger
}

func NewChatService(
	sessions SessionGetter,
	chunks ChunkSearcher,
	turns TurnWriter,
	provider Provider,
	cfg *config.RAGConfig,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		sessions: sessions,
		chunks:   chunks,
		turns:    turns,
		provider: provider,
		config:   cfg,
		logger:   logger,
	}
}

func (s *ChatService) Answer(ctx context.Context, sessionID uuid.UUID, message string) (*dto.ChatResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrInvalidRequest
	}

	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	// A failed query embedding is fatal to the turn; nothing is persisted.
	queryVec, err := s.provider.Embed(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	// A search failure degrades to the fallback path rather than aborting.
	matches, err := s.chunks.Search(ctx, pgvector.NewVector(queryVec), s.config.TopK, s.config.SimilarityThreshold)
	if err != nil {
		s.logger.Error("Vector search failed", zap.Error(err))
		matches = nil
	}

	var answer string
	result := &dto.ChatResponse{
		Source:          SourceInternal,
		SourceDocuments: []dto.SourceDocument{},
	}

	if len(matches) > 0 && matches[0].Similarity >= s.config.SimilarityThreshold {
		answer, err = s.answerFromContext(ctx, message, matches)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			result.SourceDocuments = append(result.SourceDocuments, dto.SourceDocument{
				Title:      m.Title,
				Content:    m.Content,
				Similarity: m.Similarity,
				Category:   string(m.Category),
			})
		}
	} else {
		result.Source = SourceFallback
		answer, err = s.answerFallback(ctx, message)
		if err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(answer) == "" {
		answer = emptyAnswerMessage
	}
	result.Response = answer

	// History write is best-effort: the computed answer is returned even if
	// persistence fails.
	if err := s.persistTurn(ctx, sessionID, message, answer); err != nil {
		s.logger.Error("Failed to save chat history",
			zap.String("session_id", sessionID.String()),
			zap.Error(err),
		)
	}

	return result, nil
}

func (s *ChatService) answerFromContext(ctx context.Context, message string, matches []*models.ChunkMatch) (string, error) {
	var blocks []string
	for _, m := range matches {
		blocks = append(blocks, fmt.Sprintf("Document: %s\nCategory: %s\nContent: %s", m.Title, m.Category, m.Content))
	}

	system := fmt.Sprintf(`You are ShiftIQ, an AI assistant for restaurant and hospitality operations. Use the provided internal documents to answer questions accurately and helpfully. If the documents don't contain enough information, say so clearly.

Context from internal documents:
%s`, strings.Join(blocks, "\n\n"))

	answer, err := s.provider.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: message},
	}, llm.CompleteOptions{Temperature: answerTemperature, MaxTokens: answerMaxTokens})
	if err != nil {
		return "", fmt.Errorf("failed to generate grounded answer: %w", err)
	}

	return answer, nil
}

func (s *ChatService) answerFallback(ctx context.Context, message string) (string, error) {
	topic, err := s.classifyTopic(ctx, message)
	if err != nil {
		return "", err
	}

	if _, ok := allowedTopics[topic]; !ok {
		s.logger.Info("Question outside allowed topics", zap.String("topic", topic))
		return EscalationMessage, nil
	}

	system := fmt.Sprintf(`You are ShiftIQ, an AI assistant specialized in restaurant operations, hospitality, POS systems, craft beer, and cocktails. Provide helpful, accurate information for %s questions. Keep responses concise and practical.`, topic)

	answer, err := s.provider.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: message},
	}, llm.CompleteOptions{Temperature: answerTemperature, MaxTokens: answerMaxTokens})
	if err != nil {
		return "", fmt.Errorf("failed to generate fallback answer: %w", err)
	}

	return answer, nil
}

func (s *ChatService) classifyTopic(ctx context.Context, message string) (string, error) {
	system := `Classify this question into one of these allowed topics: restaurant_operations, hospitality, pos_systems, craft_beer, cocktails. If it doesn't fit any of these topics, respond with "other". Only respond with the topic name.`

	label, err := s.provider.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: message},
	}, llm.CompleteOptions{Temperature: classifierTemperature, MaxTokens: classifierMaxTokens})
	if err != nil {
		return "", fmt.Errorf("failed to classify topic: %w", err)
	}

	return strings.ToLower(strings.TrimSpace(label)), nil
}

func (s *ChatService) persistTurn(ctx context.Context, sessionID uuid.UUID, message, answer string) error {
	now := time.Now()
	userMsg := &models.ChatMessage{
		ID:        uuid.New(),
		SessionID: sessionID,
		Content:   sanitizeUTF8(message),
		IsUser:    true,
		CreatedAt: now,
	}
	assistantMsg := &models.ChatMessage{
		ID:        uuid.New(),
		SessionID: sessionID,
		Content:   sanitizeUTF8(answer),
		IsUser:    false,
		CreatedAt: now.Add(time.Millisecond),
	}

	return s.turns.AppendTurn(ctx, userMsg, assistantMsg)
}
