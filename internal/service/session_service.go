package service

import (
	"context"
	"errors"
	"time"

	"shiftiq/internal/dto"
	"shiftiq/internal/models"
	"shiftiq/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SessionService struct {
	sessionRepo *repository.SessionRepository
	messageRepo *repository.MessageRepository
	logger      *zap.Logger
}

func NewSessionService(sessionRepo *repository.SessionRepository, messageRepo *repository.MessageRepository, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// Create starts a new conversation. userID may be nil for anonymous sessions.
func (s *SessionService) Create(ctx context.Context, userID *uuid.UUID, title string) (*dto.SessionResponse, error) {
	if title == "" {
		title = "New conversation"
	}

	now := time.Now()
	session := &models.ChatSession{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return toSessionResponse(session), nil
}

func (s *SessionService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*dto.SessionResponse, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = toSessionResponse(session)
	}
	return responses, nil
}

// Messages returns a session's history in creation order.
func (s *SessionService) Messages(ctx context.Context, sessionID uuid.UUID) ([]*dto.MessageResponse, error) {
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	messages, err := s.messageRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MessageResponse, len(messages))
	for i, msg := range messages {
		responses[i] = &dto.MessageResponse{
			ID:        msg.ID.String(),
			Content:   msg.Content,
			IsUser:    msg.IsUser,
			CreatedAt: msg.CreatedAt.Format(time.RFC3339),
		}
	}
	return responses, nil
}

func (s *SessionService) Delete(ctx context.Context, sessionID uuid.UUID) error {
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSessionNotFound
		}
		return err
	}
	return s.sessionRepo.Delete(ctx, sessionID)
}

func toSessionResponse(session *models.ChatSession) *dto.SessionResponse {
	userID := ""
	if session.UserID != nil {
		userID = session.UserID.String()
	}
	return &dto.SessionResponse{
		ID:        session.ID.String(),
		UserID:    userID,
		Title:     session.Title,
		CreatedAt: session.CreatedAt.Format(time.RFC3339),
		UpdatedAt: session.UpdatedAt.Format(time.RFC3339),
	}
}
