package repository

import (
	"context"
	"fmt"

	"shiftiq/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type MessageRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMessageRepository(db *pgxpool.Pool, logger *zap.Logger) *MessageRepository {
	return &MessageRepository{
		db:     db,
		logger: logger,
	}
}

// AppendTurn writes the user message and the assistant answer as one logical
// write, and bumps the session's updated_at. Either both messages land or
// neither does.
func (r *MessageRepository) AppendTurn(ctx context.Context, userMsg, assistantMsg *models.ChatMessage) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := squirrel.Insert("chat_messages").
		Columns("id", "session_id", "content", "is_user", "created_at").
		Values(userMsg.ID, userMsg.SessionID, userMsg.Content, userMsg.IsUser, userMsg.CreatedAt).
		Values(assistantMsg.ID, assistantMsg.SessionID, assistantMsg.Content, assistantMsg.IsUser, assistantMsg.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to insert messages: %w", err)
	}

	touch := squirrel.Update("chat_sessions").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userMsg.SessionID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = touch.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}

	return tx.Commit(ctx)
}

// ListBySession returns the session's messages in creation order.
func (r *MessageRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.ChatMessage, error) {
	query := squirrel.Select("id", "session_id", "content", "is_user", "created_at").
		From("chat_messages").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(
			&msg.ID, &msg.SessionID, &msg.Content, &msg.IsUser, &msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}

	return messages, rows.Err()
}
