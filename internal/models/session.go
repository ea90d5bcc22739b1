package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession groups an ordered sequence of chat messages.
// UserID is nullable: sessions may be anonymous.
type ChatSession struct {
	ID        uuid.UUID  `db:"id"`
	UserID    *uuid.UUID `db:"user_id"`
	Title     string     `db:"title"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

// ChatMessage is an append-only entry in a session's history.
type ChatMessage struct {
	ID        uuid.UUID `db:"id"`
	SessionID uuid.UUID `db:"session_id"`
	Content   string    `db:"content"`
	IsUser    bool      `db:"is_user"`
	CreatedAt time.Time `db:"created_at"`
}
