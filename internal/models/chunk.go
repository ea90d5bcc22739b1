package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// DocumentChunk is one embedded window of a document's text.
// Chunks for a document are always replaced as a whole set during ingestion
// and are never mutated individually.
type DocumentChunk struct {
	ID         uuid.UUID       `db:"id"`
	DocumentID uuid.UUID       `db:"document_id"`
	Content    string          `db:"content"`
	Embedding  pgvector.Vector `db:"embedding"`
	CreatedAt  time.Time       `db:"created_at"`
}

// ChunkMatch is a similarity-search hit joined with its document metadata.
type ChunkMatch struct {
	Title      string           `db:"title"`
	Content    string           `db:"content"`
	Similarity float64          `db:"similarity"`
	Category   DocumentCategory `db:"category"`
}
