package repository

import (
	"context"
	"fmt"

	"shiftiq/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

type ChunkRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewChunkRepository(db *pgxpool.Pool, logger *zap.Logger) *ChunkRepository {
	return &ChunkRepository{
		db:     db,
		logger: logger,
	}
}

// ReplaceForDocument swaps the full chunk set of a document in one
// transaction: readers see either the old set or the new set, never a
// mixture or an empty window.
func (r *ChunkRepository) ReplaceForDocument(ctx context.Context, documentID uuid.UUID, chunks []*models.DocumentChunk) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	delQuery := squirrel.Delete("document_chunks").
		Where(squirrel.Eq{"document_id": documentID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := delQuery.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to delete existing chunks: %w", err)
	}

	insQuery := squirrel.Insert("document_chunks").
		Columns("id", "document_id", "content", "embedding", "created_at").
		PlaceholderFormat(squirrel.Dollar)
	for _, chunk := range chunks {
		insQuery = insQuery.Values(chunk.ID, chunk.DocumentID, chunk.Content, chunk.Embedding, chunk.CreatedAt)
	}

	sql, args, err = insQuery.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to insert chunks: %w", err)
	}

	return tx.Commit(ctx)
}

// Search returns the closest chunks by cosine similarity, joined with their
// document metadata. Rows below threshold are filtered in SQL.
func (r *ChunkRepository) Search(ctx context.Context, embedding pgvector.Vector, limit int, threshold float64) ([]*models.ChunkMatch, error) {
	query := squirrel.Select("d.title", "c.content", "d.category").
		Column(squirrel.Expr("1 - (c.embedding <=> ?) AS similarity", embedding)).
		From("document_chunks c").
		Join("documents d ON d.id = c.document_id").
		Where(squirrel.Expr("1 - (c.embedding <=> ?) >= ?", embedding, threshold)).
		OrderByClause(squirrel.Expr("c.embedding <=> ?", embedding)).
		Limit(uint64(limit)).
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

	var matches []*models.ChunkMatch
	for rows.Next() {
		var m models.ChunkMatch
		if err := rows.Scan(&m.Title, &m.Content, &m.Category, &m.Similarity); err != nil {
			return nil, err
		}
		matches = append(matches, &m)
	}

	return matches, rows.Err()
}

// CountByDocument reports how many chunks a document currently has.
func (r *ChunkRepository) CountByDocument(ctx context.Context, documentID uuid.UUID) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("document_chunks").
		Where(squirrel.Eq{"document_id": documentID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
