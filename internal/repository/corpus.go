package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

// CorpusRepository persists embedded corpus snapshots keyed by document
// checksum and chunking policy. A restart with an unchanged brochure loads
// the snapshot instead of paying for re-embedding.
type CorpusRepository struct {
	pool *pgxpool.Pool
}

func NewCorpusRepository(pool *pgxpool.Pool) *CorpusRepository {
	return &CorpusRepository{pool: pool}
}

// LoadSnapshot returns the stored chunks for the checksum/policy pair in
// ingestion order, or an empty slice when no snapshot exists.
func (r *CorpusRepository) LoadSnapshot(ctx context.Context, checksum, policy string) ([]domain.KnowledgeChunk, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, source_document, chunk_index, content, embedding, created_at
		 FROM corpus_chunks
		 WHERE checksum = $1 AND policy = $2
		 ORDER BY chunk_index`,
		checksum, policy,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chunks := make([]domain.KnowledgeChunk, 0)
	for rows.Next() {
		var c domain.KnowledgeChunk
		var vec pgvector.Vector
		if err := rows.Scan(&c.ID, &c.SourceDocument, &c.ChunkIndex, &c.Content, &vec, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Embedding = vec.Slice()
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// SaveSnapshot replaces any snapshot for the checksum/policy pair with the
// given chunks.
func (r *CorpusRepository) SaveSnapshot(ctx context.Context, checksum, policy, sourceDocument string, chunks []domain.KnowledgeChunk) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM corpus_chunks WHERE checksum = $1 AND policy = $2`, checksum, policy); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, c := range chunks {
		createdAt := c.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO corpus_chunks (checksum, policy, source_document, chunk_index, content, embedding, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			checksum, policy, sourceDocument, c.ChunkIndex, c.Content, pgvector.NewVector(c.Embedding), createdAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
