package retriever

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

// SnapshotStore persists embedded chunks keyed by document checksum and
// chunking policy, so unchanged documents skip re-embedding on restart.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context, checksum, policy string) ([]domain.KnowledgeChunk, error)
	SaveSnapshot(ctx context.Context, checksum, policy, sourceDocument string, chunks []domain.KnowledgeChunk) error
}

// Ingester builds the corpus from a source document and swaps it live.
type Ingester struct {
	index     *Index
	embedder  Embedder
	snapshots SnapshotStore
	cfg       ChunkConfig
}

// NewIngester creates an ingester. snapshots may be nil, in which case every
// ingestion embeds from scratch.
func NewIngester(index *Index, embedder Embedder, snapshots SnapshotStore, cfg ChunkConfig) *Ingester {
	if cfg.MaxChars <= 0 {
		cfg = DefaultChunkConfig()
	}
	return &Ingester{index: index, embedder: embedder, snapshots: snapshots, cfg: cfg}
}

// IngestFile reads the document at path, builds the corpus, and installs it.
func (in *Ingester) IngestFile(ctx context.Context, path string) (*Corpus, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus document: %w", err)
	}
	return in.Ingest(ctx, filepath.Base(path), string(raw))
}

// Ingest chunks and embeds the document, preferring a persisted snapshot
// when the checksum and chunk policy match. The built corpus is swapped in
// atomically and returned.
func (in *Ingester) Ingest(ctx context.Context, sourceDocument, text string) (*Corpus, error) {
	checksum := Checksum(text)
	policy := in.cfg.PolicyKey()

	if in.snapshots != nil {
		chunks, err := in.snapshots.LoadSnapshot(ctx, checksum, policy)
		if err != nil {
			log.Printf("corpus: snapshot load failed, re-embedding: %v", err)
		} else if len(chunks) > 0 {
			corpus := NewCorpus(sourceDocument, checksum, chunks)
			in.index.Swap(corpus)
			log.Printf("corpus: loaded %d chunks from snapshot (doc=%s)", len(chunks), sourceDocument)
			return corpus, nil
		}
	}

	pieces := chunkText(text, in.cfg)
	chunks := make([]domain.KnowledgeChunk, 0, len(pieces))
	for i, content := range pieces {
		vec, err := in.embedder.GenerateEmbedding(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		Normalize(vec)
		chunks = append(chunks, domain.KnowledgeChunk{
			SourceDocument: sourceDocument,
			ChunkIndex:     i,
			Content:        content,
			Embedding:      vec,
		})
	}

	if in.snapshots != nil && len(chunks) > 0 {
		if err := in.snapshots.SaveSnapshot(ctx, checksum, policy, sourceDocument, chunks); err != nil {
			log.Printf("corpus: snapshot save failed (continuing): %v", err)
		}
	}

	corpus := NewCorpus(sourceDocument, checksum, chunks)
	in.index.Swap(corpus)
	log.Printf("corpus: embedded %d chunks (doc=%s)", len(chunks), sourceDocument)
	return corpus, nil
}

// Checksum returns the hex SHA-256 of the document text.
func Checksum(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
