package retriever

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"github.com/pro-joshi-grammer/sahayatha/internal/domain"
)

// Embedder turns text into a fixed-dimension vector.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Corpus is an immutable in-memory index over embedded knowledge chunks.
// Chunks keep their ingestion order; ranking ties resolve in that order.
type Corpus struct {
	SourceDocument string
	Checksum       string
	chunks         []domain.KnowledgeChunk
}

// NewCorpus builds a corpus over chunks whose embeddings are already
// unit-normalized. The slice is owned by the corpus afterwards.
func NewCorpus(sourceDocument, checksum string, chunks []domain.KnowledgeChunk) *Corpus {
	return &Corpus{
		SourceDocument: sourceDocument,
		Checksum:       checksum,
		chunks:         chunks,
	}
}

// Len returns the number of chunks in the corpus.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.chunks)
}

// Chunks returns the indexed chunks in ingestion order.
func (c *Corpus) Chunks() []domain.KnowledgeChunk {
	if c == nil {
		return nil
	}
	return c.chunks
}

// Index holds the live corpus behind an atomic pointer. Ingestion replaces
// the whole corpus in one swap; readers never observe a half-built index.
type Index struct {
	embedder Embedder
	current  atomic.Pointer[Corpus]
}

// NewIndex creates an empty index served by the given embedder.
func NewIndex(embedder Embedder) *Index {
	return &Index{embedder: embedder}
}

// Swap installs a fully built corpus as the live one.
func (ix *Index) Swap(c *Corpus) {
	ix.current.Store(c)
}

// Current returns the live corpus, or nil before the first ingestion.
func (ix *Index) Current() *Corpus {
	return ix.current.Load()
}

// Retrieve returns the top-k chunks most similar to the query, ranked by
// inner product over unit vectors, ties broken by ingestion order. An empty
// query or an empty corpus yields an empty result, never an error. Only an
// embedding failure is reported as an error.
func (ix *Index) Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error) {
	corpus := ix.current.Load()
	if corpus.Len() == 0 || query == "" || k <= 0 {
		return nil, nil
	}

	vec, err := ix.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeUnavailable, "query embedding failed", err)
	}
	Normalize(vec)

	scored := make([]domain.RetrievedChunk, 0, corpus.Len())
	for i := range corpus.chunks {
		score := dot(vec, corpus.chunks[i].Embedding)
		scored = append(scored, domain.RetrievedChunk{Chunk: corpus.chunks[i], Score: score})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score > scored[b].Score
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// Normalize scales v to unit length in place. Zero vectors are left as-is.
func Normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func policyKey(cfg ChunkConfig) string {
	return fmt.Sprintf("rune-window/max=%d/min=%d/overlap=%d", cfg.MaxChars, cfg.MinChars, cfg.Overlap)
}
