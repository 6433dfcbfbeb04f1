package domain

import "time"

// KnowledgeChunk is one embedded segment of the ingested knowledge document.
// Chunks are immutable once ingested; re-ingestion replaces the corpus wholesale.
type KnowledgeChunk struct {
	ID             string
	SourceDocument string
	ChunkIndex     int
	Content        string
	Embedding      []float32
	CreatedAt      time.Time
}

// RetrievedChunk pairs a chunk with its similarity to the query.
type RetrievedChunk struct {
	Chunk KnowledgeChunk
	Score float32
}
