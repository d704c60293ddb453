package database

import (
	"context"

	"github.com/openfreight/docintel/types"
)

// Embedder turns texts into vectors. Implemented by the AI providers.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorDatabase defines the interface for per-document index operations
type VectorDatabase interface {
	// StoreDocument embeds the chunks and indexes them under a fresh
	// document id. Returns the id. Nothing is left behind on failure.
	StoreDocument(ctx context.Context, chunks []types.Chunk) (string, error)

	// Retrieve runs a similarity search over one document's index and
	// returns up to topK chunks, best first, with raw cosine scores.
	Retrieve(ctx context.Context, docID, query string, topK int) ([]types.RetrievalResult, error)

	// FullText returns all chunks of a document in chunk order, joined
	// by blank lines.
	FullText(ctx context.Context, docID string) (string, error)
}
