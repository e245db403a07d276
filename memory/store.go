package memory

import "context"

// Store is the vector storage backend interface.
// Implementations: ChromemStore (local), pgvector-backed store (production).
type Store interface {
	// Save persists a memory. The embedding must be set before calling
	// Save; the store does not embed.
	Save(ctx context.Context, mem *Memory) error

	// Get retrieves a memory by id. Returns (nil, nil) when absent.
	Get(ctx context.Context, id string) (*Memory, error)

	// List returns all memories, optionally restricted to a project
	// (empty project means everything), with embeddings attached.
	List(ctx context.Context, project string) ([]*Memory, error)

	// Search returns up to limit memories ranked by embedding similarity
	// to the query vector, highest first.
	Search(ctx context.Context, embedding []float32, limit int) ([]*Memory, error)

	// AddLink appends a directed link to the source memory's link set.
	// Idempotency is not guaranteed; callers dedupe.
	AddLink(ctx context.Context, sourceID string, link Link) error

	// Delete removes a memory permanently.
	Delete(ctx context.Context, id string) error

	// Close releases resources.
	Close() error
}

// Embedder converts text to vector embeddings.
// Implementations: mock (testing/CLI), onnx (local, build tag "onnx"),
// cache (ristretto wrapper around either).
type Embedder interface {
	// Embed converts a single text to an embedding vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	Dimensions() int
}
