// Package mock provides a deterministic embedder for tests and local
// development: embeddings are derived from a hash of the text, so equal
// texts always embed identically.
package mock

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/oneiriclabs/mnemo/vector"
)

// Embedder generates hash-seeded pseudo-random unit vectors.
type Embedder struct {
	dimensions int
}

// New creates a mock embedder matching the all-MiniLM-L6-v2 dimensions.
func New() *Embedder {
	return &Embedder{dimensions: 384}
}

// Embed creates a deterministic embedding from text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	h := fnv.New64a()
	h.Write([]byte(text))

	embedding := make([]float32, e.dimensions)
	seed := h.Sum64()
	for i := 0; i < e.dimensions; i++ {
		// Simple LCG (Linear Congruential Generator)
		seed = seed*6364136223846793005 + 1442695040888963407
		embedding[i] = float32(int64(seed)) / float32(math.MaxInt64)
	}

	return vector.Normalize(embedding), nil
}

// Dimensions returns the embedding size.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}
