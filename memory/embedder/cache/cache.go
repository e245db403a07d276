// Package cache wraps any embedder with a ristretto cache keyed on the
// input text, so repeated embedding of the same content costs one call.
package cache

import (
	"context"
	"fmt"
	"log"

	"github.com/dgraph-io/ristretto"

	"github.com/oneiriclabs/mnemo/memory"
)

// Embedder caches the results of an inner embedder.
type Embedder struct {
	inner memory.Embedder
	cache *ristretto.Cache
}

var _ memory.Embedder = (*Embedder)(nil)

// New wraps inner with a cache holding roughly maxEntries embeddings.
func New(inner memory.Embedder, maxEntries int64) (*Embedder, error) {
	if maxEntries <= 0 {
		maxEntries = 10_000
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding cache: %w", err)
	}

	return &Embedder{inner: inner, cache: cache}, nil
}

// Embed returns the cached embedding for text, delegating to the inner
// embedder on a miss. Cached values are stored as-is; callers must not
// mutate returned slices.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if cached, ok := e.cache.Get(text); ok {
		if embedding, ok := cached.([]float32); ok {
			return embedding, nil
		}
	}

	embedding, err := e.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if !e.cache.Set(text, embedding, 1) {
		log.Printf("[EMBED-CACHE] dropped cache entry for %d-char text", len(text))
	}
	return embedding, nil
}

// Dimensions returns the inner embedder's embedding size.
func (e *Embedder) Dimensions() int {
	return e.inner.Dimensions()
}

// Close releases the cache's internal goroutines.
func (e *Embedder) Close() {
	e.cache.Close()
}
