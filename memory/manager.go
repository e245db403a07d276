package memory

import (
	"context"
	"fmt"
	"log"

	"github.com/oneiriclabs/mnemo/vector"
)

// Manager orchestrates the record/retrieve plumbing over a Store and an
// Embedder. It is deliberately thin: everything interesting happens in
// the analysis packages, which take the plain memories a Manager hands
// them.
type Manager struct {
	store    Store
	embedder Embedder
	config   *Config
}

// Config holds Manager configuration.
type Config struct {
	// Enabled toggles the memory system on/off.
	Enabled bool

	// MinSimilarity is the minimum similarity for retrieval [0.0-1.0].
	// Tiny models (all-MiniLM-L6-v2) produce lower scores (~0.35 for
	// similar text) than production API models (0.7-0.85 range).
	MinSimilarity float64

	// MaxResults caps how many memories Retrieve returns.
	MaxResults int
}

// DefaultConfig returns sensible defaults for local use.
var DefaultConfig = &Config{
	Enabled:       true,
	MinSimilarity: 0.3,
	MaxResults:    10,
}

// NewManager creates a Manager. A nil config uses DefaultConfig.
func NewManager(store Store, embedder Embedder, config *Config) *Manager {
	if config == nil {
		config = DefaultConfig
	}
	return &Manager{
		store:    store,
		embedder: embedder,
		config:   config,
	}
}

// Record embeds and persists a memory. The memory's importance bounds and
// the foundational rule are enforced here, at the boundary, so the
// analysis engines can assume them.
func (m *Manager) Record(ctx context.Context, mem *Memory) error {
	if !m.config.Enabled {
		return nil
	}

	mem.normalize()
	if err := mem.Validate(); err != nil {
		return fmt.Errorf("validate memory: %w", err)
	}

	if len(mem.Embedding) == 0 {
		embedding, err := m.embedder.Embed(ctx, mem.Content)
		if err != nil {
			return fmt.Errorf("embed memory: %w", err)
		}
		mem.Embedding = embedding
	}

	if err := m.store.Save(ctx, mem); err != nil {
		return fmt.Errorf("save memory: %w", err)
	}

	log.Printf("[MEMORY] Recorded %s memory %s (importance %d)", mem.Type, mem.ID, mem.Importance)
	return nil
}

// Retrieve embeds the query and returns the most similar memories, best
// first. Returns an empty slice when the system is disabled or nothing
// clears the similarity floor.
func (m *Manager) Retrieve(ctx context.Context, query string, limit int) ([]*Memory, error) {
	if !m.config.Enabled {
		return nil, nil
	}
	if limit <= 0 || limit > m.config.MaxResults {
		limit = m.config.MaxResults
	}

	embedding, err := m.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	candidates, err := m.store.Search(ctx, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("search store: %w", err)
	}

	// The store ranks but does not threshold; the similarity floor is
	// applied here.
	memories := candidates[:0]
	for _, cand := range candidates {
		if vector.CosineSimilarity(embedding, cand.Embedding) >= m.config.MinSimilarity {
			memories = append(memories, cand)
		}
	}

	log.Printf("[MEMORY] Retrieved %d memories for query %q", len(memories), truncateLog(query, 50))
	return memories, nil
}

// truncateLog truncates text for logging.
func truncateLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
