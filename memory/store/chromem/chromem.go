// Package chromem implements the memory store on chromem-go, a pure Go
// embedded vector database. Vector search is delegated to chromem;
// record-level reads, listing and link mutation run against an
// authoritative in-process index, since chromem has no get-by-id or
// delete in its current API.
package chromem

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	chromem "github.com/philippgille/chromem-go"

	"github.com/oneiriclabs/mnemo/memory"
)

// ChromemStore keeps memories in chromem collections, one per project.
type ChromemStore struct {
	db          *chromem.DB
	collections map[string]*chromem.Collection
	records     map[string]*memory.Memory
	mu          sync.RWMutex
}

var _ memory.Store = (*ChromemStore)(nil)

// New creates an empty chromem-backed store.
func New() (*ChromemStore, error) {
	return &ChromemStore{
		db:          chromem.NewDB(),
		collections: make(map[string]*chromem.Collection),
		records:     make(map[string]*memory.Memory),
	}, nil
}

// getOrCreateCollection returns the collection for a project. Each
// project gets its own collection for namespace isolation.
func (s *ChromemStore) getOrCreateCollection(project string) (*chromem.Collection, error) {
	name := "global"
	if project != "" {
		name = fmt.Sprintf("project_%s", project)
	}

	s.mu.RLock()
	col, exists := s.collections[name]
	s.mu.RUnlock()
	if exists {
		return col, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if col, exists := s.collections[name]; exists {
		return col, nil
	}

	col, err := s.db.CreateCollection(
		name,
		nil, // embeddings are provided by the caller
		nil, // default cosine distance
	)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	s.collections[name] = col
	return col, nil
}

// Save persists a memory with its embedding. Saving an existing id
// replaces the record.
func (s *ChromemStore) Save(ctx context.Context, mem *memory.Memory) error {
	if mem.ID == "" {
		return fmt.Errorf("memory has no id")
	}
	if len(mem.Embedding) == 0 {
		return fmt.Errorf("memory %s has no embedding", mem.ID)
	}

	col, err := s.getOrCreateCollection(mem.Project)
	if err != nil {
		return err
	}

	log.Printf("[CHROMEM] Storing memory: id=%s, project=%s, type=%s",
		mem.ID, mem.Project, mem.Type)

	doc := chromem.Document{
		ID:        mem.ID,
		Content:   mem.Content,
		Embedding: mem.Embedding,
		Metadata:  docMetadata(mem),
	}
	if err := col.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("add document: %w", err)
	}

	s.mu.Lock()
	s.records[mem.ID] = cloneMemory(mem)
	s.mu.Unlock()
	return nil
}

// Get returns the memory by id, or nil when absent.
func (s *ChromemStore) Get(ctx context.Context, id string) (*memory.Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return cloneMemory(rec), nil
}

// List returns all memories, optionally restricted to a project,
// ordered by timestamp then id.
func (s *ChromemStore) List(ctx context.Context, project string) ([]*memory.Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*memory.Memory
	for _, rec := range s.records {
		if project != "" && rec.Project != project {
			continue
		}
		out = append(out, cloneMemory(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Search returns up to limit memories by vector similarity across all
// collections, best match first.
func (s *ChromemStore) Search(ctx context.Context, embedding []float32, limit int) ([]*memory.Memory, error) {
	if limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	cols := make([]*chromem.Collection, 0, len(s.collections))
	for _, col := range s.collections {
		cols = append(cols, col)
	}
	s.mu.RUnlock()

	type hit struct {
		id  string
		sim float32
	}
	var hits []hit

	for _, col := range cols {
		results, err := queryCollection(ctx, col, embedding, limit)
		if err != nil {
			return nil, err
		}
		for _, r := range results {
			hits = append(hits, hit{id: r.ID, sim: r.Similarity})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].sim > hits[j].sim })
	if len(hits) > limit {
		hits = hits[:limit]
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*memory.Memory
	for _, h := range hits {
		if rec, ok := s.records[h.id]; ok {
			out = append(out, cloneMemory(rec))
		}
	}

	log.Printf("[CHROMEM] Returning %d memories for search", len(out))
	return out, nil
}

// queryCollection queries one collection, retrying with smaller limits:
// chromem requires nResults to be at most the collection size.
func queryCollection(ctx context.Context, col *chromem.Collection, embedding []float32, limit int) ([]chromem.Result, error) {
	for currentLimit := limit; currentLimit >= 1; currentLimit-- {
		results, err := col.QueryEmbedding(ctx, embedding, currentLimit, nil, nil)
		if err == nil {
			return results, nil
		}
		if isInsufficientDocsError(err) {
			if currentLimit == 1 {
				return nil, nil
			}
			continue
		}
		return nil, fmt.Errorf("chromem query: %w", err)
	}
	return nil, nil
}

// AddLink appends a link to the source memory's link set. Duplicate
// edges are the caller's concern.
func (s *ChromemStore) AddLink(ctx context.Context, sourceID string, link memory.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[sourceID]
	if !ok {
		return fmt.Errorf("memory %s not found", sourceID)
	}
	if _, ok := s.records[link.TargetID]; !ok {
		return fmt.Errorf("link target %s not found", link.TargetID)
	}

	rec.Links = append(rec.Links, link)
	log.Printf("[CHROMEM] Linked %s -[%s]-> %s", sourceID, link.Type, link.TargetID)
	return nil
}

// Delete removes a memory from the index. The chromem document stays
// behind (no delete in the chromem API) but can no longer be resolved.
func (s *ChromemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("memory %s not found", id)
	}
	delete(s.records, id)
	return nil
}

// Close releases resources. chromem keeps everything in memory,
// nothing to close.
func (s *ChromemStore) Close() error {
	return nil
}

func docMetadata(mem *memory.Memory) map[string]string {
	metadata := map[string]string{
		"type":       string(mem.Type),
		"project":    mem.Project,
		"importance": fmt.Sprintf("%d", mem.Importance),
		"created_at": mem.Timestamp.Format(time.RFC3339),
	}
	if len(mem.Tags) > 0 {
		if bytes, err := json.Marshal(mem.Tags); err == nil {
			metadata["tags"] = string(bytes)
		}
	}
	return metadata
}

func cloneMemory(mem *memory.Memory) *memory.Memory {
	out := *mem
	out.Tags = append([]string(nil), mem.Tags...)
	out.Links = append([]memory.Link(nil), mem.Links...)
	out.Embedding = append([]float32(nil), mem.Embedding...)
	if mem.Emotional != nil {
		e := *mem.Emotional
		out.Emotional = &e
	}
	if mem.Narrative != nil {
		n := *mem.Narrative
		out.Narrative = &n
		out.Narrative.Themes = append([]string(nil), mem.Narrative.Themes...)
	}
	return &out
}

// isInsufficientDocsError checks if error is due to insufficient documents.
func isInsufficientDocsError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "nResults must be") || strings.Contains(errStr, "number of documents")
}
