package graph

import (
	"sort"

	"github.com/oneiriclabs/mnemo/memory"
	"github.com/oneiriclabs/mnemo/vector"
)

// Neighbor is one entry in a memory's ranked neighbor list.
type Neighbor struct {
	ID         string
	Similarity float64
}

// KNearestNeighbors builds the k-nearest-neighbor adjacency over the
// snapshot. For each memory it keeps up to k neighbors with similarity
// >= minSimilarity, ranked by descending similarity with ties broken by
// input order. Memories with missing or mismatched embeddings simply
// score 0 against everything and drop out below the threshold.
func KNearestNeighbors(items []*memory.Memory, k int, minSimilarity float64) map[string][]Neighbor {
	neighbors := make(map[string][]Neighbor, len(items))

	for i, a := range items {
		var candidates []Neighbor
		for j, b := range items {
			if i == j || a.ID == b.ID {
				continue
			}
			sim := vector.CosineSimilarity(a.Embedding, b.Embedding)
			if sim >= minSimilarity {
				candidates = append(candidates, Neighbor{ID: b.ID, Similarity: sim})
			}
		}

		// Stable keeps input order for equal similarities.
		sort.SliceStable(candidates, func(x, y int) bool {
			return candidates[x].Similarity > candidates[y].Similarity
		})

		if len(candidates) > k {
			candidates = candidates[:k]
		}
		neighbors[a.ID] = candidates
	}

	return neighbors
}
