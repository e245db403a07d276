package graph

import "sort"

// Cluster assigns a cluster id to every node by undirected
// connected-components over the neighbor graph, using only edges whose
// similarity >= minSimilarity (typically stricter than the threshold the
// neighbor lists were built with). Cluster ids are assigned sequentially
// from 0 in discovery order; discovery iterates ids in sorted order so
// the partition is deterministic for a fixed input.
//
// Two nodes connected only through sub-threshold edges never share a
// cluster: this is plain transitive closure under the thresholded graph.
func Cluster(neighbors map[string][]Neighbor, minSimilarity float64) map[string]int {
	ids := make([]string, 0, len(neighbors))
	for id := range neighbors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// Undirected adjacency under the threshold.
	adj := make(map[string][]string, len(neighbors))
	for id, list := range neighbors {
		for _, n := range list {
			if n.Similarity >= minSimilarity {
				adj[id] = append(adj[id], n.ID)
				adj[n.ID] = append(adj[n.ID], id)
			}
		}
	}

	clusters := make(map[string]int, len(ids))
	next := 0

	for _, id := range ids {
		if _, seen := clusters[id]; seen {
			continue
		}

		// Depth-first flood from this seed.
		stack := []string{id}
		clusters[id] = next
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, other := range adj[cur] {
				if _, seen := clusters[other]; !seen {
					clusters[other] = next
					stack = append(stack, other)
				}
			}
		}
		next++
	}

	return clusters
}
