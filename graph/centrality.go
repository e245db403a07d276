package graph

import "sort"

// Centrality scores every node by degree plus edge weights, with
// cross-cluster edges weighted 4x over in-cluster ones so that memories
// bridging clusters surface first.
//
//	score = 0.1*degree + Σ per edge: 2.0*sim (cross-cluster) | 0.5*sim
func Centrality(neighbors map[string][]Neighbor, clusters map[string]int) map[string]float64 {
	scores := make(map[string]float64, len(neighbors))

	for id, list := range neighbors {
		score := 0.1 * float64(len(list))
		for _, n := range list {
			if clusters[id] != clusters[n.ID] {
				score += 2.0 * n.Similarity // bridge bonus
			} else {
				score += 0.5 * n.Similarity
			}
		}
		scores[id] = score
	}

	return scores
}

// IdentifyHighways returns up to topN node ids in strictly descending
// centrality order; equal scores keep sorted-id order. Highways are the
// high-traffic memories other proposals route through.
func IdentifyHighways(centrality map[string]float64, topN int) []string {
	if topN <= 0 {
		return nil
	}

	ids := make([]string, 0, len(centrality))
	for id := range centrality {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	sort.SliceStable(ids, func(i, j int) bool {
		return centrality[ids[i]] > centrality[ids[j]]
	})

	if len(ids) > topN {
		ids = ids[:topN]
	}
	return ids
}
