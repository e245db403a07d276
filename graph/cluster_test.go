package graph

import (
	"reflect"
	"testing"
)

func testNeighborGraph() map[string][]Neighbor {
	// Two tight groups {a,b,c} and {x,y}, joined only by a weak a-x edge.
	return map[string][]Neighbor{
		"a": {{ID: "b", Similarity: 0.9}, {ID: "c", Similarity: 0.85}, {ID: "x", Similarity: 0.5}},
		"b": {{ID: "a", Similarity: 0.9}},
		"c": {{ID: "a", Similarity: 0.85}},
		"x": {{ID: "y", Similarity: 0.95}, {ID: "a", Similarity: 0.5}},
		"y": {{ID: "x", Similarity: 0.95}},
	}
}

func TestClusterComponents(t *testing.T) {
	clusters := Cluster(testNeighborGraph(), 0.8)

	if clusters["a"] != clusters["b"] || clusters["a"] != clusters["c"] {
		t.Errorf("a, b, c should share a cluster: %v", clusters)
	}
	if clusters["x"] != clusters["y"] {
		t.Errorf("x and y should share a cluster: %v", clusters)
	}
	if clusters["a"] == clusters["x"] {
		t.Errorf("weak a-x edge (0.5) must not merge the groups: %v", clusters)
	}
}

func TestClusterThresholdMerges(t *testing.T) {
	// Lowering the threshold below the a-x edge merges everything.
	clusters := Cluster(testNeighborGraph(), 0.4)

	first := clusters["a"]
	for id, c := range clusters {
		if c != first {
			t.Errorf("expected single cluster at low threshold, %s got %d", id, c)
		}
	}
}

func TestClusterIdempotence(t *testing.T) {
	g := testNeighborGraph()

	first := Cluster(g, 0.8)
	second := Cluster(g, 0.8)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("clustering is not idempotent: %v vs %v", first, second)
	}
}

func TestClusterSequentialIDs(t *testing.T) {
	clusters := Cluster(testNeighborGraph(), 0.8)

	seen := make(map[int]bool)
	max := 0
	for _, c := range clusters {
		seen[c] = true
		if c > max {
			max = c
		}
	}
	for i := 0; i <= max; i++ {
		if !seen[i] {
			t.Errorf("cluster ids not sequential from 0: missing %d in %v", i, clusters)
		}
	}
}

func TestCentralityBridgeBonus(t *testing.T) {
	neighbors := map[string][]Neighbor{
		"a": {{ID: "b", Similarity: 0.8}},
		"b": {{ID: "a", Similarity: 0.8}},
	}

	sameCluster := Centrality(neighbors, map[string]int{"a": 0, "b": 0})
	crossCluster := Centrality(neighbors, map[string]int{"a": 0, "b": 1})

	// In-cluster: 0.1*1 + 0.5*0.8 = 0.5. Cross: 0.1*1 + 2*0.8 = 1.7.
	if diff := sameCluster["a"] - 0.5; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("in-cluster centrality = %v, want 0.5", sameCluster["a"])
	}
	if diff := crossCluster["a"] - 1.7; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("cross-cluster centrality = %v, want 1.7", crossCluster["a"])
	}
}

func TestIdentifyHighways(t *testing.T) {
	centrality := map[string]float64{
		"low": 0.2, "mid": 1.0, "high": 2.5, "top": 3.0,
	}

	highways := IdentifyHighways(centrality, 2)
	if !reflect.DeepEqual(highways, []string{"top", "high"}) {
		t.Errorf("expected [top high], got %v", highways)
	}

	if got := IdentifyHighways(centrality, 0); got != nil {
		t.Errorf("topN=0 should yield nil, got %v", got)
	}
}
