package graph

import (
	"math"
	"testing"
	"time"

	"github.com/oneiriclabs/mnemo/memory"
)

func mem(id string, typ memory.Type, embedding []float32) *memory.Memory {
	return &memory.Memory{
		ID:         id,
		Content:    "memory " + id,
		Type:       typ,
		Timestamp:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Importance: 3,
		Embedding:  embedding,
	}
}

// unit returns a 2D unit vector at the given angle in degrees, so tests
// can dial in exact cosine similarities.
func unit(degrees float64) []float32 {
	rad := degrees * math.Pi / 180
	return []float32{float32(math.Cos(rad)), float32(math.Sin(rad))}
}

func TestKNearestNeighborsRanking(t *testing.T) {
	items := []*memory.Memory{
		mem("a", memory.TypeContext, unit(0)),
		mem("b", memory.TypeContext, unit(10)),  // sim(a,b) ~ 0.985
		mem("c", memory.TypeContext, unit(30)),  // sim(a,c) ~ 0.866
		mem("d", memory.TypeContext, unit(170)), // sim(a,d) ~ -0.985
	}

	neighbors := KNearestNeighbors(items, 10, 0.5)

	got := neighbors["a"]
	if len(got) != 2 {
		t.Fatalf("expected 2 neighbors of a, got %d", len(got))
	}
	if got[0].ID != "b" || got[1].ID != "c" {
		t.Errorf("expected ranking [b c], got [%s %s]", got[0].ID, got[1].ID)
	}
	if got[0].Similarity < got[1].Similarity {
		t.Error("neighbors not in descending similarity order")
	}
}

func TestKNearestNeighborsCap(t *testing.T) {
	items := []*memory.Memory{
		mem("a", memory.TypeContext, unit(0)),
		mem("b", memory.TypeContext, unit(5)),
		mem("c", memory.TypeContext, unit(10)),
		mem("d", memory.TypeContext, unit(15)),
	}

	neighbors := KNearestNeighbors(items, 2, 0.0)
	if len(neighbors["a"]) != 2 {
		t.Errorf("expected k=2 cap, got %d neighbors", len(neighbors["a"]))
	}
}

func TestKNearestNeighborsMismatchedEmbedding(t *testing.T) {
	items := []*memory.Memory{
		mem("a", memory.TypeContext, unit(0)),
		mem("b", memory.TypeContext, []float32{1, 0, 0}), // wrong dimension
	}

	neighbors := KNearestNeighbors(items, 5, 0.1)
	if len(neighbors["a"]) != 0 {
		t.Errorf("mismatched embedding should score 0 and drop out, got %v", neighbors["a"])
	}
}

func TestKNearestNeighborsTieBreakByInputOrder(t *testing.T) {
	// b and c are the same vector, so both tie against a; b comes first
	// in the input and must stay first.
	items := []*memory.Memory{
		mem("a", memory.TypeContext, unit(0)),
		mem("b", memory.TypeContext, unit(20)),
		mem("c", memory.TypeContext, unit(20)),
	}

	neighbors := KNearestNeighbors(items, 5, 0.5)
	got := neighbors["a"]
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "c" {
		t.Errorf("expected tie order [b c], got %v", got)
	}
}
