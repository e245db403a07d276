package vector

import (
	"math"
	"testing"
)

func TestCosineSimilaritySymmetry(t *testing.T) {
	a := []float32{0.3, -1.2, 0.8, 0.1}
	b := []float32{1.1, 0.4, -0.2, 0.9}

	if CosineSimilarity(a, b) != CosineSimilarity(b, a) {
		t.Errorf("similarity is not symmetric: %v vs %v",
			CosineSimilarity(a, b), CosineSimilarity(b, a))
	}
}

func TestCosineSimilaritySelf(t *testing.T) {
	v := []float32{2.5, -0.7, 0.3}

	sim := CosineSimilarity(v, v)
	if math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("self-similarity = %v, want ~1.0", sim)
	}
}

func TestCosineSimilarityMismatchedLengths(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{1, 2}

	if got := CosineSimilarity(a, b); got != 0 {
		t.Errorf("mismatched lengths: got %v, want 0", got)
	}
}

func TestCosineSimilarityZeroVector(t *testing.T) {
	a := []float32{0, 0, 0}
	b := []float32{1, 2, 3}

	if got := CosineSimilarity(a, b); got != 0 {
		t.Errorf("zero vector: got %v, want 0", got)
	}
	if got := CosineSimilarity(nil, nil); got != 0 {
		t.Errorf("empty vectors: got %v, want 0", got)
	}
}

func TestCosineSimilarityOpposite(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{-1, 0}

	if got := CosineSimilarity(a, b); math.Abs(got+1.0) > 1e-9 {
		t.Errorf("opposite vectors: got %v, want -1", got)
	}
}

func TestNormalize(t *testing.T) {
	v := []float32{3, 4}
	n := Normalize(v)

	if math.Abs(float64(n[0])-0.6) > 1e-6 || math.Abs(float64(n[1])-0.8) > 1e-6 {
		t.Errorf("Normalize([3 4]) = %v, want [0.6 0.8]", n)
	}

	// Input untouched.
	if v[0] != 3 || v[1] != 4 {
		t.Errorf("Normalize modified its input: %v", v)
	}

	// Zero vector stays zero.
	z := Normalize([]float32{0, 0, 0})
	for _, x := range z {
		if x != 0 {
			t.Errorf("Normalize(zero) = %v, want zeros", z)
		}
	}
}
