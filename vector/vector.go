// Package vector provides the vector math used by the memory analysis
// engines. All similarity computations in the repository go through this
// package so the mismatch/zero-vector contract is defined in one place.
package vector

import "math"

// CosineSimilarity returns the cosine similarity of two float32 vectors
// in [-1, 1]. Uses float64 accumulation for precision.
//
// Mismatched lengths and zero-magnitude vectors return 0 rather than an
// error: a single malformed embedding must not fail a whole batch
// analysis. Callers that need strict dimension checking should validate
// lengths before calling.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Normalize returns a unit-length copy of vec. The input is not modified.
// A zero vector normalizes to a zero vector of the same length.
func Normalize(vec []float32) []float32 {
	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}

	if sumSquares == 0 {
		return make([]float32, len(vec))
	}

	norm := math.Sqrt(sumSquares)
	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / norm)
	}
	return normalized
}
