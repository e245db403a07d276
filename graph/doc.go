// Package graph builds the similarity graph over a memory snapshot and
// derives link proposals from it: k-nearest-neighbor adjacency,
// connected-component clustering, centrality/highway detection, and the
// rule cascade that assigns a directed relationship type to each
// candidate edge.
//
// Everything here is pure, synchronous computation over the plain memory
// values passed in. The neighbor builder is O(n²) over the snapshot,
// acceptable at the hundreds-to-low-thousands scale this store targets;
// callers needing more pre-filter the snapshot.
package graph
