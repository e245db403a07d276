// Package narrative classifies memories into dramatic-structure roles and
// infers causal relationships between them: pairwise cause/effect scoring,
// greedy causal-chain traversal, story-arc detection, theme extraction and
// resolution finding for open problems.
//
// Everything here is pure computation over memory snapshots. Annotations are
// read-only analytical artifacts; the caller decides whether to write them
// back to storage.
package narrative
