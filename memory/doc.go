// Package memory defines the data model for the mnemo memory service:
// typed text notes with embeddings, directed typed links between them,
// and the narrative annotations produced by analysis.
//
// The package also defines the collaborator interfaces the analysis
// engines are written against:
//   - Store: vector storage backend (chromem-go for local use)
//   - Embedder: text-to-vector conversion (mock for tests, ONNX local,
//     API-based in production)
//   - Manager: thin retrieve/record orchestration over Store + Embedder
//
// The analysis packages (graph, narrative, policy) take plain Memory
// values and return plain data; they never touch a Store directly. All
// I/O lives behind these interfaces so production deployments can swap
// backends without touching the engines.
package memory
