// Package tools defines the JSON-schema tool catalog a host assistant
// registers to expose the memory system. Pure data; the transport
// binding lives with the host.
package tools

import "github.com/oneiriclabs/mnemo/memory"

// Definition describes one assistant-facing tool.
type Definition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

// MemoryToolDefinitions returns the definitions for all memory tools.
func MemoryToolDefinitions() []Definition {
	memoryTypes := make([]string, 0, 12)
	for _, t := range []memory.Type{
		memory.TypeDecision, memory.TypePattern, memory.TypeLearning,
		memory.TypeContext, memory.TypePreference, memory.TypeSummary,
		memory.TypeTodo, memory.TypeReference, memory.TypeFoundational,
		memory.TypeContradiction, memory.TypeSuperseded, memory.TypeShadow,
	} {
		memoryTypes = append(memoryTypes, string(t))
	}

	return []Definition{
		{
			Name:        "save_memory",
			Description: "Save a memory for later recall. Use for decisions, learnings, preferences and context worth keeping across conversations.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"content":    StringProperty("The memory content"),
				"type":       StringEnumProperty("Memory type", memoryTypes...),
				"tags":       ArrayProperty("Tags for theme grouping", StringProperty("tag")),
				"importance": IntegerProperty("Importance 1-5 (5 = critical, never auto-pruned)"),
				"project":    StringProperty("Optional project namespace"),
			}, "content", "type"),
		},
		{
			Name:        "search_memory",
			Description: "Search memories by semantic similarity to a query.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"query": StringProperty("What to look for"),
				"limit": IntegerProperty("Maximum results (default 10)"),
			}, "query"),
		},
		{
			Name:        "link_memories",
			Description: "Create a typed, directed link between two memories.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"source_id": StringProperty("Source memory id"),
				"target_id": StringProperty("Target memory id"),
				"type": StringEnumProperty("Relationship type",
					string(memory.LinkRelated), string(memory.LinkSupports),
					string(memory.LinkContradicts), string(memory.LinkExtends),
					string(memory.LinkSupersedes), string(memory.LinkDependsOn),
					string(memory.LinkCausedBy), string(memory.LinkImplements),
					string(memory.LinkExampleOf)),
				"reason": StringProperty("Why these memories are linked"),
			}, "source_id", "target_id", "type"),
		},
		{
			Name:        "dream",
			Description: "Run a maintenance pass: propose links, consolidate duplicates, decay stale memories, flag contradictions. Mutations are policy-gated; risky ones wait for review.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"project": StringProperty("Optional: restrict the pass to one project"),
			}),
		},
		{
			Name:        "story_arcs",
			Description: "Detect story arcs: causally chained memory sequences with a shared theme.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"project": StringProperty("Optional project namespace"),
			}),
		},
		{
			Name:        "pending_proposals",
			Description: "List maintenance proposals waiting for human review.",
			InputSchema: ObjectSchema(map[string]interface{}{}),
		},
		{
			Name:        "review_proposal",
			Description: "Approve or reject a pending maintenance proposal. The outcome feeds the trust score for that action kind.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"proposal_id": StringProperty("The proposal to resolve"),
				"approve":     BooleanProperty("true to approve, false to reject"),
			}, "proposal_id", "approve"),
		},
	}
}
