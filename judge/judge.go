// Package judge decides whether two memories genuinely conflict and
// whether a group of memories should be consolidated. The external
// implementation asks an LLM; the heuristic implementation is the
// deterministic fallback and caps its confidence at 0.5 so downstream
// policy can treat its judgments as lower-trust input.
package judge

import (
	"context"

	"github.com/oneiriclabs/mnemo/memory"
)

// ContradictionJudgment is the verdict on a candidate conflict pair.
type ContradictionJudgment struct {
	IsRealConflict bool    `json:"is_real_conflict"`
	ConflictType   string  `json:"conflict_type,omitempty"` // factual, preference or temporal
	Resolution     string  `json:"resolution,omitempty"`
	Confidence     float64 `json:"confidence"`
	Reasoning      string  `json:"reasoning"`
}

// ConsolidationJudgment is the verdict on a candidate merge group.
type ConsolidationJudgment struct {
	ShouldMerge   bool     `json:"should_merge"`
	MergedContent string   `json:"merged_content,omitempty"`
	MergedTags    []string `json:"merged_tags,omitempty"`
	Importance    int      `json:"importance,omitempty"`
	Confidence    float64  `json:"confidence"`
	Reasoning     string   `json:"reasoning"`
}

// Judge evaluates contradiction and consolidation candidates.
type Judge interface {
	JudgeContradiction(ctx context.Context, a, b *memory.Memory) (*ContradictionJudgment, error)
	JudgeConsolidation(ctx context.Context, memories []*memory.Memory, mergeHint string) (*ConsolidationJudgment, error)
}
