package judge

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/oneiriclabs/mnemo/memory"
)

// heuristicConfidenceCap bounds every heuristic judgment. Reasoning
// strings carry a "heuristic:" prefix for the same purpose.
const heuristicConfidenceCap = 0.5

// Heuristic is the deterministic judge used when no LLM is configured
// or the LLM call fails.
type Heuristic struct{}

var _ Judge = (*Heuristic)(nil)

// NewHeuristic returns the fallback judge.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// negationMarkers flag a statement as negative-polarity.
var negationMarkers = []string{
	"not ", "never ", "don't ", "do not ", "won't ", "shouldn't ",
	"avoid ", "stop ", "no longer ",
}

// JudgeContradiction decides whether two memories genuinely conflict.
// The heuristic requires topical overlap (shared tags or recurring
// content words) and treats a polarity mismatch as the conflict signal.
func (h *Heuristic) JudgeContradiction(ctx context.Context, a, b *memory.Memory) (*ContradictionJudgment, error) {
	shared := a.SharedTags(b)
	overlap := len(shared) > 0 || contentWordOverlap(a.Content, b.Content) >= 2

	if !overlap {
		return &ContradictionJudgment{
			IsRealConflict: false,
			Confidence:     0.3,
			Reasoning:      "heuristic: no topical overlap between the two memories",
		}, nil
	}

	aNeg := hasNegation(a.Content)
	bNeg := hasNegation(b.Content)
	if aNeg == bNeg {
		return &ContradictionJudgment{
			IsRealConflict: false,
			Confidence:     0.3,
			Reasoning:      "heuristic: related topic, same polarity, likely restatement",
		}, nil
	}

	conflictType := "factual"
	if a.Type == memory.TypePreference || b.Type == memory.TypePreference {
		conflictType = "preference"
	}
	if a.Type == memory.TypeDecision && b.Type == memory.TypeDecision {
		conflictType = "temporal"
	}

	newer := a
	if b.Timestamp.After(a.Timestamp) {
		newer = b
	}

	confidence := 0.3 + 0.1*float64(len(shared))
	if confidence > heuristicConfidenceCap {
		confidence = heuristicConfidenceCap
	}

	return &ContradictionJudgment{
		IsRealConflict: true,
		ConflictType:   conflictType,
		Resolution:     fmt.Sprintf("keep newer memory %s, mark the other superseded", newer.ID),
		Confidence:     confidence,
		Reasoning:      "heuristic: shared topic with opposite polarity",
	}, nil
}

// JudgeConsolidation decides whether a group of memories should merge.
// The heuristic merges only uniform-type groups with a common tag; the
// merged content is the hint when provided, else the concatenation in
// timestamp order.
func (h *Heuristic) JudgeConsolidation(ctx context.Context, memories []*memory.Memory, mergeHint string) (*ConsolidationJudgment, error) {
	if len(memories) < 2 {
		return &ConsolidationJudgment{
			ShouldMerge: false,
			Confidence:  heuristicConfidenceCap,
			Reasoning:   "heuristic: nothing to merge",
		}, nil
	}

	typ := memories[0].Type
	for _, m := range memories[1:] {
		if m.Type != typ {
			return &ConsolidationJudgment{
				ShouldMerge: false,
				Confidence:  0.4,
				Reasoning:   "heuristic: mixed memory types do not merge safely",
			}, nil
		}
	}

	common := commonTags(memories)
	if len(common) == 0 {
		return &ConsolidationJudgment{
			ShouldMerge: false,
			Confidence:  0.3,
			Reasoning:   "heuristic: no tag shared by every memory in the group",
		}, nil
	}

	ordered := make([]*memory.Memory, len(memories))
	copy(ordered, memories)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	content := mergeHint
	if content == "" {
		parts := make([]string, len(ordered))
		for i, m := range ordered {
			parts[i] = m.Content
		}
		content = strings.Join(parts, "\n\n")
	}

	importance := 0
	tagSet := make(map[string]bool)
	for _, m := range ordered {
		if m.Importance > importance {
			importance = m.Importance
		}
		for _, tag := range m.Tags {
			tagSet[tag] = true
		}
	}
	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return &ConsolidationJudgment{
		ShouldMerge:   true,
		MergedContent: content,
		MergedTags:    tags,
		Importance:    importance,
		Confidence:    heuristicConfidenceCap,
		Reasoning:     fmt.Sprintf("heuristic: %d same-type memories sharing tag %q", len(ordered), common[0]),
	}, nil
}

func hasNegation(content string) bool {
	lower := strings.ToLower(content)
	for _, marker := range negationMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// contentWordOverlap counts distinct words longer than four characters
// appearing in both contents.
func contentWordOverlap(a, b string) int {
	bWords := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(b)) {
		if len(w) > 4 {
			bWords[w] = true
		}
	}

	seen := make(map[string]bool)
	count := 0
	for _, w := range strings.Fields(strings.ToLower(a)) {
		if len(w) > 4 && bWords[w] && !seen[w] {
			seen[w] = true
			count++
		}
	}
	return count
}

// commonTags returns the tags present on every memory, sorted.
func commonTags(memories []*memory.Memory) []string {
	counts := make(map[string]int)
	for _, m := range memories {
		for _, tag := range m.Tags {
			counts[tag]++
		}
	}

	var common []string
	for tag, n := range counts {
		if n == len(memories) {
			common = append(common, tag)
		}
	}
	sort.Strings(common)
	return common
}
