package judge

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneiriclabs/mnemo/memory"
)

func judgeMem(id, content string, typ memory.Type, importance int, tags ...string) *memory.Memory {
	return &memory.Memory{
		ID:         id,
		Content:    content,
		Type:       typ,
		Tags:       tags,
		Timestamp:  time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		Importance: importance,
	}
}

func TestJudgeContradictionOppositePolarity(t *testing.T) {
	h := NewHeuristic()
	a := judgeMem("a", "always use tabs in this codebase", memory.TypePreference, 3, "style")
	b := judgeMem("b", "do not use tabs, spaces only", memory.TypePreference, 3, "style")
	b.Timestamp = a.Timestamp.Add(time.Hour)

	verdict, err := h.JudgeContradiction(context.Background(), a, b)
	require.NoError(t, err)

	assert.True(t, verdict.IsRealConflict)
	assert.Equal(t, "preference", verdict.ConflictType)
	assert.Contains(t, verdict.Resolution, "b", "newer memory wins")
	assert.LessOrEqual(t, verdict.Confidence, 0.5)
	assert.True(t, strings.HasPrefix(verdict.Reasoning, "heuristic:"))
}

func TestJudgeContradictionNoOverlap(t *testing.T) {
	h := NewHeuristic()
	a := judgeMem("a", "deploys happen on tuesdays", memory.TypeContext, 2)
	b := judgeMem("b", "never cook fish in the office microwave", memory.TypeContext, 2)

	verdict, err := h.JudgeContradiction(context.Background(), a, b)
	require.NoError(t, err)
	assert.False(t, verdict.IsRealConflict)
}

func TestJudgeContradictionSamePolarity(t *testing.T) {
	h := NewHeuristic()
	a := judgeMem("a", "postgres backs the ledger service", memory.TypeContext, 2, "ledger")
	b := judgeMem("b", "postgres handles ledger writes", memory.TypeContext, 2, "ledger")

	verdict, err := h.JudgeContradiction(context.Background(), a, b)
	require.NoError(t, err)
	assert.False(t, verdict.IsRealConflict)
	assert.True(t, strings.HasPrefix(verdict.Reasoning, "heuristic:"))
}

func TestJudgeConsolidationMerges(t *testing.T) {
	h := NewHeuristic()
	older := judgeMem("a", "redis caches session tokens", memory.TypeLearning, 2, "redis", "sessions")
	newer := judgeMem("b", "session cache TTL is an hour", memory.TypeLearning, 4, "redis")
	newer.Timestamp = older.Timestamp.Add(time.Hour)

	verdict, err := h.JudgeConsolidation(context.Background(), []*memory.Memory{newer, older}, "")
	require.NoError(t, err)

	assert.True(t, verdict.ShouldMerge)
	assert.Equal(t, "redis caches session tokens\n\nsession cache TTL is an hour", verdict.MergedContent)
	assert.Equal(t, []string{"redis", "sessions"}, verdict.MergedTags)
	assert.Equal(t, 4, verdict.Importance, "takes the max importance")
	assert.Equal(t, 0.5, verdict.Confidence, "heuristic confidence cap")
}

func TestJudgeConsolidationHonorsHint(t *testing.T) {
	h := NewHeuristic()
	a := judgeMem("a", "one", memory.TypeLearning, 2, "x")
	b := judgeMem("b", "two", memory.TypeLearning, 2, "x")

	verdict, err := h.JudgeConsolidation(context.Background(), []*memory.Memory{a, b}, "merged summary")
	require.NoError(t, err)
	assert.True(t, verdict.ShouldMerge)
	assert.Equal(t, "merged summary", verdict.MergedContent)
}

func TestJudgeConsolidationRejectsMixedTypes(t *testing.T) {
	h := NewHeuristic()
	a := judgeMem("a", "one", memory.TypeLearning, 2, "x")
	b := judgeMem("b", "two", memory.TypeDecision, 2, "x")

	verdict, err := h.JudgeConsolidation(context.Background(), []*memory.Memory{a, b}, "")
	require.NoError(t, err)
	assert.False(t, verdict.ShouldMerge)
}

func TestJudgeConsolidationRequiresCommonTag(t *testing.T) {
	h := NewHeuristic()
	a := judgeMem("a", "one", memory.TypeLearning, 2, "x")
	b := judgeMem("b", "two", memory.TypeLearning, 2, "y")

	verdict, err := h.JudgeConsolidation(context.Background(), []*memory.Memory{a, b}, "")
	require.NoError(t, err)
	assert.False(t, verdict.ShouldMerge)
}
