package narrative

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneiriclabs/mnemo/memory"
)

func arcCorpus() []*memory.Memory {
	return []*memory.Memory{
		timedMem("dec", "decision: migrate sessions to redis", memory.TypeDecision,
			causalBase, "redis", "migration"),
		timedMem("learn", "latency dropped because sessions moved", memory.TypeLearning,
			causalBase.Add(30*time.Minute), "redis", "migration"),
		timedMem("tail", "as a result the p99 alert closed", memory.TypeContext,
			causalBase.Add(time.Hour), "redis"),
		timedMem("stray", "unrelated grocery list", memory.TypeReference,
			causalBase.Add(6*24*time.Hour)),
	}
}

func TestDetectArcsBuildsArcAndClaimsMembers(t *testing.T) {
	arcs, err := DetectArcs(arcCorpus(), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, arcs, 1)

	arc := arcs[0]
	assert.NotEmpty(t, arc.ID)
	assert.Equal(t, []string{"dec", "learn", "tail"}, arc.MemberIDs())
	assert.Equal(t, "redis", arc.Theme)
	assert.Equal(t, causalBase, arc.StartTime)
	assert.Equal(t, causalBase.Add(time.Hour), arc.EndTime)
}

func TestDetectArcsMinLength(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinArcLength = 4

	arcs, err := DetectArcs(arcCorpus(), cfg)
	require.NoError(t, err)
	assert.Empty(t, arcs, "a three-step chain does not qualify")
}

func TestDetectArcsThemeFallsBackToGeneral(t *testing.T) {
	memories := arcCorpus()
	for _, m := range memories {
		m.Tags = nil
	}

	arcs, err := DetectArcs(memories, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, arcs, 1)
	assert.Equal(t, "general", arcs[0].Theme)
}

func TestDetectArcsRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CausalConfidenceThreshold = 1.5

	_, err := DetectArcs(arcCorpus(), cfg)
	assert.Error(t, err)
}

func TestExtractThemes(t *testing.T) {
	themes := ExtractThemes(arcCorpus(), 2)

	require.Len(t, themes, 2)
	assert.Equal(t, "redis", themes[0].Theme)
	assert.Equal(t, 3, themes[0].Count)
	assert.Equal(t, []string{"dec", "learn", "tail"}, themes[0].MemberIDs)
	assert.Equal(t, "migration", themes[1].Theme)
	assert.Equal(t, 2, themes[1].Count)
}

func TestExtractThemesFiltersRareTags(t *testing.T) {
	themes := ExtractThemes(arcCorpus(), 4)
	assert.Empty(t, themes)
}
