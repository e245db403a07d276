package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oneiriclabs/mnemo/memory"
)

func TestDecideDisabledPolicy(t *testing.T) {
	engine := NewEngine(Config{Enabled: false}, nil)

	assert.Equal(t, DecisionAuto, engine.Decide(ActionDeleteMemory, nil))
	assert.Equal(t, DecisionAuto, engine.Decide(ActionPrune, &Context{TargetImportance: 5}))
}

func TestDecideOverridePrecedence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ActionOverrides = map[Action]Decision{ActionLinkMemories: DecisionDeny}

	trust := NewTrustStore()
	for i := 0; i < 40; i++ {
		trust.RecordOutcome(ActionLinkMemories, StatusApproved)
	}
	engine := NewEngine(cfg, trust)

	assert.Equal(t, DecisionDeny, engine.Decide(ActionLinkMemories, nil),
		"override wins over full trust")
	assert.Equal(t, DecisionDeny, engine.Decide(ActionLinkMemories, &Context{TargetImportance: 1}))
}

func TestDecideCriticalRequiresReview(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	assert.Equal(t, DecisionReview, engine.Decide(ActionDeleteMemory, nil))
	assert.Equal(t, DecisionReview, engine.Decide(ActionPrune, nil))

	cfg := DefaultConfig()
	cfg.RequireReviewForCritical = false
	relaxed := NewEngine(cfg, nil)
	assert.Equal(t, DecisionDeny, relaxed.Decide(ActionDeleteMemory, nil),
		"falls through to the static default")
}

func TestDecideContextGates(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	assert.Equal(t, DecisionReview,
		engine.Decide(ActionTag, &Context{TargetImportance: 4}))
	assert.Equal(t, DecisionReview,
		engine.Decide(ActionDecay, &Context{TargetImportance: 2, TargetType: memory.TypeFoundational}))
	assert.Equal(t, DecisionAuto,
		engine.Decide(ActionLinkMemories, &Context{TargetImportance: 2, TargetType: memory.TypeFoundational}),
		"linking to foundational memories is allowed")
}

func TestDecideTrustGate(t *testing.T) {
	trust := NewTrustStore()
	engine := NewEngine(DefaultConfig(), trust)

	assert.Equal(t, DecisionReview, engine.Decide(ActionDecay, nil), "no history")

	for i := 0; i < 30; i++ {
		trust.RecordOutcome(ActionDecay, StatusApproved)
	}
	assert.Equal(t, DecisionAuto, engine.Decide(ActionDecay, nil), "earned trust")
}

func TestDecideGlobalTrustFloor(t *testing.T) {
	trust := NewTrustStore()
	for i := 0; i < 10; i++ {
		trust.RecordOutcome(ActionDecay, StatusApproved)
	}
	// Ten approvals score 0.65: clears the per-action 0.6 floor but not
	// a stricter global one.
	cfg := DefaultConfig()
	assert.Equal(t, DecisionAuto, NewEngine(cfg, trust).Decide(ActionDecay, nil))

	cfg.MinTrustForAuto = 0.9
	assert.Equal(t, DecisionReview, NewEngine(cfg, trust).Decide(ActionDecay, nil))
}

func TestDecideUnknownAction(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil)

	assert.Equal(t, DecisionReview, engine.Decide(Action("defragment"), nil),
		"unknown actions read as critical with a review default")
}

func TestWalkerCapabilities(t *testing.T) {
	assert.True(t, WalkerCanPerform(WalkerLinker, ActionLinkMemories))
	assert.False(t, WalkerCanPerform(WalkerLinker, ActionDeleteMemory))
	assert.True(t, WalkerCanPerform(WalkerPruner, ActionDeleteMemory))
	assert.False(t, WalkerCanPerform(WalkerTagger, ActionPrune))
	assert.False(t, WalkerCanPerform(Walker("gardener"), ActionTag), "unknown walker")
}

func TestActionMetaCoversAllActions(t *testing.T) {
	all := []Action{
		ActionSaveMemory, ActionUpdateMemory, ActionDeleteMemory,
		ActionLinkMemories, ActionConsolidate, ActionDecay, ActionPrune,
		ActionTag, ActionReclassify, ActionSupersede, ActionFlagContradiction,
	}
	assert.Len(t, actionMeta, len(all))
	for _, a := range all {
		info, ok := actionMeta[a]
		assert.True(t, ok, "missing metadata for %s", a)
		assert.NotEmpty(t, info.Risk)
		assert.NotEmpty(t, info.Default)
	}
}
