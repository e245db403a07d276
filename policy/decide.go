package policy

import (
	"log"

	"github.com/oneiriclabs/mnemo/memory"
)

// Config controls the decision function.
type Config struct {
	// Enabled turns policy enforcement on. Disabled means every action
	// is auto-approved.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// RequireReviewForCritical forces review for critical-risk actions
	// regardless of trust.
	RequireReviewForCritical bool `json:"require_review_for_critical" yaml:"require_review_for_critical"`

	// MinTrustForAuto, when positive, replaces every action's own trust
	// floor with a single global one.
	MinTrustForAuto float64 `json:"min_trust_for_auto" yaml:"min_trust_for_auto"`

	// ActionOverrides pins specific actions to a fixed decision,
	// bypassing trust and context entirely.
	ActionOverrides map[Action]Decision `json:"action_overrides" yaml:"action_overrides"`
}

// DefaultConfig returns the policy used by the dream pass.
func DefaultConfig() Config {
	return Config{
		Enabled:                  true,
		RequireReviewForCritical: true,
	}
}

// Context carries the target-memory facts a decision may hinge on.
// A nil Context means no target-specific information is available.
type Context struct {
	TargetImportance int
	TargetType       memory.Type
}

// Engine is the decision point for autonomous actions. It owns no
// memories, only the trust table and the policy configuration.
type Engine struct {
	config Config
	trust  *TrustStore
}

// NewEngine creates a policy engine around an existing trust table.
func NewEngine(config Config, trust *TrustStore) *Engine {
	if trust == nil {
		trust = NewTrustStore()
	}
	return &Engine{config: config, trust: trust}
}

// Trust exposes the engine's trust table for outcome recording and
// persistence.
func (e *Engine) Trust() *TrustStore {
	return e.trust
}

// Decide returns auto, review or deny for a proposed action. It never
// fails: unknown actions and missing trust records read as zero history
// and fall through to the cautious defaults.
//
// Precedence: disabled policy, explicit per-action override, critical
// risk gate, target-context gates (high importance, foundational type),
// then trust against the required floor, then the action's static
// default.
func (e *Engine) Decide(action Action, ctx *Context) Decision {
	if !e.config.Enabled {
		return DecisionAuto
	}

	if override, ok := e.config.ActionOverrides[action]; ok {
		log.Printf("[POLICY] %s: explicit override %s", action, override)
		return override
	}

	info := metaFor(action)

	if info.Risk == RiskCritical && e.config.RequireReviewForCritical {
		return DecisionReview
	}

	if ctx != nil {
		if ctx.TargetImportance >= 4 {
			return DecisionReview
		}
		if ctx.TargetType == memory.TypeFoundational && action != ActionLinkMemories {
			return DecisionReview
		}
	}

	required := info.RequiredTrust
	if e.config.MinTrustForAuto > 0 {
		required = e.config.MinTrustForAuto
	}

	if score := e.trust.Get(action).Score; score >= required {
		log.Printf("[POLICY] %s: trust %.2f clears %.2f, auto", action, score, required)
		return DecisionAuto
	}

	return info.Default
}
