package policy

// Action is one of the maintenance operations a walker may propose.
type Action string

const (
	ActionSaveMemory        Action = "save_memory"
	ActionUpdateMemory      Action = "update_memory"
	ActionDeleteMemory      Action = "delete_memory"
	ActionLinkMemories      Action = "link_memories"
	ActionConsolidate       Action = "consolidate"
	ActionDecay             Action = "decay"
	ActionPrune             Action = "prune"
	ActionTag               Action = "tag"
	ActionReclassify        Action = "reclassify"
	ActionSupersede         Action = "supersede"
	ActionFlagContradiction Action = "flag_contradiction"
)

// RiskLevel classifies how much damage an action can do if wrong.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Decision is the outcome of a policy check.
type Decision string

const (
	DecisionAuto   Decision = "auto"
	DecisionReview Decision = "review"
	DecisionDeny   Decision = "deny"
)

type actionInfo struct {
	Risk RiskLevel

	// Default is the decision when trust is insufficient.
	Default Decision

	// RequiredTrust is the per-action trust floor for auto execution.
	RequiredTrust float64
}

// actionMeta covers every action kind. An action missing from this table
// is unknown and falls back to the most cautious defaults.
var actionMeta = map[Action]actionInfo{
	ActionSaveMemory:        {Risk: RiskLow, Default: DecisionAuto, RequiredTrust: 0.3},
	ActionUpdateMemory:      {Risk: RiskMedium, Default: DecisionReview, RequiredTrust: 0.6},
	ActionDeleteMemory:      {Risk: RiskCritical, Default: DecisionDeny, RequiredTrust: 0.9},
	ActionLinkMemories:      {Risk: RiskLow, Default: DecisionAuto, RequiredTrust: 0.4},
	ActionConsolidate:       {Risk: RiskHigh, Default: DecisionReview, RequiredTrust: 0.7},
	ActionDecay:             {Risk: RiskMedium, Default: DecisionReview, RequiredTrust: 0.6},
	ActionPrune:             {Risk: RiskCritical, Default: DecisionReview, RequiredTrust: 0.85},
	ActionTag:               {Risk: RiskLow, Default: DecisionAuto, RequiredTrust: 0.4},
	ActionReclassify:        {Risk: RiskMedium, Default: DecisionReview, RequiredTrust: 0.6},
	ActionSupersede:         {Risk: RiskHigh, Default: DecisionReview, RequiredTrust: 0.75},
	ActionFlagContradiction: {Risk: RiskLow, Default: DecisionAuto, RequiredTrust: 0.3},
}

// unknownAction is the fallback for actions outside the table.
var unknownAction = actionInfo{Risk: RiskCritical, Default: DecisionReview, RequiredTrust: 1.0}

func metaFor(action Action) actionInfo {
	if info, ok := actionMeta[action]; ok {
		return info
	}
	return unknownAction
}

// ActionRisk returns the fixed risk level of an action.
func ActionRisk(action Action) RiskLevel {
	return metaFor(action).Risk
}

// Walker identifies one of the autonomous maintenance walkers.
type Walker string

const (
	WalkerConsolidator  Walker = "consolidator"
	WalkerLinker        Walker = "linker"
	WalkerDecayer       Walker = "decayer"
	WalkerPruner        Walker = "pruner"
	WalkerTagger        Walker = "tagger"
	WalkerContradiction Walker = "contradiction"
	WalkerSummarizer    Walker = "summarizer"
)

// walkerCapabilities maps each walker to the actions it may legally
// propose. Enforced before any trust decision: an action outside a
// walker's set is rejected no matter how trusted the action kind is.
var walkerCapabilities = map[Walker][]Action{
	WalkerConsolidator:  {ActionConsolidate, ActionUpdateMemory, ActionSupersede},
	WalkerLinker:        {ActionLinkMemories},
	WalkerDecayer:       {ActionDecay, ActionUpdateMemory},
	WalkerPruner:        {ActionPrune, ActionDeleteMemory},
	WalkerTagger:        {ActionTag, ActionUpdateMemory, ActionReclassify},
	WalkerContradiction: {ActionFlagContradiction, ActionLinkMemories},
	WalkerSummarizer:    {ActionSaveMemory, ActionConsolidate, ActionLinkMemories},
}

// WalkerCanPerform reports whether the walker may propose the action.
// Unknown walkers can perform nothing.
func WalkerCanPerform(walker Walker, action Action) bool {
	for _, a := range walkerCapabilities[walker] {
		if a == action {
			return true
		}
	}
	return false
}
