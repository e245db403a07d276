package graph

import (
	"regexp"
	"strings"
	"time"

	"github.com/oneiriclabs/mnemo/memory"
)

// linkCandidate carries everything the link-type rules look at.
type linkCandidate struct {
	sourceContent string // lower-cased
	targetContent string // lower-cased
	sourceType    memory.Type
	targetType    memory.Type
	sourceTime    time.Time
	targetTime    time.Time
}

// linkRule is one entry in the ordered cascade. First match wins, so the
// precedence lives in the table order, not in nested conditionals.
type linkRule struct {
	name  string
	apply func(c linkCandidate) (memory.LinkType, bool)
}

// supersessionAge is how much newer a memory must be before
// supersession-language is trusted to mean replacement.
const supersessionAge = 7 * 24 * time.Hour

var (
	supersessionPattern = regexp.MustCompile(`\b(supersed|replac|updat|revis)\w*|\bno longer\b|\binstead\b`)
	alternativePattern  = regexp.MustCompile(`\binstead\b|\brather than\b|\balternativ\w*|\bswitch\w* to\b|\bchang\w* to\b`)
	implementPattern    = regexp.MustCompile(`\bimplement\w*|\bappl(y|ied|ying)\b|\bbuilt (with|on)\b|\busing\b`)
)

var exampleIndicators = []string{
	"example", "instance", "case study", "such as", "e.g.", "for instance",
}

// linkRules is the cascade, in documented precedence order.
var linkRules = []linkRule{
	{"temporal-supersession", ruleTemporalSupersession},
	{"example-language", ruleExampleLanguage},
	{"foundational-anchor", ruleFoundationalAnchor},
	{"hierarchy", ruleHierarchy},
	{"same-level", ruleSameLevel},
}

// InferLinkType assigns a directional relationship type to a candidate
// edge from source to target. The cascade encodes a directed thought-flow
// over the type hierarchy so proposed links carry semantic direction, not
// just undirected similarity; downstream causal reasoning depends on it.
//
// Missing timestamps skip the temporal rule rather than failing the call.
func InferLinkType(sourceContent, targetContent string, sourceType, targetType memory.Type, sourceTime, targetTime time.Time) memory.LinkType {
	c := linkCandidate{
		sourceContent: strings.ToLower(sourceContent),
		targetContent: strings.ToLower(targetContent),
		sourceType:    sourceType,
		targetType:    targetType,
		sourceTime:    sourceTime,
		targetTime:    targetTime,
	}

	for _, rule := range linkRules {
		if t, ok := rule.apply(c); ok {
			return t
		}
	}
	return memory.LinkRelated
}

// ruleTemporalSupersession: a clearly newer memory at the same or a more
// derived level, using replacement language, supersedes the older one.
func ruleTemporalSupersession(c linkCandidate) (memory.LinkType, bool) {
	if c.sourceTime.IsZero() || c.targetTime.IsZero() {
		return "", false
	}
	if c.sourceTime.Sub(c.targetTime) < supersessionAge {
		return "", false
	}
	if c.sourceType.Level() < c.targetType.Level() {
		return "", false
	}
	if !supersessionPattern.MatchString(c.sourceContent) {
		return "", false
	}
	return memory.LinkSupersedes, true
}

// ruleExampleLanguage fires on example-indicating phrasing in the source
// regardless of the type hierarchy.
func ruleExampleLanguage(c linkCandidate) (memory.LinkType, bool) {
	if containsAny(c.sourceContent, exampleIndicators) {
		return memory.LinkExampleOf, true
	}
	return "", false
}

// ruleFoundationalAnchor: everything leans on foundational memories.
func ruleFoundationalAnchor(c linkCandidate) (memory.LinkType, bool) {
	if c.targetType == memory.TypeFoundational {
		return memory.LinkDependsOn, true
	}
	if c.sourceType == memory.TypeFoundational {
		return memory.LinkSupports, true
	}
	return "", false
}

// ruleHierarchy directs edges along the derivation hierarchy: more
// derived memories depend on (or were caused by) less derived ones, and
// less derived memories support more derived ones. A few type pairs have
// named relationships that override the plain level comparison, so those
// are checked first.
func ruleHierarchy(c linkCandidate) (memory.LinkType, bool) {
	switch {
	case c.sourceType == memory.TypeLearning && c.targetType == memory.TypeDecision:
		return memory.LinkCausedBy, true
	case c.sourceType == memory.TypeTodo &&
		(c.targetType == memory.TypeDecision || c.targetType == memory.TypeLearning):
		return memory.LinkDependsOn, true
	case c.sourceType == memory.TypePattern && c.targetType == memory.TypeLearning:
		return memory.LinkExtends, true
	}

	sl, tl := c.sourceType.Level(), c.targetType.Level()
	switch {
	case sl > tl:
		if c.sourceType == memory.TypeSummary {
			return memory.LinkExtends, true
		}
		return memory.LinkDependsOn, true
	case sl < tl:
		return memory.LinkSupports, true
	default:
		return "", false
	}
}

// ruleSameLevel refines edges between memories at the same derivation
// level. Always matches; it is the cascade's terminal rule.
func ruleSameLevel(c linkCandidate) (memory.LinkType, bool) {
	switch {
	case c.sourceType == memory.TypeDecision && c.targetType == memory.TypeDecision:
		if alternativePattern.MatchString(c.sourceContent) {
			return memory.LinkSupersedes, true
		}
	case c.sourceType == memory.TypeLearning && c.targetType == memory.TypeLearning:
		return memory.LinkExtends, true
	case c.sourceType == memory.TypeContext && c.targetType == memory.TypeContext:
		if float64(len(c.sourceContent)) > 1.5*float64(len(c.targetContent)) {
			return memory.LinkExtends, true
		}
	case c.sourceType == memory.TypePattern && c.targetType == memory.TypePattern:
		if implementPattern.MatchString(c.sourceContent) {
			return memory.LinkImplements, true
		}
		return memory.LinkExtends, true
	}

	if containsAny(c.sourceContent, exampleIndicators) || containsAny(c.targetContent, exampleIndicators) {
		return memory.LinkExampleOf, true
	}
	return memory.LinkRelated, true
}

// linkBoosts is the per-type strength boost over raw similarity.
var linkBoosts = map[memory.LinkType]float64{
	memory.LinkSupersedes:  0.10,
	memory.LinkContradicts: 0.15,
	memory.LinkSupports:    0.05,
	memory.LinkImplements:  0.10,
	memory.LinkDependsOn:   0.10,
}

// LinkStrength combines embedding similarity with the type-specific
// boost, capped at 1.0.
func LinkStrength(similarity float64, linkType memory.LinkType) float64 {
	strength := similarity + linkBoosts[linkType]
	if strength > 1.0 {
		return 1.0
	}
	if strength < 0 {
		return 0
	}
	return strength
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
