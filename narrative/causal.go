package narrative

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/oneiriclabs/mnemo/memory"
)

// Cause-side language ("because of X") and effect-side language
// ("therefore Y"); either one in the effect's content counts.
var (
	causeLanguagePattern  = regexp.MustCompile(`\b(because|since|due to|caused by|resulted from|triggered by)\b`)
	effectLanguagePattern = regexp.MustCompile(`\b(therefore|so|thus|consequently|as a result|led to|caused)\b`)
)

// DetectCausal scores how likely cause led to effect, in [0, 1]. Causality
// requires strict temporal precedence: a cause at or after its effect scores
// zero no matter how related the contents are. The remaining signal is
// additive: temporal proximity, the effect referencing the cause's opening
// words, causal language, shared tags and known type transitions.
func DetectCausal(cause, effect *memory.Memory) float64 {
	if !cause.Timestamp.Before(effect.Timestamp) {
		return 0
	}

	var confidence float64

	gap := effect.Timestamp.Sub(cause.Timestamp)
	switch {
	case gap < time.Hour:
		confidence += 0.3
	case gap < 24*time.Hour:
		confidence += 0.2
	case gap < 48*time.Hour:
		confidence += 0.1
	}

	effectContent := strings.ToLower(effect.Content)
	if referencesOpening(strings.ToLower(cause.Content), effectContent) {
		confidence += 0.2
	}

	if causeLanguagePattern.MatchString(effectContent) || effectLanguagePattern.MatchString(effectContent) {
		confidence += 0.2
	}

	tagBonus := 0.1 * float64(len(cause.SharedTags(effect)))
	if tagBonus > 0.3 {
		tagBonus = 0.3
	}
	confidence += tagBonus

	switch {
	case cause.Type == memory.TypeDecision && effect.Type == memory.TypeLearning:
		confidence += 0.2
	case cause.Type == memory.TypeTodo && effect.Type == memory.TypeDecision:
		confidence += 0.15
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

// referencesOpening reports whether any of the cause's first five words
// longer than four characters recur in the effect's content.
func referencesOpening(causeContent, effectContent string) bool {
	words := strings.Fields(causeContent)
	if len(words) > 5 {
		words = words[:5]
	}
	for _, w := range words {
		if len(w) > 4 && strings.Contains(effectContent, w) {
			return true
		}
	}
	return false
}

// ChainLink is one step of a causal chain: the memory plus the confidence
// of the edge that brought the walk to it. The seed carries confidence 1.0.
type ChainLink struct {
	Memory     *memory.Memory
	Confidence float64
}

// BuildChain walks forward greedily from start through pool. At each step it
// scores every unvisited memory strictly later than the current one and
// within the temporal window, advances to the highest-scoring candidate if
// its confidence clears the threshold, and stops otherwise. No backtracking;
// each memory is visited at most once. Ties go to the earliest candidate.
func BuildChain(start *memory.Memory, pool []*memory.Memory, cfg Config) []ChainLink {
	window := time.Duration(cfg.TemporalWindowHours * float64(time.Hour))

	candidates := make([]*memory.Memory, 0, len(pool))
	for _, m := range pool {
		if m.ID != start.ID {
			candidates = append(candidates, m)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Timestamp.Before(candidates[j].Timestamp)
	})

	chain := []ChainLink{{Memory: start, Confidence: 1.0}}
	visited := map[string]bool{start.ID: true}
	current := start

	for {
		var next *memory.Memory
		var best float64

		for _, cand := range candidates {
			if visited[cand.ID] || !cand.Timestamp.After(current.Timestamp) {
				continue
			}
			if cand.Timestamp.Sub(current.Timestamp) > window {
				continue
			}
			if conf := DetectCausal(current, cand); conf > best {
				best = conf
				next = cand
			}
		}

		if next == nil || best < cfg.CausalConfidenceThreshold {
			return chain
		}

		chain = append(chain, ChainLink{Memory: next, Confidence: best})
		visited[next.ID] = true
		current = next
	}
}

// Resolution pairs a candidate memory with its resolution confidence.
type Resolution struct {
	Memory     *memory.Memory
	Confidence float64
}

// FindResolution looks for the memory most likely to resolve the given
// problem: strictly later, within maxDaysForward days, scored by type
// (learning and pattern resolve, decisions partially), tag overlap,
// resolution language, and an emotional shift from negative to positive.
// Returns nil unless the best candidate scores above 0.5.
func FindResolution(problem *memory.Memory, pool []*memory.Memory, maxDaysForward int) *Resolution {
	deadline := problem.Timestamp.Add(time.Duration(maxDaysForward) * 24 * time.Hour)

	var best *Resolution
	for _, cand := range pool {
		if cand.ID == problem.ID || !cand.Timestamp.After(problem.Timestamp) || cand.Timestamp.After(deadline) {
			continue
		}

		var score float64
		switch cand.Type {
		case memory.TypeLearning, memory.TypePattern:
			score += 0.3
		case memory.TypeDecision:
			score += 0.2
		}

		tagBonus := 0.15 * float64(len(problem.SharedTags(cand)))
		if tagBonus > 0.4 {
			tagBonus = 0.4
		}
		score += tagBonus

		content := strings.ToLower(cand.Content)
		for _, kw := range roleKeywords[memory.RoleResolution] {
			if strings.Contains(content, kw) {
				score += 0.3
				break
			}
		}

		if problem.Emotional != nil && cand.Emotional != nil &&
			problem.Emotional.Valence < -0.3 && cand.Emotional.Valence > 0.3 {
			score += 0.2
		}

		if score > 1.0 {
			score = 1.0
		}
		if best == nil || score > best.Confidence {
			best = &Resolution{Memory: cand, Confidence: score}
		}
	}

	if best == nil || best.Confidence <= 0.5 {
		return nil
	}
	return best
}
