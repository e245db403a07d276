package narrative

import (
	"strings"

	"github.com/oneiriclabs/mnemo/memory"
)

// roleOrder fixes both the scoring order and the tie-break: when two roles
// score equally, the one declared first wins.
var roleOrder = []memory.NarrativeRole{
	memory.RoleExposition,
	memory.RoleRisingAction,
	memory.RoleClimax,
	memory.RoleFallingAction,
	memory.RoleResolution,
}

// roleKeywords maps each role to the content words that vote for it.
// Each keyword present in the lower-cased content adds one point.
var roleKeywords = map[memory.NarrativeRole][]string{
	memory.RoleExposition: {
		"started", "beginning", "initial", "setup", "background",
		"context", "introduced", "first",
	},
	memory.RoleRisingAction: {
		"problem", "issue", "struggling", "blocked", "difficult",
		"trying", "attempted", "investigating", "debugging",
	},
	memory.RoleClimax: {
		"decided", "breakthrough", "finally", "critical", "crisis",
		"turning point", "realized", "discovered",
	},
	memory.RoleFallingAction: {
		"after", "following", "cleanup", "aftermath", "settling",
		"winding down", "wrapping up",
	},
	memory.RoleResolution: {
		"solved", "resolved", "fixed", "completed", "learned",
		"conclusion", "finished", "works now",
	},
}

// turningPointPhrases flag a memory as a narrative turning point,
// independent of which role wins.
var turningPointPhrases = []string{
	"turning point",
	"breakthrough",
	"realized",
	"everything changed",
	"game changer",
	"pivotal",
	"critical moment",
	"changed my mind",
}

// InferRole classifies a memory into one of the five dramatic-structure
// roles. An explicit override short-circuits with confidence 1.0. Otherwise
// every role is scored from content keywords, the memory type and the
// optional emotional context; the winner's confidence is its share of the
// total score, with a 0.3 floor when nothing scores at all.
func InferRole(m *memory.Memory, override memory.NarrativeRole) memory.NarrativeContext {
	content := strings.ToLower(m.Content)

	if override != "" {
		return memory.NarrativeContext{
			Role:         override,
			Confidence:   1.0,
			TurningPoint: isTurningPoint(content),
			DetectedBy:   "explicit",
		}
	}

	scores := make(map[memory.NarrativeRole]float64, len(roleOrder))
	for role, keywords := range roleKeywords {
		for _, kw := range keywords {
			if strings.Contains(content, kw) {
				scores[role]++
			}
		}
	}

	switch m.Type {
	case memory.TypeContext:
		scores[memory.RoleExposition] += 2
	case memory.TypeLearning, memory.TypePattern:
		scores[memory.RoleResolution] += 2
	case memory.TypeDecision:
		scores[memory.RoleClimax] += 3
	case memory.TypeTodo:
		scores[memory.RoleRisingAction] += 1
	}

	if e := m.Emotional; e != nil {
		if e.Arousal > 0.6 && e.Valence < -0.3 {
			scores[memory.RoleRisingAction] += 2
		}
		if e.Arousal > 0.7 && e.Valence > 0.4 {
			scores[memory.RoleClimax] += 2
		}
		if e.Arousal <= 0.4 && e.Valence > 0.3 {
			scores[memory.RoleResolution] += 2
		}
	}

	winner := roleOrder[0]
	var best, total float64
	for _, role := range roleOrder {
		total += scores[role]
		if scores[role] > best {
			best = scores[role]
			winner = role
		}
	}

	confidence := 0.3
	if total > 0 {
		confidence = best / total
	}

	return memory.NarrativeContext{
		Role:         winner,
		Confidence:   confidence,
		TurningPoint: isTurningPoint(content),
		DetectedBy:   "heuristic",
	}
}

func isTurningPoint(lowerContent string) bool {
	for _, phrase := range turningPointPhrases {
		if strings.Contains(lowerContent, phrase) {
			return true
		}
	}
	return false
}
