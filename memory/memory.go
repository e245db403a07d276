package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type classifies a memory by how derived it is from raw experience.
type Type string

const (
	TypeDecision      Type = "decision"
	TypePattern       Type = "pattern"
	TypeLearning      Type = "learning"
	TypeContext       Type = "context"
	TypePreference    Type = "preference"
	TypeSummary       Type = "summary"
	TypeTodo          Type = "todo"
	TypeReference     Type = "reference"
	TypeFoundational  Type = "foundational"
	TypeContradiction Type = "contradiction"
	TypeSuperseded    Type = "superseded"
	TypeShadow        Type = "shadow"
)

// Level returns the derivation level of a type within the thought-flow
// hierarchy. Lower levels are closer to raw experience; higher levels are
// more derived. Link inference uses levels to direct edges from derived
// memories toward their sources.
//
//	foundational=0, context/reference=1, preference=2, decision/pattern=3,
//	learning/todo=4, summary/contradiction=5, superseded=6
//
// Types outside the hierarchy (shadow, unknown) sit at the decision level
// so they neither anchor nor dominate inferred direction.
func (t Type) Level() int {
	switch t {
	case TypeFoundational:
		return 0
	case TypeContext, TypeReference:
		return 1
	case TypePreference:
		return 2
	case TypeDecision, TypePattern:
		return 3
	case TypeLearning, TypeTodo:
		return 4
	case TypeSummary, TypeContradiction:
		return 5
	case TypeSuperseded:
		return 6
	default:
		return 3
	}
}

// Valid reports whether t is one of the defined memory types.
func (t Type) Valid() bool {
	switch t {
	case TypeDecision, TypePattern, TypeLearning, TypeContext, TypePreference,
		TypeSummary, TypeTodo, TypeReference, TypeFoundational,
		TypeContradiction, TypeSuperseded, TypeShadow:
		return true
	}
	return false
}

// EmotionalContext captures the affective signal attached to a memory.
// Valence is negative-to-positive in [-1, 1]; arousal is calm-to-activated
// in [0, 1].
type EmotionalContext struct {
	Valence float64 `json:"valence" yaml:"valence"`
	Arousal float64 `json:"arousal" yaml:"arousal"`
}

// NarrativeRole is a five-stage dramatic-structure classification.
type NarrativeRole string

const (
	RoleExposition    NarrativeRole = "exposition"
	RoleRisingAction  NarrativeRole = "rising_action"
	RoleClimax        NarrativeRole = "climax"
	RoleFallingAction NarrativeRole = "falling_action"
	RoleResolution    NarrativeRole = "resolution"
)

// NarrativeContext is the analysis annotation produced by the narrative
// engine. It is computed on demand and only persisted if the caller
// writes it back; recomputation is idempotent for the same memory.
type NarrativeContext struct {
	Role         NarrativeRole `json:"narrative_role"`
	Confidence   float64       `json:"narrative_confidence"`
	TurningPoint bool          `json:"turning_point"`
	StoryArcID   string        `json:"story_arc_id,omitempty"`
	Themes       []string      `json:"themes,omitempty"`
	DetectedBy   string        `json:"detected_by"` // "explicit" or "heuristic"
}

// Memory is a stored text note with type, tags, timestamp, importance and
// embedding. The storage collaborator owns persistence; analysis treats
// Memory as plain read-only data.
type Memory struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Type       Type      `json:"type"`
	Tags       []string  `json:"tags,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Importance int       `json:"importance"`
	Project    string    `json:"project,omitempty"`
	Embedding  []float32 `json:"embedding,omitempty"`

	Emotional *EmotionalContext `json:"emotional_context,omitempty"`
	Narrative *NarrativeContext `json:"narrative_context,omitempty"`

	Links []Link `json:"links,omitempty"`
}

// New creates a memory with a fresh id and the current time, clamping
// importance into [1, 5] and applying the foundational invariant.
func New(content string, typ Type, importance int) *Memory {
	m := &Memory{
		ID:         uuid.New().String(),
		Content:    content,
		Type:       typ,
		Timestamp:  time.Now().UTC(),
		Importance: importance,
	}
	m.normalize()
	return m
}

// Validate checks the invariants the rest of the system assumes.
func (m *Memory) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("memory has no id")
	}
	if !m.Type.Valid() {
		return fmt.Errorf("invalid memory type %q", m.Type)
	}
	if m.Importance < 1 || m.Importance > 5 {
		return fmt.Errorf("importance %d outside [1,5]", m.Importance)
	}
	if m.Type == TypeFoundational && m.Importance != 5 {
		return fmt.Errorf("foundational memory must have importance 5, got %d", m.Importance)
	}
	return nil
}

// normalize clamps importance and enforces the foundational rule.
func (m *Memory) normalize() {
	if m.Importance < 1 {
		m.Importance = 1
	}
	if m.Importance > 5 {
		m.Importance = 5
	}
	if m.Type == TypeFoundational {
		m.Importance = 5
	}
}

// HasTag reports whether tag appears in the memory's tag list.
func (m *Memory) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SharedTags returns the tags m and other have in common, in m's order.
func (m *Memory) SharedTags(other *Memory) []string {
	var shared []string
	for _, t := range m.Tags {
		if other.HasTag(t) {
			shared = append(shared, t)
		}
	}
	return shared
}
