package memory

import (
	"fmt"
	"time"
)

// LinkType is the directed relationship carried by a link.
type LinkType string

const (
	LinkRelated     LinkType = "related"
	LinkSupports    LinkType = "supports"
	LinkContradicts LinkType = "contradicts"
	LinkExtends     LinkType = "extends"
	LinkSupersedes  LinkType = "supersedes"
	LinkDependsOn   LinkType = "depends_on"
	LinkCausedBy    LinkType = "caused_by"
	LinkImplements  LinkType = "implements"
	LinkExampleOf   LinkType = "example_of"
)

var validLinkTypes = map[LinkType]bool{
	LinkRelated:     true,
	LinkSupports:    true,
	LinkContradicts: true,
	LinkExtends:     true,
	LinkSupersedes:  true,
	LinkDependsOn:   true,
	LinkCausedBy:    true,
	LinkImplements:  true,
	LinkExampleOf:   true,
}

// Valid reports whether t is one of the defined link types.
func (t LinkType) Valid() bool {
	return validLinkTypes[t]
}

// linkReversals maps link types to the type a mirrored reverse-direction
// link should carry. Only types whose mirror exists in the enum appear;
// the symmetric types mirror to themselves and supports/depends_on mirror
// each other ("A supports B" implies "B depends on A").
var linkReversals = map[LinkType]LinkType{
	LinkRelated:     LinkRelated,
	LinkContradicts: LinkContradicts,
	LinkSupports:    LinkDependsOn,
	LinkDependsOn:   LinkSupports,
}

// ReverseLinkType returns the type for a mirrored reverse link, and
// whether the given type has a defined mirror. Types without a mirror
// (supersedes, extends, caused_by, implements, example_of) are
// one-directional; callers should not materialize a reverse edge for
// them.
func ReverseLinkType(t LinkType) (LinkType, bool) {
	rev, ok := linkReversals[t]
	return rev, ok
}

// Link is a directed, typed edge from one memory to another. Strength
// reflects embedding similarity plus a type-specific boost, capped at
// 1.0. Links are not required to be symmetric.
type Link struct {
	TargetID  string    `json:"target_id"`
	Type      LinkType  `json:"type"`
	Strength  float64   `json:"strength"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by,omitempty"`
}

// NewLink builds a link after checking the no-self-loop and type
// invariants. sourceID is only used for validation; the link itself is
// stored on the source memory.
func NewLink(sourceID, targetID string, typ LinkType, strength float64, reason, createdBy string) (Link, error) {
	if sourceID == targetID {
		return Link{}, fmt.Errorf("self-link on memory %s", sourceID)
	}
	if !typ.Valid() {
		return Link{}, fmt.Errorf("invalid link type %q", typ)
	}
	if strength < 0 || strength > 1 {
		return Link{}, fmt.Errorf("link strength %v outside [0,1]", strength)
	}
	return Link{
		TargetID:  targetID,
		Type:      typ,
		Strength:  strength,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
		CreatedBy: createdBy,
	}, nil
}
