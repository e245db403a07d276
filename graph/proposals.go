package graph

import (
	"fmt"
	"math"
	"sort"

	"github.com/oneiriclabs/mnemo/memory"
)

// ProposedLink is one ranked, justified link candidate. Proposals are
// pure analysis output; callers decide whether to materialize them as
// persisted links (and whether to mirror a reverse edge via
// memory.ReverseLinkType).
type ProposedLink struct {
	SourceID   string
	TargetID   string
	Type       memory.LinkType
	Strength   float64
	Similarity float64
	Reason     string

	CrossCluster      bool
	HighwayConnection bool
}

// ProposeOptions configures link proposal generation.
type ProposeOptions struct {
	// MinSimilarity is the neighbor threshold in [0,1].
	MinSimilarity float64

	// MaxLinksPerMemory caps proposals per source memory.
	MaxLinksPerMemory int

	// PrioritizeHighways boosts proposals touching a highway memory.
	PrioritizeHighways bool

	// PrioritizeCrossCluster boosts proposals bridging clusters.
	PrioritizeCrossCluster bool
}

// DefaultProposeOptions returns the thresholds used by the dream pass.
func DefaultProposeOptions() ProposeOptions {
	return ProposeOptions{
		MinSimilarity:          0.55,
		MaxLinksPerMemory:      5,
		PrioritizeHighways:     true,
		PrioritizeCrossCluster: true,
	}
}

// Validate rejects configurations that are cheap to check here and
// expensive to debug downstream.
func (o ProposeOptions) Validate() error {
	if o.MinSimilarity < 0 || o.MinSimilarity > 1 {
		return fmt.Errorf("MinSimilarity %v outside [0,1]", o.MinSimilarity)
	}
	if o.MaxLinksPerMemory <= 0 {
		return fmt.Errorf("MaxLinksPerMemory must be positive, got %d", o.MaxLinksPerMemory)
	}
	return nil
}

// canonical per-type rationale used in proposal justifications.
var linkRationale = map[memory.LinkType]string{
	memory.LinkRelated:     "semantically similar content",
	memory.LinkSupports:    "provides grounding for the target",
	memory.LinkContradicts: "conflicts with the target",
	memory.LinkExtends:     "builds on the target",
	memory.LinkSupersedes:  "newer derivation replaces the target",
	memory.LinkDependsOn:   "derived from the target",
	memory.LinkCausedBy:    "outcome of the target decision",
	memory.LinkImplements:  "puts the target pattern into practice",
	memory.LinkExampleOf:   "concrete instance of the target",
}

// GenerateProposedLinks runs the full enrichment pipeline over a memory
// snapshot: neighbor graph at 2x the per-memory link budget, clustering
// at a stricter threshold, centrality/highway detection over the top 10%
// of the corpus, then per-edge type inference and ranking.
//
// Ranking score is strength plus 0.2 for highway connections and 0.15
// for cross-cluster edges (when the respective priority flags are set),
// descending; ties keep discovery order. Candidate pairs are deduplicated
// on their unordered pair, keeping the first (higher-similarity side)
// discovered. Pure computation: no store access, no side effects.
func GenerateProposedLinks(memories []*memory.Memory, opts ProposeOptions) ([]ProposedLink, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("propose options: %w", err)
	}
	if len(memories) < 2 {
		return nil, nil
	}

	byID := make(map[string]*memory.Memory, len(memories))
	for _, m := range memories {
		byID[m.ID] = m
	}

	neighbors := KNearestNeighbors(memories, 2*opts.MaxLinksPerMemory, opts.MinSimilarity)

	clusterThreshold := opts.MinSimilarity + 0.1
	if clusterThreshold > 1.0 {
		clusterThreshold = 1.0
	}
	clusters := Cluster(neighbors, clusterThreshold)

	centrality := Centrality(neighbors, clusters)
	topN := int(math.Ceil(float64(len(memories)) * 0.10))
	highways := make(map[string]bool, topN)
	for _, id := range IdentifyHighways(centrality, topN) {
		highways[id] = true
	}

	var proposals []ProposedLink
	seen := make(map[[2]string]bool)

	for _, src := range memories {
		for _, n := range neighbors[src.ID] {
			tgt := byID[n.ID]
			if tgt == nil || tgt.ID == src.ID {
				continue
			}

			pair := orderedPair(src.ID, tgt.ID)
			if seen[pair] {
				continue
			}
			seen[pair] = true

			linkType := InferLinkType(src.Content, tgt.Content, src.Type, tgt.Type, src.Timestamp, tgt.Timestamp)
			p := ProposedLink{
				SourceID:          src.ID,
				TargetID:          tgt.ID,
				Type:              linkType,
				Strength:          LinkStrength(n.Similarity, linkType),
				Similarity:        n.Similarity,
				CrossCluster:      clusters[src.ID] != clusters[tgt.ID],
				HighwayConnection: highways[src.ID] || highways[tgt.ID],
			}
			p.Reason = justification(p)
			proposals = append(proposals, p)
		}
	}

	sort.SliceStable(proposals, func(i, j int) bool {
		return rankScore(proposals[i], opts) > rankScore(proposals[j], opts)
	})

	// Per-source budget, applied in rank order so the strongest proposals
	// claim the slots.
	perSource := make(map[string]int, len(memories))
	kept := proposals[:0]
	for _, p := range proposals {
		if perSource[p.SourceID] >= opts.MaxLinksPerMemory {
			continue
		}
		perSource[p.SourceID]++
		kept = append(kept, p)
	}

	return kept, nil
}

func rankScore(p ProposedLink, opts ProposeOptions) float64 {
	score := p.Strength
	if opts.PrioritizeHighways && p.HighwayConnection {
		score += 0.2
	}
	if opts.PrioritizeCrossCluster && p.CrossCluster {
		score += 0.15
	}
	return score
}

// justification builds the one-line human-readable reason combining the
// type's canonical rationale with topology annotations.
func justification(p ProposedLink) string {
	reason := fmt.Sprintf("%s (similarity %.2f): %s", p.Type, p.Similarity, linkRationale[p.Type])
	if p.CrossCluster {
		reason += "; bridges clusters"
	}
	if p.HighwayConnection {
		reason += "; touches a highway memory"
	}
	return reason
}

func orderedPair(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}
