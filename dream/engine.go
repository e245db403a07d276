// Package dream runs the offline maintenance pass over a memory store:
// graph enrichment, consolidation, decay, contradiction detection and
// narrative annotation. Every mutating step is proposed by a walker,
// checked against its capability set and gated through the policy
// engine before anything is written back.
package dream

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/oneiriclabs/mnemo/graph"
	"github.com/oneiriclabs/mnemo/judge"
	"github.com/oneiriclabs/mnemo/memory"
	"github.com/oneiriclabs/mnemo/narrative"
	"github.com/oneiriclabs/mnemo/policy"
	"github.com/oneiriclabs/mnemo/vector"
)

// Config holds the dream pass tunables.
type Config struct {
	// Project restricts the pass to one project; empty means all.
	Project string `json:"project" yaml:"project"`

	// Propose configures link proposal generation.
	Propose graph.ProposeOptions `json:"propose" yaml:"propose"`

	// Narrative configures causal chains and story arcs.
	Narrative narrative.Config `json:"narrative" yaml:"narrative"`

	// ConsolidationMinSimilarity is the near-duplicate threshold for
	// the consolidation walker.
	ConsolidationMinSimilarity float64 `json:"consolidation_min_similarity" yaml:"consolidation_min_similarity"`

	// ContradictionMinSimilarity is the topical-overlap threshold for
	// the contradiction walker.
	ContradictionMinSimilarity float64 `json:"contradiction_min_similarity" yaml:"contradiction_min_similarity"`

	// DecayAfter is how long a memory may go untouched before the
	// decay walker proposes lowering its importance.
	DecayAfter time.Duration `json:"decay_after" yaml:"decay_after"`
}

// DefaultConfig returns the dream pass defaults.
func DefaultConfig() Config {
	return Config{
		Propose:                    graph.DefaultProposeOptions(),
		Narrative:                  narrative.DefaultConfig(),
		ConsolidationMinSimilarity: 0.92,
		ContradictionMinSimilarity: 0.75,
		DecayAfter:                 30 * 24 * time.Hour,
	}
}

// Validate rejects bad thresholds before a pass starts.
func (c Config) Validate() error {
	if err := c.Propose.Validate(); err != nil {
		return err
	}
	if err := c.Narrative.Validate(); err != nil {
		return err
	}
	if c.ConsolidationMinSimilarity < 0 || c.ConsolidationMinSimilarity > 1 {
		return fmt.Errorf("consolidation_min_similarity %v outside [0,1]", c.ConsolidationMinSimilarity)
	}
	if c.ContradictionMinSimilarity < 0 || c.ContradictionMinSimilarity > 1 {
		return fmt.Errorf("contradiction_min_similarity %v outside [0,1]", c.ContradictionMinSimilarity)
	}
	if c.DecayAfter <= 0 {
		return fmt.Errorf("decay_after must be positive, got %v", c.DecayAfter)
	}
	return nil
}

// Engine runs dream passes against a store.
type Engine struct {
	store  memory.Store
	config Config
	policy *policy.Engine
	queue  *policy.ProposalQueue
	judge  judge.Judge
	now    func() time.Time
}

// Option configures the engine.
type Option func(*Engine)

// WithJudge sets the contradiction/consolidation judge. The default is
// the heuristic judge.
func WithJudge(j judge.Judge) Option {
	return func(e *Engine) {
		e.judge = j
	}
}

// WithPolicy sets the policy engine gating every action.
func WithPolicy(p *policy.Engine) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// WithQueue sets the proposal queue receiving review-gated actions.
func WithQueue(q *policy.ProposalQueue) Option {
	return func(e *Engine) {
		e.queue = q
	}
}

// WithClock overrides the time source, for staleness checks in tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a dream engine over the given store.
func NewEngine(store memory.Store, config Config, opts ...Option) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("dream config: %w", err)
	}

	e := &Engine{
		store:  store,
		config: config,
		judge:  judge.NewHeuristic(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.policy == nil {
		e.policy = policy.NewEngine(policy.DefaultConfig(), nil)
	}
	if e.queue == nil {
		e.queue = policy.NewProposalQueue(e.policy.Trust())
	}
	return e, nil
}

// Queue returns the engine's proposal queue, for human review flows.
func (e *Engine) Queue() *policy.ProposalQueue {
	return e.queue
}

// Report summarizes one dream pass.
type Report struct {
	MemoriesScanned       int
	LinksCreated          int
	Consolidated          int
	Decayed               int
	ContradictionsFlagged int
	PendingReview         int
	Denied                int

	// Annotations and Arcs are the read-only narrative output; nothing
	// is written back to the store for them.
	Annotations map[string]memory.NarrativeContext
	Arcs        []narrative.StoryArc
}

// Run executes one full dream pass: snapshot, link enrichment,
// consolidation, decay, contradiction detection, narrative annotation.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	memories, err := e.store.List(ctx, e.config.Project)
	if err != nil {
		return nil, fmt.Errorf("snapshot memories: %w", err)
	}

	report := &Report{
		MemoriesScanned: len(memories),
		Annotations:     make(map[string]memory.NarrativeContext, len(memories)),
	}
	log.Printf("[DREAM] Pass started over %d memories", len(memories))

	if err := e.enrichLinks(ctx, memories, report); err != nil {
		return nil, err
	}
	if err := e.consolidate(ctx, memories, report); err != nil {
		return nil, err
	}
	if err := e.decay(ctx, memories, report); err != nil {
		return nil, err
	}
	if err := e.flagContradictions(ctx, memories, report); err != nil {
		return nil, err
	}
	e.annotate(memories, report)

	log.Printf("[DREAM] Pass finished: %d links, %d consolidated, %d decayed, %d contradictions, %d pending, %d denied",
		report.LinksCreated, report.Consolidated, report.Decayed,
		report.ContradictionsFlagged, report.PendingReview, report.Denied)
	return report, nil
}

// gate runs one walker action through capability and policy checks.
// Auto-approved actions are resolved immediately and their outcome
// recorded; review actions stay pending in the queue; denials are
// counted and dropped.
func (e *Engine) gate(walker policy.Walker, action policy.Action, target *memory.Memory, targetIDs []string, reason string, report *Report) (bool, error) {
	if !policy.WalkerCanPerform(walker, action) {
		report.Denied++
		return false, nil
	}

	var pctx *policy.Context
	if target != nil {
		pctx = &policy.Context{
			TargetImportance: target.Importance,
			TargetType:       target.Type,
		}
	}

	switch e.policy.Decide(action, pctx) {
	case policy.DecisionAuto:
		prop, err := policy.NewProposal(walker, action, targetIDs, "", reason)
		if err != nil {
			return false, err
		}
		e.queue.Add(prop)
		if err := e.queue.MarkAuto(prop.ID); err != nil {
			return false, err
		}
		return true, nil

	case policy.DecisionReview:
		prop, err := policy.NewProposal(walker, action, targetIDs, "", reason)
		if err != nil {
			return false, err
		}
		e.queue.Add(prop)
		report.PendingReview++
		return false, nil

	default:
		report.Denied++
		return false, nil
	}
}

// enrichLinks proposes typed links over the snapshot and applies the
// auto-approved ones, mirroring a reverse edge where the type has one.
func (e *Engine) enrichLinks(ctx context.Context, memories []*memory.Memory, report *Report) error {
	byID := make(map[string]*memory.Memory, len(memories))
	for _, m := range memories {
		byID[m.ID] = m
	}

	proposals, err := graph.GenerateProposedLinks(memories, e.config.Propose)
	if err != nil {
		return fmt.Errorf("generate link proposals: %w", err)
	}
	log.Printf("[DREAM] %d link proposals", len(proposals))

	for _, p := range proposals {
		src, tgt := byID[p.SourceID], byID[p.TargetID]
		if src == nil || tgt == nil || hasLink(src, p.TargetID) {
			continue
		}

		ok, err := e.gate(policy.WalkerLinker, policy.ActionLinkMemories, tgt,
			[]string{p.SourceID, p.TargetID}, p.Reason, report)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		link, err := memory.NewLink(p.SourceID, p.TargetID, p.Type, p.Strength, p.Reason, string(policy.WalkerLinker))
		if err != nil {
			return err
		}
		if err := e.store.AddLink(ctx, p.SourceID, link); err != nil {
			return fmt.Errorf("add link: %w", err)
		}
		src.Links = append(src.Links, link)
		report.LinksCreated++

		if revType, hasMirror := memory.ReverseLinkType(p.Type); hasMirror && !hasLink(tgt, p.SourceID) {
			rev, err := memory.NewLink(p.TargetID, p.SourceID, revType, p.Strength, p.Reason, string(policy.WalkerLinker))
			if err != nil {
				return err
			}
			if err := e.store.AddLink(ctx, p.TargetID, rev); err != nil {
				return fmt.Errorf("add reverse link: %w", err)
			}
			tgt.Links = append(tgt.Links, rev)
			report.LinksCreated++
		}
	}
	return nil
}

// consolidate finds near-duplicate groups, asks the judge whether they
// should merge, and replaces approved groups with one merged memory,
// marking the originals superseded.
func (e *Engine) consolidate(ctx context.Context, memories []*memory.Memory, report *Report) error {
	// Foundational memories are never merged away, and superseded ones
	// are already the output of an earlier merge.
	candidates := make([]*memory.Memory, 0, len(memories))
	for _, m := range memories {
		if m.Type == memory.TypeFoundational || m.Type == memory.TypeSuperseded {
			continue
		}
		candidates = append(candidates, m)
	}
	groups := duplicateGroups(candidates, e.config.ConsolidationMinSimilarity)

	for _, group := range groups {
		verdict, err := e.judge.JudgeConsolidation(ctx, group, "")
		if err != nil {
			return fmt.Errorf("judge consolidation: %w", err)
		}
		if !verdict.ShouldMerge {
			continue
		}

		// Gate against the most important member so its protections
		// cover the whole group, not just the oldest memory.
		ids := make([]string, len(group))
		oldest := group[0]
		guarded := group[0]
		for i, m := range group {
			ids[i] = m.ID
			if m.Timestamp.Before(oldest.Timestamp) {
				oldest = m
			}
			if m.Importance > guarded.Importance {
				guarded = m
			}
		}

		ok, err := e.gate(policy.WalkerConsolidator, policy.ActionConsolidate, guarded, ids, verdict.Reasoning, report)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		merged := memory.New(verdict.MergedContent, group[0].Type, verdict.Importance)
		merged.Tags = verdict.MergedTags
		merged.Project = group[0].Project
		merged.Timestamp = oldest.Timestamp
		merged.Embedding = group[0].Embedding
		if err := e.store.Save(ctx, merged); err != nil {
			return fmt.Errorf("save merged memory: %w", err)
		}

		for _, m := range group {
			m.Type = memory.TypeSuperseded
			if err := e.store.Save(ctx, m); err != nil {
				return fmt.Errorf("mark superseded: %w", err)
			}
			link, err := memory.NewLink(merged.ID, m.ID, memory.LinkSupersedes, 1.0,
				"consolidated into one memory", string(policy.WalkerConsolidator))
			if err != nil {
				return err
			}
			if err := e.store.AddLink(ctx, merged.ID, link); err != nil {
				return fmt.Errorf("link merged memory: %w", err)
			}
		}
		report.Consolidated++
	}
	return nil
}

// decay lowers the importance of stale memories by one. Foundational
// memories never decay, and importance never drops below 1.
func (e *Engine) decay(ctx context.Context, memories []*memory.Memory, report *Report) error {
	cutoff := e.now().Add(-e.config.DecayAfter)

	for _, m := range memories {
		if m.Type == memory.TypeFoundational || m.Type == memory.TypeSuperseded {
			continue
		}
		if m.Importance <= 1 || m.Timestamp.After(cutoff) {
			continue
		}

		ok, err := e.gate(policy.WalkerDecayer, policy.ActionDecay, m,
			[]string{m.ID}, fmt.Sprintf("untouched since %s", m.Timestamp.Format("2006-01-02")), report)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		m.Importance--
		if err := e.store.Save(ctx, m); err != nil {
			return fmt.Errorf("save decayed memory: %w", err)
		}
		report.Decayed++
	}
	return nil
}

// flagContradictions asks the judge about topically close pairs and
// links genuine conflicts with a symmetric contradicts edge.
func (e *Engine) flagContradictions(ctx context.Context, memories []*memory.Memory, report *Report) error {
	for i, a := range memories {
		for _, b := range memories[i+1:] {
			if a.Type == memory.TypeSuperseded || b.Type == memory.TypeSuperseded {
				continue
			}
			sim := vector.CosineSimilarity(a.Embedding, b.Embedding)
			if sim < e.config.ContradictionMinSimilarity {
				continue
			}
			if hasLinkOfType(a, b.ID, memory.LinkContradicts) || hasLinkOfType(b, a.ID, memory.LinkContradicts) {
				continue
			}

			verdict, err := e.judge.JudgeContradiction(ctx, a, b)
			if err != nil {
				return fmt.Errorf("judge contradiction: %w", err)
			}
			if !verdict.IsRealConflict {
				continue
			}

			ok, err := e.gate(policy.WalkerContradiction, policy.ActionFlagContradiction, b,
				[]string{a.ID, b.ID}, verdict.Reasoning, report)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}

			strength := graph.LinkStrength(sim, memory.LinkContradicts)
			link, err := memory.NewLink(a.ID, b.ID, memory.LinkContradicts, strength, verdict.Reasoning, string(policy.WalkerContradiction))
			if err != nil {
				return err
			}
			if err := e.store.AddLink(ctx, a.ID, link); err != nil {
				return fmt.Errorf("add contradiction link: %w", err)
			}
			a.Links = append(a.Links, link)

			rev, err := memory.NewLink(b.ID, a.ID, memory.LinkContradicts, strength, verdict.Reasoning, string(policy.WalkerContradiction))
			if err != nil {
				return err
			}
			if err := e.store.AddLink(ctx, b.ID, rev); err != nil {
				return fmt.Errorf("add contradiction link: %w", err)
			}
			b.Links = append(b.Links, rev)
			report.ContradictionsFlagged++
		}
	}
	return nil
}

// annotate computes per-memory narrative roles and story arcs. Purely
// analytical: the results live only in the report.
func (e *Engine) annotate(memories []*memory.Memory, report *Report) {
	arcs, err := narrative.DetectArcs(memories, e.config.Narrative)
	if err != nil {
		// Config was validated at construction; this cannot fire.
		log.Printf("[DREAM] arc detection: %v", err)
	}
	report.Arcs = arcs

	arcByMember := make(map[string]string)
	for _, arc := range arcs {
		for _, id := range arc.MemberIDs() {
			arcByMember[id] = arc.ID
		}
	}

	for _, m := range memories {
		annotation := narrative.InferRole(m, "")
		annotation.StoryArcID = arcByMember[m.ID]
		report.Annotations[m.ID] = annotation
	}
}

func hasLink(m *memory.Memory, targetID string) bool {
	for _, l := range m.Links {
		if l.TargetID == targetID {
			return true
		}
	}
	return false
}

func hasLinkOfType(m *memory.Memory, targetID string, typ memory.LinkType) bool {
	for _, l := range m.Links {
		if l.TargetID == targetID && l.Type == typ {
			return true
		}
	}
	return false
}

// duplicateGroups clusters the snapshot at the near-duplicate threshold
// and returns the multi-member groups.
func duplicateGroups(memories []*memory.Memory, minSimilarity float64) [][]*memory.Memory {
	neighbors := graph.KNearestNeighbors(memories, 10, minSimilarity)
	clusters := graph.Cluster(neighbors, minSimilarity)

	grouped := make(map[int][]*memory.Memory)
	for _, m := range memories {
		if id, ok := clusters[m.ID]; ok {
			grouped[id] = append(grouped[id], m)
		}
	}

	var groups [][]*memory.Memory
	for i := 0; i < len(grouped); i++ {
		if len(grouped[i]) >= 2 {
			groups = append(groups, grouped[i])
		}
	}
	return groups
}
