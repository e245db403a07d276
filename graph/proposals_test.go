package graph

import (
	"strings"
	"testing"

	"github.com/oneiriclabs/mnemo/memory"
)

func proposalCorpus() []*memory.Memory {
	// Two groups of near-identical vectors plus a bridge between them.
	return []*memory.Memory{
		mem("a1", memory.TypeContext, unit(0)),
		mem("a2", memory.TypeContext, unit(4)),
		mem("a3", memory.TypeLearning, unit(8)),
		mem("b1", memory.TypeContext, unit(60)),
		mem("b2", memory.TypeDecision, unit(64)),
		mem("bridge", memory.TypeContext, unit(32)),
	}
}

func TestGenerateProposedLinksNoSelfLinks(t *testing.T) {
	proposals, err := GenerateProposedLinks(proposalCorpus(), DefaultProposeOptions())
	if err != nil {
		t.Fatalf("GenerateProposedLinks: %v", err)
	}
	if len(proposals) == 0 {
		t.Fatal("expected proposals for a clustered corpus")
	}

	for _, p := range proposals {
		if p.SourceID == p.TargetID {
			t.Errorf("self-link proposed for %s", p.SourceID)
		}
	}
}

func TestGenerateProposedLinksDeduplicatesPairs(t *testing.T) {
	proposals, err := GenerateProposedLinks(proposalCorpus(), DefaultProposeOptions())
	if err != nil {
		t.Fatalf("GenerateProposedLinks: %v", err)
	}

	seen := make(map[[2]string]bool)
	for _, p := range proposals {
		pair := orderedPair(p.SourceID, p.TargetID)
		if seen[pair] {
			t.Errorf("duplicate proposal for pair %v", pair)
		}
		seen[pair] = true
	}
}

func TestGenerateProposedLinksPerSourceBudget(t *testing.T) {
	opts := DefaultProposeOptions()
	opts.MaxLinksPerMemory = 1

	proposals, err := GenerateProposedLinks(proposalCorpus(), opts)
	if err != nil {
		t.Fatalf("GenerateProposedLinks: %v", err)
	}

	perSource := make(map[string]int)
	for _, p := range proposals {
		perSource[p.SourceID]++
	}
	for id, n := range perSource {
		if n > 1 {
			t.Errorf("source %s has %d proposals, budget is 1", id, n)
		}
	}
}

func TestGenerateProposedLinksRanking(t *testing.T) {
	opts := DefaultProposeOptions()
	proposals, err := GenerateProposedLinks(proposalCorpus(), opts)
	if err != nil {
		t.Fatalf("GenerateProposedLinks: %v", err)
	}

	for i := 1; i < len(proposals); i++ {
		if rankScore(proposals[i-1], opts) < rankScore(proposals[i], opts) {
			t.Errorf("proposals not in descending rank order at %d", i)
		}
	}
}

func TestGenerateProposedLinksJustification(t *testing.T) {
	proposals, err := GenerateProposedLinks(proposalCorpus(), DefaultProposeOptions())
	if err != nil {
		t.Fatalf("GenerateProposedLinks: %v", err)
	}

	for _, p := range proposals {
		if p.Reason == "" {
			t.Errorf("proposal %s->%s has no justification", p.SourceID, p.TargetID)
		}
		if !strings.Contains(p.Reason, string(p.Type)) {
			t.Errorf("justification should name the link type: %q", p.Reason)
		}
	}
}

func TestGenerateProposedLinksValidation(t *testing.T) {
	if _, err := GenerateProposedLinks(proposalCorpus(), ProposeOptions{MinSimilarity: 1.5, MaxLinksPerMemory: 3}); err == nil {
		t.Error("expected error for MinSimilarity > 1")
	}
	if _, err := GenerateProposedLinks(proposalCorpus(), ProposeOptions{MinSimilarity: 0.5, MaxLinksPerMemory: 0}); err == nil {
		t.Error("expected error for non-positive MaxLinksPerMemory")
	}
}

func TestGenerateProposedLinksTinyCorpus(t *testing.T) {
	single := []*memory.Memory{mem("only", memory.TypeContext, unit(0))}
	proposals, err := GenerateProposedLinks(single, DefaultProposeOptions())
	if err != nil {
		t.Fatalf("GenerateProposedLinks: %v", err)
	}
	if proposals != nil {
		t.Errorf("single memory should yield no proposals, got %v", proposals)
	}
}
