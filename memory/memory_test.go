package memory_test

import (
	"testing"
	"time"

	"github.com/oneiriclabs/mnemo/memory"
)

func TestTypeLevels(t *testing.T) {
	cases := []struct {
		typ   memory.Type
		level int
	}{
		{memory.TypeFoundational, 0},
		{memory.TypeContext, 1},
		{memory.TypeReference, 1},
		{memory.TypePreference, 2},
		{memory.TypeDecision, 3},
		{memory.TypePattern, 3},
		{memory.TypeLearning, 4},
		{memory.TypeTodo, 4},
		{memory.TypeSummary, 5},
		{memory.TypeContradiction, 5},
		{memory.TypeSuperseded, 6},
	}
	for _, tc := range cases {
		if got := tc.typ.Level(); got != tc.level {
			t.Errorf("%s.Level() = %d, want %d", tc.typ, got, tc.level)
		}
	}
}

func TestTypeValid(t *testing.T) {
	if !memory.TypeDecision.Valid() {
		t.Error("decision should be valid")
	}
	if memory.Type("daydream").Valid() {
		t.Error("unknown type should be invalid")
	}
}

func TestNewClampsImportance(t *testing.T) {
	low := memory.New("x", memory.TypeContext, -3)
	if low.Importance != 1 {
		t.Errorf("importance = %d, want 1", low.Importance)
	}

	high := memory.New("x", memory.TypeContext, 9)
	if high.Importance != 5 {
		t.Errorf("importance = %d, want 5", high.Importance)
	}

	foundational := memory.New("x", memory.TypeFoundational, 2)
	if foundational.Importance != 5 {
		t.Errorf("foundational importance = %d, want 5", foundational.Importance)
	}

	if low.ID == "" || low.ID == high.ID {
		t.Error("expected unique non-empty ids")
	}
}

func TestValidate(t *testing.T) {
	m := memory.New("remember this", memory.TypeLearning, 3)
	if err := m.Validate(); err != nil {
		t.Fatalf("valid memory rejected: %v", err)
	}

	m.Importance = 7
	if err := m.Validate(); err == nil {
		t.Error("importance out of range should fail")
	}

	f := memory.New("core value", memory.TypeFoundational, 5)
	f.Importance = 3
	if err := f.Validate(); err == nil {
		t.Error("foundational with importance below 5 should fail")
	}
}

func TestSharedTags(t *testing.T) {
	a := memory.New("a", memory.TypeContext, 2)
	a.Tags = []string{"redis", "sessions", "infra"}
	b := memory.New("b", memory.TypeContext, 2)
	b.Tags = []string{"sessions", "infra", "oncall"}

	shared := a.SharedTags(b)
	if len(shared) != 2 {
		t.Fatalf("shared = %v, want 2 tags", shared)
	}
	if !a.HasTag("redis") || a.HasTag("oncall") {
		t.Error("HasTag mismatch")
	}
}

func TestNewLink(t *testing.T) {
	link, err := memory.NewLink("src", "dst", memory.LinkSupports, 0.8, "grounding", "linker")
	if err != nil {
		t.Fatalf("NewLink: %v", err)
	}
	if link.TargetID != "dst" || link.Type != memory.LinkSupports {
		t.Errorf("unexpected link %+v", link)
	}

	if _, err := memory.NewLink("src", "src", memory.LinkRelated, 0.5, "", ""); err == nil {
		t.Error("self-link should fail")
	}
	if _, err := memory.NewLink("src", "dst", memory.LinkType("tangential"), 0.5, "", ""); err == nil {
		t.Error("unknown link type should fail")
	}
	if _, err := memory.NewLink("src", "dst", memory.LinkRelated, 1.5, "", ""); err == nil {
		t.Error("strength above 1 should fail")
	}
}

func TestReverseLinkType(t *testing.T) {
	cases := []struct {
		typ     memory.LinkType
		reverse memory.LinkType
		ok      bool
	}{
		{memory.LinkRelated, memory.LinkRelated, true},
		{memory.LinkContradicts, memory.LinkContradicts, true},
		{memory.LinkSupports, memory.LinkDependsOn, true},
		{memory.LinkDependsOn, memory.LinkSupports, true},
		{memory.LinkSupersedes, "", false},
		{memory.LinkExampleOf, "", false},
	}
	for _, tc := range cases {
		got, ok := memory.ReverseLinkType(tc.typ)
		if ok != tc.ok || (ok && got != tc.reverse) {
			t.Errorf("ReverseLinkType(%s) = %s, %v; want %s, %v", tc.typ, got, ok, tc.reverse, tc.ok)
		}
	}
}

func TestMemoryTimestamps(t *testing.T) {
	m := memory.New("now", memory.TypeContext, 2)
	if time.Since(m.Timestamp) > time.Minute {
		t.Error("new memory should be timestamped now")
	}
}
