package tools_test

import (
	"testing"

	"github.com/oneiriclabs/mnemo/tools"
)

func TestMemoryToolDefinitions(t *testing.T) {
	defs := tools.MemoryToolDefinitions()
	if len(defs) != 7 {
		t.Fatalf("expected 7 tool definitions, got %d", len(defs))
	}

	seen := make(map[string]bool)
	for _, def := range defs {
		if def.Name == "" || def.Description == "" {
			t.Errorf("definition %q missing name or description", def.Name)
		}
		if seen[def.Name] {
			t.Errorf("duplicate tool name %q", def.Name)
		}
		seen[def.Name] = true

		if def.InputSchema["type"] != "object" {
			t.Errorf("%s: schema type = %v, want object", def.Name, def.InputSchema["type"])
		}
		props, ok := def.InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Fatalf("%s: schema has no properties map", def.Name)
		}
		required, _ := def.InputSchema["required"].([]string)
		for _, field := range required {
			if _, ok := props[field]; !ok {
				t.Errorf("%s: required field %q not in properties", def.Name, field)
			}
		}
	}

	for _, name := range []string{"save_memory", "search_memory", "link_memories", "dream", "story_arcs", "pending_proposals", "review_proposal"} {
		if !seen[name] {
			t.Errorf("missing tool %q", name)
		}
	}
}

func TestSaveMemoryTypeEnum(t *testing.T) {
	for _, def := range tools.MemoryToolDefinitions() {
		if def.Name != "save_memory" {
			continue
		}
		props := def.InputSchema["properties"].(map[string]interface{})
		typ := props["type"].(map[string]interface{})
		enum, ok := typ["enum"].([]string)
		if !ok {
			t.Fatal("type property has no enum")
		}
		if len(enum) != 12 {
			t.Errorf("type enum has %d values, want 12", len(enum))
		}
		return
	}
	t.Fatal("save_memory definition not found")
}
