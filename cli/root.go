// Package cli implements the mnemo CLI commands. Commands operate on a
// JSON memory dump file, so the analysis engines can be run against any
// exported memory set without a live store.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oneiriclabs/mnemo/memory"
	"github.com/oneiriclabs/mnemo/memory/embedder/mock"
)

var (
	memoriesPath string
	trustPath    string
	configPath   string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "mnemo",
	Short: "Graph-enriched personal memory analysis",
	Long:  "mnemo analyzes a personal memory set: link proposals, story arcs, themes, and policy-gated maintenance passes.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&memoriesPath, "memories", "m", "memories.json", "Path to the JSON memory dump")
	RootCmd.PersistentFlags().StringVarP(&trustPath, "trust", "t", "trust.json", "Path to the trust score file")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "mnemo.yaml", "Path to the config file (defaults apply when missing)")
}

// loadMemories reads the dump file and fills in missing embeddings with
// the deterministic mock embedder, so analysis stays runnable on dumps
// exported without vectors.
func loadMemories(cmd *cobra.Command) ([]*memory.Memory, error) {
	data, err := os.ReadFile(memoriesPath)
	if err != nil {
		return nil, fmt.Errorf("read memories: %w", err)
	}

	var memories []*memory.Memory
	if err := json.Unmarshal(data, &memories); err != nil {
		return nil, fmt.Errorf("parse memories: %w", err)
	}

	embedder := mock.New()
	for _, m := range memories {
		if len(m.Embedding) == 0 {
			embedding, err := embedder.Embed(cmd.Context(), m.Content)
			if err != nil {
				return nil, fmt.Errorf("embed %s: %w", m.ID, err)
			}
			m.Embedding = embedding
		}
	}
	return memories, nil
}

func printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
