// Package config loads the YAML configuration for the memory service
// and maps it onto the per-engine config structs. Thresholds are
// validated here, before any engine sees them.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oneiriclabs/mnemo/dream"
	"github.com/oneiriclabs/mnemo/graph"
	"github.com/oneiriclabs/mnemo/memory"
	"github.com/oneiriclabs/mnemo/narrative"
	"github.com/oneiriclabs/mnemo/policy"
)

// Config is the full service configuration.
type Config struct {
	Memory    MemoryConfig  `yaml:"memory"`
	Dream     DreamConfig   `yaml:"dream"`
	Policy    policy.Config `yaml:"policy"`
	TrustFile string        `yaml:"trust_file"`
}

// MemoryConfig configures recording and retrieval.
type MemoryConfig struct {
	Enabled       bool    `yaml:"enabled"`
	MinSimilarity float64 `yaml:"min_similarity"`
	MaxResults    int     `yaml:"max_results"`
}

// DreamConfig configures the maintenance pass.
type DreamConfig struct {
	Project                    string  `yaml:"project"`
	MinSimilarity              float64 `yaml:"min_similarity"`
	MaxLinksPerMemory          int     `yaml:"max_links_per_memory"`
	PrioritizeHighways         bool    `yaml:"prioritize_highways"`
	PrioritizeCrossCluster     bool    `yaml:"prioritize_cross_cluster"`
	TemporalWindowHours        float64 `yaml:"temporal_window_hours"`
	CausalConfidenceThreshold  float64 `yaml:"causal_confidence_threshold"`
	MinArcLength               int     `yaml:"min_arc_length"`
	ThemeMinFrequency          int     `yaml:"theme_min_frequency"`
	ConsolidationMinSimilarity float64 `yaml:"consolidation_min_similarity"`
	ContradictionMinSimilarity float64 `yaml:"contradiction_min_similarity"`
	DecayAfterDays             int     `yaml:"decay_after_days"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	d := dream.DefaultConfig()
	return &Config{
		Memory: MemoryConfig{
			Enabled:       memory.DefaultConfig.Enabled,
			MinSimilarity: memory.DefaultConfig.MinSimilarity,
			MaxResults:    memory.DefaultConfig.MaxResults,
		},
		Dream: DreamConfig{
			MinSimilarity:              d.Propose.MinSimilarity,
			MaxLinksPerMemory:          d.Propose.MaxLinksPerMemory,
			PrioritizeHighways:         d.Propose.PrioritizeHighways,
			PrioritizeCrossCluster:     d.Propose.PrioritizeCrossCluster,
			TemporalWindowHours:        d.Narrative.TemporalWindowHours,
			CausalConfidenceThreshold:  d.Narrative.CausalConfidenceThreshold,
			MinArcLength:               d.Narrative.MinArcLength,
			ThemeMinFrequency:          d.Narrative.ThemeMinFrequency,
			ConsolidationMinSimilarity: d.ConsolidationMinSimilarity,
			ContradictionMinSimilarity: d.ContradictionMinSimilarity,
			DecayAfterDays:             int(d.DecayAfter / (24 * time.Hour)),
		},
		Policy:    policy.DefaultConfig(),
		TrustFile: "trust.json",
	}
}

// Load reads a YAML config from path. A missing file returns defaults;
// a malformed file or invalid thresholds fail fast.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate fails fast on out-of-range thresholds and negative limits.
func (c *Config) Validate() error {
	if c.Memory.MinSimilarity < 0 || c.Memory.MinSimilarity > 1 {
		return fmt.Errorf("memory.min_similarity %v outside [0,1]", c.Memory.MinSimilarity)
	}
	if c.Memory.MaxResults <= 0 {
		return fmt.Errorf("memory.max_results must be positive, got %d", c.Memory.MaxResults)
	}
	return c.DreamConfig().Validate()
}

// MemoryManagerConfig maps onto the manager's config struct.
func (c *Config) MemoryManagerConfig() *memory.Config {
	return &memory.Config{
		Enabled:       c.Memory.Enabled,
		MinSimilarity: c.Memory.MinSimilarity,
		MaxResults:    c.Memory.MaxResults,
	}
}

// DreamConfig maps onto the dream engine's config struct.
func (c *Config) DreamConfig() dream.Config {
	return dream.Config{
		Project: c.Dream.Project,
		Propose: graph.ProposeOptions{
			MinSimilarity:          c.Dream.MinSimilarity,
			MaxLinksPerMemory:      c.Dream.MaxLinksPerMemory,
			PrioritizeHighways:     c.Dream.PrioritizeHighways,
			PrioritizeCrossCluster: c.Dream.PrioritizeCrossCluster,
		},
		Narrative: narrative.Config{
			TemporalWindowHours:       c.Dream.TemporalWindowHours,
			CausalConfidenceThreshold: c.Dream.CausalConfidenceThreshold,
			MinArcLength:              c.Dream.MinArcLength,
			ThemeMinFrequency:         c.Dream.ThemeMinFrequency,
		},
		ConsolidationMinSimilarity: c.Dream.ConsolidationMinSimilarity,
		ContradictionMinSimilarity: c.Dream.ContradictionMinSimilarity,
		DecayAfter:                 time.Duration(c.Dream.DecayAfterDays) * 24 * time.Hour,
	}
}
