package narrative

import "fmt"

// Config holds the tunables for causal-chain and story-arc construction.
type Config struct {
	// TemporalWindowHours bounds how far forward a chain step may reach.
	TemporalWindowHours float64 `json:"temporal_window_hours" yaml:"temporal_window_hours"`

	// CausalConfidenceThreshold is the minimum pairwise causal confidence
	// for a chain to advance.
	CausalConfidenceThreshold float64 `json:"causal_confidence_threshold" yaml:"causal_confidence_threshold"`

	// MinArcLength is the minimum chain length that qualifies as an arc.
	MinArcLength int `json:"min_arc_length" yaml:"min_arc_length"`

	// ThemeMinFrequency is how often a tag must recur across an arc to
	// become its theme.
	ThemeMinFrequency int `json:"theme_min_frequency" yaml:"theme_min_frequency"`
}

// DefaultConfig returns the thresholds used by the dream pass.
func DefaultConfig() Config {
	return Config{
		TemporalWindowHours:       72,
		CausalConfidenceThreshold: 0.4,
		MinArcLength:              3,
		ThemeMinFrequency:         2,
	}
}

// Validate rejects configurations before they reach the pure algorithms.
func (c Config) Validate() error {
	if c.TemporalWindowHours <= 0 {
		return fmt.Errorf("temporal_window_hours must be positive, got %v", c.TemporalWindowHours)
	}
	if c.CausalConfidenceThreshold < 0 || c.CausalConfidenceThreshold > 1 {
		return fmt.Errorf("causal_confidence_threshold %v outside [0,1]", c.CausalConfidenceThreshold)
	}
	if c.MinArcLength < 1 {
		return fmt.Errorf("min_arc_length must be at least 1, got %d", c.MinArcLength)
	}
	if c.ThemeMinFrequency < 1 {
		return fmt.Errorf("theme_min_frequency must be at least 1, got %d", c.ThemeMinFrequency)
	}
	return nil
}
