package narrative

import (
	"fmt"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/oneiriclabs/mnemo/memory"
)

// StoryArc is a causal chain long enough to treat as one narrative unit.
// Arcs are transient analysis output: never mutated, only regenerated.
type StoryArc struct {
	ID        string      `json:"id"`
	Theme     string      `json:"theme"`
	Chain     []ChainLink `json:"chain"`
	StartTime time.Time   `json:"start_time"`
	EndTime   time.Time   `json:"end_time"`
}

// MemberIDs returns the ids of the memories in the arc, in chain order.
func (a *StoryArc) MemberIDs() []string {
	ids := make([]string, len(a.Chain))
	for i, link := range a.Chain {
		ids[i] = link.Memory.ID
	}
	return ids
}

// DetectArcs finds story arcs in a memory snapshot. It sorts the pool by
// time and repeatedly seeds a causal chain from the earliest unassigned
// memory; chains of at least MinArcLength become arcs and claim their
// members. A single greedy pass: once a memory is claimed it is never
// reassigned, even if a later seed would have built a better arc around it.
func DetectArcs(memories []*memory.Memory, cfg Config) ([]StoryArc, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("narrative config: %w", err)
	}

	ordered := make([]*memory.Memory, len(memories))
	copy(ordered, memories)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	var arcs []StoryArc
	assigned := make(map[string]bool, len(ordered))

	for _, seed := range ordered {
		if assigned[seed.ID] {
			continue
		}

		pool := make([]*memory.Memory, 0, len(ordered))
		for _, m := range ordered {
			if !assigned[m.ID] {
				pool = append(pool, m)
			}
		}

		chain := BuildChain(seed, pool, cfg)
		if len(chain) < cfg.MinArcLength {
			continue
		}

		arc := StoryArc{
			ID:        ulid.Make().String(),
			Theme:     chainTheme(chain, cfg.ThemeMinFrequency),
			Chain:     chain,
			StartTime: chain[0].Memory.Timestamp,
			EndTime:   chain[len(chain)-1].Memory.Timestamp,
		}
		arcs = append(arcs, arc)
		for _, link := range chain {
			assigned[link.Memory.ID] = true
		}
	}

	return arcs, nil
}

// chainTheme picks the most frequent tag across the chain, provided it
// recurs at least minFrequency times; otherwise "general".
func chainTheme(chain []ChainLink, minFrequency int) string {
	counts := make(map[string]int)
	for _, link := range chain {
		for _, tag := range link.Memory.Tags {
			counts[tag]++
		}
	}

	theme := "general"
	best := minFrequency - 1
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		if counts[tag] > best {
			best = counts[tag]
			theme = tag
		}
	}
	return theme
}

// Theme is an aggregated tag with its frequency and the memories carrying it.
type Theme struct {
	Theme     string   `json:"theme"`
	Count     int      `json:"count"`
	MemberIDs []string `json:"member_ids"`
}

// ExtractThemes aggregates tag frequency across a memory snapshot and
// returns the tags occurring at least minFrequency times, most frequent
// first. Ties are ordered alphabetically.
func ExtractThemes(memories []*memory.Memory, minFrequency int) []Theme {
	members := make(map[string][]string)
	for _, m := range memories {
		for _, tag := range m.Tags {
			members[tag] = append(members[tag], m.ID)
		}
	}

	var themes []Theme
	for tag, ids := range members {
		if len(ids) >= minFrequency {
			themes = append(themes, Theme{Theme: tag, Count: len(ids), MemberIDs: ids})
		}
	}
	sort.Slice(themes, func(i, j int) bool {
		if themes[i].Count != themes[j].Count {
			return themes[i].Count > themes[j].Count
		}
		return themes[i].Theme < themes[j].Theme
	})
	return themes
}
