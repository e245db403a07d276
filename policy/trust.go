package policy

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"time"
)

// trustPrior is the cautious default a score shrinks toward while human
// review signal is scarce.
const trustPrior = 0.3

// reviewConfidenceCeiling is the review count at which the score fully
// reflects the raw approval ratio.
const reviewConfidenceCeiling = 20

// TrustScore is the per-action-kind trust record. Score is a confidence
// weighted blend of the cautious prior and the observed approval ratio.
type TrustScore struct {
	Action         Action    `json:"action"`
	Score          float64   `json:"score"`
	TotalProposals int       `json:"total_proposals"`
	Approved       int       `json:"approved"`
	Rejected       int       `json:"rejected"`
	AutoApproved   int       `json:"auto_approved"`
	LastUpdated    time.Time `json:"last_updated"`
}

// CalculateTrustScore computes the trust score from outcome counters.
// No history at all scores 0. With history, the approval ratio (neutral
// 0.5 when no human review exists yet) is blended with the prior in
// proportion to how many human reviews have accumulated, saturating at
// the confidence ceiling.
func CalculateTrustScore(approved, rejected, autoApproved int) float64 {
	if approved+rejected+autoApproved == 0 {
		return 0
	}

	humanReviewed := approved + rejected
	ratio := 0.5
	if humanReviewed > 0 {
		ratio = float64(approved) / float64(humanReviewed)
	}

	confidence := float64(humanReviewed) / reviewConfidenceCeiling
	if confidence > 1 {
		confidence = 1
	}

	return trustPrior*(1-confidence) + ratio*confidence
}

// TrustStore owns the mutable trust table shared across all decision and
// outcome-recording calls in a process. A single mutex keeps read-modify
// -write of any score atomic; no cross-action ordering is guaranteed.
type TrustStore struct {
	mu     sync.RWMutex
	scores map[Action]*TrustScore
	now    func() time.Time
}

// NewTrustStore creates an empty trust table.
func NewTrustStore() *TrustStore {
	return &TrustStore{
		scores: make(map[Action]*TrustScore),
		now:    time.Now,
	}
}

// Get returns a snapshot of the trust record for an action. An action
// with no record yet reads as zero history, not an error.
func (s *TrustStore) Get(action Action) TrustScore {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec, ok := s.scores[action]; ok {
		return *rec
	}
	return TrustScore{Action: action}
}

// RecordOutcome increments the counter matching the proposal outcome and
// recomputes the action's score. Outcomes other than approved, rejected
// and auto are ignored with a warning; they carry no trust signal.
func (s *TrustStore) RecordOutcome(action Action, outcome Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.scores[action]
	if !ok {
		rec = &TrustScore{Action: action}
		s.scores[action] = rec
	}

	switch outcome {
	case StatusAuto:
		rec.AutoApproved++
	case StatusApproved:
		rec.Approved++
	case StatusRejected:
		rec.Rejected++
	default:
		log.Printf("[TRUST] ignoring outcome %q for action %s", outcome, action)
		return
	}

	rec.TotalProposals++
	rec.Score = CalculateTrustScore(rec.Approved, rec.Rejected, rec.AutoApproved)
	rec.LastUpdated = s.now().UTC()
}

// Export returns all trust records ordered by action name, for
// persistence between runs.
func (s *TrustStore) Export() []TrustScore {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]TrustScore, 0, len(s.scores))
	for _, rec := range s.scores {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Action < out[j].Action })
	return out
}

// Import loads trust records into the table, replacing existing entries
// for the same action. Records with no action name or counters that do
// not add up are filtered, not fatal.
func (s *TrustStore) Import(records []TrustScore) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		if rec.Action == "" || rec.Approved < 0 || rec.Rejected < 0 || rec.AutoApproved < 0 {
			log.Printf("[TRUST] skipping malformed record %+v", rec)
			continue
		}
		r := rec
		r.Score = CalculateTrustScore(r.Approved, r.Rejected, r.AutoApproved)
		s.scores[r.Action] = &r
	}
}

// SaveTrustFile writes the trust table to path as a JSON list.
func SaveTrustFile(store *TrustStore, path string) error {
	data, err := json.MarshalIndent(store.Export(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal trust scores: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write trust file: %w", err)
	}
	return nil
}

// LoadTrustFile reads a trust table from path. A missing or unreadable
// file loads as an empty table; malformed entries are filtered.
func LoadTrustFile(path string) (*TrustStore, error) {
	store := NewTrustStore()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("read trust file: %w", err)
	}

	var records []TrustScore
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("[TRUST] trust file %s malformed, starting empty: %v", path, err)
		return store, nil
	}

	store.Import(records)
	return store, nil
}
