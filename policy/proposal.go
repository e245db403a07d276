package policy

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Status is a proposal lifecycle state. Pending is the only non-terminal
// state; expiry is a lazy read-time check, not a background sweep.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusAuto     Status = "auto"
	StatusExpired  Status = "expired"
)

// pendingTTL is how long a proposal may sit unreviewed before it reads
// as expired.
const pendingTTL = 7 * 24 * time.Hour

// Proposal records a walker's intended action against one or more target
// memories, awaiting a policy decision or human review.
type Proposal struct {
	ID        string    `json:"id"`
	Walker    Walker    `json:"walker"`
	Action    Action    `json:"action"`
	TargetIDs []string  `json:"target_ids"`
	Changes   string    `json:"changes,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`

	ReviewedAt time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy string    `json:"reviewed_by,omitempty"`
}

// NewProposal creates a pending proposal after checking the walker is
// allowed to propose the action at all.
func NewProposal(walker Walker, action Action, targetIDs []string, changes, reason string) (*Proposal, error) {
	if !WalkerCanPerform(walker, action) {
		return nil, fmt.Errorf("walker %s cannot perform %s", walker, action)
	}
	return &Proposal{
		ID:        ulid.Make().String(),
		Walker:    walker,
		Action:    action,
		TargetIDs: targetIDs,
		Changes:   changes,
		Reason:    reason,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EffectiveStatus returns the proposal's status as of now, applying the
// lazy expiry rule to stale pending proposals.
func (p *Proposal) EffectiveStatus(now time.Time) Status {
	if p.Status == StatusPending && now.Sub(p.CreatedAt) > pendingTTL {
		return StatusExpired
	}
	return p.Status
}

// resolve transitions a pending proposal into a terminal state.
func (p *Proposal) resolve(status Status, reviewer string, now time.Time) error {
	if got := p.EffectiveStatus(now); got != StatusPending {
		return fmt.Errorf("proposal %s is %s, not pending", p.ID, got)
	}
	p.Status = status
	p.ReviewedAt = now
	p.ReviewedBy = reviewer
	return nil
}

// ProposalQueue holds proposals awaiting review and feeds outcomes back
// into the trust store.
type ProposalQueue struct {
	mu        sync.Mutex
	proposals map[string]*Proposal
	trust     *TrustStore
	now       func() time.Time
}

// NewProposalQueue creates an empty queue recording outcomes to trust.
func NewProposalQueue(trust *TrustStore) *ProposalQueue {
	return &ProposalQueue{
		proposals: make(map[string]*Proposal),
		trust:     trust,
		now:       time.Now,
	}
}

// Add enqueues a proposal.
func (q *ProposalQueue) Add(p *Proposal) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.proposals[p.ID] = p
}

// Get returns the proposal by id, or nil if unknown.
func (q *ProposalQueue) Get(id string) *Proposal {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.proposals[id]
}

// Pending returns all proposals still pending as of now, oldest first.
// Stale proposals are marked expired as a side effect of the read.
func (q *ProposalQueue) Pending() []*Proposal {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	var out []*Proposal
	for _, p := range q.proposals {
		if p.Status == StatusPending && p.EffectiveStatus(now) == StatusExpired {
			p.Status = StatusExpired
			continue
		}
		if p.Status == StatusPending {
			out = append(out, p)
		}
	}
	sortProposals(out)
	return out
}

// Review resolves a pending proposal as approved or rejected and records
// the outcome against the action's trust score.
func (q *ProposalQueue) Review(id string, approve bool, reviewer string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	p, ok := q.proposals[id]
	if !ok {
		return fmt.Errorf("unknown proposal %s", id)
	}

	status := StatusRejected
	if approve {
		status = StatusApproved
	}
	if err := p.resolve(status, reviewer, q.now()); err != nil {
		return err
	}

	q.trust.RecordOutcome(p.Action, status)
	return nil
}

// MarkAuto resolves a pending proposal as auto-approved by policy.
func (q *ProposalQueue) MarkAuto(id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	p, ok := q.proposals[id]
	if !ok {
		return fmt.Errorf("unknown proposal %s", id)
	}
	if err := p.resolve(StatusAuto, "policy", q.now()); err != nil {
		return err
	}

	q.trust.RecordOutcome(p.Action, StatusAuto)
	return nil
}

func sortProposals(ps []*Proposal) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].CreatedAt.Before(ps[j].CreatedAt)
	})
}
