// Package policy gates autonomous maintenance actions. Every mutating
// action a walker proposes passes through a capability check and a trust
// scored decision function that returns auto, review or deny. Trust scores
// accumulate from human review outcomes and shrink toward a cautious prior
// until enough signal exists.
package policy
