// Package verdicts implements the trust verdict domain. It owns the
// cache-aside orchestration across the volatile and durable tiers, the
// parsing of raw classifier output into a bounded badge, and the HTTP
// surface for classification and verdict inspection.
package verdicts

import "time"

// Badge is the bounded classification outcome for a hash.
type Badge string

// The three possible verdict badges. BadgeUnknown doubles as the fallback
// when classifier output carries no recognizable badge token.
const (
	BadgeTrusted   Badge = "TRUSTED"
	BadgeUntrusted Badge = "UNTRUSTED"
	BadgeUnknown   Badge = "UNKNOWN"
)

// Valid reports whether b is one of the three defined badges.
func (b Badge) Valid() bool {
	switch b {
	case BadgeTrusted, BadgeUntrusted, BadgeUnknown:
		return true
	}
	return false
}

// Verdict is a stored classification result for a hash. Records are created
// once on first classification and never updated; both cache tiers hold the
// same record for a given hash.
type Verdict struct {
	Hash      string    `json:"hash"`
	Badge     Badge     `json:"badge"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// ClassifyCommand carries the data needed to classify a hash.
// Expected is contextual input to the classifier prompt, not part of the
// cache key; callers must not reuse a hash with differing expectations.
type ClassifyCommand struct {
	Hash     string `json:"hash"`
	Expected string `json:"expected"`
}

// Validate checks the command for required fields.
func (c ClassifyCommand) Validate() error {
	if c.Hash == "" {
		return ErrHashRequired
	}
	return nil
}
