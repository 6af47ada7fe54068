package mistakes

import (
	"time"
)

// DefaultLookbackDays is the review window: unresolved records last missed
// more than this many days ago drop out of pending selection.
const DefaultLookbackDays = 30

// Record is one wrongly-answered question in the ledger.
//
// Timestamps are stored as RFC 3339 strings so that a record with a
// damaged timestamp can still be handled (it counts as pending rather
// than silently disappearing from review).
type Record struct {
	ID         string  `json:"id"`
	Block      int     `json:"block"`
	Topic      string  `json:"topic"`
	WrongCount int     `json:"wrong_count"`
	FirstSeen  string  `json:"first_seen"`
	LastSeen   string  `json:"last_seen"`
	ResolvedAt *string `json:"resolved_at"`
}

// Resolved reports whether the record has been cleared by a correct
// answer during mistakes review.
func (r Record) Resolved() bool {
	return r.ResolvedAt != nil
}

// Repo persists the full ledger as one document.
type Repo interface {
	Load() []Record
	Save([]Record) error
}

// Ledger is the append/update log of wrongly-answered questions.
//
// Invariant: at most one unresolved record exists per question id.
// Resolved records are kept forever and excluded from every pending
// query.
type Ledger struct {
	repo         Repo
	lookbackDays int
}

// NewLedger creates a Ledger. A non-positive lookbackDays selects the
// default window.
func NewLedger(repo Repo, lookbackDays int) *Ledger {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	return &Ledger{repo: repo, lookbackDays: lookbackDays}
}

// RecordWrong registers a wrong answer. An existing unresolved record for
// the question is touched in place (wrong count + last seen); otherwise a
// fresh record is appended.
func (l *Ledger) RecordWrong(id string, block int, topic string, now time.Time) error {
	list := l.repo.Load()
	stamp := now.UTC().Format(time.RFC3339)

	if i := openIndex(list, id); i >= 0 {
		list[i].WrongCount++
		list[i].LastSeen = stamp
		return l.repo.Save(list)
	}

	list = append(list, Record{
		ID:         id,
		Block:      block,
		Topic:      topic,
		WrongCount: 1,
		FirstSeen:  stamp,
		LastSeen:   stamp,
	})
	return l.repo.Save(list)
}

// Resolve closes the open record for the question, if any. Resolving a
// question with no open record is a no-op, not an error.
func (l *Ledger) Resolve(id string, now time.Time) error {
	list := l.repo.Load()
	i := openIndex(list, id)
	if i < 0 {
		return nil
	}
	stamp := now.UTC().Format(time.RFC3339)
	list[i].ResolvedAt = &stamp
	return l.repo.Save(list)
}

// Pending returns the unresolved, non-expired records, optionally
// filtered by block. Records whose timestamps cannot be parsed count as
// pending.
func (l *Ledger) Pending(block *int, now time.Time) []Record {
	maxAge := time.Duration(l.lookbackDays) * 24 * time.Hour

	var out []Record
	for _, r := range l.repo.Load() {
		if r.Resolved() {
			continue
		}
		if block != nil && r.Block != *block {
			continue
		}
		if age, ok := recordAge(r, now); ok && age > maxAge {
			continue
		}
		out = append(out, r)
	}
	return out
}

// PendingIDs returns the question ids of Pending(block, now).
func (l *Ledger) PendingIDs(block *int, now time.Time) []string {
	pending := l.Pending(block, now)
	ids := make([]string, 0, len(pending))
	for _, r := range pending {
		ids = append(ids, r.ID)
	}
	return ids
}

// PendingCount returns the number of pending records for the block.
func (l *Ledger) PendingCount(block *int, now time.Time) int {
	return len(l.Pending(block, now))
}

// All returns every record in the ledger, resolved history included.
func (l *Ledger) All() []Record {
	return l.repo.Load()
}

// openIndex finds the unresolved record for a question id, or -1.
func openIndex(list []Record, id string) int {
	for i, r := range list {
		if r.ID == id && !r.Resolved() {
			return i
		}
	}
	return -1
}

// recordAge returns how long ago the record was last seen. ok is false
// when neither timestamp parses, which callers treat as "still pending".
func recordAge(r Record, now time.Time) (time.Duration, bool) {
	stamp := r.LastSeen
	if stamp == "" {
		stamp = r.FirstSeen
	}
	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return 0, false
	}
	return now.Sub(t), true
}
