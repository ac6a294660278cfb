package tasksync

import "time"

// OpKind identifies which mutable sub-resource an operation touches.
type OpKind string

const (
	OpStatus    OpKind = "status"
	OpChecklist OpKind = "checklist"
	OpComment   OpKind = "comment"
)

type opKey struct {
	kind     OpKind
	targetID string
}

type pendingOp struct {
	prev      any
	startedAt time.Time
}

// Handle refers to an open ledger entry. Ending a handle twice is a no-op.
type Handle struct {
	key opKey
}

// Ledger records in-flight optimistic mutations, keyed by (kind, targetID).
// Map membership doubles as the mutual-exclusion guard: callers check
// IsPending before mutating, so at most one operation per target is ever
// outstanding. This is a cooperative check, not a lock; the whole subsystem
// runs on one event loop.
//
// Entries have no expiry. A remote call that never settles leaves its entry
// (and the UI's pending indicator) stuck; inherited behavior, see DESIGN.md.
type Ledger struct {
	entries map[opKey]pendingOp
	now     func() time.Time
}

func NewLedger() *Ledger {
	return &Ledger{
		entries: map[opKey]pendingOp{},
		now:     time.Now,
	}
}

// Begin opens an entry and returns its handle. If an entry for
// (kind, targetID) is already open, Begin is a no-op and returns the
// existing entry's handle; callers are expected to have checked IsPending.
func (l *Ledger) Begin(kind OpKind, targetID string, prev any) Handle {
	k := opKey{kind: kind, targetID: targetID}
	if _, ok := l.entries[k]; !ok {
		l.entries[k] = pendingOp{prev: prev, startedAt: l.now()}
	}
	return Handle{key: k}
}

func (l *Ledger) IsPending(kind OpKind, targetID string) bool {
	_, ok := l.entries[opKey{kind: kind, targetID: targetID}]
	return ok
}

// End removes the handle's entry. Idempotent.
func (l *Ledger) End(h Handle) {
	delete(l.entries, h.key)
}

// PreviousValueOf returns the recorded pre-mutation value for an open entry.
func (l *Ledger) PreviousValueOf(kind OpKind, targetID string) (any, bool) {
	e, ok := l.entries[opKey{kind: kind, targetID: targetID}]
	if !ok {
		return nil, false
	}
	return e.prev, true
}

// StartedAt returns when the entry was opened (for pending-duration display).
func (l *Ledger) StartedAt(kind OpKind, targetID string) (time.Time, bool) {
	e, ok := l.entries[opKey{kind: kind, targetID: targetID}]
	if !ok {
		return time.Time{}, false
	}
	return e.startedAt, true
}

// Len reports the number of open entries.
func (l *Ledger) Len() int { return len(l.entries) }
