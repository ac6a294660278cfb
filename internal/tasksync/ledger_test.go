package tasksync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLedger_BeginReturnsExistingHandle(t *testing.T) {
	l := NewLedger()

	h1 := l.Begin(OpChecklist, "c1", false)
	h2 := l.Begin(OpChecklist, "c1", true) // second begin: no-op

	assert.Equal(t, h1, h2)
	prev, ok := l.PreviousValueOf(OpChecklist, "c1")
	assert.True(t, ok)
	assert.Equal(t, false, prev, "first begin's previous value wins")
}

func TestLedger_EndIsIdempotent(t *testing.T) {
	l := NewLedger()

	h := l.Begin(OpStatus, "task-1", "open")
	l.End(h)
	l.End(h)

	assert.False(t, l.IsPending(OpStatus, "task-1"))
	assert.Zero(t, l.Len())
}

func TestLedger_StartedAtTracksBeginTime(t *testing.T) {
	l := NewLedger()
	opened := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return opened }

	h := l.Begin(OpChecklist, "c1", false)

	got, ok := l.StartedAt(OpChecklist, "c1")
	assert.True(t, ok)
	assert.Equal(t, opened, got)

	l.End(h)
	_, ok = l.StartedAt(OpChecklist, "c1")
	assert.False(t, ok)
}

func TestLedger_KeysAreKindScoped(t *testing.T) {
	l := NewLedger()

	l.Begin(OpChecklist, "x", false)

	assert.True(t, l.IsPending(OpChecklist, "x"))
	assert.False(t, l.IsPending(OpStatus, "x"))
	assert.False(t, l.IsPending(OpComment, "x"))

	_, ok := l.PreviousValueOf(OpStatus, "x")
	assert.False(t, ok)
}
