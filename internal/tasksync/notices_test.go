package tasksync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotices_ExpireAfterTTL(t *testing.T) {
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	n := NewNotices()
	n.now = func() time.Time { return clock }

	nt := n.Push("saved")
	got, ok := n.Active()
	assert.True(t, ok)
	assert.Equal(t, "saved", got.Text)

	clock = clock.Add(NoticeTTL)
	_, ok = n.Active()
	assert.False(t, ok)
	_ = nt
}

func TestNotices_StaleExpireSeqIgnored(t *testing.T) {
	n := NewNotices()

	old := n.Push("first")
	cur := n.Push("second")

	n.Expire(old.Seq) // timer armed for the first toast fires late
	got, ok := n.Active()
	assert.True(t, ok)
	assert.Equal(t, "second", got.Text)

	n.Expire(cur.Seq)
	_, ok = n.Active()
	assert.False(t, ok)
}
