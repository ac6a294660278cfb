package tasksync

import (
	"testing"
	"time"

	"portal-cli/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_LocalPendingSuppressesChecklistEcho(t *testing.T) {
	store, ledger, notices, eng := seededCore(t)
	f := NewFilter(store, ledger, notices)

	op, ok := eng.ToggleChecklist("c1")
	require.True(t, ok)

	// Remote event for the same item while our write is in flight: dropped.
	f.Apply(ChecklistEvent{TaskID: "task-1", ItemID: "c1", IsCompleted: false, ActorName: "Binh"})

	snap, _ := store.Read()
	it, _ := snap.ChecklistItem("c1")
	assert.True(t, it.IsCompleted, "local optimistic value owns the field")
	assert.Zero(t, notices.Pushed(), "suppressed events raise no notice")

	// After our own round trip settles, remote events apply again.
	eng.Resolve(op, nil)
	f.Apply(ChecklistEvent{TaskID: "task-1", ItemID: "c1", IsCompleted: false, ActorName: "Binh"})
	snap, _ = store.Read()
	it, _ = snap.ChecklistItem("c1")
	assert.False(t, it.IsCompleted)
	assert.Equal(t, 1, notices.Pushed())
}

func TestFilter_LocalPendingSuppressesStatusEcho(t *testing.T) {
	store, ledger, notices, eng := seededCore(t)
	f := NewFilter(store, ledger, notices)

	_, ok := eng.SetStatus(model.StatusInProgress)
	require.True(t, ok)

	f.Apply(StatusEvent{TaskID: "task-1", Status: model.StatusDone, ActorName: "Binh"})

	snap, _ := store.Read()
	assert.Equal(t, model.StatusInProgress, snap.Status)
	assert.Zero(t, notices.Pushed())
}

func TestFilter_StatusAppliedWhenNotPending(t *testing.T) {
	store, ledger, notices, _ := seededCore(t)
	f := NewFilter(store, ledger, notices)

	f.Apply(StatusEvent{TaskID: "task-1", Status: model.StatusReview, ActorName: "Binh"})

	snap, _ := store.Read()
	assert.Equal(t, model.StatusReview, snap.Status)
	assert.Equal(t, 1, notices.Pushed())
}

func TestFilter_CommentInsertIsIdempotent(t *testing.T) {
	store, ledger, notices, _ := seededCore(t)
	f := NewFilter(store, ledger, notices)

	ev := CommentEvent{
		TaskID:    "task-1",
		Comment:   model.Comment{ID: "cmt-7", AuthorName: "Binh", Text: "hi", CreatedAt: time.Now()},
		ActorName: "Binh",
	}
	f.Apply(ev)
	f.Apply(ev) // duplicate delivery

	snap, _ := store.Read()
	n := 0
	for _, c := range snap.Comments {
		if c.ID == ServerCommentID("cmt-7") {
			n++
		}
	}
	assert.Equal(t, 1, n, "duplicate delivery must not duplicate the comment")
	assert.Equal(t, 1, notices.Pushed())
}

func TestFilter_CommentNeverSuppressedByPendingComment(t *testing.T) {
	store, ledger, notices, eng := seededCore(t)
	f := NewFilter(store, ledger, notices)

	// Our own comment is in flight under a local id...
	_, localID, ok := eng.AddComment("mine", "An", "")
	require.True(t, ok)

	// ...and a different user's comment arrives meanwhile. Append-only
	// collections are never suppressed.
	f.Apply(CommentEvent{
		TaskID:    "task-1",
		Comment:   model.Comment{ID: "cmt-8", AuthorName: "Binh", Text: "theirs", CreatedAt: time.Now()},
		ActorName: "Binh",
	})

	snap, _ := store.Read()
	assert.True(t, snap.HasComment(localID))
	assert.True(t, snap.HasComment(ServerCommentID("cmt-8")))
}

func TestFilter_IgnoresOtherTasks(t *testing.T) {
	store, ledger, notices, _ := seededCore(t)
	f := NewFilter(store, ledger, notices)

	f.Apply(StatusEvent{TaskID: "task-2", Status: model.StatusDone, ActorName: "Binh"})
	f.Apply(ChecklistEvent{TaskID: "task-2", ItemID: "c1", IsCompleted: true, ActorName: "Binh"})
	f.Apply(CommentEvent{TaskID: "task-2", Comment: model.Comment{ID: "cmt-9"}, ActorName: "Binh"})

	snap, _ := store.Read()
	assert.Equal(t, model.StatusOpen, snap.Status)
	assert.Len(t, snap.Comments, 1)
	assert.Zero(t, notices.Pushed())
}

func TestFilter_ChecklistEventForUnknownItemDropped(t *testing.T) {
	store, ledger, notices, _ := seededCore(t)
	f := NewFilter(store, ledger, notices)

	f.Apply(ChecklistEvent{TaskID: "task-1", ItemID: "c99", IsCompleted: true, ActorName: "Binh"})

	snap, _ := store.Read()
	assert.Len(t, snap.Checklist, 2)
	assert.Zero(t, notices.Pushed())
}
