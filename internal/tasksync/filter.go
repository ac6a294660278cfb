package tasksync

import (
	"fmt"

	"portal-cli/internal/model"
)

// Event is the tagged union of push-channel payloads for a task. The three
// concrete types below are the only implementations; the Filter switches on
// them exhaustively instead of probing loose fields.
type Event interface {
	Kind() OpKind
	Actor() string
}

// StatusEvent reports another user changing the task's status.
type StatusEvent struct {
	TaskID    string
	Status    model.TaskStatus
	ActorName string
}

func (e StatusEvent) Kind() OpKind  { return OpStatus }
func (e StatusEvent) Actor() string { return e.ActorName }

// ChecklistEvent reports another user toggling a checklist item.
type ChecklistEvent struct {
	TaskID      string
	ItemID      string
	IsCompleted bool
	ActorName   string
}

func (e ChecklistEvent) Kind() OpKind  { return OpChecklist }
func (e ChecklistEvent) Actor() string { return e.ActorName }

// CommentEvent reports a comment added by another user (or an echo of our
// own create, which dedups by server id).
type CommentEvent struct {
	TaskID    string
	Comment   model.Comment
	ActorName string
}

func (e CommentEvent) Kind() OpKind  { return OpComment }
func (e CommentEvent) Actor() string { return e.ActorName }

// Filter applies push-channel events to the snapshot store, consulting the
// ledger first.
//
// The central rule: a pending local operation suppresses a remote event for
// the same single-valued field (status, one checklist item); the local
// write owns the field until its own round trip settles. Comments are
// append-only and keyed by server id, so they are never suppressed, only
// deduplicated.
type Filter struct {
	store   *Store
	ledger  *Ledger
	notices *Notices
}

func NewFilter(store *Store, ledger *Ledger, notices *Notices) *Filter {
	return &Filter{store: store, ledger: ledger, notices: notices}
}

// Apply folds one event into the snapshot. Applied events raise a notice
// naming the remote actor; suppressed or stale events are dropped silently.
func (f *Filter) Apply(ev Event) {
	snap, ok := f.store.Read()
	if !ok {
		return
	}

	switch ev := ev.(type) {
	case StatusEvent:
		if ev.TaskID != snap.ID {
			return
		}
		if f.ledger.IsPending(OpStatus, ev.TaskID) {
			return
		}
		snap.Status = ev.Status
		f.store.Write(snap)
		f.notices.Push(fmt.Sprintf("%s changed the status to %s", actorLabel(ev.ActorName), ev.Status))

	case ChecklistEvent:
		if ev.TaskID != snap.ID {
			return
		}
		if f.ledger.IsPending(OpChecklist, ev.ItemID) {
			return
		}
		applied := false
		for i := range snap.Checklist {
			if snap.Checklist[i].ID == ev.ItemID {
				snap.Checklist[i].IsCompleted = ev.IsCompleted
				applied = true
			}
		}
		if !applied {
			// Item unknown to this snapshot (e.g. added after our fetch);
			// nothing to update until the next reseed.
			return
		}
		f.store.Write(snap)
		f.notices.Push(fmt.Sprintf("%s updated the checklist", actorLabel(ev.ActorName)))

	case CommentEvent:
		if ev.TaskID != snap.ID {
			return
		}
		// Idempotent insert: the channel is not exactly-once, and our own
		// create may echo back. Dedup by server id.
		id := ServerCommentID(ev.Comment.ID)
		if snap.HasComment(id) {
			return
		}
		snap.Comments = append(snap.Comments, Comment{
			ID:           id,
			AuthorName:   ev.Comment.AuthorName,
			AuthorAvatar: ev.Comment.AuthorAvatar,
			Text:         ev.Comment.Text,
			CreatedAt:    ev.Comment.CreatedAt,
		})
		f.store.Write(snap)
		f.notices.Push(fmt.Sprintf("%s commented on this task", actorLabel(ev.ActorName)))
	}
}

func actorLabel(name string) string {
	if name == "" {
		return "Someone"
	}
	return name
}
