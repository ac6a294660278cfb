package tasksync

import (
	"time"

	"portal-cli/internal/model"
)

// Engine orchestrates optimistic mutations against the snapshot store.
//
// Every mutation is staged in two halves so the owning event loop keeps
// control of interleaving:
//
//  1. The Toggle/Set/Add entry point applies the change to the store,
//     opens a ledger entry and returns an Op, all synchronously, so the
//     caller observes the new value on the same tick.
//  2. The caller performs the remote call however it likes (a tea.Cmd in
//     the TUI) and feeds the outcome back through Resolve/ResolveComment,
//     which either clears the ledger entry or rolls the store back to the
//     entry's recorded previous value and raises a notice.
//
// Entry points reject (ok=false) when the store is unseeded, the target is
// unknown, or a ledger entry for the same target is already open.
type Engine struct {
	store   *Store
	ledger  *Ledger
	notices *Notices
	now     func() time.Time
}

func NewEngine(store *Store, ledger *Ledger, notices *Notices) *Engine {
	return &Engine{
		store:   store,
		ledger:  ledger,
		notices: notices,
		now:     time.Now,
	}
}

// Op identifies one in-flight mutation between stage and resolve.
type Op struct {
	Kind     OpKind
	TargetID string
	handle   Handle
}

// ToggleChecklist flips an item's isCompleted locally and opens a ledger
// entry recording the pre-toggle value.
func (e *Engine) ToggleChecklist(itemID string) (Op, bool) {
	snap, ok := e.store.Read()
	if !ok {
		return Op{}, false
	}
	item, ok := snap.ChecklistItem(itemID)
	if !ok {
		return Op{}, false
	}
	if e.ledger.IsPending(OpChecklist, itemID) {
		return Op{}, false
	}

	prev := item.IsCompleted
	for i := range snap.Checklist {
		if snap.Checklist[i].ID == itemID {
			snap.Checklist[i].IsCompleted = !prev
		}
	}
	e.store.Write(snap)
	h := e.ledger.Begin(OpChecklist, itemID, prev)
	return Op{Kind: OpChecklist, TargetID: itemID, handle: h}, true
}

// SetStatus replaces the task status locally. The new status is whatever the
// caller's picker supplied; validation is the server's business.
func (e *Engine) SetStatus(status model.TaskStatus) (Op, bool) {
	snap, ok := e.store.Read()
	if !ok {
		return Op{}, false
	}
	if e.ledger.IsPending(OpStatus, snap.ID) {
		return Op{}, false
	}

	prev := snap.Status
	snap.Status = status
	e.store.Write(snap)
	h := e.ledger.Begin(OpStatus, snap.ID, prev)
	return Op{Kind: OpStatus, TargetID: snap.ID, handle: h}, true
}

// AddComment appends a pending comment under a fresh local id. The returned
// CommentID is what the success path swaps for the server id.
func (e *Engine) AddComment(text, authorName, authorAvatar string) (Op, CommentID, bool) {
	snap, ok := e.store.Read()
	if !ok {
		return Op{}, CommentID{}, false
	}

	id := NewLocalCommentID()
	// A fresh uuid cannot collide with an open entry, but keep the guard
	// uniform with the other entry points.
	if e.ledger.IsPending(OpComment, id.String()) {
		return Op{}, CommentID{}, false
	}

	snap.Comments = append(snap.Comments, Comment{
		ID:           id,
		AuthorName:   authorName,
		AuthorAvatar: authorAvatar,
		Text:         text,
		CreatedAt:    e.now(),
		Pending:      true,
	})
	e.store.Write(snap)
	h := e.ledger.Begin(OpComment, id.String(), nil)
	return Op{Kind: OpComment, TargetID: id.String(), handle: h}, id, true
}

// Resolve settles a checklist or status operation. On success the local value
// is already correct, so only the ledger entry is cleared. On failure the
// field is rolled back to the ledger's recorded previous value and a notice
// is raised.
func (e *Engine) Resolve(op Op, err error) {
	switch op.Kind {
	case OpChecklist:
		if err != nil {
			e.rollbackChecklist(op.TargetID)
			e.notices.Push("Couldn't update the checklist item")
		}
	case OpStatus:
		if err != nil {
			e.rollbackStatus(op.TargetID)
			e.notices.Push("Couldn't change the status")
		}
	case OpComment:
		// Comments carry a server-assigned id and must settle through
		// ResolveComment; a plain Resolve can never supply one, so it is
		// forced down the failure path even on a nil error.
		if err == nil {
			err = ErrNoServerCommentID
		}
		e.ResolveComment(op, "", err)
		return
	}
	e.ledger.End(op.handle)
}

// ResolveComment settles a comment create. Success swaps the temporary id
// for the server id and clears the pending flag; failure removes the
// temporary entry entirely.
func (e *Engine) ResolveComment(op Op, serverID string, err error) {
	local := CommentID{value: op.TargetID, local: true}
	snap, ok := e.store.Read()
	if ok {
		if err != nil {
			kept := snap.Comments[:0]
			for _, c := range snap.Comments {
				if c.ID != local {
					kept = append(kept, c)
				}
			}
			snap.Comments = kept
			e.store.Write(snap)
			e.notices.Push("Couldn't post your comment")
		} else if server := ServerCommentID(serverID); snap.HasComment(server) {
			// Our own create already echoed back through the push channel
			// and was inserted under the server id; swapping now would mint
			// a duplicate. Drop the temporary entry instead.
			kept := snap.Comments[:0]
			for _, c := range snap.Comments {
				if c.ID != local {
					kept = append(kept, c)
				}
			}
			snap.Comments = kept
			e.store.Write(snap)
		} else {
			for i := range snap.Comments {
				if snap.Comments[i].ID == local {
					snap.Comments[i].ID = server
					snap.Comments[i].Pending = false
				}
			}
			e.store.Write(snap)
		}
	}
	e.ledger.End(op.handle)
}

func (e *Engine) rollbackChecklist(itemID string) {
	prev, ok := e.ledger.PreviousValueOf(OpChecklist, itemID)
	if !ok {
		return
	}
	was, ok := prev.(bool)
	if !ok {
		return
	}
	snap, ok := e.store.Read()
	if !ok {
		return
	}
	for i := range snap.Checklist {
		if snap.Checklist[i].ID == itemID {
			snap.Checklist[i].IsCompleted = was
		}
	}
	e.store.Write(snap)
}

func (e *Engine) rollbackStatus(taskID string) {
	prev, ok := e.ledger.PreviousValueOf(OpStatus, taskID)
	if !ok {
		return
	}
	was, ok := prev.(model.TaskStatus)
	if !ok {
		return
	}
	snap, ok := e.store.Read()
	if !ok || snap.ID != taskID {
		return
	}
	snap.Status = was
	e.store.Write(snap)
}
