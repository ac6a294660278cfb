// Package tasksync reconciles one task's in-memory view against local
// optimistic mutations and concurrent remote changes pushed by other users.
//
// The package is deliberately lock-free: every component here is owned by a
// single event loop (the TUI's update loop, or a test). "Concurrency" means
// interleaved completions on that loop, never parallel callers.
package tasksync

import (
	"time"

	"portal-cli/internal/model"

	"github.com/google/uuid"
)

// CommentID distinguishes server-assigned comment ids from client-local
// placeholders. Local ids exist only between the optimistic insert and the
// create call settling; they never appear on the wire, so the success-path
// id swap and external-event dedup can never confuse the two namespaces.
type CommentID struct {
	value string
	local bool
}

func NewLocalCommentID() CommentID {
	return CommentID{value: uuid.NewString(), local: true}
}

func ServerCommentID(id string) CommentID {
	return CommentID{value: id}
}

func (id CommentID) IsLocal() bool { return id.local }
func (id CommentID) IsZero() bool  { return id.value == "" }
func (id CommentID) String() string {
	return id.value
}

// Comment is the snapshot-side comment. Pending mirrors the ledger for
// rendering only (dim the entry, disable actions); the ledger remains the
// source of truth for in-flight state.
type Comment struct {
	ID           CommentID
	AuthorName   string
	AuthorAvatar string
	Text         string
	CreatedAt    time.Time
	Pending      bool
}

// Snapshot is the reconciled view of one task.
//
// Invariants: checklist item ids are unique within a snapshot; comments are
// kept in insertion order (oldest first) and never reordered.
type Snapshot struct {
	ID        string
	Status    model.TaskStatus
	Checklist []model.ChecklistItem
	Comments  []Comment
}

// SnapshotFromTask builds the initial snapshot from a fetched task.
func SnapshotFromTask(t model.Task) Snapshot {
	s := Snapshot{
		ID:        t.ID,
		Status:    t.Status,
		Checklist: append([]model.ChecklistItem(nil), t.Checklist...),
	}
	for _, c := range t.Comments {
		s.Comments = append(s.Comments, Comment{
			ID:           ServerCommentID(c.ID),
			AuthorName:   c.AuthorName,
			AuthorAvatar: c.AuthorAvatar,
			Text:         c.Text,
			CreatedAt:    c.CreatedAt,
		})
	}
	return s
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Checklist = append([]model.ChecklistItem(nil), s.Checklist...)
	out.Comments = append([]Comment(nil), s.Comments...)
	return out
}

// ChecklistItem returns the item and its presence.
func (s Snapshot) ChecklistItem(itemID string) (model.ChecklistItem, bool) {
	for _, it := range s.Checklist {
		if it.ID == itemID {
			return it, true
		}
	}
	return model.ChecklistItem{}, false
}

// HasComment reports whether a comment with the given id is present.
func (s Snapshot) HasComment(id CommentID) bool {
	for _, c := range s.Comments {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Store holds the current best-known snapshot. It is a pure value holder:
// no validation, no side effects, deep copies on both sides so callers can
// never alias internal slices.
type Store struct {
	snap   Snapshot
	seeded bool
}

func (st *Store) Seed(s Snapshot) {
	st.snap = s.clone()
	st.seeded = true
}

// Read returns a copy of the snapshot and whether the store has been seeded.
func (st *Store) Read() (Snapshot, bool) {
	if !st.seeded {
		return Snapshot{}, false
	}
	return st.snap.clone(), true
}

func (st *Store) Write(s Snapshot) {
	st.snap = s.clone()
	st.seeded = true
}

// Clear drops the snapshot, e.g. when the owning view unmounts.
func (st *Store) Clear() {
	st.snap = Snapshot{}
	st.seeded = false
}
