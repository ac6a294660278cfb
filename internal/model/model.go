package model

import "time"

// Wire types for the portal REST API. Field names follow the server's
// camelCase JSON convention.

type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Department  string `json:"department,omitempty"`
}

// TaskStatus is a free-form workflow label; the server owns the valid set
// per project, so the client treats it as an opaque string.
type TaskStatus = string

const (
	StatusOpen       TaskStatus = "open"
	StatusInProgress TaskStatus = "in_progress"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
)

// DefaultStatuses is the fallback status set offered by the status picker
// when the task's project does not define its own.
var DefaultStatuses = []TaskStatus{StatusOpen, StatusInProgress, StatusReview, StatusDone}

type ChecklistItem struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"isCompleted"`
}

type Comment struct {
	ID           string    `json:"id"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar,omitempty"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Task struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"projectId"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Status      TaskStatus      `json:"status"`
	Statuses    []TaskStatus    `json:"statuses,omitempty"`
	Checklist   []ChecklistItem `json:"checklist,omitempty"`
	Comments    []Comment       `json:"comments,omitempty"`
	AssigneeID  *string         `json:"assigneeId,omitempty"`
	DueAt       *time.Time      `json:"dueAt,omitempty"`
	CreatedBy   string          `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type NewsPost struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Body        string    `json:"body,omitempty"` // markdown
	AuthorName  string    `json:"authorName"`
	Pinned      bool      `json:"pinned"`
	PublishedAt time.Time `json:"publishedAt"`
}

type ForumThread struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Body       string       `json:"body,omitempty"`
	AuthorName string       `json:"authorName"`
	ReplyCount int          `json:"replyCount"`
	Replies    []ForumReply `json:"replies,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	LastPostAt time.Time    `json:"lastPostAt"`
}

type ForumReply struct {
	ID         string    `json:"id"`
	ThreadID   string    `json:"threadId"`
	AuthorName string    `json:"authorName"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CalendarEvent struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Location string    `json:"location,omitempty"`
	AllDay   bool      `json:"allDay"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}

type Room struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type Booking struct {
	ID       string    `json:"id"`
	RoomID   string    `json:"roomId"`
	Title    string    `json:"title"`
	BookedBy string    `json:"bookedBy"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}

// ChatMessage is one entry in a channel's history; the client renders chat
// read-only via the REST API.
type ChatMessage struct {
	ID         string    `json:"id"`
	ChannelID  string    `json:"channelId"`
	AuthorName string    `json:"authorName"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sentAt"`
}
