package realtime

import (
	"encoding/json"
	"strings"

	"portal-cli/internal/model"
	"portal-cli/internal/tasksync"
)

// wireEvent is the server's frame shape. kind selects which of the optional
// fields are meaningful; decodeEvent converts it into the typed union so the
// rest of the client never probes loose fields.
type wireEvent struct {
	Kind      string          `json:"kind"`
	TaskID    string          `json:"taskId"`
	TargetID  string          `json:"targetId,omitempty"`
	NewValue  json.RawMessage `json:"newValue,omitempty"`
	Comment   *model.Comment  `json:"comment,omitempty"`
	ActorName string          `json:"actorName,omitempty"`
}

// decodeEvent returns ok=false for frames this client does not understand
// (unknown kind, malformed payload); the protocol is forward-compatible by
// dropping, never by failing.
func decodeEvent(data []byte) (tasksync.Event, bool) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, false
	}
	if strings.TrimSpace(w.TaskID) == "" {
		return nil, false
	}

	switch strings.TrimSpace(w.Kind) {
	case "status":
		var status string
		if err := json.Unmarshal(w.NewValue, &status); err != nil {
			return nil, false
		}
		return tasksync.StatusEvent{
			TaskID:    w.TaskID,
			Status:    status,
			ActorName: w.ActorName,
		}, true

	case "checklist":
		if strings.TrimSpace(w.TargetID) == "" {
			return nil, false
		}
		var done bool
		if err := json.Unmarshal(w.NewValue, &done); err != nil {
			return nil, false
		}
		return tasksync.ChecklistEvent{
			TaskID:      w.TaskID,
			ItemID:      w.TargetID,
			IsCompleted: done,
			ActorName:   w.ActorName,
		}, true

	case "comment":
		if w.Comment == nil || strings.TrimSpace(w.Comment.ID) == "" {
			return nil, false
		}
		return tasksync.CommentEvent{
			TaskID:    w.TaskID,
			Comment:   *w.Comment,
			ActorName: w.ActorName,
		}, true
	}
	return nil, false
}
