package realtime

import (
	"testing"

	"portal-cli/internal/tasksync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent_Status(t *testing.T) {
	ev, ok := decodeEvent([]byte(`{"kind":"status","taskId":"task-1","newValue":"done","actorName":"Binh"}`))
	require.True(t, ok)

	se, ok := ev.(tasksync.StatusEvent)
	require.True(t, ok)
	assert.Equal(t, "task-1", se.TaskID)
	assert.Equal(t, "done", se.Status)
	assert.Equal(t, "Binh", se.ActorName)
}

func TestDecodeEvent_Checklist(t *testing.T) {
	ev, ok := decodeEvent([]byte(`{"kind":"checklist","taskId":"task-1","targetId":"c1","newValue":true,"actorName":"Binh"}`))
	require.True(t, ok)

	ce, ok := ev.(tasksync.ChecklistEvent)
	require.True(t, ok)
	assert.Equal(t, "c1", ce.ItemID)
	assert.True(t, ce.IsCompleted)
}

func TestDecodeEvent_Comment(t *testing.T) {
	frame := `{"kind":"comment","taskId":"task-1","actorName":"Binh",` +
		`"comment":{"id":"cmt-5","authorName":"Binh","text":"hi","createdAt":"2026-03-01T09:00:00Z"}}`
	ev, ok := decodeEvent([]byte(frame))
	require.True(t, ok)

	ce, ok := ev.(tasksync.CommentEvent)
	require.True(t, ok)
	assert.Equal(t, "cmt-5", ce.Comment.ID)
	assert.Equal(t, "hi", ce.Comment.Text)
}

func TestDecodeEvent_DropsUnknownAndMalformed(t *testing.T) {
	cases := []string{
		`{"kind":"typing","taskId":"task-1"}`,              // unknown kind
		`{"kind":"status","newValue":"done"}`,              // no task id
		`{"kind":"status","taskId":"task-1"}`,              // no value
		`{"kind":"checklist","taskId":"task-1"}`,           // no target
		`{"kind":"comment","taskId":"task-1"}`,             // no comment
		`{"kind":"comment","taskId":"t","comment":{}}`,     // comment without id
		`{"kind":"checklist","taskId":"t","targetId":"c"}`, // no value
		`not json`,
	}
	for _, raw := range cases {
		if _, ok := decodeEvent([]byte(raw)); ok {
			t.Fatalf("expected drop for %s", raw)
		}
	}
}
