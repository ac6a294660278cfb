package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteJSON_Compact(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": []string{"a"}}, "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	if got != `{"data":["a"]}` {
		t.Fatalf("got %q", got)
	}
}

func TestWriteTable_DataEnvelope(t *testing.T) {
	var buf bytes.Buffer
	payload := map[string]any{
		"data": []map[string]any{
			{"id": "n1", "title": "Town hall", "pinned": true},
			{"id": "n2", "title": "Parking", "pinned": false},
		},
	}
	if err := Write(&buf, payload, "table", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "title") {
		t.Fatalf("title should lead the header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Town hall") {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestWriteTable_NonListFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"id": "task-1"}, "table", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), `"id": "task-1"`) {
		t.Fatalf("got %q", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, "yaml", false); err == nil {
		t.Fatalf("expected error")
	}
}
