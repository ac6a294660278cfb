package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchTask_DecodesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks/task-1" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("missing bearer token; got %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "task-1",
			"title":  "Quarterly report",
			"status": "open",
			"checklist": []map[string]any{
				{"id": "c1", "text": "Draft", "isCompleted": true},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	task, err := c.FetchTask(context.Background(), "task-1")
	if err != nil {
		t.Fatalf("FetchTask: %v", err)
	}
	if task.Title != "Quarterly report" {
		t.Fatalf("title = %q", task.Title)
	}
	if len(task.Checklist) != 1 || !task.Checklist[0].IsCompleted {
		t.Fatalf("checklist = %+v", task.Checklist)
	}
}

func TestSetChecklistItem_PutsTargetValue(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if err := c.SetChecklistItem(context.Background(), "task-1", "c1", true); err != nil {
		t.Fatalf("SetChecklistItem: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/tasks/task-1/checklist/c1" {
		t.Fatalf("got %s %s", gotMethod, gotPath)
	}
	if gotBody["isCompleted"] != true {
		t.Fatalf("body = %v", gotBody)
	}
}

func TestCreateComment_ReturnsServerID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "cmt-42"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	id, err := c.CreateComment(context.Background(), "task-1", "hello")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if id != "cmt-42" {
		t.Fatalf("id = %q", id)
	}
}

func TestStatusError_CarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "not your task"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.SetTaskStatus(context.Background(), "task-1", "done")
	if err == nil {
		t.Fatalf("expected error")
	}
	se, ok := err.(*StatusError)
	if !ok {
		t.Fatalf("expected *StatusError; got %T", err)
	}
	if se.Code != http.StatusForbidden || se.Message != "not your task" {
		t.Fatalf("got %+v", se)
	}
}

func TestWebSocketURL(t *testing.T) {
	cases := []struct{ in, want string }{
		{"http://intranet.local:8080", "ws://intranet.local:8080/api/ws"},
		{"https://portal.example.com/", "wss://portal.example.com/api/ws"},
	}
	for _, tc := range cases {
		c := NewClient(tc.in, "")
		if got := c.WebSocketURL(); got != tc.want {
			t.Fatalf("WebSocketURL(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}
