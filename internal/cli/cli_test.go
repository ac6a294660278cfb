package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTasksList_WritesDataEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "task-1", "title": "Quarterly report", "status": "open"},
			},
		})
	}))
	defer srv.Close()

	t.Setenv("PORTAL_URL", srv.URL)
	t.Setenv("PORTAL_TOKEN", "tok")
	t.Setenv("PORTAL_CONFIG_DIR", t.TempDir())

	out, err := runCmd(t, "tasks", "list")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	var payload struct {
		Data []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(payload.Data) != 1 || payload.Data[0].ID != "task-1" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestTasksToggle_InvertsCurrentValue(t *testing.T) {
	var putBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/tasks/task-1":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": "task-1", "title": "T", "status": "open",
				"checklist": []map[string]any{
					{"id": "c1", "text": "Draft", "isCompleted": true},
				},
			})
		case r.Method == http.MethodPut && r.URL.Path == "/api/tasks/task-1/checklist/c1":
			_ = json.NewDecoder(r.Body).Decode(&putBody)
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	t.Setenv("PORTAL_URL", srv.URL)
	t.Setenv("PORTAL_CONFIG_DIR", t.TempDir())

	if _, err := runCmd(t, "tasks", "toggle", "task-1", "c1"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if putBody["isCompleted"] != false {
		t.Fatalf("toggle should invert true -> false; body = %v", putBody)
	}
}

func TestTasksComments_ListsWithLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks/task-1/comments" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "5" {
			t.Errorf("limit = %q", r.URL.Query().Get("limit"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "cmt-1", "authorName": "An", "text": "first"},
			},
		})
	}))
	defer srv.Close()

	t.Setenv("PORTAL_URL", srv.URL)
	t.Setenv("PORTAL_TOKEN", "tok")
	t.Setenv("PORTAL_CONFIG_DIR", t.TempDir())

	out, err := runCmd(t, "tasks", "comments", "task-1", "--limit", "5")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var payload struct {
		Data []struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(payload.Data) != 1 || payload.Data[0].Text != "first" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestChatHistory_FetchesChannelMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat/general/messages" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "50" {
			t.Errorf("limit = %q", r.URL.Query().Get("limit"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "msg-1", "channelId": "general", "authorName": "An", "body": "standup in 5"},
			},
		})
	}))
	defer srv.Close()

	t.Setenv("PORTAL_URL", srv.URL)
	t.Setenv("PORTAL_TOKEN", "tok")
	t.Setenv("PORTAL_CONFIG_DIR", t.TempDir())

	out, err := runCmd(t, "chat", "history", "--channel", "general")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var payload struct {
		Data []struct {
			ID   string `json:"id"`
			Body string `json:"body"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(payload.Data) != 1 || payload.Data[0].Body != "standup in 5" {
		t.Fatalf("payload = %+v", payload)
	}

	if _, err := runCmd(t, "chat", "history"); err == nil {
		t.Fatalf("expected error when --channel is missing")
	}
}

func TestLogin_SavesProfileAfterVerifying(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/me" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "u1", "username": "an.nguyen", "displayName": "An Nguyen",
		})
	}))
	defer srv.Close()

	t.Setenv("PORTAL_CONFIG_DIR", t.TempDir())
	t.Setenv("PORTAL_URL", "")
	t.Setenv("PORTAL_TOKEN", "")

	out, err := runCmd(t, "login", "--url", srv.URL, "--token", "tok", "--name", "work")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var payload struct {
		Profile string `json:"profile"`
		Data    struct {
			DisplayName string `json:"displayName"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output: %v\n%s", err, out)
	}
	if payload.Profile != "work" || payload.Data.DisplayName != "An Nguyen" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestWhoami_FailsCleanlyWhenUnconfigured(t *testing.T) {
	t.Setenv("PORTAL_CONFIG_DIR", t.TempDir())
	t.Setenv("PORTAL_URL", "")
	t.Setenv("PORTAL_TOKEN", "")

	if _, err := runCmd(t, "whoami"); err == nil {
		t.Fatalf("expected error when no portal is configured")
	}
}
