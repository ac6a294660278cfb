package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StatusError is any non-2xx portal response. The reconciliation layer does
// not care which kind of failure it was (network, validation, authz); it only
// needs "the mutation did not happen".
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("portal: %s", http.StatusText(e.Code))
	}
	return fmt.Sprintf("portal: %s (%s)", e.Message, http.StatusText(e.Code))
}

func newStatusError(resp *http.Response) *StatusError {
	se := &StatusError{Code: resp.StatusCode}

	// The server reports errors as {"error": "..."}; tolerate plain text too.
	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	if err != nil || len(b) == 0 {
		return se
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(b, &payload) == nil {
		if payload.Error != "" {
			se.Message = payload.Error
			return se
		}
		if payload.Message != "" {
			se.Message = payload.Message
			return se
		}
	}
	if s := strings.TrimSpace(string(b)); len(s) <= 200 && !strings.HasPrefix(s, "<") {
		se.Message = s
	}
	return se
}
