package tui

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Opt-in diagnostics. The TUI owns the terminal, so anything worth logging
// goes to a file named by PORTAL_TUI_DEBUG_LOG instead of stderr.

func debugLogPath() string {
	return strings.TrimSpace(os.Getenv("PORTAL_TUI_DEBUG_LOG"))
}

func debugf(format string, args ...any) {
	path := debugLogPath()
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, time.Now().Format("15:04:05.000")+" "+format+"\n", args...)
}
