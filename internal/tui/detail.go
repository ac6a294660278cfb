package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"portal-cli/internal/tasksync"
)

// renderTaskDetail draws the open task from the reconciled snapshot, not from
// the fetched record: the snapshot is where optimistic writes and filtered
// remote events land.
func (m appModel) renderTaskDetail() string {
	snap, seeded := m.store.Read()
	if !seeded || m.openTask == nil {
		return "  " + styleMuted().Render("Loading…")
	}

	contentW := m.width - 4
	if contentW > maxContentW {
		contentW = maxContentW
	}
	if contentW < 20 {
		contentW = 20
	}

	var b strings.Builder

	b.WriteString("  " + lipgloss.NewStyle().Bold(true).Render(truncateLine(m.openTask.Title, contentW)) + "\n")
	b.WriteString("  " + m.renderStatusLine(snap) + "\n")

	if m.openTask.Description != "" {
		b.WriteString("\n" + indent(renderMarkdown(m.openTask.Description, contentW-2), "  ") + "\n")
	}

	if len(snap.Checklist) > 0 {
		b.WriteString("\n  " + styleMuted().Render("Checklist") + "\n")
		for i, item := range snap.Checklist {
			b.WriteString(m.renderChecklistRow(snap, i, item.ID, item.Text, item.IsCompleted, contentW) + "\n")
		}
	}

	b.WriteString("\n  " + styleMuted().Render("Comments") + "\n")
	if len(snap.Comments) == 0 {
		b.WriteString("  " + styleMuted().Render("No comments yet.") + "\n")
	}
	for _, c := range snap.Comments {
		b.WriteString(m.renderComment(c, contentW) + "\n")
	}

	if m.composing {
		b.WriteString("\n" + indent(m.composer.View(), "  ") + "\n")
	}
	if m.statusPickerOpen {
		b.WriteString("\n" + m.renderStatusPicker(snap) + "\n")
	}

	return b.String()
}

func (m appModel) renderStatusLine(snap tasksync.Snapshot) string {
	badge := lipgloss.NewStyle().
		Foreground(colorAccentFg).
		Background(colorAccent).
		Padding(0, 1).
		Render(string(snap.Status))
	if m.ledger.IsPending(tasksync.OpStatus, snap.ID) {
		return badge + " " + styleMuted().Render("(saving…"+m.pendingElapsed(tasksync.OpStatus, snap.ID)+")")
	}
	return badge
}

// pendingElapsed returns a short duration suffix once an in-flight operation
// has been outstanding noticeably long; a stuck entry never times out, so the
// growing counter is the only hint the user gets.
func (m appModel) pendingElapsed(kind tasksync.OpKind, targetID string) string {
	started, ok := m.ledger.StartedAt(kind, targetID)
	if !ok {
		return ""
	}
	if d := time.Since(started); d >= 2*time.Second {
		return fmt.Sprintf(" %ds", int(d.Seconds()))
	}
	return ""
}

func (m appModel) renderChecklistRow(snap tasksync.Snapshot, idx int, itemID, text string, done bool, contentW int) string {
	box := "[ ]"
	if done {
		box = "[x]"
	}
	cursor := "  "
	if idx == m.checklistIdx {
		cursor = "> "
	}
	line := cursor + box + " " + text
	if m.ledger.IsPending(tasksync.OpChecklist, itemID) {
		line += " …" + m.pendingElapsed(tasksync.OpChecklist, itemID)
		return "  " + lipgloss.NewStyle().Foreground(colorPending).Render(truncateLine(line, contentW))
	}
	st := lipgloss.NewStyle()
	if idx == m.checklistIdx {
		st = st.Bold(true)
	}
	return "  " + st.Render(truncateLine(line, contentW))
}

func (m appModel) renderComment(c tasksync.Comment, contentW int) string {
	meta := c.AuthorName
	if !c.CreatedAt.IsZero() {
		meta += " · " + c.CreatedAt.Format("Jan 2 15:04")
	}
	if c.Pending {
		meta += " · sending…"
	}
	body := indent(strings.TrimSpace(c.Text), "    ")
	out := "  " + styleMuted().Render(truncateLine(meta, contentW)) + "\n" + body
	if c.Pending {
		return lipgloss.NewStyle().Foreground(colorPending).Render(out)
	}
	return out
}

func (m appModel) renderStatusPicker(snap tasksync.Snapshot) string {
	var b strings.Builder
	b.WriteString("  " + styleMuted().Render("Set status") + "\n")
	for i, st := range m.statusChoices {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.statusIdx {
			cursor = "> "
			style = style.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
		}
		marker := " "
		if st == snap.Status {
			marker = "•"
		}
		b.WriteString("  " + cursor + style.Render(marker+" "+string(st)) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func indent(s, prefix string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
