package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"portal-cli/internal/model"
)

// compactRowDelegate renders one item per line, full-width selection bar.
type compactRowDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newCompactRowDelegate() compactRowDelegate {
	return compactRowDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d compactRowDelegate) Height() int                             { return 1 }
func (d compactRowDelegate) Spacing() int                            { return 0 }
func (d compactRowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d compactRowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	txt := ""
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	} else {
		txt = fmt.Sprint(item)
	}

	line := txt
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	fmt.Fprint(w, style.Render(line))
}

type taskRow struct {
	task model.Task
}

func (r taskRow) Title() string {
	return statusGlyph(r.task.Status) + " " + r.task.Title
}
func (r taskRow) FilterValue() string { return r.task.Title }

func statusGlyph(s model.TaskStatus) string {
	switch s {
	case model.StatusDone:
		return "[✓]"
	case model.StatusInProgress:
		return "[~]"
	case model.StatusReview:
		return "[?]"
	default:
		return "[ ]"
	}
}

type newsRow struct {
	post model.NewsPost
}

func (r newsRow) Title() string {
	prefix := "  "
	if r.post.Pinned {
		prefix = lipgloss.NewStyle().Foreground(colorPinned).Render("★ ")
	}
	return prefix + r.post.Title + styleMuted().Render("  "+r.post.PublishedAt.Format("Jan 2"))
}
func (r newsRow) FilterValue() string { return r.post.Title }

type eventRow struct {
	event model.CalendarEvent
}

func (r eventRow) Title() string {
	when := r.event.StartsAt.Format("Mon Jan 2 15:04")
	if r.event.AllDay {
		when = r.event.StartsAt.Format("Mon Jan 2") + " (all day)"
	}
	s := styleMuted().Render(when) + "  " + r.event.Title
	if r.event.Location != "" {
		s += styleMuted().Render("  @ " + r.event.Location)
	}
	return s
}
func (r eventRow) FilterValue() string { return r.event.Title }

func newSectionList(title string) list.Model {
	l := list.New(nil, newCompactRowDelegate(), 0, 0)
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	return l
}
