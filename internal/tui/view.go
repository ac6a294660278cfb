package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	// Header (tabs + blank) and footer (blank + help/toast).
	chromeLines = 4
	maxContentW = 96
)

var sectionLabels = [...]string{"Tasks", "News", "Events"}

func (m appModel) View() string {
	if !m.seenWindowSize {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderBody())

	footer := m.renderFooter()
	body := b.String()
	pad := m.height - lipgloss.Height(body) - lipgloss.Height(footer)
	if pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return body + footer
}

func (m appModel) renderHeader() string {
	active := lipgloss.NewStyle().
		Foreground(colorAccentFg).
		Background(colorAccent).
		Bold(true).
		Padding(0, 1)
	inactive := styleMuted().Padding(0, 1)

	tabs := make([]string, 0, len(sectionLabels))
	for i, label := range sectionLabels {
		st := inactive
		if section(i) == m.section && m.view == viewList {
			st = active
		}
		tabs = append(tabs, st.Render(label))
	}
	left := strings.Join(tabs, " ")

	right := styleMuted().Render(m.displayName)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m appModel) renderBody() string {
	switch m.view {
	case viewTaskDetail:
		return m.renderTaskDetail()
	case viewArticle:
		return m.renderArticle()
	default:
		if m.loadErr != nil {
			return "  " + styleMuted().Render("Couldn't reach the portal: "+m.loadErr.Error()) +
				"\n  " + styleMuted().Render("Press r to retry.")
		}
		return " " + strings.ReplaceAll(m.activeList().View(), "\n", "\n ")
	}
}

func (m appModel) renderArticle() string {
	if m.article == nil {
		return ""
	}
	title := lipgloss.NewStyle().Bold(true).Render(m.article.Title)
	meta := styleMuted().Render(m.article.AuthorName + " · " + m.article.PublishedAt.Format("Jan 2, 2006"))
	return "  " + title + "\n  " + meta + "\n\n" + m.articleVP.View()
}

func (m appModel) renderFooter() string {
	if nt, ok := m.notices.Active(); ok {
		return "\n " + styleToast().Render(nt.Text)
	}
	return "\n " + styleMuted().Render(m.footerHelp())
}

func (m appModel) footerHelp() string {
	switch {
	case m.composing:
		return "ctrl+d send · esc cancel"
	case m.statusPickerOpen:
		return "j/k move · enter apply · esc cancel"
	case m.view == viewTaskDetail:
		return "j/k move · space toggle · s status · c comment · r refresh · esc back"
	case m.view == viewArticle:
		return "j/k scroll · esc back"
	case m.section == sectionTasks:
		help := "enter open · tab section · m mine · r refresh · q quit"
		if m.mineOnly {
			help = "enter open · tab section · m all · r refresh · q quit"
		}
		return help
	case m.section == sectionNews:
		return "enter read · tab section · r refresh · q quit"
	default:
		return "tab section · r refresh · q quit"
	}
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	return xansi.Cut(s, 0, width-1) + "…"
}
