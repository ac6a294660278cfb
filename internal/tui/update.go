package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"portal-cli/internal/model"
	"portal-cli/internal/tasksync"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.seenWindowSize = true
		m.resizeChrome()
		return m, nil

	case tasksLoadedMsg:
		if msg.err != nil {
			debugf("tasks load failed: %v", msg.err)
			m.loadErr = msg.err
			return m, nil
		}
		rows := make([]list.Item, 0, len(msg.tasks))
		for _, t := range msg.tasks {
			rows = append(rows, taskRow{task: t})
		}
		m.loadErr = nil
		m.tasksList.SetItems(rows)
		if msg.fromCache {
			m.notices.Push("Portal unreachable; showing cached tasks")
			return m, m.armNoticeCmd()
		}
		return m, nil

	case newsLoadedMsg:
		if msg.err != nil {
			debugf("news load failed: %v", msg.err)
			m.loadErr = msg.err
			return m, nil
		}
		rows := make([]list.Item, 0, len(msg.posts))
		for _, p := range msg.posts {
			rows = append(rows, newsRow{post: p})
		}
		m.loadErr = nil
		m.newsList.SetItems(rows)
		if msg.fromCache {
			m.notices.Push("Portal unreachable; showing cached news")
			return m, m.armNoticeCmd()
		}
		return m, nil

	case eventsLoadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			return m, nil
		}
		rows := make([]list.Item, 0, len(msg.events))
		for _, e := range msg.events {
			rows = append(rows, eventRow{event: e})
		}
		m.loadErr = nil
		m.eventsList.SetItems(rows)
		return m, nil

	case taskOpenedMsg:
		if msg.err != nil {
			m.notices.Push("Couldn't load the task")
			return m, m.armNoticeCmd()
		}
		task := msg.task
		m.openTask = &task
		m.store.Seed(tasksync.SnapshotFromTask(task))
		m.checklistIdx = 0
		m.view = viewTaskDetail
		m.resizeChrome()
		if m.conn != nil {
			// Best effort; a failed subscribe just means no live updates
			// until the connection recovers.
			_ = m.conn.Subscribe(task.ID)
		}
		return m, nil

	case articleLoadedMsg:
		if msg.err != nil {
			m.notices.Push("Couldn't load the article")
			return m, m.armNoticeCmd()
		}
		post := msg.post
		m.article = &post
		m.view = viewArticle
		m.resizeChrome()
		m.articleVP.SetContent(renderMarkdown(post.Body, m.articleVP.Width))
		m.articleVP.GotoTop()
		return m, nil

	case opResolvedMsg:
		m.engine.Resolve(msg.op, msg.err)
		return m, m.armNoticeCmd()

	case commentResolvedMsg:
		m.engine.ResolveComment(msg.op, msg.serverID, msg.err)
		return m, m.armNoticeCmd()

	case realtimeConnectedMsg:
		if msg.err != nil {
			// The portal works fine without the push channel; reads and
			// writes still go through REST.
			debugf("realtime dial failed: %v", msg.err)
			return m, nil
		}
		m.conn = msg.conn
		if m.openTask != nil {
			_ = m.conn.Subscribe(m.openTask.ID)
		}
		return m, waitForEventCmd(m.conn)

	case realtimeEventMsg:
		m.filter.Apply(msg.ev)
		m.clampChecklistIdx()
		var cmds []tea.Cmd
		if c := m.armNoticeCmd(); c != nil {
			cmds = append(cmds, c)
		}
		if m.conn != nil {
			cmds = append(cmds, waitForEventCmd(m.conn))
		}
		return m, tea.Batch(cmds...)

	case realtimeClosedMsg:
		debugf("realtime closed: %v", msg.err)
		m.conn = nil
		m.notices.Push("Live updates disconnected")
		return m, m.armNoticeCmd()

	case noticeExpiredMsg:
		m.notices.Expire(msg.seq)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateChrome(msg)
}

// updateChrome forwards non-key messages to whichever bubble is on screen.
func (m appModel) updateChrome(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case viewArticle:
		m.articleVP, cmd = m.articleVP.Update(msg)
	case viewTaskDetail:
		if m.composing {
			m.composer, cmd = m.composer.Update(msg)
		}
	default:
		switch m.section {
		case sectionTasks:
			m.tasksList, cmd = m.tasksList.Update(msg)
		case sectionNews:
			m.newsList, cmd = m.newsList.Update(msg)
		case sectionEvents:
			m.eventsList, cmd = m.eventsList.Update(msg)
		}
	}
	return m, cmd
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.teardown()
		return m, tea.Quit
	}

	if m.composing {
		return m.handleComposerKey(msg)
	}
	if m.statusPickerOpen {
		return m.handleStatusPickerKey(msg)
	}

	switch m.view {
	case viewTaskDetail:
		return m.handleDetailKey(msg)
	case viewArticle:
		return m.handleArticleKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m appModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active := m.activeList()
	if active.FilterState() == list.Filtering {
		return m.updateChrome(msg)
	}

	switch msg.String() {
	case "q":
		m.teardown()
		return m, tea.Quit
	case "tab":
		m.section = (m.section + 1) % 3
		return m, nil
	case "shift+tab":
		m.section = (m.section + 2) % 3
		return m, nil
	case "1":
		m.section = sectionTasks
		return m, nil
	case "2":
		m.section = sectionNews
		return m, nil
	case "3":
		m.section = sectionEvents
		return m, nil
	case "r":
		m.loadErr = nil
		switch m.section {
		case sectionTasks:
			return m, m.loadTasksCmd()
		case sectionNews:
			return m, m.loadNewsCmd()
		default:
			return m, m.loadEventsCmd()
		}
	case "m":
		if m.section == sectionTasks {
			m.mineOnly = !m.mineOnly
			return m, m.loadTasksCmd()
		}
	case "enter":
		switch m.section {
		case sectionTasks:
			if row, ok := m.tasksList.SelectedItem().(taskRow); ok {
				return m, m.openTaskCmd(row.task.ID)
			}
		case sectionNews:
			if row, ok := m.newsList.SelectedItem().(newsRow); ok {
				return m, m.openArticleCmd(row.post.ID)
			}
		}
		return m, nil
	}

	return m.updateChrome(msg)
}

func (m appModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap, seeded := m.store.Read()
	if !seeded {
		if s := msg.String(); s == "esc" || s == "q" {
			m.leaveDetail()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc", "q":
		m.leaveDetail()
		return m, nil
	case "j", "down":
		if m.checklistIdx < len(snap.Checklist)-1 {
			m.checklistIdx++
		}
		return m, nil
	case "k", "up":
		if m.checklistIdx > 0 {
			m.checklistIdx--
		}
		return m, nil
	case " ", "x":
		if m.checklistIdx >= len(snap.Checklist) {
			return m, nil
		}
		item := snap.Checklist[m.checklistIdx]
		op, ok := m.engine.ToggleChecklist(item.ID)
		if !ok {
			// Already in flight for this item; the first toggle owns it
			// until the round trip settles.
			return m, nil
		}
		return m, m.setChecklistCmd(op, snap.ID, item.ID, !item.IsCompleted)
	case "s":
		m.statusPickerOpen = true
		m.statusChoices = m.statusOptions()
		m.statusIdx = 0
		for i, st := range m.statusChoices {
			if st == snap.Status {
				m.statusIdx = i
			}
		}
		return m, nil
	case "c":
		m.composing = true
		m.composer.Reset()
		return m, m.composer.Focus()
	case "r":
		return m, m.openTaskCmd(snap.ID)
	}
	return m, nil
}

func (m appModel) handleStatusPickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.statusPickerOpen = false
		return m, nil
	case "j", "down":
		if m.statusIdx < len(m.statusChoices)-1 {
			m.statusIdx++
		}
		return m, nil
	case "k", "up":
		if m.statusIdx > 0 {
			m.statusIdx--
		}
		return m, nil
	case "enter":
		m.statusPickerOpen = false
		if m.statusIdx >= len(m.statusChoices) {
			return m, nil
		}
		choice := m.statusChoices[m.statusIdx]
		snap, seeded := m.store.Read()
		if !seeded || choice == snap.Status {
			return m, nil
		}
		op, ok := m.engine.SetStatus(choice)
		if !ok {
			return m, nil
		}
		return m, m.setStatusCmd(op, snap.ID, choice)
	}
	return m, nil
}

func (m appModel) handleComposerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.composing = false
		m.composer.Blur()
		return m, nil
	case tea.KeyCtrlD:
		text := strings.TrimSpace(m.composer.Value())
		m.composing = false
		m.composer.Blur()
		if text == "" {
			return m, nil
		}
		snap, seeded := m.store.Read()
		if !seeded {
			return m, nil
		}
		op, _, ok := m.engine.AddComment(text, m.displayName, "")
		if !ok {
			return m, nil
		}
		return m, m.createCommentCmd(op, snap.ID, text)
	}
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m appModel) handleArticleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.article = nil
		m.view = viewList
		return m, nil
	}
	var cmd tea.Cmd
	m.articleVP, cmd = m.articleVP.Update(msg)
	return m, cmd
}

func (m *appModel) leaveDetail() {
	if m.conn != nil && m.openTask != nil {
		_ = m.conn.Unsubscribe(m.openTask.ID)
	}
	m.store.Clear()
	m.openTask = nil
	m.statusPickerOpen = false
	m.composing = false
	m.composer.Blur()
	m.view = viewList
}

func (m *appModel) teardown() {
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
}

func (m appModel) activeList() *list.Model {
	switch m.section {
	case sectionNews:
		return &m.newsList
	case sectionEvents:
		return &m.eventsList
	default:
		return &m.tasksList
	}
}

// statusOptions prefers the task's project-defined workflow and falls back to
// the portal-wide default set.
func (m appModel) statusOptions() []model.TaskStatus {
	if m.openTask != nil && len(m.openTask.Statuses) > 0 {
		return append([]model.TaskStatus(nil), m.openTask.Statuses...)
	}
	return append([]model.TaskStatus(nil), model.DefaultStatuses...)
}

// clampChecklistIdx keeps the cursor valid after external events reshape the
// snapshot.
func (m *appModel) clampChecklistIdx() {
	snap, ok := m.store.Read()
	if !ok {
		m.checklistIdx = 0
		return
	}
	if m.checklistIdx >= len(snap.Checklist) {
		m.checklistIdx = len(snap.Checklist) - 1
	}
	if m.checklistIdx < 0 {
		m.checklistIdx = 0
	}
}

func (m *appModel) resizeChrome() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	listW := m.width - 2
	listH := m.height - chromeLines
	if listH < 1 {
		listH = 1
	}
	m.tasksList.SetSize(listW, listH)
	m.newsList.SetSize(listW, listH)
	m.eventsList.SetSize(listW, listH)

	contentW := m.width - 4
	if contentW > maxContentW {
		contentW = maxContentW
	}
	if contentW < 20 {
		contentW = 20
	}
	m.articleVP.Width, m.articleVP.Height = contentW, listH
	m.composer.SetWidth(contentW)
	m.composer.SetHeight(4)
}
