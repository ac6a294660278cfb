package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"portal-cli/internal/api"
	"portal-cli/internal/model"
	"portal-cli/internal/realtime"
	"portal-cli/internal/tasksync"
)

type section int

const (
	sectionTasks section = iota
	sectionNews
	sectionEvents
)

type view int

const (
	viewList view = iota
	viewTaskDetail
	viewArticle
)

const requestTimeout = 15 * time.Second

type appModel struct {
	client      *api.Client
	displayName string

	width  int
	height int
	// The very first WindowSizeMsg is initial sizing, not a user resize.
	seenWindowSize bool

	section section
	view    view

	tasksList  list.Model
	newsList   list.Model
	eventsList list.Model
	mineOnly   bool
	loadErr    error

	// Open task detail. The store/ledger are seeded while a task is open and
	// cleared when the detail view unmounts; the engine and filter operate on
	// them for the whole program lifetime.
	openTask     *model.Task
	store        *tasksync.Store
	ledger       *tasksync.Ledger
	notices      *tasksync.Notices
	engine       *tasksync.Engine
	filter       *tasksync.Filter
	checklistIdx int

	statusPickerOpen bool
	statusIdx        int
	statusChoices    []model.TaskStatus

	composing bool
	composer  textarea.Model

	article   *model.NewsPost
	articleVP viewport.Model

	conn *realtime.Conn

	// Seq of the notice whose expiry tick is currently armed.
	armedNoticeSeq int
}

func newAppModel(client *api.Client, displayName string) appModel {
	store := &tasksync.Store{}
	ledger := tasksync.NewLedger()
	notices := tasksync.NewNotices()

	ta := textarea.New()
	ta.Placeholder = "Write a comment…"
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000

	vp := viewport.New(0, 0)

	return appModel{
		client:      client,
		displayName: displayName,
		tasksList:   newSectionList("Tasks"),
		newsList:    newSectionList("News"),
		eventsList:  newSectionList("Events"),
		store:       store,
		ledger:      ledger,
		notices:     notices,
		engine:      tasksync.NewEngine(store, ledger, notices),
		filter:      tasksync.NewFilter(store, ledger, notices),
		composer:    ta,
		articleVP:   vp,
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadTasksCmd(), m.loadNewsCmd(), m.loadEventsCmd(), m.connectCmd())
}

// Messages.

type tasksLoadedMsg struct {
	tasks     []model.Task
	fromCache bool
	err       error
}

type newsLoadedMsg struct {
	posts     []model.NewsPost
	fromCache bool
	err       error
}

type eventsLoadedMsg struct {
	events []model.CalendarEvent
	err    error
}

type taskOpenedMsg struct {
	task model.Task
	err  error
}

type articleLoadedMsg struct {
	post model.NewsPost
	err  error
}

// opResolvedMsg carries the outcome of a staged checklist/status mutation
// back to the engine.
type opResolvedMsg struct {
	op  tasksync.Op
	err error
}

// commentResolvedMsg additionally carries the server-assigned comment id.
type commentResolvedMsg struct {
	op       tasksync.Op
	serverID string
	err      error
}

type realtimeConnectedMsg struct {
	conn *realtime.Conn
	err  error
}

type realtimeEventMsg struct {
	ev tasksync.Event
}

type realtimeClosedMsg struct {
	err error
}

type noticeExpiredMsg struct {
	seq int
}

// Commands.

func (m appModel) loadTasksCmd() tea.Cmd {
	client, mine := m.client, m.mineOnly
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		tasks, err := client.ListTasks(ctx, mine)
		if err != nil {
			// Unreachable portal: fall back to the last fetched list so the
			// TUI still opens with something to look at.
			if cached := cachedTasks(ctx); !mine && len(cached) > 0 {
				return tasksLoadedMsg{tasks: cached, fromCache: true}
			}
			return tasksLoadedMsg{err: err}
		}
		if !mine {
			cacheTasks(ctx, tasks)
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

func (m appModel) loadNewsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		posts, err := client.ListNews(ctx, 50)
		if err != nil {
			if cached := cachedNews(ctx); len(cached) > 0 {
				return newsLoadedMsg{posts: cached, fromCache: true}
			}
			return newsLoadedMsg{err: err}
		}
		cacheNews(ctx, posts)
		return newsLoadedMsg{posts: posts}
	}
}

func (m appModel) loadEventsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		from := time.Now()
		events, err := client.ListEvents(ctx, from, from.AddDate(0, 0, 14))
		return eventsLoadedMsg{events: events, err: err}
	}
}

func (m appModel) openTaskCmd(taskID string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		task, err := client.FetchTask(ctx, taskID)
		return taskOpenedMsg{task: task, err: err}
	}
}

func (m appModel) openArticleCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		post, err := client.GetNews(ctx, id)
		return articleLoadedMsg{post: post, err: err}
	}
}

func (m appModel) setChecklistCmd(op tasksync.Op, taskID, itemID string, isCompleted bool) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.SetChecklistItem(ctx, taskID, itemID, isCompleted)
		return opResolvedMsg{op: op, err: err}
	}
}

func (m appModel) setStatusCmd(op tasksync.Op, taskID string, status model.TaskStatus) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err := client.SetTaskStatus(ctx, taskID, status)
		return opResolvedMsg{op: op, err: err}
	}
}

func (m appModel) createCommentCmd(op tasksync.Op, taskID, text string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		id, err := client.CreateComment(ctx, taskID, text)
		return commentResolvedMsg{op: op, serverID: id, err: err}
	}
}

func (m appModel) connectCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		conn, err := realtime.Dial(ctx, client.WebSocketURL(), client.Token)
		return realtimeConnectedMsg{conn: conn, err: err}
	}
}

// waitForEventCmd blocks on the push channel and re-arms itself from Update
// after every delivery, so exactly one reader exists at a time.
func waitForEventCmd(conn *realtime.Conn) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-conn.Events()
		if !ok {
			return realtimeClosedMsg{err: conn.Err()}
		}
		return realtimeEventMsg{ev: ev}
	}
}

// armNoticeCmd schedules the auto-expiry tick for the most recent notice.
// Returns nil when no new notice appeared since the last arming, so an older
// timer can never clear a newer toast.
func (m *appModel) armNoticeCmd() tea.Cmd {
	nt, ok := m.notices.Active()
	if !ok || nt.Seq == m.armedNoticeSeq {
		return nil
	}
	m.armedNoticeSeq = nt.Seq
	seq := nt.Seq
	return tea.Tick(tasksync.NoticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
