package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/zhuifan/internal/filter"
	"github.com/desertthunder/zhuifan/internal/models"
	"github.com/desertthunder/zhuifan/internal/shared"
	"github.com/desertthunder/zhuifan/internal/state"
	"github.com/desertthunder/zhuifan/internal/tasks"
)

// focus is the part of the screen that receives key presses.
type focus int

const (
	listFocus focus = iota
	searchFocus
	formFocus
	modalFocus
	confirmFocus
)

const chromeHeight = 9

// pendingDelete is the record awaiting a y/n answer.
type pendingDelete struct {
	id    int64
	title string
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	tracker *tasks.Tracker
	st      *state.State
	logger  *log.Logger
	now     func() time.Time

	width  int
	height int

	list    list.Model
	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	form      formCursor
	modal     formCursor
	searching bool
	confirm   *pendingDelete
	notice    string
}

// NewModel creates a new TUI model backed by tracker.
func NewModel(ctx context.Context, tracker *tasks.Tracker, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.Default()
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 500

	return &Model{
		ctx:     ctx,
		tracker: tracker,
		st:      state.New(),
		logger:  logger,
		now:     time.Now,
		list:    newAnimeList(),
		input:   input,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init loads the list and today's releases.
func (m *Model) Init() tea.Cmd {
	return m.refresh()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.list.SetSize(max(msg.Width-4, 0), max(msg.Height-chromeHeight, 0))
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		if !m.st.Busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		cmd := m.handleMsg(msg)
		m.syncList()
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.focus() {
		case confirmFocus:
			return m.handleConfirmKeys(msg)
		case modalFocus:
			return m.handleModalKeys(msg)
		case searchFocus:
			return m.handleSearchKeys(msg)
		case formFocus:
			return m.handleFormKeys(msg)
		default:
			return m.handleListKeys(msg)
		}
	}

	return m, nil
}

func (m *Model) focus() focus {
	switch {
	case m.confirm != nil:
		return confirmFocus
	case m.st.Editor.IsOpen():
		return modalFocus
	case m.searching:
		return searchFocus
	case m.st.Screen == state.Admin && m.st.AdminTab == state.AdminCreate:
		return formFocus
	default:
		return listFocus
	}
}

func (m *Model) handleMsg(msg Msg) tea.Cmd {
	switch msg.kind {
	case MsgRefreshed:
		o := msg.data.(outcome)
		if o.err != nil {
			m.fail("refresh", o.err)
			return nil
		}
		m.st.Loaded(o.snapshot)

	case MsgCreated:
		o := msg.data.(outcome)
		if o.err != nil {
			m.fail("create", o.err)
			return nil
		}
		m.st.Created(o.snapshot)
		m.notice = "✓ 已添加"
		if m.focus() == formFocus {
			return m.form.reset(&m.input, &m.st.Form)
		}

	case MsgUpdated:
		o := msg.data.(outcome)
		if o.err != nil {
			m.logger.Error("update failed", "id", o.id, "error", o.err)
			m.st.UpdateFailed(o.id, o.err)
			return nil
		}
		m.st.Updated(o.id, o.snapshot)
		if !m.st.Editor.IsOpen() {
			m.input.Blur()
		}
		m.notice = "✓ 已保存"

	case MsgDeleted:
		o := msg.data.(outcome)
		if o.err != nil {
			m.fail("delete", o.err)
			return nil
		}
		m.st.Deleted(o.snapshot)
		m.notice = "✓ 已删除"

	case MsgLinkOpened:
		data := msg.data.(struct {
			url string
			err error
		})
		if data.err != nil {
			m.logger.Warn("failed to open link", "url", data.url, "error", data.err)
			m.notice = "✗ 无法打开链接"
			return nil
		}
		m.notice = "↗ " + data.url
	}
	return nil
}

// fail logs err and records it; views stay as they were.
func (m *Model) fail(op string, err error) {
	m.logger.Error(op+" failed", "error", err)
	m.st.Failed(err)
	m.notice = ""
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.st.Editor.IsOpen() || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	x, y, w, h := m.modalBounds()
	if msg.X < x || msg.X >= x+w || msg.Y < y || msg.Y >= y+h {
		m.st.Editor.DismissBackground()
		m.input.Blur()
	}
	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	crit := m.criteria()

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.nextScreen):
		return m, m.switchScreen(1)

	case key.Matches(msg, m.keys.prevScreen):
		return m, m.switchScreen(-1)

	case key.Matches(msg, m.keys.home):
		m.st.GoHome()
		m.notice = ""

	case key.Matches(msg, m.keys.day) && m.st.Screen == state.Browse:
		i := int(msg.Runes[0] - '1')
		m.st.SelectDay(models.Weekdays()[i])

	case key.Matches(msg, m.keys.search) && crit != nil:
		m.searching = true
		m.input.SetValue(crit.Query)
		m.input.CursorEnd()
		m.input.Placeholder = "搜索标题/平台/备注"
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.status) && crit != nil:
		crit.Status = models.Status(cycleString(statusOptions(), string(crit.Status)))

	case key.Matches(msg, m.keys.platform) && crit != nil:
		crit.Platform = cycleString(append([]string{""}, models.Platforms()...), crit.Platform)

	case key.Matches(msg, m.keys.weekday) && crit != nil && m.st.SelectedDay == "":
		crit.UpdateDay = models.Weekday(cycleString(weekdayOptions(), string(crit.UpdateDay)))

	case key.Matches(msg, m.keys.clear) && crit != nil:
		*crit = filter.Criteria{}

	case key.Matches(msg, m.keys.refresh):
		return m, m.refresh()

	case key.Matches(msg, m.keys.open):
		if a, ok := selectedAnime(m.list); ok {
			return m, m.openLink(a.PlatformURL)
		}
		return m, nil

	case key.Matches(msg, m.keys.adminTab) && m.st.Screen == state.Admin:
		m.st.AdminTab = state.AdminCreate
		return m, m.form.load(&m.input, &m.st.Form)

	case key.Matches(msg, m.keys.edit) && m.st.Screen == state.Admin:
		if a, ok := selectedAnime(m.list); ok {
			m.st.Editor.Open(a)
			return m, m.modal.reset(&m.input, m.st.Editor.Form())
		}
		return m, nil

	case key.Matches(msg, m.keys.remove) && m.st.Screen == state.Admin:
		if a, ok := selectedAnime(m.list); ok {
			m.confirm = &pendingDelete{id: a.ID, title: a.Title}
		}
		return m, nil

	default:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	m.syncList()
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	crit := m.criteria()

	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.input.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.input.Blur()
		if crit != nil {
			crit.Query = ""
		}
		m.syncList()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if crit != nil {
		crit.Query = m.input.Value()
	}
	m.syncList()
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.submit):
		return m, m.create()
	case key.Matches(msg, m.keys.reset):
		m.st.Form.Reset()
		return m, m.form.reset(&m.input, &m.st.Form)
	case key.Matches(msg, m.keys.back):
		m.st.AdminTab = state.AdminList
		m.input.Blur()
		m.syncList()
		return m, nil
	}

	_, cmd := m.form.handleKey(&m.input, &m.st.Form, msg)
	return m, cmd
}

func (m *Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.submit):
		return m, m.update()
	case key.Matches(msg, m.keys.back):
		m.st.Editor.Cancel()
		m.input.Blur()
		return m, nil
	}

	_, cmd := m.modal.handleKey(&m.input, m.st.Editor.Form(), msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		id := m.confirm.id
		m.confirm = nil
		return m, m.delete(id)
	case key.Matches(msg, m.keys.no):
		m.confirm = nil
	}
	return m, nil
}

// switchScreen cycles the top-level screen by delta.
func (m *Model) switchScreen(delta int) tea.Cmd {
	const screens = 3
	m.st.Screen = state.Screen((int(m.st.Screen) + delta + screens) % screens)
	m.notice = ""
	m.syncList()
	if m.focus() == formFocus {
		return m.form.load(&m.input, &m.st.Form)
	}
	m.input.Blur()
	return nil
}

// criteria returns the filter set of the current screen, nil where the screen has none.
func (m *Model) criteria() *filter.Criteria {
	switch m.st.Screen {
	case state.Browse:
		if m.st.SelectedDay != "" {
			return &m.st.DayFilter
		}
		return &m.st.BrowseFilter
	case state.Admin:
		return &m.st.AdminFilter
	default:
		return nil
	}
}

// visible returns the records the current screen lists.
func (m *Model) visible() []models.Anime {
	switch m.st.Screen {
	case state.Today:
		return m.st.Today
	case state.Admin:
		return m.st.AdminAnimes()
	default:
		if m.st.SelectedDay != "" {
			return m.st.DayAnimes()
		}
		return m.st.BrowseAnimes()
	}
}

// syncList rebuilds the list items from the caches and the active criteria.
func (m *Model) syncList() {
	m.list.SetItems(newAnimeItems(m.visible(), m.now()))
	m.list.Title = m.listTitle()
}

func (m *Model) begin(cmd tea.Cmd) tea.Cmd {
	m.st.Begin()
	m.notice = ""
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *Model) refresh() tea.Cmd {
	return m.begin(func() tea.Msg {
		snap, err := m.tracker.Refresh(m.ctx)
		return refreshedMsg(snap, err)
	})
}

func (m *Model) create() tea.Cmd {
	draft := m.st.Form.Draft()
	return m.begin(func() tea.Msg {
		snap, err := m.tracker.Create(m.ctx, draft)
		return createdMsg(snap, err)
	})
}

func (m *Model) update() tea.Cmd {
	req, err := m.st.Editor.Submit()
	if err != nil {
		return nil
	}
	return m.begin(func() tea.Msg {
		snap, err := m.tracker.Update(m.ctx, req.ID, req.Draft)
		return updatedMsg(req.ID, snap, err)
	})
}

func (m *Model) delete(id int64) tea.Cmd {
	return m.begin(func() tea.Msg {
		snap, err := m.tracker.Delete(m.ctx, id, tasks.DeleteOptions{Confirmed: true})
		return deletedMsg(snap, err)
	})
}

func (m *Model) openLink(url string) tea.Cmd {
	return func() tea.Msg {
		return linkOpenedMsg(url, shared.OpenBrowser(url))
	}
}

func statusOptions() []string {
	out := []string{""}
	for _, s := range models.Statuses() {
		out = append(out, string(s))
	}
	return out
}

func weekdayOptions() []string {
	out := []string{""}
	for _, d := range models.Weekdays() {
		out = append(out, string(d))
	}
	return out
}

// cycleString returns the option after current, wrapping to the first.
func cycleString(options []string, current string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}
