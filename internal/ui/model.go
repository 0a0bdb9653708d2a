package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/WillyV3/todot/internal/logging"
	"github.com/WillyV3/todot/internal/todo"
)

const (
	// TickInterval is how often the view refreshes without input.
	TickInterval = 250 * time.Millisecond

	statusDuration = 3 * time.Second
)

// Option configures the model.
type Option func(*Model)

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithSource sets the label shown for where tasks are stored.
func WithSource(source string) Option {
	return func(m *Model) {
		m.source = source
	}
}

// WithStatus shows msg in the status line on startup.
func WithStatus(msg string, isErr bool) Option {
	return func(m *Model) {
		m.setStatus(msg, isErr)
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		m.copyText = write
	}
}

// Model is the Bubble Tea model. It owns the input mode and the scratch
// text of insert mode; the task list itself lives in the Store.
type Model struct {
	ctx      context.Context
	store    *todo.Store
	logger   *log.Logger
	source   string
	copyText func(string) error

	mode     Mode
	input    textinput.Model
	help     help.Model
	progress progress.Model

	width  int
	height int

	statusMsg    string
	statusErr    bool
	statusExpire time.Time
}

type tickMsg time.Time

// NewModel creates a model in normal mode over store.
func NewModel(ctx context.Context, store *todo.Store, opts ...Option) Model {
	m := Model{
		ctx:      ctx,
		store:    store,
		logger:   logging.Discard(),
		copyText: clipboard.WriteAll,
		mode:     ModeNormal,
		input:    newTaskInput(),
		help:     help.New(),
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Mode returns the active input mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Draft returns the text typed so far in insert mode.
func (m Model) Draft() string {
	return m.input.Value()
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = max(10, min(40, msg.Width-30))
		m.input.Width = max(10, msg.Width-6)
		return m, nil

	case tickMsg:
		return m, tick()

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.mode {
		case ModeInsert:
			return m.handleInsert(msg)
		case ModeDelete:
			return m.handleDelete(msg)
		default:
			return m.handleNormal(msg)
		}
	}

	if m.mode == ModeInsert {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Insert):
		m.mode = ModeInsert
		m.input.Reset()
		return m, m.input.Focus()

	case key.Matches(msg, keys.Up):
		m.store.Prev()

	case key.Matches(msg, keys.Down):
		m.store.Next()

	case key.Matches(msg, keys.Toggle):
		if m.store.Len() == 0 {
			return m, nil
		}
		if err := m.store.Toggle(m.ctx); err != nil {
			m.reportError("toggle", err)
			return m, nil
		}
		if task, ok := m.store.Selected(); ok && task.Completed {
			m.setStatus("Task completed", false)
		} else {
			m.setStatus("Task reopened", false)
		}

	case key.Matches(msg, keys.Delete):
		m.mode = ModeDelete

	case key.Matches(msg, keys.Reload):
		if err := m.store.Reload(m.ctx); err != nil {
			m.reportError("reload", err)
			return m, nil
		}
		m.setStatus("Tasks reloaded", false)

	case key.Matches(msg, keys.Yank):
		task, ok := m.store.Selected()
		if !ok {
			return m, nil
		}
		if err := m.copyText(task.Text); err != nil {
			m.logger.Warn("copy to clipboard", "err", err)
			m.setStatus(fmt.Sprintf("Clipboard unavailable: %v", err), true)
			return m, nil
		}
		m.setStatus("Copied to clipboard", false)

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleInsert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Commit):
		text := m.input.Value()
		m.leaveInsert()
		if err := m.store.Insert(m.ctx, text); err != nil {
			m.reportError("insert", err)
			return m, nil
		}
		m.setStatus("Task added", false)
		return m, nil

	case key.Matches(msg, keys.Cancel):
		m.leaveInsert()
		return m, nil

	case cursorMoved(m.input, msg):
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleDelete waits for a second d. Keys other than d and esc are
// swallowed so a stray key never reaches the normal bindings.
func (m Model) handleDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm):
		m.mode = ModeNormal
		if m.store.Len() == 0 {
			return m, nil
		}
		if err := m.store.Delete(m.ctx); err != nil {
			m.reportError("delete", err)
			return m, nil
		}
		m.setStatus("Task deleted", false)

	case key.Matches(msg, keys.Cancel):
		m.mode = ModeNormal
	}
	return m, nil
}

func (m *Model) leaveInsert() {
	m.mode = ModeNormal
	m.input.Reset()
	m.input.Blur()
}

func (m *Model) reportError(op string, err error) {
	m.logger.Error("persistence failed", "op", op, "err", err)
	m.setStatus(fmt.Sprintf("Error: %v", err), true)
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusExpire = time.Now().Add(statusDuration)
}

func tick() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
