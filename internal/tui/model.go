// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"context"

	"github.com/apex/log"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	lipglossv1 "github.com/charmbracelet/lipgloss"

	"github.com/staranto/cachedash/internal/cards"
	"github.com/staranto/cachedash/internal/export"
	"github.com/staranto/cachedash/internal/fetch"
	"github.com/staranto/cachedash/internal/jsontree"
)

// Focus is the part of the screen receiving keys.
type Focus int

const (
	FocusInput Focus = iota
	FocusResult
)

// Mode selects how a payload is shown.
type Mode int

const (
	ModeCards Mode = iota
	ModeTree
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// chromeHeight is the title, input, status and help lines.
	chromeHeight = 5
)

// Config wires the model to the outside world.
type Config struct {
	Context     context.Context
	Fetcher     fetch.Fetcher
	Cards       *cards.Formatter
	Color       bool
	ExportDir   string
	Suggestions []string
	// SessionID, when set, is looked up as soon as the program starts.
	SessionID string
	// OnSuccess is called with the session identifier of every applied
	// successful lookup.
	OnSuccess func(sessionID string)
}

// lookupMsg carries a finished request back into Update.
type lookupMsg struct {
	outcome fetch.Outcome
}

// statusMsg reports the result of a copy or download.
type statusMsg struct {
	text string
	err  error
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	cfg Config
	ctl *fetch.Controller

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	focus Focus
	mode  Mode

	// root and tree belong to the payload currently shown. Both are replaced
	// when a new payload arrives.
	root   jsontree.Value
	tree   *jsontree.Tree
	cursor int

	status    string
	statusErr bool

	width    int
	height   int
	quitting bool
}

// New creates a dashboard model.
func New(cfg Config) *Model {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Cards == nil {
		cfg.Cards, _ = cards.NewFormatter("", "", cfg.Color)
	}

	ti := textinput.New()
	ti.Placeholder = "Enter session ID"
	ti.Prompt = "Session ID: "
	ti.CharLimit = 256
	ti.ShowSuggestions = len(cfg.Suggestions) > 0
	ti.SetSuggestions(cfg.Suggestions)
	ti.SetValue(cfg.SessionID)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	if cfg.Color {
		sp.Style = lipglossv1.NewStyle().Foreground(lipglossv1.Color("#2563eb"))
		ti.PromptStyle = lipglossv1.NewStyle().Bold(true)
	}

	m := &Model{
		cfg:      cfg,
		ctl:      fetch.NewController(cfg.Fetcher),
		input:    ti,
		spinner:  sp,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.refresh()
	return m
}

// Init starts the cursor blinking and, if a session was given, its lookup.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.cfg.SessionID != "" {
		cmds = append(cmds, m.search())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-chromeHeight)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.ctl.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd

	case lookupMsg:
		m.applyOutcome(msg.outcome)
		return m, nil

	case statusMsg:
		m.status, m.statusErr = msg.text, msg.err != nil
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleKeyMsg processes keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.focus == FocusInput {
		switch msg.String() {
		case "enter":
			return m, m.search()
		case "tab":
			m.setFocus(FocusResult)
			return m, nil
		case "esc":
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "esc", "tab":
		m.setFocus(FocusInput)
		return m, textinput.Blink
	case "v":
		if m.mode == ModeCards {
			m.mode = ModeTree
		} else {
			m.mode = ModeCards
		}
		m.refresh()
		return m, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.mode != ModeTree || m.tree == nil {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tree.Lines())-1 {
			m.cursor++
		}
	case " ", "space", "enter":
		lines := m.tree.Lines()
		if m.cursor < len(lines) && lines[m.cursor].Toggleable() {
			m.tree.Toggle(lines[m.cursor].Path)
		}
	case "e":
		m.tree.ExpandAll()
	case "c":
		m.tree.CollapseAll()
		m.cursor = 0
	case "y":
		return m, m.copyCmd()
	case "d":
		return m, m.downloadCmd()
	default:
		return m, nil
	}

	m.clampCursor()
	m.refresh()
	return m, nil
}

// search validates the input and starts a lookup. A blank input only shows
// the validation error.
func (m *Model) search() tea.Cmd {
	t, ok := m.ctl.Begin(m.input.Value())
	m.status = ""
	if !ok {
		m.refresh()
		return nil
	}

	m.root, m.tree, m.cursor = jsontree.Value{}, nil, 0
	m.refresh()

	ctx, ctl := m.cfg.Context, m.ctl
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return lookupMsg{outcome: ctl.Run(ctx, t)}
	})
}

// applyOutcome hands o to the controller and, when it was applied and
// succeeded, builds a fresh tree for the new payload.
func (m *Model) applyOutcome(o fetch.Outcome) {
	if !m.ctl.Complete(o) {
		return
	}

	if m.ctl.Err == nil {
		root, err := jsontree.Parse(m.ctl.Raw)
		if err != nil {
			log.WithError(err).Warn("payload decoded but could not be laid out")
		}
		m.root, m.tree, m.cursor = root, jsontree.New(root), 0
		if m.cfg.OnSuccess != nil {
			m.cfg.OnSuccess(m.ctl.SessionID)
		}
	}
	m.refresh()
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == FocusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	m.refresh()
}

func (m *Model) copyCmd() tea.Cmd {
	root := m.root
	return func() tea.Msg {
		if err := export.Copy(root); err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: "Copied to clipboard"}
	}
}

func (m *Model) downloadCmd() tea.Cmd {
	root, dir := m.root, m.cfg.ExportDir
	return func() tea.Msg {
		p, err := export.Download(dir, root)
		if err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: "Saved " + p}
	}
}

func (m *Model) clampCursor() {
	if m.tree == nil {
		m.cursor = 0
		return
	}
	if n := len(m.tree.Lines()); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

// State exposes the fetch state for callers and tests.
func (m *Model) State() fetch.State {
	return m.ctl.State
}
