// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/staranto/cachedash/internal/output"
)

const (
	helpInput  = "enter search • tab results • ctrl+c quit"
	helpCards  = "v tree • pgup/pgdown scroll • tab input • q quit"
	helpTree   = "↑/↓ move • space toggle • e expand all • c collapse all • y copy • d download • v cards • q quit"
	cursorMark = "> "
)

func (m *Model) style(s lipgloss.Style) lipgloss.Style {
	if !m.cfg.Color {
		return lipgloss.NewStyle()
	}
	return s
}

// View renders the whole screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	title := m.style(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9333ea"))).
		Render("Cache Dashboard")
	search := m.style(lipgloss.NewStyle().Faint(true)).Render("[enter] Search")

	lines := []string{
		title,
		m.input.View() + "  " + search,
		m.statusLine(),
		m.viewport.View(),
		m.style(lipgloss.NewStyle().Faint(true)).Render(m.help()),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) statusLine() string {
	s := m.ctl.State
	switch {
	case s.Err != nil:
		return m.style(lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))).Render(s.Err.Error())
	case m.status != "" && m.statusErr:
		return m.style(lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))).Render(m.status)
	case m.status != "":
		return m.style(lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))).Render(m.status)
	}
	return ""
}

func (m *Model) help() string {
	switch {
	case m.focus == FocusInput:
		return helpInput
	case m.mode == ModeTree:
		return helpTree
	default:
		return helpCards
	}
}

// refresh rebuilds the result area and keeps the tree cursor in view.
func (m *Model) refresh() {
	m.viewport.SetContent(m.content())

	if m.mode != ModeTree || m.tree == nil {
		return
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

// content is the text of the result area.
func (m *Model) content() string {
	s := m.ctl.State
	switch {
	case s.Loading:
		return m.spinner.View() + " Loading..."
	case s.Result == nil:
		return ""
	case m.mode == ModeCards:
		return m.cfg.Cards.Dashboard(s.Result)
	case m.tree == nil:
		return ""
	}

	th := output.TreeTheme(m.cfg.Color)
	lines := m.tree.Lines()
	out := make([]string, 0, len(lines))
	for i, l := range lines {
		prefix := "  "
		if i == m.cursor && m.focus == FocusResult {
			prefix = cursorMark
		}
		out = append(out, prefix+l.Render(th))
	}
	return strings.Join(out, "\n")
}
