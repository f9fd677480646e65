// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cards

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

// Palette is the colour pair of a status badge.
type Palette struct {
	Background string
	Foreground string
}

var (
	PaletteGreen  = Palette{Background: "#dcfce7", Foreground: "#166534"}
	PaletteBlue   = Palette{Background: "#dbeafe", Foreground: "#1e40af"}
	PaletteYellow = Palette{Background: "#fef9c3", Foreground: "#854d0e"}
	PaletteGray   = Palette{Background: "#f3f4f6", Foreground: "#1f2937"}
	PalettePurple = Palette{Background: "#f3e8ff", Foreground: "#6b21a8"}
)

// OrderStatusPalette maps an order or item status to its badge colours.
// Matching ignores case; unknown statuses are gray.
func OrderStatusPalette(status string) Palette {
	switch strings.ToLower(status) {
	case "delivered":
		return PaletteGreen
	case "dispatched":
		return PaletteBlue
	case "invoiced":
		return PaletteYellow
	default:
		return PaletteGray
	}
}

// BudgetPayStatusPalette flags accounts in soft recovery.
func BudgetPayStatusPalette(status string) Palette {
	if status == "SoftRecovery" {
		return PaletteYellow
	}
	return PaletteGreen
}

func (f *Formatter) badge(text string, p Palette) string {
	if !f.Color {
		return "[" + text + "]"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(p.Background)).
		Foreground(lipgloss.Color(p.Foreground)).
		Bold(true).
		Padding(0, 1).
		Render(text)
}

func (f *Formatter) style(s lipgloss.Style) lipgloss.Style {
	if !f.Color {
		return lipgloss.NewStyle()
	}
	return s
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1f2937"))
	headStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#374151"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4b5563"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	amountStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563eb"))
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#9ca3af")).
			Padding(0, 1)
)

func (f *Formatter) title(s string) string {
	return f.style(titleStyle).Render(s)
}

func (f *Formatter) label(s string) string {
	return f.style(labelStyle).Render(s)
}

func (f *Formatter) muted(s string) string {
	return f.style(mutedStyle).Render(s)
}

// card frames a finished card. Plain output has no frame.
func (f *Formatter) card(lines []string) string {
	body := strings.Join(lines, "\n")
	if !f.Color {
		return body
	}
	return cardStyle.Render(body)
}
