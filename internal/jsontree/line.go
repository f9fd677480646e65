// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package jsontree

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

// Line is one row of a laid out tree.
type Line struct {
	Path  string
	Label string
	Depth int
	Kind  Kind
	// Count is the number of members or elements of a container.
	Count int
	// Literal is the display form of a scalar.
	Literal   string
	Collapsed bool
	// Closing marks the line holding a container's closing bracket.
	Closing bool
	// Root marks the opening and closing brackets of the root container.
	Root bool
}

// Toggleable reports whether the line heads a container the user can expand
// or collapse.
func (l Line) Toggleable() bool {
	return !l.Root && !l.Closing && (l.Kind == Object || l.Kind == Array)
}

// Theme holds the styles used to paint tree lines.
type Theme struct {
	Key    lipgloss.Style
	Punct  lipgloss.Style
	Count  lipgloss.Style
	Marker lipgloss.Style
	Null   lipgloss.Style
	String lipgloss.Style
	Number lipgloss.Style
	Bool   lipgloss.Style
	Other  lipgloss.Style
}

// PlainTheme renders without any styling.
func PlainTheme() Theme {
	s := lipgloss.NewStyle()
	return Theme{s, s, s, s, s, s, s, s, s}
}

// ColorTheme paints each value kind in its own colour.
func ColorTheme() Theme {
	return Theme{
		Key:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9333ea")).Bold(true),
		Punct:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		Count:  lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
		Marker: lipgloss.NewStyle().Foreground(lipgloss.Color("#4b5563")),
		Null:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")).Italic(true),
		String: lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a")),
		Number: lipgloss.NewStyle().Foreground(lipgloss.Color("#2563eb")),
		Bool:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ea580c")),
		Other:  lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")),
	}
}

const indentUnit = "  "

// Render paints a single line.
func (l Line) Render(th Theme) string {
	indent := strings.Repeat(indentUnit, l.Depth)

	if l.Closing {
		return indent + th.Punct.Render(closer(l.Kind))
	}
	if l.Root {
		return th.Punct.Render(opener(l.Kind))
	}

	switch l.Kind {
	case Object, Array:
		marker := "▼"
		if l.Collapsed {
			marker = "▶"
		}
		return indent +
			th.Marker.Render(marker) + " " +
			th.Key.Render(l.Label) +
			th.Punct.Render(": "+opener(l.Kind)) + "  " +
			th.Count.Render(CountText(l.Kind, l.Count))
	case Null:
		return indent + th.Key.Render(l.Label) + th.Punct.Render(": ") + th.Null.Render("null")
	case String:
		return indent + th.Key.Render(l.Label) + th.Punct.Render(": ") + th.String.Render(l.Literal)
	case Number:
		return indent + th.Key.Render(l.Label) + th.Punct.Render(": ") + th.Number.Render(l.Literal)
	case Bool:
		return indent + th.Key.Render(l.Label) + th.Punct.Render(": ") + th.Bool.Render(l.Literal)
	default:
		return indent + th.Key.Render(l.Label) + th.Punct.Render(": ") + th.Other.Render(fmt.Sprint(l.Literal))
	}
}

// CountText describes the size of a container, e.g. "(1 property)".
func CountText(k Kind, n int) string {
	noun := "items"
	switch {
	case k == Object && n == 1:
		noun = "property"
	case k == Object:
		noun = "properties"
	case n == 1:
		noun = "item"
	}
	return fmt.Sprintf("(%d %s)", n, noun)
}

func opener(k Kind) string {
	if k == Array {
		return "["
	}
	return "{"
}

func closer(k Kind) string {
	if k == Array {
		return "]"
	}
	return "}"
}

// Render lays out t and paints every line.
func Render(t *Tree, th Theme) string {
	lines := t.Lines()
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Render(th))
	}
	return strings.Join(out, "\n")
}
