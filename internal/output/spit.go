// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"gopkg.in/yaml.v2"

	"github.com/staranto/cachedash/internal/cards"
	"github.com/staranto/cachedash/internal/config"
	"github.com/staranto/cachedash/internal/dashboard"
	"github.com/staranto/cachedash/internal/jsontree"
)

// Formats lists the accepted --output values.
var Formats = []string{"text", "tree", "json", "yaml", "raw", "leaves"}

// ErrPathNotFound is returned when --path selects nothing.
var ErrPathNotFound = errors.New("path not found")

// Options controls how a lookup result is emitted.
type Options struct {
	Format      string
	Path        string
	Collapse    []string
	CollapseAll bool
	Color       bool
	Cards       *cards.Formatter
}

// Spit writes the lookup result to w in the requested format. body is the
// response exactly as received; resp is its decoded form, which the text
// format renders as cards.
func Spit(w io.Writer, body []byte, resp *dashboard.Response, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	format := opts.Format
	if format == "" {
		format = "text"
	}

	// If raw with no path, just dump it and go home.
	if format == "raw" && opts.Path == "" {
		_, err := w.Write(body)
		return err
	}

	if format == "text" {
		if opts.Path != "" {
			return fmt.Errorf("--path cannot be used with text output")
		}
		f := opts.Cards
		if f == nil {
			var err error
			if f, err = cards.NewFormatter("", "", opts.Color); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(w, f.Dashboard(resp))
		return err
	}

	root, err := jsontree.Parse(body)
	if err != nil {
		return err
	}
	v, ok := root.Lookup(opts.Path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPathNotFound, opts.Path)
	}
	log.Debugf("emitting %s for path %q", format, opts.Path)

	switch format {
	case "raw":
		b, _ := v.MarshalJSON()
		_, err = w.Write(b)
	case "json":
		_, err = w.Write(jsontree.Marshal(v))
	case "yaml":
		var b []byte
		if b, err = yaml.Marshal(ToYAML(v)); err == nil {
			_, err = w.Write(b)
		}
	case "leaves":
		err = LeavesWriter(w, v)
	case "tree":
		tree := jsontree.New(v)
		if opts.CollapseAll {
			tree.CollapseAll()
		}
		for _, p := range opts.Collapse {
			tree.SetCollapsed(p, true)
		}
		_, err = fmt.Fprintln(w, jsontree.Render(tree, TreeTheme(opts.Color)))
	default:
		err = fmt.Errorf("unknown output format %q", format)
	}

	return err
}

// ToYAML converts v into values yaml.v2 marshals with member order kept.
func ToYAML(v jsontree.Value) interface{} {
	switch v.Kind {
	case jsontree.Object:
		ms := make(yaml.MapSlice, 0, len(v.Members))
		for _, m := range v.Members {
			ms = append(ms, yaml.MapItem{Key: m.Key, Value: ToYAML(m.Value)})
		}
		return ms
	case jsontree.Array:
		out := make([]interface{}, 0, len(v.Elems))
		for _, e := range v.Elems {
			out = append(out, ToYAML(e))
		}
		return out
	case jsontree.Number:
		if i, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
			return i
		}
		return v.Num
	default:
		return v.Interface()
	}
}

// LeavesWriter prints one "path = literal" line per leaf, aligned in a table.
func LeavesWriter(w io.Writer, v jsontree.Value) error {
	leaves := jsontree.Leaves(v)
	if len(leaves) == 0 {
		return nil
	}

	var rows [][]string
	for _, l := range leaves {
		path := l.Path
		if path == "" {
			path = "."
		}
		rows = append(rows, []string{path, "=", l.Value.Literal()})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col > 0 {
				return lipgloss.NewStyle().PaddingLeft(1)
			}
			return lipgloss.NewStyle()
		}).
		Rows(rows...)

	_, err := fmt.Fprintln(w, strings.TrimRight(t.String(), "\n"))
	return err
}

// TreeTheme returns the plain theme, or the colour theme with any colours
// overridden under colors.* in the config file.
func TreeTheme(color bool) jsontree.Theme {
	if !color {
		return jsontree.PlainTheme()
	}
	th := jsontree.ColorTheme()
	key, str, num := getColors("colors")
	th.Key = th.Key.Foreground(lipgloss.Color(key))
	th.String = th.String.Foreground(lipgloss.Color(str))
	th.Number = th.Number.Foreground(lipgloss.Color(num))
	return th
}

// getColors returns configured colour values for tree rendering.
func getColors(key string) (keyColor string, stringColor string, numberColor string) {
	keyColor, _ = config.GetString(fmt.Sprintf("%s.key", key), "#9333ea")
	stringColor, _ = config.GetString(fmt.Sprintf("%s.string", key), "#16a34a")
	numberColor, _ = config.GetString(fmt.Sprintf("%s.number", key), "#2563eb")
	return
}

// DumpExamples renders a table of example command usages.
func DumpExamples(w io.Writer, examples [][2]string) {
	if len(examples) == 0 {
		return
	}
	if w == nil {
		w = os.Stdout
	}

	var rows [][]string
	for _, ex := range examples {
		rows = append(rows, []string{ex[0], ex[1]})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		Headers().
		Rows(rows...)

	// https://github.com/charmbracelet/lipgloss/issues/261
	t = t.Headers("Command", "Description").BorderHeader(false)

	fmt.Fprintln(w, t)
}
