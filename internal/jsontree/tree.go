// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package jsontree

// Tree pairs a root value with its per-path collapse state. A missing flag
// means expanded. The state lives only as long as the Tree; a new payload
// gets a new Tree.
type Tree struct {
	Root      Value
	collapsed map[string]bool
}

// New returns a fully expanded tree over root.
func New(root Value) *Tree {
	return &Tree{Root: root, collapsed: map[string]bool{}}
}

// IsCollapsed reports the stored flag for path.
func (t *Tree) IsCollapsed(path string) bool {
	return t.collapsed[path]
}

// Toggle flips the flag for path only. Descendant flags are left alone.
func (t *Tree) Toggle(path string) {
	t.collapsed[path] = !t.collapsed[path]
}

// SetCollapsed stores an explicit flag for path.
func (t *Tree) SetCollapsed(path string, collapsed bool) {
	t.collapsed[path] = collapsed
}

// ExpandAll clears the collapsed flag of every node in one step.
func (t *Tree) ExpandAll() {
	t.setAll(false)
}

// CollapseAll sets the collapsed flag of every node in one step.
func (t *Tree) CollapseAll() {
	t.setAll(true)
}

func (t *Tree) setAll(collapsed bool) {
	next := map[string]bool{}
	for _, p := range Paths(t.Root) {
		next[p] = collapsed
	}
	t.collapsed = next
}

// Flags returns a copy of the stored collapse flags.
func (t *Tree) Flags() map[string]bool {
	out := make(map[string]bool, len(t.collapsed))
	for k, v := range t.collapsed {
		out[k] = v
	}
	return out
}

// Lines lays the tree out for display. Children of collapsed containers are
// skipped, as are their closing brackets.
func (t *Tree) Lines() []Line {
	var lines []Line

	root := t.Root.IsContainer()
	if root {
		lines = append(lines, Line{Kind: t.Root.Kind, Root: true, Count: t.Root.Len()})
	}

	Walk(t.Root, Visitor{
		Enter: func(n Node) bool {
			l := Line{
				Path:  n.Path,
				Label: n.Label,
				Depth: n.Depth,
				Kind:  n.Value.Kind,
				Count: n.Value.Len(),
			}
			if n.Value.IsContainer() {
				l.Collapsed = t.collapsed[n.Path]
			} else {
				l.Literal = n.Value.Literal()
			}
			lines = append(lines, l)
			return !l.Collapsed
		},
		Leave: func(n Node) {
			lines = append(lines, Line{
				Path:    n.Path,
				Depth:   n.Depth,
				Kind:    n.Value.Kind,
				Closing: true,
			})
		},
	})

	if root {
		lines = append(lines, Line{Kind: t.Root.Kind, Root: true, Closing: true})
	}

	return lines
}
