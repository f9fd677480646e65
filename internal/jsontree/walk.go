// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package jsontree

import "strconv"

// Node is a single position visited by Walk.
type Node struct {
	Path  string
	Label string
	Depth int
	Value Value
}

// Visitor receives nodes from Walk. Enter is called before a node's children
// and returns whether Walk descends into them. Leave is called after the
// children of a container that was descended into. Either may be nil.
type Visitor struct {
	Enter func(Node) bool
	Leave func(Node)
}

// Walk visits every node below root in document order. The root itself is not
// visited; its members (or elements) are visited at depth 1. A scalar root is
// visited as a single node with an empty path.
//
// This is the only place collapse paths are built, so the renderer and the
// expand/collapse-all traversal always agree.
func Walk(root Value, v Visitor) {
	switch root.Kind {
	case Object, Array:
		walkChildren(root, "", 1, v)
	default:
		walk(Node{Value: root, Depth: 1}, v)
	}
}

func walk(n Node, v Visitor) {
	descend := true
	if v.Enter != nil {
		descend = v.Enter(n)
	}
	if !n.Value.IsContainer() || !descend {
		return
	}
	walkChildren(n.Value, n.Path, n.Depth+1, v)
	if v.Leave != nil {
		v.Leave(n)
	}
}

func walkChildren(parent Value, path string, depth int, v Visitor) {
	switch parent.Kind {
	case Object:
		for _, m := range parent.Members {
			walk(Node{
				Path:  Join(path, m.Key),
				Label: quote(m.Key),
				Depth: depth,
				Value: m.Value,
			}, v)
		}
	case Array:
		for i, e := range parent.Elems {
			walk(Node{
				Path:  Index(path, i),
				Label: "[" + strconv.Itoa(i) + "]",
				Depth: depth,
				Value: e,
			}, v)
		}
	}
}

// Paths returns the path of every node below root, in document order.
func Paths(root Value) []string {
	var paths []string
	Walk(root, Visitor{
		Enter: func(n Node) bool {
			paths = append(paths, n.Path)
			return true
		},
	})
	return paths
}
