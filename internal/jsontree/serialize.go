// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package jsontree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/pretty"
)

// DefaultExportName is used when the payload carries no usable session_id.
const DefaultExportName = "export"

// Width 0 keeps every array on its own lines.
var prettyOptions = &pretty.Options{
	Width:    0,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: false,
}

// Marshal serializes the whole value as indented JSON, keeping member order.
// This is what copy and download hand to the user.
func Marshal(v Value) []byte {
	compact, _ := v.MarshalJSON()
	return pretty.PrettyOptions(compact, prettyOptions)
}

// DownloadName returns the export file name for a payload:
// cache-data-<session_id>.json, or cache-data-export.json when session_id is
// missing, empty, zero, false or not a scalar.
func DownloadName(v Value) string {
	return "cache-data-" + sanitizeName(sessionLabel(v)) + ".json"
}

func sessionLabel(v Value) string {
	id, ok := v.Get("session_id")
	if !ok {
		return DefaultExportName
	}
	switch id.Kind {
	case String:
		if id.Str != "" {
			return id.Str
		}
	case Number:
		if id.Num != 0 && id.Num == id.Num {
			return id.Literal()
		}
	case Bool:
		if id.Bool {
			return "true"
		}
	}
	return DefaultExportName
}

// sanitizeName keeps names from escaping the export directory.
func sanitizeName(s string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, s)
	if strings.Trim(mapped, ".") == "" {
		return DefaultExportName
	}
	return mapped
}

// Leaf is a displayed value that has no children of its own: a scalar or an
// empty container.
type Leaf struct {
	Path  string
	Value Value
}

// Leaves lists every leaf below root in document order. A scalar or empty
// root is its own single leaf at the empty path.
func Leaves(root Value) []Leaf {
	if root.IsContainer() && root.Len() == 0 {
		return []Leaf{{Path: "", Value: root}}
	}

	var leaves []Leaf
	Walk(root, Visitor{
		Enter: func(n Node) bool {
			if !n.Value.IsContainer() || n.Value.Len() == 0 {
				leaves = append(leaves, Leaf{Path: n.Path, Value: n.Value})
			}
			return true
		},
	})
	return leaves
}

// Assemble rebuilds a value from its leaves. A single leaf at the empty path
// is the root itself; otherwise the root kind is taken from the first path
// segment. An empty leaf list yields an empty object.
func Assemble(leaves []Leaf) (Value, error) {
	if len(leaves) == 1 && leaves[0].Path == "" {
		return leaves[0].Value, nil
	}

	root := Value{Kind: Object, Members: []Member{}}
	for i, leaf := range leaves {
		segs, err := SplitPath(leaf.Path)
		if err != nil {
			return Value{}, err
		}
		if len(segs) == 0 {
			return Value{}, fmt.Errorf("leaf %d has an empty path", i)
		}
		if i == 0 && segs[0].IsIndex {
			root = Value{Kind: Array, Elems: []Value{}}
		}
		if err := insert(&root, segs, leaf.Value); err != nil {
			return Value{}, fmt.Errorf("failed to place %q: %w", leaf.Path, err)
		}
	}
	return root, nil
}

func insert(into *Value, segs []Segment, leaf Value) error {
	seg := segs[0]
	child, err := slot(into, seg, len(segs) == 1, leaf, segs)
	if err != nil || len(segs) == 1 {
		return err
	}
	return insert(child, segs[1:], leaf)
}

// slot returns the child of into addressed by seg, creating it when missing.
// When last is set the child is the leaf itself.
func slot(into *Value, seg Segment, last bool, leaf Value, segs []Segment) (*Value, error) {
	fresh := leaf
	if !last {
		if segs[1].IsIndex {
			fresh = Value{Kind: Array, Elems: []Value{}}
		} else {
			fresh = Value{Kind: Object, Members: []Member{}}
		}
	}

	if seg.IsIndex {
		if into.Kind != Array {
			return nil, fmt.Errorf("index %s applied to %s", seg, into.Kind)
		}
		switch {
		case seg.Index < len(into.Elems):
			if last {
				return nil, fmt.Errorf("duplicate element %s", seg)
			}
			return &into.Elems[seg.Index], nil
		case seg.Index == len(into.Elems):
			into.Elems = append(into.Elems, fresh)
			return &into.Elems[seg.Index], nil
		default:
			return nil, fmt.Errorf("element %s skips from %s", seg, "["+strconv.Itoa(len(into.Elems))+"]")
		}
	}

	if into.Kind != Object {
		return nil, fmt.Errorf("key %s applied to %s", seg, into.Kind)
	}
	for i := range into.Members {
		if into.Members[i].Key == seg.Key {
			if last {
				return nil, fmt.Errorf("duplicate key %s", seg)
			}
			return &into.Members[i].Value, nil
		}
	}
	into.Members = append(into.Members, Member{Key: seg.Key, Value: fresh})
	return &into.Members[len(into.Members)-1].Value, nil
}
