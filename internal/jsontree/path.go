// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package jsontree

import (
	"fmt"
	"strconv"
	"strings"
)

// Collapse paths identify a node by its position. Root members use the bare
// key, object members append ".key" and array elements append "[i]". Key
// characters that are part of the syntax are escaped with a backslash so that
// every path is unique within a tree. The empty key is written as "", which no
// other key can produce since a literal quote is always escaped. The empty
// path is reserved for the root.

// emptyKey is the path token for the member whose key is "".
const emptyKey = `""`

// Join returns the path of member key under parent.
func Join(parent, key string) string {
	k := escapeKey(key)
	if parent == "" {
		return k
	}
	return parent + "." + k
}

// Index returns the path of element i under parent.
func Index(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}

func escapeKey(key string) string {
	if key == "" {
		return emptyKey
	}
	if !strings.ContainsAny(key, `.[]\"`) {
		return key
	}
	var sb strings.Builder
	for _, r := range key {
		switch r {
		case '.', '[', ']', '\\', '"':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Segment is one step of a parsed path.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return escapeKey(s.Key)
}

// SplitPath parses a path built by Join and Index back into its segments.
func SplitPath(path string) ([]Segment, error) {
	if path == "" {
		return nil, nil
	}

	var segs []Segment
	i := 0

	// A path begins with either a key or an index.
	if path[0] != '[' {
		key, n, err := readKey(path)
		if err != nil {
			return nil, err
		}
		segs = append(segs, Segment{Key: key})
		i = n
	}

	for i < len(path) {
		switch path[i] {
		case '[':
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("unterminated index in path %q", path)
			}
			n, err := strconv.Atoi(path[i+1 : i+end])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("invalid index %q in path %q", path[i+1:i+end], path)
			}
			segs = append(segs, Segment{Index: n, IsIndex: true})
			i += end + 1
		case '.':
			i++
			key, n, err := readKey(path[i:])
			if err != nil {
				return nil, err
			}
			segs = append(segs, Segment{Key: key})
			i += n
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d in path %q", path[i], i, path)
		}
	}

	return segs, nil
}

// readKey consumes an escaped key up to the next unescaped '.' or '['.
func readKey(s string) (string, int, error) {
	if strings.HasPrefix(s, emptyKey) && (len(s) == len(emptyKey) || s[len(emptyKey)] == '.' || s[len(emptyKey)] == '[') {
		return "", len(emptyKey), nil
	}

	var sb strings.Builder
	i := 0
	for i < len(s) && s[i] != '.' && s[i] != '[' {
		if s[i] == '\\' {
			if i+1 >= len(s) {
				return "", 0, fmt.Errorf("dangling escape in %q", s)
			}
			i++
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String(), i, nil
}

// Lookup returns the node at path. The empty path selects v itself.
func (v Value) Lookup(path string) (Value, bool) {
	segs, err := SplitPath(path)
	if err != nil {
		return Value{}, false
	}
	cur := v
	for _, s := range segs {
		if s.IsIndex {
			if cur.Kind != Array || s.Index >= len(cur.Elems) {
				return Value{}, false
			}
			cur = cur.Elems[s.Index]
			continue
		}
		next, ok := cur.Get(s.Key)
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return cur, true
}
