// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/staranto/cachedash/internal/jsontree"
)

// Driller returns the value at path within json. Paths use the same syntax as
// collapse paths: "a.b", "a[0].b", with '.', '[', ']', '"' and '\' in keys
// escaped by a backslash and the empty key written as "". A key applied to a
// single element array is applied to that element, and a single element array
// found at the end of the path is returned as its element. A missing value is
// a Result that does not exist.
func Driller(json string, path string) gjson.Result {
	return DrillResult(gjson.Parse(json), path)
}

// DrillResult is Driller over an already parsed document.
func DrillResult(root gjson.Result, path string) gjson.Result {
	segs, err := jsontree.SplitPath(path)
	if err != nil {
		log.Debugf("driller: %v", err)
		return gjson.Result{}
	}

	cur := root
	for _, seg := range segs {
		if !cur.Exists() {
			return gjson.Result{}
		}

		if seg.IsIndex {
			if !cur.IsArray() {
				return gjson.Result{}
			}
			elems := cur.Array()
			if seg.Index >= len(elems) {
				return gjson.Result{}
			}
			cur = elems[seg.Index]
			continue
		}

		if cur.IsArray() {
			elems := cur.Array()
			if len(elems) != 1 {
				return gjson.Result{}
			}
			cur = elems[0]
		}
		cur = member(cur, seg.Key)
	}

	if cur.IsArray() {
		if elems := cur.Array(); len(elems) == 1 {
			return elems[0]
		}
	}

	return cur
}

// member looks key up without gjson path syntax so that keys holding '*', '?'
// or '#' are matched literally. The last duplicate wins.
func member(obj gjson.Result, key string) gjson.Result {
	if !obj.IsObject() {
		return gjson.Result{}
	}
	var found gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found = v
		}
		return true
	})
	return found
}
