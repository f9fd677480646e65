// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package jsontree

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/tidwall/gjson"
)

// Kind identifies which variant of Value is populated.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// ErrInvalidJSON is returned by Parse when the document is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON document")

// Value is a decoded JSON value. Kind selects which of the payload fields is
// meaningful. Objects keep their members in document order.
type Value struct {
	Kind    Kind
	Bool    bool
	Num     float64
	Str     string
	Elems   []Value
	Members []Member

	// Raw is the scalar literal exactly as it appeared in the document. It is
	// empty for containers and for values built in code.
	Raw string
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Parse decodes doc into a Value.
func Parse(doc []byte) (Value, error) {
	if !gjson.ValidBytes(doc) {
		return Value{}, ErrInvalidJSON
	}
	return FromResult(gjson.ParseBytes(doc)), nil
}

// FromResult converts a gjson result into a Value. Duplicate object keys keep
// the position of their first occurrence and the value of their last.
func FromResult(r gjson.Result) Value {
	switch {
	case r.IsObject():
		v := Value{Kind: Object, Members: []Member{}}
		seen := map[string]int{}
		r.ForEach(func(k, val gjson.Result) bool {
			key := k.String()
			if i, ok := seen[key]; ok {
				v.Members[i].Value = FromResult(val)
				return true
			}
			seen[key] = len(v.Members)
			v.Members = append(v.Members, Member{Key: key, Value: FromResult(val)})
			return true
		})
		return v
	case r.IsArray():
		v := Value{Kind: Array, Elems: []Value{}}
		r.ForEach(func(_, val gjson.Result) bool {
			v.Elems = append(v.Elems, FromResult(val))
			return true
		})
		return v
	}

	switch r.Type {
	case gjson.True:
		return Value{Kind: Bool, Bool: true, Raw: r.Raw}
	case gjson.False:
		return Value{Kind: Bool, Bool: false, Raw: r.Raw}
	case gjson.Number:
		return Value{Kind: Number, Num: r.Num, Raw: r.Raw}
	case gjson.String:
		return Value{Kind: String, Str: r.Str, Raw: r.Raw}
	default:
		return Value{Kind: Null}
	}
}

// Len returns the number of members or elements of a container, 0 otherwise.
func (v Value) Len() int {
	switch v.Kind {
	case Object:
		return len(v.Members)
	case Array:
		return len(v.Elems)
	default:
		return 0
	}
}

// IsContainer reports whether v is an object or an array.
func (v Value) IsContainer() bool {
	return v.Kind == Object || v.Kind == Array
}

// Get returns the member value for key.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != Object {
		return Value{}, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Literal returns the display literal of a scalar. Strings are quoted.
func (v Value) Literal() string {
	if v.Raw != "" {
		return v.Raw
	}
	switch v.Kind {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(v.Bool)
	case Number:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case String:
		return quote(v.Str)
	default:
		b, _ := v.MarshalJSON()
		return string(b)
	}
}

// MarshalJSON renders v as compact JSON, keeping member order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	v.appendJSON(&buf)
	return buf.Bytes(), nil
}

func (v Value) appendJSON(buf *bytes.Buffer) {
	switch v.Kind {
	case Array:
		buf.WriteByte('[')
		for i, e := range v.Elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			e.appendJSON(buf)
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(quote(m.Key))
			buf.WriteByte(':')
			m.Value.appendJSON(buf)
		}
		buf.WriteByte('}')
	case Number:
		if v.Raw != "" {
			buf.WriteString(v.Raw)
			return
		}
		buf.WriteString(strconv.FormatFloat(v.Num, 'g', -1, 64))
	default:
		buf.WriteString(v.Literal())
	}
}

// Interface converts v into the generic shape produced by encoding/json.
func (v Value) Interface() any {
	switch v.Kind {
	case Bool:
		return v.Bool
	case Number:
		return v.Num
	case String:
		return v.Str
	case Array:
		out := make([]any, 0, len(v.Elems))
		for _, e := range v.Elems {
			out = append(out, e.Interface())
		}
		return out
	case Object:
		out := make(map[string]any, len(v.Members))
		for _, m := range v.Members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
