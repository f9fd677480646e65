// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"reflect"
	"strings"

	"github.com/apex/log"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// bind fills dst from r, matching struct fields by their json tag. Scalars
// are coerced with cast (12.5 into a string field becomes "12.5", "4.5" into
// a float64 field becomes 4.5). A value that cannot be coerced leaves dst
// untouched and bind reports false.
func bind(r gjson.Result, dst reflect.Value) bool {
	if !r.Exists() || r.Type == gjson.Null {
		return false
	}

	switch dst.Kind() {
	case reflect.Pointer:
		elem := reflect.New(dst.Type().Elem())
		if !bind(r, elem.Elem()) {
			return false
		}
		dst.Set(elem)
		return true

	case reflect.Struct:
		if !r.IsObject() {
			return mismatch(r, dst)
		}
		members := map[string]gjson.Result{}
		r.ForEach(func(k, v gjson.Result) bool {
			members[k.Str] = v
			return true
		})
		t := dst.Type()
		for i := 0; i < t.NumField(); i++ {
			name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
			if name == "" || name == "-" {
				continue
			}
			if v, ok := members[name]; ok {
				bind(v, dst.Field(i))
			}
		}
		return true

	case reflect.Slice:
		if !r.IsArray() {
			return mismatch(r, dst)
		}
		elems := r.Array()
		out := reflect.MakeSlice(dst.Type(), 0, len(elems))
		for _, e := range elems {
			v := reflect.New(dst.Type().Elem()).Elem()
			if bind(e, v) {
				out = reflect.Append(out, v)
			}
		}
		dst.Set(out)
		return true
	}

	if r.IsObject() || r.IsArray() {
		return mismatch(r, dst)
	}

	switch dst.Kind() {
	case reflect.String:
		dst.SetString(r.String())
		return true

	case reflect.Float64:
		f, err := cast.ToFloat64E(scalar(r))
		if err != nil {
			return mismatch(r, dst)
		}
		dst.SetFloat(f)
		return true

	case reflect.Bool:
		b, err := cast.ToBoolE(scalar(r))
		if err != nil {
			return mismatch(r, dst)
		}
		dst.SetBool(b)
		return true
	}

	return mismatch(r, dst)
}

// scalar returns the Go value of a non-container r, strings trimmed.
func scalar(r gjson.Result) interface{} {
	switch r.Type {
	case gjson.String:
		return strings.TrimSpace(r.Str)
	case gjson.Number:
		return r.Num
	default:
		return r.Bool()
	}
}

func mismatch(r gjson.Result, dst reflect.Value) bool {
	log.Debugf("ignoring %s value %.40s for %s", r.Type, r.Raw, dst.Type())
	return false
}
