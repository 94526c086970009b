package normst

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/goccy/go-yaml"
)

// Wildcards recognized in tree patterns
const (
	// ValueWildcard as an array element matches any run of elements. As
	// any other value it matches any actual value.
	ValueWildcard = "{...}"
	// KeyWildcard is the key of an object entry with value ValueWildcard.
	// The entry makes the pattern accept any keys it does not list.
	KeyWildcard = "..."
)

// NormalizeValue is NormalizeText for tree values. Objects are
// yaml.MapSlice (ordered) or map[string]any, arrays are []any. Strings are
// normalized with NormalizeText, object keys are redacted with r. Values of
// different kinds are left as they are.
//
// The result is a new value, neither actual nor pattern are modified.
func NormalizeValue(actual, pattern any, r *Redactions) any {
	if isValueWildcard(pattern) {
		return ValueWildcard
	}
	switch exp := pattern.(type) {
	case string:
		if act, ok := actual.(string); ok {
			return NormalizeText(act, exp, r)
		}
	case []any:
		if act, ok := actual.([]any); ok {
			return normalizeArray(act, exp, r)
		}
	}
	exp, ok := asObject(pattern)
	if !ok {
		return actual
	}
	act, ok := asObject(actual)
	if !ok {
		return actual
	}
	res := normalizeObject(act, exp, r)
	if _, ok := actual.(map[string]any); ok {
		return objectMap(res)
	}
	return res
}

func isValueWildcard(v any) bool {
	s, ok := v.(string)
	return ok && s == ValueWildcard
}

// wildcardRuns splits pattern at its wildcard elements. Adjacent or
// trailing wildcards yield empty runs.
func wildcardRuns(pattern []any) (runs [][]any) {
	start := 0
	for i, e := range pattern {
		if isValueWildcard(e) {
			runs = append(runs, pattern[start:i])
			start = i + 1
		}
	}
	return append(runs, pattern[start:])
}

func normalizeArray(act, exp []any, r *Redactions) []any {
	runs := wildcardRuns(exp)
	res := make([]any, 0, len(act))
	ai := 0
	for i, run := range runs {
		for _, e := range run {
			if ai >= len(act) {
				return res
			}
			res = append(res, NormalizeValue(act[ai], e, r))
			ai++
		}
		if i+1 == len(runs) {
			break
		}
		next := runs[i+1]
		if len(next) == 0 {
			res = append(res, ValueWildcard)
			ai = len(act)
			break
		}
		anchor := slices.IndexFunc(act[ai:], func(a any) bool {
			return Equal(a, next[0])
		})
		if anchor < 0 {
			break
		}
		res = append(res, ValueWildcard)
		ai += anchor
	}
	return append(res, act[ai:]...)
}

func normalizeObject(act, exp yaml.MapSlice, r *Redactions) yaml.MapSlice {
	anyKey := false
	if v, ok := lookup(exp, KeyWildcard); ok {
		anyKey = isValueWildcard(v)
	}
	res := make(yaml.MapSlice, 0, len(act)+1)
	for _, item := range act {
		key := item.Key
		if s, ok := key.(string); ok {
			key = r.Redact(s)
		}
		val := item.Value
		if ev, ok := lookup(exp, key); ok {
			val = NormalizeValue(val, ev, r)
		} else if anyKey {
			continue
		}
		res = setItem(res, key, val)
	}
	if anyKey {
		res = setItem(res, KeyWildcard, ValueWildcard)
	}
	return res
}

func lookup(obj yaml.MapSlice, key any) (any, bool) {
	for _, item := range obj {
		if Equal(item.Key, key) {
			return item.Value, true
		}
	}
	return nil, false
}

// setItem replaces the value of key in place or appends a new entry.
func setItem(obj yaml.MapSlice, key, val any) yaml.MapSlice {
	for i := range obj {
		if Equal(obj[i].Key, key) {
			obj[i].Value = val
			return obj
		}
	}
	return append(obj, yaml.MapItem{Key: key, Value: val})
}

func asObject(v any) (yaml.MapSlice, bool) {
	switch o := v.(type) {
	case yaml.MapSlice:
		return o, true
	case map[string]any:
		keys := make([]string, 0, len(o))
		for k := range o {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		res := make(yaml.MapSlice, len(keys))
		for i, k := range keys {
			res[i] = yaml.MapItem{Key: k, Value: o[k]}
		}
		return res, true
	}
	return nil, false
}

func objectMap(obj yaml.MapSlice) map[string]any {
	res := make(map[string]any, len(obj))
	for _, item := range obj {
		switch k := item.Key.(type) {
		case string:
			res[k] = item.Value
		default:
			res[fmt.Sprint(k)] = item.Value
		}
	}
	return res
}

// Equal compares tree values. Objects compare independent of their key
// order. A normalized value matches its pattern iff it is Equal to the
// pattern.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case yaml.MapSlice, map[string]any:
		ao, _ := asObject(a)
		bo, ok := asObject(b)
		if !ok || len(ao) != len(bo) {
			return false
		}
		for _, item := range ao {
			bval, ok := lookup(bo, item.Key)
			if !ok || !Equal(item.Value, bval) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}
