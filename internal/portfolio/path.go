// SPDX-License-Identifier: MIT

package portfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidPath is returned for an empty key or a key with an empty segment.
	ErrInvalidPath = errors.New("invalid config path")
	// ErrNotObject is returned when Update would descend into a scalar.
	ErrNotObject = errors.New("config path crosses a non-object value")
	// ErrIndex is returned when Update addresses an array with a segment
	// that is not an in-range index.
	ErrIndex = errors.New("config path index out of range")
)

// Truthy reports whether v counts as set: nil, false, 0, NaN and "" do not.
// Empty objects and arrays do.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case string:
		return t != ""
	default:
		return true
	}
}

func splitKey(key string) ([]string, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidPath)
	}
	parts := strings.Split(key, ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, key)
		}
	}
	return parts, nil
}

// Lookup walks key through tree. Array elements are addressed by index,
// e.g. "experience.0.period". The walk stops at the first falsy step.
func Lookup(tree map[string]any, key string) (any, bool) {
	parts, err := splitKey(key)
	if err != nil {
		return nil, false
	}
	var cur any = tree
	for _, p := range parts {
		if !Truthy(cur) {
			return nil, false
		}
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[p]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(p)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// GetOr returns the value at key, or def when the value is missing or falsy.
func GetOr(tree map[string]any, key string, def any) any {
	v, ok := Lookup(tree, key)
	if !ok || !Truthy(v) {
		return def
	}
	return v
}

// Assign sets key to value in tree, creating objects for missing or falsy
// intermediate steps. Array elements are addressed by in-range index, the
// same way Lookup reads them. tree is modified in place.
func Assign(tree map[string]any, key string, value any) error {
	parts, err := splitKey(key)
	if err != nil {
		return err
	}
	if tree == nil {
		return fmt.Errorf("%w: nil document", ErrNotObject)
	}
	var cur any = tree
	for i, p := range parts {
		last := i == len(parts)-1
		switch node := cur.(type) {
		case map[string]any:
			if last {
				node[p] = value
				return nil
			}
			next := node[p]
			if !Truthy(next) {
				next = make(map[string]any)
				node[p] = next
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(p)
			if err != nil || idx < 0 || idx >= len(node) {
				return fmt.Errorf("%w: %q in %s (length %d)", ErrIndex, p, strings.Join(parts[:i], "."), len(node))
			}
			if last {
				node[idx] = value
				return nil
			}
			next := node[idx]
			if !Truthy(next) {
				next = make(map[string]any)
				node[idx] = next
			}
			cur = next
		default:
			return fmt.Errorf("%w: %s is %s", ErrNotObject, strings.Join(parts[:i], "."), kind(node))
		}
	}
	return nil
}

func kind(v any) string {
	switch v.(type) {
	case []any:
		return "an array"
	case string:
		return "a string"
	case float64, int, json.Number:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Clone deep-copies a JSON tree value.
func Clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Clone(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Clone(val)
		}
		return out
	default:
		return v
	}
}

func cloneTree(tree map[string]any) map[string]any {
	if tree == nil {
		return nil
	}
	return Clone(tree).(map[string]any)
}

// normalize converts an arbitrary Go value into plain JSON tree types.
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("value is not JSON-encodable: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
