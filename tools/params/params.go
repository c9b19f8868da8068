/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package params

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrMissing is wrapped by errors for required arguments that were not supplied.
var ErrMissing = errors.New("missing argument")

// Error describes a tool argument that could not be extracted.
type Error struct {
	Name   string
	Reason string
	err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Reason)
}

func (e *Error) Unwrap() error { return e.err }

// Extract returns the argument called name converted to T.
// JSON numbers decode as float64; they convert to the integer types only when
// they hold a whole value in range.
func Extract[T any](args map[string]any, name string) (T, error) {
	var zero T

	value, exists := args[name]
	if !exists || value == nil {
		return zero, &Error{Name: name, Reason: "parameter is required", err: ErrMissing}
	}
	return convert[T](name, value)
}

// ExtractOptional is Extract with a fallback for absent arguments.
// A present argument of the wrong type is still an error.
func ExtractOptional[T any](args map[string]any, name string, defaultValue T) (T, error) {
	value, exists := args[name]
	if !exists || value == nil {
		return defaultValue, nil
	}
	return convert[T](name, value)
}

func convert[T any](name string, value any) (T, error) {
	var zero T

	if v, ok := value.(T); ok {
		return v, nil
	}

	if n, ok := value.(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return zero, &Error{Name: name, Reason: fmt.Sprintf("invalid number %q", n.String())}
		}
		value = f
	}

	f, ok := value.(float64)
	if !ok {
		return zero, &Error{Name: name, Reason: fmt.Sprintf("must be of type %T, got %T", zero, value)}
	}

	var out any
	switch any(zero).(type) {
	case int:
		if !integral(f, math.MinInt, math.MaxInt) {
			return zero, &Error{Name: name, Reason: fmt.Sprintf("must be a whole number, got %v", f)}
		}
		out = int(f)
	case int32:
		if !integral(f, math.MinInt32, math.MaxInt32) {
			return zero, &Error{Name: name, Reason: fmt.Sprintf("must be a 32-bit whole number, got %v", f)}
		}
		out = int32(f)
	case int64:
		if !integral(f, math.MinInt64, math.MaxInt64) {
			return zero, &Error{Name: name, Reason: fmt.Sprintf("must be a whole number, got %v", f)}
		}
		out = int64(f)
	case float64:
		out = f
	default:
		return zero, &Error{Name: name, Reason: fmt.Sprintf("must be of type %T, got %T", zero, value)}
	}
	return out.(T), nil
}

func integral(f, lo, hi float64) bool {
	return f == math.Trunc(f) && f >= lo && f <= hi
}
