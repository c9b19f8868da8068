/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package outcome provides a tagged result for calls to external collaborators
// that may succeed, find nothing, or fail.
//
// Operations keep the three cases apart internally and only flatten them into
// their external shape at the tool boundary.
package outcome

import "fmt"

// State tags a Result.
type State int

const (
	// StateOK means the call produced a value.
	StateOK State = iota
	// StateAbsent means the call succeeded but there was nothing to return.
	StateAbsent
	// StateErr means the call failed.
	StateErr
)

func (s State) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateAbsent:
		return "absent"
	case StateErr:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result holds exactly one of a value, an absence, or an error.
// The zero Result is OK with the zero value of T.
type Result[T any] struct {
	state State
	value T
	err   error
}

// OK returns a successful Result carrying v.
func OK[T any](v T) Result[T] {
	return Result[T]{state: StateOK, value: v}
}

// Absent returns a Result signaling that there was no data.
func Absent[T any]() Result[T] {
	return Result[T]{state: StateAbsent}
}

// Err returns a failed Result. A nil err is recorded as an absence.
func Err[T any](err error) Result[T] {
	if err == nil {
		return Absent[T]()
	}
	return Result[T]{state: StateErr, err: err}
}

// State reports which case r holds.
func (r Result[T]) State() State { return r.state }

// Value returns the carried value and whether r is OK.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.state == StateOK
}

// Err returns the failure, or nil unless r is StateErr.
func (r Result[T]) Err() error { return r.err }

// IsOK reports whether r carries a value.
func (r Result[T]) IsOK() bool { return r.state == StateOK }

// IsAbsent reports whether r signals no data.
func (r Result[T]) IsAbsent() bool { return r.state == StateAbsent }

// IsErr reports whether r carries a failure.
func (r Result[T]) IsErr() bool { return r.state == StateErr }

// Fold collapses r into a single value by applying the function matching its state.
func Fold[T, R any](r Result[T], ok func(T) R, absent func() R, failed func(error) R) R {
	switch r.state {
	case StateOK:
		return ok(r.value)
	case StateAbsent:
		return absent()
	default:
		return failed(r.err)
	}
}
