// Copyright 2023 Ahmad Sameh(asmsh)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package outcome holds the value-or-failure container the core hands to
// callbacks, and the failure descriptor used throughout this module.
package outcome

import "fmt"

// Outcome is either a T or a *Failure, never both and never neither once
// constructed. There is no default/empty Outcome value: a slot that hasn't
// been set is represented by the absence of an Outcome, not by a zero one.
type Outcome[T any] struct {
	val T
	err *Failure
}

// Val constructs a successful Outcome.
func Val[T any](v T) Outcome[T] {
	return Outcome[T]{val: v}
}

// Err constructs a failed Outcome.
func Err[T any](f *Failure) Outcome[T] {
	if f == nil {
		panic("outcome: nil Failure passed to Err")
	}
	return Outcome[T]{err: f}
}

// Ok reports whether this Outcome holds a value rather than a failure.
func (o Outcome[T]) Ok() bool { return o.err == nil }

// Value returns the held value, or the zero value of T if this Outcome holds
// a failure instead.
func (o Outcome[T]) Value() T { return o.val }

// Failure returns the held failure, or nil if this Outcome holds a value.
func (o Outcome[T]) Failure() *Failure { return o.err }

// Unpack is the common consumption pattern: get the value and an error,
// following Go convention, from a single Outcome value.
func (o Outcome[T]) Unpack() (T, error) {
	if o.err == nil {
		return o.val, nil
	}
	return o.val, o.err
}

func (o Outcome[T]) String() string {
	if o.err == nil {
		return fmt.Sprintf("Val(%v)", o.val)
	}
	return fmt.Sprintf("Err(%s)", o.err.Error())
}
