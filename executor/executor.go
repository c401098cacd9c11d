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

// Package executor holds the scheduler abstraction the core dispatches
// callbacks through, and two implementations of it.
package executor

import "errors"

// ErrClosed is returned by Enqueue/EnqueueWithPriority once an Executor has
// been closed.
var ErrClosed = errors.New("executor: closed")

// Task is a unit of work handed to an Executor. It takes no arguments and
// returns nothing; any result it needs to communicate, it communicates by
// closing over the caller's state (this is exactly the nullary task shape
// the core wraps its callback invocation in).
type Task func()

// Executor is the scheduling collaborator the core depends on. It never
// sees the core's result or callback directly, only the Task the core
// wraps them in.
//
// Enqueue may fail by returning an error instead of scheduling task; the
// core treats that as an enqueue failure and converts it to a failure
// Outcome delivered to the callback inline (see the core's dispatch logic).
type Executor interface {
	// Enqueue schedules task to run, using whatever the Executor's default
	// priority is.
	Enqueue(task Task) error

	// EnqueueWithPriority schedules task to run at the given priority. The
	// meaning of priority (higher-is-more-urgent vs. lower-is-more-urgent,
	// and its valid range) is Executor-specific; callers that only care
	// about "some default priority" should prefer Enqueue.
	EnqueueWithPriority(task Task, priority int8) error

	// NumPriorities reports how many distinct priority levels this Executor
	// honors. An Executor that ignores priority entirely reports 1, in
	// which case callers should prefer the plain Enqueue entry point.
	NumPriorities() int
}

// Inline runs every task synchronously, inside the call to Enqueue. It
// never fails and never has more than one priority level.
//
// Note that an Inline Executor is not the same thing as no Executor at all:
// the core's "no executor configured" dispatch path (a direct inline call
// with no Task wrapping) is a distinct, cheaper path from "Executor
// configured, and that Executor happens to be Inline".
type Inline struct{}

func (Inline) Enqueue(task Task) error                     { task(); return nil }
func (Inline) EnqueueWithPriority(task Task, _ int8) error { task(); return nil }
func (Inline) NumPriorities() int                          { return 1 }
