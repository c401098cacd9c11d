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

package core

import "github.com/asmsh/futurecore/internal/status"

// EventKind distinguishes the handful of lifecycle events a Tracer can
// observe.
type EventKind int

const (
	// EventCreated fires once, from New. New emits it before any Tracer can
	// have been set, so a Tracer installed afterwards never receives it.
	EventCreated EventKind = iota
	// EventTransition fires on every committed state-machine transition,
	// including the Armed->Done one.
	EventTransition
	// EventDispatched fires once the callback invocation for a core has
	// been handed off (inline) or handled (executor, including the
	// enqueue-failure path).
	EventDispatched
	// EventDisposed fires once, when attached reaches zero.
	EventDisposed
)

// Event is the value handed to a Tracer. It carries no reference to the
// Core itself -- Tracer is a pure observability seam, never a hook a
// callback could use to reach back into the core it was attached to.
type Event struct {
	Kind  EventKind
	State status.State
}

// Tracer observes a Core's lifecycle. A nil Tracer (the default) costs a
// single nil check per event and nothing else: this module never logs on
// its own behalf (see SPEC_FULL.md's ambient stack section).
type Tracer func(Event)

// String implements fmt.Stringer so Event{}.Kind prints as a word instead
// of a bare int in log lines and test failure output.
func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventTransition:
		return "transition"
	case EventDispatched:
		return "dispatched"
	case EventDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}
