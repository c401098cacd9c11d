// Copyright 2020 Ahmad Sameh(asmsh)
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

package status

import (
	"fmt"
	"runtime"
	"sync/atomic"
)

// State is one point in the core's state lattice.
//
//	           setCallback                    setResult
//	Start ───────────────▶ OnlyCallback ──────────────▶ Armed ──▶ Done
//	  │                                                   ▲
//	  │ setResult                      setCallback        │
//	  └─────────▶ OnlyResult ──────────────────────────────┘
type State uint32

const (
	// Start is the zero value: neither a result nor a callback has arrived.
	Start State = iota
	// OnlyResult means setResult ran first; waiting on installCallback.
	OnlyResult
	// OnlyCallback means installCallback ran first; waiting on setResult.
	OnlyCallback
	// Armed means both arrived; dispatch has not yet fired.
	Armed
	// Done is terminal: the callback has been handed off (or is being handed
	// off, for the executor path) exactly once.
	Done

	// locked is a reserved sentinel that no real State value ever equals.
	// A Word holds this value for the duration that some goroutine has it
	// locked; it is never observable by Load or by a transition function.
	locked State = 1<<32 - 1
)

func (s State) String() string {
	switch s {
	case Start:
		return "Start"
	case OnlyResult:
		return "OnlyResult"
	case OnlyCallback:
		return "OnlyCallback"
	case Armed:
		return "Armed"
	case Done:
		return "Done"
	case locked:
		return "<locked>"
	default:
		return fmt.Sprintf("State(%d)", uint32(s))
	}
}

// Word is the packed, lock-guarded state word. The zero value is a valid
// Word in state Start.
type Word struct {
	v uint32
}

// Load returns the current state, waiting out any in-progress transition.
// Safe to call from any goroutine, including one holding no lock.
func (w *Word) Load() State {
	cs := atomic.LoadUint32(&w.v)
	for State(cs) == locked {
		runtime.Gosched()
		cs = atomic.LoadUint32(&w.v)
	}
	return State(cs)
}

// Lock acquires the spin lock and returns the state as of acquisition. It
// must be paired with exactly one call to Unlock.
func (w *Word) Lock() State {
	cs := atomic.SwapUint32(&w.v, uint32(locked))
	for State(cs) == locked {
		runtime.Gosched()
		cs = atomic.SwapUint32(&w.v, uint32(locked))
	}
	return State(cs)
}

// Unlock commits next as the new state and releases the lock. Any writes a
// caller performed between Lock and Unlock happen-before every subsequent
// Load/Lock that observes next.
func (w *Word) Unlock(next State) {
	if !atomic.CompareAndSwapUint32(&w.v, uint32(locked), uint32(next)) {
		panic("futurecore: internal: state word unlocked without holding the lock")
	}
}

// Transition runs fn with the state as of lock acquisition. fn returns the
// next state to commit and an optional publish func, run while the lock is
// still held, to write whatever field is moving the state forward (result
// or callback) atomically with the transition. fn must not call user code
// and must not itself call Lock/Unlock/Load on w.
func (w *Word) Transition(fn func(cur State) (next State, publish func())) (committed State) {
	cur := w.Lock()
	next, publish := fn(cur)
	if publish != nil {
		publish()
	}
	w.Unlock(next)
	return next
}
