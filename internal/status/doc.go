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

// Package status holds the packed state word used to drive the core's
// finite state machine, and the spin-lock that guards it.
//
// The word holds one of 5 mutually exclusive states:
//
//	Start, OnlyResult, OnlyCallback, Armed, Done
//
// Mutating the word is not a plain atomic store: a caller must Lock (which
// returns the state as of the lock acquisition), decide the next state, and
// Unlock with it. This gives the caller a critical section in which to
// publish whatever field (the result, or the callback) is moving the state
// forward, so that the publish happens-before any reader observes the new
// state.
//
// The lock is a CAS-swap spin lock, not a condition variable: acquiring it
// swaps the word for a reserved sentinel value, and spins (yielding to the
// scheduler between attempts) until the previous value it observes isn't
// that sentinel. This keeps the whole type a single machine word with no
// embedded mutex, which is the point: critical sections here are a handful
// of stores, so a spin lock never parks.
package status
