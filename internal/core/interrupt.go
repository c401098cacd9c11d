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

import "github.com/asmsh/futurecore/outcome"

// Raise delivers an advisory interrupt toward the producer. It is silently
// ignored once a result is present, and silently ignored on every call
// after the first that actually stores one: interrupts are set at most
// once. If a handler is already installed, it runs synchronously, inside
// the interrupt lock, before Raise returns.
func (c *Core[T]) Raise(failure *outcome.Failure) {
	if failure == nil {
		panic("futurecore: nil failure passed to Raise")
	}
	if c.HasResult() {
		return
	}

	c.interruptMu.Lock()
	defer c.interruptMu.Unlock()

	if c.HasResult() || c.interrupt != nil {
		return
	}
	c.interrupt = failure
	if c.handlerPresent.Load() {
		c.interruptHandler(failure)
	}
}

// SetInterruptHandler installs the producer's interrupt handler. If a
// result is already present it does nothing. If an interrupt has already
// been raised, h runs synchronously with it and is not retained. Otherwise
// h is stored and the handler-present fast-path flag is set.
func (c *Core[T]) SetInterruptHandler(h func(*outcome.Failure)) {
	if h == nil {
		panic("futurecore: nil handler passed to SetInterruptHandler")
	}

	c.interruptMu.Lock()
	defer c.interruptMu.Unlock()

	if c.HasResult() {
		return
	}
	if c.interrupt != nil {
		h(c.interrupt)
		return
	}
	c.interruptHandler = h
	c.handlerPresent.Store(true)
}
