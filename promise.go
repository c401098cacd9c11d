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

package futurecore

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/asmsh/futurecore/internal/core"
	"github.com/asmsh/futurecore/outcome"
)

// Promise is the producer handle of a Future/Promise pair. The zero value
// is not usable; obtain one from New.
type Promise[T any] struct {
	id       uuid.UUID
	core     *core.Core[T]
	closed   *atomic.Bool
	typeName string
}

// New creates a Future/Promise pair sharing one core, in state Start,
// active, tagged with a freshly generated id shared by both handles.
func New[T any]() (Future[T], Promise[T]) {
	c := core.New[T]()
	id := uuid.New()
	var zero T
	return Future[T]{id: id, core: c, closed: new(atomic.Bool)},
		Promise[T]{id: id, core: c, closed: new(atomic.Bool), typeName: fmt.Sprintf("%T", zero)}
}

// ID identifies the shared core; see Future.ID.
func (p Promise[T]) ID() uuid.UUID { return p.id }

// SetResult arms the producer side. Only callable once; a second call
// returns a LogicError and the first outcome is retained.
func (p Promise[T]) SetResult(o outcome.Outcome[T]) error {
	return p.core.SetResult(o)
}

// SetInterruptHandler installs h to run when the consumer Raises an
// interrupt. If one was already raised, h runs synchronously, immediately,
// with it.
func (p Promise[T]) SetInterruptHandler(h func(failure *outcome.Failure)) {
	p.core.SetInterruptHandler(h)
}

// Close releases this Promise's hold on the shared core. If no result was
// ever set, a BrokenPromise failure is synthesized for any installed
// callback first. Must be called exactly once; a second call returns
// ErrAlreadyClosed. Close must not run concurrently with SetResult on the
// same Promise: nothing checks for that at run time.
func (p Promise[T]) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return ErrAlreadyClosed
	}
	p.core.DetachProducer(p.typeName)
	return nil
}

func (p Promise[T]) String() string {
	return fmt.Sprintf("Promise[%s]{id: %s}", p.typeName, p.id)
}
