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
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/asmsh/futurecore/executor"
	"github.com/asmsh/futurecore/internal/core"
	"github.com/asmsh/futurecore/outcome"
)

// ErrAlreadyClosed is returned by a second Close call on the same Future or
// Promise.
var ErrAlreadyClosed = errors.New("futurecore: already closed")

// Future is the consumer handle of a Future/Promise pair. The zero value is
// not usable; obtain one from New.
type Future[T any] struct {
	id     uuid.UUID
	core   *core.Core[T]
	closed *atomic.Bool
}

// ID identifies the shared core this Future and its sibling Promise were
// created with. It is purely observational: the dispatch logic never
// consults it.
func (f Future[T]) ID() uuid.UUID { return f.id }

// Install arms the consumer side: cb will run exactly once, with the
// eventual outcome, once both a result and a callback are present and this
// Future is active. ctx is snapshotted now and handed back to cb at
// invocation time (see the ambient package). Install may only be called
// once per Future.
func (f Future[T]) Install(ctx context.Context, cb func(ctx context.Context, result outcome.Outcome[T])) error {
	return f.core.InstallCallback(ctx, cb)
}

// SetExecutor configures the executor (and its priority hint) that the
// installed callback dispatches through. Must be called before Install, or
// not at all for inline dispatch on whichever goroutine arms the core.
func (f Future[T]) SetExecutor(ex executor.Executor, priority int8) {
	f.core.SetExecutor(ex, priority)
}

// Deactivate suppresses dispatch until a subsequent Activate.
func (f Future[T]) Deactivate() { f.core.Deactivate() }

// Activate re-enables dispatch and retries it immediately if both a result
// and a callback are already present.
func (f Future[T]) Activate() { f.core.Activate() }

// Raise delivers an advisory, non-cancelling interrupt toward the
// producer. It has no effect once a result is present, and at most the
// first call's failure is ever delivered.
func (f Future[T]) Raise(failure *outcome.Failure) { f.core.Raise(failure) }

// Ready reports whether a result has arrived yet.
func (f Future[T]) Ready() bool { return f.core.Ready() }

// TryGet returns the stored outcome if Ready, or a FutureNotReady failure
// otherwise.
func (f Future[T]) TryGet() (outcome.Outcome[T], error) {
	return f.core.TryGetResult()
}

// Close releases this Future's hold on the shared core. It must be called
// exactly once; a second call returns ErrAlreadyClosed.
func (f Future[T]) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return ErrAlreadyClosed
	}
	f.core.DetachConsumer()
	return nil
}

func (f Future[T]) String() string {
	return fmt.Sprintf("Future[%T]{id: %s}", *new(T), f.id)
}
