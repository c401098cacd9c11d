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

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/asmsh/futurecore/ambient"
	"github.com/asmsh/futurecore/executor"
	"github.com/asmsh/futurecore/internal/status"
	"github.com/asmsh/futurecore/outcome"
)

// liveCount is the counting-allocator stand-in SPEC_FULL.md's test-tooling
// section calls for: incremented in New, decremented when the last
// attachment releases. It exists purely so tests can assert "no leak, no
// double free" without a real allocator hook.
var liveCount atomic.Int64

// LiveCount reports how many Cores are currently attached to at least one
// owner or in-flight task. Tests use this to check a scenario leaves no
// Core stranded.
func LiveCount() int64 { return liveCount.Load() }

// Callback is the consumer-supplied continuation. It receives the restored
// ambient context alongside the outcome, since this module realizes
// "restore the ambient context around invocation" as an explicit argument
// rather than a thread-local (see ambient package doc).
type Callback[T any] func(ctx context.Context, result outcome.Outcome[T])

// Core is the shared rendezvous object between a producer and a consumer
// handle. The zero value is not usable; construct with New.
type Core[T any] struct {
	// Hot dispatch fields: kept adjacent, per the spec's cache-line intent
	// note, so the common "both already present" path touches one cache
	// line beyond the state word itself.
	callback Callback[T]
	result   outcome.Outcome[T]

	state status.Word

	executor executor.Executor
	priority int8
	context  ambient.Snapshot

	attached           atomic.Int32
	callbackReferences atomic.Int32
	active             atomic.Bool

	interruptMu      sync.Mutex
	interrupt        *outcome.Failure
	interruptHandler func(*outcome.Failure)
	handlerPresent   atomic.Bool

	// Tracer, if set before the Core is shared with any other goroutine,
	// observes every state transition and lifecycle event from then on
	// (EventCreated, emitted inside New, is never seen). Left nil, it
	// costs one nil check per event and never allocates.
	Tracer Tracer
}

// New constructs a Core in state Start, attached count 2 (one per handle),
// and active.
func New[T any]() *Core[T] {
	c := &Core[T]{}
	c.attached.Store(2)
	c.active.Store(true)
	liveCount.Add(1)
	c.trace(Event{Kind: EventCreated, State: status.Start})
	return c
}

func (c *Core[T]) trace(e Event) {
	if c.Tracer != nil {
		c.Tracer(e)
	}
}

// InstallCallback is the consumer's half of arming the core. It may be
// called at most once; calling it again once state has left Start fails
// with a LogicError, matching spec section 4.2.
func (c *Core[T]) InstallCallback(ctx context.Context, cb Callback[T]) error {
	if cb == nil {
		panic("futurecore: nil callback passed to InstallCallback")
	}
	snap := ambient.Save(ctx)

	var failure *outcome.Failure
	armed := false
	committed := c.state.Transition(func(cur status.State) (status.State, func()) {
		switch cur {
		case status.Start:
			return status.OnlyCallback, func() {
				c.context = snap
				c.callback = cb
			}
		case status.OnlyResult:
			armed = true
			return status.Armed, func() {
				c.context = snap
				c.callback = cb
			}
		default:
			failure = outcome.LogicError("setCallback called twice")
			return cur, nil
		}
	})
	if failure != nil {
		return failure
	}
	c.trace(Event{Kind: EventTransition, State: committed})
	if armed {
		c.maybeDispatch()
	}
	return nil
}

// SetExecutor assigns the executor and priority hint dispatch will use.
// Per spec section 4.2 this must only be called from the consumer side
// while no dispatch is possible: states Start, OnlyResult, or Done once the
// callback invocation it triggered has already returned. That precondition
// is documented, not enforced (see DESIGN.md's Open Question resolution).
func (c *Core[T]) SetExecutor(ex executor.Executor, priority int8) {
	c.executor = ex
	c.priority = priority
}

// Deactivate clears the active flag. A pure store: it never itself affects
// an in-flight Armed->Done attempt, it only prevents future ones until
// Activate is observed.
func (c *Core[T]) Deactivate() {
	c.active.Store(false)
}

// Activate sets the active flag and retries the Armed->Done transition.
func (c *Core[T]) Activate() {
	c.active.Store(true)
	c.maybeDispatch()
}

// DetachConsumer ensures active is true (resolving any pending Armed state)
// and releases the consumer's attachment.
func (c *Core[T]) DetachConsumer() {
	c.Activate()
	c.detachOne()
}

// SetResult is the producer's half of arming the core. Only callable once;
// a second call fails with a LogicError, and the first outcome is
// retained.
func (c *Core[T]) SetResult(o outcome.Outcome[T]) error {
	var failure *outcome.Failure
	armed := false
	committed := c.state.Transition(func(cur status.State) (status.State, func()) {
		switch cur {
		case status.Start:
			return status.OnlyResult, func() { c.result = o }
		case status.OnlyCallback:
			armed = true
			return status.Armed, func() { c.result = o }
		default:
			failure = outcome.LogicError("setResult called twice")
			return cur, nil
		}
	})
	if failure != nil {
		return failure
	}
	c.trace(Event{Kind: EventTransition, State: committed})
	if armed {
		c.maybeDispatch()
	}
	return nil
}

// DetachProducer synthesizes a BrokenPromise outcome if no result was ever
// set, then releases the producer's attachment. typeName names the value
// type T, for the BrokenPromise message.
func (c *Core[T]) DetachProducer(typeName string) {
	if !c.HasResult() {
		_ = c.SetResult(outcome.Err[T](outcome.BrokenPromise(typeName)))
	}
	c.detachOne()
}

// HasResult reports whether a result has arrived. Safe from any goroutine.
func (c *Core[T]) HasResult() bool {
	switch c.state.Load() {
	case status.OnlyResult, status.Armed, status.Done:
		return true
	default:
		return false
	}
}

// Ready is an alias for HasResult, matching spec section 4.5's naming.
func (c *Core[T]) Ready() bool { return c.HasResult() }

// State returns a snapshot of the state machine. Exposed purely for
// observability (String()-ing a handle, tests); nothing in this module
// branches on a State value read back in from here.
func (c *Core[T]) State() status.State { return c.state.Load() }

// TryGetResult returns the stored outcome if Ready, or ErrFutureNotReady
// otherwise.
func (c *Core[T]) TryGetResult() (outcome.Outcome[T], error) {
	if !c.HasResult() {
		var zero outcome.Outcome[T]
		return zero, outcome.ErrFutureNotReady
	}
	return c.result, nil
}

// maybeDispatch attempts the Armed->Done transition. It is a no-op unless
// state is Armed and active is set; both setResult/installCallback (on the
// transition that lands on Armed) and Activate call this.
func (c *Core[T]) maybeDispatch() {
	fired := false
	committed := c.state.Transition(func(cur status.State) (status.State, func()) {
		if cur != status.Armed || !c.active.Load() {
			return cur, nil
		}
		fired = true
		return status.Done, nil
	})
	if !fired {
		return
	}
	c.trace(Event{Kind: EventTransition, State: committed})
	c.dispatch()
}

// dispatch runs outside the state-machine lock: the transition above
// already committed Done, so exactly one goroutine ever reaches here for a
// given Core.
func (c *Core[T]) dispatch() {
	ex := c.executor
	ctx := c.context.Context()
	cb := c.callback
	res := c.result

	if ex == nil {
		c.attached.Add(1)
		defer c.detachOne()
		cb(ctx, res)
		c.callback = nil
		c.trace(Event{Kind: EventDispatched, State: status.Done})
		return
	}

	// Executor configured: the callback may outlive this stack. Two scoped
	// references are taken out up front -- one for this frame, one moved
	// into the enqueued task -- so that whichever side runs last releases
	// the core and the callback closure exactly once. The task's reference
	// is released only when the task runs, or here when Enqueue returns an
	// error; a task the executor accepts and then drops without running
	// never releases it, and the core's attached count then never reaches
	// zero.
	c.attached.Add(2)
	c.callbackReferences.Add(2)
	localGuard := &callbackRef[T]{core: c}
	taskGuard := &callbackRef[T]{core: c}

	priority := c.priority
	task := func() {
		defer taskGuard.release()
		cb(ctx, res)
	}

	var err error
	if ex.NumPriorities() <= 1 {
		err = ex.Enqueue(task)
	} else {
		err = ex.EnqueueWithPriority(task, priority)
	}

	if err != nil {
		// The executor never accepted task, so taskGuard's pair must be
		// released here instead of inside it. This is the one case where
		// an already-set result is overwritten: the enqueue failure must
		// reach the consumer, and the callback must still run exactly
		// once.
		taskGuard.release()
		localGuard.release()
		overwritten := outcome.Err[T](outcome.NewFailure(err))
		c.result = overwritten
		cb(ctx, overwritten)
		c.trace(Event{Kind: EventDispatched, State: status.Done})
		return
	}

	localGuard.release()
	c.trace(Event{Kind: EventDispatched, State: status.Done})
}

// callbackRef is Folly's CoreAndCallbackReference: on release, it decrements
// callbackReferences (clearing the callback once it reaches zero) and then
// releases one attachment. Releasing twice is harmless but only ever
// happens once per guard in practice; the sync.Once is defensive, not load
// bearing.
type callbackRef[T any] struct {
	core *Core[T]
	once sync.Once
}

func (r *callbackRef[T]) release() {
	r.once.Do(func() {
		r.core.derefCallback()
		r.core.detachOne()
	})
}

func (c *Core[T]) derefCallback() {
	if c.callbackReferences.Add(-1) == 0 {
		c.callback = nil
	}
}

func (c *Core[T]) detachOne() {
	if c.attached.Add(-1) == 0 {
		c.trace(Event{Kind: EventDisposed, State: status.Done})
		liveCount.Add(-1)
	}
}
