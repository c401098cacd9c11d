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
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/asmsh/futurecore/outcome"
)

// IndexedOutcome pairs an Outcome with the position, within the slice of
// Futures passed to Select, of the Future it came from.
type IndexedOutcome[T any] struct {
	Index int
	outcome.Outcome[T]
}

// CollectAll returns a Future that resolves once every future in futures
// has, to the slice of their outcomes in the same order futures were
// given. An empty futures resolves immediately to an empty slice.
//
// CollectAll takes ownership of each Future it's given: it installs a
// callback on every one of them and Closes each as soon as that callback
// has run, releasing its consumer-side attachment. Callers must not also
// Close a Future passed to CollectAll.
func CollectAll[T any](futures ...Future[T]) Future[[]outcome.Outcome[T]] {
	out, in := New[[]outcome.Outcome[T]]()

	if len(futures) == 0 {
		_ = in.SetResult(outcome.Val([]outcome.Outcome[T]{}))
		_ = in.Close()
		return out
	}

	results := make([]outcome.Outcome[T], len(futures))
	var remaining atomic.Int64
	remaining.Store(int64(len(futures)))

	for i, fut := range futures {
		i, fut := i, fut
		err := fut.Install(context.Background(), func(_ context.Context, o outcome.Outcome[T]) {
			results[i] = o
			defer func() { _ = fut.Close() }()
			if remaining.Add(-1) == 0 {
				_ = in.SetResult(outcome.Val(results))
				_ = in.Close()
			}
		})
		if err != nil {
			_ = in.SetResult(outcome.Err[[]outcome.Outcome[T]](outcome.NewFailure(err)))
			_ = in.Close()
			break
		}
	}
	return out
}

// Select returns a Future that resolves to the outcome of whichever future
// in futures finishes first, tagged with its index. Futures are armed in a
// shuffled order rather than always left to right; since arming is
// non-blocking this has no effect on which Future can win, it only avoids
// always favoring index 0 when several are already resolved by the time
// Select is called.
//
// Select takes ownership of each Future it's given: it installs a callback
// on every one of them and Closes each as soon as that callback has run,
// releasing its consumer-side attachment, whether or not that Future was
// the one Select resolved to. Callers must not also Close a Future passed
// to Select.
func Select[T any](futures ...Future[T]) Future[IndexedOutcome[T]] {
	out, in := New[IndexedOutcome[T]]()

	n := len(futures)
	if n == 0 {
		_ = in.SetResult(outcome.Err[IndexedOutcome[T]](outcome.LogicError("Select called with no futures")))
		_ = in.Close()
		return out
	}

	order := rand.Perm(n)

	var once sync.Once
	for _, idx := range order {
		idx, fut := idx, futures[idx]
		err := fut.Install(context.Background(), func(_ context.Context, o outcome.Outcome[T]) {
			defer func() { _ = fut.Close() }()
			once.Do(func() {
				_ = in.SetResult(outcome.Val(IndexedOutcome[T]{Index: idx, Outcome: o}))
				_ = in.Close()
			})
		})
		if err != nil {
			_ = fut.Close()
			once.Do(func() {
				_ = in.SetResult(outcome.Err[IndexedOutcome[T]](outcome.NewFailure(err)))
				_ = in.Close()
			})
		}
	}
	return out
}
