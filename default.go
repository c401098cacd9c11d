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

	"github.com/asmsh/futurecore/outcome"
)

// Go runs fn in a new goroutine and returns a Future resolving to its
// return value, or to a failure Outcome wrapping either a returned error
// or a recovered panic. It is the Future/Promise equivalent of a plain
// `go` statement plus a sync.WaitGroup: the caller gets a handle back
// instead of having to invent its own signaling channel.
func Go[T any](fn func(ctx context.Context) (T, error)) Future[T] {
	return GoCtx(context.Background(), fn)
}

// GoCtx is Go, but fn runs under ctx instead of context.Background(). The
// context an installed callback receives is still the one passed to
// Install, not ctx.
func GoCtx[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) Future[T] {
	f, p := New[T]()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				_ = p.SetResult(outcome.Err[T](outcome.NewPanicFailure(r)))
				_ = p.Close()
			}
		}()

		v, err := fn(ctx)
		if err != nil {
			_ = p.SetResult(outcome.Err[T](outcome.NewFailure(err)))
		} else {
			_ = p.SetResult(outcome.Val(v))
		}
		_ = p.Close()
	}()
	return f
}

// Resolved returns a Future already resolved to v, with no goroutine
// involved: installing a callback on it dispatches inline, immediately.
func Resolved[T any](v T) Future[T] {
	f, p := New[T]()
	_ = p.SetResult(outcome.Val(v))
	_ = p.Close()
	return f
}

// Failed returns a Future already resolved to failure.
func Failed[T any](failure *outcome.Failure) Future[T] {
	f, p := New[T]()
	_ = p.SetResult(outcome.Err[T](failure))
	_ = p.Close()
	return f
}
