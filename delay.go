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
	"time"

	"github.com/asmsh/futurecore/outcome"
)

// Delay returns a Future that resolves to the same Outcome as f, but no
// earlier than d after f itself resolves. Unlike the teacher's DelayCond
// (separate on-success/on-error/on-panic gates), every Outcome is delayed
// uniformly here: this module's Outcome doesn't distinguish a panic from
// any other failure at the type level (see outcome.Failure.PanicValue), so
// there is nothing left to gate on independently.
//
// Delay takes ownership of f: it installs a callback on it and Closes it
// once that callback has run. Callers must not also Close f.
func Delay[T any](f Future[T], d time.Duration) Future[T] {
	out, in := New[T]()
	err := f.Install(context.Background(), func(_ context.Context, o outcome.Outcome[T]) {
		defer func() { _ = f.Close() }()
		time.AfterFunc(d, func() {
			_ = in.SetResult(o)
			_ = in.Close()
		})
	})
	if err != nil {
		_ = in.SetResult(outcome.Err[T](outcome.NewFailure(err)))
		_ = in.Close()
	}
	return out
}
