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

// Package futurecore provides the shared rendezvous object between a
// producer and a consumer of an eventual value, and the two handles
// (Future, Promise) built on top of it.
//
// A Future/Promise pair is created together, by New, and always shares one
// underlying core: the producer side (Promise) eventually supplies a
// result via SetResult; the consumer side (Future) eventually supplies a
// continuation via Install. Whichever of those two calls arrives second
// triggers the continuation, exactly once, either inline on the arriving
// goroutine or on a configured executor.
//
// A Future additionally carries an active flag (Deactivate/Activate), which
// lets the consumer suspend dispatch until it's ready to receive it, and an
// interrupt channel (Raise), an advisory, non-cancelling signal flowing
// back toward the producer. A Promise may install a handler for that
// signal (SetInterruptHandler).
//
// Both handles must be closed exactly once by their owner (Close), which
// releases that side's hold on the shared core; a Promise that is closed
// without ever calling SetResult synthesizes a BrokenPromise failure for
// any installed callback, rather than leaving it waiting forever.
//
// The state machine, refcounts, and dispatch logic live in the unexported
// internal/core package; this package is a thin, type-safe facade over it
// plus the two small combinators, CollectAll and Select, built purely from
// that facade's public surface.
package futurecore
