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

// Package ambient provides the snapshot/restore facility the core uses to
// carry ambient state (request-scoped values, deadlines, trace IDs) from
// the goroutine that installs a callback to whichever goroutine ends up
// running it.
//
// Folly's RequestContext is a true thread-local: it is saved and restored
// implicitly around every callback invocation. Go has no equivalent (a
// goroutine can migrate between OS threads transparently, and nothing in
// this corpus fakes a thread-local to paper over that), so the facility
// here is realized as an explicit snapshot of a context.Context, handed to
// the callback as an argument rather than installed into hidden state. See
// DESIGN.md for the rationale.
package ambient

import "context"

// Snapshot is an opaque, captured ambient state. The core treats it
// opaquely: it only ever captures one (via Save) and hands it back out (via
// Context) around a callback invocation.
type Snapshot struct {
	ctx context.Context
}

// Save captures ctx as a Snapshot. A nil ctx is captured as
// context.Background(), matching the "no ambient state yet" case.
func Save(ctx context.Context) Snapshot {
	if ctx == nil {
		ctx = context.Background()
	}
	return Snapshot{ctx: ctx}
}

// Context returns the captured context.Context. Restoring a Snapshot around
// a callback invocation, in this realization, just means passing this value
// to the callback instead of reading it back out of thread-local storage.
func (s Snapshot) Context() context.Context {
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}
