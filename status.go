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

import "github.com/asmsh/futurecore/internal/status"

// State re-exports the shared core's state-machine value, so callers can
// observe it (logging, tests) without this package exposing internal/core
// itself.
type State = status.State

// State returns a snapshot of the Future's (and its sibling Promise's)
// state machine: one of Start, OnlyResult, OnlyCallback, Armed, or Done.
// Purely observational -- nothing in this package branches on a State
// value read back in from here.
func (f Future[T]) State() State { return f.core.State() }

// Done reports whether dispatch has already fired for this Future.
func (f Future[T]) Done() bool { return f.core.State() == status.Done }
