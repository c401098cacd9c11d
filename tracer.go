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

import "github.com/asmsh/futurecore/internal/core"

// Trace installs a tracer on the Future/Promise pair's shared core. It must
// be called before either side is handed to another goroutine, since it
// writes the Tracer field directly with no synchronization of its own
// (matching the rest of this package's "owned by one side until shared"
// contract). The default build has no tracer installed anywhere; see
// DebugTracer for a build-tag-gated one that logs every event.
func Trace[T any](f Future[T], t core.Tracer) {
	f.core.Tracer = t
}
