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

//go:build enable_futurecore_debug

package futurecore

import (
	"fmt"
	"os"

	"github.com/asmsh/futurecore/internal/core"
)

// DebugTracer returns a core.Tracer that prints every lifecycle event to
// stderr, prefixed with name. It only exists in builds tagged
// enable_futurecore_debug, so that a normal build never pays for the
// fmt.Fprintf call this wraps, not even behind a disabled flag check.
func DebugTracer(name string) core.Tracer {
	return func(e core.Event) {
		fmt.Fprintf(os.Stderr, "futurecore[%s]: %v state=%s\n", name, e.Kind, e.State)
	}
}
