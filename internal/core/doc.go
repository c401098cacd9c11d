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

// Package core holds Core, the shared rendezvous object a Future and a
// Promise jointly own. It is the direct implementation of the state
// machine, refcounts, and dispatch logic the root package's public handles
// are built on top of; nothing outside this module's own packages is meant
// to import it.
//
// A Core is reached through two independent handles, producer and
// consumer, and carries: the five-state FSM in internal/status, a result
// slot and a callback slot (published atomically with the FSM transition
// that needs them), an executor reference with a priority hint, a captured
// ambient.Snapshot, an interrupt slot guarded by its own mutex, and two
// refcounts governing when the Core and the callback closure it holds are
// released.
//
// The Armed -> Done transition is the one point at which the callback
// fires, and it fires exactly once: whichever call (setResult or
// installCallback) is the one that lands on Armed attempts the dispatch
// immediately, gated by the active flag; deactivate/activate let the
// consumer suspend and resume that gate.
package core
