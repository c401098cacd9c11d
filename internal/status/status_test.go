// Copyright 2020 Ahmad Sameh(asmsh)
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

package status

import (
	"sync"
	"testing"
)

func TestWord_ZeroValueIsStart(t *testing.T) {
	var w Word
	if got := w.Load(); got != Start {
		t.Fatalf("zero value Word.Load() = %v, want %v", got, Start)
	}
}

func TestWord_TransitionPublishesBeforeCommit(t *testing.T) {
	var w Word
	var published int
	w.Transition(func(cur State) (State, func()) {
		if cur != Start {
			t.Fatalf("cur = %v, want %v", cur, Start)
		}
		return OnlyResult, func() { published = 42 }
	})
	if published != 42 {
		t.Fatalf("publish callback did not run under the lock")
	}
	if got := w.Load(); got != OnlyResult {
		t.Fatalf("Load() = %v, want %v", got, OnlyResult)
	}
}

func TestWord_UnlockWithoutLockPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic unlocking a Word that was never locked")
		}
	}()
	var w Word
	w.Unlock(Done)
}

func TestWord_ConcurrentTransitionsAreSerialized(t *testing.T) {
	var w Word
	const n = 200
	var wg sync.WaitGroup
	wg.Add(n)
	seen := make(chan State, n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			cur := w.Transition(func(cur State) (State, func()) {
				return cur, nil
			})
			seen <- cur
		}()
	}
	wg.Wait()
	close(seen)
	for s := range seen {
		if s != Start {
			t.Fatalf("observed state %v, want %v (no-op transitions shouldn't move the state)", s, Start)
		}
	}
}

func BenchmarkWord_Transition(b *testing.B) {
	var w Word
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Transition(func(cur State) (State, func()) { return cur, nil })
	}
}

func BenchmarkWord_Transition_Parallel(b *testing.B) {
	var w Word
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			w.Transition(func(cur State) (State, func()) { return cur, nil })
		}
	})
}

func BenchmarkWord_Load(b *testing.B) {
	var w Word
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Load()
	}
}
