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

package executor_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/asmsh/futurecore/executor"
)

func TestInline_RunsSynchronously(t *testing.T) {
	var ran bool
	require.NoError(t, executor.Inline{}.Enqueue(func() { ran = true }))
	require.True(t, ran)
	require.Equal(t, 1, executor.Inline{}.NumPriorities())
}

func TestPool_RunsAllEnqueuedTasks(t *testing.T) {
	p := executor.NewPool(executor.PoolConfig{Workers: 4, Priorities: 3})
	defer p.Close()

	const n = 500
	var count atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		require.NoError(t, p.Enqueue(func() {
			count.Add(1)
			wg.Done()
		}))
	}
	wg.Wait()
	require.Equal(t, int64(n), count.Load())
}

func TestPool_HigherPriorityRunsFirstWhenBacklogged(t *testing.T) {
	p := executor.NewPool(executor.PoolConfig{Workers: 1, Priorities: 3})
	defer p.Close()

	// block the single worker so tasks pile up across lanes before any run.
	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(1)
	require.NoError(t, p.EnqueueWithPriority(func() {
		started.Done()
		<-release
	}, 1))
	started.Wait()

	var order []int
	var mu sync.Mutex
	record := func(v int) executor.Task {
		return func() {
			mu.Lock()
			order = append(order, v)
			mu.Unlock()
		}
	}
	require.NoError(t, p.EnqueueWithPriority(record(0), 0))
	require.NoError(t, p.EnqueueWithPriority(record(2), 2))
	require.NoError(t, p.EnqueueWithPriority(record(1), 1))

	close(release)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 3
	}, time.Second, time.Millisecond)

	require.Equal(t, []int{2, 1, 0}, order)
}

func TestPool_EnqueueAfterCloseFails(t *testing.T) {
	p := executor.NewPool(executor.PoolConfig{Workers: 1})
	p.Close()
	require.ErrorIs(t, p.Enqueue(func() {}), executor.ErrClosed)
}

func TestPool_BoundsInFlightTasks(t *testing.T) {
	p := executor.NewPool(executor.PoolConfig{Workers: 1, MaxInFlight: 2})
	defer p.Close()

	release := make(chan struct{})
	var started sync.WaitGroup
	started.Add(1)
	require.NoError(t, p.Enqueue(func() {
		started.Done()
		<-release
	}))
	started.Wait()

	require.NoError(t, p.Enqueue(func() {}))

	acquired := make(chan struct{})
	go func() {
		_ = p.Enqueue(func() {})
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("third Enqueue should have blocked on the in-flight semaphore")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("third Enqueue never unblocked after the semaphore was released")
	}
}
