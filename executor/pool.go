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

package executor

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"
	"golang.org/x/sync/semaphore"
)

// PoolConfig configures a Pool. The zero value is valid and picks sane
// defaults, following this module's struct-of-options convention (see
// PipelineConfig-style configs in the teacher repo).
type PoolConfig struct {
	// Workers is the number of worker goroutines. Defaults to
	// runtime.NumCPU() when <= 0.
	Workers int

	// Priorities is the number of distinct priority lanes each worker
	// keeps. Defaults to 3 when <= 0. Lane index NumPriorities()-1 is the
	// most urgent; lane 0 is the least.
	Priorities int

	// MaxInFlight bounds the number of tasks that have been enqueued but
	// have not yet finished running (queued plus running), across the whole
	// pool. Enqueue blocks (on the calling goroutine) until a slot frees up.
	// A value <= 0 means unbounded.
	MaxInFlight int
}

// Pool is a fixed-size worker pool, grounded on the worker/local-queue/
// global-queue-fallback shape of a lock-free executor, adapted here to use
// a plain mutex-guarded ring queue per (worker, priority lane) pair instead
// of a lock-free ring, since the core never enqueues at a rate that makes
// the lock contention observable. There is no global queue: each task is
// assigned to one worker, round-robin, and only that worker runs it.
type Pool struct {
	workers    []*poolWorker
	priorities int
	sem        *semaphore.Weighted
	closed     atomic.Bool
	closeOnce  sync.Once
	closeCh    chan struct{}
	wg         sync.WaitGroup
	next       atomic.Uint64 // round-robin worker selection
}

// NewPool starts a Pool and its worker goroutines.
func NewPool(cfg PoolConfig) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	priorities := cfg.Priorities
	if priorities <= 0 {
		priorities = 3
	}

	p := &Pool{
		priorities: priorities,
		closeCh:    make(chan struct{}),
	}
	if cfg.MaxInFlight > 0 {
		p.sem = semaphore.NewWeighted(int64(cfg.MaxInFlight))
	}

	p.workers = make([]*poolWorker, workers)
	for i := range p.workers {
		w := &poolWorker{
			lanes: make([]*lane, priorities),
			wake:  make(chan struct{}, 1),
		}
		for l := range w.lanes {
			w.lanes[l] = &lane{q: queue.New()}
		}
		p.workers[i] = w
		p.wg.Add(1)
		go p.runWorker(w)
	}
	return p
}

// NumPriorities implements Executor.
func (p *Pool) NumPriorities() int { return p.priorities }

// Enqueue implements Executor, scheduling task at the middle priority lane.
func (p *Pool) Enqueue(task Task) error {
	return p.EnqueueWithPriority(task, int8(p.priorities/2))
}

// EnqueueWithPriority implements Executor. priority is clamped into
// [0, NumPriorities()-1].
func (p *Pool) EnqueueWithPriority(task Task, priority int8) error {
	if p.closed.Load() {
		return ErrClosed
	}
	if p.sem != nil {
		if err := p.sem.Acquire(context.Background(), 1); err != nil {
			return err
		}
	}

	lane := clampLane(int(priority), p.priorities)
	w := p.workers[p.next.Add(1)%uint64(len(p.workers))]

	wrapped := task
	if p.sem != nil {
		wrapped = func() {
			defer p.sem.Release(1)
			task()
		}
	}

	w.lanes[lane].push(wrapped)
	select {
	case w.wake <- struct{}{}:
	default:
	}
	return nil
}

// Close stops accepting new tasks and waits for in-flight and already
// queued tasks to drain.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.closeCh)
	})
	p.wg.Wait()
}

func clampLane(priority, n int) int {
	if priority < 0 {
		return 0
	}
	if priority >= n {
		return n - 1
	}
	return priority
}

// lane is one priority level's worth of pending tasks for one worker.
type lane struct {
	mu sync.Mutex
	q  *queue.Queue
}

func (l *lane) push(t Task) {
	l.mu.Lock()
	l.q.Add(t)
	l.mu.Unlock()
}

func (l *lane) pop() (Task, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.q.Length() == 0 {
		return nil, false
	}
	t := l.q.Remove().(Task)
	return t, true
}

type poolWorker struct {
	lanes []*lane // index 0 = least urgent, len-1 = most urgent
	wake  chan struct{}
}

// popAny drains lanes from most to least urgent, returning the first task
// found.
func (w *poolWorker) popAny() (Task, bool) {
	for i := len(w.lanes) - 1; i >= 0; i-- {
		if t, ok := w.lanes[i].pop(); ok {
			return t, true
		}
	}
	return nil, false
}

func (p *Pool) runWorker(w *poolWorker) {
	defer p.wg.Done()
	for {
		if t, ok := w.popAny(); ok {
			t()
			continue
		}
		select {
		case <-w.wake:
		case <-p.closeCh:
			// drain whatever is left before exiting.
			for {
				t, ok := w.popAny()
				if !ok {
					return
				}
				t()
			}
		}
	}
}
