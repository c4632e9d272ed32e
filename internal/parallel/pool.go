// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package parallel runs row-band work on a fixed set of goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines sharing a single work queue.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queue   chan func()

	// done signals workers to stop.
	done chan struct{}
	wg   sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), workers*2),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

// worker runs queued work until the pool is closed.
func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			p.drain()
			return
		case work := <-p.queue:
			work()
		}
	}
}

// drain executes work still queued at shutdown.
func (p *WorkerPool) drain() {
	for {
		select {
		case work := <-p.queue:
			work()
		default:
			return
		}
	}
}

// ExecuteAll runs every item of work and waits for all of them. After Close,
// work runs on the calling goroutine.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	if !p.running.Load() {
		for _, fn := range work {
			fn()
		}
		return
	}

	var completion sync.WaitGroup
	completion.Add(len(work))
	for _, fn := range work {
		wrapped := func() {
			defer completion.Done()
			fn()
		}
		select {
		case p.queue <- wrapped:
		case <-p.done:
			wrapped()
		}
	}
	completion.Wait()
}

// Rows splits [0, n) into bands of at least minRows rows and calls fn for
// each band on the pool. It returns when all bands are done. A single band
// runs on the calling goroutine.
func (p *WorkerPool) Rows(n, minRows int, fn func(lo, hi int)) {
	bands := Bands(n, p.workers, minRows)
	if len(bands) == 1 {
		fn(bands[0][0], bands[0][1])
		return
	}
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b[0], b[1]) }
	}
	p.ExecuteAll(work)
}

// Close stops the workers. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool has not been closed.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// Bands splits [0, n) into at most parts contiguous half-open ranges of
// near-equal size. No range is shorter than minRows unless n itself is.
func Bands(n, parts, minRows int) [][2]int {
	if n <= 0 {
		return nil
	}
	minRows = max(minRows, 1)
	parts = max(min(parts, n/minRows), 1)

	bands := make([][2]int, 0, parts)
	lo := 0
	for i := range parts {
		hi := n * (i + 1) / parts
		bands = append(bands, [2]int{lo, hi})
		lo = hi
	}
	return bands
}
