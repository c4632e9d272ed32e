// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if got, want := pool.Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, got, want)
		}
		pool.Close()
	}
}

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(work)

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_ExecuteAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("IsRunning() = true after Close")
	}
	var counter atomic.Int64
	pool.ExecuteAll([]func(){
		func() { counter.Add(1) },
		func() { counter.Add(1) },
	})
	if counter.Load() != 2 {
		t.Errorf("counter = %d, want 2", counter.Load())
	}
}

func TestWorkerPool_Rows(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	const n = 101
	var hits [n]atomic.Int32
	pool.Rows(n, 8, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			hits[i].Add(1)
		}
	})
	for i := range hits {
		if got := hits[i].Load(); got != 1 {
			t.Fatalf("row %d visited %d times, want 1", i, got)
		}
	}
}

func TestWorkerPool_RowsSingleBandInline(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	// Occupy the only worker.
	release := make(chan struct{})
	started := make(chan struct{})
	go pool.ExecuteAll([]func(){func() {
		close(started)
		<-release
	}})
	<-started
	defer close(release)

	done := make(chan [2]int, 1)
	go pool.Rows(10, 64, func(lo, hi int) { done <- [2]int{lo, hi} })

	select {
	case got := <-done:
		if got != [2]int{0, 10} {
			t.Errorf("band = %v, want [0 10]", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("single band waited for a busy worker")
	}
}

// =============================================================================
// Bands
// =============================================================================

func TestBands(t *testing.T) {
	tests := []struct {
		name             string
		n, parts, minRow int
		want             [][2]int
	}{
		{"empty", 0, 4, 1, nil},
		{"single part", 10, 1, 1, [][2]int{{0, 10}}},
		{"even", 8, 4, 1, [][2]int{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"uneven", 10, 3, 1, [][2]int{{0, 3}, {3, 6}, {6, 10}}},
		{"min rows limits parts", 10, 8, 4, [][2]int{{0, 5}, {5, 10}}},
		{"fewer rows than min", 3, 8, 16, [][2]int{{0, 3}}},
		{"zero min rows", 4, 8, 0, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bands(tt.n, tt.parts, tt.minRow)
			if len(got) != len(tt.want) {
				t.Fatalf("Bands() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Bands()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
