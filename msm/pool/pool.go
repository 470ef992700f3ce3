// Copyright 2025 The go-msm Authors. SPDX-License-Identifier: Apache-2.0

// Package pool runs the bulk-synchronous phases of the MSM pipeline on a
// fixed set of worker goroutines. A Pool is created once per engine and
// reused across every phase of every MSM; Run dispatches one chunk per
// worker and its return is the phase barrier. With the pool stopped (the
// single-thread baseline) Run executes inline.
package pool

import (
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrRunning reports a second Start without an intervening Stop.
var ErrRunning = errors.New("pool: workers already started")

// Pool is a fixed worker set. The zero value is a stopped pool executing
// phases inline on the caller.
type Pool struct {
	n       int
	items   chan item
	g       *errgroup.Group
	running atomic.Bool
}

type item struct {
	j *job
	w int
}

type job struct {
	fn   func(worker int) error
	wg   sync.WaitGroup
	once sync.Once
	err  error
}

func (j *job) fail(err error) {
	j.once.Do(func() { j.err = err })
}

// Start spawns t workers. Starting a started pool is a configuration
// error.
func (p *Pool) Start(t int) error {
	if p.running.Swap(true) {
		return ErrRunning
	}
	if t < 1 {
		t = 1
	}
	p.n = t
	p.items = make(chan item, t)
	p.g = &errgroup.Group{}
	for i := 0; i < t; i++ {
		p.g.Go(p.worker)
	}
	return nil
}

// Stop joins the workers. Phase failures are returned by Run, not here.
// Stopping a stopped pool is a no-op.
func (p *Pool) Stop() error {
	if !p.running.Swap(false) {
		return nil
	}
	close(p.items)
	err := p.g.Wait()
	p.items = nil
	p.g = nil
	p.n = 0
	return err
}

// Workers reports the phase width: the number of chunks Run dispatches.
func (p *Pool) Workers() int {
	if !p.running.Load() {
		return 1
	}
	return p.n
}

func (p *Pool) worker() error {
	for it := range p.items {
		if err := it.j.fn(it.w); err != nil {
			it.j.fail(err)
		}
		it.j.wg.Done()
	}
	return nil
}

// Run executes fn(w) for every worker index w and waits for all of them:
// a full phase followed by its barrier. The first error aborts the result,
// and all writes made by the phase happen before Run returns.
func (p *Pool) Run(fn func(worker int) error) error {
	if !p.running.Load() {
		return fn(0)
	}
	j := &job{fn: fn}
	j.wg.Add(p.n)
	for w := 0; w < p.n; w++ {
		p.items <- item{j, w}
	}
	j.wg.Wait()
	return j.err
}

// Range partitions [0, n) into parts even chunks and returns chunk i.
// Trailing chunks may be empty when n < parts.
func Range(n, parts, i int) (start, end int) {
	q, r := n/parts, n%parts
	start = i*q + min(i, r)
	end = start + q
	if i < r {
		end++
	}
	return start, end
}
