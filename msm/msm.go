// Copyright 2025 go-msm Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package msm

import (
	"time"

	"github.com/ajroetker/go-msm/msm/curve"
	"github.com/ajroetker/go-msm/msm/scalar"
)

// run is the per-call state of one MSM: every slab lives in the engine's
// arena, every metadata array is indexed the same way across phases.
//
// Point slab layout: the expanded slab holds the four variants
// {G, -G, endo(G), -endo(G)} of input i at slots 4i..4i+3. The sorted slab
// holds window k's points at slots [k*2n, (k+1)*2n), grouped by bucket;
// boundary[k*(L+1)+l] is the absolute end slot of bucket l and
// boundary[k*(L+1)] the window base.
type run struct {
	e *Engine

	n      int // inputs
	halves int // 2n
	c, c0  int
	k      int // windows per half-scalar
	l      int // buckets per window, 2^(c-1)
	sizeA  int
	unsafe bool

	expanded []uint64
	sorted   []uint64
	splits   []scalar.Split
	slices   []uint32 // [k][h] -> label | SignBit
	counts   []uint32 // [k][l], atomic during the counting pass
	boundary []int32  // [k][l+1] absolute point-slot bucket ends
	cursor   []int32  // [k][l] next free slot, atomic during scatter

	bucketRange  [][2]int32 // per worker: owned flat bucket range for C7
	scratchWords []int      // per worker batch scratch sizing
	den, inv     [][]uint64 // per worker batch add scratch

	colLen, nCol int
	columns      []uint64 // [k][nCol] Jacobians
}

func (e *Engine) msm(scalars [][]byte, points []PointBytes, o *CallOptions) (curve.Jacobian, *Log, error) {
	res := e.cv.NewJacobian()
	e.cv.SetIdentityJ(&res)

	if len(scalars) != len(points) {
		return res, nil, ErrSizeMismatch
	}
	n := len(scalars)
	if n == 0 {
		return res, nil, ErrEmptyInput
	}

	c, c0 := pickC(n, o)
	r := &run{
		e:      e,
		n:      n,
		halves: 2 * n,
		c:      c,
		c0:     c0,
		k:      scalar.Windows(uint(c)),
		l:      1 << (c - 1),
		sizeA:  e.cv.SizeAffine(),
		unsafe: o.UnsafeAdditions,
	}
	r.colLen = 1 << c0
	if r.colLen > r.l {
		r.colLen = r.l
	}
	r.nCol = (r.l + r.colLen - 1) / r.colLen

	log := &Log{
		N: n, C: c, C0: c0,
		Windows: r.k, Buckets: r.l,
		Threads: e.pl.Workers(),
		Kernel:  e.f.Kernel().String(),
	}

	r.alloc()
	defer e.ar.Reset()

	start := time.Now()

	t := time.Now()
	if err := e.pl.Run(r.prepare(scalars, points)); err != nil {
		return res, log, err
	}
	log.Prepare = time.Since(t)

	t = time.Now()
	if err := e.pl.Run(r.sliceAndCount()); err != nil {
		return res, log, err
	}
	log.MaxBucket = r.layout()
	if err := e.pl.Run(r.scatter()); err != nil {
		return res, log, err
	}
	log.Sort = time.Since(t)

	t = time.Now()
	if err := e.pl.Run(r.accumulate()); err != nil {
		return res, log, err
	}
	log.Accumulate = time.Since(t)

	t = time.Now()
	if err := e.pl.Run(r.reduceColumns()); err != nil {
		return res, log, err
	}
	log.Reduce = time.Since(t)

	t = time.Now()
	r.combine(&res)
	log.Combine = time.Since(t)

	log.Total = time.Since(start)
	return res, log, nil
}

// alloc reserves every slab for this run up front, so arena growth happens
// before any view is taken.
func (r *run) alloc() {
	nl := r.e.f.Limbs()
	totalPts := r.halves * r.k
	words := 4*r.n*r.sizeA + // expanded variants
		totalPts*r.sizeA + // sorted buckets
		r.k*r.nCol*3*nl + // column sums
		nl*(totalPts+2*r.e.pl.Workers()+2) // batch add scratch bound
	r.e.ar.Grow(words)

	r.expanded = r.e.ar.Alloc(4 * r.n * r.sizeA)
	r.sorted = r.e.ar.Alloc(totalPts * r.sizeA)
	r.columns = r.e.ar.AllocZero(r.k * r.nCol * 3 * nl)

	r.splits = make([]scalar.Split, r.n)
	r.slices = make([]uint32, r.k*r.halves)
	r.counts = make([]uint32, r.k*(r.l+1))
	r.boundary = make([]int32, r.k*(r.l+1))
	r.cursor = make([]int32, r.k*(r.l+1))

	w := r.e.pl.Workers()
	r.bucketRange = make([][2]int32, w)
	r.scratchWords = make([]int, w)
	r.den = make([][]uint64, w)
	r.inv = make([][]uint64, w)
}
