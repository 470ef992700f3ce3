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
	"math/big"
	"sync/atomic"

	"github.com/ajroetker/go-msm/msm/curve"
	"github.com/ajroetker/go-msm/msm/pool"
	"github.com/ajroetker/go-msm/msm/scalar"
)

// The sort/prepare stage: expand point variants, decompose scalars, slice
// signed windows, then counting-sort point copies into bucket order.

// prepare is the expansion phase: each worker parses its slice of inputs,
// GLV-decomposes the scalars and materialises the four affine variants
// {G, -G, endo(G), -endo(G)} of every point, all in Montgomery form.
func (r *run) prepare(scalars [][]byte, points []PointBytes) func(int) error {
	e := r.e
	parts := e.pl.Workers()
	return func(w int) error {
		start, end := pool.Range(r.n, parts, w)
		var s big.Int
		for i := start; i < end; i++ {
			scalarToBig(&s, scalars[i])
			if s.Cmp(e.params.Q) >= 0 {
				return ErrScalarRange
			}
			r.splits[i] = e.gl.Decompose(&s)

			base := e.cv.View(r.expanded, 4*i)
			if err := e.pointFromBytes(&base, points[i]); err != nil {
				return err
			}
			if !base.NonZero {
				// Identity inputs place nothing; the slicing pass reads
				// this flag and zeroes their windows.
				for v := 0; v < 4; v++ {
					e.cv.SetView(r.expanded, 4*i+v, curve.Affine{X: base.X, Y: base.Y})
				}
				continue
			}
			e.cv.SetView(r.expanded, 4*i, base)

			neg := e.cv.View(r.expanded, 4*i+1)
			e.cv.Neg(&neg, base)
			e.cv.SetView(r.expanded, 4*i+1, neg)

			endo := e.cv.View(r.expanded, 4*i+2)
			e.cv.Endo(&endo, base)
			e.cv.SetView(r.expanded, 4*i+2, endo)

			negEndo := e.cv.View(r.expanded, 4*i+3)
			e.cv.Neg(&negEndo, endo)
			e.cv.SetView(r.expanded, 4*i+3, negEndo)
		}
		return nil
	}
}

// sliceAndCount runs the signed window recoding for every half-scalar and
// the first counting-sort pass: atomic bucket occupancy counts. Halves of
// identity points contribute nothing.
func (r *run) sliceAndCount() func(int) error {
	e := r.e
	parts := e.pl.Workers()
	return func(w int) error {
		var ws [80]uint32
		c := uint(r.c)
		start, end := pool.Range(r.halves, parts, w)
		for h := start; h < end; h++ {
			i, j := h/2, h%2
			if r.expanded[4*i*r.sizeA+2*e.f.Limbs()] == 0 {
				for k := 0; k < r.k; k++ {
					r.slices[k*r.halves+h] = 0
				}
				continue
			}
			half := r.splits[i].S0
			if j == 1 {
				half = r.splits[i].S1
			}
			scalar.SignedSlices(ws[:r.k], half, c)
			for k := 0; k < r.k; k++ {
				v := ws[k]
				r.slices[k*r.halves+h] = v
				if l := v &^ scalar.SignBit; l != 0 {
					atomic.AddUint32(&r.counts[k*(r.l+1)+int(l)], 1)
				}
			}
		}
		return nil
	}
}

// layout is the single-threaded second pass: prefix-sum the counts into
// bucket boundaries, seed the scatter cursors, and carve the accumulation
// phase's per-worker bucket ranges so each worker owns a contiguous run of
// buckets with a balanced share of the points. Returns the largest bucket.
func (r *run) layout() int {
	maxBucket := 0
	for k := 0; k < r.k; k++ {
		base := int32(k * r.halves)
		r.boundary[k*(r.l+1)] = base
		off := base
		for l := 1; l <= r.l; l++ {
			n := int32(r.counts[k*(r.l+1)+l])
			if int(n) > maxBucket {
				maxBucket = int(n)
			}
			r.cursor[k*(r.l+1)+l] = off
			off += n
			r.boundary[k*(r.l+1)+l] = off
		}
	}

	// Balance C7: walk the flat bucket list handing out contiguous ranges
	// of roughly total/workers points each.
	workers := r.e.pl.Workers()
	totalBuckets := int32(r.k * r.l)
	total := 0
	for k := 0; k < r.k; k++ {
		total += int(r.boundary[k*(r.l+1)+r.l] - r.boundary[k*(r.l+1)])
	}
	target := (total + workers - 1) / workers

	flat := int32(0)
	for w := 0; w < workers; w++ {
		startFlat := flat
		got := 0
		for flat < totalBuckets && (got < target || w == workers-1) {
			k := int(flat) / r.l
			l := int(flat)%r.l + 1
			got += int(r.boundary[k*(r.l+1)+l] - r.boundary[k*(r.l+1)+l-1])
			flat++
		}
		r.bucketRange[w] = [2]int32{startFlat, flat}
		r.scratchWords[w] = (got/2 + 1) * r.e.f.Limbs()
		r.den[w] = r.e.ar.Alloc(r.scratchWords[w])
		r.inv[w] = r.e.ar.Alloc(r.scratchWords[w])
	}
	return maxBucket
}

// scatter is the third counting-sort pass: copy the right variant of every
// contributing point into its bucket slot. The cursors are claimed with
// sequentially consistent fetch-adds, so slots within a bucket are unique
// even though many workers feed the same bucket.
func (r *run) scatter() func(int) error {
	e := r.e
	parts := e.pl.Workers()
	return func(w int) error {
		start, end := pool.Range(r.halves, parts, w)
		for h := start; h < end; h++ {
			i, j := h/2, h%2
			neg := r.splits[i].Neg0
			if j == 1 {
				neg = r.splits[i].Neg1
			}
			for k := 0; k < r.k; k++ {
				v := r.slices[k*r.halves+h]
				l := v &^ scalar.SignBit
				if l == 0 {
					continue
				}
				sign := v&scalar.SignBit != 0
				if neg {
					sign = !sign
				}
				variant := 4 * i
				if j == 1 {
					variant += 2
				}
				if sign {
					variant++
				}
				slot := atomic.AddInt32(&r.cursor[k*(r.l+1)+int(l)], 1) - 1
				copy(r.sorted[int(slot)*r.sizeA:(int(slot)+1)*r.sizeA],
					r.expanded[variant*r.sizeA:(variant+1)*r.sizeA])
			}
		}
		return nil
	}
}
