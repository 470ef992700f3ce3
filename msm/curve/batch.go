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

package curve

import "github.com/ajroetker/go-msm/msm/fp"

// Batched affine primitives: amortise one field inversion over a whole
// vector of additions with the Montgomery trick. The engine's bucket
// accumulation feeds these with thousands of independent pairs per call.

// BatchScratch holds the dense denominator and inverse slabs plus the
// per-slot classification of a batched call. One instance per worker.
type BatchScratch struct {
	den []uint64
	inv []uint64
	cls []uint8
}

// NewBatchScratch sizes scratch for batches of up to n pairs.
func (c *Curve) NewBatchScratch(n int) *BatchScratch {
	nl := c.F.Limbs()
	return &BatchScratch{
		den: make([]uint64, n*nl),
		inv: make([]uint64, n*nl),
		cls: make([]uint8, n),
	}
}

// BindScratch builds scratch over caller-owned (arena) slabs.
func (c *Curve) BindScratch(den, inv []uint64, cls []uint8) *BatchScratch {
	return &BatchScratch{den: den, inv: inv, cls: cls}
}

const (
	clsAdd = iota
	clsDouble
	clsCopyG
	clsCopyH
	clsIdentity
)

// BatchAdd computes slab[s[i]] = slab[g[i]] + slab[h[i]] for every i, with
// a single inversion. Pairs must write disjoint destinations; destinations
// may alias their own sources. This is the safe variant: identities, equal
// points and negated pairs all take their exact path.
func (c *Curve) BatchAdd(slab []uint64, g, h, s []int32, sc *BatchScratch) {
	f := c.F
	nl := f.Limbs()
	n := len(g)

	// Classify and pack live denominators densely.
	m := 0
	for i := 0; i < n; i++ {
		gp := c.View(slab, int(g[i]))
		hp := c.View(slab, int(h[i]))
		switch {
		case !gp.NonZero:
			sc.cls[i] = clsCopyH
		case !hp.NonZero:
			sc.cls[i] = clsCopyG
		case f.Equal(gp.X, hp.X):
			if f.Equal(gp.Y, hp.Y) && !f.IsZero(gp.Y) {
				sc.cls[i] = clsDouble
				f.Add(sc.den[m*nl:(m+1)*nl], gp.Y, gp.Y)
				m++
			} else {
				sc.cls[i] = clsIdentity
			}
		default:
			sc.cls[i] = clsAdd
			f.Sub(sc.den[m*nl:(m+1)*nl], hp.X, gp.X)
			m++
		}
	}

	f.BatchInverse(sc.inv, sc.den, m)

	slot := 0
	for i := 0; i < n; i++ {
		gp := c.View(slab, int(g[i]))
		hp := c.View(slab, int(h[i]))
		sp := c.View(slab, int(s[i]))
		switch sc.cls[i] {
		case clsCopyH:
			c.SetView(slab, int(s[i]), hp)
		case clsCopyG:
			c.SetView(slab, int(s[i]), gp)
		case clsIdentity:
			c.SetIdentity(slab, int(s[i]))
		case clsDouble:
			c.DoubleAffine(&sp, gp, sc.inv[slot*nl:(slot+1)*nl])
			c.setFlag(slab, int(s[i]), true)
			slot++
		default:
			c.AddAffine(&sp, gp, hp, sc.inv[slot*nl:(slot+1)*nl])
			c.setFlag(slab, int(s[i]), true)
			slot++
		}
	}
}

// BatchAddUnsafe is BatchAdd assuming every pair has two nonzero points
// with distinct x coordinates: one shared subtraction, one batched
// inversion, one addition per slot. A few percent faster; correct only on
// inputs where the excluded cases cannot occur, such as the first bucket
// accumulation pass over statistically independent points.
func (c *Curve) BatchAddUnsafe(slab []uint64, g, h, s []int32, sc *BatchScratch) {
	f := c.F
	nl := f.Limbs()
	n := len(g)

	for i := 0; i < n; i++ {
		gp := c.View(slab, int(g[i]))
		hp := c.View(slab, int(h[i]))
		f.Sub(sc.den[i*nl:(i+1)*nl], hp.X, gp.X)
	}

	f.BatchInverse(sc.inv, sc.den, n)

	for i := 0; i < n; i++ {
		gp := c.View(slab, int(g[i]))
		hp := c.View(slab, int(h[i]))
		sp := c.View(slab, int(s[i]))
		c.AddAffine(&sp, gp, hp, sc.inv[i*nl:(i+1)*nl])
		c.setFlag(slab, int(s[i]), true)
	}
}

// BatchDoubleInPlace doubles every listed point in place with a single
// inversion. Identities and 2-torsion points become the identity.
func (c *Curve) BatchDoubleInPlace(slab []uint64, idx []int32, sc *BatchScratch) {
	f := c.F
	nl := f.Limbs()
	n := len(idx)

	m := 0
	for i := 0; i < n; i++ {
		p := c.View(slab, int(idx[i]))
		if p.NonZero && !f.IsZero(p.Y) {
			sc.cls[i] = clsDouble
			f.Add(sc.den[m*nl:(m+1)*nl], p.Y, p.Y)
			m++
		} else {
			sc.cls[i] = clsIdentity
		}
	}

	f.BatchInverse(sc.inv, sc.den, m)

	slot := 0
	for i := 0; i < n; i++ {
		if sc.cls[i] != clsDouble {
			c.SetIdentity(slab, int(idx[i]))
			continue
		}
		p := c.View(slab, int(idx[i]))
		c.DoubleAffine(&p, p, sc.inv[slot*nl:(slot+1)*nl])
		slot++
	}
}

// BatchJacobianToAffine normalises a vector of Jacobian points with a
// single inversion, staging the prefix products in the result's X
// coordinates. result must have len(points) allocated entries.
func (c *Curve) BatchJacobianToAffine(points []Jacobian, result []Affine) {
	f := c.F
	nl := f.Limbs()

	var acc [fp.MaxLimbs]uint64
	f.SetOne(acc[:nl])
	for i := range points {
		if f.IsZero(points[i].Z) {
			result[i].NonZero = false
			continue
		}
		f.Copy(result[i].X, acc[:nl])
		f.Mul(acc[:nl], acc[:nl], points[i].Z)
		result[i].NonZero = true
	}

	var accInv [fp.MaxLimbs]uint64
	f.Inverse(accInv[:nl], acc[:nl])

	for i := len(points) - 1; i >= 0; i-- {
		if !result[i].NonZero {
			continue
		}
		f.Mul(result[i].X, result[i].X, accInv[:nl])
		f.Mul(accInv[:nl], accInv[:nl], points[i].Z)
	}

	var a, b [fp.MaxLimbs]uint64
	for i := range points {
		if !result[i].NonZero {
			continue
		}
		f.Copy(a[:nl], result[i].X)
		f.Square(b[:nl], a[:nl])
		f.Mul(result[i].X, points[i].X, b[:nl])
		f.Mul(b[:nl], b[:nl], a[:nl])
		f.Mul(result[i].Y, points[i].Y, b[:nl])
	}
}

func (c *Curve) setFlag(slab []uint64, i int, nonzero bool) {
	o := i*c.SizeAffine() + 2*c.F.Limbs()
	if nonzero {
		slab[o] = 1
	} else {
		slab[o] = 0
	}
}
