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

// Package scalar decomposes full-length scalars into balanced half-length
// pairs using the curve endomorphism (GLV), and slices the halves into the
// signed windows the bucket method consumes.
package scalar

import (
	"errors"
	"math/big"
)

// ErrBadEndomorphism reports lattice reduction failing to produce
// half-length basis vectors, i.e. lambda is not a valid endomorphism
// eigenvalue for the group order.
var ErrBadEndomorphism = errors.New("scalar: lambda yields no short lattice basis")

// HalfBits bounds the decomposed parts: |s0|, |s1| < 2^HalfBits.
const HalfBits = 128

// Half is the absolute value of a decomposed half-scalar, little-endian.
type Half [2]uint64

// Split is the GLV decomposition of a scalar:
// s = (-1)^Neg0 * S0 + lambda * (-1)^Neg1 * S1 mod q.
type Split struct {
	S0, S1     Half
	Neg0, Neg1 bool
}

// GLV holds the short lattice basis for a fixed (q, lambda) pair, computed
// once at engine construction.
type GLV struct {
	q      *big.Int
	lambda *big.Int

	// basis vectors v1 = (a1, b1), v2 = (a2, b2) with a + b*lambda = 0 mod q
	a1, b1, a2, b2 *big.Int
	det            *big.Int // a1*b2 - a2*b1, normalised positive
}

// NewGLV runs the truncated extended Euclidean algorithm on (q, lambda)
// and keeps the two shortest basis vectors: the classic GLV lattice
// reduction, stopping at the first remainder below sqrt(q).
func NewGLV(q, lambda *big.Int) (*GLV, error) {
	g := &GLV{
		q:      new(big.Int).Set(q),
		lambda: new(big.Int).Mod(lambda, q),
	}

	sqrtQ := new(big.Int).Sqrt(q)

	r0, r1 := new(big.Int).Set(q), new(big.Int).Set(g.lambda)
	t0, t1 := new(big.Int), big.NewInt(1)
	for r1.Cmp(sqrtQ) >= 0 {
		quo := new(big.Int)
		rem := new(big.Int)
		quo.QuoRem(r0, r1, rem)
		t2 := new(big.Int).Mul(quo, t1)
		t2.Sub(t0, t2)
		r0, r1 = r1, rem
		t0, t1 = t1, t2
	}
	// (r, -t) satisfies r - t*lambda = s*q for some s, so r + (-t)*lambda
	// vanishes mod q.
	g.a1 = new(big.Int).Set(r1)
	g.b1 = new(big.Int).Neg(t1)
	g.a2 = new(big.Int).Set(r0)
	g.b2 = new(big.Int).Neg(t0)

	g.det = new(big.Int).Mul(g.a1, g.b2)
	g.det.Sub(g.det, new(big.Int).Mul(g.a2, g.b1))
	if g.det.Sign() == 0 {
		return nil, ErrBadEndomorphism
	}
	if g.det.Sign() < 0 {
		g.det.Neg(g.det)
		g.a2.Neg(g.a2)
		g.b2.Neg(g.b2)
	}

	// Both vectors must be genuinely short or the halves overflow 128
	// bits. Basis coordinates may themselves reach 2^128 (BLS12-381's b1
	// does); the closest-vector rounding still keeps the halves inside.
	bound := new(big.Int).Lsh(big.NewInt(1), HalfBits)
	for _, v := range []*big.Int{g.a1, g.b1, g.a2, g.b2} {
		if new(big.Int).Abs(v).Cmp(bound) > 0 {
			return nil, ErrBadEndomorphism
		}
	}
	return g, nil
}

// Decompose splits s < q into balanced halves. Variable time: scalars are
// not secrets in an MSM input set. The scratch receiver pattern keeps the
// big.Int allocations out of the per-scalar loop.
func (g *GLV) Decompose(s *big.Int) Split {
	var c1, c2, k1, k2, t big.Int

	// Closest lattice vector: c_i = round(beta_i), beta expressed in the
	// reduced basis.
	c1.Mul(g.b2, s)
	roundDiv(&c1, &c1, g.det)
	c2.Mul(g.b1, s)
	c2.Neg(&c2)
	roundDiv(&c2, &c2, g.det)

	// (k1, k2) = (s, 0) - c1*v1 - c2*v2
	k1.Mul(&c1, g.a1)
	t.Mul(&c2, g.a2)
	k1.Add(&k1, &t)
	k1.Sub(s, &k1)

	k2.Mul(&c1, g.b1)
	t.Mul(&c2, g.b2)
	k2.Add(&k2, &t)
	k2.Neg(&k2)

	var sp Split
	sp.S0, sp.Neg0 = toHalf(&k1)
	sp.S1, sp.Neg1 = toHalf(&k2)
	return sp
}

// Recompose returns s0 + lambda*s1 mod q with the split's signs applied;
// test hook for the s = s0 + lambda*s1 invariant.
func (g *GLV) Recompose(sp Split) *big.Int {
	s0 := sp.S0.Big()
	if sp.Neg0 {
		s0.Neg(s0)
	}
	s1 := sp.S1.Big()
	if sp.Neg1 {
		s1.Neg(s1)
	}
	s1.Mul(s1, g.lambda)
	s0.Add(s0, s1)
	return s0.Mod(s0, g.q)
}

// roundDiv sets z = round(num/den) for den > 0.
func roundDiv(z, num, den *big.Int) {
	var n, d big.Int
	n.Lsh(num, 1)
	n.Add(&n, den)
	d.Lsh(den, 1)
	z.Div(&n, &d)
}

func toHalf(v *big.Int) (Half, bool) {
	neg := v.Sign() < 0
	var a big.Int
	a.Abs(v)
	if a.BitLen() > HalfBits {
		panic("scalar: decomposition exceeds half length")
	}
	var h Half
	w := a.Bits()
	for i := 0; i < len(w) && i < 2; i++ {
		h[i] = uint64(w[i])
	}
	return h, neg
}

// Big returns the half as a non-negative big integer.
func (h Half) Big() *big.Int {
	v := new(big.Int).SetUint64(h[1])
	v.Lsh(v, 64)
	return v.Add(v, new(big.Int).SetUint64(h[0]))
}
