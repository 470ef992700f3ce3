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

// Package curve implements short Weierstrass arithmetic y^2 = x^3 + ax + b
// over a runtime fp.Field: affine addition against precomputed denominator
// inverses, the batched primitives that amortise one inversion over many
// additions, the GLV endomorphism, and the Jacobian arithmetic used by the
// reduction stages.
package curve

import (
	"math/big"

	"github.com/ajroetker/go-msm/msm/fp"
)

// Curve binds Weierstrass coefficients and the endomorphism constant to a
// field. Immutable after New and safe for concurrent use.
type Curve struct {
	F *fp.Field

	A, B fp.Fe // Montgomery form
	Beta fp.Fe // endo(x, y) = (Beta*x, y)

	aIsZero bool
}

// New builds a curve over f. beta may be nil when the endomorphism is
// unused.
func New(f *fp.Field, a, b, beta *big.Int) *Curve {
	c := &Curve{F: f, A: f.NewFe(), B: f.NewFe(), Beta: f.NewFe()}
	f.SetBigInt(c.A, a)
	f.SetBigInt(c.B, b)
	if beta != nil {
		f.SetBigInt(c.Beta, beta)
	}
	c.aIsZero = f.IsZero(c.A)
	return c
}

// Affine is a point in affine coordinates with an explicit identity flag.
// When NonZero is false the coordinate limbs are irrelevant.
type Affine struct {
	X, Y    fp.Fe
	NonZero bool
}

// NewAffine allocates a standalone identity point.
func (c *Curve) NewAffine() Affine {
	return Affine{X: c.F.NewFe(), Y: c.F.NewFe()}
}

// Point slab layout: X limbs, Y limbs, then one flag word. The bucket
// pipeline stores points back to back in flat []uint64 slabs and addresses
// them by point index.

// SizeAffine is the per-point word count of a point slab.
func (c *Curve) SizeAffine() int { return 2*c.F.Limbs() + 1 }

// View returns the point at index i of a slab without copying: the
// coordinate slices alias the slab.
func (c *Curve) View(slab []uint64, i int) Affine {
	nl := c.F.Limbs()
	o := i * c.SizeAffine()
	return Affine{
		X:       slab[o : o+nl],
		Y:       slab[o+nl : o+2*nl],
		NonZero: slab[o+2*nl] != 0,
	}
}

// SetView writes p into slot i of a slab.
func (c *Curve) SetView(slab []uint64, i int, p Affine) {
	nl := c.F.Limbs()
	o := i * c.SizeAffine()
	copy(slab[o:o+nl], p.X)
	copy(slab[o+nl:o+2*nl], p.Y)
	if p.NonZero {
		slab[o+2*nl] = 1
	} else {
		slab[o+2*nl] = 0
	}
}

// SetIdentity clears slot i of a slab.
func (c *Curve) SetIdentity(slab []uint64, i int) {
	o := i * c.SizeAffine()
	slab[o+2*c.F.Limbs()] = 0
}

// Copy sets dst = src.
func (c *Curve) Copy(dst *Affine, src Affine) {
	c.F.Copy(dst.X, src.X)
	c.F.Copy(dst.Y, src.Y)
	dst.NonZero = src.NonZero
}

// Neg sets dst = -src, materialising -y as p - y.
func (c *Curve) Neg(dst *Affine, src Affine) {
	c.F.Copy(dst.X, src.X)
	c.F.Neg(dst.Y, src.Y)
	dst.NonZero = src.NonZero
}

// Endo sets dst = (Beta*x, y), the image of src under the curve
// endomorphism.
func (c *Curve) Endo(dst *Affine, src Affine) {
	c.F.Mul(dst.X, src.X, c.Beta)
	c.F.Copy(dst.Y, src.Y)
	dst.NonZero = src.NonZero
}

// AddAffine sets z = a + b using the precomputed chord denominator inverse
// d = 1/(xb - xa). Total only for nonzero points with distinct x; the
// batched safe path routes every other case around it. z may alias a or b.
func (c *Curve) AddAffine(z *Affine, a, b Affine, d fp.Fe) {
	f := c.F
	nl := f.Limbs()
	var m, t, x3 [fp.MaxLimbs]uint64

	f.Sub(t[:nl], b.Y, a.Y)
	f.Mul(m[:nl], t[:nl], d) // chord slope

	f.Square(x3[:nl], m[:nl])
	f.Sub(x3[:nl], x3[:nl], a.X)
	f.Sub(x3[:nl], x3[:nl], b.X)

	f.Sub(t[:nl], a.X, x3[:nl])
	f.Mul(t[:nl], t[:nl], m[:nl])
	f.Sub(z.Y, t[:nl], a.Y)
	f.Copy(z.X, x3[:nl])
	z.NonZero = true
}

// DoubleAffine sets z = 2a using the precomputed denominator inverse
// d = 1/(2*ya). a must be nonzero with ya != 0.
func (c *Curve) DoubleAffine(z *Affine, a Affine, d fp.Fe) {
	f := c.F
	nl := f.Limbs()
	var m, t, x3 [fp.MaxLimbs]uint64

	f.Square(t[:nl], a.X)
	f.Add(m[:nl], t[:nl], t[:nl])
	f.Add(m[:nl], m[:nl], t[:nl]) // 3x^2
	if !c.aIsZero {
		f.Add(m[:nl], m[:nl], c.A)
	}
	f.Mul(m[:nl], m[:nl], d) // tangent slope

	f.Square(x3[:nl], m[:nl])
	f.Sub(x3[:nl], x3[:nl], a.X)
	f.Sub(x3[:nl], x3[:nl], a.X)

	f.Sub(t[:nl], a.X, x3[:nl])
	f.Mul(t[:nl], t[:nl], m[:nl])
	f.Sub(z.Y, t[:nl], a.Y)
	f.Copy(z.X, x3[:nl])
	z.NonZero = true
}

// IsOnCurve reports whether p satisfies the curve equation. The identity
// is on the curve.
func (c *Curve) IsOnCurve(p Affine) bool {
	if !p.NonZero {
		return true
	}
	f := c.F
	nl := f.Limbs()
	var l, r, t [fp.MaxLimbs]uint64

	f.Square(l[:nl], p.Y)

	f.Square(r[:nl], p.X)
	f.Mul(r[:nl], r[:nl], p.X)
	if !c.aIsZero {
		f.Mul(t[:nl], c.A, p.X)
		f.Add(r[:nl], r[:nl], t[:nl])
	}
	f.Add(r[:nl], r[:nl], c.B)

	return f.Equal(l[:nl], r[:nl])
}

// Equal reports whether two affine points are the same group element.
func (c *Curve) Equal(a, b Affine) bool {
	if !a.NonZero || !b.NonZero {
		return a.NonZero == b.NonZero
	}
	return c.F.Equal(a.X, b.X) && c.F.Equal(a.Y, b.Y)
}
