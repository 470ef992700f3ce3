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

import (
	"math/big"
	"math/bits"

	"github.com/ajroetker/go-msm/msm/fp"
)

// Jacobian is a point in Jacobian coordinates (x = X/Z^2, y = Y/Z^3); the
// identity has Z = 0. Used only at O(buckets) scale, in the reduction and
// combining stages, where inversion amortisation no longer pays.
type Jacobian struct {
	X, Y, Z fp.Fe
}

// NewJacobian allocates a standalone identity point.
func (c *Curve) NewJacobian() Jacobian {
	return Jacobian{X: c.F.NewFe(), Y: c.F.NewFe(), Z: c.F.NewFe()}
}

// JacobianView returns the point at index i of a flat 3-coordinate slab.
func (c *Curve) JacobianView(slab []uint64, i int) Jacobian {
	nl := c.F.Limbs()
	o := i * 3 * nl
	return Jacobian{
		X: slab[o : o+nl],
		Y: slab[o+nl : o+2*nl],
		Z: slab[o+2*nl : o+3*nl],
	}
}

// SetIdentityJ sets p to the identity.
func (c *Curve) SetIdentityJ(p *Jacobian) {
	c.F.SetOne(p.X)
	c.F.SetOne(p.Y)
	c.F.SetZero(p.Z)
}

// IsIdentityJ reports whether p is the identity.
func (c *Curve) IsIdentityJ(p *Jacobian) bool {
	return c.F.IsZero(p.Z)
}

// CopyJ sets dst = src.
func (c *Curve) CopyJ(dst *Jacobian, src *Jacobian) {
	c.F.Copy(dst.X, src.X)
	c.F.Copy(dst.Y, src.Y)
	c.F.Copy(dst.Z, src.Z)
}

// NegJ sets dst = -src.
func (c *Curve) NegJ(dst *Jacobian, src *Jacobian) {
	c.F.Copy(dst.X, src.X)
	c.F.Neg(dst.Y, src.Y)
	c.F.Copy(dst.Z, src.Z)
}

// FromAffine lifts an affine point into Jacobian coordinates.
func (c *Curve) FromAffine(dst *Jacobian, src Affine) {
	if !src.NonZero {
		c.SetIdentityJ(dst)
		return
	}
	c.F.Copy(dst.X, src.X)
	c.F.Copy(dst.Y, src.Y)
	c.F.SetOne(dst.Z)
}

// ToAffine rescales p into the z = 1 plane. One field inversion.
func (c *Curve) ToAffine(dst *Affine, p *Jacobian) {
	if c.IsIdentityJ(p) {
		dst.NonZero = false
		return
	}
	f := c.F
	nl := f.Limbs()
	var a, b [fp.MaxLimbs]uint64
	f.Inverse(a[:nl], p.Z)
	f.Square(b[:nl], a[:nl])
	f.Mul(dst.X, p.X, b[:nl])
	f.Mul(b[:nl], b[:nl], a[:nl])
	f.Mul(dst.Y, p.Y, b[:nl])
	dst.NonZero = true
}

// AddAssign sets p = p + q.
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#addition-add-2007-bl
func (c *Curve) AddAssign(p *Jacobian, q *Jacobian) {
	if c.IsIdentityJ(q) {
		return
	}
	if c.IsIdentityJ(p) {
		c.CopyJ(p, q)
		return
	}
	f := c.F
	nl := f.Limbs()
	var z1z1, z2z2, u1, u2, s1, s2, h, i, j, r, v, t [fp.MaxLimbs]uint64

	f.Square(z1z1[:nl], q.Z)
	f.Square(z2z2[:nl], p.Z)
	f.Mul(u1[:nl], q.X, z2z2[:nl])
	f.Mul(u2[:nl], p.X, z1z1[:nl])
	f.Mul(s1[:nl], q.Y, p.Z)
	f.Mul(s1[:nl], s1[:nl], z2z2[:nl])
	f.Mul(s2[:nl], p.Y, q.Z)
	f.Mul(s2[:nl], s2[:nl], z1z1[:nl])

	if f.Equal(u1[:nl], u2[:nl]) && f.Equal(s1[:nl], s2[:nl]) {
		c.DoubleAssign(p)
		return
	}

	f.Sub(h[:nl], u2[:nl], u1[:nl])
	f.Add(i[:nl], h[:nl], h[:nl])
	f.Square(i[:nl], i[:nl])
	f.Mul(j[:nl], h[:nl], i[:nl])
	f.Sub(r[:nl], s2[:nl], s1[:nl])
	f.Add(r[:nl], r[:nl], r[:nl])
	f.Mul(v[:nl], u1[:nl], i[:nl])

	f.Square(t[:nl], r[:nl])
	f.Sub(t[:nl], t[:nl], j[:nl])
	f.Sub(t[:nl], t[:nl], v[:nl])
	f.Sub(t[:nl], t[:nl], v[:nl])

	f.Sub(p.Y, v[:nl], t[:nl])
	f.Mul(p.Y, p.Y, r[:nl])
	f.Mul(s1[:nl], s1[:nl], j[:nl])
	f.Add(s1[:nl], s1[:nl], s1[:nl])
	f.Sub(p.Y, p.Y, s1[:nl])

	f.Add(p.Z, p.Z, q.Z)
	f.Square(p.Z, p.Z)
	f.Sub(p.Z, p.Z, z2z2[:nl])
	f.Sub(p.Z, p.Z, z1z1[:nl])
	f.Mul(p.Z, p.Z, h[:nl])

	f.Copy(p.X, t[:nl])
}

// AddMixed sets p = p + q for affine q.
// http://www.hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-0.html#addition-madd-2007-bl
func (c *Curve) AddMixed(p *Jacobian, q Affine) {
	if !q.NonZero {
		return
	}
	if c.IsIdentityJ(p) {
		c.FromAffine(p, q)
		return
	}
	f := c.F
	nl := f.Limbs()
	var z1z1, u2, s2, h, hh, i, j, r, v, t [fp.MaxLimbs]uint64

	f.Square(z1z1[:nl], p.Z)
	f.Mul(u2[:nl], q.X, z1z1[:nl])
	f.Mul(s2[:nl], q.Y, p.Z)
	f.Mul(s2[:nl], s2[:nl], z1z1[:nl])

	if f.Equal(u2[:nl], p.X) && f.Equal(s2[:nl], p.Y) {
		c.DoubleAssign(p)
		return
	}

	f.Sub(h[:nl], u2[:nl], p.X)
	f.Square(hh[:nl], h[:nl])
	f.Add(i[:nl], hh[:nl], hh[:nl])
	f.Add(i[:nl], i[:nl], i[:nl])
	f.Mul(j[:nl], h[:nl], i[:nl])
	f.Sub(r[:nl], s2[:nl], p.Y)
	f.Add(r[:nl], r[:nl], r[:nl])
	f.Mul(v[:nl], p.X, i[:nl])

	f.Square(t[:nl], r[:nl])
	f.Sub(t[:nl], t[:nl], j[:nl])
	f.Sub(t[:nl], t[:nl], v[:nl])
	f.Sub(t[:nl], t[:nl], v[:nl])

	f.Mul(j[:nl], j[:nl], p.Y)
	f.Add(j[:nl], j[:nl], j[:nl])
	f.Sub(p.Y, v[:nl], t[:nl])
	f.Mul(p.Y, p.Y, r[:nl])
	f.Sub(p.Y, p.Y, j[:nl])

	f.Add(p.Z, p.Z, h[:nl])
	f.Square(p.Z, p.Z)
	f.Sub(p.Z, p.Z, z1z1[:nl])
	f.Sub(p.Z, p.Z, hh[:nl])

	f.Copy(p.X, t[:nl])
}

// DoubleAssign doubles p in place.
// https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-3.html#doubling-dbl-2007-bl
func (c *Curve) DoubleAssign(p *Jacobian) {
	f := c.F
	nl := f.Limbs()
	var xx, yy, yyyy, zz, s, m, t [fp.MaxLimbs]uint64

	f.Square(xx[:nl], p.X)
	f.Square(yy[:nl], p.Y)
	f.Square(yyyy[:nl], yy[:nl])
	f.Square(zz[:nl], p.Z)

	f.Add(s[:nl], p.X, yy[:nl])
	f.Square(s[:nl], s[:nl])
	f.Sub(s[:nl], s[:nl], xx[:nl])
	f.Sub(s[:nl], s[:nl], yyyy[:nl])
	f.Add(s[:nl], s[:nl], s[:nl])

	f.Add(m[:nl], xx[:nl], xx[:nl])
	f.Add(m[:nl], m[:nl], xx[:nl])
	if !c.aIsZero {
		f.Square(t[:nl], zz[:nl])
		f.Mul(t[:nl], t[:nl], c.A)
		f.Add(m[:nl], m[:nl], t[:nl])
	}

	f.Add(p.Z, p.Z, p.Y)
	f.Square(p.Z, p.Z)
	f.Sub(p.Z, p.Z, yy[:nl])
	f.Sub(p.Z, p.Z, zz[:nl])

	f.Square(t[:nl], m[:nl])
	f.Copy(p.X, t[:nl])
	f.Add(t[:nl], s[:nl], s[:nl])
	f.Sub(p.X, p.X, t[:nl])

	f.Sub(p.Y, s[:nl], p.X)
	f.Mul(p.Y, p.Y, m[:nl])
	f.Add(yyyy[:nl], yyyy[:nl], yyyy[:nl])
	f.Add(yyyy[:nl], yyyy[:nl], yyyy[:nl])
	f.Add(yyyy[:nl], yyyy[:nl], yyyy[:nl])
	f.Sub(p.Y, p.Y, yyyy[:nl])
}

// MulUint sets dst = n*p by double-and-add; n is a small weight such as a
// bucket start label, so the loop is O(log n).
func (c *Curve) MulUint(dst *Jacobian, p *Jacobian, n uint64) {
	c.SetIdentityJ(dst)
	if n == 0 || c.IsIdentityJ(p) {
		return
	}
	for b := bits.Len64(n) - 1; b >= 0; b-- {
		c.DoubleAssign(dst)
		if n>>uint(b)&1 == 1 {
			c.AddAssign(dst, p)
		}
	}
}

// MulBig sets dst = n*p for non-negative n, by double-and-add. Used for
// cofactor clearing and reference checks, not in the MSM hot path.
func (c *Curve) MulBig(dst *Jacobian, p *Jacobian, n *big.Int) {
	c.SetIdentityJ(dst)
	for b := n.BitLen() - 1; b >= 0; b-- {
		c.DoubleAssign(dst)
		if n.Bit(b) == 1 {
			c.AddAssign(dst, p)
		}
	}
}

// EqualJ reports whether two Jacobian points are the same group element.
func (c *Curve) EqualJ(p, q *Jacobian) bool {
	if c.IsIdentityJ(p) || c.IsIdentityJ(q) {
		return c.IsIdentityJ(p) == c.IsIdentityJ(q)
	}
	pa, qa := c.NewAffine(), c.NewAffine()
	c.ToAffine(&pa, p)
	c.ToAffine(&qa, q)
	return c.Equal(pa, qa)
}
