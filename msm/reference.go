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

	"github.com/remyoudompheng/bigfft"
)

// Arbitrary-precision reference implementation: affine curve arithmetic on
// big.Ints, sharing nothing with the limb kernels. Tests compare the
// engine's results against this bit for bit after decoding.

type refPoint struct {
	x, y *big.Int
	inf  bool
}

// refGroup does curve arithmetic mod P without any of the engine's
// Montgomery machinery.
type refGroup struct {
	p, a, b *big.Int
}

func newRefGroup(params CurveParams) *refGroup {
	return &refGroup{p: params.P, a: params.A, b: params.B}
}

func (g *refGroup) mod(v *big.Int) *big.Int { return v.Mod(v, g.p) }

// mul multiplies field values through bigfft, which picks schoolbook or
// FFT by operand size.
func (g *refGroup) mul(x, y *big.Int) *big.Int {
	return g.mod(bigfft.Mul(x, y))
}

func (g *refGroup) add(p, q refPoint) refPoint {
	if p.inf {
		return q
	}
	if q.inf {
		return p
	}
	var m big.Int
	if p.x.Cmp(q.x) == 0 {
		sum := new(big.Int).Add(p.y, q.y)
		if g.mod(sum).Sign() == 0 {
			return refPoint{inf: true}
		}
		// tangent: (3x^2 + a) / 2y
		num := g.mul(p.x, p.x)
		num.Mul(num, big.NewInt(3))
		num.Add(num, g.a)
		den := new(big.Int).Lsh(p.y, 1)
		m.Mul(g.mod(num), den.ModInverse(den, g.p))
	} else {
		num := new(big.Int).Sub(q.y, p.y)
		den := new(big.Int).Sub(q.x, p.x)
		m.Mul(g.mod(num), den.ModInverse(g.mod(den), g.p))
	}
	g.mod(&m)

	x3 := g.mul(&m, &m)
	x3.Sub(x3, p.x)
	x3.Sub(x3, q.x)
	g.mod(x3)

	y3 := new(big.Int).Sub(p.x, x3)
	y3 = g.mul(&m, y3)
	y3.Sub(y3, p.y)
	g.mod(y3)

	return refPoint{x: x3, y: y3}
}

func (g *refGroup) scalarMul(s *big.Int, p refPoint) refPoint {
	r := refPoint{inf: true}
	for i := s.BitLen() - 1; i >= 0; i-- {
		r = g.add(r, r)
		if s.Bit(i) == 1 {
			r = g.add(r, p)
		}
	}
	return r
}

// NaiveMSM computes the MSM with the reference arithmetic. Quadratic-ish
// and slow; test sizes only.
func (e *Engine) NaiveMSM(scalars [][]byte, points []PointBytes) (PointBytes, error) {
	if len(scalars) != len(points) {
		return PointBytes{}, ErrSizeMismatch
	}
	g := newRefGroup(e.params)
	acc := refPoint{inf: true}
	var s big.Int
	for i := range scalars {
		scalarToBig(&s, scalars[i])
		if s.Cmp(e.params.Q) >= 0 {
			return PointBytes{}, ErrScalarRange
		}
		if points[i].Infinity {
			continue
		}
		p := refPoint{
			x: new(big.Int).SetBytes(points[i].X),
			y: new(big.Int).SetBytes(points[i].Y),
		}
		acc = g.add(acc, g.scalarMul(&s, p))
	}

	if acc.inf {
		return PointBytes{
			X:        make([]byte, e.f.ByteLen()),
			Y:        make([]byte, e.f.ByteLen()),
			Infinity: true,
		}, nil
	}
	xb := make([]byte, e.f.ByteLen())
	yb := make([]byte, e.f.ByteLen())
	acc.x.FillBytes(xb)
	acc.y.FillBytes(yb)
	return PointBytes{X: xb, Y: yb}, nil
}
