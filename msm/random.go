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
	"math/rand"

	"github.com/ajroetker/go-msm/msm/curve"
)

// Deterministic input generators for tests and benchmarks. Seed the rng to
// reproduce a run.

// RandomScalars returns n uniform scalars below the group order, encoded
// little-endian.
func (e *Engine) RandomScalars(n int, rng *rand.Rand) [][]byte {
	out := make([][]byte, n)
	var v big.Int
	for i := range out {
		v.Rand(rng, e.params.Q)
		out[i] = scalarFromBig(&v)
	}
	return out
}

// RandomPointsFast returns n pseudorandom subgroup points: random x until
// the curve equation has a root, a coin flip for the root's sign, then
// cofactor clearing. Much cheaper than full scalar multiples of the
// generator, which is what makes large benchmark inputs practical.
func (e *Engine) RandomPointsFast(n int, rng *rand.Rand) []PointBytes {
	f := e.f

	jacs := make([]curve.Jacobian, n)
	affs := make([]curve.Affine, n)
	for i := range jacs {
		jacs[i] = e.cv.NewJacobian()
		affs[i] = e.cv.NewAffine()
	}

	x := f.NewFe()
	rhs := f.NewFe()
	t := f.NewFe()
	y := f.NewFe()
	p := e.cv.NewAffine()
	var xv big.Int

	clearCofactor := e.params.Cofactor != nil && e.params.Cofactor.Cmp(big.NewInt(1)) != 0
	for i := 0; i < n; i++ {
		for {
			xv.Rand(rng, e.params.P)
			f.SetBigInt(x, &xv)

			f.Square(rhs, x)
			f.Mul(rhs, rhs, x)
			f.Mul(t, e.cv.A, x)
			f.Add(rhs, rhs, t)
			f.Add(rhs, rhs, e.cv.B)
			if f.Sqrt(y, rhs) {
				break
			}
		}
		if rng.Intn(2) == 1 {
			f.Neg(y, y)
		}
		f.Copy(p.X, x)
		f.Copy(p.Y, y)
		p.NonZero = true

		if clearCofactor {
			g := e.cv.NewJacobian()
			e.cv.FromAffine(&g, p)
			e.cv.MulBig(&jacs[i], &g, e.params.Cofactor)
		} else {
			e.cv.FromAffine(&jacs[i], p)
		}
	}

	e.cv.BatchJacobianToAffine(jacs, affs)

	out := make([]PointBytes, n)
	for i := range out {
		out[i] = e.pointToBytes(affs[i])
	}
	return out
}
