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

package fp

// Sqrt sets z to a square root of x and returns true, or returns false
// when x is a quadratic non-residue (z is then undefined). Tonelli-Shanks
// over the precomputed root-of-unity table; the non-residue behind the
// table was found by Euler's criterion at construction.
func (f *Field) Sqrt(z, x Fe) bool {
	nl := f.nl
	if f.IsZero(x) {
		f.SetZero(z)
		return true
	}

	var t, r, b, tt [MaxLimbs]uint64
	f.Exp(t[:nl], x, f.pm1Half)
	if !f.Equal(t[:nl], f.r) {
		return false
	}

	f.Exp(t[:nl], x, f.qWords)
	f.Exp(r[:nl], x, f.qp1Half)
	for !f.Equal(t[:nl], f.r) {
		// Least i with t^(2^i) = 1; t has 2-power order > 1 here.
		f.Square(tt[:nl], t[:nl])
		i := uint(1)
		for !f.Equal(tt[:nl], f.r) {
			f.Square(tt[:nl], tt[:nl])
			i++
		}
		copy(b[:nl], f.roots[f.s-i-1])
		f.Mul(r[:nl], r[:nl], b[:nl])
		f.Square(b[:nl], b[:nl])
		f.Mul(t[:nl], t[:nl], b[:nl])
	}
	copy(z[:nl], r[:nl])
	return true
}
