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

// The field layer is generic over the limb geometry; only the multiply
// kernels are specialised per width. Inputs are weakly reduced with carried
// limbs unless stated otherwise, and in-place aliasing of dst with either
// operand is allowed everywhere.

// Mul sets z = x*y/R mod p, weakly reduced.
func (f *Field) Mul(z, x, y Fe) { f.mulRed(f, z, x, y) }

// MulRaw is Mul without the trailing conditional subtraction. The result
// may reach 2p + 2^(lb*(nl-1)); callers must Reduce before feeding it back
// into a multiply.
func (f *Field) MulRaw(z, x, y Fe) { f.mulRaw(f, z, x, y) }

// MulNorm is Mul with a canonical (< p) result.
func (f *Field) MulNorm(z, x, y Fe) { f.mulNorm(f, z, x, y) }

// Square sets z = x^2/R mod p, weakly reduced.
func (f *Field) Square(z, x Fe) { f.mulRed(f, z, x, x) }

// Add sets z = x + y, weakly reduced.
func (f *Field) Add(z, x, y Fe) {
	var c uint64
	for i := 0; i < f.nl-1; i++ {
		v := x[i] + y[i] + c
		z[i] = v & f.mask
		c = v >> f.lb
	}
	z[f.nl-1] = x[f.nl-1] + y[f.nl-1] + c
	f.Reduce(z)
}

// Double sets z = 2x, weakly reduced.
func (f *Field) Double(z, x Fe) { f.Add(z, x, x) }

// Sub sets z = x - y, weakly reduced. Because elements are unsigned, a
// negative difference gets p added back, twice in the rare case that one
// addition is not enough to clear the borrow.
func (f *Field) Sub(z, x, y Fe) {
	var b int64
	for i := 0; i < f.nl; i++ {
		v := int64(x[i]) - int64(y[i]) + b
		z[i] = uint64(v) & f.mask
		b = v >> f.lb
	}
	for b < 0 {
		var c uint64
		for i := 0; i < f.nl; i++ {
			v := z[i] + f.p[i] + c
			z[i] = v & f.mask
			c = v >> f.lb
		}
		b += int64(c)
	}
}

// Neg sets z = -x. The canonical zero stays zero.
func (f *Field) Neg(z, x Fe) {
	var t [MaxLimbs]uint64
	copy(t[:f.nl], x)
	f.FullReduce(t[:f.nl])
	if plainIsZero(t[:f.nl]) {
		f.SetZero(z)
		return
	}
	f.plainSub(z[:f.nl], f.p, t[:f.nl])
}

// Reduce performs the O(1) weak-reduction step: a conditional subtraction
// of p when the value reached (ptop+1) * 2^(lb*top), where top indexes the
// highest nonzero limb of p. It brings any value below 2p back under the
// weak bound p + 2^(lb*top).
func (f *Field) Reduce(z Fe) {
	for z[f.top] > f.p[f.top] {
		f.plainSub(z[:f.nl], z[:f.nl], f.p)
	}
}

// FullReduce canonicalises a weakly reduced value to < p.
func (f *Field) FullReduce(z Fe) {
	f.Reduce(z)
	if f.plainCmp(z[:f.nl], f.p) >= 0 {
		f.plainSub(z[:f.nl], z[:f.nl], f.p)
	}
}

// Equal reports whether x and y represent the same field element.
func (f *Field) Equal(x, y Fe) bool {
	var tx, ty [MaxLimbs]uint64
	copy(tx[:f.nl], x)
	copy(ty[:f.nl], y)
	f.FullReduce(tx[:f.nl])
	f.FullReduce(ty[:f.nl])
	for i := 0; i < f.nl; i++ {
		if tx[i] != ty[i] {
			return false
		}
	}
	return true
}

// IsZero reports whether x is the zero element.
func (f *Field) IsZero(x Fe) bool {
	var t [MaxLimbs]uint64
	copy(t[:f.nl], x)
	f.FullReduce(t[:f.nl])
	return plainIsZero(t[:f.nl])
}

// Greater reports x > y on canonical values, comparing limbs from the top.
func (f *Field) Greater(x, y Fe) bool {
	var tx, ty [MaxLimbs]uint64
	f.fromMont(tx[:f.nl], x)
	f.fromMont(ty[:f.nl], y)
	return f.plainCmp(tx[:f.nl], ty[:f.nl]) > 0
}

// Exp sets z = x^e mod p by left-to-right binary exponentiation: the top bit
// is taken by starting from x, then bitlen(e)-1 squarings plus
// popcount(e)-1 multiplications. e is little-endian 64-bit words, plain form.
func (f *Field) Exp(z, x Fe, e []uint64) {
	top := len(e) - 1
	for top >= 0 && e[top] == 0 {
		top--
	}
	if top < 0 {
		f.SetOne(z)
		return
	}
	var acc [MaxLimbs]uint64
	copy(acc[:f.nl], x)

	hi := 63
	for hi > 0 && e[top]>>uint(hi)&1 == 0 {
		hi--
	}
	for w := top; w >= 0; w-- {
		start := 63
		if w == top {
			start = hi - 1
		}
		for b := start; b >= 0; b-- {
			f.Square(acc[:f.nl], acc[:f.nl])
			if e[w]>>uint(b)&1 == 1 {
				f.Mul(acc[:f.nl], acc[:f.nl], x)
			}
		}
	}
	copy(z[:f.nl], acc[:f.nl])
}
