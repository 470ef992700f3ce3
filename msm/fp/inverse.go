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

// Inverse sets z = x^-1 in Montgomery form using Kaliski's almost-inverse:
// a binary extended GCD on the plain representation that yields
// x^-1 * R^-1 * 2^k, followed by one multiply with a precomputed
// power-of-two correction indexed by k. Panics on zero input; callers
// guarantee non-zero via explicit checks.
func (f *Field) Inverse(z, x Fe) {
	nl := f.nl
	var u, v, r, s [MaxLimbs]uint64
	copy(u[:nl], f.p)
	copy(v[:nl], x)
	f.FullReduce(v[:nl])
	if plainIsZero(v[:nl]) {
		panic("fp: inverse of zero")
	}
	s[0] = 1

	k := 0
	for !plainIsZero(v[:nl]) {
		switch {
		case u[0]&1 == 0:
			f.plainShr1(u[:nl])
			f.plainShl1(s[:nl])
		case v[0]&1 == 0:
			f.plainShr1(v[:nl])
			f.plainShl1(r[:nl])
		case f.plainCmp(u[:nl], v[:nl]) > 0:
			f.plainSub(u[:nl], u[:nl], v[:nl])
			f.plainShr1(u[:nl])
			f.plainAdd(r[:nl], r[:nl], s[:nl])
			f.plainShl1(s[:nl])
		default:
			f.plainSub(v[:nl], v[:nl], u[:nl])
			f.plainShr1(v[:nl])
			f.plainAdd(s[:nl], s[:nl], r[:nl])
			f.plainShl1(r[:nl])
		}
		k++
	}

	// r = -x^-1 * R^-1 * 2^k mod p, in [0, 2p).
	if f.plainCmp(r[:nl], f.p) >= 0 {
		f.plainSub(r[:nl], r[:nl], f.p)
	}
	f.plainSub(r[:nl], f.p, r[:nl])
	f.mulRed(f, z, r[:nl], f.kaliski[k])
}

// initInverse fills the Kaliski correction table:
// kaliski[k] = R^3 * 2^-k mod p, so that one Montgomery multiply turns the
// almost-inverse into x^-1 in Montgomery form. k never exceeds twice the
// modulus bit length.
func (f *Field) initInverse() {
	maxK := 2*f.pBig.BitLen() + 1
	f.kaliski = make([]Fe, maxK+1)

	r3 := f.bigFromPlain(f.r2)
	r3.Lsh(r3, uint(f.nl)*f.lb)
	r3.Mod(r3, f.pBig)
	f.kaliski[0] = Fe(f.plainFromBig(r3))
	for k := 1; k <= maxK; k++ {
		c := f.NewFe()
		copy(c, f.kaliski[k-1])
		if c[0]&1 == 1 {
			f.plainAdd(c, c, f.p)
		}
		f.plainShr1(c)
		f.kaliski[k] = c
	}
}

// BatchInverse inverts n elements stored back to back in src (stride is
// the field's limb count) into dst, with a single Inverse and 3(n-1)
// multiplications. Zero inputs must be filtered by the caller, and dst
// must not alias src.
func (f *Field) BatchInverse(dst, src []uint64, n int) {
	if n == 0 {
		return
	}
	nl := f.nl
	copy(dst[:nl], src[:nl])
	for i := 1; i < n; i++ {
		f.Mul(dst[i*nl:(i+1)*nl], dst[(i-1)*nl:i*nl], src[i*nl:(i+1)*nl])
	}

	var acc [MaxLimbs]uint64
	f.Inverse(acc[:nl], dst[(n-1)*nl:n*nl])

	for i := n - 1; i >= 1; i-- {
		f.Mul(dst[i*nl:(i+1)*nl], acc[:nl], dst[(i-1)*nl:i*nl])
		f.Mul(acc[:nl], acc[:nl], src[i*nl:(i+1)*nl])
	}
	copy(dst[:nl], acc[:nl])
}
