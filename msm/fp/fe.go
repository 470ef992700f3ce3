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

import "math/big"

// Fe is a field element: a view of nl unsaturated limbs, usually aliasing
// arena memory. The batched MSM algorithms depend on elements living in
// flat slabs, so Fe is a slice header over those slabs rather than a
// fixed-size struct.
type Fe []uint64

// MaxLimbs is the limb count of the widest kernel. Stack scratch in this
// package is sized by it.
const MaxLimbs = 16

// NewFe allocates a standalone zero element of the field's width.
func (f *Field) NewFe() Fe {
	return make(Fe, f.nl)
}

// Copy sets dst = src. Both must have the field's limb count.
func (f *Field) Copy(dst, src Fe) {
	copy(dst[:f.nl], src[:f.nl])
}

// SetZero clears z to the canonical zero.
func (f *Field) SetZero(z Fe) {
	for i := 0; i < f.nl; i++ {
		z[i] = 0
	}
}

// SetOne sets z to one in Montgomery form.
func (f *Field) SetOne(z Fe) {
	copy(z[:f.nl], f.r)
}

// plain little-endian limb helpers shared by the Kaliski inverse and the
// construction-time precomputation. They treat limb vectors as plain
// (non-Montgomery) integers in radix 2^lb, allowing the top limb to carry
// a few extra bits.

func (f *Field) plainFromBig(v *big.Int) []uint64 {
	z := make([]uint64, f.nl)
	var t, w big.Int
	t.Set(v)
	mask := new(big.Int).SetUint64(f.mask)
	for i := 0; i < f.nl; i++ {
		z[i] = w.And(&t, mask).Uint64()
		t.Rsh(&t, f.lb)
	}
	return z
}

func (f *Field) bigFromPlain(x []uint64) *big.Int {
	v := new(big.Int)
	for i := f.nl - 1; i >= 0; i-- {
		v.Lsh(v, f.lb)
		v.Add(v, new(big.Int).SetUint64(x[i]))
	}
	return v
}

// plainCmp compares two plain values. Limbs below the top must be masked.
func (f *Field) plainCmp(x, y []uint64) int {
	for i := f.nl - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] > y[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// plainSub sets z = x - y, assuming x >= y.
func (f *Field) plainSub(z, x, y []uint64) {
	var b int64
	for i := 0; i < f.nl-1; i++ {
		v := int64(x[i]) - int64(y[i]) + b
		z[i] = uint64(v) & f.mask
		b = v >> f.lb
	}
	z[f.nl-1] = uint64(int64(x[f.nl-1]) - int64(y[f.nl-1]) + b)
}

// plainAdd sets z = x + y.
func (f *Field) plainAdd(z, x, y []uint64) {
	var c uint64
	for i := 0; i < f.nl-1; i++ {
		v := x[i] + y[i] + c
		z[i] = v & f.mask
		c = v >> f.lb
	}
	z[f.nl-1] = x[f.nl-1] + y[f.nl-1] + c
}

// plainShr1 halves a plain value in place.
func (f *Field) plainShr1(z []uint64) {
	for i := 0; i < f.nl-1; i++ {
		z[i] = (z[i] >> 1) | ((z[i+1] & 1) << (f.lb - 1))
	}
	z[f.nl-1] >>= 1
}

// plainShl1 doubles a plain value in place. Overflow collects in the top
// limb, which callers keep well below 2^63.
func (f *Field) plainShl1(z []uint64) {
	var c uint64
	for i := 0; i < f.nl-1; i++ {
		v := z[i]<<1 | c
		z[i] = v & f.mask
		c = v >> f.lb
	}
	z[f.nl-1] = z[f.nl-1]<<1 | c
}

func plainIsZero(x []uint64) bool {
	for _, w := range x {
		if w != 0 {
			return false
		}
	}
	return true
}
