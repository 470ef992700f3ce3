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

import (
	"errors"
	"math/big"
)

// Configuration errors surfaced by New. They are fatal for the instance.
var (
	// ErrModulusEven reports a modulus without a Montgomery inverse.
	ErrModulusEven = errors.New("fp: modulus must be odd")

	// ErrModulusRange reports a modulus no kernel can carry.
	ErrModulusRange = errors.New("fp: modulus out of supported range")
)

// Field is a prime field F_p with all per-modulus precomputation done once
// at construction: Montgomery constants, the Kaliski correction factor, the
// Tonelli-Shanks root table, and the multiply kernel for this CPU.
//
// A Field is immutable after New and safe for concurrent use.
type Field struct {
	kind Kind

	nl   int    // limb count: 5 or 16
	lb   uint   // bits per limb: 51 or 29
	mask uint64 // 2^lb - 1
	top  int    // index of the highest nonzero limb of p

	p    []uint64   // modulus limbs, plain radix-2^lb
	pf   [5]float64 // float view of p, 51-bit kernel only
	mu   uint64     // -p^-1 mod 2^lb
	pBig *big.Int

	r  []uint64 // R mod p: one in Montgomery form
	r2 []uint64 // R^2 mod p

	// kaliski[k] = R^3 * 2^-k mod p, the almost-inverse correction.
	kaliski []Fe

	// Tonelli-Shanks precomputation: p-1 = q * 2^s with q odd.
	// roots[j] = w^(2^j) where w = z^q for the non-residue z found by
	// Euler's criterion at construction; roots[s-1] is -1.
	s       uint
	qWords  []uint64 // q, 64-bit words
	qp1Half []uint64 // (q+1)/2
	pm1Half []uint64 // (p-1)/2
	roots   []Fe

	mulRaw  func(f *Field, z, x, y Fe)
	mulRed  func(f *Field, z, x, y Fe)
	mulNorm func(f *Field, z, x, y Fe)
}

// New builds the field for modulus p, selecting the 51x5 kernel when
// p + 2^206 < 2^255 and the wide 29x16 kernel otherwise. p must be an odd
// prime; primality is the caller's contract and is not checked.
func New(p *big.Int) (*Field, error) {
	if p.Sign() <= 0 || p.Bit(0) == 0 {
		return nil, ErrModulusEven
	}

	f := &Field{pBig: new(big.Int).Set(p)}

	bound51 := new(big.Int).Lsh(big.NewInt(1), 255)
	bound51.Sub(bound51, new(big.Int).Lsh(big.NewInt(1), 206))
	switch {
	case p.Cmp(bound51) < 0:
		f.nl, f.lb = 5, 51
		f.kind = pickKernel51()
	case p.BitLen() <= 448:
		f.nl, f.lb = 16, 29
		f.kind = Kernel29Int
	default:
		return nil, ErrModulusRange
	}
	f.mask = 1<<f.lb - 1

	f.p = f.plainFromBig(p)
	for i := f.nl - 1; i >= 0; i-- {
		if f.p[i] != 0 {
			f.top = i
			break
		}
	}
	if f.nl == 5 {
		for i := range f.pf {
			f.pf[i] = float64(f.p[i])
		}
	}
	f.mu = negInvMod(f.p[0], f.lb)

	// R = 2^(nl*lb); one and the plain->Montgomery bridge.
	rBig := new(big.Int).Lsh(big.NewInt(1), uint(f.nl)*f.lb)
	rBig.Mod(rBig, p)
	f.r = f.plainFromBig(rBig)
	r2Big := new(big.Int).Lsh(big.NewInt(1), 2*uint(f.nl)*f.lb)
	r2Big.Mod(r2Big, p)
	f.r2 = f.plainFromBig(r2Big)

	switch f.kind {
	case Kernel51FMA:
		f.mulRaw = mul51FMARaw
		f.mulRed = mul51FMARed
		f.mulNorm = mul51FMANorm
	case Kernel51Int:
		f.mulRaw = mul51IntRaw
		f.mulRed = mul51IntRed
		f.mulNorm = mul51IntNorm
	case Kernel29Int:
		f.mulRaw = mul29Raw
		f.mulRed = mul29Red
		f.mulNorm = mul29Norm
	}

	f.initInverse()
	f.initSqrt()
	return f, nil
}

// Kernel reports which multiply kernel the field selected.
func (f *Field) Kernel() Kind { return f.kind }

// Limbs reports the limb count of this field's elements.
func (f *Field) Limbs() int { return f.nl }

// Modulus returns a copy of p.
func (f *Field) Modulus() *big.Int { return new(big.Int).Set(f.pBig) }

// ByteLen is the serialised size of a canonical element.
func (f *Field) ByteLen() int { return (f.pBig.BitLen() + 7) / 8 }

// initSqrt finds a quadratic non-residue by Euler's criterion and fills in
// the root-of-unity table. Construction-time big.Int use keeps this simple;
// nothing here is on the MSM hot path.
func (f *Field) initSqrt() {
	pm1 := new(big.Int).Sub(f.pBig, big.NewInt(1))
	f.pm1Half = wordsFromBig(new(big.Int).Rsh(pm1, 1))

	q := new(big.Int).Set(pm1)
	for q.Bit(0) == 0 {
		q.Rsh(q, 1)
		f.s++
	}
	f.qWords = wordsFromBig(q)
	qp1 := new(big.Int).Add(q, big.NewInt(1))
	f.qp1Half = wordsFromBig(qp1.Rsh(qp1, 1))

	// Euler's criterion: z is a non-residue iff z^((p-1)/2) = -1.
	eul := new(big.Int).Rsh(pm1, 1)
	z := big.NewInt(2)
	for {
		e := new(big.Int).Exp(z, eul, f.pBig)
		if e.Cmp(pm1) == 0 {
			break
		}
		z.Add(z, big.NewInt(1))
	}

	w := new(big.Int).Exp(z, q, f.pBig)
	f.roots = make([]Fe, f.s)
	for j := uint(0); j < f.s; j++ {
		f.roots[j] = f.NewFe()
		f.SetBigInt(f.roots[j], w)
		w.Mul(w, w).Mod(w, f.pBig)
	}
}

// negInvMod returns -p0^-1 mod 2^lb for odd p0, by Newton iteration.
func negInvMod(p0 uint64, lb uint) uint64 {
	inv := p0 // 3 correct bits to start
	for i := 0; i < 6; i++ {
		inv *= 2 - p0*inv
	}
	return -inv & (1<<lb - 1)
}

func wordsFromBig(v *big.Int) []uint64 {
	w := v.Bits()
	z := make([]uint64, len(w))
	for i := range w {
		z[i] = uint64(w[i])
	}
	if len(z) == 0 {
		z = []uint64{0}
	}
	return z
}

// SetBigInt sets z to v mod p, in Montgomery form.
func (f *Field) SetBigInt(z Fe, v *big.Int) {
	var t big.Int
	t.Mod(v, f.pBig)
	copy(z[:f.nl], f.plainFromBig(&t))
	f.mulRed(f, z, z, f.r2)
}

// SetUint64 sets z to v in Montgomery form.
func (f *Field) SetUint64(z Fe, v uint64) {
	f.SetBigInt(z, new(big.Int).SetUint64(v))
}

// ToBigInt returns the canonical value of the Montgomery-form element x.
func (f *Field) ToBigInt(x Fe) *big.Int {
	var t [MaxLimbs]uint64
	f.fromMont(t[:f.nl], x)
	return f.bigFromPlain(t[:f.nl])
}

// fromMont writes the canonical plain value of x into z.
func (f *Field) fromMont(z, x Fe) {
	var one [MaxLimbs]uint64
	one[0] = 1
	f.mulRed(f, z, x, one[:f.nl])
	f.FullReduce(z)
}

// SetBytes sets z from the big-endian canonical encoding of a value < p.
func (f *Field) SetBytes(z Fe, b []byte) {
	f.SetBigInt(z, new(big.Int).SetBytes(b))
}

// Bytes appends the big-endian canonical encoding of x to dst.
func (f *Field) Bytes(dst []byte, x Fe) []byte {
	v := f.ToBigInt(x)
	buf := make([]byte, f.ByteLen())
	v.FillBytes(buf)
	return append(dst, buf...)
}
