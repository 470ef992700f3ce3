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
	"math"
	"math/bits"
)

// Montgomery multiplication for the 5x51 representation, R = 2^255.
//
// The FMA kernel follows Emmart's double-precision scheme. A 51-bit limb
// product splits into a high and a low half with two fused operations:
//
//	hi = fma(x, y, 2^103)          // 2^103 + round(x*y / 2^51)*2^51
//	lo = fma(x, y, c2 - hi)        // 3*2^51 + (x*y - round(x*y/2^51)*2^51)
//
// hi lands in the binade [2^103, 2^104) and lo in [2^52, 2^53), so
// reinterpreting their IEEE-754 bit patterns as integers yields the half
// products plus fixed exponent biases. The biases are cancelled by seeding
// the accumulators with zInitial each round, which also keeps the signed
// accumulators well inside int64 range. The low half is a *signed*
// remainder in [-2^50, 2^50] because the high half rounds to nearest.

const (
	mask51 = 1<<51 - 1

	c51f  float64 = 1 << 51
	c52f  float64 = 1 << 52
	c103f float64 = 1 << 103
	c2f   float64 = c103f + 3*c51f
)

// Exponent biases of the reinterpreted hi and lo bit patterns: hi carries
// the pattern of 2^103, lo the pattern of 2^52 plus the 2^51 offset that
// keeps the signed remainder positive inside the double.
var (
	biasHi = int64(math.Float64bits(c103f))
	biasLo = int64(math.Float64bits(c52f)) + 1<<51

	// zInitial[j] is minus the bias that accumulator j picks up in one
	// round of the outer loop: two lo terms land on slots 0..4 and two hi
	// terms on slots 1..5.
	zInitial = [6]int64{
		-2 * biasLo,
		-2 * (biasLo + biasHi),
		-2 * (biasLo + biasHi),
		-2 * (biasLo + biasHi),
		-2 * (biasLo + biasHi),
		-2 * biasHi,
	}
)

// mul51FMA computes the raw Montgomery product into z: value in [0, 2p+e),
// limbs carried non-negative. Inputs must be weakly reduced with carried
// limbs (each below 2^51) so that every partial product stays under 2^102.
func mul51FMA(f *Field, z, x, y Fe) {
	var xf, yf [5]float64
	for i := 0; i < 5; i++ {
		xf[i] = float64(x[i])
		yf[i] = float64(y[i])
	}

	var zl [6]int64
	for i := 0; i < 5; i++ {
		for j := 0; j < 6; j++ {
			zl[j] += zInitial[j]
		}

		xi := xf[i]
		for j := 0; j < 5; j++ {
			hi := math.FMA(xi, yf[j], c103f)
			lo := math.FMA(xi, yf[j], c2f-hi)
			zl[j+1] += int64(math.Float64bits(hi))
			zl[j] += int64(math.Float64bits(lo))
		}

		// The bias on zl[0] is a multiple of 2^51, so the low 51 bits are
		// exact and determine the Montgomery quotient digit.
		qd := float64(uint64(zl[0]) * f.mu & mask51)
		for j := 0; j < 5; j++ {
			hi := math.FMA(qd, f.pf[j], c103f)
			lo := math.FMA(qd, f.pf[j], c2f-hi)
			zl[j+1] += int64(math.Float64bits(hi))
			zl[j] += int64(math.Float64bits(lo))
		}

		// zl[0] is now an exact multiple of 2^51; fold it up and shift the
		// window down one limb.
		zl[1] += zl[0] >> 51
		copy(zl[:5], zl[1:])
		zl[5] = 0
	}

	carrySigned51(z, &zl)
}

// mul51Int is the integer fallback, bit-identical to mul51FMA: it mirrors
// the FMA kernel's round-to-nearest-even split of each partial product, so
// every intermediate accumulator matches the float path exactly.
func mul51Int(f *Field, z, x, y Fe) {
	var zl [6]int64
	for i := 0; i < 5; i++ {
		xi := x[i]
		for j := 0; j < 5; j++ {
			hi, lo := splitRNE51(xi, y[j])
			zl[j+1] += hi
			zl[j] += lo
		}

		qd := uint64(zl[0]) * f.mu & mask51
		for j := 0; j < 5; j++ {
			hi, lo := splitRNE51(qd, f.p[j])
			zl[j+1] += hi
			zl[j] += lo
		}

		zl[1] += zl[0] >> 51
		copy(zl[:5], zl[1:])
		zl[5] = 0
	}

	carrySigned51(z, &zl)
}

// splitRNE51 returns the product a*b split at bit 51 with the high half
// rounded to nearest, ties to even: the rounding the FMA path performs
// when it adds 2^103. The low half is the signed remainder.
func splitRNE51(a, b uint64) (hi, lo int64) {
	ph, pl := bits.Mul64(a, b)
	h := ph<<13 | pl>>51
	r := pl & mask51
	if r > 1<<50 || (r == 1<<50 && h&1 == 1) {
		return int64(h + 1), int64(r) - 1<<51
	}
	return int64(h), int64(r)
}

// carrySigned51 propagates the signed accumulators into carried,
// non-negative limbs. The total value is non-negative, so the top limb
// absorbs all outstanding carries.
func carrySigned51(z Fe, zl *[6]int64) {
	for j := 0; j < 4; j++ {
		zl[j+1] += zl[j] >> 51
		z[j] = uint64(zl[j]) & mask51
	}
	z[4] = uint64(zl[4])
}
