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

// Montgomery multiplication for the wide 16x29 representation, R = 2^464.
// This kernel carries base fields beyond the 255-bit budget of the FMA
// representation, such as the 381-bit field of BLS12-381 G1.
//
// Plain CIOS: interleave one limb of the schoolbook product with one
// Montgomery quotient digit per round. 29-bit limbs leave 6 bits of
// headroom above each 58-bit partial product, so the running carry never
// overflows uint64.

const mask29 = 1<<29 - 1

// mul29 computes the raw Montgomery product into z: value below 2p,
// limbs carried non-negative.
func mul29(f *Field, z, x, y Fe) {
	var t [17]uint64
	for i := 0; i < 16; i++ {
		xi := x[i]
		var c uint64
		for j := 0; j < 16; j++ {
			v := t[j] + xi*y[j] + c
			t[j] = v & mask29
			c = v >> 29
		}
		t[16] += c

		qd := t[0] * f.mu & mask29
		c = 0
		for j := 0; j < 16; j++ {
			v := t[j] + qd*f.p[j] + c
			t[j] = v & mask29
			c = v >> 29
		}
		t[16] += c

		// t[0] is zero by choice of qd; shift the window down one limb.
		copy(t[:16], t[1:])
		t[16] = 0
	}
	copy(z[:16], t[:16])
}
