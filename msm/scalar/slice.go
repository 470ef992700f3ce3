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

package scalar

// SignBit marks a negated window in the packed slice encoding.
const SignBit = 1 << 31

// Slice returns the unsigned width-bit window of h starting at bit off.
// Bits past the end of the half-scalar read as zero.
func (h Half) Slice(off, width uint) uint32 {
	if off >= 128 {
		return 0
	}
	w := off / 64
	sh := off % 64
	v := h[w] >> sh
	if sh != 0 && w+1 < 2 {
		v |= h[w+1] << (64 - sh)
	}
	return uint32(v) & (1<<width - 1)
}

// Windows computes the number of c-bit windows covering a half-scalar plus
// the signed-digit carry bit.
func Windows(c uint) int {
	return int((HalfBits + c) / c)
}

// SignedSlices writes the signed c-bit windows of h into dst[0:K]:
// dst[k] = label | SignBit if the window is negated. Labels stay in
// [0, 2^(c-1)]; a zero label means the window places no point. The carry
// from recoding label 2^(c-1)+1 .. 2^c propagates into the next window and
// never overflows the top one.
func SignedSlices(dst []uint32, h Half, c uint) {
	l := uint32(1) << (c - 1)
	carry := uint32(0)
	for k := range dst {
		v := h.Slice(uint(k)*c, c) + carry
		carry = 0
		if v > l {
			v = 2*l - v
			carry = 1
			v |= SignBit
		}
		dst[k] = v
	}
	if carry != 0 {
		panic("scalar: signed window carry out of range")
	}
}
