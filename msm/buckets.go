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

// Bucket accumulation: collapse every bucket to a single sum with a tree
// of batched affine additions. A sequential accumulator would serialise a
// bucket's additions; pairing at doubling strides exposes sum(size/2)
// independent additions per level, which is exactly the parallelism the
// batched inversion amortises.
//
// Each worker owns a contiguous bucket range, so bucket memory is written
// by exactly one worker and the passes need no cross-worker barriers.
func (r *run) accumulate() func(int) error {
	e := r.e
	return func(w int) error {
		rng := r.bucketRange[w]
		if rng[0] == rng[1] {
			return nil
		}

		maxSz := int32(0)
		for flat := rng[0]; flat < rng[1]; flat++ {
			k := int(flat) / r.l
			l := int(flat)%r.l + 1
			sz := r.boundary[k*(r.l+1)+l] - r.boundary[k*(r.l+1)+l-1]
			if sz > maxSz {
				maxSz = sz
			}
		}

		pairCap := r.scratchWords[w] / e.f.Limbs()
		g := make([]int32, 0, pairCap)
		h := make([]int32, 0, pairCap)
		s := make([]int32, 0, pairCap)
		sc := e.cv.BindScratch(r.den[w], r.inv[w], make([]uint8, pairCap))

		for m := int32(1); m < maxSz; m *= 2 {
			g, h, s = g[:0], h[:0], s[:0]
			for flat := rng[0]; flat < rng[1]; flat++ {
				k := int(flat) / r.l
				l := int(flat)%r.l + 1
				bs := r.boundary[k*(r.l+1)+l-1]
				be := r.boundary[k*(r.l+1)+l]
				for ptr := bs; ptr+m < be; ptr += 2 * m {
					g = append(g, ptr)
					h = append(h, ptr+m)
					s = append(s, ptr)
				}
			}
			if len(g) == 0 {
				continue
			}
			// First-pass pairs are distinct random points; later passes
			// can collide and must take the exact paths.
			if m == 1 && r.unsafe {
				e.cv.BatchAddUnsafe(r.sorted, g, h, s, sc)
			} else {
				e.cv.BatchAdd(r.sorted, g, h, s, sc)
			}
		}
		return nil
	}
}
