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
	"github.com/ajroetker/go-msm/msm/curve"
	"github.com/ajroetker/go-msm/msm/pool"
)

// Bucket reduction: each window's weighted bucket sum
// P_k = sum(l * bucket[k][l]) is split into columns of 2^c0 labels. A
// column accumulates a running row sum and its triangle sum from the top
// label downward:
//
//	triangle = sum((l+1) * bucket[lstart+l]),  l = length-1 .. 0
//	column   = triangle + (lstart-1) * row
//
// Everything here is projective: per-column point counts are small, so
// inversion amortisation no longer pays.
func (r *run) reduceColumns() func(int) error {
	e := r.e
	parts := e.pl.Workers()
	jobs := r.k * r.nCol
	return func(w int) error {
		start, end := pool.Range(jobs, parts, w)
		row := e.cv.NewJacobian()
		tri := e.cv.NewJacobian()
		tmp := e.cv.NewJacobian()
		for jb := start; jb < end; jb++ {
			k := jb / r.nCol
			j := jb % r.nCol
			lstart := 1 + j*r.colLen
			length := min(r.colLen, r.l-(lstart-1))

			e.cv.SetIdentityJ(&row)
			e.cv.SetIdentityJ(&tri)
			for l := length - 1; l >= 0; l-- {
				label := lstart + l
				bs := r.boundary[k*(r.l+1)+label-1]
				be := r.boundary[k*(r.l+1)+label]
				if be > bs {
					// The bucket sum sits at the bucket's base slot.
					e.cv.AddMixed(&row, e.cv.View(r.sorted, int(bs)))
				}
				e.cv.AddAssign(&tri, &row)
			}
			if lstart > 1 {
				e.cv.MulUint(&tmp, &row, uint64(lstart-1))
				e.cv.AddAssign(&tri, &tmp)
			}

			col := e.cv.JacobianView(r.columns, jb)
			e.cv.CopyJ(&col, &tri)
		}
		return nil
	}
}

// combine folds the per-window partition sums into the MSM result with a
// Horner pass: c doublings then one addition per window, highest window
// first. Serial; well under a percent of the runtime.
func (r *run) combine(res *curve.Jacobian) {
	e := r.e
	for k := r.k - 1; k >= 0; k-- {
		if k < r.k-1 {
			for i := 0; i < r.c; i++ {
				e.cv.DoubleAssign(res)
			}
		}
		for j := 0; j < r.nCol; j++ {
			col := e.cv.JacobianView(r.columns, k*r.nCol+j)
			e.cv.AddAssign(res, &col)
		}
	}
}
