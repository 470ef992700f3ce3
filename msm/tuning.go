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

import "math/bits"

// Window tuning. c is the window width; c0 the column width (log2) used
// when reducing buckets. The table holds measured sweet spots for the MSM
// sizes the engine targets; everything else falls back to c = log2(N)-1,
// c0 = c/2.
var cTable = map[int][2]int{
	14: {13, 7},
	15: {14, 7},
	16: {15, 8},
	17: {16, 8},
	18: {16, 9},
}

// pickC returns (c, c0) for an MSM of n points, honouring explicit
// overrides from CallOptions.
func pickC(n int, o *CallOptions) (c, c0 int) {
	lg := bits.Len(uint(n)) - 1
	if t, ok := cTable[lg]; ok {
		c, c0 = t[0], t[1]
	} else {
		c = lg - 1
		c0 = c / 2
	}
	if o != nil && o.C != 0 {
		c = o.C
	}
	if o != nil && o.C0 != 0 {
		c0 = o.C0
	}
	if c < 2 {
		c = 2
	}
	if c > 20 {
		c = 20
	}
	if c0 < 1 {
		c0 = 1
	}
	if c0 > c-1 {
		c0 = c - 1
	}
	return c, c0
}
