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

import "math/big"

// ScalarLen is the encoded scalar size: little-endian 32-byte unsigned
// integers below the group order.
const ScalarLen = 32

// PointBytes is the caller-visible point encoding: big-endian canonical
// affine coordinates plus an infinity flag. The engine converts to
// Montgomery form internally.
type PointBytes struct {
	X, Y     []byte
	Infinity bool
}

// scalarToBig parses a little-endian scalar encoding.
func scalarToBig(dst *big.Int, b []byte) {
	var be [ScalarLen]byte
	n := len(b)
	if n > ScalarLen {
		n = ScalarLen
	}
	for i := 0; i < n; i++ {
		be[ScalarLen-1-i] = b[i]
	}
	dst.SetBytes(be[:])
}

// scalarFromBig serialises v as a little-endian 32-byte scalar.
func scalarFromBig(v *big.Int) []byte {
	var be [ScalarLen]byte
	v.FillBytes(be[:])
	le := make([]byte, ScalarLen)
	for i := range be {
		le[i] = be[ScalarLen-1-i]
	}
	return le
}
