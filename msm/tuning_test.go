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
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPickC(t *testing.T) {
	tests := []struct {
		name string
		n    int
		opts *CallOptions
		want [2]int
	}{
		{"table_2^14", 1 << 14, nil, [2]int{13, 7}},
		{"table_2^16", 1 << 16, nil, [2]int{15, 8}},
		{"table_2^18", 1 << 18, nil, [2]int{16, 9}},
		{"default_2^10", 1 << 10, nil, [2]int{9, 4}},
		{"default_2^12", 1 << 12, nil, [2]int{11, 5}},
		{"tiny_clamped", 2, nil, [2]int{2, 1}},
		{"override_c", 1 << 14, &CallOptions{C: 10}, [2]int{10, 7}},
		{"override_both", 1 << 14, &CallOptions{C: 10, C0: 3}, [2]int{10, 3}},
		{"c0_clamped_below_c", 1 << 10, &CallOptions{C: 4, C0: 9}, [2]int{4, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, c0 := pickC(tt.n, tt.opts)
			if diff := cmp.Diff(tt.want, [2]int{c, c0}); diff != "" {
				t.Errorf("pickC(%d) mismatch (-want +got):\n%s", tt.n, diff)
			}
		})
	}
}

func TestLogShape(t *testing.T) {
	e := testEngine(t, BN254G1())
	g := e.Generator()
	_, log, err := e.MSM([][]byte{scalarOf(big.NewInt(1))}, []PointBytes{g}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if log.N != 1 || log.Windows <= 0 || log.Buckets != 1<<(log.C-1) {
		t.Fatalf("inconsistent log: %+v", log)
	}
	if log.Kernel != "fma51" && log.Kernel != "int51" {
		t.Fatalf("BN254 must ride a 51-limb kernel, got %s", log.Kernel)
	}
	if log.Total <= 0 {
		t.Fatal("total duration missing")
	}
}
