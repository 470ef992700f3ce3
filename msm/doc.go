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

// Package msm computes multi-scalar multiplications S = sum(s_i * G_i)
// over short Weierstrass curves, sized for the 2^14..2^18 point sets of
// zero-knowledge proof systems.
//
// The pipeline is the bucket method with GLV decomposition: scalars split
// into signed half-length pairs, points expand into their four
// {+-1, +-endo} variants, a counting sort groups point copies by signed
// window value, batched affine addition trees collapse each bucket, and a
// projective column reduction plus one Horner pass produce the result.
//
// Execution is bulk-synchronous: a fixed worker pool runs each phase over
// disjoint index ranges with a barrier in between, sharing one memory
// arena. All field arithmetic goes through the runtime-dispatched kernels
// in msm/fp.
//
// Usage:
//
//	engine, err := msm.New(msm.BLS12381G1())
//	if err != nil { ... }
//	engine.StartThreads(runtime.GOMAXPROCS(0))
//	defer engine.StopThreads()
//
//	result, log, err := engine.MSM(scalars, points, nil)
//	fmt.Println(engine.ToAffine(result), log.Total)
//
// The engine does not attempt constant-time behaviour: MSM inputs in proof
// systems are not secrets.
package msm
