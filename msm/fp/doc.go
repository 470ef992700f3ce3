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

// Package fp implements prime-field arithmetic over a runtime modulus,
// tuned for the bulk multiplications of a multi-scalar-multiplication
// pipeline.
//
// Elements are stored in Montgomery form as unsaturated limb vectors.
// For moduli p with p + 2^206 < 2^255 the field uses five 51-bit limbs and
// a fused-multiply-add (FMA) Montgomery multiplication kernel on IEEE-754
// doubles, with a bit-identical integer fallback. Larger moduli (up to 448 bits,
// covering the 381-bit base fields of pairing curves) use sixteen 29-bit
// limbs and a plain integer kernel.
//
// The kernel is selected once at field construction, the same way runtime
// SIMD dispatch picks an implementation at package init: a CPU feature
// probe plus an environment override (MSM_NO_FMA). All three multiply
// normalisation levels (raw, reduced, normalised) are specialised routines
// rather than runtime flags; see variants_gen.go.
//
// Most elements are only weakly reduced: their value is below p + 2^204
// (respectively p + 2^(29*top) for the wide kernel, where top indexes the
// highest nonzero limb of p: p + 2^377 for a 381-bit p) rather than below p.
// Multiplication accepts weakly reduced operands and produces weakly
// reduced results, so canonicalisation happens only at comparison and
// serialisation boundaries.
package fp
