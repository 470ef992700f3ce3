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
	"time"

	"github.com/ajroetker/go-msm/msm/arena"
	"github.com/ajroetker/go-msm/msm/curve"
	"github.com/ajroetker/go-msm/msm/fp"
	"github.com/ajroetker/go-msm/msm/pool"
	"github.com/ajroetker/go-msm/msm/scalar"
)

// Engine computes multi-scalar multiplications over one fixed curve. All
// per-curve precomputation (Montgomery constants, root tables, the GLV
// lattice, kernel selection) happens in New; per-call state lives in the
// engine's arena.
//
// An Engine runs one MSM at a time; the worker pool and arena are shared
// across calls, not across concurrent callers.
type Engine struct {
	f  *fp.Field
	cv *curve.Curve
	gl *scalar.GLV
	pl pool.Pool
	ar *arena.Arena

	params CurveParams
	gen    curve.Affine

	checkPoints bool
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithPointValidation makes every MSM call verify curve membership of its
// input points, failing with ErrBadPoint instead of computing garbage.
func WithPointValidation() Option {
	return func(e *Engine) { e.checkPoints = true }
}

// CallOptions tunes a single MSM call. Zero values mean "use the tuning
// table" and safe batched additions everywhere.
type CallOptions struct {
	// C overrides the window width.
	C int

	// C0 overrides the log2 column width of the bucket reduction.
	C0 int

	// UnsafeAdditions switches the first accumulation pass to the batched
	// addition that assumes distinct nonzero operands. See MSMUnsafe.
	UnsafeAdditions bool
}

// Log reports what one MSM call did and how long each phase took.
type Log struct {
	N         int
	C, C0     int
	Windows   int
	Buckets   int
	Threads   int
	Kernel    string
	MaxBucket int

	Prepare    time.Duration // decompose scalars, expand point variants
	Sort       time.Duration // slice, count, scatter
	Accumulate time.Duration // bucket pair trees
	Reduce     time.Duration // column sums
	Combine    time.Duration // final Horner pass
	Total      time.Duration
}

// New builds an engine for the given curve: arena, kernel selection and
// all constant precomputation. Configuration failures are fatal for the
// instance.
func New(params CurveParams, opts ...Option) (*Engine, error) {
	for _, v := range []*big.Int{params.P, params.Q, params.A, params.B, params.Gx, params.Gy, params.Lambda, params.Beta} {
		if v == nil {
			return nil, ErrBadParams
		}
	}
	f, err := fp.New(params.P)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		f:      f,
		params: params,
		ar:     arena.New(1 << 16),
	}
	for _, o := range opts {
		o(e)
	}

	// The endomorphism constants are checked to be nontrivial cube roots of
	// unity (Beta mod P, Lambda mod Q); that Lambda is Beta's eigenvalue on
	// the subgroup is not checked here.
	one := big.NewInt(1)
	b3 := new(big.Int).Exp(params.Beta, big.NewInt(3), params.P)
	if b3.Cmp(one) != 0 || params.Beta.Cmp(one) == 0 {
		return nil, ErrBadEndomorphism
	}
	l3 := new(big.Int).Exp(params.Lambda, big.NewInt(3), params.Q)
	if l3.Cmp(one) != 0 || params.Lambda.Cmp(one) == 0 {
		return nil, ErrBadEndomorphism
	}

	e.cv = curve.New(f, params.A, params.B, params.Beta)
	e.gl, err = scalar.NewGLV(params.Q, params.Lambda)
	if err != nil {
		return nil, err
	}

	e.gen = e.cv.NewAffine()
	f.SetBigInt(e.gen.X, params.Gx)
	f.SetBigInt(e.gen.Y, params.Gy)
	e.gen.NonZero = true
	if !e.cv.IsOnCurve(e.gen) {
		return nil, ErrBadGenerator
	}

	return e, nil
}

// StartThreads spawns t workers. Starting twice without StopThreads is a
// configuration error.
func (e *Engine) StartThreads(t int) error { return e.pl.Start(t) }

// StopThreads joins the workers. Phase failures are returned by MSM itself.
func (e *Engine) StopThreads() error { return e.pl.Stop() }

// Field exposes the underlying field, mainly for tests and tooling.
func (e *Engine) Field() *fp.Field { return e.f }

// Curve exposes the underlying curve arithmetic.
func (e *Engine) Curve() *curve.Curve { return e.cv }

// Generator returns the subgroup generator in external encoding.
func (e *Engine) Generator() PointBytes {
	return e.pointToBytes(e.gen)
}

// MSM computes sum(scalars[i] * points[i]). It uses safe batched additions
// unless o.UnsafeAdditions is set.
// Scalars are little-endian 32-byte values below the group order; points
// are canonical affine encodings. The result is in Jacobian coordinates;
// use ToAffine for the canonical form.
func (e *Engine) MSM(scalars [][]byte, points []PointBytes, o *CallOptions) (curve.Jacobian, *Log, error) {
	var co CallOptions
	if o != nil {
		co = *o
	}
	return e.msm(scalars, points, &co)
}

// MSMUnsafe is MSM with the first accumulation pass running the batched
// addition that assumes all pairs are nonzero with distinct x coordinates.
// Only sound for statistically independent inputs; adversarial inputs can
// silently corrupt the result. A few percent faster.
func (e *Engine) MSMUnsafe(scalars [][]byte, points []PointBytes, o *CallOptions) (curve.Jacobian, *Log, error) {
	var co CallOptions
	if o != nil {
		co = *o
	}
	co.UnsafeAdditions = true
	return e.msm(scalars, points, &co)
}

// ToAffine converts an MSM result to the external affine encoding.
func (e *Engine) ToAffine(p curve.Jacobian) PointBytes {
	a := e.cv.NewAffine()
	e.cv.ToAffine(&a, &p)
	return e.pointToBytes(a)
}

func (e *Engine) pointToBytes(a curve.Affine) PointBytes {
	if !a.NonZero {
		return PointBytes{
			X:        make([]byte, e.f.ByteLen()),
			Y:        make([]byte, e.f.ByteLen()),
			Infinity: true,
		}
	}
	return PointBytes{
		X: e.f.Bytes(nil, a.X),
		Y: e.f.Bytes(nil, a.Y),
	}
}

// pointFromBytes parses an external point into Montgomery form.
func (e *Engine) pointFromBytes(dst *curve.Affine, p PointBytes) error {
	if p.Infinity {
		dst.NonZero = false
		return nil
	}
	e.f.SetBytes(dst.X, p.X)
	e.f.SetBytes(dst.Y, p.Y)
	dst.NonZero = true
	if e.checkPoints && !e.cv.IsOnCurve(*dst) {
		return ErrBadPoint
	}
	return nil
}
