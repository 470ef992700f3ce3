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
	"errors"
	"math/big"
)

// CurveParams describes a short Weierstrass curve y^2 = x^3 + Ax + B over
// F_P with a prime-order subgroup of size Q and a GLV endomorphism
// (x, y) -> (Beta*x, y) acting as multiplication by Lambda on that
// subgroup. All values are canonical non-negative integers.
type CurveParams struct {
	P        *big.Int // base field modulus
	Q        *big.Int // subgroup order
	Cofactor *big.Int
	A, B     *big.Int // curve coefficients
	Gx, Gy   *big.Int // subgroup generator
	Lambda   *big.Int // endomorphism eigenvalue mod Q
	Beta     *big.Int // cube root of unity mod P
}

// Configuration errors, surfaced at construction and fatal for the
// instance.
var (
	// ErrBadParams reports missing curve parameters.
	ErrBadParams = errors.New("msm: incomplete curve parameters")

	// ErrBadEndomorphism reports Beta/Lambda values that are not a valid
	// GLV pair for the curve.
	ErrBadEndomorphism = errors.New("msm: invalid endomorphism constants")

	// ErrBadGenerator reports a generator that does not satisfy the curve
	// equation.
	ErrBadGenerator = errors.New("msm: generator not on curve")
)

// Input errors, surfaced per MSM call.
var (
	// ErrSizeMismatch reports scalar and point vectors of different length.
	ErrSizeMismatch = errors.New("msm: scalar and point counts differ")

	// ErrEmptyInput reports an MSM over zero terms.
	ErrEmptyInput = errors.New("msm: empty input")

	// ErrScalarRange reports a scalar encoding that is not a canonical
	// value below the group order.
	ErrScalarRange = errors.New("msm: scalar out of range")

	// ErrBadPoint reports an input point failing curve membership
	// validation.
	ErrBadPoint = errors.New("msm: point not on curve")
)

// BN254G1 returns the parameters of the BN254 (alt_bn128) G1 group. Its
// 254-bit base field rides the 51-limb FMA kernel.
func BN254G1() CurveParams {
	d := func(s string) *big.Int {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			panic("msm: bad decimal constant")
		}
		return v
	}
	return CurveParams{
		P:        d("21888242871839275222246405745257275088696311157297823662689037894645226208583"),
		Q:        d("21888242871839275222246405745257275088548364400416034343698204186575808495617"),
		Cofactor: big.NewInt(1),
		A:        big.NewInt(0),
		B:        big.NewInt(3),
		Gx:       big.NewInt(1),
		Gy:       big.NewInt(2),
		Lambda:   d("4407920970296243842393367215006156084916469457145843978461"),
		Beta:     d("2203960485148121921418603742825762020974279258880205651966"),
	}
}

// BLS12381G1 returns the parameters of the BLS12-381 G1 group, the curve
// the end-to-end tests and benchmarks run on.
func BLS12381G1() CurveParams {
	h := func(s string) *big.Int {
		v, ok := new(big.Int).SetString(s, 16)
		if !ok {
			panic("msm: bad hex constant")
		}
		return v
	}
	return CurveParams{
		P:        h("1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab"),
		Q:        h("73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001"),
		Cofactor: h("396c8c005555e1568c00aaab0000aaab"),
		A:        big.NewInt(0),
		B:        big.NewInt(4),
		Gx:       h("17f1d3a73197d7942695638c4fa9ac0fc3688c4f9774b905a14e3a3f171bac586c55e83ff97a1aeffb3af00adb22c6bb"),
		Gy:       h("08b3f481e3aaa0f1a09e30ed741d8ae4fcf5e095d5d00af600db18cb2c04b3edd03cc744a2888ae40caa232946c5e7e1"),
		Lambda:   h("ac45a4010001a40200000000ffffffff"),
		Beta:     h("1a0111ea397fe699ec02408663d4de85aa0d857d89759ad4897d29650fb85f9b409427eb4f49fffd8bfd00000000aaac"),
	}
}
