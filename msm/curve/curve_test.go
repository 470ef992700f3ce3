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

package curve

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/ajroetker/go-msm/msm/fp"
)

// The tests run on BN254 G1 (y^2 = x^3 + 3, generator (1, 2)), whose
// 254-bit field rides the 51-limb kernel.

func bn254(t *testing.T) (*Curve, *big.Int) {
	t.Helper()
	p, _ := new(big.Int).SetString("21888242871839275222246405745257275088696311157297823662689037894645226208583", 10)
	lambda, _ := new(big.Int).SetString("4407920970296243842393367215006156084916469457145843978461", 10)
	beta, _ := new(big.Int).SetString("2203960485148121921418603742825762020974279258880205651966", 10)
	f, err := fp.New(p)
	if err != nil {
		t.Fatal(err)
	}
	return New(f, big.NewInt(0), big.NewInt(3), beta), lambda
}

func generator(c *Curve) Affine {
	g := c.NewAffine()
	c.F.SetUint64(g.X, 1)
	c.F.SetUint64(g.Y, 2)
	g.NonZero = true
	return g
}

// randPoint returns k*G for random k below 2^200: a subgroup point.
func randPoint(t *testing.T, c *Curve, rng *rand.Rand) Affine {
	t.Helper()
	gj := c.NewJacobian()
	c.FromAffine(&gj, generator(c))
	k := new(big.Int).Rand(rng, new(big.Int).Lsh(big.NewInt(1), 200))
	r := c.NewJacobian()
	c.MulBig(&r, &gj, k)
	a := c.NewAffine()
	c.ToAffine(&a, &r)
	if !a.NonZero {
		return randPoint(t, c, rng)
	}
	return a
}

func TestGeneratorOnCurve(t *testing.T) {
	c, _ := bn254(t)
	if !c.IsOnCurve(generator(c)) {
		t.Fatal("generator rejected")
	}
	bad := c.NewAffine()
	c.F.SetUint64(bad.X, 1)
	c.F.SetUint64(bad.Y, 3)
	bad.NonZero = true
	if c.IsOnCurve(bad) {
		t.Fatal("off-curve point accepted")
	}
	if !c.IsOnCurve(Affine{}) {
		t.Fatal("identity must be on the curve")
	}
}

func TestAddAffineMatchesJacobian(t *testing.T) {
	c, _ := bn254(t)
	f := c.F
	rng := rand.New(rand.NewSource(41))

	for i := 0; i < 50; i++ {
		a := randPoint(t, c, rng)
		b := randPoint(t, c, rng)
		if f.Equal(a.X, b.X) {
			continue
		}

		den := f.NewFe()
		d := f.NewFe()
		f.Sub(den, b.X, a.X)
		f.Inverse(d, den)
		got := c.NewAffine()
		c.AddAffine(&got, a, b, d)

		want := c.NewJacobian()
		c.FromAffine(&want, a)
		c.AddMixed(&want, b)
		wantA := c.NewAffine()
		c.ToAffine(&wantA, &want)

		if !c.Equal(got, wantA) {
			t.Fatalf("iteration %d: affine and Jacobian addition disagree", i)
		}
		if !c.IsOnCurve(got) {
			t.Fatalf("iteration %d: sum off curve", i)
		}
	}
}

func TestDoubleAffineMatchesJacobian(t *testing.T) {
	c, _ := bn254(t)
	f := c.F
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		a := randPoint(t, c, rng)

		den := f.NewFe()
		d := f.NewFe()
		f.Add(den, a.Y, a.Y)
		f.Inverse(d, den)
		got := c.NewAffine()
		c.DoubleAffine(&got, a, d)

		j := c.NewJacobian()
		c.FromAffine(&j, a)
		c.DoubleAssign(&j)
		want := c.NewAffine()
		c.ToAffine(&want, &j)

		if !c.Equal(got, want) {
			t.Fatalf("iteration %d: affine and Jacobian doubling disagree", i)
		}
	}
}

func TestEndoIsLambda(t *testing.T) {
	c, lambda := bn254(t)
	g := generator(c)

	endo := c.NewAffine()
	c.Endo(&endo, g)
	if !c.IsOnCurve(endo) {
		t.Fatal("endo image off curve")
	}

	gj := c.NewJacobian()
	c.FromAffine(&gj, g)
	lg := c.NewJacobian()
	c.MulBig(&lg, &gj, lambda)
	want := c.NewAffine()
	c.ToAffine(&want, &lg)

	if !c.Equal(endo, want) {
		t.Fatal("endo(G) != lambda*G")
	}
}

func TestNeg(t *testing.T) {
	c, _ := bn254(t)
	rng := rand.New(rand.NewSource(43))
	a := randPoint(t, c, rng)

	n := c.NewAffine()
	c.Neg(&n, a)
	if !c.IsOnCurve(n) {
		t.Fatal("-P off curve")
	}

	// P + (-P) through the Jacobian path is the identity.
	j := c.NewJacobian()
	c.FromAffine(&j, a)
	c.AddMixed(&j, n)
	if !c.IsIdentityJ(&j) {
		t.Fatal("P + (-P) != identity")
	}
}

func TestJacobianIdentities(t *testing.T) {
	c, _ := bn254(t)
	rng := rand.New(rand.NewSource(44))
	a := randPoint(t, c, rng)

	p := c.NewJacobian()
	q := c.NewJacobian()
	c.SetIdentityJ(&p)
	c.FromAffine(&q, a)

	// identity + q = q
	c.AddAssign(&p, &q)
	if !c.EqualJ(&p, &q) {
		t.Fatal("0 + Q != Q")
	}

	// doubling the identity stays the identity
	z := c.NewJacobian()
	c.SetIdentityJ(&z)
	c.DoubleAssign(&z)
	if !c.IsIdentityJ(&z) {
		t.Fatal("2*0 != 0")
	}

	// adding a point to itself via AddAssign routes through doubling
	r := c.NewJacobian()
	c.FromAffine(&r, a)
	s := c.NewJacobian()
	c.FromAffine(&s, a)
	c.AddAssign(&r, &s)
	c.DoubleAssign(&s)
	if !c.EqualJ(&r, &s) {
		t.Fatal("P + P != 2P")
	}
}

func TestMulUint(t *testing.T) {
	c, _ := bn254(t)
	rng := rand.New(rand.NewSource(45))
	a := randPoint(t, c, rng)
	aj := c.NewJacobian()
	c.FromAffine(&aj, a)

	acc := c.NewJacobian()
	c.SetIdentityJ(&acc)
	got := c.NewJacobian()
	for n := uint64(0); n <= 17; n++ {
		c.MulUint(&got, &aj, n)
		if !c.EqualJ(&got, &acc) {
			t.Fatalf("MulUint(%d) disagrees with repeated addition", n)
		}
		c.AddAssign(&acc, &aj)
	}
}

func TestSlabViews(t *testing.T) {
	c, _ := bn254(t)
	rng := rand.New(rand.NewSource(46))
	slab := make([]uint64, 4*c.SizeAffine())

	pts := make([]Affine, 4)
	for i := range pts {
		pts[i] = randPoint(t, c, rng)
		c.SetView(slab, i, pts[i])
	}
	for i := range pts {
		if !c.Equal(c.View(slab, i), pts[i]) {
			t.Fatalf("slot %d round trip failed", i)
		}
	}
	c.SetIdentity(slab, 2)
	if c.View(slab, 2).NonZero {
		t.Fatal("SetIdentity did not clear the flag")
	}
	if !c.Equal(c.View(slab, 3), pts[3]) {
		t.Fatal("SetIdentity touched the neighbour slot")
	}
}
