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
	"math/rand"
	"testing"
)

// jacAdd is the reference for a single batched slot.
func jacAdd(c *Curve, a, b Affine) Affine {
	j := c.NewJacobian()
	c.FromAffine(&j, a)
	c.AddMixed(&j, b)
	r := c.NewAffine()
	c.ToAffine(&r, &j)
	return r
}

func TestBatchAddSafe(t *testing.T) {
	c, _ := bn254(t)
	rng := rand.New(rand.NewSource(51))

	// Exercise every classification: general pairs, both identities,
	// equal points (doubling), negated pairs, and a 2-torsion-style zero-y
	// case is impossible on BN254 so it is covered by negation instead.
	const n = 24
	slab := make([]uint64, 3*n*c.SizeAffine())
	g := make([]int32, n)
	h := make([]int32, n)
	s := make([]int32, n)
	want := make([]Affine, n)

	for i := 0; i < n; i++ {
		var a, b Affine
		switch i % 5 {
		case 0: // general
			a, b = randPoint(t, c, rng), randPoint(t, c, rng)
		case 1: // G identity
			a, b = Affine{}, randPoint(t, c, rng)
		case 2: // H identity
			a, b = randPoint(t, c, rng), Affine{}
		case 3: // equal: doubling
			a = randPoint(t, c, rng)
			b = a
		default: // negated: identity result
			a = randPoint(t, c, rng)
			nb := c.NewAffine()
			c.Neg(&nb, a)
			b = nb
		}
		gi, hi, si := int32(3*i), int32(3*i+1), int32(3*i+2)
		if a.NonZero {
			c.SetView(slab, int(gi), a)
		}
		if b.NonZero {
			c.SetView(slab, int(hi), b)
		}
		g[i], h[i], s[i] = gi, hi, si
		want[i] = jacAdd(c, a, b)
	}

	sc := c.NewBatchScratch(n)
	c.BatchAdd(slab, g, h, s, sc)

	for i := 0; i < n; i++ {
		got := c.View(slab, int(s[i]))
		if !c.Equal(got, want[i]) {
			t.Fatalf("slot %d (class %d): batch add disagrees with Jacobian reference", i, i%5)
		}
	}
}

func TestBatchAddDestinationAliasing(t *testing.T) {
	c, _ := bn254(t)
	rng := rand.New(rand.NewSource(52))

	// The accumulation tree writes each sum over its left operand.
	const n = 8
	slab := make([]uint64, 2*n*c.SizeAffine())
	g := make([]int32, n)
	h := make([]int32, n)
	s := make([]int32, n)
	want := make([]Affine, n)

	for i := 0; i < n; i++ {
		a, b := randPoint(t, c, rng), randPoint(t, c, rng)
		c.SetView(slab, 2*i, a)
		c.SetView(slab, 2*i+1, b)
		g[i], h[i], s[i] = int32(2*i), int32(2*i+1), int32(2*i)
		want[i] = jacAdd(c, a, b)
	}

	sc := c.NewBatchScratch(n)
	c.BatchAdd(slab, g, h, s, sc)
	for i := 0; i < n; i++ {
		if !c.Equal(c.View(slab, 2*i), want[i]) {
			t.Fatalf("slot %d: in-place batch add wrong", i)
		}
	}
}

func TestBatchAddUnsafeMatchesSafe(t *testing.T) {
	c, _ := bn254(t)
	rng := rand.New(rand.NewSource(53))

	const n = 16
	safe := make([]uint64, 2*n*c.SizeAffine())
	uns := make([]uint64, 2*n*c.SizeAffine())
	g := make([]int32, n)
	h := make([]int32, n)
	s := make([]int32, n)

	for i := 0; i < n; i++ {
		a, b := randPoint(t, c, rng), randPoint(t, c, rng)
		if c.F.Equal(a.X, b.X) {
			t.Skip("astronomically unlikely x collision")
		}
		c.SetView(safe, 2*i, a)
		c.SetView(safe, 2*i+1, b)
		c.SetView(uns, 2*i, a)
		c.SetView(uns, 2*i+1, b)
		g[i], h[i], s[i] = int32(2*i), int32(2*i+1), int32(2*i)
	}

	sc := c.NewBatchScratch(n)
	c.BatchAdd(safe, g, h, s, sc)
	c.BatchAddUnsafe(uns, g, h, s, sc)

	for i := 0; i < n; i++ {
		if !c.Equal(c.View(safe, 2*i), c.View(uns, 2*i)) {
			t.Fatalf("slot %d: unsafe variant diverges", i)
		}
	}
}

func TestBatchDoubleInPlace(t *testing.T) {
	c, _ := bn254(t)
	rng := rand.New(rand.NewSource(54))

	const n = 10
	slab := make([]uint64, n*c.SizeAffine())
	idx := make([]int32, n)
	want := make([]Affine, n)

	for i := 0; i < n; i++ {
		var a Affine
		if i == 4 {
			a = Affine{} // identity doubles to identity
		} else {
			a = randPoint(t, c, rng)
		}
		if a.NonZero {
			c.SetView(slab, i, a)
		}
		idx[i] = int32(i)

		j := c.NewJacobian()
		c.FromAffine(&j, a)
		c.DoubleAssign(&j)
		w := c.NewAffine()
		c.ToAffine(&w, &j)
		want[i] = w
	}

	sc := c.NewBatchScratch(n)
	c.BatchDoubleInPlace(slab, idx, sc)

	for i := 0; i < n; i++ {
		if !c.Equal(c.View(slab, i), want[i]) {
			t.Fatalf("slot %d: batch double wrong", i)
		}
	}
}

func TestBatchJacobianToAffine(t *testing.T) {
	c, _ := bn254(t)
	rng := rand.New(rand.NewSource(55))

	const n = 12
	jacs := make([]Jacobian, n)
	res := make([]Affine, n)
	want := make([]Affine, n)
	for i := 0; i < n; i++ {
		jacs[i] = c.NewJacobian()
		res[i] = c.NewAffine()
		want[i] = c.NewAffine()
		if i == 3 || i == n-1 {
			c.SetIdentityJ(&jacs[i])
		} else {
			a := randPoint(t, c, rng)
			c.FromAffine(&jacs[i], a)
			c.DoubleAssign(&jacs[i]) // give it a nontrivial Z
		}
		c.ToAffine(&want[i], &jacs[i])
	}

	c.BatchJacobianToAffine(jacs, res)
	for i := 0; i < n; i++ {
		if !c.Equal(res[i], want[i]) {
			t.Fatalf("slot %d: batch normalisation wrong", i)
		}
	}
}
