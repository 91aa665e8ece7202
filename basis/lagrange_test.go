// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_points01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("points01: Gauss-Legendre and Gauss-Lobatto point sets")

	for n := 1; n <= 6; n++ {
		x := GaussLegendre(n)
		chk.IntAssert(len(x), n)
		var sum float64
		for _, xi := range x {
			sum += xi
		}
		chk.Float64(tst, "GL points sum to 0 (symmetric)", 1e-13, sum, 0)
	}
	for n := 2; n <= 6; n++ {
		x := GaussLobatto(n)
		chk.IntAssert(len(x), n)
		chk.Float64(tst, "GLL first point", 1e-14, x[0], -1)
		chk.Float64(tst, "GLL last point", 1e-14, x[n-1], 1)
	}
}

func Test_weights01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("weights01: quadrature weights sum to the measure of [-1,1]")

	for n := 1; n <= 6; n++ {
		w := Weights(Legendre, n)
		var sum float64
		for _, wi := range w {
			sum += wi
		}
		chk.Float64(tst, "GL weights sum to 2", 1e-12, sum, 2)
	}
	for n := 2; n <= 6; n++ {
		w := Weights(Lobatto, n)
		var sum float64
		for _, wi := range w {
			sum += wi
		}
		chk.Float64(tst, "GLL weights sum to 2", 1e-12, sum, 2)
	}
}

func Test_lagrange01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lagrange01: basis is nodal (Kronecker delta) and partitions unity")

	x := GaussLobatto(5)
	lag := NewLagrange1D(x)
	out := make([]float64, 5)
	for i, xi := range x {
		lag.EvalBasis(out, xi)
		for j := 0; j < 5; j++ {
			expected := 0.0
			if i == j {
				expected = 1.0
			}
			chk.Float64(tst, "L_j(x_i)", 1e-13, out[j], expected)
		}
	}

	// partition of unity and exact reproduction of a linear function at an
	// arbitrary interior point
	r := 0.37
	lag.EvalBasis(out, r)
	var sum, interp float64
	for j, xj := range x {
		sum += out[j]
		interp += out[j] * (2*xj + 1) // f(x) = 2x+1 is exactly reproduced
	}
	chk.Float64(tst, "partition of unity", 1e-13, sum, 1)
	chk.Float64(tst, "exact linear reproduction", 1e-12, interp, 2*r+1)
}

func Test_lagrange02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lagrange02: derivative matrix reproduces d/dr of a cubic exactly")

	x := GaussLobatto(4) // p=3 exactness
	lag := NewLagrange1D(x)
	D := lag.DerivMatrix()

	f := func(r float64) float64 { return 1 + 2*r - 3*r*r + 4*r*r*r }
	dfdr := func(r float64) float64 { return 2 - 6*r + 12*r*r }

	fvals := make([]float64, len(x))
	for i, xi := range x {
		fvals[i] = f(xi)
	}
	for i, xi := range x {
		var d float64
		for j := range x {
			d += D[i][j] * fvals[j]
		}
		chk.Float64(tst, "dF/dr", 1e-10, d, dfdr(xi))
	}
}
