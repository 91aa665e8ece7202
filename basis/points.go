// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package basis implements the 1-D polynomial machinery of the FR scheme:
// Lagrange evaluation at arbitrary points, the standard Gauss-Legendre and
// Gauss-Lobatto point sets used for solution/flux points, and the nodal
// derivative matrices used to build the element operator cache.
package basis

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// PointSet identifies which 1-D point distribution a solution-point set uses.
type PointSet int

const (
	// Legendre selects Gauss-Legendre points (open, not including ±1).
	Legendre PointSet = iota
	// Lobatto selects Gauss-Lobatto-Legendre points (closed, includes ±1).
	Lobatto
)

// legendreAndDeriv evaluates the Legendre polynomial P_n(x) and its
// derivative P_n'(x) using the three-term recurrence.
func legendreAndDeriv(n int, x float64) (p, dp float64) {
	if n == 0 {
		return 1, 0
	}
	p0, p1 := 1.0, x
	for k := 1; k < n; k++ {
		p2 := ((2*float64(k)+1)*x*p1 - float64(k)*p0) / float64(k+1)
		p0, p1 = p1, p2
	}
	// dP_n/dx = n(x*P_n - P_{n-1}) / (x^2-1), handled at call sites for x=±1
	dp = float64(n) * (x*p1 - p0) / (x*x - 1)
	p = p1
	return
}

// GaussLegendre returns the n Gauss-Legendre points (roots of P_n) on
// [-1,1], sorted ascending. n must be >= 1.
func GaussLegendre(n int) (x []float64) {
	if n < 1 {
		chk.Panic("basis.GaussLegendre requires n >= 1 (got %d)", n)
	}
	x = make([]float64, n)
	if n == 1 {
		x[0] = 0
		return
	}
	m := (n + 1) / 2
	for i := 0; i < m; i++ {
		// Chebyshev initial guess
		z := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(n) + 0.5))
		for iter := 0; iter < 100; iter++ {
			p, dp := legendreAndDeriv(n, z)
			dz := -p / dp
			z += dz
			if math.Abs(dz) < 1e-15 {
				break
			}
		}
		x[i] = -z
		x[n-1-i] = z
	}
	if n%2 == 1 {
		x[(n-1)/2] = 0
	}
	return
}

// GaussLobatto returns the n Gauss-Lobatto-Legendre points on [-1,1]
// (includes the endpoints), sorted ascending. n must be >= 2.
func GaussLobatto(n int) (x []float64) {
	if n < 2 {
		chk.Panic("basis.GaussLobatto requires n >= 2 (got %d)", n)
	}
	x = make([]float64, n)
	x[0] = -1
	x[n-1] = 1
	if n == 2 {
		return
	}
	// interior points are roots of P'_{n-1}, found via Newton on the
	// (n-2) roots of the derivative of the Legendre polynomial of degree n-1
	m := n - 2
	for i := 0; i < m; i++ {
		z := -math.Cos(math.Pi * (float64(i) + 1) / float64(n-1))
		for iter := 0; iter < 100; iter++ {
			// P'_{n-1}(z) = 0; use the recurrence for P_{n-1} and its
			// first/second derivative via the Legendre ODE
			p, dp := legendreAndDeriv(n-1, z)
			// second derivative from (1-z^2) P'' - 2z P' + n(n-1) P = 0
			nn := float64(n - 1)
			d2p := (2*z*dp - nn*(nn+1)*p) / (1 - z*z)
			dz := -dp / d2p
			z += dz
			if math.Abs(dz) < 1e-15 {
				break
			}
		}
		x[i+1] = z
	}
	return
}

// Points returns the n points of the given distribution on [-1,1].
func Points(kind PointSet, n int) []float64 {
	switch kind {
	case Legendre:
		return GaussLegendre(n)
	case Lobatto:
		return GaussLobatto(n)
	}
	chk.Panic("basis.Points: unknown point set %v", kind)
	return nil
}

// Weights returns the n quadrature weights matching Points(kind, n), used by
// the element-mean computation in the positivity-preserving squeeze.
func Weights(kind PointSet, n int) []float64 {
	x := Points(kind, n)
	w := make([]float64, n)
	switch kind {
	case Legendre:
		for i, xi := range x {
			_, dp := legendreAndDeriv(n, xi)
			w[i] = 2 / ((1 - xi*xi) * dp * dp)
		}
	case Lobatto:
		nn := float64(n - 1)
		for i, xi := range x {
			p, _ := legendreAndDeriv(n-1, xi)
			w[i] = 2 / (nn * (nn + 1) * p * p)
		}
	default:
		chk.Panic("basis.Weights: unknown point set %v", kind)
	}
	return w
}

// PlotPoints returns the tensor-product plot points for an order-p element:
// the same 1-D distribution as Points(kind, n), plus the two reference-
// element endpoints -1 and 1 when not already present, so that mesh
// corners are interpolated exactly (spec.md §4.1). Gauss-Legendre sets gain
// two points (n+2 total); Gauss-Lobatto sets already include the endpoints
// and are returned unchanged.
func PlotPoints(kind PointSet, n int) []float64 {
	pts := Points(kind, n)
	const tol = 1e-12
	if math.Abs(pts[0]-(-1)) < tol && math.Abs(pts[len(pts)-1]-1) < tol {
		return pts
	}
	out := make([]float64, 0, n+2)
	out = append(out, -1)
	out = append(out, pts...)
	out = append(out, 1)
	return out
}
