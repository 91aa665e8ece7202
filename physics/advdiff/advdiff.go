// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package advdiff implements the linear advection-diffusion physics.Equation
// used for method-of-manufactured-solutions style test cases (spec.md §6
// advectVx/Vy/Vz, lambda, diffD).
package advdiff

import "math"

// Model is the single-field linear advection-diffusion equation
//
//	dU/dt + div(a U) = D * Laplacian(U)
//
// with constant advection velocity a and constant diffusivity D.
type Model struct {
	Ndims  int
	A      []float64 // constant advection velocity, len Ndims
	D      float64   // diffusivity (0 => pure advection)
	Lambda float64   // upwind/central blend: 1=full upwind, 0=central
}

// NewModel builds a Model with the given advection velocity and diffusivity.
func NewModel(a []float64, d, lambda float64) *Model {
	return &Model{Ndims: len(a), A: a, D: d, Lambda: lambda}
}

// NFields implements physics.Equation.
func (o *Model) NFields() int { return 1 }

// NDims implements physics.Equation.
func (o *Model) NDims() int { return o.Ndims }

// Viscous implements physics.Equation.
func (o *Model) Viscous() bool { return o.D > 0 }

// Flux implements physics.Equation: F_d = a_d * U.
func (o *Model) Flux(U []float64, Fout [][]float64) {
	for d := 0; d < o.Ndims; d++ {
		Fout[d][0] = o.A[d] * U[0]
	}
}

// ViscousFlux implements physics.Equation: F_d -= D * dU/dx_d.
func (o *Model) ViscousFlux(U []float64, gradU [][]float64, Fout [][]float64) {
	if o.D == 0 {
		return
	}
	for d := 0; d < o.Ndims; d++ {
		Fout[d][0] -= o.D * gradU[d][0]
	}
}

// WaveSpeed implements physics.Equation: |a·n - v_g·n|.
func (o *Model) WaveSpeed(U []float64, nrm []float64, gridVelNormal float64) float64 {
	var an float64
	for d := 0; d < o.Ndims; d++ {
		an += o.A[d] * nrm[d]
	}
	return math.Abs(an - gridVelNormal)
}

// RiemannFlux implements physics.Equation: a Lambda-blended upwind/central
// common flux on the grid-relative convective speed,
//
//	Fn = (a.n - v_g.n) * (UL+UR)/2 - Lambda/2 * |a.n - v_g.n| * (UR-UL)
func (o *Model) RiemannFlux(UL, UR []float64, nrm []float64, gridVelNormal float64, Fn []float64) {
	var an float64
	for d := 0; d < o.Ndims; d++ {
		an += o.A[d] * nrm[d]
	}
	anRel := an - gridVelNormal
	Fn[0] = anRel*0.5*(UL[0]+UR[0]) - o.Lambda*0.5*math.Abs(anRel)*(UR[0]-UL[0])
}
