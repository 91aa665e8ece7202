// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package physics implements the equation-specific helpers of spec.md
// §4.1: the physical flux functions and Riemann solvers for the
// compressible Euler/Navier-Stokes equations and the linear
// advection-diffusion equation. Every element and face kernel is written
// against the Equation interface, never against a specific gas model,
// following gofem's mdl-package boundary between element code (ele) and
// constitutive/physical models (mdl).
package physics

// Equation is the shared contract every supported PDE implements. An
// Element or Face never switches on the equation kind directly; it always
// goes through this interface (spec.md §4.1/§4.2).
type Equation interface {
	// NFields returns the number of conserved variables (4 for 2-D Euler,
	// 5 for 3-D Euler/NS, 1 for scalar advection-diffusion).
	NFields() int

	// NDims returns the spatial dimension (2 or 3).
	NDims() int

	// Viscous reports whether this equation carries a viscous flux term.
	Viscous() bool

	// Flux evaluates the physical inviscid flux F_phys(U) for every
	// reference dimension into Fout[dim][field] (spec.md §4.1). It takes
	// no grid velocity: the -U*v_g correction of moving meshes is added
	// separately by the caller (see Element.AssembleFlux), so that the
	// same Flux implementation serves both static and moving meshes.
	Flux(U []float64, Fout [][]float64)

	// ViscousFlux adds the physical viscous flux to Fout in place, given
	// the local gradient dU/dx (physical space, gradU[dim][field]).
	ViscousFlux(U []float64, gradU [][]float64, Fout [][]float64)

	// WaveSpeed returns the local wave speed along the physical unit
	// normal nrm (|nrm|=1), net of the grid-velocity component, used for
	// both the Riemann solver's dissipation and the local time-step bound
	// (spec.md §4.1).
	WaveSpeed(U []float64, nrm []float64, gridVelNormal float64) float64

	// RiemannFlux evaluates the configured common normal flux from left
	// and right traces UL, UR across unit normal nrm, writing nFields
	// values into Fn (spec.md §4.2).
	RiemannFlux(UL, UR []float64, nrm []float64, gridVelNormal float64, Fn []float64)
}
