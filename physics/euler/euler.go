// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package euler implements the compressible Euler/Navier-Stokes physics.Equation
// for 2-D and 3-D: conserved variables U={ρ,ρu,ρv[,ρw],ρE}, the ideal-gas
// inviscid flux, a Newtonian/Fourier viscous flux, and the Rusanov and Roe
// Riemann solvers (spec.md §4.1, §4.2, §6 riemannType).
package euler

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Riemann selects the common-flux scheme (spec.md §6 riemannType).
type Riemann int

const (
	// Rusanov is the local Lax-Friedrichs / Rusanov flux.
	Rusanov Riemann = iota
	// Roe is Roe's approximate Riemann solver (NS only, spec.md §6).
	Roe
)

// Model implements physics.Equation for the compressible Euler/NS equations.
type Model struct {
	Ndims   int     // 2 or 3
	Gamma   float64 // ratio of specific heats
	R       float64 // gas constant
	Mu      float64 // dynamic viscosity (0 => inviscid)
	Pr      float64 // Prandtl number
	Riemann Riemann
}

// NewModel builds a Model with the usual air defaults (γ=1.4, Pr=0.72).
func NewModel(ndims int, viscous bool, mu float64, riemann Riemann) *Model {
	if ndims != 2 && ndims != 3 {
		chk.Panic("euler.NewModel: ndims must be 2 or 3 (got %d)", ndims)
	}
	m := &Model{Ndims: ndims, Gamma: 1.4, R: 287.0, Pr: 0.72, Riemann: riemann}
	if viscous {
		m.Mu = mu
	}
	return m
}

// NFields implements physics.Equation.
func (o *Model) NFields() int { return o.Ndims + 2 }

// NDims implements physics.Equation.
func (o *Model) NDims() int { return o.Ndims }

// Viscous implements physics.Equation.
func (o *Model) Viscous() bool { return o.Mu > 0 }

// primitives unpacks U into density, velocity (len Ndims), pressure and
// total specific energy.
func (o *Model) primitives(U []float64) (rho float64, u []float64, p, E float64) {
	rho = U[0]
	u = make([]float64, o.Ndims)
	var kinetic float64
	for d := 0; d < o.Ndims; d++ {
		u[d] = U[1+d] / rho
		kinetic += u[d] * u[d]
	}
	E = U[o.Ndims+1] / rho
	p = (o.Gamma - 1) * rho * (E - 0.5*kinetic)
	return
}

// SoundSpeed returns the local speed of sound for conserved state U.
func (o *Model) SoundSpeed(U []float64) float64 {
	rho, _, p, _ := o.primitives(U)
	return math.Sqrt(o.Gamma * p / rho)
}

// Flux implements physics.Equation: standard ideal-gas Euler flux.
func (o *Model) Flux(U []float64, Fout [][]float64) {
	rho, u, p, E := o.primitives(U)
	nf := o.NFields()
	for d := 0; d < o.Ndims; d++ {
		F := Fout[d]
		F[0] = rho * u[d]
		for k := 0; k < o.Ndims; k++ {
			F[1+k] = rho * u[d] * u[k]
		}
		F[1+d] += p
		F[nf-1] = u[d] * (rho*E + p)
	}
}

// ViscousFlux implements physics.Equation: a Newtonian stress tensor plus
// Fourier heat conduction, with constant dynamic viscosity and conductivity
// derived from the Prandtl number (k = μ*cp/Pr).
func (o *Model) ViscousFlux(U []float64, gradU [][]float64, Fout [][]float64) {
	if o.Mu == 0 {
		return
	}
	rho, u, p, _ := o.primitives(U)
	_ = p
	nd := o.Ndims
	cp := o.Gamma * o.R / (o.Gamma - 1)
	k := o.Mu * cp / o.Pr

	// velocity gradient du_i/dx_j from the conserved-variable gradient:
	// u_i = (rho u_i)/rho => du_i/dx_j = (d(rho u_i)/dx_j - u_i*drho/dx_j)/rho
	dudx := make([][]float64, nd)
	for i := 0; i < nd; i++ {
		dudx[i] = make([]float64, nd)
		for j := 0; j < nd; j++ {
			dudx[i][j] = (gradU[j][1+i] - u[i]*gradU[j][0]) / rho
		}
	}
	var divU float64
	for i := 0; i < nd; i++ {
		divU += dudx[i][i]
	}
	// temperature gradient from total energy: T = p/(rho R); use the ideal
	// gas relation to get dT/dx from dE/dx and d(kinetic)/dx.
	dTdx := make([]float64, nd)
	for j := 0; j < nd; j++ {
		var dKE float64
		for i := 0; i < nd; i++ {
			dKE += u[i] * dudx[i][j]
		}
		dEdx := gradU[j][nd+1]/rho - U[nd+1]/(rho*rho)*gradU[j][0]
		dTdx[j] = (o.Gamma - 1) / o.R * (dEdx - dKE)
	}

	lambda := -2.0 / 3.0 * o.Mu // Stokes' hypothesis
	tau := make([][]float64, nd)
	for i := 0; i < nd; i++ {
		tau[i] = make([]float64, nd)
	}
	for i := 0; i < nd; i++ {
		for j := 0; j < nd; j++ {
			tau[i][j] = o.Mu * (dudx[i][j] + dudx[j][i])
		}
		tau[i][i] += lambda * divU
	}

	nf := o.NFields()
	for d := 0; d < nd; d++ {
		F := Fout[d]
		for i := 0; i < nd; i++ {
			F[1+i] -= tau[d][i]
		}
		var work float64
		for i := 0; i < nd; i++ {
			work += u[i] * tau[d][i]
		}
		F[nf-1] -= work + k*dTdx[d]
	}
}

// WaveSpeed implements physics.Equation: |u·n - v_g·n| + speed of sound.
func (o *Model) WaveSpeed(U []float64, nrm []float64, gridVelNormal float64) float64 {
	rho, u, _, _ := o.primitives(U)
	_ = rho
	var un float64
	for d := 0; d < o.Ndims; d++ {
		un += u[d] * nrm[d]
	}
	return math.Abs(un-gridVelNormal) + o.SoundSpeed(U)
}

// RiemannFlux implements physics.Equation, dispatching to Rusanov or Roe.
func (o *Model) RiemannFlux(UL, UR []float64, nrm []float64, gridVelNormal float64, Fn []float64) {
	switch o.Riemann {
	case Rusanov:
		o.rusanov(UL, UR, nrm, gridVelNormal, Fn)
	case Roe:
		o.roe(UL, UR, nrm, gridVelNormal, Fn)
	default:
		chk.Panic("euler.Model.RiemannFlux: unknown Riemann solver %v", o.Riemann)
	}
}

// fluxDotN evaluates F_phys(U)·n directly (without building the full
// per-dimension flux arrays), used by both Riemann solvers.
func (o *Model) fluxDotN(U []float64, nrm []float64, out []float64) {
	rho, u, p, E := o.primitives(U)
	var un float64
	for d := 0; d < o.Ndims; d++ {
		un += u[d] * nrm[d]
	}
	out[0] = rho * un
	for k := 0; k < o.Ndims; k++ {
		out[1+k] = rho*un*u[k] + p*nrm[k]
	}
	out[o.NFields()-1] = un * (rho*E + p)
}

// rusanov implements the local Lax-Friedrichs / Rusanov common flux:
// Fn = 1/2 (F(UL)+F(UR))·n - 1/2 v_g·n (UL+UR) - 1/2 smax (UR-UL),
// smax=max(waveL,waveR).
func (o *Model) rusanov(UL, UR, nrm []float64, vgn float64, Fn []float64) {
	nf := o.NFields()
	fl := make([]float64, nf)
	fr := make([]float64, nf)
	o.fluxDotN(UL, nrm, fl)
	o.fluxDotN(UR, nrm, fr)
	smax := math.Max(o.WaveSpeed(UL, nrm, vgn), o.WaveSpeed(UR, nrm, vgn))
	for k := 0; k < nf; k++ {
		Fn[k] = 0.5*(fl[k]+fr[k]) - 0.5*vgn*(UL[k]+UR[k]) - 0.5*smax*(UR[k]-UL[k])
	}
}

// roe implements Roe's approximate Riemann solver for the Euler flux
// (inviscid only; viscous contributions are added separately by the face).
func (o *Model) roe(UL, UR, nrm []float64, vgn float64, Fn []float64) {
	nd := o.Ndims
	nf := o.NFields()
	rhoL, uL, pL, EL := o.primitives(UL)
	rhoR, uR, pR, ER := o.primitives(UR)
	hL := EL + pL/rhoL
	hR := ER + pR/rhoR

	sqrtL, sqrtR := math.Sqrt(rhoL), math.Sqrt(rhoR)
	denom := sqrtL + sqrtR
	rhoHat := sqrtL * sqrtR
	uHat := make([]float64, nd)
	for d := 0; d < nd; d++ {
		uHat[d] = (sqrtL*uL[d] + sqrtR*uR[d]) / denom
	}
	hHat := (sqrtL*hL + sqrtR*hR) / denom
	var kinHat float64
	for d := 0; d < nd; d++ {
		kinHat += uHat[d] * uHat[d]
	}
	cHat := math.Sqrt((o.Gamma - 1) * (hHat - 0.5*kinHat))

	var unHat float64
	for d := 0; d < nd; d++ {
		unHat += uHat[d] * nrm[d]
	}
	unHat -= vgn

	fl := make([]float64, nf)
	fr := make([]float64, nf)
	o.fluxDotN(UL, nrm, fl)
	o.fluxDotN(UR, nrm, fr)

	dU := make([]float64, nf)
	for k := 0; k < nf; k++ {
		dU[k] = UR[k] - UL[k]
	}

	// entropy-fixed eigenvalues of the Roe matrix
	l1 := math.Abs(unHat - cHat)
	l2 := math.Abs(unHat)
	l3 := math.Abs(unHat + cHat)
	eps := 0.1 * cHat
	fix := func(l float64) float64 {
		if l < eps {
			return (l*l + eps*eps) / (2 * eps)
		}
		return l
	}
	l1, l2, l3 = fix(l1), fix(l2), fix(l3)

	// wave strengths (standard Roe decomposition projected onto n)
	drho := dU[0]
	var uDotDu float64
	for d := 0; d < nd; d++ {
		uDotDu += uHat[d] * (dU[1+d] - uHat[d]*dU[0])
	}
	dp := (o.Gamma - 1) * (dU[nf-1] - uDotDu - 0.5*kinHat*dU[0])
	var dun float64
	for d := 0; d < nd; d++ {
		dun += nrm[d] * (dU[1+d] - uHat[d]*dU[0]) / rhoHat
	}

	alpha1 := (dp - rhoHat*cHat*dun) / (2 * cHat * cHat)
	alpha2 := drho - dp/(cHat*cHat)
	alpha3 := (dp + rhoHat*cHat*dun) / (2 * cHat * cHat)

	for k := 0; k < nf; k++ {
		Fn[k] = 0.5*(fl[k]+fr[k]) - 0.5*vgn*(UL[k]+UR[k]) -
			0.5*(l1*alpha1*roeEig(k, nd, uHat, hHat, nrm, -cHat)+
				l2*alpha2*roeEigEntropy(k, nd, uHat)+
				l3*alpha3*roeEig(k, nd, uHat, hHat, nrm, cHat))
	}
}

// roeEig returns the k-th component of the acoustic eigenvector
// (1, u+c*n, H+c*(u.n)) associated with eigenvalue u.n±c.
func roeEig(k, nd int, uHat []float64, hHat float64, nrm []float64, c float64) float64 {
	if k == 0 {
		return 1
	}
	if k == nd+1 {
		var un float64
		for d := 0; d < nd; d++ {
			un += uHat[d] * nrm[d]
		}
		return hHat + c*un
	}
	d := k - 1
	return uHat[d] + c*nrm[d]
}

// roeEigEntropy returns the k-th component of the entropy eigenvector
// (1, u, |u|^2/2).
func roeEigEntropy(k, nd int, uHat []float64) float64 {
	if k == 0 {
		return 1
	}
	if k == nd+1 {
		var kin float64
		for d := 0; d < nd; d++ {
			kin += uHat[d] * uHat[d]
		}
		return 0.5 * kin
	}
	return uHat[k-1]
}
