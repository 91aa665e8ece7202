// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package face implements the Face contract of spec.md §4.2: given left and
// right (or left and ghost) traces at a set of corresponding flux points, it
// produces a common normal numerical flux and, for viscous runs, a common
// interface solution and its gradient trace. Four kinds share one contract:
// Interior, Boundary, MPI and Overset.
package face

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/flurry/ele"
)

// Face is the common contract every face kind implements (spec.md §4.2).
type Face interface {
	// SetupFace establishes the flux-point correspondence and sizes the
	// local traces; called once after construction.
	SetupFace()

	// SetLDG installs the viscous-interface parameters; must precede the
	// first CalcInviscidFlux of a viscous run, which stashes the LDG
	// common solution alongside the inviscid common flux.
	SetLDG(cfg LDGConfig)

	// CalcInviscidFlux fills the common normal flux Fn from UL/UR using the
	// configured Riemann solver, writing it into the left element's FnFpts;
	// SetRightState carries it to a local right-hand element.
	CalcInviscidFlux()

	// CalcViscousFlux forms the interface-common Uc (LDG) and the common
	// viscous flux, adding it onto Fn. No-op for inviscid equations.
	CalcViscousFlux(cfg LDGConfig)

	// SetRightState scatters the common results back into the right
	// element's flux-point slot (or, for MPI/overset, into the transport
	// layer); a no-op for kinds with no local right-hand element.
	SetRightState()
}

// LDGConfig carries the Local Discontinuous Galerkin viscous-flux
// parameters of spec.md §4.2/§6: LDG_penFact and LDG_tau.
type LDGConfig struct {
	PenFact float64
	Tau     float64
}

// base holds the state shared by every face kind: the left element and the
// indices, within Left's flux-point arrays, that belong to this face.
type base struct {
	Left     *ele.Element
	LeftFace int
	LeftFpts []int // indices into Left's [nFpts] arrays for this face
	nFields  int
	nDims    int
	ldg      LDGConfig
}

// SetLDG implements the Face contract for every variant embedding base.
func (b *base) SetLDG(cfg LDGConfig) { b.ldg = cfg }

func newBase(left *ele.Element, leftFace int, leftFpts []int) base {
	return base{
		Left: left, LeftFace: leftFace, LeftFpts: leftFpts,
		nFields: left.Phys.NFields(), nDims: left.Phys.NDims(),
	}
}

// leftUL gathers the left element's discontinuous trace at this face's flux
// points (spec.md §4.2 "getLeftState").
func (b *base) leftUL() [][]float64 {
	out := make([][]float64, len(b.LeftFpts))
	for i, fp := range b.LeftFpts {
		out[i] = b.Left.UFpts[fp]
	}
	return out
}

// riemannInto evaluates the common normal flux from UL/UR at every flux
// point of this face and writes it into Left.FnFpts (and, via the caller,
// optionally into the right side with a flipped sign). The normal grid
// velocity comes from the caller when supplied, else from the left
// element's own flux-point grid velocity (moving meshes), else zero.
func (b *base) riemannInto(UL, UR [][]float64, gridVelNormal []float64) {
	for i, fp := range b.LeftFpts {
		nrm := b.Left.NormFpts[fp]
		gvn := 0.0
		switch {
		case gridVelNormal != nil:
			gvn = gridVelNormal[i]
		case b.Left.GridVelFpts != nil:
			for d, n := range nrm {
				gvn += b.Left.GridVelFpts[fp][d] * n
			}
		}
		b.Left.Phys.RiemannFlux(UL[i], UR[i], nrm, gvn, b.Left.FnFpts[fp])
	}
}

// commonState forms the LDG interface-common solution Uc = avg(UL,UR) +
// penalty*(UL-UR) (spec.md §4.2 step 4) and stashes Uc-ULeft into the left
// element's GradJumpFpts (the jump later consumed by CorrectGradient).
func (b *base) commonState(UL, UR [][]float64, cfg LDGConfig) [][]float64 {
	nf := b.nFields
	Uc := make([][]float64, len(b.LeftFpts))
	for i, fp := range b.LeftFpts {
		uc := make([]float64, nf)
		for f := 0; f < nf; f++ {
			uc[f] = 0.5*(UL[i][f]+UR[i][f]) + cfg.PenFact*(UL[i][f]-UR[i][f])
		}
		Uc[i] = uc
		for f := 0; f < nf; f++ {
			b.Left.GradJumpFpts[fp][f] = uc[f] - UL[i][f]
		}
	}
	return Uc
}

// commonViscousFlux evaluates the LDG viscous common flux using Uc and the
// average of the left/right physical gradients, adding a tau-scaled jump
// stabilization term (spec.md §4.2 step 4).
func (b *base) commonViscousFlux(Uc, UL, UR [][]float64, gradL, gradR [][][]float64, cfg LDGConfig) {
	if !b.Left.Phys.Viscous() {
		return
	}
	nf := b.nFields
	nd := b.nDims
	Fvisc := make([][]float64, nd)
	for d := range Fvisc {
		Fvisc[d] = make([]float64, nf)
	}
	for i, fp := range b.LeftFpts {
		for d := 0; d < nd; d++ {
			for f := 0; f < nf; f++ {
				Fvisc[d][f] = 0
			}
		}
		avgGrad := make([][]float64, nd)
		for d := 0; d < nd; d++ {
			row := make([]float64, nf)
			for f := 0; f < nf; f++ {
				row[f] = 0.5 * (gradL[d][i][f] + gradR[d][i][f])
			}
			avgGrad[d] = row
		}
		b.Left.Phys.ViscousFlux(Uc[i], avgGrad, Fvisc)
		nrm := b.Left.NormFpts[fp]
		for d := 0; d < nd; d++ {
			n := nrm[d]
			if n == 0 {
				continue
			}
			for f := 0; f < nf; f++ {
				b.Left.FnFpts[fp][f] += n * Fvisc[d][f]
			}
		}
		for f := 0; f < nf; f++ {
			b.Left.FnFpts[fp][f] -= cfg.Tau * (UR[i][f] - UL[i][f])
		}
	}
}

func requireSameLength(a, b int, what string) {
	if a != b {
		chk.Panic("face: %s length mismatch: %d != %d", what, a, b)
	}
}
