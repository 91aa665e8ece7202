// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package face

import "github.com/cpmech/flurry/ele"

// Interior couples two elements sharing a mesh face (spec.md §3 Face,
// kind=interior). RightFpts must list, for every entry of LeftFpts at the
// same position, the corresponding flux-point index within Right — the
// permutation that accounts for face rotation/flipping is supplied by the
// geometry service at construction time (spec.md §4.2 step 1), since
// discovering that correspondence from raw connectivity is mesh-ingestion
// plumbing outside this package's scope.
type Interior struct {
	base
	Right     *ele.Element
	RightFace int
	RightFpts []int

	uc [][]float64 // scratch: common LDG solution, valid after CalcInviscidFlux
	ul [][]float64
	ur [][]float64
}

// NewInterior builds an interior face between left and right elements.
func NewInterior(left *ele.Element, leftFace int, leftFpts []int, right *ele.Element, rightFace int, rightFpts []int) *Interior {
	requireSameLength(len(leftFpts), len(rightFpts), "Interior left/right flux-point lists")
	return &Interior{base: newBase(left, leftFace, leftFpts), Right: right, RightFace: rightFace, RightFpts: rightFpts}
}

// SetupFace is a no-op beyond construction: the flux-point correspondence is
// already fixed by RightFpts (spec.md §4.2 step 1).
func (o *Interior) SetupFace() {}

func (o *Interior) gatherRightU() [][]float64 {
	out := make([][]float64, len(o.RightFpts))
	for i, fp := range o.RightFpts {
		out[i] = o.Right.UFpts[fp]
	}
	return out
}

func (o *Interior) gatherRightGrad() [][][]float64 {
	nd := o.nDims
	out := make([][][]float64, nd)
	for d := 0; d < nd; d++ {
		rows := make([][]float64, len(o.RightFpts))
		for i, fp := range o.RightFpts {
			rows[i] = o.Right.DUFpts[d][fp]
		}
		out[d] = rows
	}
	return out
}

func (o *Interior) gatherLeftGrad() [][][]float64 {
	nd := o.nDims
	out := make([][][]float64, nd)
	for d := 0; d < nd; d++ {
		rows := make([][]float64, len(o.LeftFpts))
		for i, fp := range o.LeftFpts {
			rows[i] = o.Left.DUFpts[d][fp]
		}
		out[d] = rows
	}
	return out
}

// CalcInviscidFlux implements spec.md §4.2 steps 2-3: gather UL/UR, then run
// the configured Riemann solver. For viscous runs the LDG common solution Uc
// is formed here as well, so the jump (Uc-Ufpts) is available to the
// gradient-correction pass that runs before any viscous flux is evaluated
// (spec.md §4.3 step 9).
func (o *Interior) CalcInviscidFlux() {
	o.ul = o.leftUL()
	o.ur = o.gatherRightU()
	o.riemannInto(o.ul, o.ur, nil)
	if o.Left.Phys.Viscous() {
		o.uc = o.commonState(o.ul, o.ur, o.ldg)
	}
}

// CalcViscousFlux implements spec.md §4.2 step 4: the common viscous flux
// built from the stashed Uc and the corrected gradient traces, added onto Fn.
func (o *Interior) CalcViscousFlux(cfg LDGConfig) {
	if !o.Left.Phys.Viscous() {
		return
	}
	o.commonViscousFlux(o.uc, o.ul, o.ur, o.gatherLeftGrad(), o.gatherRightGrad(), cfg)
}

// SetRightState scatters the common flux, sign-flipped for the right
// element's opposite outward normal, and the gradient jump relative to the
// right element's own trace (spec.md §4.2 step 5).
func (o *Interior) SetRightState() {
	nf := o.nFields
	for i, lfp := range o.LeftFpts {
		rfp := o.RightFpts[i]
		for f := 0; f < nf; f++ {
			o.Right.FnFpts[rfp][f] = -o.Left.FnFpts[lfp][f]
		}
		if o.uc != nil {
			for f := 0; f < nf; f++ {
				o.Right.GradJumpFpts[rfp][f] = o.uc[i][f] - o.ur[i][f]
			}
		}
	}
}
