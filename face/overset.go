// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package face

import "github.com/cpmech/flurry/ele"

// DonorInterp is the donor interpolation handle an Overset face borrows
// from the overset communicator (spec.md §3 Face kind=overset, §6 "Overset
// communicator"). For every flux point of the face it yields the donor
// mesh's solution (and, viscous runs, gradient) interpolated to that
// point's physical location for the current stage; the connectivity search
// behind it is out of the core's scope.
type DonorInterp interface {
	// DonorState returns the donor-interpolated conserved state at the
	// face-local flux point i, len nFields.
	DonorState(i int) []float64

	// DonorGradient returns the donor-interpolated physical gradient at
	// the face-local flux point i, indexed [dim][field]; may return nil
	// for inviscid runs.
	DonorGradient(i int) [][]float64
}

// Overset is a face whose right state comes from another mesh through a
// donor interpolation handle. Evaluation must not begin before the
// donor/receiver points have been resolved for the current stage (spec.md
// §5); the Solver guarantees that by ordering the overset exchange before
// the face kernels.
type Overset struct {
	base
	Donor DonorInterp

	ul [][]float64
	ur [][]float64
	uc [][]float64
}

// NewOverset builds an overset face over a donor interpolation handle.
func NewOverset(left *ele.Element, leftFace int, leftFpts []int, donor DonorInterp) *Overset {
	return &Overset{base: newBase(left, leftFace, leftFpts), Donor: donor}
}

// SetupFace sizes the ghost trace.
func (o *Overset) SetupFace() {
	o.ur = make([][]float64, len(o.LeftFpts))
}

// CalcInviscidFlux gathers the donor trace and runs the Riemann solver.
func (o *Overset) CalcInviscidFlux() {
	o.ul = o.leftUL()
	for i := range o.LeftFpts {
		o.ur[i] = o.Donor.DonorState(i)
	}
	o.riemannInto(o.ul, o.ur, nil)
	if o.Left.Phys.Viscous() {
		o.uc = o.commonState(o.ul, o.ur, o.ldg)
	}
}

// CalcViscousFlux adds the LDG common viscous flux using the donor's
// gradient as the right trace.
func (o *Overset) CalcViscousFlux(cfg LDGConfig) {
	if !o.Left.Phys.Viscous() {
		return
	}
	nd := o.nDims
	gradL := make([][][]float64, nd)
	gradR := make([][][]float64, nd)
	for d := 0; d < nd; d++ {
		gradL[d] = make([][]float64, len(o.LeftFpts))
		gradR[d] = make([][]float64, len(o.LeftFpts))
	}
	for i, fp := range o.LeftFpts {
		dg := o.Donor.DonorGradient(i)
		for d := 0; d < nd; d++ {
			gradL[d][i] = o.Left.DUFpts[d][fp]
			if dg != nil {
				gradR[d][i] = dg[d]
			} else {
				gradR[d][i] = o.Left.DUFpts[d][fp]
			}
		}
	}
	o.commonViscousFlux(o.uc, o.ul, o.ur, gradL, gradR, cfg)
}

// SetRightState is a no-op: the donor mesh's own faces close its residual.
func (o *Overset) SetRightState() {}
