// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package face

import "github.com/cpmech/flurry/ele"

// BCKind enumerates the boundary conditions of spec.md §4.2: "slip-wall,
// no-slip adiabatic, isothermal no-slip, supersonic inflow/outflow,
// characteristic, and periodic all reuse this contract."
type BCKind int

const (
	SlipWall BCKind = iota
	NoSlipAdiabatic
	NoSlipIsothermal
	SupersonicInflow
	SupersonicOutflow
	Characteristic
	Periodic
)

// Boundary synthesizes its right-hand trace from the boundary-condition tag
// and the freestream configuration instead of gathering it from a neighbor
// element (spec.md §4.2 "Boundary faces synthesize the right state..."). A
// Periodic boundary is the one exception: it pairs with a partner element's
// flux points exactly like an Interior face, so the periodic mesh topology
// never needs to be flattened into ordinary interior connectivity.
type Boundary struct {
	base
	Kind       BCKind
	Freestream []float64 // conserved freestream state, used by inflow/characteristic
	WallTemp   float64   // isothermal wall temperature, used by NoSlipIsothermal
	R          float64   // gas constant, used by NoSlipIsothermal

	Partner     *ele.Element // Periodic only
	PartnerFpts []int        // Periodic only

	ul [][]float64
	ur [][]float64
	uc [][]float64
}

// NewBoundary builds a non-periodic boundary face.
func NewBoundary(left *ele.Element, leftFace int, leftFpts []int, kind BCKind, freestream []float64) *Boundary {
	return &Boundary{base: newBase(left, leftFace, leftFpts), Kind: kind, Freestream: freestream}
}

// NewPeriodic builds a periodic pairing between two boundary faces.
func NewPeriodic(left *ele.Element, leftFace int, leftFpts []int, partner *ele.Element, partnerFpts []int) *Boundary {
	requireSameLength(len(leftFpts), len(partnerFpts), "Periodic left/partner flux-point lists")
	return &Boundary{base: newBase(left, leftFace, leftFpts), Kind: Periodic, Partner: partner, PartnerFpts: partnerFpts}
}

// SetupFace is a no-op: the flux-point list is already fixed by LeftFpts
// (and PartnerFpts for periodic pairs).
func (o *Boundary) SetupFace() {}

// synthesizeUR builds the ghost/right trace for every flux point of this
// face according to Kind.
func (o *Boundary) synthesizeUR(UL [][]float64) [][]float64 {
	if o.Kind == Periodic {
		out := make([][]float64, len(o.PartnerFpts))
		for i, fp := range o.PartnerFpts {
			out[i] = o.Partner.UFpts[fp]
		}
		return out
	}
	nf := o.nFields
	nd := o.nDims
	out := make([][]float64, len(o.LeftFpts))
	for i, fp := range o.LeftFpts {
		u := UL[i]
		nrm := o.Left.NormFpts[fp]
		ghost := make([]float64, nf)
		if nf == 1 {
			// scalar equation: no velocity components to reflect; inflow
			// takes the prescribed value, everything else extrapolates
			if o.Kind == SupersonicInflow && o.Freestream != nil {
				copy(ghost, o.Freestream)
			} else {
				copy(ghost, u)
			}
			out[i] = ghost
			continue
		}
		switch o.Kind {
		case SlipWall:
			copy(ghost, u)
			var un float64
			for d := 0; d < nd; d++ {
				un += u[1+d] * nrm[d]
			}
			for d := 0; d < nd; d++ {
				ghost[1+d] = u[1+d] - 2*un*nrm[d]
			}
		case NoSlipAdiabatic:
			copy(ghost, u)
			for d := 0; d < nd; d++ {
				ghost[1+d] = -u[1+d]
			}
		case NoSlipIsothermal:
			copy(ghost, u)
			for d := 0; d < nd; d++ {
				ghost[1+d] = -u[1+d]
			}
			if o.R > 0 {
				cv := o.R / 0.4 // gamma-1=0.4 for air; energy eq uses Cv=R/(gamma-1)
				ghost[nf-1] = u[0] * cv * o.WallTemp
			}
		case SupersonicInflow:
			copy(ghost, o.Freestream)
		case SupersonicOutflow:
			copy(ghost, u)
		case Characteristic:
			var un float64
			for d := 0; d < nd; d++ {
				un += u[1+d] / u[0] * nrm[d]
			}
			if un < 0 {
				copy(ghost, o.Freestream)
			} else {
				copy(ghost, u)
			}
		}
		out[i] = ghost
	}
	return out
}

// CalcInviscidFlux implements spec.md §4.2 steps 2-3 for a boundary face,
// stashing the LDG common solution for the gradient-correction pass of
// viscous runs.
func (o *Boundary) CalcInviscidFlux() {
	o.ul = o.leftUL()
	o.ur = o.synthesizeUR(o.ul)
	o.riemannInto(o.ul, o.ur, nil)
	if o.Left.Phys.Viscous() {
		o.uc = o.commonState(o.ul, o.ur, o.ldg)
	}
}

// CalcViscousFlux implements spec.md §4.2 step 4 for a boundary face.
func (o *Boundary) CalcViscousFlux(cfg LDGConfig) {
	if !o.Left.Phys.Viscous() {
		return
	}
	if o.Kind == Periodic {
		nd := o.nDims
		gradR := make([][][]float64, nd)
		for d := 0; d < nd; d++ {
			rows := make([][]float64, len(o.PartnerFpts))
			for i, fp := range o.PartnerFpts {
				rows[i] = o.Partner.DUFpts[d][fp]
			}
			gradR[d] = rows
		}
		gradL := make([][][]float64, nd)
		for d := 0; d < nd; d++ {
			rows := make([][]float64, len(o.LeftFpts))
			for i, fp := range o.LeftFpts {
				rows[i] = o.Left.DUFpts[d][fp]
			}
			gradL[d] = rows
		}
		o.commonViscousFlux(o.uc, o.ul, o.ur, gradL, gradR, cfg)
		return
	}
	// non-periodic boundaries mirror the left gradient trace as the ghost
	// gradient, consistent with the ghost-state reflections above.
	gradL := make([][][]float64, o.nDims)
	for d := 0; d < o.nDims; d++ {
		rows := make([][]float64, len(o.LeftFpts))
		for i, fp := range o.LeftFpts {
			rows[i] = o.Left.DUFpts[d][fp]
		}
		gradL[d] = rows
	}
	o.commonViscousFlux(o.uc, o.ul, o.ur, gradL, gradL, cfg)
}

// SetRightState scatters results to the periodic partner; a no-op for every
// other boundary kind, which has no right-hand element to update.
func (o *Boundary) SetRightState() {
	if o.Kind != Periodic {
		return
	}
	nf := o.nFields
	for i, lfp := range o.LeftFpts {
		pfp := o.PartnerFpts[i]
		for f := 0; f < nf; f++ {
			o.Partner.FnFpts[pfp][f] = -o.Left.FnFpts[lfp][f]
		}
		if o.uc != nil {
			for f := 0; f < nf; f++ {
				o.Partner.GradJumpFpts[pfp][f] = o.uc[i][f] - o.ur[i][f]
			}
		}
	}
}
