// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mgrid implements the p-multigrid acceleration around the explicit
// RK smoother: the Cycle interface is the controller boundary (spec.md §1)
// and VCycle is the one two-level controller provided here, built on the
// inter-order transfer operators and the coarse-level forcing-term algebra. Levels share the
// same mesh; only the polynomial order changes between them.
package mgrid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/flurry/ele"
	"github.com/cpmech/flurry/fem"
	"github.com/cpmech/flurry/la"
)

// Cycle is the multigrid control-flow boundary: a controller drives the
// level smoothers and transfers in some order (V, W, FMG); the solver core
// only provides the per-level operations below.
type Cycle interface {
	// Advance runs one accelerated time step (one fine smoothing sweep
	// plus whatever coarse-level work the cycle prescribes).
	Advance()
}

// Level pairs a solver (its own element set at one order) with the
// operators transferring to and from the next coarser level.
type Level struct {
	Sol *fem.Solver

	// Restrict maps this level's solution-point values to the next
	// coarser level's; Prolong maps corrections back up. Both are the
	// tensor-product Lagrange remap of spec.md §6, built per (type,order).
	Restrict *la.Matrix
	Prolong  *la.Matrix
}

// VCycle is the two-level V-cycle: smooth fine, restrict residual, smooth
// coarse with the forcing term, prolong the correction.
type VCycle struct {
	Fine, Coarse *Level

	// src[cellID][spt][field] is the coarse-level forcing (tau correction)
	src [][][]float64
}

// NewTwoLevel builds a two-level V-cycle between a fine and a coarse
// solver sharing one mesh. Orders must differ and every element pair must
// cover the same cell.
func NewTwoLevel(fine, coarse *fem.Solver) *VCycle {
	pF := fine.Cfg.Order
	pC := coarse.Cfg.Order
	if pC >= pF {
		chk.Panic("mgrid.NewTwoLevel: coarse order %d must be below fine order %d", pC, pF)
	}
	if len(fine.Eles) != len(coarse.Eles) {
		chk.Panic("mgrid.NewTwoLevel: levels cover different meshes (%d vs %d cells)", len(fine.Eles), len(coarse.Eles))
	}

	var sample *ele.Element
	for _, e := range fine.Eles {
		if e != nil {
			sample = e
			break
		}
	}
	ptSet := sample.Ops.PtSet

	o := &VCycle{
		Fine: &Level{
			Sol:      fine,
			Restrict: ele.InterpOperator(sample.Type, pC, pF, ptSet),
			Prolong:  ele.InterpOperator(sample.Type, pF, pC, ptSet),
		},
		Coarse: &Level{Sol: coarse},
	}
	o.src = make([][][]float64, len(coarse.Eles))
	for ic, e := range coarse.Eles {
		if e == nil {
			continue
		}
		o.src[ic] = utl.Alloc(e.NSpts(), e.NFields())
	}
	return o
}

// applyOp computes out = op * in over the field columns.
func applyOp(op *la.Matrix, in, out [][]float64) {
	nOut, nIn := op.Dims()
	for i := 0; i < nOut; i++ {
		for f := range out[i] {
			out[i][f] = 0
		}
		for j := 0; j < nIn; j++ {
			v := op.Get(i, j)
			if v == 0 {
				continue
			}
			for f := range out[i] {
				out[i][f] += v * in[j][f]
			}
		}
	}
}

// restrictSolution copies the fine solution down to the coarse level.
func (o *VCycle) restrictSolution() {
	for ic, eF := range o.Fine.Sol.Eles {
		eC := o.Coarse.Sol.Eles[ic]
		if eF == nil || eC == nil {
			continue
		}
		applyOp(o.Fine.Restrict, eF.USpts, eC.USpts)
	}
}

// buildForcing computes the coarse forcing src = R(divF_fine) -
// divF_coarse(R u_fine): the fine residual restricted down minus the coarse
// residual of the restricted solution, both at the last RK stage slot.
func (o *VCycle) buildForcing() {
	last := len(o.Fine.Sol.RKb) - 1
	lastC := len(o.Coarse.Sol.RKb) - 1

	o.Fine.Sol.CalcResidual(last)
	o.restrictSolution()
	o.Coarse.Sol.CalcResidual(lastC)

	for ic, eF := range o.Fine.Sol.Eles {
		eC := o.Coarse.Sol.Eles[ic]
		if eF == nil || eC == nil {
			continue
		}
		applyOp(o.Fine.Restrict, eF.DivFSpts[last], o.src[ic])
		for s := range o.src[ic] {
			for f := range o.src[ic][s] {
				o.src[ic][s][f] -= eC.DivFSpts[lastC][s][f]
			}
		}
	}
}

// Advance implements Cycle: one fine smoothing step, one forced coarse
// step, then the prolonged coarse correction is added to the fine solution.
func (o *VCycle) Advance() {
	o.Fine.Sol.Update()

	o.buildForcing()

	// remember the coarse pre-smoothing state to extract the correction
	pre := make([][][]float64, len(o.Coarse.Sol.Eles))
	for ic, eC := range o.Coarse.Sol.Eles {
		if eC == nil {
			continue
		}
		pre[ic] = utl.Alloc(eC.NSpts(), eC.NFields())
		for s, row := range eC.USpts {
			copy(pre[ic][s], row)
		}
	}

	o.Coarse.Sol.UpdateWithSource(o.src)

	corrC := [][]float64(nil)
	for ic, eC := range o.Coarse.Sol.Eles {
		eF := o.Fine.Sol.Eles[ic]
		if eC == nil || eF == nil {
			continue
		}
		if corrC == nil || len(corrC) != eC.NSpts() {
			corrC = utl.Alloc(eC.NSpts(), eC.NFields())
		}
		for s, row := range eC.USpts {
			for f := range row {
				corrC[s][f] = row[f] - pre[ic][s][f]
			}
		}
		corrF := utl.Alloc(eF.NSpts(), eF.NFields())
		applyOp(o.Fine.Prolong, corrC, corrF)
		for s, row := range eF.USpts {
			for f := range row {
				row[f] += corrF[s][f]
			}
		}
	}
}
