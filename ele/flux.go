// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/flurry/la"
)

// ExtrapolateToFpts fills UFpts from USpts using the cached extrapolation
// operator (spec.md §4.3 step 3).
func (o *Element) ExtrapolateToFpts() {
	extrapolateFields(o.Ops.ExtrapSptsToFpts, o.USpts, o.UFpts, o.nFields)
}

// ExtrapolateToMpts fills UMpts from USpts, used only for plot output.
func (o *Element) ExtrapolateToMpts() {
	extrapolateFields(o.Ops.ExtrapSptsToMpts, o.USpts, o.UMpts, o.nFields)
}

// extrapolateFields applies a (nOut x nIn) dense operator to every field of a
// [nIn][nFields] array independently, writing into a [nOut][nFields] array.
func extrapolateFields(op interface {
	Dims() (int, int)
	Get(i, j int) float64
}, in, out [][]float64, nFields int) {
	nOut, nIn := op.Dims()
	for i := 0; i < nOut; i++ {
		row := out[i]
		for f := 0; f < nFields; f++ {
			row[f] = 0
		}
		for j := 0; j < nIn; j++ {
			v := op.Get(i, j)
			if v == 0 {
				continue
			}
			inRow := in[j]
			for f := 0; f < nFields; f++ {
				row[f] += v * inRow[f]
			}
		}
	}
}

// ReferenceGradient computes the uncorrected reference-space gradient of
// USpts into DUSpts (spec.md §4.3 step 5): DUSpts[d] = opp_grad_spts[d] * USpts.
func (o *Element) ReferenceGradient() {
	for d := 0; d < o.nDims; d++ {
		extrapolateFields(o.Ops.GradSpts[d], o.USpts, o.DUSpts[d], o.nFields)
	}
}

// CorrectGradient extends DUSpts with the flux-point jump (Uc-Ufpts) held in
// GradJumpFpts, scaled by the correction operator (spec.md §4.4
// opp_grad_corr, §4.3 step 9). GradJumpFpts must already have been filled by
// the owning Face(s) once the common trace Uc is known.
func (o *Element) CorrectGradient() {
	for d := 0; d < o.nDims; d++ {
		corr := utl.Alloc(o.nSpts, o.nFields)
		extrapolateFields(o.Ops.GradCorr[d], o.GradJumpFpts, corr, o.nFields)
		for i := range o.DUSpts[d] {
			for f := 0; f < o.nFields; f++ {
				o.DUSpts[d][i][f] += corr[i][f]
			}
		}
	}
}

// physicalGradientAt converts the reference-space gradient at point p
// (indexing into gradRef[d][p]) to the physical-space gradient using
// dU/dx_a = (1/detJ) * sum_d JGinv[d][a] * dU/dxi_d.
func physicalGradientAt(gradRef [][][]float64, jginv *la.Matrix, detJac float64, p, nd, nf int) [][]float64 {
	out := make([][]float64, nd)
	for a := 0; a < nd; a++ {
		row := make([]float64, nf)
		for d := 0; d < nd; d++ {
			w := jginv.Get(d, a) / detJac
			if w == 0 {
				continue
			}
			src := gradRef[d][p]
			for f := 0; f < nf; f++ {
				row[f] += w * src[f]
			}
		}
		out[a] = row
	}
	return out
}

// ExtrapolateGradientToFpts fills DUFpts from DUSpts, one field-matrix
// multiply per reference dimension, used by the viscous branch before the
// gradient trace is exchanged across faces (spec.md §4.3 step 9).
func (o *Element) ExtrapolateGradientToFpts() {
	for d := 0; d < o.nDims; d++ {
		extrapolateFields(o.Ops.ExtrapSptsToFpts, o.DUSpts[d], o.DUFpts[d], o.nFields)
	}
}

// AssembleFlux evaluates the physical inviscid (and, if present, viscous)
// flux at every solution point and transforms it into reference space
// (spec.md §4.1 "Inviscid and viscous fluxes at solution points"). For
// MovingStandard meshes the -U*v_g space-time correction is folded directly
// into the transformed flux; MovingChainRule meshes additionally keep the
// untransformed physical flux around for the chain-rule divergence pass.
func (o *Element) AssembleFlux() {
	nd, nf := o.nDims, o.nFields
	var physFlux [][]float64 // physFlux[dim][field], scratch reused per point
	physFlux = make([][]float64, nd)
	for d := range physFlux {
		physFlux[d] = make([]float64, nf)
	}

	var gradPhysAtPt [][]float64
	viscous := o.Phys.Viscous()

	var chainBuf [][][]float64
	if o.Motion == MovingChainRule {
		chainBuf = make([][][]float64, nd)
		for d := range chainBuf {
			chainBuf[d] = utl.Alloc(o.nSpts, nf)
		}
		o.chainFluxSpts = chainBuf
	}

	for p := 0; p < o.nSpts; p++ {
		for d := 0; d < nd; d++ {
			for f := 0; f < nf; f++ {
				physFlux[d][f] = 0
			}
		}
		o.Phys.Flux(o.USpts[p], physFlux)
		if viscous {
			gradPhysAtPt = physicalGradientAt(o.DUSpts, o.JGinvSpts[p], o.DetJacSpts[p], p, nd, nf)
			o.Phys.ViscousFlux(o.USpts[p], gradPhysAtPt, physFlux)
		}
		if chainBuf != nil {
			for d := 0; d < nd; d++ {
				copy(chainBuf[d][p], physFlux[d])
			}
		}

		JG := o.JGinvSpts[p]
		for d := 0; d < nd; d++ {
			row := o.FSpts[d][p]
			for f := 0; f < nf; f++ {
				row[f] = 0
			}
			for a := 0; a < nd; a++ {
				w := JG.Get(d, a)
				if w == 0 {
					continue
				}
				for f := 0; f < nf; f++ {
					row[f] += w * physFlux[a][f]
				}
			}
			if o.Motion != Static {
				// the transformed flux carries -adj(A)*v_g*U on every
				// moving mesh, keeping the discontinuous normal-flux trace
				// consistent with the grid-relative common flux; the
				// space-time adjoint's last column already holds
				// -det(A)*inv(A)*v_g
				vg := JG.Get(d, nd)
				U := o.USpts[p]
				for f := 0; f < nf; f++ {
					row[f] += vg * U[f]
				}
			}
		}
	}
}

// Divergence forms divF_spts for the given RK stage slot, selecting the
// standard conservative form or the moving-mesh chain-rule form according to
// Motion (spec.md §4.1 "Divergence forms").
func (o *Element) Divergence(stage int) {
	if o.Motion == MovingChainRule {
		o.chainRuleDivergence(stage)
		return
	}
	o.standardDivergence(stage)
}

// standardDivergence computes divF_spts = sum_d d(F_ref_d)/d(xi_d).
func (o *Element) standardDivergence(stage int) {
	out := o.DivFSpts[stage]
	for i := range out {
		for f := range out[i] {
			out[i][f] = 0
		}
	}
	scratch := utl.Alloc(o.nSpts, o.nFields)
	for d := 0; d < o.nDims; d++ {
		extrapolateFields(o.Ops.GradSpts[d], o.FSpts[d], scratch, o.nFields)
		for i := range out {
			for f := range out[i] {
				out[i][f] += scratch[i][f]
			}
		}
	}
}

// chainRuleDivergence implements the non-conservative Liang-Miyaji-Zhang
// (2013-0998) form as one dimension-generic loop rather than separate 2-D
// and 3-D formulas: it differentiates the raw physical flux in reference
// space (never differentiating JGinv itself, so the discrete geometric
// conservation law need not be enforced separately), reassembles the
// divergence with the current space-time adjoint weights, and adds a
// gradient-of-U term weighted by the grid-velocity column of the adjoint.
func (o *Element) chainRuleDivergence(stage int) {
	nd, nf := o.nDims, o.nFields
	out := o.DivFSpts[stage]
	for i := range out {
		for f := range out[i] {
			out[i][f] = 0
		}
	}

	// dFda[a][d][spt][field] = d(Fphys_a)/dxi_d, reference-space derivative
	// of the raw (untransformed) physical flux component a along direction d.
	dFda := make([][][][]float64, nd)
	for a := 0; a < nd; a++ {
		dFda[a] = make([][][]float64, nd)
		for d := 0; d < nd; d++ {
			buf := utl.Alloc(o.nSpts, nf)
			extrapolateFields(o.Ops.GradSpts[d], o.chainFluxSpts[a], buf, nf)
			dFda[a][d] = buf
		}
	}

	for p := 0; p < o.nSpts; p++ {
		JG := o.JGinvSpts[p]
		row := out[p]
		for a := 0; a < nd; a++ {
			for d := 0; d < nd; d++ {
				w := JG.Get(d, a)
				if w == 0 {
					continue
				}
				src := dFda[a][d][p]
				for f := 0; f < nf; f++ {
					row[f] += w * src[f]
				}
			}
		}
		for d := 0; d < nd; d++ {
			vg := JG.Get(d, nd) // -det(A)*inv(A)*v_g, see AssembleFlux
			if vg == 0 {
				continue
			}
			src := o.DUSpts[d][p]
			for f := 0; f < nf; f++ {
				row[f] += vg * src[f]
			}
		}
	}
}

// BoundaryCorrection applies the flux-point jump Fn-disFn to divF_spts via
// the FR correction operator (spec.md §4.3 step 12). It also refreshes
// DisFnFpts and DFnFpts from FSpts, so callers only need to have filled
// FnFpts (the common flux) beforehand. FnFpts holds the PHYSICAL common
// normal flux as deposited by the face kernels; the dA factor brings it to
// the reference normalization DisFnFpts already carries (disFn = JGinv^T
// n_ref . F_phys = dA * n_phys . F_phys).
func (o *Element) BoundaryCorrection(stage int) {
	o.extrapolateNormalFlux()
	for fp := range o.DFnFpts {
		dA := o.DAFpts[fp]
		for f := 0; f < o.nFields; f++ {
			o.DFnFpts[fp][f] = o.FnFpts[fp][f]*dA - o.DisFnFpts[fp][f]
		}
	}
	corr := utl.Alloc(o.nSpts, o.nFields)
	extrapolateFields(o.Ops.DivFptsToSpts, o.DFnFpts, corr, o.nFields)
	out := o.DivFSpts[stage]
	for i := range out {
		for f := range out[i] {
			out[i][f] += corr[i][f]
		}
	}
}

// extrapolateNormalFlux extrapolates F_spts to the flux points and dots the
// result with the reference outward normal, filling DisFnFpts (spec.md §4.3
// step 10, §4.4 opp_extrap_normal_flux).
func (o *Element) extrapolateNormalFlux() {
	nd, nf := o.nDims, o.nFields
	extrapAtFptsPerDim := make([][][]float64, nd)
	for d := 0; d < nd; d++ {
		buf := utl.Alloc(o.nFpts, nf)
		extrapolateFields(o.Ops.ExtrapNormalFlux, o.FSpts[d], buf, nf)
		extrapAtFptsPerDim[d] = buf
	}
	for fp := 0; fp < o.nFpts; fp++ {
		nrm := o.TNormFpts[fp]
		row := o.DisFnFpts[fp]
		for f := 0; f < nf; f++ {
			row[f] = 0
		}
		for d := 0; d < nd; d++ {
			n := nrm[d]
			if n == 0 {
				continue
			}
			src := extrapAtFptsPerDim[d][fp]
			for f := 0; f < nf; f++ {
				row[f] += n * src[f]
			}
		}
	}
}
