// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ele implements the CORE of Flurry: the per-(type,order) operator
// cache (spec.md §4.4), the per-element FR state and kernels (spec.md
// §4.1), and the solution container shared with the face package.
package ele

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/flurry/basis"
	"github.com/cpmech/flurry/la"
	"github.com/cpmech/flurry/shape"
)

// Operators bundles every dense matrix that is reusable across all elements
// sharing one (element type, polynomial order) pair (spec.md §3 "Operator
// table", §4.4). Built once by Cache.Get and read-only afterwards.
type Operators struct {
	Type  shape.Type
	Order int
	NDims int
	NSpts int
	NFpts int
	NMpts int

	PtSet basis.PointSet

	SptIdx    [][]int   // tensor multi-index of each solution point
	SptWeight []float64 // tensor-product quadrature weight of each solution point

	FptFace      []int       // which reference face each flux point lies on
	FptNormalDir []int       // the face's normal reference direction
	FptSide      []int       // +1 or -1: which side of that direction
	FptTransIdx  [][]int     // transverse multi-index (len NDims-1) of each flux point
	FptNormalRef [][]float64 // constant reference outward normal per flux point
	FptR         [][]float64 // reference coordinates of each flux point

	MptR [][]float64 // reference coordinates of each plot point

	// ExtrapSptsToFpts is the (NFpts x NSpts) matrix extrapolating the
	// solution-point field to the flux points (spec.md §4.4
	// opp_spts_to_fpts); ExtrapNormalFlux aliases the same matrix since
	// the reference-normal dot product is applied per flux point at use
	// time, not baked into a second matrix (see Element.extrapolateNormalFlux).
	ExtrapSptsToFpts *la.Matrix
	ExtrapNormalFlux *la.Matrix

	// ExtrapSptsToMpts is the (NMpts x NSpts) matrix evaluated at plot
	// points including the reference-element endpoints (opp_spts_to_mpts).
	ExtrapSptsToMpts *la.Matrix

	// GradSpts holds one (NSpts x NSpts) matrix per reference dimension,
	// GradSpts[d][i][j] = dL_j/dξ_d at solution point i (opp_grad_spts).
	GradSpts []*la.Matrix

	// DivFptsToSpts is the (NSpts x NFpts) FR correction-function
	// divergence operator (opp_div_fpts_to_spts): maps the scalar
	// normal-flux jump at every flux point to its contribution to the
	// scalar divergence at every solution point.
	DivFptsToSpts *la.Matrix

	// GradCorr holds one (NSpts x NFpts) matrix per reference dimension,
	// extending the solution gradient with the flux-point jump
	// (U_c-U_fpts); only flux points whose face normal is direction d
	// contribute to GradCorr[d] (opp_grad_corr).
	GradCorr []*la.Matrix
}

// dimsExcept returns the NDims-1 dimensions other than skip, in ascending
// order; this fixes the ordering convention used for FptTransIdx.
func dimsExcept(ndims, skip int) []int {
	out := make([]int, 0, ndims-1)
	for d := 0; d < ndims; d++ {
		if d != skip {
			out = append(out, d)
		}
	}
	return out
}

// normalDirAndSide inspects a constant reference face normal (one nonzero
// component, ±1) and returns which dimension it is and its sign.
func normalDirAndSide(n []float64) (dir, side int) {
	for d, v := range n {
		if v > 0.5 {
			return d, 1
		}
		if v < -0.5 {
			return d, -1
		}
	}
	chk.Panic("ele.normalDirAndSide: reference normal %v is not axis-aligned", n)
	return 0, 0
}

// BuildOperators constructs every dense operator for one (type, order) pair.
func BuildOperators(t shape.Type, order int, ptSet basis.PointSet) *Operators {
	if t != shape.Quad && t != shape.Hex {
		chk.Panic("ele.BuildOperators: only Quad and Hex are fully implemented; Tri has no FR element (spec.md §9 design note), got %v", t)
	}
	d := t.NDims()
	n := order + 1 // solution points per reference direction
	pts := basis.Points(ptSet, n)
	lag := basis.NewLagrange1D(pts)
	D1 := lag.DerivMatrix()

	o := &Operators{Type: t, Order: order, NDims: d, PtSet: ptSet}

	// solution points ---------------------------------------------------
	o.SptIdx = tensorIndices(d, n)
	o.NSpts = len(o.SptIdx)
	w1D := basis.Weights(ptSet, n)
	o.SptWeight = make([]float64, o.NSpts)
	for i, si := range o.SptIdx {
		v := 1.0
		for k := 0; k < d; k++ {
			v *= w1D[si[k]]
		}
		o.SptWeight[i] = v
	}

	// per-direction gradient operator: Kronecker in every axis but d
	o.GradSpts = make([]*la.Matrix, d)
	for dim := 0; dim < d; dim++ {
		m := la.NewMatrix(o.NSpts, o.NSpts)
		for i, si := range o.SptIdx {
			for j, sj := range o.SptIdx {
				match := true
				for k := 0; k < d; k++ {
					if k == dim {
						continue
					}
					if si[k] != sj[k] {
						match = false
						break
					}
				}
				if match {
					m.Set(i, j, D1[si[dim]][sj[dim]])
				}
			}
		}
		o.GradSpts[dim] = m
	}

	// flux points ---------------------------------------------------------
	nFaces := shape.NFaces(t)
	transCount := pow(n, d-1)
	o.NFpts = nFaces * transCount

	o.FptFace = make([]int, 0, o.NFpts)
	o.FptNormalDir = make([]int, 0, o.NFpts)
	o.FptSide = make([]int, 0, o.NFpts)
	o.FptTransIdx = make([][]int, 0, o.NFpts)
	o.FptNormalRef = make([][]float64, 0, o.NFpts)
	o.FptR = make([][]float64, 0, o.NFpts)

	transIdxSet := tensorIndices(d-1, n)
	for f := 0; f < nFaces; f++ {
		nrm := shape.FaceNormal(t, f)
		dir, side := normalDirAndSide(nrm)
		trans := dimsExcept(d, dir)
		for _, ti := range transIdxSet {
			// ti has length d-1, one component per transverse dimension,
			// in the same order as `trans`.
			s := make([]float64, d-1)
			for k := range trans {
				s[k] = pts[ti[k]]
			}
			r := shape.FacePoint(t, f, s)
			o.FptFace = append(o.FptFace, f)
			o.FptNormalDir = append(o.FptNormalDir, dir)
			o.FptSide = append(o.FptSide, side)
			o.FptTransIdx = append(o.FptTransIdx, ti)
			o.FptNormalRef = append(o.FptNormalRef, nrm)
			o.FptR = append(o.FptR, r)
		}
	}

	// extrapolation spts -> fpts: Kronecker in transverse dims, genuine
	// 1-D Lagrange evaluation at ξ=±1 in the normal dimension
	evalPlus := make([]float64, n)
	evalMinus := make([]float64, n)
	lag.EvalBasis(evalPlus, 1)
	lag.EvalBasis(evalMinus, -1)

	o.ExtrapSptsToFpts = la.NewMatrix(o.NFpts, o.NSpts)
	o.DivFptsToSpts = la.NewMatrix(o.NSpts, o.NFpts)
	o.GradCorr = make([]*la.Matrix, d)
	for dim := 0; dim < d; dim++ {
		o.GradCorr[dim] = la.NewMatrix(o.NSpts, o.NFpts)
	}

	for fp := 0; fp < o.NFpts; fp++ {
		dir := o.FptNormalDir[fp]
		side := o.FptSide[fp]
		trans := dimsExcept(d, dir)
		ti := o.FptTransIdx[fp]
		evalNormal := evalPlus
		if side < 0 {
			evalNormal = evalMinus
		}
		for si, spt := range o.SptIdx {
			// transverse match required
			match := true
			for k, dim := range trans {
				if spt[dim] != ti[k] {
					match = false
					break
				}
			}
			if !match {
				continue
			}
			o.ExtrapSptsToFpts.Set(fp, si, evalNormal[spt[dir]])
			o.DivFptsToSpts.Set(si, fp, divCorrectionDeriv(order, side, pts[spt[dir]]))
			o.GradCorr[dir].Set(si, fp, correctionDeriv(order, side, pts[spt[dir]]))
		}
	}
	o.ExtrapNormalFlux = o.ExtrapSptsToFpts

	// plot points -----------------------------------------------------------
	mpts1D := basis.PlotPoints(ptSet, n)
	nm := len(mpts1D)
	mptIdx := tensorIndices(d, nm)
	o.NMpts = len(mptIdx)
	o.MptR = make([][]float64, o.NMpts)
	o.ExtrapSptsToMpts = la.NewMatrix(o.NMpts, o.NSpts)

	// precompute, for each of the nm plot-point coordinates, the 1-D basis
	// values at every solution-point node
	basisAtMpt := make([][]float64, nm)
	for k := 0; k < nm; k++ {
		row := make([]float64, n)
		lag.EvalBasis(row, mpts1D[k])
		basisAtMpt[k] = row
	}
	for mi, mIdx := range mptIdx {
		r := make([]float64, d)
		for k := 0; k < d; k++ {
			r[k] = mpts1D[mIdx[k]]
		}
		o.MptR[mi] = r
		for si, spt := range o.SptIdx {
			v := 1.0
			for k := 0; k < d; k++ {
				v *= basisAtMpt[mIdx[k]][spt[k]]
			}
			o.ExtrapSptsToMpts.Set(mi, si, v)
		}
	}

	return o
}
