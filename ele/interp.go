// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/flurry/basis"
	"github.com/cpmech/flurry/la"
	"github.com/cpmech/flurry/shape"
)

// Interpolate evaluates the element's solution polynomial at an arbitrary
// reference location r, writing nFields values into out. Used by the
// overset field interpolation and the Galerkin projection, which sample
// donor elements at receiver points (spec.md §6 "Overset communicator").
func (o *Element) Interpolate(r []float64, out []float64) {
	n := o.Order + 1
	pts := basis.Points(o.Ops.PtSet, n)
	lag := basis.NewLagrange1D(pts)

	// per-dimension 1-D basis values at r
	vals := make([][]float64, o.nDims)
	for d := 0; d < o.nDims; d++ {
		row := make([]float64, n)
		lag.EvalBasis(row, r[d])
		vals[d] = row
	}

	for f := 0; f < o.nFields; f++ {
		out[f] = 0
	}
	for i, idx := range o.Ops.SptIdx {
		w := 1.0
		for d := 0; d < o.nDims; d++ {
			w *= vals[d][idx[d]]
		}
		if w == 0 {
			continue
		}
		for f := 0; f < o.nFields; f++ {
			out[f] += w * o.USpts[i][f]
		}
	}
}

// BasisValue evaluates the s-th tensor-product Lagrange basis function
// (cardinal at solution point s) at reference location r.
func (o *Element) BasisValue(s int, r []float64) float64 {
	n := o.Order + 1
	pts := basis.Points(o.Ops.PtSet, n)
	lag := basis.NewLagrange1D(pts)
	row := make([]float64, n)
	idx := o.Ops.SptIdx[s]
	v := 1.0
	for d := 0; d < o.nDims; d++ {
		lag.EvalBasis(row, r[d])
		v *= row[idx[d]]
	}
	return v
}

// InterpOperator builds the (pNew+1)^d x (pOld+1)^d inter-order remap
// operator: tensor-product Lagrange evaluation of the old solution-point
// basis at the new solution points (spec.md §6 "Restart inter-order
// interpolation operator"). Row i is the new point, column j the old basis
// function; the same operator serves the p-multigrid restriction and
// prolongation transfers.
func InterpOperator(t shape.Type, pNew, pOld int, ptSet basis.PointSet) *la.Matrix {
	d := t.NDims()
	nNew, nOld := pNew+1, pOld+1
	newIdx := tensorIndices(d, nNew)
	oldIdx := tensorIndices(d, nOld)

	newPts := basis.Points(ptSet, nNew)
	oldPts := basis.Points(ptSet, nOld)
	lag := basis.NewLagrange1D(oldPts)

	// basisAt[k][j] = L_j^old(newPts[k])
	basisAt := make([][]float64, nNew)
	for k := range basisAt {
		row := make([]float64, nOld)
		lag.EvalBasis(row, newPts[k])
		basisAt[k] = row
	}

	op := la.NewMatrix(len(newIdx), len(oldIdx))
	for i, ni := range newIdx {
		for j, oj := range oldIdx {
			v := 1.0
			for k := 0; k < d; k++ {
				v *= basisAt[ni[k]][oj[k]]
			}
			op.Set(i, j, v)
		}
	}
	return op
}
