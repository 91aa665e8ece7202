// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/flurry/shape"
)

// GetPrimitivesPlot returns the primitive variables at every plot point in
// the tensor-product plot ordering (spec.md §6 "Output"): for Euler/NS rows
// are {rho, u, v, w, p} (w=0 in 2-D); for the scalar equation rows are {U}.
// UMpts must be current (ExtrapolateToMpts).
func (o *Element) GetPrimitivesPlot(gamma float64) [][]float64 {
	nf := o.nFields
	out := make([][]float64, o.nMpts)
	if nf == 1 {
		for i, u := range o.UMpts {
			out[i] = []float64{u[0]}
		}
		return out
	}
	nd := o.nDims
	for i, u := range o.UMpts {
		rho := u[0]
		row := make([]float64, 5)
		row[0] = rho
		var kinetic float64
		for d := 0; d < nd; d++ {
			row[1+d] = u[1+d] / rho
			kinetic += u[1+d] * u[1+d]
		}
		row[4] = (gamma - 1) * (u[nf-1] - 0.5*kinetic/rho)
		out[i] = row
	}
	return out
}

// GetGridVelPlot interpolates the nodal grid velocity to the plot points;
// zero rows for static meshes.
func (o *Element) GetGridVelPlot() [][]float64 {
	out := make([][]float64, o.nMpts)
	for i := range out {
		out[i] = make([]float64, 3)
	}
	if o.GridVelNodes == nil {
		return out
	}
	for i, r := range o.Ops.MptR {
		N := shape.ShapeVals(o.Type, r)
		for d := 0; d < o.nDims; d++ {
			var sum float64
			for n, Nn := range N {
				sum += Nn * o.GridVelNodes[d][n]
			}
			out[i][d] = sum
		}
	}
	return out
}

// GetEntropyErrPlot returns the entropy error p/rho^gamma / (pinf/rhoinf^gamma) - 1
// at every plot point (NS only; spec.md §6 optional EntropyErr field).
func (o *Element) GetEntropyErrPlot(gamma, rhoinf, pinf float64) []float64 {
	out := make([]float64, o.nMpts)
	sinf := pinf / math.Pow(rhoinf, gamma)
	nf := o.nFields
	nd := o.nDims
	for i, u := range o.UMpts {
		rho := u[0]
		var kinetic float64
		for d := 0; d < nd; d++ {
			kinetic += u[1+d] * u[1+d]
		}
		p := (gamma - 1) * (u[nf-1] - 0.5*kinetic/rho)
		out[i] = p/math.Pow(rho, gamma)/sinf - 1
	}
	return out
}

// CalcEntropy fills SSpts/SFpts with the physical entropy measure
// p/rho^gamma at every solution and flux point; used by the entropy-bound
// squeeze diagnostics and the entropySensor output (spec.md §3 "entropy
// S_spts/fpts").
func (o *Element) CalcEntropy(gamma float64) {
	if o.SSpts == nil {
		return
	}
	nf, nd := o.nFields, o.nDims
	ent := func(u []float64) float64 {
		rho := u[0]
		var kinetic float64
		for d := 0; d < nd; d++ {
			kinetic += u[1+d] * u[1+d]
		}
		p := (gamma - 1) * (u[nf-1] - 0.5*kinetic/rho)
		return p / math.Pow(rho, gamma)
	}
	for i, u := range o.USpts {
		o.SSpts[i] = ent(u)
	}
	for i, u := range o.UFpts {
		o.SFpts[i] = ent(u)
	}
}
