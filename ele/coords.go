// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// SptCoords returns the physical coordinates of every solution point for
// the element's active node set, [nSpts][nDims]. Used by initial conditions
// and error norms; recomputed on demand so moving meshes always see the
// current geometry.
func (o *Element) SptCoords() [][]float64 {
	pts := o.refPointsSpts()
	out := make([][]float64, len(pts))
	for i, r := range pts {
		out[i] = o.xOfR(r)
	}
	return out
}

// FptCoords returns the physical coordinates of every flux point,
// [nFpts][nDims].
func (o *Element) FptCoords() [][]float64 {
	out := make([][]float64, o.nFpts)
	for i, r := range o.Ops.FptR {
		out[i] = o.xOfR(r)
	}
	return out
}

// MptCoords returns the physical coordinates of every plot point,
// [nMpts][nDims].
func (o *Element) MptCoords() [][]float64 {
	out := make([][]float64, o.nMpts)
	for i, r := range o.Ops.MptR {
		out[i] = o.xOfR(r)
	}
	return out
}

// NSpts, NFpts, NMpts and NFields expose the array sizes to collaborating
// packages (faces index the flux-point arrays; restart and plot writers
// need the counts).
func (o *Element) NSpts() int   { return o.nSpts }
func (o *Element) NFpts() int   { return o.nFpts }
func (o *Element) NMpts() int   { return o.nMpts }
func (o *Element) NFields() int { return o.nFields }
func (o *Element) NDims() int   { return o.nDims }
