// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape implements the geometry leaf: the Point type, the corner
// shape functions and reference-space derivatives used by the geometric
// transformation (spec.md §4.1), the reference outward-normal tables, and
// the nodal-coordinate container passed to every element kernel (following
// gofem's BuildCoordsMatrix convention: x[dim][localNode]).
package shape

import "github.com/cpmech/gosl/chk"

// Point is a spatial coordinate in R^3; z is left at 0 for 2-D runs
// (spec.md §3 Point entity).
type Point [3]float64

// Type tags the reference element kind.
type Type int

const (
	// Quad is the 2-D quadrilateral reference element.
	Quad Type = iota
	// Hex is the 3-D hexahedral reference element.
	Hex
	// Tri is the 2-D triangular reference element; only its corner shape
	// functions are implemented (spec.md §9 design note). No FR Element
	// may be built on Tri; only the supermesh helper works with simplices,
	// and it uses its own tetrahedral subdivision, not this type.
	Tri
)

// NDims returns the spatial dimension of the reference element.
func (t Type) NDims() int {
	switch t {
	case Quad, Tri:
		return 2
	case Hex:
		return 3
	}
	chk.Panic("shape.Type.NDims: unknown element type %v", t)
	return 0
}

// NodeSet holds the nodal coordinates of one element's geometric
// representation, x[dim][localNode], following gofem's ele.BuildCoordsMatrix
// layout. A moving-mesh run additionally carries an RK-stage copy with the
// same shape (spec.md §3: "nodes" vs "nodesRK").
type NodeSet struct {
	X [][]float64 // [ndim][nnode]
}

// NewNodeSet allocates a zeroed node set for ndim dimensions and nnode nodes.
func NewNodeSet(ndim, nnode int) *NodeSet {
	x := make([][]float64, ndim)
	for d := range x {
		x[d] = make([]float64, nnode)
	}
	return &NodeSet{X: x}
}

// NNodes returns the number of geometric nodes.
func (o *NodeSet) NNodes() int { return len(o.X[0]) }

// ShapeVals evaluates the corner shape functions N_i(r) of the given
// element type at reference point r (len(r) == t.NDims()).
func ShapeVals(t Type, r []float64) []float64 {
	switch t {
	case Quad:
		return quad4Vals(r)
	case Hex:
		return hex8Vals(r)
	case Tri:
		return tri3Vals(r)
	}
	chk.Panic("shape.ShapeVals: unknown element type %v", t)
	return nil
}

// ShapeDerivs evaluates the reference-space derivatives dN_i/dr_d of the
// given element type at reference point r. The result is indexed
// dNdr[i][d].
func ShapeDerivs(t Type, r []float64) [][]float64 {
	switch t {
	case Quad:
		return quad4Derivs(r)
	case Hex:
		return hex8Derivs(r)
	case Tri:
		return tri3Derivs(r)
	}
	chk.Panic("shape.ShapeDerivs: unknown element type %v", t)
	return nil
}

// --- quad4 (bilinear quadrilateral, corner nodes ordered CCW from (-1,-1)) ---

var quad4Corners = [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

func quad4Vals(r []float64) []float64 {
	N := make([]float64, 4)
	for i, c := range quad4Corners {
		N[i] = 0.25 * (1 + c[0]*r[0]) * (1 + c[1]*r[1])
	}
	return N
}

func quad4Derivs(r []float64) [][]float64 {
	d := make([][]float64, 4)
	for i, c := range quad4Corners {
		d[i] = []float64{
			0.25 * c[0] * (1 + c[1]*r[1]),
			0.25 * c[1] * (1 + c[0]*r[0]),
		}
	}
	return d
}

// --- hex8 (trilinear hexahedron, corner nodes ordered per standard VTK_HEXAHEDRON) ---

var hex8Corners = [8][3]float64{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

func hex8Vals(r []float64) []float64 {
	N := make([]float64, 8)
	for i, c := range hex8Corners {
		N[i] = 0.125 * (1 + c[0]*r[0]) * (1 + c[1]*r[1]) * (1 + c[2]*r[2])
	}
	return N
}

func hex8Derivs(r []float64) [][]float64 {
	d := make([][]float64, 8)
	for i, c := range hex8Corners {
		d[i] = []float64{
			0.125 * c[0] * (1 + c[1]*r[1]) * (1 + c[2]*r[2]),
			0.125 * c[1] * (1 + c[0]*r[0]) * (1 + c[2]*r[2]),
			0.125 * c[2] * (1 + c[0]*r[0]) * (1 + c[1]*r[1]),
		}
	}
	return d
}

// --- tri3 (linear triangle, area coordinates; corner-shape only — no FR Element uses this) ---

func tri3Vals(r []float64) []float64 {
	return []float64{1 - r[0] - r[1], r[0], r[1]}
}

func tri3Derivs(r []float64) [][]float64 {
	return [][]float64{{-1, -1}, {1, 0}, {0, 1}}
}
