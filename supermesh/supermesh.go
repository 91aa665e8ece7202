// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package supermesh implements the local integration mesh used by the
// Galerkin-projection overset transfer (spec.md §4.5): a donor hexahedron is
// split into five tetrahedra, each tetrahedron is clipped against the planar
// faces of the target cell, and a tet-local quadrature integrates products
// of donor and target polynomials over the intersection.
package supermesh

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Vec3 is a point in R^3.
type Vec3 [3]float64

func sub(a, b Vec3) Vec3 { return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func dot(a, b Vec3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// Tet is a tetrahedron given by its four vertices.
type Tet [4]Vec3

// Volume returns the unsigned volume |det[v1-v0, v2-v0, v3-v0]|/6.
func (t Tet) Volume() float64 {
	a := sub(t[1], t[0])
	b := sub(t[2], t[0])
	c := sub(t[3], t[0])
	det := a[0]*(b[1]*c[2]-b[2]*c[1]) - a[1]*(b[0]*c[2]-b[2]*c[0]) + a[2]*(b[0]*c[1]-b[1]*c[0])
	return math.Abs(det) / 6
}

// hexTetConn is the fixed 5-tetrahedra decomposition of a hexahedron
// (spec.md §4.5): four corner tets plus the interior one.
var hexTetConn = [5][4]int{
	{0, 1, 4, 3},
	{2, 1, 6, 3},
	{5, 1, 6, 4},
	{7, 3, 4, 6},
	{1, 3, 6, 4},
}

// SplitHex splits a hexahedron (8 corners in VTK_HEXAHEDRON order) into its
// five tetrahedra.
func SplitHex(c [8]Vec3) [5]Tet {
	var out [5]Tet
	for i, conn := range hexTetConn {
		for j, v := range conn {
			out[i][j] = c[v]
		}
	}
	return out
}

// Plane is one planar face of the target cell: a point xc on the plane and
// the outward normal n. The cut ("outside") side is n.(x-xc) > 0.
type Plane struct {
	Xc, N Vec3
}

// intersect returns the point where edge a-b crosses the plane:
// alpha = n.(xc-a)/(n.(b-a)), x = a + alpha*(b-a) (spec.md §4.5).
func (pl Plane) intersect(a, b Vec3) Vec3 {
	alpha := dot(pl.N, sub(pl.Xc, a)) / dot(pl.N, sub(b, a))
	return Vec3{
		a[0] + alpha*(b[0]-a[0]),
		a[1] + alpha*(b[1]-a[1]),
		a[2] + alpha*(b[2]-a[2]),
	}
}

// ClipTet clips t against pl, returning the tetrahedralized portion on the
// kept side n.(x-xc) <= 0. The case index is the number of vertices on the
// cut side: case 0 keeps the input unchanged, cases 1 and 2 yield three
// tetrahedra, case 3 yields one, and case 4 (fully outside) yields none
// (spec.md §4.5).
func ClipTet(t Tet, pl Plane) []Tet {
	var out, in []int
	for i, v := range t {
		if dot(pl.N, sub(v, pl.Xc)) > 0 {
			out = append(out, i)
		} else {
			in = append(in, i)
		}
	}

	switch len(out) {
	case 0:
		return []Tet{t}

	case 1:
		// frustum left after slicing one corner off: 6 vertices, 3 tets
		a, b, c := t[in[0]], t[in[1]], t[in[2]]
		d := t[out[0]]
		p1 := pl.intersect(d, a)
		p2 := pl.intersect(d, b)
		p3 := pl.intersect(d, c)
		return []Tet{
			{a, b, c, p1},
			{b, c, p1, p2},
			{c, p1, p2, p3},
		}

	case 2:
		// wedge between the two kept vertices and four edge cuts: 3 tets
		a, b := t[in[0]], t[in[1]]
		c, d := t[out[0]], t[out[1]]
		p1 := pl.intersect(c, a)
		p2 := pl.intersect(c, b)
		p3 := pl.intersect(d, a)
		p4 := pl.intersect(d, b)
		return []Tet{
			{a, b, p1, p3},
			{b, p1, p2, p3},
			{b, p2, p3, p4},
		}

	case 3:
		// only the corner at the single kept vertex survives: 1 tet
		a := t[in[0]]
		p1 := pl.intersect(t[out[0]], a)
		p2 := pl.intersect(t[out[1]], a)
		p3 := pl.intersect(t[out[2]], a)
		return []Tet{{a, p1, p2, p3}}
	}

	// case 4: no contribution
	return nil
}

// Mesh is the clipped integration mesh: the donor tetrahedra restricted to
// the target cell, with a shared tet-local quadrature rule.
type Mesh struct {
	Tets []Tet

	qw []float64 // barycentric quadrature weights (sum 1)
	qp [][4]float64
}

// four-point degree-2 tetrahedral rule (barycentric coordinates)
var tetQW = []float64{0.25, 0.25, 0.25, 0.25}

const tetQA = 0.5854101966249685 // (5+3*sqrt5)/20
const tetQB = 0.1381966011250105 // (5-sqrt5)/20

var tetQP = [][4]float64{
	{tetQA, tetQB, tetQB, tetQB},
	{tetQB, tetQA, tetQB, tetQB},
	{tetQB, tetQB, tetQA, tetQB},
	{tetQB, tetQB, tetQB, tetQA},
}

// Build clips every donor tetrahedron of the hexahedron against every plane
// of the target cell, accumulating the surviving pieces.
func Build(donor [8]Vec3, target []Plane) *Mesh {
	current := make([]Tet, 0, 5)
	for _, t := range SplitHex(donor) {
		current = append(current, t)
	}
	for _, pl := range target {
		next := make([]Tet, 0, len(current))
		for _, t := range current {
			next = append(next, ClipTet(t, pl)...)
		}
		current = next
	}
	return &Mesh{Tets: current, qw: tetQW, qp: tetQP}
}

// NQpts returns the total number of quadrature points of the mesh.
func (o *Mesh) NQpts() int { return len(o.Tets) * len(o.qw) }

// Qpoints returns the physical location of every quadrature point, in the
// same ordering Integrate expects the sampled data in: tets outermost,
// points within a tet innermost.
func (o *Mesh) Qpoints() []Vec3 {
	out := make([]Vec3, 0, o.NQpts())
	for _, t := range o.Tets {
		for _, bc := range o.qp {
			var x Vec3
			for v := 0; v < 4; v++ {
				for d := 0; d < 3; d++ {
					x[d] += bc[v] * t[v][d]
				}
			}
			out = append(out, x)
		}
	}
	return out
}

// Integrate sums the quadrature contributions of data sampled at Qpoints():
// sum over tets of sum over qpts of w_q * data_q * detJ_local, with
// detJ_local = 6*V_tet the constant Jacobian determinant of each linear
// tetrahedron and the barycentric weights normalized so each tet
// contributes V_tet * mean(data). A data slice whose length does not match
// NQpts is fatal (spec.md §7).
func (o *Mesh) Integrate(data []float64) float64 {
	if len(data) != o.NQpts() {
		chk.Panic("supermesh.Mesh.Integrate: data length %d does not match %d quadrature points", len(data), o.NQpts())
	}
	var sum float64
	k := 0
	for _, t := range o.Tets {
		vol := t.Volume()
		for q := range o.qw {
			sum += o.qw[q] * data[k] * vol
			k++
		}
	}
	return sum
}

// Volume returns the total volume of the clipped mesh.
func (o *Mesh) Volume() float64 {
	var v float64
	for _, t := range o.Tets {
		v += t.Volume()
	}
	return v
}
