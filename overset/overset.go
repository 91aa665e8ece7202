// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package overset implements the overset data transfer between two
// overlapping meshes (spec.md §6 "Overset communicator"): field
// interpolation to fringe-cell solution points, donor interpolation handles
// for overset faces, and the supermesh-based L2 Galerkin projection. The
// donor search here tries the donor of the nearest binned solution point
// first, then walks the remaining donors with a bounding-box reject; the
// production BVH/ADT connectivity search is out of the core's scope and
// slots in behind the same Match step.
package overset

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/gm"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/flurry/ele"
	"github.com/cpmech/flurry/supermesh"
)

// binsNdiv is the bins n-division used for the donor point search.
const binsNdiv = 20

// match records one resolved receiver point: which donor element covers it
// and at which reference location.
type match struct {
	donor *ele.Element
	ref   []float64
}

// Communicator moves data from a donor element set onto the fringe cells
// (and overset faces) of a receiver set.
type Communicator struct {
	Donors []*ele.Element
	Fringe []*ele.Element

	// matches[i][s] resolves fringe element i's solution point s; nil for
	// unresolved (orphan) points, which keep their current value
	matches [][]*match

	// bins over the donors' solution points, the same spatial-search
	// structure gofem's out package builds over nodes and integration
	// points; binDonor maps an appended point id back to its donor index
	bins     gm.Bins
	binDonor []int

	nOrphans int
}

// NewCommunicator builds a communicator between a donor element list and
// the receiver partition's fringe cells.
func NewCommunicator(donors, fringe []*ele.Element) *Communicator {
	o := &Communicator{Donors: donors, Fringe: fringe}
	o.buildBins()
	return o
}

// buildBins fills the donor-point bins used as the fast path of findDonor.
func (o *Communicator) buildBins() {
	if len(o.Donors) == 0 {
		return
	}
	nd := o.Donors[0].NDims()
	xi := make([]float64, nd)
	xf := make([]float64, nd)
	for d := 0; d < nd; d++ {
		xi[d] = math.Inf(1)
		xf[d] = math.Inf(-1)
	}
	for _, e := range o.Donors {
		box := e.BBoxOf()
		for d := 0; d < nd; d++ {
			xi[d] = math.Min(xi[d], box.Min[d])
			xf[d] = math.Max(xf[d], box.Max[d])
		}
	}
	// pad so boundary points never fall outside the bins
	for d := 0; d < nd; d++ {
		pad := 1e-8 * (xf[d] - xi[d])
		xi[d] -= pad
		xf[d] += pad
	}
	if err := o.bins.Init(xi, xf, binsNdiv); err != nil {
		chk.Panic("overset: cannot initialise donor bins: %v", err)
	}
	id := 0
	for di, e := range o.Donors {
		for _, x := range e.SptCoords() {
			if err := o.bins.Append(x, id); err != nil {
				chk.Panic("overset: cannot append donor point to bins: %v", err)
			}
			o.binDonor = append(o.binDonor, di)
			id++
		}
	}
}

// SetupFringeCellPoints sizes the match table; the receiver points are the
// fringe cells' solution points, re-read at every Match so mesh motion is
// picked up automatically.
func (o *Communicator) SetupFringeCellPoints() {
	o.matches = make([][]*match, len(o.Fringe))
	for i, e := range o.Fringe {
		o.matches[i] = make([]*match, e.NSpts())
	}
}

// MatchOversetPoints resolves a donor for every receiver point (spec.md §6
// matchOversetPoints). A point no donor covers is counted and left
// unmatched; the solver continues with the fringe cell's own value, which
// is the soft-warn path of spec.md §7.
func (o *Communicator) MatchOversetPoints() {
	o.nOrphans = 0
	for i, e := range o.Fringe {
		xs := e.SptCoords()
		for s, x := range xs {
			o.matches[i][s] = o.findDonor(x)
			if o.matches[i][s] == nil {
				o.nOrphans++
			}
		}
	}
	if o.nOrphans > 0 {
		io.Pfred("overset: %d receiver points have no donor\n", o.nOrphans)
	}
}

// refLocOf runs the two-phase reference-location search of spec.md §7: the
// Newton solve first, then -- only when it reported the non-convergence
// sentinel rather than a bounding-box reject -- the Nelder-Mead fallback.
func refLocOf(d *ele.Element, x []float64) ([]float64, bool) {
	r, ok := d.GetRefLocNewton(x)
	if !ok && ele.IsRefLocFailed(r) {
		r, ok = d.GetRefLocNelderMead(x)
	}
	return r, ok
}

// findDonor locates the donor element containing x: the bins give the donor
// owning the nearest registered solution point as a first candidate (fast
// path for the common case of deep overlap), then the remaining donors are
// scanned in order.
func (o *Communicator) findDonor(x []float64) *match {
	first := -1
	if o.binDonor != nil {
		if id := o.bins.Find(x); id >= 0 {
			first = o.binDonor[id]
			d := o.Donors[first]
			if r, ok := refLocOf(d, x); ok {
				return &match{donor: d, ref: r}
			}
		}
	}
	for di, d := range o.Donors {
		if di == first {
			continue
		}
		if r, ok := refLocOf(d, x); ok {
			return &match{donor: d, ref: r}
		}
	}
	return nil
}

// ExchangeOversetData interpolates the donor fields onto every matched
// fringe solution point (spec.md §4.3 step 1).
func (o *Communicator) ExchangeOversetData() {
	for i, e := range o.Fringe {
		for s, m := range o.matches[i] {
			if m == nil {
				continue
			}
			m.donor.Interpolate(m.ref, e.USpts[s])
		}
	}
}

// PerformGalerkinProjection replaces plain interpolation by the L2
// projection of the donor field onto each fringe cell's polynomial space,
// integrated over the donor/target supermesh (spec.md §4.5). With the
// solution points doubling as the quadrature rule, the projection mass
// matrix is diagonal: U_i = (1/(w_i detJ_i)) * Int L_i(x) u_donor(x) dx.
func (o *Communicator) PerformGalerkinProjection() {
	for i, e := range o.Fringe {
		if e.NDims() != 3 {
			chk.Panic("overset.Communicator.PerformGalerkinProjection: supermesh projection requires hexahedral (3-D) cells")
		}
		o.projectOne(e, o.matches[i])
	}
}

// projectOne projects the donor field onto one fringe hexahedron.
func (o *Communicator) projectOne(e *ele.Element, resolved []*match) {
	donors := donorsOf(resolved)
	if len(donors) == 0 {
		return
	}
	planes := targetPlanes(e)
	nf := e.NFields()
	nSpts := e.NSpts()

	rhs := make([][]float64, nSpts)
	for s := range rhs {
		rhs[s] = make([]float64, nf)
	}

	uD := make([]float64, nf)
	for _, d := range donors {
		mesh := supermesh.Build(hexCorners(d), planes)
		if len(mesh.Tets) == 0 {
			continue
		}
		for _, t := range mesh.Tets {
			vol := t.Volume()
			for _, q := range quadPoints(t) {
				x := []float64{q[0], q[1], q[2]}
				rd, okD := refLocOf(d, x)
				rt, okT := refLocOf(e, x)
				if !okD || !okT {
					continue
				}
				d.Interpolate(rd, uD)
				w := 0.25 * vol // four-point rule, equal weights
				for s := 0; s < nSpts; s++ {
					phi := e.BasisValue(s, rt)
					if phi == 0 {
						continue
					}
					for f := 0; f < nf; f++ {
						rhs[s][f] += w * phi * uD[f]
					}
				}
			}
		}
	}

	for s := 0; s < nSpts; s++ {
		m := e.Ops.SptWeight[s] * e.DetJacSpts[s]
		for f := 0; f < nf; f++ {
			e.USpts[s][f] = rhs[s][f] / m
		}
	}
}

// FaceDonor implements face.DonorInterp for one overset face: every
// face-local flux point is matched against the donor set and sampled on
// demand (spec.md §6 setupOverFacePoints).
type FaceDonor struct {
	comm    *Communicator
	left    *ele.Element
	fpts    []int
	matches []*match
	buf     [][]float64
}

// SetupOverFacePoints matches the physical flux points of face-local index
// list fpts on element left against the donor set.
func (o *Communicator) SetupOverFacePoints(left *ele.Element, fpts []int) *FaceDonor {
	fd := &FaceDonor{comm: o, left: left, fpts: fpts}
	fd.matches = make([]*match, len(fpts))
	fd.buf = make([][]float64, len(fpts))
	xs := left.FptCoords()
	for i, fp := range fpts {
		fd.matches[i] = o.findDonor(xs[fp])
		fd.buf[i] = make([]float64, left.NFields())
		if fd.matches[i] == nil {
			o.nOrphans++
		}
	}
	return fd
}

// DonorState implements face.DonorInterp; an orphan point falls back to the
// left element's own trace.
func (o *FaceDonor) DonorState(i int) []float64 {
	m := o.matches[i]
	if m == nil {
		return o.left.UFpts[o.fpts[i]]
	}
	m.donor.Interpolate(m.ref, o.buf[i])
	return o.buf[i]
}

// DonorGradient implements face.DonorInterp; the donor gradient trace is
// not transferred (the LDG common flux then falls back to the left trace).
func (o *FaceDonor) DonorGradient(i int) [][]float64 { return nil }

// donorsOf returns the distinct donor elements among the resolved matches.
func donorsOf(resolved []*match) []*ele.Element {
	seen := map[int]*ele.Element{}
	for _, m := range resolved {
		if m != nil {
			seen[m.donor.ID] = m.donor
		}
	}
	out := make([]*ele.Element, 0, len(seen))
	for _, d := range seen {
		out = append(out, d)
	}
	return out
}

// hexCorners extracts the donor's eight geometric corners.
func hexCorners(d *ele.Element) [8]supermesh.Vec3 {
	var out [8]supermesh.Vec3
	for i := 0; i < 8; i++ {
		for dim := 0; dim < 3; dim++ {
			out[i][dim] = d.Nodes.X[dim][i]
		}
	}
	return out
}

// targetPlanes builds the six clipping planes of an axis-aligned-ish target
// hexahedron from its face centers and outward face normals.
func targetPlanes(e *ele.Element) []supermesh.Plane {
	// face centers and normals from the corner nodes; faces ordered
	// -x,+x,-y,+y,-z,+z with the standard hex corner numbering
	faces := [6][4]int{
		{0, 3, 7, 4}, {1, 2, 6, 5},
		{0, 1, 5, 4}, {3, 2, 6, 7},
		{0, 1, 2, 3}, {4, 5, 6, 7},
	}
	out := make([]supermesh.Plane, 6)
	for f, conn := range faces {
		var c supermesh.Vec3
		for _, v := range conn {
			for d := 0; d < 3; d++ {
				c[d] += 0.25 * e.Nodes.X[d][v]
			}
		}
		// normal from two face diagonals
		var d1, d2, n supermesh.Vec3
		for d := 0; d < 3; d++ {
			d1[d] = e.Nodes.X[d][conn[2]] - e.Nodes.X[d][conn[0]]
			d2[d] = e.Nodes.X[d][conn[3]] - e.Nodes.X[d][conn[1]]
		}
		utl.Cross3d(n[:], d1[:], d2[:])
		// orient outward: away from the cell centroid
		var cc supermesh.Vec3
		for d := 0; d < 3; d++ {
			for v := 0; v < 8; v++ {
				cc[d] += 0.125 * e.Nodes.X[d][v]
			}
		}
		var dotOut float64
		for d := 0; d < 3; d++ {
			dotOut += n[d] * (c[d] - cc[d])
		}
		if dotOut < 0 {
			for d := 0; d < 3; d++ {
				n[d] = -n[d]
			}
		}
		out[f] = supermesh.Plane{Xc: c, N: n}
	}
	return out
}

// quadPoints returns the physical quadrature points of one tetrahedron
// (the same four-point rule the supermesh integrator uses).
func quadPoints(t supermesh.Tet) []supermesh.Vec3 {
	const qa = 0.5854101966249685
	const qb = 0.1381966011250105
	bcs := [4][4]float64{
		{qa, qb, qb, qb}, {qb, qa, qb, qb}, {qb, qb, qa, qb}, {qb, qb, qb, qa},
	}
	out := make([]supermesh.Vec3, 4)
	for q, bc := range bcs {
		for v := 0; v < 4; v++ {
			for d := 0; d < 3; d++ {
				out[q][d] += bc[v] * t[v][d]
			}
		}
	}
	return out
}
