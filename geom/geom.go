// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom defines the geometry-service boundary of the solver (spec.md
// §6 "Geometry service"): cell-to-vertex connectivity, vertex coordinates,
// grid velocities, iblank status and the per-partition element/face lists.
// Mesh ingestion and partitioning live behind the Service interface; the one
// concrete implementation provided here is the Cartesian box generator used
// by meshType=1 runs and by the test fixtures.
package geom

import "github.com/cpmech/gosl/chk"

// IBlank is the per-cell overset status (spec.md §6, GLOSSARY "iblank").
type IBlank int

const (
	// Normal cells carry their own solution.
	Normal IBlank = iota
	// Hole cells are blanked out of the computation entirely.
	Hole
	// Fringe cells receive their solution from a donor mesh.
	Fringe
)

// FaceConn describes one matched interior (or periodic) face: cells L and R
// with their local face ids, plus the right side's flux-point permutation
// relative to the left side's ordering.
type FaceConn struct {
	CellL, FaceL int
	CellR, FaceR int
	// FptPermR[i] is the index, within R's face-local flux-point ordering,
	// matching L's i-th face-local flux point; accounts for rotation and
	// flipping of the shared face.
	FptPermR []int
	Periodic bool
}

// BoundConn describes one unmatched boundary face and its tag.
type BoundConn struct {
	Cell, Face int
	Tag        string
}

// Service is the read interface the solver core consumes (spec.md §6).
type Service interface {
	// NCells returns the number of cells in this partition.
	NCells() int

	// NVertsPerCell returns the geometric node count of cell ic.
	NVertsPerCell(ic int) int

	// C2V returns the global vertex id of local vertex i of cell ic.
	C2V(ic, i int) int

	// Xv returns the coordinates of vertex iv, len nDims.
	Xv(iv int) []float64

	// GridVel returns the grid velocity of vertex iv; nil when static.
	GridVel(iv int) []float64

	// IBlankCell returns the overset status of cell ic.
	IBlankCell(ic int) IBlank

	// InteriorFaces lists the matched faces of this partition, periodic
	// pairs included.
	InteriorFaces() []FaceConn

	// BoundaryFaces lists the unmatched faces and their tags.
	BoundaryFaces() []BoundConn

	// UpdateADT refreshes the search structures after mesh motion; a no-op
	// for static meshes.
	UpdateADT()
}

// Box is the Cartesian quad/hex mesh generator (spec.md §6 "mesh creation
// box"). Cells are numbered lexicographically, x fastest; vertices likewise.
type Box struct {
	NDims      int
	Nx, Ny, Nz int // cells per direction; Nz ignored in 2-D
	Min, Max   []float64
	PerX, PerY, PerZ bool // periodic pairing of opposite sides

	iblank []IBlank
	verts  [][]float64
}

// NewBox builds the generator and its vertex table.
func NewBox(ndims, nx, ny, nz int, min, max []float64, perX, perY, perZ bool) *Box {
	if ndims != 2 && ndims != 3 {
		chk.Panic("geom.NewBox: ndims must be 2 or 3 (got %d)", ndims)
	}
	if nx < 1 || ny < 1 || (ndims == 3 && nz < 1) {
		chk.Panic("geom.NewBox: cell counts must be >= 1 (got %d %d %d)", nx, ny, nz)
	}
	if ndims == 2 {
		nz = 1
	}
	o := &Box{NDims: ndims, Nx: nx, Ny: ny, Nz: nz, Min: min, Max: max, PerX: perX, PerY: perY, PerZ: perZ}
	o.buildVerts()
	o.iblank = make([]IBlank, o.NCells())
	return o
}

func (o *Box) buildVerts() {
	nvx, nvy := o.Nx+1, o.Ny+1
	nvz := 1
	if o.NDims == 3 {
		nvz = o.Nz + 1
	}
	dx := (o.Max[0] - o.Min[0]) / float64(o.Nx)
	dy := (o.Max[1] - o.Min[1]) / float64(o.Ny)
	dz := 0.0
	if o.NDims == 3 {
		dz = (o.Max[2] - o.Min[2]) / float64(o.Nz)
	}
	o.verts = make([][]float64, 0, nvx*nvy*nvz)
	for k := 0; k < nvz; k++ {
		for j := 0; j < nvy; j++ {
			for i := 0; i < nvx; i++ {
				v := make([]float64, o.NDims)
				v[0] = o.Min[0] + float64(i)*dx
				v[1] = o.Min[1] + float64(j)*dy
				if o.NDims == 3 {
					v[2] = o.Min[2] + float64(k)*dz
				}
				o.verts = append(o.verts, v)
			}
		}
	}
}

// NCells implements Service.
func (o *Box) NCells() int {
	n := o.Nx * o.Ny
	if o.NDims == 3 {
		n *= o.Nz
	}
	return n
}

// NVertsPerCell implements Service: 4 for quads, 8 for hexes.
func (o *Box) NVertsPerCell(ic int) int {
	if o.NDims == 2 {
		return 4
	}
	return 8
}

func (o *Box) cellIJK(ic int) (i, j, k int) {
	i = ic % o.Nx
	j = (ic / o.Nx) % o.Ny
	k = ic / (o.Nx * o.Ny)
	return
}

func (o *Box) vertID(i, j, k int) int {
	nvx, nvy := o.Nx+1, o.Ny+1
	return (k*nvy+j)*nvx + i
}

// quad corners CCW from (-1,-1), hex corners per VTK_HEXAHEDRON, matching
// the shape package's corner ordering.
var quadCorner = [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
var hexCorner = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// C2V implements Service.
func (o *Box) C2V(ic, n int) int {
	i, j, k := o.cellIJK(ic)
	if o.NDims == 2 {
		c := quadCorner[n]
		return o.vertID(i+c[0], j+c[1], 0)
	}
	c := hexCorner[n]
	return o.vertID(i+c[0], j+c[1], k+c[2])
}

// Xv implements Service.
func (o *Box) Xv(iv int) []float64 { return o.verts[iv] }

// GridVel implements Service; the box mesh itself is static (mesh motion is
// applied analytically by the solver on top of the base coordinates).
func (o *Box) GridVel(iv int) []float64 { return nil }

// IBlankCell implements Service.
func (o *Box) IBlankCell(ic int) IBlank { return o.iblank[ic] }

// SetIBlank overrides the status of cell ic (driven by the overset
// connectivity, or by a restart file's IBLANK_CELL comment).
func (o *Box) SetIBlank(ic int, s IBlank) { o.iblank[ic] = s }

// UpdateADT implements Service; nothing to refresh for the analytic box.
func (o *Box) UpdateADT() {}

// face ids follow the shape package's convention: quads are
// bottom,right,top,left; hexes are -x,+x,-y,+y,-z,+z.

// InteriorFaces implements Service, pairing x-, y- (and z-) neighbors plus
// the periodic wrap-around pairs when enabled. On a Cartesian box every
// shared face keeps the identical transverse orientation on both sides, so
// the flux-point permutation is the identity (nil, interpreted as identity
// by the solver).
func (o *Box) InteriorFaces() []FaceConn {
	var out []FaceConn
	nz := 1
	if o.NDims == 3 {
		nz = o.Nz
	}
	cell := func(i, j, k int) int { return (k*o.Ny+j)*o.Nx + i }
	faceX, faceXopp := 1, 3 // quad: right,left
	faceY, faceYopp := 2, 0 // quad: top,bottom
	if o.NDims == 3 {
		faceX, faceXopp = 1, 0 // hex: +x,-x
		faceY, faceYopp = 3, 2 // hex: +y,-y
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < o.Ny; j++ {
			for i := 0; i < o.Nx; i++ {
				c := cell(i, j, k)
				if i+1 < o.Nx {
					out = append(out, FaceConn{CellL: c, FaceL: faceX, CellR: cell(i+1, j, k), FaceR: faceXopp})
				} else if o.PerX {
					out = append(out, FaceConn{CellL: c, FaceL: faceX, CellR: cell(0, j, k), FaceR: faceXopp, Periodic: true})
				}
				if j+1 < o.Ny {
					out = append(out, FaceConn{CellL: c, FaceL: faceY, CellR: cell(i, j+1, k), FaceR: faceYopp})
				} else if o.PerY {
					out = append(out, FaceConn{CellL: c, FaceL: faceY, CellR: cell(i, 0, k), FaceR: faceYopp, Periodic: true})
				}
				if o.NDims == 3 {
					if k+1 < nz {
						out = append(out, FaceConn{CellL: c, FaceL: 5, CellR: cell(i, j, k+1), FaceR: 4})
					} else if o.PerZ {
						out = append(out, FaceConn{CellL: c, FaceL: 5, CellR: cell(i, j, 0), FaceR: 4, Periodic: true})
					}
				}
			}
		}
	}
	return out
}

// BoundaryFaces implements Service, listing every non-periodic box side.
func (o *Box) BoundaryFaces() []BoundConn {
	var out []BoundConn
	nz := 1
	if o.NDims == 3 {
		nz = o.Nz
	}
	cell := func(i, j, k int) int { return (k*o.Ny+j)*o.Nx + i }
	type side struct {
		periodic bool
		tag      string
		face     int
		pick     func(a, b int) (i, j, k int)
		na, nb   int
	}
	fXmin, fXmax := 3, 1
	fYmin, fYmax := 0, 2
	if o.NDims == 3 {
		fXmin, fXmax = 0, 1
		fYmin, fYmax = 2, 3
	}
	sides := []side{
		{o.PerX, "xmin", fXmin, func(a, b int) (int, int, int) { return 0, a, b }, o.Ny, nz},
		{o.PerX, "xmax", fXmax, func(a, b int) (int, int, int) { return o.Nx - 1, a, b }, o.Ny, nz},
		{o.PerY, "ymin", fYmin, func(a, b int) (int, int, int) { return a, 0, b }, o.Nx, nz},
		{o.PerY, "ymax", fYmax, func(a, b int) (int, int, int) { return a, o.Ny - 1, b }, o.Nx, nz},
	}
	if o.NDims == 3 {
		sides = append(sides,
			side{o.PerZ, "zmin", 4, func(a, b int) (int, int, int) { return a, b, 0 }, o.Nx, o.Ny},
			side{o.PerZ, "zmax", 5, func(a, b int) (int, int, int) { return a, b, nz - 1 }, o.Nx, o.Ny},
		)
	}
	for _, s := range sides {
		if s.periodic {
			continue
		}
		for b := 0; b < s.nb; b++ {
			for a := 0; a < s.na; a++ {
				i, j, k := s.pick(a, b)
				out = append(out, BoundConn{Cell: cell(i, j, k), Face: s.face, Tag: s.tag})
			}
		}
	}
	return out
}
