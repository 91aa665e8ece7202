// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_box01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("box01: 2-D Cartesian box counts, connectivity and periodic pairing")

	b := NewBox(2, 3, 2, 0, []float64{0, 0}, []float64{3, 2}, true, false, false)
	chk.IntAssert(b.NCells(), 6)
	chk.IntAssert(b.NVertsPerCell(0), 4)

	// cell 0 is [0,1]x[0,1] with CCW corners
	x0 := b.Xv(b.C2V(0, 0))
	x2 := b.Xv(b.C2V(0, 2))
	chk.Array(tst, "corner 0", 1e-15, x0, []float64{0, 0})
	chk.Array(tst, "corner 2", 1e-15, x2, []float64{1, 1})

	// interior faces: x-direction has 2 internal + 1 periodic wrap per
	// row (3 cells -> 2 internal, 1 wrap), y-direction 3 internal columns
	var nPeriodic, nPlain int
	for _, fc := range b.InteriorFaces() {
		if fc.Periodic {
			nPeriodic++
		} else {
			nPlain++
		}
	}
	chk.IntAssert(nPeriodic, 2) // one x-wrap per row
	chk.IntAssert(nPlain, 2*2+3*1)

	// boundaries: only the non-periodic y sides remain
	for _, bc := range b.BoundaryFaces() {
		if bc.Tag != "ymin" && bc.Tag != "ymax" {
			tst.Errorf("unexpected boundary tag %q", bc.Tag)
		}
	}
	chk.IntAssert(len(b.BoundaryFaces()), 6)
}

func Test_box02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("box02: 3-D box connectivity and iblank")

	b := NewBox(3, 2, 2, 2, []float64{0, 0, 0}, []float64{2, 2, 2}, false, false, false)
	chk.IntAssert(b.NCells(), 8)
	chk.IntAssert(b.NVertsPerCell(0), 8)
	chk.IntAssert(len(b.BoundaryFaces()), 6*4)
	chk.IntAssert(len(b.InteriorFaces()), 3*4)

	chk.IntAssert(int(b.IBlankCell(3)), int(Normal))
	b.SetIBlank(3, Fringe)
	chk.IntAssert(int(b.IBlankCell(3)), int(Fringe))
}
