// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package supermesh

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

var unitTet = Tet{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

func Test_tet01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("tet01: unit tetrahedron volume and hex split")

	chk.Float64(tst, "unit tet volume", 1e-15, unitTet.Volume(), 1.0/6.0)

	cube := [8]Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	tets := SplitHex(cube)
	var vol float64
	for _, t := range tets {
		vol += t.Volume()
	}
	chk.Float64(tst, "five tets fill the cube", 1e-14, vol, 1.0)
}

func Test_clip01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("clip01: one vertex outside yields three tets conserving volume")

	// plane x = 0.8 cuts off the corner at (1,0,0): exactly one vertex on
	// the cut side; the removed corner is a similar tet scaled by 0.2
	pl := Plane{Xc: Vec3{0.8, 0, 0}, N: Vec3{1, 0, 0}}
	got := ClipTet(unitTet, pl)
	chk.IntAssert(len(got), 3)

	var vol float64
	for _, t := range got {
		vol += t.Volume()
	}
	removed := math.Pow(1-0.8, 3) / 6
	chk.Float64(tst, "kept volume", 1e-15, vol, 1.0/6.0-removed)
}

func Test_clip02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("clip02: remaining clip cases 0, 2, 3 and 4")

	// case 0: plane beyond the tet keeps it whole
	keep := ClipTet(unitTet, Plane{Xc: Vec3{5, 0, 0}, N: Vec3{1, 0, 0}})
	chk.IntAssert(len(keep), 1)
	chk.Float64(tst, "case 0 volume", 1e-15, keep[0].Volume(), 1.0/6.0)

	// case 2: plane x+y = 0.5 puts (1,0,0) and (0,1,0) on the cut side;
	// the kept region {x+y <= 1/2} of the unit tet has volume 1/12
	c2 := ClipTet(unitTet, Plane{Xc: Vec3{0.5, 0, 0}, N: Vec3{1, 1, 0}})
	chk.IntAssert(len(c2), 3)
	var vol float64
	for _, t := range c2 {
		vol += t.Volume()
	}
	chk.Float64(tst, "case 2 volume", 1e-14, vol, 1.0/12.0)

	// case 3: three vertices outside leaves the corner tet at the origin
	c3 := ClipTet(unitTet, Plane{Xc: Vec3{0.8 / 3, 0.8 / 3, 0.8 / 3}, N: Vec3{1, 1, 1}})
	chk.IntAssert(len(c3), 1)
	chk.Float64(tst, "case 3 volume", 1e-14, c3[0].Volume(), math.Pow(0.8, 3)/6)

	// case 4: fully outside signals no contribution
	c4 := ClipTet(unitTet, Plane{Xc: Vec3{-1, 0, 0}, N: Vec3{1, 0, 0}})
	chk.IntAssert(len(c4), 0)
}

func Test_integrate01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("integrate01: quadrature of a constant equals the clipped volume")

	cube := [8]Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	// target: the half-space x <= 0.5 bounded as a box face set
	planes := []Plane{
		{Xc: Vec3{0.5, 0, 0}, N: Vec3{1, 0, 0}},
		{Xc: Vec3{0, 0, 0}, N: Vec3{-1, 0, 0}},
		{Xc: Vec3{0, 0, 0}, N: Vec3{0, -1, 0}},
		{Xc: Vec3{0, 1, 0}, N: Vec3{0, 1, 0}},
		{Xc: Vec3{0, 0, 0}, N: Vec3{0, 0, -1}},
		{Xc: Vec3{0, 0, 1}, N: Vec3{0, 0, 1}},
	}
	m := Build(cube, planes)
	chk.Float64(tst, "clipped volume", 1e-13, m.Volume(), 0.5)

	data := make([]float64, m.NQpts())
	for i := range data {
		data[i] = 3.0
	}
	chk.Float64(tst, "integral of constant 3", 1e-13, m.Integrate(data), 1.5)
}

func Test_integrate02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("integrate02: wrong data length is fatal")

	m := Build([8]Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}, nil)

	defer func() {
		if recover() == nil {
			tst.Errorf("expected Integrate to panic on a short data slice")
		}
	}()
	m.Integrate([]float64{1, 2, 3})
}
