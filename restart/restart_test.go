// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package restart

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/flurry/basis"
	"github.com/cpmech/flurry/ele"
	"github.com/cpmech/flurry/physics/euler"
	"github.com/cpmech/flurry/shape"
)

func buildPair(order int) []*ele.Element {
	ops := ele.BuildOperators(shape.Quad, order, basis.Legendre)
	phys := euler.NewModel(2, false, 0, euler.Rusanov)
	eles := make([]*ele.Element, 2)
	for k := 0; k < 2; k++ {
		nodes := shape.NewNodeSet(2, 4)
		x0 := float64(k)
		nodes.X[0] = []float64{x0, x0 + 1, x0 + 1, x0}
		nodes.X[1] = []float64{0, 0, 1, 1}
		eles[k] = ele.NewElement(k, ops, phys, nodes, ele.Static, 1)
	}
	return eles
}

func Test_restart01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("restart01: same-order round trip reproduces U_spts")

	eles := buildPair(2)
	for _, e := range eles {
		xs := e.SptCoords()
		for i, x := range xs {
			rho := 1 + 0.1*math.Sin(x[0]) + 0.05*x[1]
			u := 0.3 * x[0]
			v := -0.2 * x[1]
			p := 1 + 0.01*x[0]*x[1]
			e.USpts[i][0] = rho
			e.USpts[i][1] = rho * u
			e.USpts[i][2] = rho * v
			e.USpts[i][3] = p/0.4 + 0.5*rho*(u*u+v*v)
		}
	}

	fname := filepath.Join(tst.TempDir(), "restart01.vtu")
	Write(fname, eles, 1.25, 2, 1.4, nil, false, 1, 1)

	f := Read(fname)
	chk.Float64(tst, "time", 1e-14, f.Time, 1.25)
	chk.IntAssert(f.Order, 2)

	fresh := buildPair(2)
	Apply(f, fresh, 2, 1.4)
	for k, e := range fresh {
		for i := range e.USpts {
			for fd := 0; fd < 4; fd++ {
				chk.Float64(tst, "round-tripped U", 1e-12, e.USpts[i][fd], eles[k].USpts[i][fd])
			}
		}
	}
}

func Test_restart02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("restart02: inter-order restart remaps a smooth field")

	old := buildPair(1)
	for _, e := range old {
		xs := e.SptCoords()
		for i, x := range xs {
			// fields linear in x,y are exactly representable at p=1 and
			// must survive the remap to p=3 exactly
			rho := 1 + 0.1*x[0]
			e.USpts[i][0] = rho
			e.USpts[i][1] = 0
			e.USpts[i][2] = 0
			e.USpts[i][3] = 1 / 0.4
		}
	}
	fname := filepath.Join(tst.TempDir(), "restart02.vtu")
	Write(fname, old, 0, 1, 1.4, nil, false, 1, 1)

	f := Read(fname)
	chk.IntAssert(f.Order, 1)

	fine := buildPair(3)
	Apply(f, fine, 3, 1.4)
	for _, e := range fine {
		xs := e.SptCoords()
		for i, x := range xs {
			chk.Float64(tst, "remapped density", 1e-11, e.USpts[i][0], 1+0.1*x[0])
		}
	}
}

func Test_restart04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("restart04: gob state snapshot round-trips U_spts exactly")

	eles := buildPair(2)
	for _, e := range eles {
		xs := e.SptCoords()
		for i, x := range xs {
			for fd := 0; fd < 4; fd++ {
				e.USpts[i][fd] = math.Cos(x[0]*float64(fd+1)) + x[1]
			}
		}
	}

	fname := filepath.Join(tst.TempDir(), "state.gob")
	SaveState(fname, "gob", eles, 0.75)

	fresh := buildPair(2)
	t := LoadState(fname, "gob", fresh)
	chk.Float64(tst, "stored time", 1e-15, t, 0.75)
	for k, e := range fresh {
		for i := range e.USpts {
			for fd := 0; fd < 4; fd++ {
				chk.Float64(tst, "state round trip", 1e-15, e.USpts[i][fd], eles[k].USpts[i][fd])
			}
		}
	}
}

func Test_restart03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("restart03: missing UnstructuredGrid tag is fatal")

	fname := filepath.Join(tst.TempDir(), "broken.vtu")
	if err := os.WriteFile(fname, []byte("<!-- TIME 1 -->\n<VTKFile></VTKFile>\n"), 0644); err != nil {
		tst.Fatalf("cannot write fixture: %v", err)
	}
	defer func() {
		if recover() == nil {
			tst.Errorf("expected Read to panic without an UnstructuredGrid tag")
		}
	}()
	Read(fname)
}
