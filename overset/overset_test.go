// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package overset

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/flurry/basis"
	"github.com/cpmech/flurry/ele"
	"github.com/cpmech/flurry/physics/advdiff"
	"github.com/cpmech/flurry/shape"
)

// quadAt builds a p-order quad element spanning [x0,x0+w]^2.
func quadAt(id, order int, x0, w float64) *ele.Element {
	ops := ele.BuildOperators(shape.Quad, order, basis.Legendre)
	phys := advdiff.NewModel([]float64{1, 0}, 0, 1.0)
	nodes := shape.NewNodeSet(2, 4)
	nodes.X[0] = []float64{x0, x0 + w, x0 + w, x0}
	nodes.X[1] = []float64{x0, x0, x0 + w, x0 + w}
	return ele.NewElement(id, ops, phys, nodes, ele.Static, 1)
}

func Test_overset01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("overset01: field interpolation reproduces the donor polynomial exactly")

	// a big p=3 donor covering a small p=2 fringe cell inside it
	donor := quadAt(0, 3, 0, 4)
	fringe := quadAt(1, 2, 1, 1)

	f := func(x []float64) float64 { return 1 + x[0] + 0.5*x[1] + 0.25*x[0]*x[1] }
	xs := donor.SptCoords()
	for i, x := range xs {
		donor.USpts[i][0] = f(x)
	}

	comm := NewCommunicator([]*ele.Element{donor}, []*ele.Element{fringe})
	comm.SetupFringeCellPoints()
	comm.MatchOversetPoints()
	if comm.nOrphans != 0 {
		tst.Fatalf("expected every fringe point matched, got %d orphans", comm.nOrphans)
	}
	comm.ExchangeOversetData()

	for i, x := range fringe.SptCoords() {
		chk.Float64(tst, "interpolated donor field", 1e-10, fringe.USpts[i][0], f(x))
	}
}

func Test_overset02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("overset02: points outside every donor are counted as orphans")

	donor := quadAt(0, 2, 0, 1)
	fringe := quadAt(1, 1, 10, 1)

	comm := NewCommunicator([]*ele.Element{donor}, []*ele.Element{fringe})
	comm.SetupFringeCellPoints()
	comm.MatchOversetPoints()
	chk.IntAssert(comm.nOrphans, fringe.NSpts())

	// exchanging must leave the unmatched points untouched
	for i := range fringe.USpts {
		fringe.USpts[i][0] = math.Pi
	}
	comm.ExchangeOversetData()
	for i := range fringe.USpts {
		chk.Float64(tst, "orphan keeps its value", 1e-15, fringe.USpts[i][0], math.Pi)
	}
}

func Test_overset03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("overset03: face donor falls back to the left trace on orphan points")

	// a donor far from the left element: every face point is an orphan
	donor := quadAt(0, 2, 10, 1)
	left := quadAt(1, 2, 1, 1)
	for i := range left.UFpts {
		left.UFpts[i][0] = 7.0
	}

	comm := NewCommunicator([]*ele.Element{donor}, nil)
	perFace := left.NFpts() / 4
	fpts := make([]int, perFace)
	for i := range fpts {
		fpts[i] = perFace + i // face 1, the right edge
	}
	fd := comm.SetupOverFacePoints(left, fpts)
	for i := range fpts {
		u := fd.DonorState(i)
		if u == nil {
			tst.Fatalf("expected a state for face point %d", i)
		}
		chk.Float64(tst, "orphan falls back to the left trace", 1e-15, u[0], 7.0)
	}
}
