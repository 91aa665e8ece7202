// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/flurry/basis"
	"github.com/cpmech/flurry/physics/advdiff"
	"github.com/cpmech/flurry/shape"
)

// unitQuad builds a static 2x2 axis-aligned quad element (corners at
// (0,0),(2,0),(2,2),(0,2)) for use across the element tests.
func unitQuad(order int) *Element {
	ops := BuildOperators(shape.Quad, order, basis.Legendre)
	phys := advdiff.NewModel([]float64{1.0, 0.0}, 0, 1.0)
	nodes := shape.NewNodeSet(2, 4)
	nodes.X[0] = []float64{0, 2, 2, 0}
	nodes.X[1] = []float64{0, 0, 2, 2}
	return NewElement(0, ops, phys, nodes, Static, 4)
}

func Test_element01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("element01: static Jacobian is constant and positive")

	el := unitQuad(2)
	for i := 0; i < el.nSpts; i++ {
		chk.Float64(tst, "detJac at spt", 1e-12, el.DetJacSpts[i], 1.0) // (dx/dr)=1 since 2/2=1 half-width
	}
	for fp := 0; fp < el.nFpts; fp++ {
		if el.DetJacFpts[fp] <= 0 {
			tst.Errorf("expected positive detJac at fpt %d, got %v", fp, el.DetJacFpts[fp])
		}
	}
}

func Test_element02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("element02: extrapolation of a constant field reproduces it at flux points")

	el := unitQuad(3)
	for i := range el.USpts {
		el.USpts[i][0] = 7.0
	}
	el.ExtrapolateToFpts()
	for fp := range el.UFpts {
		chk.Float64(tst, "extrapolated constant", 1e-11, el.UFpts[fp][0], 7.0)
	}
}

func Test_element03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("element03: divergence of a uniform field is zero")

	el := unitQuad(3)
	for i := range el.USpts {
		el.USpts[i][0] = 2.5
	}
	el.AssembleFlux()
	el.Divergence(0)
	for i := range el.DivFSpts[0] {
		chk.Float64(tst, "div of uniform field", 1e-9, el.DivFSpts[0][i][0], 0)
	}
}

func Test_element04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("element04: RK snapshot/restore round-trips U")

	el := unitQuad(1)
	for i := range el.USpts {
		el.USpts[i][0] = float64(i) + 1
	}
	el.SnapshotU0()
	for i := range el.USpts {
		el.USpts[i][0] = -99
	}
	el.RestoreU0()
	for i := range el.USpts {
		chk.Float64(tst, "restored U", 1e-14, el.USpts[i][0], float64(i)+1)
	}
}

func Test_element05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("element05: squeeze is idempotent on an already-positive field")

	el := unitQuad(2)
	for i := range el.USpts {
		el.USpts[i][0] = 1.0
	}
	el.ExtrapolateToFpts()
	cfg := SqueezeConfig{Enabled: true, DensTol: 1e-6, Gamma: 1.4, Exps0: 0}
	before := make([]float64, len(el.USpts))
	for i, u := range el.USpts {
		before[i] = u[0]
	}
	el.Squeeze(cfg)
	for i, u := range el.USpts {
		chk.Float64(tst, "squeeze no-op on positive field", 1e-12, u[0], before[i])
	}
}

func Test_element06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("element06: GetRefLocNewton inverts the geometric map exactly on an affine quad")

	el := unitQuad(2)
	x := []float64{1.3, 0.6}
	r, ok := el.GetRefLocNewton(x)
	if !ok {
		tst.Fatalf("expected GetRefLocNewton to succeed inside the element")
	}
	xr := el.xOfR(r)
	chk.Float64(tst, "x reconstructed from r", 1e-9, xr[0], x[0])
	chk.Float64(tst, "y reconstructed from r", 1e-9, xr[1], x[1])
}

func Test_element07(tst *testing.T) {

	//verbose()
	chk.PrintTitle("element07: GetRefLocNewton rejects a point outside the bounding box")

	el := unitQuad(2)
	_, ok := el.GetRefLocNewton([]float64{10, 10})
	if ok {
		tst.Errorf("expected bbox reject for a far-outside point")
	}
}
