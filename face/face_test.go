// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package face

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/flurry/basis"
	"github.com/cpmech/flurry/ele"
	"github.com/cpmech/flurry/physics"
	"github.com/cpmech/flurry/physics/advdiff"
	"github.com/cpmech/flurry/physics/euler"
	"github.com/cpmech/flurry/shape"
)

// twoQuads builds a left cell [0,1]x[0,1] and a right cell [1,2]x[0,1]
// sharing the x=1 edge, with the flux-point index lists of that edge.
func twoQuads(order int, phys physics.Equation) (L, R *ele.Element, lf, rf []int) {
	ops := ele.BuildOperators(shape.Quad, order, basis.Legendre)
	perFace := ops.NFpts / 4
	build := func(id int, x0 float64) *ele.Element {
		nodes := shape.NewNodeSet(2, 4)
		nodes.X[0] = []float64{x0, x0 + 1, x0 + 1, x0}
		nodes.X[1] = []float64{0, 0, 1, 1}
		return ele.NewElement(id, ops, phys, nodes, ele.Static, 1)
	}
	L = build(0, 0)
	R = build(1, 1)
	// left's face 1 (right edge) pairs with right's face 3 (left edge),
	// both ordered by ascending y
	for i := 0; i < perFace; i++ {
		lf = append(lf, 1*perFace+i)
		rf = append(rf, 3*perFace+i)
	}
	return
}

func Test_interior01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("interior01: common flux is consistent and conservative across the face")

	phys := advdiff.NewModel([]float64{1.0, 0.0}, 0, 1.0)
	L, R, lf, rf := twoQuads(2, phys)

	for i := range L.USpts {
		L.USpts[i][0] = 3.0
	}
	for i := range R.USpts {
		R.USpts[i][0] = 3.0
	}
	L.ExtrapolateToFpts()
	R.ExtrapolateToFpts()

	f := NewInterior(L, 1, lf, R, 3, rf)
	f.SetupFace()
	f.CalcInviscidFlux()
	f.SetRightState()

	// consistency: F(U,U,n) = F_phys(U).n = a_x * U for the +x normal
	for _, fp := range lf {
		chk.Float64(tst, "consistent common flux", 1e-12, L.FnFpts[fp][0], 3.0)
	}
	// conservation: the right side sees the sign-flipped flux
	for i := range lf {
		chk.Float64(tst, "conservative scatter", 1e-14, R.FnFpts[rf[i]][0], -L.FnFpts[lf[i]][0])
	}
}

func Test_boundary01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("boundary01: slip wall reflects only the normal velocity")

	phys := euler.NewModel(2, false, 0, euler.Rusanov)
	L, _, lf, _ := twoQuads(1, phys)

	rho, u, v, p := 1.0, 0.5, 0.25, 1.0
	for i := range L.USpts {
		L.USpts[i][0] = rho
		L.USpts[i][1] = rho * u
		L.USpts[i][2] = rho * v
		L.USpts[i][3] = p/0.4 + 0.5*rho*(u*u+v*v)
	}
	L.ExtrapolateToFpts()

	b := NewBoundary(L, 1, lf, SlipWall, nil)
	b.SetupFace()
	b.CalcInviscidFlux()

	// a slip wall carries no mass flux: the Riemann flux of the mirrored
	// pair has zero density component across the +x normal
	for _, fp := range lf {
		chk.Float64(tst, "no mass flux through slip wall", 1e-12, L.FnFpts[fp][0], 0)
	}
}

func Test_boundary02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("boundary02: supersonic outflow takes the interior state")

	phys := euler.NewModel(2, false, 0, euler.Rusanov)
	L, _, lf, _ := twoQuads(1, phys)

	rho, u, v, p := 1.0, 3.0, 0.0, 1.0
	for i := range L.USpts {
		L.USpts[i][0] = rho
		L.USpts[i][1] = rho * u
		L.USpts[i][2] = rho * v
		L.USpts[i][3] = p/0.4 + 0.5*rho*(u*u+v*v)
	}
	L.ExtrapolateToFpts()

	b := NewBoundary(L, 1, lf, SupersonicOutflow, nil)
	b.SetupFace()
	b.CalcInviscidFlux()

	// with UR = UL, consistency gives F_phys(U).n: mass flux = rho*u
	for _, fp := range lf {
		chk.Float64(tst, "outflow mass flux", 1e-12, L.FnFpts[fp][0], rho*u)
	}
}

func Test_periodic01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("periodic01: periodic pairing behaves like an interior face")

	phys := advdiff.NewModel([]float64{1.0, 0.0}, 0, 1.0)
	L, R, lf, rf := twoQuads(2, phys)

	for i := range L.USpts {
		L.USpts[i][0] = 2.0
	}
	for i := range R.USpts {
		R.USpts[i][0] = 2.0
	}
	L.ExtrapolateToFpts()
	R.ExtrapolateToFpts()

	b := NewPeriodic(L, 1, lf, R, rf)
	b.SetupFace()
	b.CalcInviscidFlux()
	b.SetRightState()

	for i := range lf {
		chk.Float64(tst, "periodic common flux", 1e-12, L.FnFpts[lf[i]][0], 2.0)
		chk.Float64(tst, "periodic scatter", 1e-14, R.FnFpts[rf[i]][0], -2.0)
	}
}
