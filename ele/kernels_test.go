// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/flurry/basis"
	"github.com/cpmech/flurry/physics/advdiff"
	"github.com/cpmech/flurry/shape"
)

func Test_squeeze01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("squeeze01: density floor lands the worst point exactly on the tolerance")

	el := unitQuad(2)
	for i := range el.USpts {
		el.USpts[i][0] = 1.0
	}
	el.USpts[0][0] = -0.01
	el.ExtrapolateToFpts()
	cfg := SqueezeConfig{Enabled: true, DensTol: 1e-10, Gamma: 1.4}
	if !el.Squeeze(cfg) {
		tst.Fatalf("expected the density squeeze to trigger")
	}

	// the worst point may be a flux-point trace undershooting the seeded
	// nodal minimum; eps = (avg-tol)/(avg-rhoMin) lands that global worst
	// point exactly on the density floor
	rhoMin := math.Inf(1)
	for _, rows := range [][][]float64{el.USpts, el.UFpts} {
		for _, u := range rows {
			if u[0] < rhoMin {
				rhoMin = u[0]
			}
		}
	}
	chk.Float64(tst, "squeezed worst point sits at the density floor", 1e-11, rhoMin, 1e-10)

	// idempotency: a second pass changes nothing
	before := make([]float64, len(el.USpts))
	for i, u := range el.USpts {
		before[i] = u[0]
	}
	el.Squeeze(cfg)
	for i, u := range el.USpts {
		chk.Float64(tst, "second squeeze pass is a no-op", 1e-14, u[0], before[i])
	}
}

func Test_divergence01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("divergence01: chain-rule and standard forms agree on a static mesh")

	order := 3
	ops := BuildOperators(shape.Quad, order, basis.Legendre)
	phys := advdiff.NewModel([]float64{1.0, 0.7}, 0, 1.0)
	nodes := shape.NewNodeSet(2, 4)
	nodes.X[0] = []float64{0, 2, 2, 0}
	nodes.X[1] = []float64{0, 0, 2, 2}

	std := NewElement(0, ops, phys, nodes, Static, 1)
	chn := NewElement(1, ops, phys, nodes, MovingChainRule, 1)

	// zero grid velocity: re-install the base nodes with v=0
	zero := [][]float64{make([]float64, 4), make([]float64, 4)}
	chn.UpdateMotion(nodes.X, zero)

	fill := func(e *Element) {
		xs := e.SptCoords()
		for i, x := range xs {
			e.USpts[i][0] = math.Sin(x[0]) * math.Cos(x[1])
		}
		e.ReferenceGradient()
		e.AssembleFlux()
		e.Divergence(0)
	}
	fill(std)
	fill(chn)

	for i := range std.DivFSpts[0] {
		chk.Float64(tst, "divergence forms agree", 1e-12, chn.DivFSpts[0][i][0], std.DivFSpts[0][i][0])
	}
}

func Test_geometry01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("geometry01: discrete closure: outward normals times dA sum to zero per cell")

	el := unitQuad(2)
	sum := []float64{0, 0}
	for fp := 0; fp < el.nFpts; fp++ {
		for d := 0; d < 2; d++ {
			sum[d] += el.NormFpts[fp][d] * el.DAFpts[fp]
		}
	}
	chk.Float64(tst, "closure x", 1e-14, sum[0], 0)
	chk.Float64(tst, "closure y", 1e-14, sum[1], 0)

	// and the norm/dA invariant
	for fp := 0; fp < el.nFpts; fp++ {
		var mag float64
		for d := 0; d < 2; d++ {
			mag += el.NormFpts[fp][d] * el.NormFpts[fp][d]
		}
		chk.Float64(tst, "unit normal", 1e-12, math.Sqrt(mag), 1.0)
	}
}

func Test_interp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("interp01: inter-order remap is exact on polynomials of the coarse space")

	pOld, pNew := 1, 3
	op := InterpOperator(shape.Quad, pNew, pOld, basis.Legendre)
	nNew, nOld := op.Dims()
	chk.IntAssert(nNew, 16)
	chk.IntAssert(nOld, 4)

	// a bilinear field, representable at pOld, must remap exactly
	oldOps := BuildOperators(shape.Quad, pOld, basis.Legendre)
	newOps := BuildOperators(shape.Quad, pNew, basis.Legendre)
	f := func(r []float64) float64 { return 2 + 0.5*r[0] - 1.5*r[1] + 0.25*r[0]*r[1] }

	uOld := make([]float64, nOld)
	oldPts := basis.Points(basis.Legendre, pOld+1)
	for j, idx := range oldOps.SptIdx {
		uOld[j] = f([]float64{oldPts[idx[0]], oldPts[idx[1]]})
	}
	newPts := basis.Points(basis.Legendre, pNew+1)
	for i, idx := range newOps.SptIdx {
		var sum float64
		for j := 0; j < nOld; j++ {
			sum += op.Get(i, j) * uOld[j]
		}
		chk.Float64(tst, "remapped bilinear value", 1e-13, sum, f([]float64{newPts[idx[0]], newPts[idx[1]]}))
	}
}

func Test_interp02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("interp02: BasisValue is cardinal at the solution points")

	el := unitQuad(2)
	pts := el.refPointsSpts()
	for s := range pts {
		for j, r := range pts {
			want := 0.0
			if s == j {
				want = 1.0
			}
			chk.Float64(tst, "cardinal basis", 1e-12, el.BasisValue(s, r), want)
		}
	}
}

func Test_refloc01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("refloc01: non-convergence reports the {99,99,99} sentinel to the caller")

	// a diamond-shaped quad: its bounding box contains points outside the
	// element, where the clamped Newton iteration can never converge
	ops := BuildOperators(shape.Quad, 2, basis.Legendre)
	phys := advdiff.NewModel([]float64{1, 0}, 0, 1.0)
	nodes := shape.NewNodeSet(2, 4)
	nodes.X[0] = []float64{1, 2, 1, 0}
	nodes.X[1] = []float64{0, 1, 2, 1}
	el := NewElement(0, ops, phys, nodes, Static, 1)

	r, ok := el.GetRefLocNewton([]float64{0.05, 0.05})
	if ok {
		tst.Fatalf("expected the Newton search to fail outside the diamond, got r=%v", r)
	}
	if !IsRefLocFailed(r) {
		tst.Errorf("expected the {99,99,99} sentinel, got %v", r)
	}

	// the fallback must not fabricate a match either
	r, ok = el.GetRefLocNelderMead([]float64{0.05, 0.05})
	if ok {
		tst.Errorf("expected the Nelder-Mead fallback to fail as well, got r=%v", r)
	}

	// an interior query still succeeds through the normal path
	r, ok = el.GetRefLocNewton([]float64{1.0, 1.0})
	if !ok {
		tst.Fatalf("expected success at the element center")
	}
	xr := el.xOfR(r)
	chk.Float64(tst, "center x", 1e-9, xr[0], 1.0)
	chk.Float64(tst, "center y", 1e-9, xr[1], 1.0)
}

func Test_sensor01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sensor01: modal-decay sensor separates smooth from rough density fields")

	el := unitQuad(3)
	xs := el.SptCoords()
	for i, x := range xs {
		el.USpts[i][0] = 1 + 0.01*x[0] // near-constant: smooth
	}
	smooth := el.CalcSensor()

	for i := range el.USpts {
		if i%2 == 0 {
			el.USpts[i][0] = 1
		} else {
			el.USpts[i][0] = 2
		}
	}
	rough := el.CalcSensor()

	if smooth >= rough {
		tst.Errorf("expected smooth sensor (%g) below rough sensor (%g)", smooth, rough)
	}
	if smooth > 1e-8 {
		tst.Errorf("expected near-zero sensor on a near-linear field, got %g", smooth)
	}
}
