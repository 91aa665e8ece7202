// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/flurry/geom"
	"github.com/cpmech/flurry/inp"
)

// advectionBox builds a periodic [-1,1]^2 advection configuration.
func advectionBox(nx, order int, dt float64) (*inp.Config, geom.Service) {
	cfg := &inp.Config{
		Equation: inp.EqAdvDiff,
		Order:    order,
		NDims:    2,
		TimeType: inp.TimeRK44,
		DtType:   inp.DtFixed,
		Dt:       dt,
		AdvectVx: 1.0,
		AdvectVy: 0.0,
		Lambda:   1.0,
		ICType:   0,
	}
	cfg.SetDefaults()
	geo := geom.NewBox(2, nx, nx, 0, []float64{-1, -1}, []float64{1, 1}, true, true, false)
	return cfg, geo
}

func Test_rk01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rk01: RK44 reproduces the classical coefficient pattern")

	a, b := rkTableau(inp.TimeRK44)
	chk.Array(tst, "a", 1e-15, a, []float64{0, 0.5, 0.5, 1})
	chk.Array(tst, "b", 1e-15, b, []float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0})

	a, b = rkTableau(inp.TimeForwardEuler)
	chk.Array(tst, "forward Euler a", 1e-15, a, []float64{0})
	chk.Array(tst, "forward Euler b", 1e-15, b, []float64{1})
}

func Test_solver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver01: a uniform field on a periodic box is preserved exactly")

	cfg, geo := advectionBox(4, 2, 0.01)
	sol := NewSolver(cfg, geo)

	for _, e := range sol.Eles {
		for i := range e.USpts {
			e.USpts[i][0] = 5.0
		}
	}
	for iter := 0; iter < 10; iter++ {
		sol.Update()
	}
	for _, e := range sol.Eles {
		for i := range e.USpts {
			chk.Float64(tst, "uniform field preserved", 1e-12, e.USpts[i][0], 5.0)
		}
	}
	chk.Float64(tst, "time advanced", 1e-14, sol.Time, 0.1)
}

func Test_solver02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver02: geometric closure on a 2x2 unit square at p=2")

	cfg, _ := advectionBox(2, 2, 0.01)
	geo := geom.NewBox(2, 2, 2, 0, []float64{0, 0}, []float64{1, 1}, true, true, false)
	sol := NewSolver(cfg, geo)

	for _, e := range sol.Eles {
		sum := []float64{0, 0}
		for fp := 0; fp < e.NFpts(); fp++ {
			for d := 0; d < 2; d++ {
				sum[d] += e.NormFpts[fp][d] * e.DAFpts[fp]
			}
		}
		chk.Float64(tst, "closure x", 1e-14, sum[0], 0)
		chk.Float64(tst, "closure y", 1e-14, sum[1], 0)
	}
}

func Test_solver03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver03: Gaussian advects one full period around the periodic box")

	// T = (xmax-xmin)/advectVx = 2; 500 fixed steps of 0.004
	cfg, geo := advectionBox(10, 3, 0.004)
	sol := NewSolver(cfg, geo)

	exact := func(x []float64, t float64) float64 {
		// the periodic image closest to the advected center
		xc := math.Mod(x[0]-t+3, 2) - 1
		return math.Exp(-(xc*xc + x[1]*x[1]))
	}

	for sol.Iter < 500 {
		sol.Update()
	}
	chk.Float64(tst, "one period elapsed", 1e-12, sol.Time, 2.0)

	_, l2, linf := sol.ErrorNorms(exact)
	if linf > 1e-2 {
		tst.Errorf("Linf error after one period too large: %g", linf)
	}
	if l2 > 1e-2 {
		tst.Errorf("L2 error after one period too large: %g", l2)
	}
}

func Test_solver04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver04: CFL-based dt is positive and globally uniform")

	cfg, geo := advectionBox(4, 2, 0)
	cfg.DtType = inp.DtGlobalCFL
	cfg.CFL = 0.5
	sol := NewSolver(cfg, geo)

	sol.Update()
	if sol.Dt <= 0 {
		tst.Fatalf("expected positive dt, got %g", sol.Dt)
	}
	for _, e := range sol.Eles {
		chk.Float64(tst, "global dt on every element", 1e-15, e.Dt, sol.Dt)
	}
}

func Test_solver05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver05: residual norm of a uniform field is zero")

	cfg, geo := advectionBox(3, 2, 0.01)
	sol := NewSolver(cfg, geo)
	for _, e := range sol.Eles {
		for i := range e.USpts {
			e.USpts[i][0] = 1.0
		}
	}
	sol.Update()
	res := sol.ResidualNorm()
	chk.Float64(tst, "zero residual on uniform field", 1e-12, res[0], 0)
}
