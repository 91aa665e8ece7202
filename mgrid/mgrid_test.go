// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mgrid

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/flurry/fem"
	"github.com/cpmech/flurry/geom"
	"github.com/cpmech/flurry/inp"
)

func levelConfig(order int) (*inp.Config, geom.Service) {
	cfg := &inp.Config{
		Equation: inp.EqAdvDiff,
		Order:    order,
		NDims:    2,
		TimeType: inp.TimeRK44,
		DtType:   inp.DtFixed,
		Dt:       0.002,
		AdvectVx: 1.0,
		Lambda:   1.0,
		ICType:   0,
		PMG:      true,
	}
	cfg.SetDefaults()
	geo := geom.NewBox(2, 4, 4, 0, []float64{-1, -1}, []float64{1, 1}, true, true, false)
	return cfg, geo
}

func Test_mgrid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mgrid01: restriction then prolongation is exact on the coarse space")

	cfgF, geoF := levelConfig(3)
	cfgC, geoC := levelConfig(1)
	fine := fem.NewSolver(cfgF, geoF)
	coarse := fem.NewSolver(cfgC, geoC)

	vc := NewTwoLevel(fine, coarse)

	// install a bilinear reference-space field on the fine level: it lives
	// in the coarse space, so R then P must reproduce it exactly
	for _, e := range fine.Eles {
		xs := e.SptCoords()
		for i, x := range xs {
			e.USpts[i][0] = 1 + 0.5*x[0] - 0.25*x[1]
		}
	}
	vc.restrictSolution()

	for ic, eC := range coarse.Eles {
		eF := fine.Eles[ic]
		back := make([][]float64, eF.NSpts())
		for i := range back {
			back[i] = make([]float64, 1)
		}
		applyOp(vc.Fine.Prolong, eC.USpts, back)
		for i, row := range eF.USpts {
			chk.Float64(tst, "R then P round trip", 1e-12, back[i][0], row[0])
		}
	}
}

func Test_mgrid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mgrid02: a V-cycle on a uniform field leaves it uniform")

	cfgF, geoF := levelConfig(2)
	cfgC, geoC := levelConfig(1)
	fine := fem.NewSolver(cfgF, geoF)
	coarse := fem.NewSolver(cfgC, geoC)
	vc := NewTwoLevel(fine, coarse)

	for _, e := range fine.Eles {
		for i := range e.USpts {
			e.USpts[i][0] = 4.0
		}
	}
	vc.Advance()

	for _, e := range fine.Eles {
		for i := range e.USpts {
			chk.Float64(tst, "uniform field preserved through V-cycle", 1e-11, e.USpts[i][0], 4.0)
		}
	}
}
