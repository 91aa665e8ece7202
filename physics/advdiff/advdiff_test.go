// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package advdiff

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_advdiff01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("advdiff01: consistency Fn(U,U) == F(U).n")

	m := NewModel([]float64{1.0, 0.5}, 0, 1.0)
	U := []float64{2.0}
	nrm := []float64{0, 1}

	F := [][]float64{{0}, {0}}
	m.Flux(U, F)

	Fn := []float64{0}
	m.RiemannFlux(U, U, nrm, 0, Fn)
	chk.Float64(tst, "Fn == F.n", 1e-12, Fn[0], F[1][0])
}

func Test_advdiff02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("advdiff02: upwind flux picks the upwind state")

	m := NewModel([]float64{1.0}, 0, 1.0)
	nrm := []float64{1}
	Fn := []float64{0}
	m.RiemannFlux([]float64{1.0}, []float64{5.0}, nrm, 0, Fn)
	chk.Float64(tst, "full upwind uses left state", 1e-12, Fn[0], 1.0)
}
