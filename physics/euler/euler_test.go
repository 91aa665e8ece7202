// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package euler

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_euler01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("euler01: consistency Fn(U,U) == F(U).n")

	m := NewModel(2, false, 0, Rusanov)
	U := []float64{1.0, 0.3, -0.2, 2.5}
	nrm := []float64{1, 0}

	F := [][]float64{make([]float64, 4), make([]float64, 4)}
	m.Flux(U, F)

	Fn := make([]float64, 4)
	m.RiemannFlux(U, U, nrm, 0, Fn)
	for k := 0; k < 4; k++ {
		chk.Float64(tst, "Fn == F.n", 1e-12, Fn[k], F[0][k])
	}
}

func Test_euler02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("euler02: Roe consistency Fn(U,U) == F(U).n, 3-D")

	m := NewModel(3, false, 0, Roe)
	U := []float64{1.2, 0.1, 0.2, -0.1, 3.0}
	nrm := []float64{0, 1, 0}

	F := make([][]float64, 3)
	for d := range F {
		F[d] = make([]float64, 5)
	}
	m.Flux(U, F)

	Fn := make([]float64, 5)
	m.RiemannFlux(U, U, nrm, 0, Fn)
	for k := 0; k < 5; k++ {
		chk.Float64(tst, "Fn == F.n", 1e-9, Fn[k], F[1][k])
	}
}

func Test_euler03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("euler03: sound speed positive for a physical state")

	m := NewModel(2, false, 0, Rusanov)
	U := []float64{1.0, 0.0, 0.0, 2.5}
	c := m.SoundSpeed(U)
	if c <= 0 {
		tst.Errorf("expected positive sound speed, got %v", c)
	}
}
