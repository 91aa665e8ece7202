// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/flurry/basis"
	"github.com/cpmech/flurry/shape"
)

func Test_operators01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("operators01: quad operator shapes at p=2")

	ops := BuildOperators(shape.Quad, 2, basis.Lobatto)
	chk.IntAssert(ops.NSpts, 9)  // (p+1)^2
	chk.IntAssert(ops.NFpts, 12) // 2*d*(p+1)^(d-1) = 2*2*3
	nr, nc := ops.ExtrapSptsToFpts.Dims()
	chk.IntAssert(nr, ops.NFpts)
	chk.IntAssert(nc, ops.NSpts)
	nr, nc = ops.DivFptsToSpts.Dims()
	chk.IntAssert(nr, ops.NSpts)
	chk.IntAssert(nc, ops.NFpts)

	var wsum float64
	for _, w := range ops.SptWeight {
		wsum += w
	}
	chk.Float64(tst, "spt weights sum to reference-element measure", 1e-12, wsum, 4)
}

func Test_operators02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("operators02: hex operator shapes at p=1")

	ops := BuildOperators(shape.Hex, 1, basis.Legendre)
	chk.IntAssert(ops.NSpts, 8)  // (p+1)^3
	chk.IntAssert(ops.NFpts, 24) // 2*3*(p+1)^2 = 6*4
	chk.IntAssert(len(ops.GradSpts), 3)
	chk.IntAssert(len(ops.GradCorr), 3)
}

func Test_operators03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("operators03: extrapolation reproduces a constant field exactly")

	ops := BuildOperators(shape.Quad, 3, basis.Legendre)
	U := make([]float64, ops.NSpts)
	for i := range U {
		U[i] = 3.5
	}
	Ufpts := make([]float64, ops.NFpts)
	ops.ExtrapSptsToFpts.MulVec(Ufpts, U)
	for _, v := range Ufpts {
		chk.Float64(tst, "extrapolated constant", 1e-12, v, 3.5)
	}
}

func Test_cache01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cache01: operator cache builds lazily and reuses entries")

	c := NewCache(basis.Lobatto)
	chk.IntAssert(c.Len(), 0)
	op1 := c.Get(shape.Quad, 2)
	chk.IntAssert(c.Len(), 1)
	op2 := c.Get(shape.Quad, 2)
	if op1 != op2 {
		tst.Errorf("expected cache to return the same pointer for repeated (type,order) lookups")
	}
	c.Get(shape.Hex, 2)
	chk.IntAssert(c.Len(), 2)
}
