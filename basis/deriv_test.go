// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
)

func Test_deriv01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("deriv01: nodal derivative matrix matches central differences")

	for _, kind := range []PointSet{Legendre, Lobatto} {
		pts := Points(kind, 4)
		lag := NewLagrange1D(pts)
		D := lag.DerivMatrix()
		row := make([]float64, len(pts))
		for i := range pts {
			for j := range pts {
				j := j
				dnum := num.DerivCen(func(x float64, args ...interface{}) float64 {
					lag.EvalBasis(row, x)
					return row[j]
				}, pts[i])
				chk.AnaNum(tst, io.Sf("D[%d][%d]", i, j), 1e-6, D[i][j], dnum, false)
			}
		}
	}
}
