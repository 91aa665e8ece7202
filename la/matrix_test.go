// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_matrix01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("matrix01: 2x2 determinant and adjoint")

	m := NewMatrix(2, 2)
	m.Set(0, 0, 2)
	m.Set(0, 1, 1)
	m.Set(1, 0, 1)
	m.Set(1, 1, 3)
	chk.Float64(tst, "det", 1e-15, m.Det(), 5)

	adj := NewMatrix(2, 2)
	m.Adj(adj)
	// adj(J)*J = det(J)*I
	prod := NewMatrix(2, 2)
	prod.Mul(adj, m)
	chk.Float64(tst, "adj*J[0][0]", 1e-14, prod.Get(0, 0), m.Det())
	chk.Float64(tst, "adj*J[1][1]", 1e-14, prod.Get(1, 1), m.Det())
	chk.Float64(tst, "adj*J[0][1]", 1e-14, prod.Get(0, 1), 0)
	chk.Float64(tst, "adj*J[1][0]", 1e-14, prod.Get(1, 0), 0)
}

func Test_matrix02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("matrix02: 3x3 determinant and adjoint")

	m := NewMatrixDeep2([][]float64{
		{1, 2, 3},
		{0, 1, 4},
		{5, 6, 0},
	})
	det := m.Det()
	chk.Float64(tst, "det", 1e-14, det, 1)

	adj := NewMatrix(3, 3)
	m.Adj(adj)
	prod := NewMatrix(3, 3)
	prod.Mul(adj, m)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			expected := 0.0
			if i == j {
				expected = det
			}
			chk.Float64(tst, "adj*J", 1e-12, prod.Get(i, j), expected)
		}
	}
}

func Test_matrix03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("matrix03: 4x4 space-time Jacobian adjoint")

	m := NewMatrixDeep2([][]float64{
		{1, 0, 0, 0.1},
		{0, 1, 0, 0.2},
		{0, 0, 1, 0.3},
		{0, 0, 0, 1},
	})
	det := m.Det()
	chk.Float64(tst, "det", 1e-14, det, 1)

	adj := NewMatrix(4, 4)
	m.Adj(adj)
	prod := NewMatrix(4, 4)
	prod.Mul(adj, m)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := 0.0
			if i == j {
				expected = det
			}
			chk.Float64(tst, "adj*J", 1e-12, prod.Get(i, j), expected)
		}
	}
}
