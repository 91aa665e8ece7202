// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package la implements the small dense-matrix kernels used throughout the
// core: the Jacobian of the reference-to-physical map, its adjoint, and the
// dense operator matrices built by the ele package.
package la

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Matrix is a row-major, fixed-dimension dense tensor. Its shape is set once
// by NewMatrix/NewMatrixDeep2 and must not change afterwards; callers overwrite entries
// in place for the lifetime of the matrix (spec.md Matrix<double> invariant).
type Matrix struct {
	nrow, ncol int
	vals       [][]float64
}

// NewMatrix allocates a nrow x ncol matrix filled with zeros.
func NewMatrix(nrow, ncol int) *Matrix {
	if nrow < 1 || ncol < 1 {
		chk.Panic("la.NewMatrix requires nrow,ncol >= 1 (got %d,%d)", nrow, ncol)
	}
	return &Matrix{nrow: nrow, ncol: ncol, vals: la.MatAlloc(nrow, ncol)}
}

// NewMatrixDeep2 wraps an existing [][]float64 slice without copying; all rows
// must have the same length.
func NewMatrixDeep2(vals [][]float64) *Matrix {
	nrow := len(vals)
	if nrow == 0 {
		chk.Panic("la.NewMatrixDeep2 requires at least one row")
	}
	ncol := len(vals[0])
	return &Matrix{nrow: nrow, ncol: ncol, vals: vals}
}

// Dims returns the number of rows and columns.
func (o *Matrix) Dims() (nrow, ncol int) { return o.nrow, o.ncol }

// Get returns the (i,j) entry.
func (o *Matrix) Get(i, j int) float64 { return o.vals[i][j] }

// Set assigns the (i,j) entry.
func (o *Matrix) Set(i, j int, v float64) { o.vals[i][j] = v }

// Raw exposes the underlying row-major storage for hot kernels (e.g. gemm).
func (o *Matrix) Raw() [][]float64 { return o.vals }

// Fill sets every entry to v.
func (o *Matrix) Fill(v float64) { la.MatFill(o.vals, v) }

// Clone returns a deep copy.
func (o *Matrix) Clone() *Matrix {
	n := NewMatrix(o.nrow, o.ncol)
	for i := 0; i < o.nrow; i++ {
		copy(n.vals[i], o.vals[i])
	}
	return n
}

// Mul computes o = a*b (matrix-matrix product); o must be distinct from a,b.
func (o *Matrix) Mul(a, b *Matrix) {
	if a.ncol != b.nrow {
		chk.Panic("la.Matrix.Mul: inner dimensions do not match: %d x %d times %d x %d", a.nrow, a.ncol, b.nrow, b.ncol)
	}
	if o.nrow != a.nrow || o.ncol != b.ncol {
		chk.Panic("la.Matrix.Mul: output shape %d x %d does not match %d x %d", o.nrow, o.ncol, a.nrow, b.ncol)
	}
	for i := 0; i < a.nrow; i++ {
		for j := 0; j < b.ncol; j++ {
			var sum float64
			for k := 0; k < a.ncol; k++ {
				sum += a.vals[i][k] * b.vals[k][j]
			}
			o.vals[i][j] = sum
		}
	}
}

// MulVec computes y = o*x.
func (o *Matrix) MulVec(y, x []float64) {
	if len(x) != o.ncol {
		chk.Panic("la.Matrix.MulVec: x has wrong length %d != %d", len(x), o.ncol)
	}
	for i := 0; i < o.nrow; i++ {
		var sum float64
		for j := 0; j < o.ncol; j++ {
			sum += o.vals[i][j] * x[j]
		}
		y[i] = sum
	}
}

// Det computes the determinant. Only square matrices of dimension 1..4 are
// supported: these are the only shapes the core ever forms (spatial
// Jacobians up to 3x3, space-time Jacobians up to 4x4).
func (o *Matrix) Det() float64 {
	if o.nrow != o.ncol {
		chk.Panic("la.Matrix.Det: matrix must be square (got %d x %d)", o.nrow, o.ncol)
	}
	m := o.vals
	switch o.nrow {
	case 1:
		return m[0][0]
	case 2:
		return m[0][0]*m[1][1] - m[0][1]*m[1][0]
	case 3:
		return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
			m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
			m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	case 4:
		return det4x4(m)
	}
	chk.Panic("la.Matrix.Det: unsupported dimension %d (only 1..4 are supported)", o.nrow)
	return 0
}

// Adj computes the adjoint (transpose of the cofactor matrix), i.e.
// det(o)*o^-1, into o's own shape at dst. This is JGinv in spec.md §4.1: for
// a 2x2 matrix the closed form is used; for 3x3 and 4x4 the cofactor
// expansion is used.
func (o *Matrix) Adj(dst *Matrix) {
	if o.nrow != o.ncol {
		chk.Panic("la.Matrix.Adj: matrix must be square (got %d x %d)", o.nrow, o.ncol)
	}
	if dst.nrow != o.nrow || dst.ncol != o.ncol {
		chk.Panic("la.Matrix.Adj: destination shape mismatch")
	}
	m := o.vals
	d := dst.vals
	switch o.nrow {
	case 1:
		d[0][0] = 1
	case 2:
		// closed form: adj(J) = [[J22,-J12],[-J21,J11]]
		d[0][0], d[0][1] = m[1][1], -m[0][1]
		d[1][0], d[1][1] = -m[1][0], m[0][0]
	case 3:
		adj3x3(m, d)
	case 4:
		adj4x4(m, d)
	default:
		chk.Panic("la.Matrix.Adj: unsupported dimension %d (only 1..4 are supported)", o.nrow)
	}
}

func det2x2(a [2][2]float64) float64 {
	return a[0][0]*a[1][1] - a[0][1]*a[1][0]
}

func det3x3From(m [][]float64, skipRow, skipCol int) float64 {
	var a [2][2]float64
	ii := 0
	for i := 0; i < 3; i++ {
		if i == skipRow {
			continue
		}
		jj := 0
		for j := 0; j < 3; j++ {
			if j == skipCol {
				continue
			}
			a[ii][jj] = m[i][j]
			jj++
		}
		ii++
	}
	return det2x2(a)
}

// adj3x3 fills d with the adjoint (cofactor-transpose) of the 3x3 matrix m.
func adj3x3(m, d [][]float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sign := 1.0
			if (i+j)%2 == 1 {
				sign = -1.0
			}
			// transpose: cofactor(j,i) goes into d[i][j]
			d[i][j] = sign * minor3x3(m, j, i)
		}
	}
}

func minor3x3(m [][]float64, skipRow, skipCol int) float64 {
	return det3x3From(m, skipRow, skipCol)
}

func minor4x4(m [][]float64, skipRow, skipCol int) float64 {
	var a [3][3]float64
	ii := 0
	for i := 0; i < 4; i++ {
		if i == skipRow {
			continue
		}
		jj := 0
		for j := 0; j < 4; j++ {
			if j == skipCol {
				continue
			}
			a[ii][jj] = m[i][j]
			jj++
		}
		ii++
	}
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

func det4x4(m [][]float64) float64 {
	var sum float64
	for j := 0; j < 4; j++ {
		sign := 1.0
		if j%2 == 1 {
			sign = -1.0
		}
		sum += sign * m[0][j] * minor4x4(m, 0, j)
	}
	return sum
}

func adj4x4(m, d [][]float64) {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sign := 1.0
			if (i+j)%2 == 1 {
				sign = -1.0
			}
			d[i][j] = sign * minor4x4(m, j, i)
		}
	}
}
