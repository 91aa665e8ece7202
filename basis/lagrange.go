// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package basis

import "github.com/cpmech/gosl/chk"

// Lagrange1D holds the nodal points of a 1-D Lagrange basis and its
// barycentric weights, precomputed once and reused for every evaluation
// (spec.md §3: "every array sized once and thereafter only overwritten").
type Lagrange1D struct {
	X []float64 // nodal points
	W []float64 // barycentric weights
}

// NewLagrange1D builds the barycentric weights for the nodes in x.
func NewLagrange1D(x []float64) *Lagrange1D {
	n := len(x)
	if n < 1 {
		chk.Panic("basis.NewLagrange1D requires at least one node")
	}
	w := make([]float64, n)
	for j := 0; j < n; j++ {
		w[j] = 1
		for k := 0; k < n; k++ {
			if k != j {
				w[j] /= (x[j] - x[k])
			}
		}
	}
	return &Lagrange1D{X: x, W: w}
}

// EvalBasis evaluates every basis function L_j at point r, writing the n
// values into out (len(out) must equal len(o.X)).
func (o *Lagrange1D) EvalBasis(out []float64, r float64) {
	n := len(o.X)
	// exact-node fast path: barycentric form is 0/0 at nodes
	for j := 0; j < n; j++ {
		if r == o.X[j] {
			for k := range out {
				out[k] = 0
			}
			out[j] = 1
			return
		}
	}
	var sum float64
	for j := 0; j < n; j++ {
		out[j] = o.W[j] / (r - o.X[j])
		sum += out[j]
	}
	for j := 0; j < n; j++ {
		out[j] /= sum
	}
}

// DerivMatrix returns the n x n nodal derivative matrix D with
// D[i][j] = dL_j/dr evaluated at node x[i] (spec.md §4.4 opp_grad_spts).
func (o *Lagrange1D) DerivMatrix() [][]float64 {
	n := len(o.X)
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		var rowsum float64
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d[i][j] = (o.W[j] / o.W[i]) / (o.X[i] - o.X[j])
			rowsum += d[i][j]
		}
		d[i][i] = -rowsum
	}
	return d
}

// EvalDeriv evaluates dL_j/dr at an arbitrary point r (not necessarily a
// node), writing the n values into out.
func (o *Lagrange1D) EvalDeriv(out []float64, r float64) {
	n := len(o.X)
	// direct product-rule form: it never divides by (r - x_k), so it also
	// holds at the nodes themselves.
	for j := 0; j < n; j++ {
		var s float64
		for k := 0; k < n; k++ {
			if k == j {
				continue
			}
			var p float64 = 1
			for m := 0; m < n; m++ {
				if m == j || m == k {
					continue
				}
				p *= (r - o.X[m])
			}
			s += p
		}
		var denom float64 = 1
		for k := 0; k < n; k++ {
			if k != j {
				denom *= (o.X[j] - o.X[k])
			}
		}
		out[j] = s / denom
	}
}
