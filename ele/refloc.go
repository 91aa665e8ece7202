// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"math"

	"github.com/cpmech/flurry/la"
	"github.com/cpmech/flurry/shape"
)

// BBox is an axis-aligned bounding box used to reject a physical point
// before attempting the reference-location solve (spec.md §4.1
// "Reference-location solve").
type BBox struct {
	Min, Max []float64 // len nDims
}

// Contains reports whether x lies within the box (inclusive).
func (b BBox) Contains(x []float64) bool {
	for d := range x {
		if x[d] < b.Min[d] || x[d] > b.Max[d] {
			return false
		}
	}
	return true
}

// smallestExtent returns the smallest of the box's side lengths, used as the
// length scale h in the Newton tolerance 1e-12*h.
func (b BBox) smallestExtent() float64 {
	h := math.Inf(1)
	for d := range b.Min {
		e := b.Max[d] - b.Min[d]
		if e < h {
			h = e
		}
	}
	return h
}

// BBoxOf computes the element's node-set bounding box.
func (o *Element) BBoxOf() BBox {
	nd := o.nDims
	nodes := o.activeNodes()
	box := BBox{Min: make([]float64, nd), Max: make([]float64, nd)}
	for d := 0; d < nd; d++ {
		box.Min[d] = math.Inf(1)
		box.Max[d] = math.Inf(-1)
		for _, xi := range nodes.X[d] {
			if xi < box.Min[d] {
				box.Min[d] = xi
			}
			if xi > box.Max[d] {
				box.Max[d] = xi
			}
		}
	}
	return box
}

// xOfR evaluates x(r) = sum_i N_i(r) x_i for the element's active node set.
func (o *Element) xOfR(r []float64) []float64 {
	nodes := o.activeNodes()
	N := shape.ShapeVals(o.Type, r)
	x := make([]float64, o.nDims)
	for d := 0; d < o.nDims; d++ {
		var sum float64
		for i, n := range N {
			sum += n * nodes.X[d][i]
		}
		x[d] = sum
	}
	return x
}

// RefLocFailed is the sentinel location a non-converged Newton search
// reports to its caller (spec.md §7 "Recoverable"): the caller checks ok and
// decides whether to retry with GetRefLocNelderMead.
var RefLocFailed = []float64{99, 99, 99}

// refLocFailed returns a fresh copy of the sentinel so callers can never
// corrupt the shared value.
func refLocFailed() []float64 {
	out := make([]float64, len(RefLocFailed))
	copy(out, RefLocFailed)
	return out
}

// IsRefLocFailed reports whether r is the non-convergence sentinel.
func IsRefLocFailed(r []float64) bool {
	if r == nil {
		return false
	}
	for _, v := range r {
		if v != 99 {
			return false
		}
	}
	return true
}

// GetRefLocNewton finds the reference coordinate r such that x(r)=x, running
// at most 20 Newton iterations with clamping to [-1,1] and a tolerance of
// 1e-12*h (spec.md §4.1 "Reference-location solve"). It returns (nil, false)
// if x lies outside the element's bounding box, and the sentinel location
// {99,99,99} with ok=false when the iteration hits a singular Jacobian or
// exhausts its budget without converging; the caller then decides whether to
// fall back to GetRefLocNelderMead (spec.md §7 "Recoverable").
func (o *Element) GetRefLocNewton(x []float64) (r []float64, ok bool) {
	box := o.BBoxOf()
	if !box.Contains(x) {
		return nil, false
	}
	h := box.smallestExtent()
	tol := 1e-12 * h
	nd := o.nDims

	r = make([]float64, nd)
	for iter := 0; iter < 20; iter++ {
		xr := o.xOfR(r)
		res := make([]float64, nd)
		var resNorm float64
		for d := 0; d < nd; d++ {
			res[d] = x[d] - xr[d]
			resNorm += res[d] * res[d]
		}
		if math.Sqrt(resNorm) < tol {
			return clamp(r), true
		}

		derivs := shape.ShapeDerivs(o.Type, r)
		nodes := o.activeNodes()
		J := la.NewMatrix(nd, nd)
		for a := 0; a < nd; a++ {
			for b := 0; b < nd; b++ {
				var sum float64
				for i, dNi := range derivs {
					sum += dNi[b] * nodes.X[a][i]
				}
				J.Set(a, b, sum)
			}
		}
		det := J.Det()
		if math.Abs(det) < 1e-300 {
			break // singular Jacobian: report the sentinel below
		}
		adj := la.NewMatrix(nd, nd)
		J.Adj(adj)
		dr := make([]float64, nd)
		adj.MulVec(dr, res)
		for d := 0; d < nd; d++ {
			r[d] += dr[d] / det
			if r[d] > 1 {
				r[d] = 1
			}
			if r[d] < -1 {
				r[d] = -1
			}
		}
	}

	// Newton failed to converge within budget or hit a singular Jacobian:
	// report the sentinel and let the caller pick the fallback.
	return refLocFailed(), false
}

// GetRefLocNelderMead is the derivative-free fallback for degenerate
// Jacobians (spec.md §4.1): up to 300 iterations with the same bounding-box
// reject as the Newton search.
func (o *Element) GetRefLocNelderMead(x []float64) (r []float64, ok bool) {
	box := o.BBoxOf()
	if !box.Contains(x) {
		return nil, false
	}
	return o.nelderMead(x, box)
}

func clamp(r []float64) []float64 {
	out := make([]float64, len(r))
	for d, v := range r {
		if v > 1 {
			v = 1
		}
		if v < -1 {
			v = -1
		}
		out[d] = v
	}
	return out
}

// nelderMead is a compact, bounded derivative-free search used only as a
// last resort when the Newton iteration above hits a singular or
// slow-converging Jacobian (e.g. a near-degenerate element). Up to 300
// iterations, identical bbox reject, objective = |x(r)-x|^2.
func (o *Element) nelderMead(x []float64, box BBox) (r []float64, ok bool) {
	nd := o.nDims
	obj := func(r []float64) float64 {
		xr := o.xOfR(r)
		var s float64
		for d := 0; d < nd; d++ {
			diff := x[d] - xr[d]
			s += diff * diff
		}
		return s
	}

	// initial simplex: origin plus a step of 0.5 along each axis
	simplex := make([][]float64, nd+1)
	fvals := make([]float64, nd+1)
	simplex[0] = make([]float64, nd)
	fvals[0] = obj(simplex[0])
	for i := 1; i <= nd; i++ {
		p := make([]float64, nd)
		copy(p, simplex[0])
		p[i-1] += 0.5
		simplex[i] = p
		fvals[i] = obj(p)
	}

	const (
		alpha = 1.0
		gamma = 2.0
		rho   = 0.5
		sigma = 0.5
	)

	for iter := 0; iter < 300; iter++ {
		// order simplex by objective value, ascending
		for i := 1; i <= nd; i++ {
			for j := i; j > 0 && fvals[j] < fvals[j-1]; j-- {
				simplex[j], simplex[j-1] = simplex[j-1], simplex[j]
				fvals[j], fvals[j-1] = fvals[j-1], fvals[j]
			}
		}
		if fvals[0] < 1e-24 {
			break
		}

		centroid := make([]float64, nd)
		for i := 0; i < nd; i++ {
			for d := 0; d < nd; d++ {
				centroid[d] += simplex[i][d]
			}
		}
		for d := range centroid {
			centroid[d] /= float64(nd)
		}

		worst := simplex[nd]
		reflected := clampVec(affine(centroid, worst, 1+alpha, -alpha))
		fr := obj(reflected)

		switch {
		case fr < fvals[0]:
			expanded := clampVec(affine(centroid, worst, 1+gamma, -gamma))
			fe := obj(expanded)
			if fe < fr {
				simplex[nd], fvals[nd] = expanded, fe
			} else {
				simplex[nd], fvals[nd] = reflected, fr
			}
		case fr < fvals[nd-1]:
			simplex[nd], fvals[nd] = reflected, fr
		default:
			contracted := clampVec(affine(centroid, worst, 1-rho, rho))
			fc := obj(contracted)
			if fc < fvals[nd] {
				simplex[nd], fvals[nd] = contracted, fc
			} else {
				for i := 1; i <= nd; i++ {
					for d := 0; d < nd; d++ {
						simplex[i][d] = simplex[0][d] + sigma*(simplex[i][d]-simplex[0][d])
					}
					fvals[i] = obj(simplex[i])
				}
			}
		}
	}

	bi := 0
	for i := 1; i <= nd; i++ {
		if fvals[i] < fvals[bi] {
			bi = i
		}
	}
	best := simplex[bi]
	xr := o.xOfR(best)
	if !box.Contains(xr) {
		return nil, false
	}
	if math.Sqrt(fvals[bi]) > 1e-8*box.smallestExtent() {
		// the search stalled without actually hitting x: report the same
		// sentinel as the Newton phase
		return refLocFailed(), false
	}
	return clamp(best), true
}

// affine returns a*c + b*w (used to build reflected/expanded/contracted
// simplex points from the centroid c and worst point w).
func affine(c, w []float64, a, b float64) []float64 {
	out := make([]float64, len(c))
	for d := range c {
		out[d] = a*c[d] + b*w[d]
	}
	return out
}

func clampVec(r []float64) []float64 {
	for d, v := range r {
		if v > 1 {
			r[d] = 1
		}
		if v < -1 {
			r[d] = -1
		}
	}
	return r
}
