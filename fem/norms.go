// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
)

// ResidualNorm reduces the last stage's divergence over all elements and
// ranks into one norm per field (spec.md §6 resType: 1=L1, 2=L2, 3=Linf).
func (o *Solver) ResidualNorm() []float64 {
	nf := o.Phys.NFields()
	acc := make([]float64, nf)
	var npts float64
	last := len(o.RKb) - 1
	for _, e := range o.Eles {
		if e == nil {
			continue
		}
		for _, row := range e.DivFSpts[last] {
			for f := 0; f < nf; f++ {
				v := row[f]
				switch o.Cfg.ResType {
				case 1:
					acc[f] += math.Abs(v)
				case 3:
					if a := math.Abs(v); a > acc[f] {
						acc[f] = a
					}
				default:
					acc[f] += v * v
				}
			}
			npts++
		}
	}
	if mpi.IsOn() && mpi.Size() > 1 {
		w := make([]float64, nf)
		if o.Cfg.ResType == 3 {
			mpi.AllReduceMax(acc, w)
		} else {
			mpi.AllReduceSum(acc, w)
			n := []float64{npts}
			mpi.AllReduceSum(n, []float64{0})
			npts = n[0]
		}
	}
	if o.Cfg.ResType == 2 {
		for f := range acc {
			acc[f] = math.Sqrt(acc[f] / npts)
		}
	} else if o.Cfg.ResType == 1 {
		for f := range acc {
			acc[f] /= npts
		}
	}
	return acc
}

// ErrorNorms computes the L1, L2 and Linf errors of the first conserved
// field against an exact solution, quadrature-weighted per solution point.
func (o *Solver) ErrorNorms(exact func(x []float64, t float64) float64) (l1, l2, linf float64) {
	var vol float64
	for _, e := range o.Eles {
		if e == nil {
			continue
		}
		xs := e.SptCoords()
		for i, x := range xs {
			diff := math.Abs(e.USpts[i][0] - exact(x, o.Time))
			jw := e.Ops.SptWeight[i] * e.DetJacSpts[i]
			l1 += jw * diff
			l2 += jw * diff * diff
			if diff > linf {
				linf = diff
			}
			vol += jw
		}
	}
	if mpi.IsOn() && mpi.Size() > 1 {
		x := []float64{l1, l2, vol}
		mpi.AllReduceSum(x, make([]float64, 3))
		l1, l2, vol = x[0], x[1], x[2]
		m := []float64{linf}
		mpi.AllReduceMax(m, []float64{0})
		linf = m[0]
	}
	l1 /= vol
	l2 = math.Sqrt(l2 / vol)
	return
}

// Monitor prints the iteration diagnostics line when due (spec.md §6
// monitorResFreq), in the teacher's console style.
func (o *Solver) Monitor() {
	if o.Cfg.MonitorResFreq <= 0 || o.Iter%o.Cfg.MonitorResFreq != 0 {
		return
	}
	res := o.ResidualNorm()
	if mpi.Rank() == 0 {
		io.Pf("iter %6d  t = %-12.6g dt = %-12.6g res = %v", o.Iter, o.Time, o.Dt, res)
		if o.Sqz.Enabled {
			io.Pfgrey("  squeezed = %d", o.nSqueezed)
		}
		io.Pf("\n")
	}
}

// Run advances the simulation to iterMax, monitoring as configured; the
// plot/restart writers hook in through the out-of-scope output service.
func (o *Solver) Run() {
	for o.Iter < o.Cfg.IterMax {
		o.Update()
		o.Monitor()
	}
}
