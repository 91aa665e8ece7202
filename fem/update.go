// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/flurry/ele"
	"github.com/cpmech/flurry/inp"
)

// rkTableau returns the stage coefficients of the configured explicit
// scheme (spec.md §6 timeType): a is indexed by stage (a[0]=0), b by the
// accumulation pass.
func rkTableau(timeType int) (a, b []float64) {
	switch timeType {
	case inp.TimeForwardEuler:
		return []float64{0}, []float64{1}
	case inp.TimeRK44:
		return []float64{0, 0.5, 0.5, 1},
			[]float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0}
	}
	chk.Panic("fem.rkTableau: unsupported timeType %d", timeType)
	return nil, nil
}

// computeDt evaluates every element's CFL-bounded dt and, for dtType=1,
// reduces to the global minimum across elements and ranks (spec.md §5:
// "the reduction for the global minimum dt when dtType=CFL-based").
// dtType=2 keeps the per-element local value.
func (o *Solver) computeDt() {
	o.parEles(func(e *ele.Element) { e.CalcWaveSpeedAndDt(o.Cfg.CFL) })
	if o.Cfg.DtType == inp.DtLocalCFL {
		return
	}
	min := math.Inf(1)
	for _, e := range o.Eles {
		if e != nil && e.Dt < min {
			min = e.Dt
		}
	}
	if mpi.IsOn() && mpi.Size() > 1 {
		x := []float64{min}
		w := []float64{0}
		mpi.AllReduceMin(x, w)
		min = x[0]
	}
	o.Dt = min
	o.parEles(func(e *ele.Element) { e.Dt = min })
}

// applyFixedDt pushes the configured fixed dt onto every element, scaled by
// the optional dt ramp function (inp.Config.DtFcn), the same prescribed-
// function hook gofem uses for its stage dt control.
func (o *Solver) applyFixedDt() {
	dt := o.Cfg.Dt
	if o.dtFcn != nil {
		dt *= o.dtFcn.F(o.Time, nil)
	}
	o.Dt = dt
	o.parEles(func(e *ele.Element) { e.Dt = dt })
}

// Update advances one full time step of S RK stages (spec.md §4.3
// "update()"): stages 0..S-2 apply timeStepA with a_{s+1}; after the final
// stage U is restored to U0 once (when S>1) and timeStepB accumulates every
// stage's divergence with its weight b_s.
func (o *Solver) Update() {
	if o.Cfg.DtType == inp.DtFixed {
		o.applyFixedDt()
	}

	o.parEles(func(e *ele.Element) { e.SnapshotU0() })

	S := len(o.RKb)
	for s := 0; s < S; s++ {
		if o.Cfg.Motion != inp.MotionStatic {
			o.moveMesh(o.Time + o.RKa[s]*o.Dt)
		}
		o.CalcResidual(s)
		if s < S-1 {
			a := o.RKa[s+1]
			o.parEles(func(e *ele.Element) { e.TimeStepA(s, a) })
		}
	}

	if S > 1 {
		o.parEles(func(e *ele.Element) { e.RestoreU0() })
	}
	for s := 0; s < S; s++ {
		b := o.RKb[s]
		s := s
		o.parEles(func(e *ele.Element) { e.TimeStepB(s, b) })
	}

	o.Time += o.Dt
	o.Iter++
}

// UpdateWithSource is the p-multigrid variant of Update: the prescribed
// per-element source src[cellID] is added inside the RK parentheses
// (spec.md §4.1 "Source-variant versions").
func (o *Solver) UpdateWithSource(src [][][]float64) {
	if o.Cfg.DtType == inp.DtFixed {
		o.applyFixedDt()
	}
	o.parEles(func(e *ele.Element) { e.SnapshotU0() })
	S := len(o.RKb)
	for s := 0; s < S; s++ {
		o.CalcResidual(s)
		if s < S-1 {
			a := o.RKa[s+1]
			o.parEles(func(e *ele.Element) { e.TimeStepASource(s, a, src[e.ID]) })
		}
	}
	if S > 1 {
		o.parEles(func(e *ele.Element) { e.RestoreU0() })
	}
	for s := 0; s < S; s++ {
		b := o.RKb[s]
		s := s
		o.parEles(func(e *ele.Element) { e.TimeStepBSource(s, b, src[e.ID]) })
	}
	o.Time += o.Dt
	o.Iter++
}
