// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "github.com/cpmech/gosl/utl"

// SnapshotU0 copies USpts into U0, taken once at the beginning of an RK step
// (spec.md §4.1 "RK update").
func (o *Element) SnapshotU0() {
	for i, row := range o.USpts {
		copy(o.U0[i], row)
	}
}

// RestoreU0 resets USpts from U0; called once before the final-stage
// timeStepB accumulation when there is more than one stage (spec.md §4.3
// "update()").
func (o *Element) RestoreU0() {
	for i, row := range o.U0 {
		copy(o.USpts[i], row)
	}
}

// TimeStepA implements stages 0..S-2: U <- U0 - a*dt*divF[stage]/detJ
// (spec.md §4.1 "RK update").
func (o *Element) TimeStepA(stage int, a float64) {
	o.stepFrom(o.U0, stage, a)
}

// TimeStepASource is the p-multigrid source variant of TimeStepA: U <-
// U0 - a*dt*(divF[stage]+src)/detJ.
func (o *Element) TimeStepASource(stage int, a float64, src [][]float64) {
	o.stepFromSource(o.U0, stage, a, src)
}

// TimeStepB implements the final-stage accumulation: U <- U -
// b*dt*divF[stage]/detJ, applied once per stage across all stages.
func (o *Element) TimeStepB(stage int, b float64) {
	o.stepFrom(o.USpts, stage, b)
}

// TimeStepBSource is the p-multigrid source variant of TimeStepB.
func (o *Element) TimeStepBSource(stage int, b float64, src [][]float64) {
	o.stepFromSource(o.USpts, stage, b, src)
}

func (o *Element) stepFrom(base [][]float64, stage int, coef float64) {
	div := o.DivFSpts[stage]
	for i := range o.USpts {
		detJ := o.DetJacSpts[i]
		for f := 0; f < o.nFields; f++ {
			o.USpts[i][f] = base[i][f] - coef*o.Dt*div[i][f]/detJ
		}
	}
}

func (o *Element) stepFromSource(base [][]float64, stage int, coef float64, src [][]float64) {
	div := o.DivFSpts[stage]
	for i := range o.USpts {
		detJ := o.DetJacSpts[i]
		for f := 0; f < o.nFields; f++ {
			o.USpts[i][f] = base[i][f] - coef*o.Dt*(div[i][f]+src[i][f])/detJ
		}
	}
}

// cflLimit returns the standard FR stability bound 1/(2p+1) for order p,
// matching the CFL_limit(p) factor of spec.md §4.1 "Wave speed and local dt".
func cflLimit(order int) float64 {
	return 1.0 / float64(2*order+1)
}

// CalcWaveSpeedAndDt evaluates the local wave speed at every flux point
// (convective speed net of grid velocity, plus the acoustic/diffusive speed)
// and sets o.Dt from the CFL condition (spec.md §4.1).
func (o *Element) CalcWaveSpeedAndDt(cfl float64) {
	var maxSpeed float64
	for fp := 0; fp < o.nFpts; fp++ {
		gvn := gridVelNormal(o.GridVelFpts, o.NormFpts[fp], fp)
		speed := o.Phys.WaveSpeed(o.UFpts[fp], o.NormFpts[fp], gvn) / o.DAFpts[fp]
		maxSpeed = utl.Max(maxSpeed, speed)
	}
	o.Dt = cfl * cflLimit(o.Order) * 2 / (maxSpeed + 1e-10)
}

func gridVelNormal(gridVel [][]float64, nrm []float64, fp int) float64 {
	if gridVel == nil {
		return 0
	}
	var gvn float64
	vg := gridVel[fp]
	for d, n := range nrm {
		gvn += vg[d] * n
	}
	return gvn
}

