// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/flurry/ele"
	"github.com/cpmech/flurry/inp"
)

// moveMesh evaluates the analytic node positions and grid velocities of the
// configured motion at time t and installs them on every element, then
// refreshes the geometry search structures (spec.md §6 "ADT updates on
// motion"). The four motion kinds are the standard deforming/rigid test
// motions; amplitudes and frequencies come from the configuration.
func (o *Solver) moveMesh(t float64) {
	cfg := o.Cfg
	nd := cfg.NDims
	ramp := 1.0
	if o.moveFcn != nil {
		ramp = o.moveFcn.F(t, nil)
	}
	o.parEles(func(e *ele.Element) {
		nn := e.Nodes.NNodes()
		x := make([][]float64, nd)
		v := make([][]float64, nd)
		for d := 0; d < nd; d++ {
			x[d] = make([]float64, nn)
			v[d] = make([]float64, nn)
		}
		for i := 0; i < nn; i++ {
			x0 := make([]float64, nd)
			for d := 0; d < nd; d++ {
				x0[d] = e.Nodes.X[d][i]
			}
			xi, vi := motionAt(cfg, x0, t, ramp)
			for d := 0; d < nd; d++ {
				x[d][i] = xi[d]
				v[d][i] = vi[d]
			}
		}
		e.UpdateMotion(x, v)
	})
	o.Geo.UpdateADT()
}

// motionAt maps a base node position to its position and velocity at time
// t for the configured motion kind. The ramp factor (from the optional
// moveFcn prescribed function) scales the motion amplitudes; a soft-started
// deformation ramps from 0 to 1 without changing the motion shape.
// NOTE: the ramp is treated as quasi-static; its own time derivative is not
// added to the grid velocity, so moveFcn should vary slowly against the
// motion frequencies.
func motionAt(cfg *inp.Config, x0 []float64, t, ramp float64) (x, v []float64) {
	nd := cfg.NDims
	x = make([]float64, nd)
	v = make([]float64, nd)
	copy(x, x0)

	ax, ay := cfg.MoveAx*ramp, cfg.MoveAy*ramp
	fx, fy := cfg.MoveFx, cfg.MoveFy

	switch cfg.Motion {
	case inp.MotionKui:
		// sinusoidal interior perturbation, zero at the box boundary
		sx := math.Sin(math.Pi * x0[0])
		sy := math.Sin(math.Pi * x0[1])
		wt := 2 * math.Pi * fx
		x[0] = x0[0] + ax*sx*sy*math.Sin(wt*t)
		x[1] = x0[1] + ay*sx*sy*math.Sin(wt*t)
		v[0] = ax * sx * sy * wt * math.Cos(wt*t)
		v[1] = ay * sx * sy * wt * math.Cos(wt*t)

	case inp.MotionLiang:
		// Liang-Miyaji smoothly deforming mesh: independent frequencies
		// per direction
		wx := 2 * math.Pi * fx
		wy := 2 * math.Pi * fy
		sx := math.Sin(math.Pi * x0[0])
		sy := math.Sin(math.Pi * x0[1])
		x[0] = x0[0] + ax*sx*sy*math.Sin(wx*t)
		x[1] = x0[1] + ay*sx*sy*math.Sin(wy*t)
		v[0] = ax * sx * sy * wx * math.Cos(wx*t)
		v[1] = ay * sx * sy * wy * math.Cos(wy*t)

	case inp.MotionRotation:
		// rigid rotation about the origin at angular velocity 2*pi*fx
		w := 2 * math.Pi * fx
		c, s := math.Cos(w*t), math.Sin(w*t)
		x[0] = c*x0[0] - s*x0[1]
		x[1] = s*x0[0] + c*x0[1]
		v[0] = w * (-s*x0[0] - c*x0[1])
		v[1] = w * (c*x0[0] - s*x0[1])

	case inp.MotionTranslation:
		// rigid oscillatory translation
		wx := 2 * math.Pi * fx
		wy := 2 * math.Pi * fy
		x[0] = x0[0] + ax*math.Sin(wx*t)
		x[1] = x0[1] + ay*math.Sin(wy*t)
		v[0] = ax * wx * math.Cos(wx*t)
		v[1] = ay * wy * math.Cos(wy*t)
	}
	return
}
