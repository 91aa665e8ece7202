// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/flurry/ele"
	"github.com/cpmech/flurry/inp"
)

// InitSolution fills U_spts per icType (spec.md §3 lifecycle step 5, §6
// icType): for the scalar equation icType=0 is the Gaussian pulse and
// icType=1 a sine product; for Euler/NS icType=0 is uniform freestream and
// icType=1 the isentropic vortex. icType=2 is the polynomial test field
// used by operator-exactness checks in both cases.
func (o *Solver) InitSolution() {
	switch o.Cfg.Equation {
	case inp.EqAdvDiff:
		o.initScalar()
	case inp.EqEulerNS:
		o.initEuler()
	}
}

func (o *Solver) initScalar() {
	ic := o.Cfg.ICType
	o.parEles(func(e *ele.Element) {
		xs := e.SptCoords()
		for i, x := range xs {
			switch ic {
			case 0:
				var r2 float64
				for _, xd := range x {
					r2 += xd * xd
				}
				e.USpts[i][0] = math.Exp(-r2)
			case 1:
				v := 1.0
				for _, xd := range x {
					v *= math.Sin(math.Pi * xd)
				}
				e.USpts[i][0] = v
			case 2:
				v := 1.0
				for _, xd := range x {
					v += xd
				}
				e.USpts[i][0] = v
			default:
				chk.Panic("fem.Solver.initScalar: unknown icType %d", ic)
			}
		}
	})
}

// vortexState evaluates the standard isentropic-vortex solution centered at
// the origin with strength eps=5 and the configured gamma (1.4 in spec.md §8
// scenario A), advected by the freestream velocity.
func (o *Solver) vortexState(x []float64, t float64) []float64 {
	fl := o.Cfg.Fluid
	gamma := fl.Gamma
	const eps = 5.0
	xc := x[0] - fl.UBound*t
	yc := x[1] - fl.VBound*t
	r2 := xc*xc + yc*yc
	f := eps / (2 * math.Pi) * math.Exp(0.5*(1-r2))
	du := -yc * f
	dv := xc * f
	dT := -(gamma - 1) * eps * eps / (8 * gamma * math.Pi * math.Pi) * math.Exp(1-r2)

	T := 1 + dT
	rho := math.Pow(T, 1/(gamma-1))
	u := fl.UBound + du
	v := fl.VBound + dv
	p := rho * T

	nd := o.Cfg.NDims
	U := make([]float64, nd+2)
	U[0] = rho
	U[1] = rho * u
	U[2] = rho * v
	kinetic := u*u + v*v
	if nd == 3 {
		U[3] = rho * fl.WBound
		kinetic += fl.WBound * fl.WBound
	}
	U[nd+1] = p/(gamma-1) + 0.5*rho*kinetic
	return U
}

func (o *Solver) initEuler() {
	ic := o.Cfg.ICType
	free := o.freestream()
	o.parEles(func(e *ele.Element) {
		xs := e.SptCoords()
		for i, x := range xs {
			switch ic {
			case 0:
				copy(e.USpts[i], free)
			case 1:
				copy(e.USpts[i], o.vortexState(x, 0))
			case 2:
				copy(e.USpts[i], free)
				e.USpts[i][0] *= 1 + 0.1*x[0]
			default:
				chk.Panic("fem.Solver.initEuler: unknown icType %d", ic)
			}
		}
	})
}
