// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "math"

// SqueezeConfig carries the constants needed by the positivity-preserving
// squeeze (spec.md §4.1 "Positivity enforcement", §6 squeeze/threshold):
// Exps0 and Gamma are the entropy-bound coefficients, DensTol is the density
// floor and EntropyOK enables the entropy-bound pass.
type SqueezeConfig struct {
	Enabled   bool
	Exps0     float64
	Gamma     float64
	DensTol   float64
	EntropyOK bool // NS only: whether the entropy-bound pass applies
}

// Mean computes the element-averaged solution Uavg by quadrature over the
// solution points, weighted by SptWeight and the local Jacobian determinant
// (spec.md §4.1 step 1, §4.3 step 4).
func (o *Element) Mean() []float64 {
	avg := make([]float64, o.nFields)
	var vol float64
	for i, w := range o.Ops.SptWeight {
		jw := w * o.DetJacSpts[i]
		vol += jw
		for f := 0; f < o.nFields; f++ {
			avg[f] += jw * o.USpts[i][f]
		}
	}
	for f := range avg {
		avg[f] /= vol
	}
	return avg
}

// Squeeze applies the two-pass positivity-preserving limiter of spec.md
// §4.1: a density floor shrink followed by an entropy-bound blend (NS only).
// Both passes are idempotent and, when triggered, are applied consistently
// to USpts, UFpts and UMpts. Reports whether either pass fired, feeding the
// solver's per-iteration activation counter.
func (o *Element) Squeeze(cfg SqueezeConfig) (triggered bool) {
	if !cfg.Enabled {
		return false
	}
	avg := o.Mean()

	// the floor applies to ANY point of the representation: the flux-point
	// (and plot-point) traces are Lagrange extrapolations of USpts and can
	// undershoot the nodal minimum near a discontinuity
	rhoMin := math.Inf(1)
	scan := func(rows [][]float64) {
		for _, u := range rows {
			if u[0] < rhoMin {
				rhoMin = u[0]
			}
		}
	}
	scan(o.USpts)
	scan(o.UFpts)
	if len(o.UMpts) > 0 {
		scan(o.UMpts)
	}
	if rhoMin < 0 {
		// eps = (avg-tol)/(avg-rhoMin) keeps exactly the fraction of the
		// deviation that lands the worst point at rho = tol.
		eps := (avg[0] - cfg.DensTol) / (avg[0] - rhoMin)
		o.blendToward(avg, eps)
		triggered = true
	}

	if cfg.EntropyOK {
		triggered = o.squeezeEntropy(avg, cfg) || triggered
	}
	return
}

// blendToward shrinks every field at every spt/fpt/mpt toward avg, keeping
// the fraction `keep` of the deviation: x <- avg + keep*(x-avg).
func (o *Element) blendToward(avg []float64, keep float64) {
	shrink := func(rows [][]float64) {
		for _, row := range rows {
			for f, v := range row {
				row[f] = avg[f] + keep*(v-avg[f])
			}
		}
	}
	shrink(o.USpts)
	shrink(o.UFpts)
	if len(o.UMpts) > 0 {
		shrink(o.UMpts)
	}
}

// squeezeEntropy implements step 3 of spec.md §4.1: tau = p - exps0*rho^gamma
// at every point; if the minimum is negative, blend toward the mean by the
// fraction at which the linear interpolation of tau between the worst point
// and the mean reaches zero. tau is concave in the conserved state, so the
// blended worst point has tau >= 0 (zero only where tau is linear).
func (o *Element) squeezeEntropy(avg []float64, cfg SqueezeConfig) bool {
	tauMin := math.Inf(1)
	for _, u := range o.USpts {
		if t := tau(u, cfg); t < tauMin {
			tauMin = t
		}
	}
	for _, u := range o.UFpts {
		if t := tau(u, cfg); t < tauMin {
			tauMin = t
		}
	}
	if tauMin >= 0 {
		return false
	}
	tauAvg := tau(avg, cfg)
	eps := tauMin / (tauMin - tauAvg)
	o.blendToward(avg, 1-eps)
	return true
}

// tau evaluates the entropy bound p - exps0*rho^gamma for a conserved state
// whose pressure is recovered via the ideal-gas relation (spec.md §4.1).
func tau(u []float64, cfg SqueezeConfig) float64 {
	rho := u[0]
	nf := len(u)
	var kinetic float64
	for k := 1; k < nf-1; k++ {
		kinetic += u[k] * u[k]
	}
	kinetic /= rho
	p := (cfg.Gamma - 1) * (u[nf-1] - 0.5*kinetic)
	return p - cfg.Exps0*math.Pow(rho, cfg.Gamma)
}
