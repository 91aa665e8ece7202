// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "github.com/cpmech/gosl/chk"

// legendre evaluates the Legendre polynomial P_n(x) and its derivative
// P_n'(x) via the three-term recurrence (duplicated from basis package's
// unexported helper since both the solution-point generator and the
// correction-function generator need it, and the correction function is a
// dense-operator concern of ele, not a point-set concern of basis).
func legendre(n int, x float64) (p, dp float64) {
	if n == 0 {
		return 1, 0
	}
	p0, p1 := 1.0, x
	for k := 1; k < n; k++ {
		p2 := ((2*float64(k)+1)*x*p1 - float64(k)*p0) / float64(k+1)
		p0, p1 = p1, p2
	}
	p = p1
	if x == 1 || x == -1 {
		// endpoint limit of the formula below: P_n'(±1) = (±1)^(n+1) n(n+1)/2
		dp = float64(n*(n+1)) / 2
		if x < 0 && n%2 == 0 {
			dp = -dp
		}
		return
	}
	dp = float64(n) * (x*p1 - p0) / (x*x - 1)
	return
}

// corrRightDeriv and corrLeftDeriv implement the derivatives of the g_DG
// (right-Radau based) correction functions of flux reconstruction (spec.md
// §4.4 opp_div_fpts_to_spts / opp_grad_corr):
//
//	g_R(ξ) = 1/2 * (P_p(ξ) + P_{p+1}(ξ))          g_R(+1)=1, g_R(-1)=0
//	g_L(ξ) = g_R(-ξ) = (-1)^p/2 * (P_p(ξ) - P_{p+1}(ξ))   g_L(-1)=1, g_L(+1)=0
func corrRightDeriv(p int, xi float64) float64 {
	_, dPp := legendre(p, xi)
	_, dPp1 := legendre(p+1, xi)
	return 0.5 * (dPp + dPp1)
}

func corrLeftDeriv(p int, xi float64) float64 {
	_, dPp := legendre(p, xi)
	_, dPp1 := legendre(p+1, xi)
	sign := 1.0
	if p%2 == 1 {
		sign = -1.0
	}
	return sign / 2 * (dPp - dPp1)
}

// correctionDeriv returns g_side'(xi) for side=+1 (right) or side=-1 (left):
// the per-face lifting coefficient of a VALUE jump (Uc-U), as used by the
// gradient correction.
func correctionDeriv(p int, side int, xi float64) float64 {
	switch side {
	case 1:
		return corrRightDeriv(p, xi)
	case -1:
		return corrLeftDeriv(p, xi)
	}
	chk.Panic("ele.correctionDeriv: side must be +1 or -1 (got %d)", side)
	return 0
}

// divCorrectionDeriv is the per-face lifting coefficient of a NORMAL-FLUX
// jump dFn (outward-positive on both faces): the flux component along the
// axis is -dFn on a side=-1 face, so the orientation factor side folds the
// sign flip into the operator.
func divCorrectionDeriv(p int, side int, xi float64) float64 {
	return float64(side) * correctionDeriv(p, side, xi)
}
