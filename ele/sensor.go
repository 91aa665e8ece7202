// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// CalcSensor evaluates the modal-decay shock sensor on the density field
// (spec.md §4.3 step 2): the nodal solution is projected onto the
// tensor-product Legendre modes by quadrature, and the sensor is the energy
// fraction carried by the highest-degree modes. Smooth fields give a sensor
// near zero; an element straddling a discontinuity gives an O(1) value that
// the solver compares against the configured threshold.
func (o *Element) CalcSensor() float64 {
	p := o.Order
	n := p + 1
	d := o.nDims

	// modal coefficients by Gauss quadrature on the reference element:
	// c_m = sum_i w_i Phi_m(xi_i) u_i / ||Phi_m||^2, with Phi_m the
	// tensor-product Legendre mode of multi-index m. Exact for the
	// polynomial space spanned by the solution points.
	modes := tensorIndices(d, n)
	pts1D := make([]float64, n)
	{
		// recover the 1-D reference coordinates from the cached multi-index
		// by probing the flux-point-free tensor layout
		rp := o.refPointsSpts()
		for i, idx := range o.Ops.SptIdx {
			pts1D[idx[d-1]] = rp[i][d-1]
		}
	}

	// P1D[m][i] = P_m(pts1D[i])
	P1D := make([][]float64, n)
	for m := 0; m < n; m++ {
		P1D[m] = make([]float64, n)
		for i, x := range pts1D {
			pm, _ := legendre(m, x)
			P1D[m][i] = pm
		}
	}

	var total, top float64
	for _, m := range modes {
		var c, nrm2 float64
		for i, idx := range o.Ops.SptIdx {
			phi := 1.0
			for k := 0; k < d; k++ {
				phi *= P1D[m[k]][idx[k]]
			}
			w := o.Ops.SptWeight[i]
			c += w * phi * o.USpts[i][0]
			nrm2 += w * phi * phi
		}
		c /= nrm2
		e := c * c * nrm2
		total += e
		for k := 0; k < d; k++ {
			if m[k] == p {
				top += e
				break
			}
		}
	}
	if total == 0 {
		o.Sensor = 0
		return 0
	}
	o.Sensor = top / total
	return o.Sensor
}
