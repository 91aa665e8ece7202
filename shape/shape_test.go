// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_shape01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape01: quad4 shape functions are nodal and partition unity")

	for i, c := range quad4Corners {
		N := quad4Vals(c[:])
		for j := range N {
			expected := 0.0
			if i == j {
				expected = 1.0
			}
			chk.Float64(tst, "N_j(corner_i)", 1e-15, N[j], expected)
		}
	}
	N := quad4Vals([]float64{0.2, -0.4})
	var sum float64
	for _, v := range N {
		sum += v
	}
	chk.Float64(tst, "partition of unity", 1e-14, sum, 1)
}

func Test_shape02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("shape02: hex8 shape functions are nodal and partition unity")

	for i, c := range hex8Corners {
		N := hex8Vals(c[:])
		for j := range N {
			expected := 0.0
			if i == j {
				expected = 1.0
			}
			chk.Float64(tst, "N_j(corner_i)", 1e-15, N[j], expected)
		}
	}
	N := hex8Vals([]float64{0.1, 0.2, -0.3})
	var sum float64
	for _, v := range N {
		sum += v
	}
	chk.Float64(tst, "partition of unity", 1e-14, sum, 1)
}

func Test_faces01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("faces01: quad face points land on the reference boundary")

	for f := 0; f < 4; f++ {
		r := FacePoint(Quad, f, []float64{0.3})
		n := FaceNormal(Quad, f)
		chk.IntAssert(len(r), 2)
		chk.IntAssert(len(n), 2)
		chk.Float64(tst, "r.n == 1 on the face", 1e-15, r[0]*n[0]+r[1]*n[1], 1)
	}
}
