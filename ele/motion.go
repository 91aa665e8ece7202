// Copyright 2016 The Flurry Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/flurry/shape"
)

// UpdateMotion installs new node positions and nodal grid velocities for the
// current RK stage and refreshes every geometric quantity that depends on
// them: grid velocity at solution/flux points, Jacobians, adjoints,
// determinants and face normals (spec.md §3 lifecycle step 6: "moving-mesh
// runs additionally mutate nodesRK and re-run calcTransforms"). xNodes and
// vNodes are [nDims][nnode], matching the NodeSet layout.
func (o *Element) UpdateMotion(xNodes, vNodes [][]float64) {
	if o.Motion == Static {
		chk.Panic("ele.Element.UpdateMotion: element %d was built static", o.ID)
	}
	nd := o.nDims
	for d := 0; d < nd; d++ {
		copy(o.NodesRK.X[d], xNodes[d])
		copy(o.GridVelNodes[d], vNodes[d])
	}

	// grid velocity at spts/fpts must be current before the space-time
	// Jacobian is assembled, since its extra column reads it
	o.interpGridVel(o.refPointsSpts(), o.GridVelSpts)
	o.interpGridVel(o.Ops.FptR, o.GridVelFpts)

	o.calcTransforms()
}

// interpGridVel interpolates the nodal grid velocity to the reference points
// pts, writing out[p][d].
func (o *Element) interpGridVel(pts [][]float64, out [][]float64) {
	nd := o.nDims
	for p, r := range pts {
		N := shape.ShapeVals(o.Type, r)
		for d := 0; d < nd; d++ {
			var sum float64
			for i, Ni := range N {
				sum += Ni * o.GridVelNodes[d][i]
			}
			out[p][d] = sum
		}
	}
}
